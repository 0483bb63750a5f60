package types

import (
	"bumpbot/internal/access"
	"bumpbot/internal/config"
	"bumpbot/internal/events"

	"github.com/bwmarrin/discordgo"
)

// ReplyFunc answers the invoker of a command with plain text.
type ReplyFunc func(content string) error

// Command represents a bot command with its handler. ApplicationCommand
// describes it for slash-command registration; the same handler serves
// prefixed text invocations.
type Command struct {
	ApplicationCommand *discordgo.ApplicationCommand
	HandlerFunc        func(ev events.CommandEvent, reply ReplyFunc)
	Development        bool
}

// Reloader reloads the keyword table and reports how many rules it holds.
type Reloader interface {
	Reload() (int, error)
}

// CommandModule represents a module that can register commands
type CommandModule interface {
	// Register adds the module's commands to the provided map
	Register(commands map[string]*Command, deps *Dependencies)
}

// Dependencies contains shared dependencies that command modules may need
type Dependencies struct {
	Config   *config.Config
	Policy   access.Policy
	Reloader Reloader
	Prefix   string
}
