package help

import (
	"fmt"
	"sort"
	"strings"

	"bumpbot/internal/commands/types"
	"bumpbot/internal/events"

	"github.com/MakeNowJust/heredoc"
	"github.com/bwmarrin/discordgo"
)

// HelpModule lists the registered commands.
type HelpModule struct {
	prefix   string
	commands map[string]*types.Command
}

// New creates a new help module
func New(deps *types.Dependencies) *HelpModule {
	return &HelpModule{prefix: deps.Prefix}
}

// Register adds the help command to the command map
func (m *HelpModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	// Keep the map itself so commands registered after help are listed too.
	m.commands = cmds

	cmds["help"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "help",
			Description: "Show all available commands",
		},
		HandlerFunc: m.handleHelp,
	}
}

func (m *HelpModule) handleHelp(_ events.CommandEvent, reply types.ReplyFunc) {
	_ = reply(m.helpText())
}

func (m *HelpModule) helpText() string {
	names := make([]string, 0, len(m.commands))
	for name := range m.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines strings.Builder
	for _, name := range names {
		desc := ""
		if ac := m.commands[name].ApplicationCommand; ac != nil {
			desc = ac.Description
		}
		fmt.Fprintf(&lines, "• `%s%s` %s\n", m.prefix, name, desc)
	}

	return heredoc.Docf(`
		📋 **Available commands:**

		%s
		Keyword replies are sent automatically in monitored channels.`, lines.String())
}
