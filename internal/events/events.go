package events

import (
	"github.com/disgoorg/snowflake/v2"
)

// Event is implemented by every inbound event the bot routes.
type Event interface {
	event()
}

// MessageEvent is a chat message, stripped down to what the responder needs.
type MessageEvent struct {
	MessageID snowflake.ID
	ChannelID snowflake.ID
	GuildID   snowflake.ID // zero for direct messages
	AuthorID  snowflake.ID

	FromSelf    bool // authored by the bot's own user
	AuthorIsBot bool

	// IsMember is false when the author could not be resolved as a guild
	// member, e.g. in DMs or for webhook messages.
	IsMember bool
	Roles    []snowflake.ID

	Content string
}

// CommandEvent is an invocation of a named bot command, either parsed from a
// prefixed message or received as an application command.
type CommandEvent struct {
	Name      string
	Args      []string
	AuthorID  snowflake.ID
	ChannelID snowflake.ID
	GuildID   snowflake.ID

	// Source is the message the command was parsed from. Nil for
	// application commands.
	Source *MessageEvent
}

func (MessageEvent) event() {}
func (CommandEvent) event() {}
