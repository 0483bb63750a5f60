package events

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// MemberLookup resolves a guild member when the gateway payload did not carry
// one. Returning an error means the author is treated as a non-member.
type MemberLookup func(guildID, userID string) (*discordgo.Member, error)

// FromMessageCreate converts a discordgo message event. It returns false for
// payloads that cannot be routed at all (no author, unparsable IDs).
func FromMessageCreate(selfID string, m *discordgo.MessageCreate, lookup MemberLookup) (MessageEvent, bool) {
	if m == nil || m.Message == nil || m.Author == nil {
		return MessageEvent{}, false
	}

	messageID, err := snowflake.Parse(m.ID)
	if err != nil {
		return MessageEvent{}, false
	}
	channelID, err := snowflake.Parse(m.ChannelID)
	if err != nil {
		return MessageEvent{}, false
	}
	authorID, err := snowflake.Parse(m.Author.ID)
	if err != nil {
		return MessageEvent{}, false
	}

	ev := MessageEvent{
		MessageID:   messageID,
		ChannelID:   channelID,
		AuthorID:    authorID,
		FromSelf:    selfID != "" && m.Author.ID == selfID,
		AuthorIsBot: m.Author.Bot,
		Content:     m.Content,
	}

	if m.GuildID == "" {
		return ev, true
	}
	if guildID, err := snowflake.Parse(m.GuildID); err == nil {
		ev.GuildID = guildID
	}

	// Webhook messages have a synthetic author that is never a member.
	if m.WebhookID != "" {
		return ev, true
	}

	member := m.Member
	if member == nil && lookup != nil {
		if found, err := lookup(m.GuildID, m.Author.ID); err == nil {
			member = found
		}
	}
	if member == nil {
		return ev, true
	}

	ev.IsMember = true
	ev.Roles = parseRoles(member.Roles)
	return ev, true
}

// FromInteraction converts an application command interaction into a
// CommandEvent. Option values become Args in declaration order.
func FromInteraction(i *discordgo.InteractionCreate) (CommandEvent, bool) {
	if i == nil || i.Interaction == nil || i.Type != discordgo.InteractionApplicationCommand {
		return CommandEvent{}, false
	}

	var user *discordgo.User
	if i.Member != nil && i.Member.User != nil {
		user = i.Member.User
	} else {
		user = i.User
	}
	if user == nil {
		return CommandEvent{}, false
	}

	authorID, err := snowflake.Parse(user.ID)
	if err != nil {
		return CommandEvent{}, false
	}

	data := i.ApplicationCommandData()
	ev := CommandEvent{
		Name:     data.Name,
		AuthorID: authorID,
	}
	if id, err := snowflake.Parse(i.ChannelID); err == nil {
		ev.ChannelID = id
	}
	if id, err := snowflake.Parse(i.GuildID); err == nil {
		ev.GuildID = id
	}
	for _, opt := range data.Options {
		ev.Args = append(ev.Args, fmt.Sprint(opt.Value))
	}
	return ev, true
}

func parseRoles(raw []string) []snowflake.ID {
	roles := make([]snowflake.ID, 0, len(raw))
	for _, r := range raw {
		id, err := snowflake.Parse(r)
		if err != nil {
			continue
		}
		roles = append(roles, id)
	}
	return roles
}
