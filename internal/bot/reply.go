package bot

import (
	"github.com/bwmarrin/discordgo"

	"bumpbot/internal/events"
	"bumpbot/internal/keywords"
	"bumpbot/internal/utils"
)

// sendOpts holds the outbound Discord calls so tests can capture them.
type sendOpts struct {
	SendComplex func(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	Respond     func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
}

func defaultSendOpts(s *discordgo.Session) sendOpts {
	return sendOpts{
		SendComplex: s.ChannelMessageSendComplex,
		Respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			return s.InteractionRespond(i, resp)
		},
	}
}

// replyMentions lets the reply body mention freely but never pings the
// author of the message being replied to.
func replyMentions() *discordgo.MessageAllowedMentions {
	return &discordgo.MessageAllowedMentions{
		Parse: []discordgo.AllowedMentionType{
			discordgo.AllowedMentionTypeUsers,
			discordgo.AllowedMentionTypeRoles,
			discordgo.AllowedMentionTypeEveryone,
		},
		RepliedUser: false,
	}
}

func messageReference(ev events.MessageEvent) *discordgo.MessageReference {
	ref := &discordgo.MessageReference{
		MessageID: ev.MessageID.String(),
		ChannelID: ev.ChannelID.String(),
	}
	if ev.GuildID != 0 {
		ref.GuildID = ev.GuildID.String()
	}
	return ref
}

// ReplyWithCard replies to ev with the embed and link buttons of resp.
func (b *Bot) ReplyWithCard(ev events.MessageEvent, resp keywords.Response) error {
	color, err := keywords.ParseColor(resp.Embed.Color)
	if err != nil {
		b.config.Logger.Warnf("Invalid embed color %q, using default: %v", resp.Embed.Color, err)
	}

	embed := &discordgo.MessageEmbed{
		Title:       resp.Embed.Title,
		Description: resp.Embed.Description,
		Color:       color,
	}

	buttons := make([]utils.LinkButton, 0, len(resp.Buttons))
	for _, btn := range resp.Buttons {
		buttons = append(buttons, utils.LinkButton{Label: btn.Label, URL: btn.URL, Emoji: btn.Emoji})
	}
	rows, skipped := utils.LinkButtonRows(buttons)
	for _, btn := range skipped {
		b.config.Logger.Warnf("Skipping button without a usable URL (label %v)", labelOf(btn))
	}

	_, err = b.opts.SendComplex(ev.ChannelID.String(), &discordgo.MessageSend{
		Embeds:          []*discordgo.MessageEmbed{embed},
		Components:      rows,
		Reference:       messageReference(ev),
		AllowedMentions: replyMentions(),
	})
	return err
}

// replyText answers a text command as a plain reply to its message.
func (b *Bot) replyText(ev events.MessageEvent, content string) error {
	_, err := b.opts.SendComplex(ev.ChannelID.String(), &discordgo.MessageSend{
		Content:         content,
		Reference:       messageReference(ev),
		AllowedMentions: replyMentions(),
	})
	return err
}

func labelOf(btn utils.LinkButton) string {
	if btn.Label == nil {
		return utils.DefaultButtonLabel
	}
	return *btn.Label
}
