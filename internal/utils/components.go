package utils

import (
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	// Discord allows five buttons per action row and five rows per message.
	maxButtonsPerRow = 5
	maxRows          = 5

	DefaultButtonLabel = "Link"
)

// LinkButton is the platform-neutral description of a link button.
type LinkButton struct {
	Label *string
	URL   string
	Emoji string
}

var customEmojiRe = regexp.MustCompile(`^<(a?):([A-Za-z0-9_~]+):(\d+)>$`)

// ParseComponentEmoji turns "👍", "<:name:id>" or "<a:name:id>" into a
// component emoji. Empty input yields nil.
func ParseComponentEmoji(s string) *discordgo.ComponentEmoji {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if m := customEmojiRe.FindStringSubmatch(s); m != nil {
		return &discordgo.ComponentEmoji{
			Name:     m[2],
			ID:       m[3],
			Animated: m[1] == "a",
		}
	}
	return &discordgo.ComponentEmoji{Name: s}
}

// LinkButtonRows lays out link buttons in action rows. Buttons without a URL
// are returned in skipped; buttons beyond Discord's limit are dropped and
// counted in skipped as well.
func LinkButtonRows(buttons []LinkButton) (rows []discordgo.MessageComponent, skipped []LinkButton) {
	var row []discordgo.MessageComponent

	for _, b := range buttons {
		if strings.TrimSpace(b.URL) == "" || len(rows) == maxRows {
			skipped = append(skipped, b)
			continue
		}

		label := DefaultButtonLabel
		if b.Label != nil {
			label = *b.Label
		}

		row = append(row, discordgo.Button{
			Label: label,
			Style: discordgo.LinkButton,
			URL:   b.URL,
			Emoji: ParseComponentEmoji(b.Emoji),
		})

		if len(row) == maxButtonsPerRow {
			rows = append(rows, discordgo.ActionsRow{Components: row})
			row = nil
		}
	}

	if len(row) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: row})
	}

	return rows, skipped
}
