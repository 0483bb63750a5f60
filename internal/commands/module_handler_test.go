package commands

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bumpbot/internal/access"
	"bumpbot/internal/config"
	"bumpbot/internal/events"
)

const adminID snowflake.ID = 1

type reloadCounter struct{ calls int }

func (r *reloadCounter) Reload() (int, error) {
	r.calls++
	return 2, nil
}

type sentReply struct {
	to      snowflake.ID
	content string
}

func newHandler(t *testing.T, kv map[string]interface{}) (*ModuleHandler, *reloadCounter, *[]sentReply) {
	t.Helper()
	cfg := config.NewMockConfig(kv)
	policy := access.NewPolicy([]snowflake.ID{200}, nil, []snowflake.ID{adminID})
	reloader := &reloadCounter{}
	var sent []sentReply
	h := NewModuleHandler(cfg, policy, reloader, func(ev events.MessageEvent, content string) error {
		sent = append(sent, sentReply{to: ev.MessageID, content: content})
		return nil
	})
	return h, reloader, &sent
}

func textMessage(author snowflake.ID, content string) events.MessageEvent {
	return events.MessageEvent{
		MessageID: 300,
		ChannelID: 200,
		AuthorID:  author,
		IsMember:  true,
		Content:   content,
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		prefix  string
		content string
		name    string
		args    []string
		ok      bool
	}{
		{prefix: "/", content: "/reload", name: "reload", args: []string{}, ok: true},
		{prefix: "/", content: "/reload now please", name: "reload", args: []string{"now", "please"}, ok: true},
		{prefix: "!", content: "!help", name: "help", args: []string{}, ok: true},
		{prefix: "/", content: "/ reload", ok: false},
		{prefix: "/", content: "/", ok: false},
		{prefix: "/", content: "reload", ok: false},
		{prefix: "/", content: " /reload", ok: false},
		{prefix: "", content: "reload", ok: false},
		{prefix: "bb ", content: "bb reload", name: "reload", args: []string{}, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.prefix+"|"+tt.content, func(t *testing.T) {
			name, args, ok := ParseCommand(tt.prefix, tt.content)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.name, name)
				assert.Equal(t, tt.args, args)
			}
		})
	}
}

func TestDispatchReload(t *testing.T) {
	h, reloader, sent := newHandler(t, nil)

	require.True(t, h.Dispatch(textMessage(adminID, "/reload")))
	assert.Equal(t, 1, reloader.calls)
	require.Len(t, *sent, 1)
	assert.Equal(t, snowflake.ID(300), (*sent)[0].to, "reply references the invoking message")
	assert.Contains(t, (*sent)[0].content, "✅")
}

func TestDispatchReloadNonAdmin(t *testing.T) {
	h, reloader, sent := newHandler(t, nil)

	require.True(t, h.Dispatch(textMessage(2, "/reload")))
	assert.Zero(t, reloader.calls)
	require.Len(t, *sent, 1)
	assert.Contains(t, (*sent)[0].content, "permission")
}

func TestDispatchIgnores(t *testing.T) {
	h, reloader, sent := newHandler(t, nil)

	assert.False(t, h.Dispatch(textMessage(adminID, "reload")), "no prefix")
	assert.False(t, h.Dispatch(textMessage(adminID, "/unknown")), "unknown command")
	assert.False(t, h.Dispatch(textMessage(adminID, "/Reload")), "names are case-sensitive")

	bot := textMessage(adminID, "/reload")
	bot.AuthorIsBot = true
	assert.False(t, h.Dispatch(bot), "bots never run commands")

	assert.Zero(t, reloader.calls)
	assert.Empty(t, *sent)
}

func TestDispatchCustomPrefix(t *testing.T) {
	h, reloader, _ := newHandler(t, map[string]interface{}{"command_prefix": "!"})

	assert.False(t, h.Dispatch(textMessage(adminID, "/reload")))
	assert.True(t, h.Dispatch(textMessage(adminID, "!reload")))
	assert.Equal(t, 1, reloader.calls)
}

func TestDispatchHelp(t *testing.T) {
	h, _, sent := newHandler(t, nil)

	require.True(t, h.Dispatch(textMessage(2, "/help")))
	require.Len(t, *sent, 1)
	assert.Contains(t, (*sent)[0].content, "/reload")
	assert.Equal(t, []string{"help", "reload"}, h.CommandNames())
}

func TestHandleInteraction(t *testing.T) {
	h, reloader, _ := newHandler(t, nil)

	var responses []*discordgo.InteractionResponse
	h.opts.Respond = func(_ *discordgo.Session, _ *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
		responses = append(responses, resp)
		return nil
	}

	interaction := func(userID string) *discordgo.InteractionCreate {
		return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
			Type:   discordgo.InteractionApplicationCommand,
			Member: &discordgo.Member{User: &discordgo.User{ID: userID}},
			Data:   discordgo.ApplicationCommandInteractionData{Name: "reload"},
		}}
	}

	h.HandleInteraction(nil, interaction("2"))
	require.Len(t, responses, 1)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, responses[0].Data.Flags)
	assert.Contains(t, responses[0].Data.Content, "permission")
	assert.Zero(t, reloader.calls)

	h.HandleInteraction(nil, interaction("1"))
	require.Len(t, responses, 2)
	assert.Contains(t, responses[1].Data.Content, "✅")
	assert.Equal(t, 1, reloader.calls)
}
