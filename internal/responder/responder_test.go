package responder

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bumpbot/internal/access"
	"bumpbot/internal/events"
	"bumpbot/internal/keywords"
)

const (
	monitored   snowflake.ID = 200
	unmonitored snowflake.ID = 201
	roleA       snowflake.ID = 11
	roleB       snowflake.ID = 12
	admin       snowflake.ID = 1
)

type replyCapture struct {
	replies []keywords.Response
	err     error
}

func (c *replyCapture) ReplyWithCard(_ events.MessageEvent, resp keywords.Response) error {
	c.replies = append(c.replies, resp)
	return c.err
}

type dispatchCapture struct {
	messages []events.MessageEvent
}

func (c *dispatchCapture) Dispatch(ev events.MessageEvent) bool {
	c.messages = append(c.messages, ev)
	return true
}

func card(trigger, title string) keywords.Rule {
	return keywords.Rule{Trigger: trigger, Response: keywords.Response{Embed: keywords.Embed{Title: title}}}
}

func message(content string) events.MessageEvent {
	return events.MessageEvent{
		MessageID: 300,
		ChannelID: monitored,
		GuildID:   400,
		AuthorID:  100,
		IsMember:  true,
		Roles:     []snowflake.ID{roleA},
		Content:   content,
	}
}

type fixture struct {
	r        *Responder
	replies  *replyCapture
	dispatch *dispatchCapture
}

func newFixture(t *testing.T, requiredRoles []snowflake.ID, rules ...keywords.Rule) *fixture {
	t.Helper()
	policy := access.NewPolicy([]snowflake.ID{monitored}, requiredRoles, []snowflake.ID{admin})
	replies := &replyCapture{}
	dispatch := &dispatchCapture{}
	load := func() (*keywords.Table, error) { return keywords.NewTable(rules), nil }
	r := New(policy, keywords.NewTable(rules), load, replies, log.New(io.Discard))
	r.SetDispatcher(dispatch)
	return &fixture{r: r, replies: replies, dispatch: dispatch}
}

func TestHandleMessageGates(t *testing.T) {
	tests := []struct {
		name   string
		roles  []snowflake.ID
		mutate func(ev *events.MessageEvent)
		want   Outcome
	}{
		{name: "own message", mutate: func(ev *events.MessageEvent) { ev.FromSelf = true }, want: Ignored},
		{name: "unmonitored channel", mutate: func(ev *events.MessageEvent) { ev.ChannelID = unmonitored }, want: Ignored},
		{name: "not a member", mutate: func(ev *events.MessageEvent) { ev.IsMember = false }, want: Ignored},
		{name: "lacks required role", roles: []snowflake.ID{roleB}, want: Ignored},
		{name: "member with no roles, roles required", roles: []snowflake.ID{roleB}, mutate: func(ev *events.MessageEvent) { ev.Roles = nil }, want: Ignored},
		{name: "holds required role", roles: []snowflake.ID{roleA, roleB}, want: Replied},
		{name: "no roles required", want: Replied},
		{name: "no roles required, member has none", mutate: func(ev *events.MessageEvent) { ev.Roles = nil }, want: Replied},
		{name: "other bots still pass", mutate: func(ev *events.MessageEvent) { ev.AuthorIsBot = true }, want: Replied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.roles, card("ping", "pong"))
			ev := message("ping")
			if tt.mutate != nil {
				tt.mutate(&ev)
			}

			got := f.r.HandleMessage(ev)
			require.Equal(t, tt.want, got)

			if tt.want == Ignored {
				assert.Empty(t, f.replies.replies, "ignored messages get no reply")
				assert.Empty(t, f.dispatch.messages, "ignored messages are not dispatched")
			}
		})
	}
}

func TestHandleMessageUnmonitoredNeverDispatches(t *testing.T) {
	f := newFixture(t, nil)
	ev := message("/reload")
	ev.ChannelID = unmonitored

	assert.Equal(t, Ignored, f.r.HandleMessage(ev))
	assert.Empty(t, f.dispatch.messages)
}

func TestHandleMessageFirstMatchWins(t *testing.T) {
	f := newFixture(t, nil, card("ping", "first"), card("ping", "second"))

	require.Equal(t, Replied, f.r.HandleMessage(message("ping")))
	require.Len(t, f.replies.replies, 1)
	assert.Equal(t, "first", f.replies.replies[0].Embed.Title)
	assert.Empty(t, f.dispatch.messages, "a keyword match is never dispatched")
}

func TestHandleMessageTrimAndCase(t *testing.T) {
	f := newFixture(t, nil, card("ping", "pong"))
	assert.Equal(t, Replied, f.r.HandleMessage(message("  ping  ")))

	f = newFixture(t, nil, card("Ping", "pong"))
	assert.Equal(t, Dispatched, f.r.HandleMessage(message("ping")))
	assert.Empty(t, f.replies.replies)
	require.Len(t, f.dispatch.messages, 1)
	assert.Equal(t, "ping", f.dispatch.messages[0].Content)
}

func TestHandleMessageReplyErrorIsSwallowed(t *testing.T) {
	f := newFixture(t, nil, card("ping", "pong"))
	f.replies.err = errors.New("missing permissions")

	assert.Equal(t, Replied, f.r.HandleMessage(message("ping")))
	assert.Empty(t, f.dispatch.messages)
}

func TestHandleMessageWithoutDispatcher(t *testing.T) {
	policy := access.NewPolicy([]snowflake.ID{monitored}, nil, nil)
	r := New(policy, nil, nil, &replyCapture{}, log.New(io.Discard))
	assert.Equal(t, Dispatched, r.HandleMessage(message("anything")))
}

func TestEmptyTableAlwaysDispatches(t *testing.T) {
	f := newFixture(t, nil)
	for _, text := range []string{"ping", "", "  ", "/reload"} {
		assert.Equal(t, Dispatched, f.r.HandleMessage(message(text)))
	}
	assert.Len(t, f.dispatch.messages, 4)
	assert.Empty(t, f.replies.replies)
}

func TestReload(t *testing.T) {
	policy := access.NewPolicy([]snowflake.ID{monitored}, nil, []snowflake.ID{admin})
	replies := &replyCapture{}

	load := func() (*keywords.Table, error) {
		return keywords.NewTable([]keywords.Rule{card("new", "fresh")}), nil
	}

	r := New(policy, keywords.NewTable([]keywords.Rule{card("old", "stale")}), load, replies, log.New(io.Discard))
	r.SetDispatcher(&dispatchCapture{})

	before := r.Snapshot()
	count, err := r.Reload()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	after := r.Snapshot()
	assert.NotSame(t, before, after)
	assert.Equal(t, 1, before.Keywords.Len(), "old snapshot is untouched")
	assert.True(t, after.Policy.IsAdmin(admin), "policy carries over")

	assert.Equal(t, Replied, r.HandleMessage(message("new")))
	assert.Equal(t, Dispatched, r.HandleMessage(message("old")))
}

func TestReloadFailureKeepsTable(t *testing.T) {
	policy := access.NewPolicy([]snowflake.ID{monitored}, nil, nil)
	current := keywords.NewTable([]keywords.Rule{card("ping", "pong")})

	r := New(policy, current, func() (*keywords.Table, error) {
		return nil, errors.New("permission denied")
	}, &replyCapture{}, log.New(io.Discard))

	_, err := r.Reload()
	require.Error(t, err)
	assert.Same(t, current, r.Snapshot().Keywords)

	r.load = func() (*keywords.Table, error) { panic("boom") }
	_, err = r.Reload()
	require.ErrorContains(t, err, "boom")
	assert.Same(t, current, r.Snapshot().Keywords)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "ignored", Ignored.String())
	assert.Equal(t, "replied", Replied.String())
	assert.Equal(t, "dispatched", Dispatched.String())
}
