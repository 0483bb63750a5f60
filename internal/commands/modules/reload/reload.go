package reload

import (
	"fmt"

	"bumpbot/internal/access"
	"bumpbot/internal/commands/types"
	"bumpbot/internal/config"
	"bumpbot/internal/events"

	"github.com/bwmarrin/discordgo"
)

const (
	msgNoPermission = "❌ You do not have permission to use this command."
	msgReloaded     = "✅ Configuration reloaded (%d keyword rule(s))."
	msgFailed       = "❌ Failed to reload configuration: %v"
)

// ReloadModule provides the admin-only reload command that re-reads the
// keyword file.
type ReloadModule struct {
	config   *config.Config
	policy   access.Policy
	reloader types.Reloader
}

// New creates a new reload module
func New(deps *types.Dependencies) *ReloadModule {
	return &ReloadModule{
		config:   deps.Config,
		policy:   deps.Policy,
		reloader: deps.Reloader,
	}
}

// Register adds the reload command to the command map
func (m *ReloadModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	// No DefaultMemberPermissions: admins are listed explicitly and may not
	// hold the Administrator permission.
	cmds["reload"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "reload",
			Description: "Reload the keyword configuration (admin only)",
		},
		HandlerFunc: m.handleReload,
	}
}

func (m *ReloadModule) handleReload(ev events.CommandEvent, reply types.ReplyFunc) {
	if !m.policy.IsAdmin(ev.AuthorID) {
		m.config.Logger.Warnf("Rejected reload from non-admin %s", ev.AuthorID)
		_ = reply(msgNoPermission)
		return
	}

	count, err := m.reloader.Reload()
	if err != nil {
		m.config.Logger.Errorf("Reload requested by %s failed: %v", ev.AuthorID, err)
		_ = reply(fmt.Sprintf(msgFailed, err))
		return
	}

	m.config.Logger.Infof("Configuration reloaded by %s: %d keyword rule(s)", ev.AuthorID, count)
	_ = reply(fmt.Sprintf(msgReloaded, count))
}
