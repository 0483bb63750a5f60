package commands

import (
	"sort"

	"bumpbot/internal/access"
	"bumpbot/internal/commands/modules/help"
	"bumpbot/internal/commands/modules/reload"
	"bumpbot/internal/commands/types"
	"bumpbot/internal/config"
	"bumpbot/internal/events"

	"github.com/bwmarrin/discordgo"
)

// MessageReplyFunc replies to the message a text command was parsed from.
type MessageReplyFunc func(ev events.MessageEvent, content string) error

type handlerOpts struct {
	ReplyToMessage MessageReplyFunc
	Respond        func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
}

func respond(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	return s.InteractionRespond(i, resp)
}

// ModuleHandler manages command modules and routes both prefixed text
// commands and application command interactions to them.
type ModuleHandler struct {
	commands map[string]*types.Command
	modules  map[string]types.CommandModule
	config   *config.Config
	deps     *types.Dependencies
	opts     handlerOpts
}

// NewModuleHandler creates a new module-based command handler
func NewModuleHandler(cfg *config.Config, policy access.Policy, reloader types.Reloader, replyToMessage MessageReplyFunc) *ModuleHandler {
	h := &ModuleHandler{
		commands: make(map[string]*types.Command),
		modules:  make(map[string]types.CommandModule),
		config:   cfg,
		deps: &types.Dependencies{
			Config:   cfg,
			Policy:   policy,
			Reloader: reloader,
			Prefix:   cfg.GetCommandPrefix(),
		},
		opts: handlerOpts{
			ReplyToMessage: replyToMessage,
			Respond:        respond,
		},
	}

	h.registerModules()

	return h
}

// registerModules registers all command modules
func (h *ModuleHandler) registerModules() {
	modules := []struct {
		name   string
		module types.CommandModule
	}{
		{"reload", reload.New(h.deps)},
		{"help", help.New(h.deps)},
	}

	for _, m := range modules {
		m.module.Register(h.commands, h.deps)
		h.modules[m.name] = m.module
	}
}

// GetModule returns a module by name.
func (h *ModuleHandler) GetModule(name string) types.CommandModule {
	return h.modules[name]
}

// CommandNames returns the registered command names, sorted.
func (h *ModuleHandler) CommandNames() []string {
	names := make([]string, 0, len(h.commands))
	for name := range h.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the command named by a prefixed message. It returns false
// when the message is not a known command. Messages from bots never run
// commands.
func (h *ModuleHandler) Dispatch(ev events.MessageEvent) bool {
	if ev.AuthorIsBot {
		return false
	}

	name, args, ok := ParseCommand(h.deps.Prefix, ev.Content)
	if !ok {
		return false
	}

	cmd, exists := h.commands[name]
	if !exists {
		h.config.Logger.Debugf("Unknown command %q from %s", name, ev.AuthorID)
		return false
	}

	source := ev
	cmdEvent := events.CommandEvent{
		Name:      name,
		Args:      args,
		AuthorID:  ev.AuthorID,
		ChannelID: ev.ChannelID,
		GuildID:   ev.GuildID,
		Source:    &source,
	}

	cmd.HandlerFunc(cmdEvent, func(content string) error {
		if err := h.opts.ReplyToMessage(source, content); err != nil {
			h.config.Logger.Errorf("Error replying to %s command: %v", name, err)
			return err
		}
		return nil
	})
	return true
}

// RegisterCommands registers the application commands with Discord
func (h *ModuleHandler) RegisterCommands(s *discordgo.Session) error {
	existingCommands, err := s.ApplicationCommands(s.State.User.ID, "")
	if err != nil {
		h.config.Logger.Warnf("Error fetching existing commands: %v", err)
		return err
	}

	existingByName := make(map[string]*discordgo.ApplicationCommand)
	for _, ec := range existingCommands {
		existingByName[ec.Name] = ec
	}

	for _, name := range h.CommandNames() {
		c := h.commands[name]
		if c.ApplicationCommand == nil {
			continue
		}

		if c.Development {
			if existing := existingByName[c.ApplicationCommand.Name]; existing != nil {
				if err := s.ApplicationCommandDelete(s.State.User.ID, "", existing.ID); err != nil {
					h.config.Logger.Warnf("Error deleting command %s: %v", c.ApplicationCommand.Name, err)
				} else {
					h.config.Logger.Infof("Unregistered command: %s", c.ApplicationCommand.Name)
				}
			}
			continue
		}

		if existing := existingByName[c.ApplicationCommand.Name]; existing != nil {
			cmd, err := s.ApplicationCommandEdit(s.State.User.ID, "", existing.ID, c.ApplicationCommand)
			if err != nil {
				return err
			}
			c.ApplicationCommand.ID = cmd.ID
			h.config.Logger.Infof("Updated command: %s", cmd.Name)
		} else {
			cmd, err := s.ApplicationCommandCreate(s.State.User.ID, "", c.ApplicationCommand)
			if err != nil {
				return err
			}
			c.ApplicationCommand.ID = cmd.ID
			h.config.Logger.Infof("Registered command: %s", cmd.Name)
		}
	}

	return nil
}

// HandleInteraction routes application command interactions to handlers.
// Replies are ephemeral.
func (h *ModuleHandler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ev, ok := events.FromInteraction(i)
	if !ok {
		return
	}

	cmd, exists := h.commands[ev.Name]
	if !exists || cmd.ApplicationCommand == nil {
		return
	}

	cmd.HandlerFunc(ev, func(content string) error {
		err := h.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: content,
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		if err != nil {
			h.config.Logger.Errorf("Error responding to %s interaction: %v", ev.Name, err)
		}
		return err
	})
}

// UnregisterCommands removes all registered commands
func (h *ModuleHandler) UnregisterCommands(s *discordgo.Session) {
	existingCommands, err := s.ApplicationCommands(s.State.User.ID, "")
	if err != nil {
		h.config.Logger.Warnf("Error fetching existing commands: %v", err)
		return
	}

	for _, existingCmd := range existingCommands {
		if _, exists := h.commands[existingCmd.Name]; exists {
			if err := s.ApplicationCommandDelete(s.State.User.ID, "", existingCmd.ID); err != nil {
				h.config.Logger.Warnf("Error deleting command %s: %v", existingCmd.Name, err)
			} else {
				h.config.Logger.Infof("Unregistered command: %s", existingCmd.Name)
			}
		}
	}
}
