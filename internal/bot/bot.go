package bot

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/MakeNowJust/heredoc"
	"github.com/bwmarrin/discordgo"

	"bumpbot/internal/access"
	"bumpbot/internal/commands"
	"bumpbot/internal/config"
	"bumpbot/internal/events"
	"bumpbot/internal/keywords"
	"bumpbot/internal/responder"
	"bumpbot/internal/scheduler"
	"bumpbot/internal/utils"
)

// Bot represents the Discord bot
type Bot struct {
	session              *discordgo.Session
	config               *config.Config
	responder            *responder.Responder
	commandModuleHandler *commands.ModuleHandler
	scheduler            *scheduler.Scheduler
	ready                atomic.Bool // guards interaction handling until startup completes
	opts                 sendOpts
}

// New creates a new Bot instance
func New(cfg *config.Config) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.GetBotToken())
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	policy := access.NewPolicy(cfg.GetMonitorChannelIDs(), cfg.GetRequiredRoleIDs(), cfg.GetAdminUserIDs())

	keywordsPath := cfg.GetKeywordsPath()
	load := func() (*keywords.Table, error) {
		return keywords.Load(keywordsPath, cfg.Logger)
	}

	// Startup never fails on the keyword file.
	table, err := load()
	if err != nil {
		cfg.Logger.Warnf("Error loading keywords, starting with an empty table: %v", err)
		table = keywords.Empty()
	}

	bot := &Bot{
		session: session,
		config:  cfg,
		opts:    defaultSendOpts(session),
	}

	bot.responder = responder.New(policy, table, load, bot, cfg.Logger)
	bot.commandModuleHandler = commands.NewModuleHandler(cfg, policy, bot.responder, bot.replyText)
	bot.responder.SetDispatcher(bot.commandModuleHandler)

	bot.ready.Store(false)

	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onMessageCreate)
	session.AddHandler(bot.onInteractionCreate)

	return bot, nil
}

// Start starts the bot and blocks until SIGINT/SIGTERM.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening Discord connection: %w", err)
	}
	defer func() {
		if err := b.session.Close(); err != nil {
			b.config.Logger.Warn("error closing Discord session:", err)
		}
	}()

	if b.config.GetSlashCommandsEnabled() {
		if err := b.commandModuleHandler.RegisterCommands(b.session); err != nil {
			return fmt.Errorf("error registering commands: %w", err)
		}
	}

	b.scheduler = scheduler.NewScheduler(b.config)
	if err := b.scheduler.RegisterFunc("@hourly", "log-rotation", b.config.RotateAndPruneLogs); err != nil {
		b.config.Logger.Errorf("Failed to register log rotation: %v", err)
	}
	b.scheduler.Start()
	defer b.scheduler.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if b.config.GetKeywordsAutoReload() {
		err := keywords.Watch(ctx, b.config.GetKeywordsPath(), b.config.Logger, func() {
			if count, err := b.responder.Reload(); err != nil {
				b.config.Logger.Errorf("Automatic keyword reload failed: %v", err)
			} else {
				b.config.Logger.Infof("Keywords reloaded automatically: %d rule(s)", count)
			}
		})
		if err != nil {
			b.config.Logger.Warnf("Keyword auto-reload disabled: %v", err)
		}
	}

	b.ready.Store(true)
	b.config.Logger.Info("Bump bot is now running. Press CTRL+C to exit.")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if b.config.GetSlashCommandsEnabled() && b.config.GetUnregisterCommands() {
		b.commandModuleHandler.UnregisterCommands(b.session)
	}

	return nil
}

// onReady handles the ready event
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	policy := b.responder.Policy()
	b.config.Logger.Info(heredoc.Docf(`
		Bot received ready signal! Logged in as: %s
		Monitored channels: %v
		Required roles: %v
		Admins: %v
		Keyword rules: %d`,
		r.User.Username, policy.Channels(), policy.Roles(), policy.Admins(), b.responder.Snapshot().Keywords.Len()))

	if err := s.UpdateGameStatus(0, "Type "+b.config.GetCommandPrefix()+"help"); err != nil {
		b.config.Logger.Warn("Error setting status:", err)
	}
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	selfID := ""
	if s.State != nil && s.State.User != nil {
		selfID = s.State.User.ID
	}

	ev, ok := events.FromMessageCreate(selfID, m, utils.MemberLookup(s))
	if !ok {
		return
	}
	b.route(ev)
}

func (b *Bot) route(ev events.Event) {
	switch e := ev.(type) {
	case events.MessageEvent:
		outcome := b.responder.HandleMessage(e)
		b.config.Logger.Debugf("Message %s in %s: %s", e.MessageID, e.ChannelID, outcome)
	case events.CommandEvent:
		// Application commands go straight to the module handler via
		// onInteractionCreate; nothing produces a bare CommandEvent here.
		b.config.Logger.Debugf("Dropping unrouted command event %q", e.Name)
	}
}

// onInteractionCreate handles slash command interactions
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if !b.ready.Load() {
		_ = b.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "⏳ Bot is starting up, try again in a few seconds.",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		return
	}
	b.commandModuleHandler.HandleInteraction(s, i)
}
