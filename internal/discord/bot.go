package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/askforge/doubtbot/internal/domain/query"
	"github.com/askforge/doubtbot/internal/format"
)

// Config carries the bot's chat-side settings.
type Config struct {
	CommandPrefix string
	// WelcomeChannelID enables join greetings when set.
	WelcomeChannelID string
	// WatchThreadID enables the legacy periodic thread check when set.
	WatchThreadID string
}

// Bot routes gateway events into the query service.
type Bot struct {
	session *discordgo.Session
	gateway *Gateway
	queries *query.Service
	cfg     Config
	logger  *slog.Logger

	// ctx is the lifecycle context from Start; event handlers derive
	// their contexts from it so shutdown cancels in-flight calls.
	ctx context.Context
}

// New creates the event router around an unopened session.
func New(session *discordgo.Session, gateway *Gateway, queries *query.Service, cfg Config, logger *slog.Logger) *Bot {
	if cfg.CommandPrefix == "" {
		cfg.CommandPrefix = "!"
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Bot{
		session: session,
		gateway: gateway,
		queries: queries,
		cfg:     cfg,
		logger:  logger,
	}
}

// Start registers handlers and opens the gateway connection. A login
// failure surfaces here.
func (b *Bot) Start(ctx context.Context) error {
	b.ctx = ctx
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onMessageCreate)
	b.session.AddHandler(b.onMemberJoin)
	b.session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent |
		discordgo.IntentGuildMembers |
		discordgo.IntentDirectMessages

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("connecting to gateway: %w", err)
	}

	if b.cfg.WatchThreadID != "" {
		go b.watchThread(ctx)
	}
	return nil
}

// Close shuts the gateway connection down.
func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("logged in", "user", r.User.Username, "id", r.User.ID)
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}
	ctx := b.eventContext()

	if ch, err := b.channel(m.ChannelID); err == nil && strings.HasPrefix(ch.Name, "bot") {
		b.logger.Debug("bot-channel traffic",
			"channel", ch.Name, "author", m.Author.Username, "content", m.Content)
	}

	if cmd, ok := parseCommand(m.Content, b.cfg.CommandPrefix); ok {
		b.dispatchCommand(ctx, m, cmd)
		return
	}

	msg := query.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		Author:    query.UserRef{ID: m.Author.ID, Name: m.Author.Username},
		Content:   m.Content,
		Mentions:  userRefs(m.Mentions),
	}
	if err := b.queries.Submit(ctx, msg); err != nil {
		b.logger.Error("handling submission", "channel", m.ChannelID, "error", err)
	}
}

func (b *Bot) dispatchCommand(ctx context.Context, m *discordgo.MessageCreate, cmd string) {
	actor := query.UserRef{ID: m.Author.ID, Name: m.Author.Username}

	var err error
	switch cmd {
	case "hello":
		err = b.gateway.Send(ctx, m.ChannelID, format.HelloReply())
	case "resolve":
		err = b.queries.Resolve(ctx, actor, m.ChannelID, b.isThread(m.ChannelID))
	case "opendoubts":
		err = b.queries.ListOpen(ctx, actor, m.ChannelID)
	default:
		return
	}
	if err != nil {
		b.logger.Error("handling command", "command", cmd, "channel", m.ChannelID, "error", err)
	}
}

func (b *Bot) onMemberJoin(_ *discordgo.Session, e *discordgo.GuildMemberAdd) {
	if b.cfg.WelcomeChannelID == "" || e.User == nil {
		return
	}
	ctx := b.eventContext()
	if err := b.gateway.Send(ctx, b.cfg.WelcomeChannelID, format.Welcome(e.User.ID)); err != nil {
		b.logger.Error("sending welcome", "user", e.User.ID, "error", err)
	}
}

// eventContext returns the lifecycle context, or Background before Start.
func (b *Bot) eventContext() context.Context {
	if b.ctx != nil {
		return b.ctx
	}
	return context.Background()
}

// channel resolves a channel from the state cache, falling back to REST.
func (b *Bot) channel(id string) (*discordgo.Channel, error) {
	if ch, err := b.session.State.Channel(id); err == nil {
		return ch, nil
	}
	return b.session.Channel(id)
}

func (b *Bot) isThread(channelID string) bool {
	ch, err := b.channel(channelID)
	if err != nil {
		b.logger.Debug("resolving channel", "channel", channelID, "error", err)
		return false
	}
	return ch.IsThread()
}

// parseCommand extracts the command name from a prefixed message.
func parseCommand(content, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(content, prefix)
	if !ok {
		return "", false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", false
	}
	return strings.ToLower(fields[0]), true
}

func userRefs(users []*discordgo.User) []query.UserRef {
	refs := make([]query.UserRef, 0, len(users))
	for _, u := range users {
		if u == nil || u.Bot {
			continue
		}
		refs = append(refs, query.UserRef{ID: u.ID, Name: u.Username})
	}
	return refs
}
