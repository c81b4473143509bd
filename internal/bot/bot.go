package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/cookie-is-yummy/weed/internal/config"
	"github.com/cookie-is-yummy/weed/internal/economy"
	"github.com/cookie-is-yummy/weed/internal/leaderboard"
	"github.com/cookie-is-yummy/weed/internal/notify"
)

// Bot owns the gateway session and routes prefix commands to handlers.
type Bot struct {
	session *discordgo.Session
	eco     *economy.Service
	boards  *leaderboard.Boards
	log     *slog.Logger
	prefix  string

	handlers map[string]handlerFunc
}

type handlerFunc func(ctx context.Context, m *discordgo.MessageCreate, args []string) error

func New(cfg config.BotConfig, eco *economy.Service, boards *leaderboard.Boards, logger *slog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent
	session.StateEnabled = true

	if logger == nil {
		logger = slog.Default()
	}

	b := &Bot{
		session: session,
		eco:     eco,
		boards:  boards,
		log:     logger,
		prefix:  cfg.Prefix,
	}
	b.handlers = map[string]handlerFunc{
		"rob":         b.handleRob,
		"steal":       b.handleRob,
		"top":         b.handleTop,
		"leaderboard": b.handleTop,
		"lb":          b.handleTop,
	}
	session.AddHandler(b.onMessageCreate)
	return b, nil
}

// Run opens the gateway connection and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	b.log.Info("gateway connected", "user", b.session.State.User.Username)

	<-ctx.Done()
	b.log.Info("closing gateway")
	return b.session.Close()
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	if !strings.HasPrefix(m.Content, b.prefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, b.prefix))
	if len(fields) == 0 {
		return
	}
	name := strings.ToLower(fields[0])
	handler, ok := b.handlers[name]
	if !ok {
		return
	}

	ctx := context.Background()
	if err := b.eco.AddCommandUse(ctx, m.Author.ID, name); err != nil {
		b.log.Warn("record command use", "command", name, "err", err)
	}
	if err := handler(ctx, m, fields[1:]); err != nil {
		b.log.Error("command failed", "command", name, "user", m.Author.ID, "err", err)
		b.replyError(m.ChannelID, "something went wrong, try again later")
	}
}

// SendDM implements notify.Sender over the gateway session.
func (b *Bot) SendDM(ctx context.Context, recipientID string, p notify.Payload) error {
	channel, err := b.session.UserChannelCreate(recipientID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("open dm channel: %w", err)
	}
	_, err = b.session.ChannelMessageSendEmbed(channel.ID, payloadEmbed(p), discordgo.WithContext(ctx))
	return err
}

var _ notify.Sender = (*Bot)(nil)
