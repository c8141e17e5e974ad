package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/I-am-Milind/backend-ai/internal/config"
	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/I-am-Milind/backend-ai/internal/service/agent"
	"github.com/I-am-Milind/backend-ai/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Collector interface {
	Collect(ctx context.Context, sessionID, input string) (agent.Reply, error)
}

type Bot struct {
	bot     *tele.Bot
	sender  *sender
	agent   Collector
	router  core.CmdRouter
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	agent Collector,
	router core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		sender:  newSender(b),
		agent:   agent,
		router:  router,
		ownerID: cfg.OwnerID,
	}

	// Handlers run with the signal-aware context carrying the logger.
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, log.WithComponent(ctx, "telegram"))
			return next(c)
		}
	})

	// Only the owner may talk to the bot.
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || c.Sender().ID != bot.ownerID {
				return nil
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	commands := make([]tele.Command, 0)
	for _, cmd := range b.router.ListCommands() {
		commands = append(commands, tele.Command{Text: cmd.Name(), Description: cmd.Description()})
	}
	if err := b.bot.SetCommands(commands); err != nil {
		logger.Warn().Err(err).Msg("failed to register telegram commands")
	}

	logger.Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	sessionID := fmt.Sprintf("telegram-%d", c.Chat().ID)

	if result, ok := b.router.Execute(ctx, sessionID, c.Text()); ok {
		return b.sender.sendMarkdown(ctx, c.Recipient(), result)
	}

	_ = c.Notify(tele.Typing)

	reply, err := b.agent.Collect(ctx, sessionID, c.Text())
	if err != nil {
		logger.Error().Err(err).Msg("agent failed")
		return c.Send(fmt.Sprintf("error: %v", err))
	}

	if reply.Envelope != nil {
		return b.sender.sendMarkdown(ctx, c.Recipient(), FormatEnvelope(*reply.Envelope))
	}
	return b.sender.sendMarkdown(ctx, c.Recipient(), reply.Text)
}
