package telegram

//go:generate go run go.uber.org/mock/mockgen -source=./telegram.go -destination=./mocks/telegram_mock.go -package=mocks

import (
	"context"
	"fmt"

	"libroom/config"
	"libroom/infras/otel"
	"libroom/shared/constant"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Notifier sends chat messages to users and the admin channel. Every send is
// fire-once: no retry, no queueing. Callers are expected to log and swallow
// errors so a failed notification never fails the triggering operation.
type Notifier interface {
	SendToAdmins(ctx context.Context, text string) error
	SendToChat(ctx context.Context, chatID int64, text string) error
}

type notifierImpl struct {
	bot  *tgbotapi.BotAPI
	cfg  *config.Config
	otel otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) Notifier {
	if !cfg.External.Telegram.Enable {
		log.Info().Msg("Telegram notifications disabled")

		return &noopNotifier{}
	}

	bot, err := tgbotapi.NewBotAPI(cfg.External.Telegram.BotToken)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize Telegram bot, notifications disabled")

		return &noopNotifier{}
	}

	log.Info().Str("bot", bot.Self.UserName).Msg("Telegram bot initialized")

	return &notifierImpl{
		bot:  bot,
		cfg:  cfg,
		otel: ot,
	}
}

func (n *notifierImpl) SendToAdmins(ctx context.Context, text string) error {
	return n.SendToChat(ctx, n.cfg.External.Telegram.AdminChatID, text)
}

func (n *notifierImpl) SendToChat(ctx context.Context, chatID int64, text string) (err error) {
	_, scope := n.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".telegram.SendToChat")
	defer scope.End()
	defer scope.TraceIfError(err)

	if chatID == 0 {
		return nil
	}

	msg := tgbotapi.NewMessage(chatID, text)

	if _, err = n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}

	return nil
}

type noopNotifier struct{}

func (n *noopNotifier) SendToAdmins(_ context.Context, _ string) error { return nil }

func (n *noopNotifier) SendToChat(_ context.Context, _ int64, _ string) error { return nil }
