package infra

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fd1az/eco-market-bot/business/report/app"
	"github.com/fd1az/eco-market-bot/internal/apperror"
	"github.com/fd1az/eco-market-bot/internal/logger"
	"github.com/fd1az/eco-market-bot/internal/ratelimit"
)

// Minimum gap between two messages to the same chat (~30/min limit).
const telegramSendInterval = 2 * time.Second

const telegramUpdateTimeout = 60

// TelegramAPI is the part of *tgbotapi.BotAPI used to send messages.
type TelegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSink posts reports to one chat.
type TelegramSink struct {
	api     TelegramAPI
	chatID  int64
	limiter *ratelimit.Limiter
}

var _ app.Sink = (*TelegramSink)(nil)

// NewTelegramSink creates a sink for chatID.
func NewTelegramSink(api TelegramAPI, chatID int64) *TelegramSink {
	return &TelegramSink{
		api:     api,
		chatID:  chatID,
		limiter: ratelimit.NewInterval(telegramSendInterval),
	}
}

// Name implements app.Sink.
func (s *TelegramSink) Name() string {
	return "telegram"
}

// Send implements app.Sink. Messages go out as plain text.
func (s *TelegramSink) Send(ctx context.Context, message string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := s.api.Send(tgbotapi.NewMessage(s.chatID, message))
	return err
}

// TelegramBot polls for /market and /help and answers in the asking chat.
type TelegramBot struct {
	bot       *tgbotapi.BotAPI
	api       TelegramAPI
	commands  Commands
	chunkSize int
	log       logger.LoggerInterface
}

// NewTelegramBot authorizes token against the Bot API.
func NewTelegramBot(token string, commands Commands, chunkSize int, log logger.LoggerInterface) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, apperror.New(apperror.CodeConfigurationError,
			apperror.WithContext("telegram bot"), apperror.WithCause(err))
	}
	bot.Debug = false
	log.Info(context.Background(), "telegram bot authorized", "account", bot.Self.UserName)

	return &TelegramBot{
		bot:       bot,
		api:       bot,
		commands:  commands,
		chunkSize: chunkSize,
		log:       log,
	}, nil
}

// Sink returns a sink posting to chatID through the bot.
func (b *TelegramBot) Sink(chatID int64) *TelegramSink {
	return NewTelegramSink(b.bot, chatID)
}

// Run serves commands until ctx is done.
func (b *TelegramBot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = telegramUpdateTimeout
	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			cmd := update.Message.Command()
			if err := b.handle(ctx, update.Message.Chat.ID, cmd); err != nil {
				b.log.Error(ctx, "telegram command failed", "command", cmd, "error", err)
			}
		}
	}
}

func (b *TelegramBot) handle(ctx context.Context, chatID int64, command string) error {
	if command == CommandMarket {
		if _, err := b.api.Send(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
			b.log.Debug(ctx, "typing indicator failed", "error", err)
		}
	}

	doc, ok := answer(ctx, b.commands, command)
	if !ok {
		_, err := b.api.Send(tgbotapi.NewMessage(chatID, "Unknown command. Use /help to see available commands."))
		return err
	}

	for _, chunk := range doc.Chunks(b.chunkSize) {
		if _, err := b.api.Send(tgbotapi.NewMessage(chatID, chunk)); err != nil {
			return err
		}
	}
	b.log.Info(ctx, "telegram command answered", "command", command, "report", doc.Title)
	return nil
}
