package infra

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/eco-market-bot/business/report/domain"
	"github.com/fd1az/eco-market-bot/internal/logger"
	"github.com/fd1az/eco-market-bot/internal/ratelimit"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, args ...any)              {}
func (m *mockLogger) Info(ctx context.Context, msg string, args ...any)               {}
func (m *mockLogger) Warn(ctx context.Context, msg string, args ...any)               {}
func (m *mockLogger) Error(ctx context.Context, msg string, args ...any)              {}
func (m *mockLogger) Debugc(ctx context.Context, caller int, msg string, args ...any) {}
func (m *mockLogger) Infoc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Warnc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Errorc(ctx context.Context, caller int, msg string, args ...any) {}

var _ logger.LoggerInterface = (*mockLogger)(nil)

type stubCommands struct {
	market *domain.Document
	calls  int
}

func (c *stubCommands) MarketReport(ctx context.Context) *domain.Document {
	c.calls++
	return c.market
}

func (c *stubCommands) Help(ctx context.Context) *domain.Document {
	return domain.NewDocument("help").Add("**Market Bot Commands:**")
}

func unlimited() *ratelimit.Limiter { return ratelimit.New(0) }

func TestConsoleSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf)

	require.NoError(t, sink.Send(context.Background(), "first"))
	require.NoError(t, sink.Send(context.Background(), "second"))

	assert.Equal(t, "console", sink.Name())
	assert.Equal(t, "first\n\nsecond\n\n", buf.String())
}

type fakeChannel struct {
	channel  string
	messages []string
	err      error
}

func (f *fakeChannel) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.channel = channelID
	f.messages = append(f.messages, content)
	return &discordgo.Message{Content: content}, nil
}

func TestDiscordSink(t *testing.T) {
	session := &fakeChannel{}
	sink := NewDiscordSink(session, "chan-1")
	sink.limiter = unlimited()

	require.NoError(t, sink.Send(context.Background(), "hello"))
	require.NoError(t, sink.Send(context.Background(), "world"))

	assert.Equal(t, "discord", sink.Name())
	assert.Equal(t, "chan-1", session.channel)
	assert.Equal(t, []string{"hello", "world"}, session.messages)
}

func TestDiscordSink_Error(t *testing.T) {
	sink := NewDiscordSink(&fakeChannel{err: errors.New("401 unauthorized")}, "chan-1")

	assert.Error(t, sink.Send(context.Background(), "hello"))
}

func TestDiscordSink_CancelledContext(t *testing.T) {
	session := &fakeChannel{}
	sink := NewDiscordSink(session, "chan-1")
	require.NoError(t, sink.Send(context.Background(), "first"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, sink.Send(ctx, "second"))
	assert.Len(t, session.messages, 1)
}

type fakeInteractions struct {
	responses []*discordgo.InteractionResponse
	followups []string
}

func (f *fakeInteractions) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeInteractions) FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.followups = append(f.followups, data.Content)
	return &discordgo.Message{Content: data.Content}, nil
}

func TestDiscordBot_HandleCommand(t *testing.T) {
	t.Run("market is deferred then chunked", func(t *testing.T) {
		commands := &stubCommands{market: domain.NewDocument("market").Add("header", "record one", "record two")}
		bot := &DiscordBot{commands: commands, chunkSize: 12, log: &mockLogger{}}
		session := &fakeInteractions{}

		err := bot.handleCommand(context.Background(), session, &discordgo.Interaction{}, CommandMarket)

		require.NoError(t, err)
		require.Len(t, session.responses, 1)
		assert.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, session.responses[0].Type)
		assert.Equal(t, []string{"header", "record one", "record two"}, session.followups)
		assert.Equal(t, 1, commands.calls)
	})

	t.Run("help answers inline", func(t *testing.T) {
		bot := &DiscordBot{commands: &stubCommands{}, chunkSize: 2000, log: &mockLogger{}}
		session := &fakeInteractions{}

		err := bot.handleCommand(context.Background(), session, &discordgo.Interaction{}, CommandHelp)

		require.NoError(t, err)
		require.Len(t, session.responses, 1)
		assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, session.responses[0].Type)
		assert.Equal(t, "**Market Bot Commands:**", session.responses[0].Data.Content)
		assert.Empty(t, session.followups)
	})
}

type fakeTelegram struct {
	texts   []string
	actions int
	chatIDs []int64
}

func (f *fakeTelegram) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	switch m := c.(type) {
	case tgbotapi.MessageConfig:
		f.texts = append(f.texts, m.Text)
		f.chatIDs = append(f.chatIDs, m.ChatID)
	case tgbotapi.ChatActionConfig:
		f.actions++
	}
	return tgbotapi.Message{}, nil
}

func TestTelegramSink(t *testing.T) {
	api := &fakeTelegram{}
	sink := NewTelegramSink(api, 42)
	sink.limiter = unlimited()

	require.NoError(t, sink.Send(context.Background(), "hello"))
	require.NoError(t, sink.Send(context.Background(), "world"))

	assert.Equal(t, "telegram", sink.Name())
	assert.Equal(t, []string{"hello", "world"}, api.texts)
	assert.Equal(t, []int64{42, 42}, api.chatIDs)
}

func TestTelegramBot_Handle(t *testing.T) {
	tests := []struct {
		name        string
		command     string
		wantTexts   []string
		wantActions int
	}{
		{
			name:        "market",
			command:     CommandMarket,
			wantTexts:   []string{"header\n\nrecord one"},
			wantActions: 1,
		},
		{
			name:      "help",
			command:   CommandHelp,
			wantTexts: []string{"**Market Bot Commands:**"},
		},
		{
			name:      "unknown",
			command:   "start",
			wantTexts: []string{"Unknown command. Use /help to see available commands."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeTelegram{}
			bot := &TelegramBot{
				api:       api,
				commands:  &stubCommands{market: domain.NewDocument("market").Add("header", "record one")},
				chunkSize: 100,
				log:       &mockLogger{},
			}

			require.NoError(t, bot.handle(context.Background(), 7, tt.command))

			assert.Equal(t, tt.wantTexts, api.texts)
			assert.Equal(t, tt.wantActions, api.actions)
		})
	}
}
