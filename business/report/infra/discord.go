package infra

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/fd1az/eco-market-bot/business/report/app"
	"github.com/fd1az/eco-market-bot/business/report/domain"
	"github.com/fd1az/eco-market-bot/internal/apperror"
	"github.com/fd1az/eco-market-bot/internal/logger"
	"github.com/fd1az/eco-market-bot/internal/ratelimit"
)

const discordSendInterval = time.Second

var slashCommands = []*discordgo.ApplicationCommand{
	{Name: CommandMarket, Description: "Get current arbitrage report"},
	{Name: CommandHelp, Description: "Show available bot commands"},
}

// DiscordSession is the part of *discordgo.Session the sink uses.
type DiscordSession interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordSink posts reports to one channel.
type DiscordSink struct {
	session   DiscordSession
	channelID string
	limiter   *ratelimit.Limiter
}

var _ app.Sink = (*DiscordSink)(nil)

// NewDiscordSink creates a sink for channelID.
func NewDiscordSink(session DiscordSession, channelID string) *DiscordSink {
	return &DiscordSink{
		session:   session,
		channelID: channelID,
		limiter:   ratelimit.NewInterval(discordSendInterval),
	}
}

// Name implements app.Sink.
func (s *DiscordSink) Name() string {
	return "discord"
}

// Send implements app.Sink.
func (s *DiscordSink) Send(ctx context.Context, message string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := s.session.ChannelMessageSend(s.channelID, message, discordgo.WithContext(ctx))
	return err
}

// interactionSession is the part of *discordgo.Session used to answer slash commands.
type interactionSession interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordBot owns the gateway connection and serves the /market and /help commands.
type DiscordBot struct {
	session   *discordgo.Session
	guildID   string
	commands  Commands
	chunkSize int
	log       logger.LoggerInterface

	ctx        context.Context
	registered []*discordgo.ApplicationCommand
}

// NewDiscordBot creates a bot. Commands are registered on guildID, or
// globally when it is empty.
func NewDiscordBot(token, guildID string, commands Commands, chunkSize int, log logger.LoggerInterface) (*DiscordBot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, apperror.New(apperror.CodeConfigurationError,
			apperror.WithContext("discord session"), apperror.WithCause(err))
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	b := &DiscordBot{
		session:   session,
		guildID:   guildID,
		commands:  commands,
		chunkSize: chunkSize,
		log:       log,
		ctx:       context.Background(),
	}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	return b, nil
}

// Sink returns a sink posting to channelID through the bot's session.
func (b *DiscordBot) Sink(channelID string) *DiscordSink {
	return NewDiscordSink(b.session, channelID)
}

// Open connects to the gateway and registers the slash commands.
// Interactions are served with ctx until Close.
func (b *DiscordBot) Open(ctx context.Context) error {
	b.ctx = ctx
	if err := b.session.Open(); err != nil {
		return apperror.External(apperror.CodeChatDeliveryFailed, "discord gateway", err)
	}

	appID := b.session.State.User.ID
	for _, cmd := range slashCommands {
		created, err := b.session.ApplicationCommandCreate(appID, b.guildID, cmd)
		if err != nil {
			return apperror.External(apperror.CodeChatDeliveryFailed, "register /"+cmd.Name, err)
		}
		b.registered = append(b.registered, created)
	}

	b.log.Info(ctx, "discord bot connected", "commands", len(b.registered), "guild", b.guildID)
	return nil
}

// Close removes guild-scoped commands and disconnects.
func (b *DiscordBot) Close() error {
	if b.guildID != "" && b.session.State != nil && b.session.State.User != nil {
		for _, cmd := range b.registered {
			if err := b.session.ApplicationCommandDelete(b.session.State.User.ID, b.guildID, cmd.ID); err != nil {
				b.log.Warn(b.ctx, "failed to remove slash command", "command", cmd.Name, "error", err)
			}
		}
	}
	return b.session.Close()
}

func (b *DiscordBot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info(b.ctx, "discord session ready", "user", r.User.Username)
}

func (b *DiscordBot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	name := i.ApplicationCommandData().Name
	if err := b.handleCommand(b.ctx, s, i.Interaction, name); err != nil {
		b.log.Error(b.ctx, "slash command failed", "command", name, "error", err)
	}
}

// handleCommand answers /help inline. Anything slower is deferred and
// delivered as ordered follow-up chunks.
func (b *DiscordBot) handleCommand(ctx context.Context, s interactionSession, i *discordgo.Interaction, name string) error {
	if name == CommandHelp {
		return s.InteractionRespond(i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Content: b.commands.Help(ctx).String()},
		})
	}

	if err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		return err
	}

	doc, ok := answer(ctx, b.commands, name)
	if !ok {
		doc = domain.NewDocument("unknown").Add("Unknown command. Use /help to see available commands.")
	}

	for _, chunk := range doc.Chunks(b.chunkSize) {
		if _, err := s.FollowupMessageCreate(i, true, &discordgo.WebhookParams{Content: chunk}); err != nil {
			return err
		}
	}
	b.log.Info(ctx, "slash command answered", "command", name, "report", doc.Title)
	return nil
}
