package main

import (
	"context"

	"github.com/spf13/cobra"

	reportInfra "github.com/fd1az/eco-market-bot/business/report/infra"
	"github.com/fd1az/eco-market-bot/internal/apperror"
	"github.com/fd1az/eco-market-bot/internal/scheduler"
)

// chatBots holds the chat platforms that are configured.
type chatBots struct {
	discord  *reportInfra.DiscordBot
	telegram *reportInfra.TelegramBot
}

// newChatBots creates a bot per configured platform and adds its sink to the
// report service.
func (rt *runtime) newChatBots() (*chatBots, error) {
	reports := rt.reports()
	bots := &chatBots{}

	if rt.cfg.Discord.Enabled() {
		b, err := reportInfra.NewDiscordBot(rt.cfg.Discord.Token, rt.cfg.Discord.GuildID, reports, rt.cfg.Report.ChunkSize, rt.log)
		if err != nil {
			return nil, err
		}
		reports.AddSink(b.Sink(rt.cfg.Discord.ChannelID))
		bots.discord = b
	}

	if rt.cfg.Telegram.Enabled() {
		b, err := reportInfra.NewTelegramBot(rt.cfg.Telegram.Token, reports, rt.cfg.Report.ChunkSize, rt.log)
		if err != nil {
			return nil, err
		}
		reports.AddSink(b.Sink(rt.cfg.Telegram.ChatID))
		bots.telegram = b
	}

	if bots.discord == nil && bots.telegram == nil {
		return nil, apperror.New(apperror.CodeChatNotConfigured,
			apperror.WithMessage("set discord.token and discord.channel_id, or telegram.token and telegram.chat_id"))
	}
	return bots, nil
}

// addChatSinks adds send-only chat sinks.
func (rt *runtime) addChatSinks() error {
	_, err := rt.newChatBots()
	return err
}

// scheduleMonitor runs one deal check now and then every monitor interval.
func (rt *runtime) scheduleMonitor(ctx context.Context, sched *scheduler.Runner) error {
	detector := rt.dealMonitor()
	check := func(ctx context.Context) {
		if err := detector.Check(ctx); err != nil {
			rt.log.Error(ctx, "deal check failed", "error", err)
		}
	}

	check(ctx)
	if _, err := sched.Every("deal-monitor", rt.cfg.Schedule.MonitorInterval, check); err != nil {
		return err
	}
	rt.log.Info(ctx, "deal monitor scheduled",
		"interval", rt.cfg.Schedule.MonitorInterval.String(),
		"threshold", detector.Threshold().String())
	return nil
}

// newMonitorCommand watches for good deals appearing and disappearing.
func newMonitorCommand(opts *rootOptions) *cobra.Command {
	var toChat, quiet bool

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Report good deals as they appear and disappear",
		Long: `Check the market every schedule.monitor_interval. The first check lists all
deals with total profit of at least arbitrage.good_deal_threshold; later checks
list only new deals and deals that are no longer available.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if quiet && !toChat {
				return apperror.New(apperror.CodeInvalidInput,
					apperror.WithMessage("--quiet needs --chat, otherwise nothing is reported"))
			}

			return withRuntime(cmd.Context(), opts, func(ctx context.Context, rt *runtime) error {
				if !quiet {
					rt.reports().AddSink(reportInfra.NewConsoleSink(cmd.OutOrStdout()))
				}
				if toChat {
					if err := rt.addChatSinks(); err != nil {
						return err
					}
				}

				stopHealth := rt.startHealth(ctx)
				defer stopHealth()

				sched := scheduler.New(ctx, rt.log)
				if err := rt.scheduleMonitor(ctx, sched); err != nil {
					return err
				}
				sched.Start()
				<-ctx.Done()
				sched.Stop()
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&toChat, "chat", false, "Post deal changes to the configured chat channels")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Do not print deal changes to stdout")
	return cmd
}

// newBotCommand runs the chat bots with scheduled market reports.
func newBotCommand(opts *rootOptions) *cobra.Command {
	var withMonitor bool

	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Serve /market and /help and post scheduled market reports",
		Long: `Connect to Discord and/or Telegram, answer the /market and /help commands and
post the arbitrage report on schedule.report_cron (every :00 and :30 by default).

Examples:
  marketbot bot
  marketbot bot --monitor`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), opts, func(ctx context.Context, rt *runtime) error {
				bots, err := rt.newChatBots()
				if err != nil {
					return err
				}
				reports := rt.reports()

				if bots.discord != nil {
					if err := bots.discord.Open(ctx); err != nil {
						return err
					}
					defer func() {
						if err := bots.discord.Close(); err != nil {
							rt.log.Warn(ctx, "error closing discord session", "error", err)
						}
					}()
				}

				telegramDone := make(chan struct{})
				if bots.telegram != nil {
					go func() {
						defer close(telegramDone)
						if err := bots.telegram.Run(ctx); err != nil {
							rt.log.Error(ctx, "telegram bot stopped", "error", err)
						}
					}()
				} else {
					close(telegramDone)
				}

				stopHealth := rt.startHealth(ctx)
				defer stopHealth()

				sched := scheduler.New(ctx, rt.log)
				var jobOpts []scheduler.JobOption
				if rt.cfg.Schedule.SkipFirstReport {
					jobOpts = append(jobOpts, scheduler.SkipFirst())
				}
				if _, err := sched.Add("market-report", rt.cfg.Schedule.ReportCron, func(ctx context.Context) {
					if err := reports.PublishMarketReport(ctx); err != nil {
						rt.log.Error(ctx, "scheduled report failed", "error", err)
					}
				}, jobOpts...); err != nil {
					return err
				}
				if withMonitor {
					if err := rt.scheduleMonitor(ctx, sched); err != nil {
						return err
					}
				}

				sched.Start()
				rt.log.Info(ctx, "bot running",
					"sinks", reports.SinkNames(),
					"report_cron", rt.cfg.Schedule.ReportCron,
					"monitor", withMonitor)

				<-ctx.Done()
				sched.Stop()
				<-telegramDone
				rt.log.Info(context.Background(), "bot stopped")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&withMonitor, "monitor", false, "Also post good-deal changes every schedule.monitor_interval")
	return cmd
}
