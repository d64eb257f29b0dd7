package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	reportInfra "github.com/fd1az/eco-market-bot/business/report/infra"
)

// newReportCommand prints the best-pair arbitrage report.
func newReportCommand(opts *rootOptions) *cobra.Command {
	var toChat bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Best buy/sell pair per item",
		Long: `Find the cheapest seller and best buyer of every item and list the trades
whose total profit reaches arbitrage.min_total_profit.

Examples:
  marketbot report
  marketbot report --chat`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), opts, func(ctx context.Context, rt *runtime) error {
				reports := rt.reports()
				reports.AddSink(reportInfra.NewConsoleSink(cmd.OutOrStdout()))
				if toChat {
					if err := rt.addChatSinks(); err != nil {
						return err
					}
				}

				res, err := rt.arbitrage().BestPairs(ctx)
				if err != nil {
					return err
				}
				return reports.Publish(ctx, reports.Formatter().BestPairs(res))
			})
		},
	}

	cmd.Flags().BoolVar(&toChat, "chat", false, "Also post to the configured Discord/Telegram channels")
	return cmd
}

// newAnalyzeCommand prints the deep pairwise analysis.
func newAnalyzeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Every profitable store pair, by category, plus free items",
		Long: `Compare every seller with every buyer of each item, bucket the trades into
high profit, high ROI, low risk and bulk categories, and list items that one
store gives away and another buys.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), opts, func(ctx context.Context, rt *runtime) error {
				reports := rt.reports()
				reports.AddSink(reportInfra.NewConsoleSink(cmd.OutOrStdout()))

				// Buckets stay uncapped so the summary counts are complete.
				res, err := rt.arbitrage().Analyze(ctx, 0)
				if err != nil {
					return err
				}
				return reports.Publish(ctx, reports.Formatter().Analysis(res))
			})
		},
	}
}

// newCraftingCommand prints the crafting ranking.
func newCraftingCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "crafting",
		Short: "Recipes that can be bought, crafted and sold at a profit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), opts, func(ctx context.Context, rt *runtime) error {
				reports := rt.reports()
				reports.AddSink(reportInfra.NewConsoleSink(cmd.OutOrStdout()))

				res, err := rt.crafting().Opportunities(ctx)
				if err != nil {
					return err
				}
				return reports.Publish(ctx, reports.Formatter().Crafting(res))
			})
		},
	}
}

// newProfessionsCommand prints the theoretical profession ranking.
func newProfessionsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "professions",
		Short: "Rank professions by demand-driven crafting profit",
		Long: `Assume unlimited ingredient stock and rank professions by the profit their
recipes could make against current buy orders.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), opts, func(ctx context.Context, rt *runtime) error {
				reports := rt.reports()
				reports.AddSink(reportInfra.NewConsoleSink(cmd.OutOrStdout()))

				res, err := rt.crafting().Professions(ctx)
				if err != nil {
					return err
				}
				return reports.Publish(ctx, reports.Formatter().Professions(res))
			})
		},
	}
}

// newSaveSnapshotCommand stores the live listing for offline use.
func newSaveSnapshotCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save-snapshot",
		Short: "Fetch the store listing and save it as the local fallback file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), opts, func(ctx context.Context, rt *runtime) error {
				n, err := rt.market().SaveStores(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %d stores to %s\n", n, rt.cfg.API.FallbackFile)
				return nil
			})
		},
	}
}
