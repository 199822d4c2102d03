package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tickerlab/internal/position"
	"tickerlab/internal/runner"
	"tickerlab/pkg/utils"
)

func newSizeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "size SYMBOL",
		Short: "Size a position from the symbol's analysis",
		Long: `Runs the analysis for the symbol, then computes how many shares fit
the risk budget: floor(capital * risk% / distance from entry to stop).
Entry defaults to the current price and stop to the analysis stop;
both can be overridden.`,
		Example: `  tickerlab size AAPL --capital 50000
  tickerlab size NVDA --capital 10000 --risk 2 --stop 95.50`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			capital, _ := cmd.Flags().GetFloat64("capital")
			riskPct, _ := cmd.Flags().GetFloat64("risk")
			entry, _ := cmd.Flags().GetFloat64("entry")
			stop, _ := cmd.Flags().GetFloat64("stop")
			offline, _ := cmd.Flags().GetBool("offline")
			if riskPct <= 0 {
				riskPct = app.Config.Position.DefaultRiskPercent
			}

			if _, err := app.Runner.Run(cmd.Context(), args[0], runner.Options{Offline: offline}); err != nil {
				return err
			}
			report, err := app.Runner.Last()
			if err != nil {
				return err
			}

			if entry <= 0 {
				entry = report.Result.Price
			}
			if stop <= 0 {
				stop = report.Result.Stop
			}

			sizing, err := position.Calculate(position.Request{
				EntryPrice:  entry,
				StopPrice:   stop,
				Capital:     capital,
				RiskPercent: riskPct,
			})
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(struct {
					Symbol string  `json:"symbol"`
					Entry  float64 `json:"entry"`
					Stop   float64 `json:"stop"`
					*position.Sizing
				}{report.Result.Symbol, entry, stop, sizing})
			}

			output.Bold("%s Position", report.Result.Symbol)
			if report.Result.DemoData {
				output.Warning("Sized from DEMO data, not live prices.")
			}
			output.Printf("  Capital:    %s at %.2f%% risk\n", utils.FormatUSD(capital), riskPct)
			output.Printf("  Entry/Stop: %s / %s  (%s per share)\n",
				utils.FormatPrice(entry), utils.FormatPrice(stop), utils.FormatUSD(sizing.RiskPerShare))
			output.Printf("  Shares:     %s  (risking %s)\n",
				utils.GroupThousands(fmt.Sprintf("%d", sizing.Shares)), utils.FormatUSD(sizing.RiskAmount))
			return nil
		},
	}

	cmd.Flags().Float64("capital", 0, "account capital (required)")
	cmd.Flags().Float64("risk", 0, "risk percent per trade (default from config)")
	cmd.Flags().Float64("entry", 0, "entry price override (default: current price)")
	cmd.Flags().Float64("stop", 0, "stop price override (default: analysis stop)")
	cmd.Flags().Bool("offline", false, "skip the quote source and analyze demo data")
	cmd.MarkFlagRequired("capital")

	return cmd
}
