package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tickerlab/internal/analysis"
	"tickerlab/internal/position"
	"tickerlab/internal/runner"
	"tickerlab/pkg/utils"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze SYMBOL",
		Short: "Run the full technical analysis for one symbol",
		Long: `Fetches daily bars for the symbol (cache first, then the quote
source, then demo data as a last resort) and prints the complete
analysis: moving averages, RSI, MACD, support/resistance, targets and
stop, composite score and rank, and the narrative signal layer.

With --capital a position size is computed from the analysis entry and
stop using the configured (or given) risk percent.`,
		Example: `  tickerlab analyze AAPL
  tickerlab analyze NVDA --json
  tickerlab analyze TSLA --capital 25000 --risk 0.5
  tickerlab analyze MSFT --offline`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			offline, _ := cmd.Flags().GetBool("offline")
			capital, _ := cmd.Flags().GetFloat64("capital")
			riskPct, _ := cmd.Flags().GetFloat64("risk")
			if riskPct <= 0 {
				riskPct = app.Config.Position.DefaultRiskPercent
			}

			report, err := app.Runner.Run(cmd.Context(), args[0], runner.Options{Offline: offline})
			if err != nil {
				return err
			}

			var sizing *position.Sizing
			if capital > 0 {
				sizing, err = position.Calculate(position.Request{
					EntryPrice:  report.Result.Price,
					StopPrice:   report.Result.Stop,
					Capital:     capital,
					RiskPercent: riskPct,
				})
				if err != nil {
					output.Warning("Position sizing skipped: %v", err)
				}
			}

			if output.IsJSON() {
				payload := struct {
					*analysis.Report
					Sizing *position.Sizing `json:"sizing,omitempty"`
				}{report, sizing}
				return output.JSON(payload)
			}

			renderReport(output, report)
			if sizing != nil {
				renderSizing(output, report, sizing, capital, riskPct)
			}
			return nil
		},
	}

	cmd.Flags().Bool("offline", false, "skip the quote source and analyze demo data")
	cmd.Flags().Float64("capital", 0, "account capital for position sizing")
	cmd.Flags().Float64("risk", 0, "risk percent per trade (default from config)")

	return cmd
}

func renderReport(output *Output, report *analysis.Report) {
	res := report.Result

	header := res.Symbol
	if len(report.Labels) > 0 {
		header += "  " + output.DimText("["+strings.Join(report.Labels, " / ")+"]")
	}
	output.Bold(header)

	if res.DemoData {
		output.Warning("Quote source unavailable — showing DEMO data, not live prices.")
	}

	changeText := "—"
	if res.DailyChangePct != nil {
		changeText = output.Signed(*res.DailyChangePct, utils.FormatPercent(*res.DailyChangePct))
	}
	output.Printf("  Price:      %s  %s\n", formatHomeCurrency(res.Price, report.FxRate), changeText)
	output.Printf("  Score:      %d/99  %s\n", res.Score, rankText(output, res.Rank))
	output.Println()

	output.Bold("Trend")
	output.Printf("  EMA5:   %s    EMA20:  %s\n", formatPriceOpt(res.MA5), formatPriceOpt(res.MA20))
	output.Printf("  EMA60:  %s    EMA120: %s\n", formatPriceOpt(res.MA60), formatPriceOpt(res.MA120))
	output.Printf("  RSI(14): %.1f    MACD: %s\n", res.RSI, formatOptional(res.MACD, "%.3f"))
	output.Println()

	output.Bold("Levels")
	output.Printf("  Resistance: %s  /  %s\n", formatPriceOpt(res.Resistance1), formatPriceOpt(res.Resistance2))
	output.Printf("  Support:    %s  /  %s\n", formatPriceOpt(res.Support1), formatPriceOpt(res.Support2))
	output.Printf("  Targets:    %s → %s    Stop: %s\n",
		utils.FormatPrice(res.Target1), utils.FormatPrice(res.Target2), utils.FormatPrice(res.Stop))

	rrText := "—"
	if res.RRRatio != nil {
		rrText = utils.FormatRiskReward(*res.RRRatio)
	}
	output.Printf("  Risk: %s    Reward: %s    R/R: %s\n",
		formatOptional(res.RiskPct, "%.1f%%"), formatOptional(res.RewardPct1, "%.1f%%"), rrText)
	output.Println()

	output.Bold("Flow")
	volText := "—"
	if res.VolumeRatio != nil {
		volText = fmt.Sprintf("%.2fx avg", *res.VolumeRatio)
	}
	output.Printf("  %s  (body %.0f%%, volume %s)\n", flowText(output, report.Flow), report.Flow.BodyRatio*100, volText)
	output.Dim("  %s", report.Flow.Note)
	output.Println()

	output.Bold("Why Today")
	output.Printf("  %s\n", report.WhyToday.Label)
	output.Dim("  %s", report.WhyToday.Note)
	output.Println()

	output.Bold("Scenarios")
	for _, sc := range report.Scenarios {
		marker := output.DimText("·")
		name := output.DimText(sc.Name)
		if sc.Eligible {
			marker = output.Green("✓")
			name = sc.Name
		}
		output.Printf("  %s %s — %s\n", marker, name, sc.EntryHint)
	}
	output.Println()

	output.Bold("Candlestick Patterns")
	if len(report.Patterns) == 0 {
		output.Dim("  none in the last three sessions")
	}
	for _, p := range report.Patterns {
		output.Printf("  %s (strength %d) — %s\n", patternText(output, p), p.Strength, p.Comment)
	}
}

func renderSizing(output *Output, report *analysis.Report, sizing *position.Sizing, capital, riskPct float64) {
	output.Println()
	output.Bold("Position Sizing")
	output.Printf("  Capital:    %s at %.2f%% risk\n", utils.FormatUSD(capital), riskPct)
	output.Printf("  Entry/Stop: %s / %s  (%s per share)\n",
		utils.FormatPrice(report.Result.Price), utils.FormatPrice(report.Result.Stop),
		utils.FormatUSD(sizing.RiskPerShare))
	output.Printf("  Shares:     %s  (risking %s)\n",
		utils.GroupThousands(fmt.Sprintf("%d", sizing.Shares)), utils.FormatUSD(sizing.RiskAmount))
}
