package cli

import (
	"github.com/spf13/cobra"

	"tickerlab/internal/regime"
)

func newMacroCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "macro",
		Short: "Show the macro regime snapshot",
		Long: `Fetches the 10-year treasury yield, the VIX, the home FX rate, and
BTC, and classifies the backdrop: risk-on/risk-off, currency strength,
and speculative appetite. Legs that fail to fetch are shown as unknown
rather than failing the snapshot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			snap := app.Regime.Snapshot(cmd.Context())

			if output.IsJSON() {
				return output.JSON(snap)
			}

			output.Bold("Macro Regime")
			output.Printf("  10Y Yield: %s    VIX: %s\n",
				formatOptional(snap.Rate10Y, "%.2f%%"), formatOptional(snap.VIX, "%.1f"))
			output.Printf("  FX: %s    BTC: %s\n",
				formatOptional(snap.FxRate, "%.1f"), formatOptional(snap.BTC, "$%.0f"))
			output.Println()
			output.Printf("  Risk:   %s\n", riskStateText(output, snap.Risk))
			output.Printf("  FX:     %s\n", string(snap.Fx))
			output.Printf("  Crypto: %s\n", string(snap.Crypto))
			return nil
		},
	}
}

func riskStateText(o *Output, state regime.RiskState) string {
	switch state {
	case regime.RiskOn:
		return o.Green(string(state))
	case regime.RiskOff:
		return o.Red(string(state))
	default:
		return o.Yellow(string(state))
	}
}
