package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-pos-dashboard/internal/report"
)

func newSummaryCommand(env *Env) *cobra.Command {
	var copyText bool
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the daily report",
		Example: `  # Print and copy to the clipboard for pasting into chat
  posctl summary --copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			n := env.notifier()

			sum, err := env.Board.Presenter().LoadDashboardData(cmd.Context(), n)
			if err != nil {
				printToasts(out, n)
				return err
			}
			text := report.GenerateSummaryText(sum, env.clock().In(env.Config.Location()), env.Config.ShopName)

			if !copyText {
				fmt.Fprint(out, text)
				return nil
			}
			copier := report.Copier{Clipboard: env.Clipboard, Fallback: out, Logger: env.Logger}
			err = copier.CopySummary(text, n)
			printToasts(out, n)
			return err
		},
	}
	cmd.Flags().BoolVarP(&copyText, "copy", "c", false, "Copy the report to the clipboard")
	return cmd
}
