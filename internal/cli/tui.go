package cli

import (
	"github.com/spf13/cobra"

	"github.com/okian/expertcalc/internal/tui"
)

// TUICmd returns the interactive checklist command.
func TUICmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Tick owned experts and watch the ranking update",
		Long: `Open a terminal UI with the roster on the left and the ranking on the
right. Space toggles the expert under the cursor and the ranking is
recomputed immediately. Nothing is saved when you quit.`,
		Annotations: map[string]string{annotationLogOutput: logOutputDiscard},
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := g.loadService(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), svc)
		},
	}
}
