package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okian/expertcalc/internal/domain/model"
)

// ExpertsCmd returns the command listing the roster.
func ExpertsCmd(g *globals) *cobra.Command {
	var storyOnly bool

	cmd := &cobra.Command{
		Use:         "experts",
		Short:       "List every expert in the dataset",
		Annotations: map[string]string{annotationLogLevel: "warn"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := g.loadService(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tOBTAIN\tGENRES\tTRAITS\tACQUISITION")
			for _, e := range svc.Experts() {
				if storyOnly && e.Obtain != string(model.ObtainStory) {
					continue
				}
				traits := make([]string, len(e.Traits))
				for i, t := range e.Traits {
					traits[i] = t.Label
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					e.ID, e.Obtain, strings.Join(e.Genres, ","), strings.Join(traits, ","), e.Acquisition)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&storyOnly, "story", false, "only list the experts owned from the start")
	return cmd
}

// StagesCmd returns the command listing the stages of a tier.
func StagesCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:         "stages [normal|elite]",
		Short:       "List the stages of a tier with their requirements",
		Args:        cobra.MaximumNArgs(1),
		ValidArgs:   []string{string(model.TierNormal), string(model.TierElite)},
		Annotations: map[string]string{annotationLogLevel: "warn"},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.loadService(cmd.Context())
			if err != nil {
				return err
			}

			tiers := model.Tiers()
			if len(args) == 1 {
				tiers = []model.Tier{model.Tier(args[0])}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIER\tSTAGE\tREQUIREMENTS")
			for _, tier := range tiers {
				stages, err := svc.Stages(tier)
				if err != nil {
					return err
				}
				for _, st := range stages {
					reqs := make([]string, len(st.Requirements))
					for i, r := range st.Requirements {
						reqs[i] = r.Text
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\n", tier, st.ID, strings.Join(reqs, ", "))
				}
			}
			return tw.Flush()
		},
	}
}
