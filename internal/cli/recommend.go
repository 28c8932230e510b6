package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	service "github.com/okian/expertcalc/internal/app"
	"github.com/okian/expertcalc/internal/domain/model"
	"github.com/okian/expertcalc/internal/domain/types"
	"github.com/okian/expertcalc/pkg/logger"
)

// RecommendCmd returns the one-shot ranking command.
func RecommendCmd(g *globals) *cobra.Command {
	var (
		own     []string
		top     int
		noStory bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank the experts you could acquire next",
		Long: `Rank every expert by how many stages it would newly satisfy or upgrade.

The owned set is the story experts plus --own. With --no-story only the
experts passed in --own count as owned. Unknown ids are ignored.`,
		Example: `  expertcalc recommend --own e03,e07
  expertcalc recommend --own e03 --top 5 --json`,
		Annotations: map[string]string{annotationLogLevel: "warn"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svc, err := g.loadService(ctx)
			if err != nil {
				return err
			}

			owned := ownedSet(svc, own, noStory)
			for _, id := range own {
				if !svc.Known(id) {
					logger.Get().Warn(ctx, "ignoring unknown expert", logger.String("expert", id))
				}
			}

			recs, err := svc.Recommend(ctx, owned)
			if err != nil {
				return err
			}
			if top > 0 && top < len(recs) {
				recs = recs[:top]
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Owned           []string               `json:"owned"`
					Recommendations []types.Recommendation `json:"recommendations"`
				}{owned.IDs(), recs})
			}
			printRecommendations(out, recs)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&own, "own", nil, "expert ids you own besides the story experts (comma separated)")
	cmd.Flags().IntVar(&top, "top", 0, "only print the first N entries (0 prints all)")
	cmd.Flags().BoolVar(&noStory, "no-story", false, "do not add the story experts to the owned set")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")

	return cmd
}

func ownedSet(svc *service.Service, own []string, noStory bool) model.OwnedSet {
	ids := make([]string, 0, len(own))
	for _, id := range own {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if !noStory {
		ids = append(ids, svc.InitialOwned().IDs()...)
	}
	return model.NewOwnedSet(ids...)
}

var medalColors = map[string]*color.Color{
	"gold":   color.New(color.FgHiYellow, color.Bold),
	"silver": color.New(color.FgHiWhite, color.Bold),
	"peru":   color.New(color.FgYellow, color.Bold),
}

func printRecommendations(w io.Writer, recs []types.Recommendation) {
	dim := color.New(color.Faint)
	idColor := color.New(color.FgCyan, color.Bold)

	for i, r := range recs {
		if i > 0 {
			fmt.Fprintln(w)
		}

		line := fmt.Sprintf("%2d. %s", r.Position, idColor.Sprint(r.Expert.ID))
		if r.Medal != nil {
			line += " " + medalColors[r.Medal.Color].Sprintf("[%s]", r.Medal.Label)
		}
		if r.TotalGain > 0 {
			line += fmt.Sprintf("  +%d", r.TotalGain)
		}
		fmt.Fprintln(w, line)
		fmt.Fprintf(w, "    %s\n", dim.Sprint(r.Expert.Acquisition))
		if len(r.Expert.Genres) > 0 || len(r.Expert.Traits) > 0 {
			fmt.Fprintf(w, "    %s\n", describeTags(r.Expert))
		}

		if r.Note != "" {
			fmt.Fprintf(w, "    %s\n", dim.Sprint(r.Note))
			continue
		}
		printGains(w, "normal", r.NormalGain)
		printGains(w, "elite", r.EliteGain)
	}
}

func printGains(w io.Writer, tier string, gains []types.StageGain) {
	for _, g := range gains {
		reqs := make([]string, len(g.Requirements))
		for i, r := range g.Requirements {
			reqs[i] = r.Text
		}
		fmt.Fprintf(w, "    %-6s %-10s %s -> %s\n", tier, g.ID, strings.Join(reqs, ", "), g.Status)
	}
}

func describeTags(e types.ExpertView) string {
	traits := make([]string, len(e.Traits))
	for i, t := range e.Traits {
		traits[i] = t.Label
	}
	parts := make([]string, 0, 2)
	if len(e.Genres) > 0 {
		parts = append(parts, strings.Join(e.Genres, ", "))
	}
	if len(traits) > 0 {
		parts = append(parts, strings.Join(traits, ", "))
	}
	return strings.Join(parts, types.RequirementSep)
}
