package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-features/internal/features"
	"github.com/pable/go-nhl-features/internal/parser"
	"github.com/pable/go-nhl-features/internal/report"
)

var (
	inspectFilter      string
	inspectLegacyScore bool
	inspectSkaterStr   bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <game.json>",
	Short: "Extract one game file and print its features without storing them",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFilter, "filter", "", "only show stats whose name contains this text")
	inspectCmd.Flags().BoolVar(&inspectLegacyScore, "legacy-score-state", false, "advance the score only for goals in the last five minutes")
	inspectCmd.Flags().BoolVar(&inspectSkaterStr, "skater-strength", false, "classify special-teams goals by skater counts instead of the leading situation digit")
}

func runInspect(cmd *cobra.Command, args []string) error {
	opts := features.Options{
		LegacyScoreState: cfg.LegacyScoreState,
		SkaterStrength:   cfg.SkaterStrength,
	}
	if cmd.Flags().Changed("legacy-score-state") {
		opts.LegacyScoreState = inspectLegacyScore
	}
	if cmd.Flags().Changed("skater-strength") {
		opts.SkaterStrength = inspectSkaterStr
	}

	g, err := parser.ParseGame(args[0])
	if err != nil {
		return err
	}
	rec, err := features.Extract(g, opts)
	if err != nil {
		return fmt.Errorf("extract %s: %w", g.ID, err)
	}

	report.PrintGameSummary(os.Stdout, g.Summary())
	report.PrintFeatureTable(os.Stdout, rec, inspectFilter)
	fmt.Fprintln(os.Stdout)
	report.PrintGoalieTable(os.Stdout, rec)
	return nil
}
