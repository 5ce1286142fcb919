package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-features/internal/report"
	"github.com/pable/go-nhl-features/internal/storage"
)

var showFilter string

var showCmd = &cobra.Command{
	Use:   "show <game-id-prefix>",
	Short: "Show stored features for a game as a home/away/diff table",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showFilter, "filter", "", "only show stats whose name contains this text")
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	return showGame(db, prefix, showFilter)
}

// showGame prints the stored game matching prefix. A miss is reported, not
// returned as an error.
func showGame(db *storage.DB, prefix, filter string) error {
	game, err := db.GetGameByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query game: %w", err)
	}
	if game == nil {
		cWarn.Fprintf(os.Stderr, "No game found with id prefix %q\n", prefix)
		return nil
	}
	rec, err := db.GetRecord(game.GameID)
	if err != nil {
		return fmt.Errorf("get features: %w", err)
	}

	report.PrintGameSummary(os.Stdout, *game)
	report.PrintFeatureTable(os.Stdout, rec, filter)
	fmt.Fprintln(os.Stdout)
	report.PrintGoalieTable(os.Stdout, rec)
	return nil
}
