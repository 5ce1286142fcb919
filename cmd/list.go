package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-features/internal/report"
	"github.com/pable/go-nhl-features/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List games in the feature store",
	Long: `List every game with extracted features: NHL game id, home and away team ids,
play count and a prefix of the source file hash used to skip unchanged games.`,
	Args: cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := db.ListGames()
	if err != nil {
		return fmt.Errorf("list games: %w", err)
	}
	if len(games) == 0 {
		fmt.Fprintln(os.Stdout, "No games in the feature store. Run 'nhlfeat build --in <dir>' on a directory of play-by-play files.")
		return nil
	}
	report.PrintGameList(os.Stdout, games)
	return nil
}
