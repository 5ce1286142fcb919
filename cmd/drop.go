package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dropForce bool

// dropCmd removes the local store so the next build re-extracts every game.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Remove the local game features store",
	Long: `Remove the SQLite file holding stored games and their extracted feature columns,
together with its WAL side files. The play-by-play JSON files are left alone, so
'nhlfeat build --in <dir>' re-extracts every game from scratch afterwards.
Postgres tables and uploaded CSVs are not touched.`,
	Args:  cobra.NoArgs,
	RunE:  runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if !dropForce {
		cWarn.Fprintf(os.Stderr, "This removes every stored game and its features: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "No feature store at that path, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove feature store: %w", err)
	}
	// WAL side files go with it.
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(dbPath + suffix)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}
