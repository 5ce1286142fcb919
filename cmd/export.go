package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-features/internal/export"
	"github.com/pable/go-nhl-features/internal/storage"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Rebuild the CSV feature table from the database",
	Long: `Write every stored game as one CSV row, sorted by game id.
Columns missing from older rows are filled with 0. Use --out - to write to stdout.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "CSV output path (default: output_csv from config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	out := cfg.OutputCSV
	if cmd.Flags().Changed("out") {
		out = exportOut
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	recs, err := db.AllRecords()
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	if len(recs) == 0 {
		cWarn.Fprintln(os.Stderr, "No games stored yet, nothing to export.")
		return nil
	}

	if out == "-" {
		err = export.WriteCSV(os.Stdout, recs)
	} else {
		err = export.WriteCSVFile(out, recs)
	}
	if err != nil {
		return err
	}
	if out != "-" {
		fmt.Fprintf(os.Stdout, "Wrote %d games to %s\n", len(recs), out)
	}
	return nil
}
