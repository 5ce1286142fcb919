package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-features/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Query stored games and feature columns with SQL",
	Long: `Query the game feature store directly and print the result as a table.

Each built game has one row in games, keyed by its NHL game id, and one row per
feature column in game_features:
  games(game_id, source_hash, home_team_id, away_team_id, event_count, options)
  game_features(game_id, ordinal, name, value)

ordinal keeps the column order of the CSV export. Column names follow the
home_/away_/diff_ prefixes, e.g. home_corsi_5v5, away_pp_goals, diff_xg_proxy.

Games where the home side out-chanced the visitor the most:
  nhlfeat sql "SELECT game_id, value FROM game_features WHERE name = 'diff_xg_proxy' ORDER BY value DESC LIMIT 10"

Power-play goals per home team:
  nhlfeat sql "SELECT g.home_team_id, SUM(f.value) FROM games g JOIN game_features f USING (game_id) WHERE f.name = 'home_pp_goals' GROUP BY 1"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}
	printRows(cols, rows)
	return nil
}

func printRows(cols []string, rows [][]string) {
	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
}
