// Package export writes feature records as one wide CSV table.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/pable/go-nhl-features/internal/features"
)

// GameIDColumn is the key column written first in every table.
const GameIDColumn = "game_id"

// ErrNoRecords is returned when there is nothing to export.
var ErrNoRecords = errors.New("no records to export")

// Columns returns the union of the records' columns in first-seen order.
func Columns(recs []features.Record) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, r := range recs {
		for _, n := range r.Names() {
			if !seen[n] {
				seen[n] = true
				cols = append(cols, n)
			}
		}
	}
	return cols
}

// Frame builds a string-typed dataframe with one row per record, sorted by
// game id. A column missing from a record is filled with 0.
func Frame(recs []features.Record) (dataframe.DataFrame, error) {
	if len(recs) == 0 {
		return dataframe.DataFrame{}, ErrNoRecords
	}
	sorted := append([]features.Record(nil), recs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].GameID < sorted[j].GameID })

	cols := Columns(sorted)
	records := make([][]string, 0, len(sorted)+1)
	records = append(records, append([]string{GameIDColumn}, cols...))
	for _, r := range sorted {
		row := make([]string, 0, len(cols)+1)
		row = append(row, r.GameID)
		for _, c := range cols {
			row = append(row, FormatValue(r.Value(c)))
		}
		records = append(records, row)
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("build frame: %w", df.Err)
	}
	return df, nil
}

// WriteCSV writes recs as CSV to w.
func WriteCSV(w io.Writer, recs []features.Record) error {
	df, err := Frame(recs)
	if err != nil {
		return err
	}
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteCSVFile writes recs to path, creating parent directories.
func WriteCSVFile(path string, recs []features.Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := WriteCSV(f, recs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FormatValue renders v with the shortest exact representation, so whole
// counts print without a decimal point.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
