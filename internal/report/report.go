package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-nhl-features/internal/features"
	"github.com/pable/go-nhl-features/internal/model"
)

const (
	homePrefix = "home_"
	awayPrefix = "away_"
	diffPrefix = "diff_"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintGameSummary prints a one-line header for a stored game.
func PrintGameSummary(w io.Writer, s model.GameSummary) {
	hash := s.SourceHash
	if len(hash) > 12 {
		hash = hash[:12]
	}
	fmt.Fprintf(w, "\nGame: %s  |  Home: %d  |  Away: %d  |  Events: %d  |  Hash: %s\n\n",
		s.GameID, s.HomeTeamID, s.AwayTeamID, s.EventCount, hash)
}

// PrintGameList prints one line per stored game.
func PrintGameList(w io.Writer, games []model.GameSummary) {
	table := newTable(w)
	table.Header("GAME", "HOME", "AWAY", "EVENTS", "HASH")
	for _, g := range games {
		hash := g.SourceHash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		table.Append(
			g.GameID,
			strconv.Itoa(g.HomeTeamID),
			strconv.Itoa(g.AwayTeamID),
			strconv.Itoa(g.EventCount),
			hash,
		)
	}
	table.Render()
}

// FeatureRow is one line of the home/away/diff view. Empty cells are "-".
type FeatureRow struct {
	Stat, Home, Away, Diff string
}

// FeatureRows folds a record into home/away/diff rows keyed by stat name,
// in the record's column order. Columns with no counterpart get a row of
// their own; team-agnostic columns are shown under HOME.
func FeatureRows(rec features.Record, filter string) []FeatureRow {
	names := rec.Names()
	used := make(map[string]bool, len(names))
	var rows []FeatureRow

	cell := func(name string) string {
		v, ok := rec.Get(name)
		if !ok {
			return "-"
		}
		used[name] = true
		return formatValue(v)
	}

	for _, name := range names {
		if used[name] {
			continue
		}
		var row FeatureRow
		switch {
		case strings.HasPrefix(name, homePrefix):
			stat := strings.TrimPrefix(name, homePrefix)
			row = FeatureRow{Stat: stat, Home: cell(name), Away: cell(awayPrefix + stat), Diff: cell(diffPrefix + stat)}
		case strings.HasPrefix(name, awayPrefix):
			stat := strings.TrimPrefix(name, awayPrefix)
			row = FeatureRow{Stat: stat, Home: "-", Away: cell(name), Diff: cell(diffPrefix + stat)}
		case strings.HasPrefix(name, diffPrefix):
			row = FeatureRow{Stat: strings.TrimPrefix(name, diffPrefix), Home: "-", Away: "-", Diff: cell(name)}
		default:
			row = FeatureRow{Stat: name, Home: cell(name), Away: "-", Diff: "-"}
		}
		if filter != "" && !strings.Contains(row.Stat, filter) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// PrintFeatureTable prints a record as STAT | HOME | AWAY | DIFF. When
// filter is non-empty only stats containing it are shown.
func PrintFeatureTable(w io.Writer, rec features.Record, filter string) {
	table := newTable(w)
	table.Header("STAT", "HOME", "AWAY", "DIFF")
	for _, r := range FeatureRows(rec, filter) {
		table.Append(r.Stat, r.Home, r.Away, r.Diff)
	}
	table.Render()
}

// PrintGoalieTable prints each side's save percentage with a 95% Wilson
// interval and a sample-size flag.
func PrintGoalieTable(w io.Writer, rec features.Record) {
	table := newTable(w)
	table.Header("SIDE", "SHOTS", "GA", "SV%", "95% CI", "FLAG")
	for _, side := range model.Sides {
		p := side.String() + "_"
		shots := int(rec.Value(p + "shots_for_goalie"))
		saves := int(rec.Value(p + "saves"))

		svStr, ciStr := "-", "-"
		if shots > 0 {
			svStr = fmt.Sprintf("%.1f%%", float64(saves)/float64(shots)*100)
		}
		// Goals are not shots faced, so saves can fall below zero.
		if shots > 0 && saves >= 0 {
			lo, hi := wilsonCI(saves, shots)
			ciStr = fmt.Sprintf("%.1f-%.1f%%", lo*100, hi*100)
		}
		table.Append(
			strings.ToUpper(side.String()),
			strconv.Itoa(shots),
			strconv.Itoa(int(rec.Value(p+"goals_against"))),
			svStr,
			ciStr,
			sampleFlag(shots),
		)
	}
	table.Render()
}

// BuildStats summarises one build run.
type BuildStats struct {
	RunID     string
	Processed int
	Skipped   int
	Failed    int
	Columns   int
	Elapsed   time.Duration
}

// PrintBuildSummary prints the outcome of a build run.
func PrintBuildSummary(w io.Writer, s BuildStats) {
	table := newTable(w)
	table.Header("RUN", "PROCESSED", "SKIPPED", "FAILED", "COLUMNS", "ELAPSED")
	table.Append(
		s.RunID,
		strconv.Itoa(s.Processed),
		strconv.Itoa(s.Skipped),
		strconv.Itoa(s.Failed),
		strconv.Itoa(s.Columns),
		s.Elapsed.Round(time.Millisecond).String(),
	)
	table.Render()
}

// sampleFlag grades how far a save percentage can be trusted.
func sampleFlag(shots int) string {
	switch {
	case shots >= 30:
		return "OK"
	case shots >= 15:
		return "LOW"
	default:
		return "VERY_LOW"
	}
}

// wilsonCI computes the 95% Wilson score confidence interval for a proportion.
// Returns (lo, hi) as fractions in [0, 1].
func wilsonCI(hits, n int) (lo, hi float64) {
	if n == 0 {
		return 0, 1
	}
	z := 1.96
	p := float64(hits) / float64(n)
	nf := float64(n)
	denom := 1 + z*z/nf
	center := (p + z*z/(2*nf)) / denom
	half := z * math.Sqrt(p*(1-p)/nf+z*z/(4*nf*nf)) / denom
	return math.Max(0, center-half), math.Min(1, center+half)
}

// formatValue prints whole numbers without decimals and the rest to three places.
func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}
