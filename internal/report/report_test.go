package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-nhl-features/internal/features"
	"github.com/pable/go-nhl-features/internal/model"
)

func record(t *testing.T) features.Record {
	t.Helper()
	rec, err := features.NewRecord("2023020001",
		[]string{
			"home_goals", "away_goals", "diff_goals",
			"home_xg_proxy", "away_xg_proxy",
			"events_tied", "diff_empty_net",
			"home_shots_for_goalie", "away_shots_for_goalie",
			"home_saves", "away_saves", "home_goals_against", "away_goals_against",
		},
		[]float64{3, 1, 2, 0.27, 0.09, 12, -1, 20, 31, 19, 28, 1, 3},
	)
	require.NoError(t, err)
	return rec
}

func TestFeatureRows(t *testing.T) {
	rows := FeatureRows(record(t), "")
	require.GreaterOrEqual(t, len(rows), 4)

	assert.Equal(t, FeatureRow{Stat: "goals", Home: "3", Away: "1", Diff: "2"}, rows[0])
	assert.Equal(t, FeatureRow{Stat: "xg_proxy", Home: "0.270", Away: "0.090", Diff: "-"}, rows[1])
	assert.Equal(t, FeatureRow{Stat: "events_tied", Home: "12", Away: "-", Diff: "-"}, rows[2])
	assert.Equal(t, FeatureRow{Stat: "empty_net", Home: "-", Away: "-", Diff: "-1"}, rows[3])

	for _, r := range rows {
		assert.NotEqual(t, "away_goals", r.Stat)
	}
}

func TestFeatureRows_Filter(t *testing.T) {
	rows := FeatureRows(record(t), "xg")
	require.Len(t, rows, 1)
	assert.Equal(t, "xg_proxy", rows[0].Stat)
}

func TestPrintFeatureTable(t *testing.T) {
	var buf bytes.Buffer
	PrintFeatureTable(&buf, record(t), "")
	out := buf.String()
	assert.Contains(t, out, "STAT")
	assert.Contains(t, out, "xg_proxy")
	assert.Contains(t, out, "0.270")
}

func TestPrintGoalieTable(t *testing.T) {
	var buf bytes.Buffer
	PrintGoalieTable(&buf, record(t))
	out := buf.String()
	assert.Contains(t, out, "95.0%")
	assert.Contains(t, out, "LOW")
	assert.Contains(t, out, "OK")
}

func TestPrintGameListAndSummary(t *testing.T) {
	var buf bytes.Buffer
	games := []model.GameSummary{{GameID: "2023020001", SourceHash: strings.Repeat("ab", 32), HomeTeamID: 10, AwayTeamID: 20, EventCount: 312}}
	PrintGameList(&buf, games)
	PrintGameSummary(&buf, games[0])
	PrintBuildSummary(&buf, BuildStats{RunID: "r1", Processed: 1, Columns: 200, Elapsed: 1500 * time.Millisecond})
	out := buf.String()
	assert.Contains(t, out, "2023020001")
	assert.Contains(t, out, "abababababab")
	assert.NotContains(t, out, strings.Repeat("ab", 32))
	assert.Contains(t, out, "1.5s")
}

func TestPrintGoalieTable_NegativeSaves(t *testing.T) {
	rec, err := features.NewRecord("g",
		[]string{"away_shots_for_goalie", "away_saves", "away_goals_against"},
		[]float64{1, -1, 2})
	require.NoError(t, err)
	var buf bytes.Buffer
	PrintGoalieTable(&buf, rec)
	assert.NotContains(t, buf.String(), "NaN")
	assert.Contains(t, buf.String(), "-100.0%")
}

func TestWilsonCI(t *testing.T) {
	lo, hi := wilsonCI(0, 0)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)

	lo, hi = wilsonCI(27, 30)
	assert.Less(t, lo, 0.9)
	assert.Greater(t, hi, 0.9)
	assert.GreaterOrEqual(t, lo, 0.0)
	assert.LessOrEqual(t, hi, 1.0)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "4", formatValue(4))
	assert.Equal(t, "-2", formatValue(-2))
	assert.Equal(t, "0.333", formatValue(1.0/3))
}
