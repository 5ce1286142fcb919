package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-nhl-features/internal/storage"
)

const buildGame = `{
  "homeTeam": {"id": 10},
  "awayTeam": {"id": 20},
  "plays": [
    {"typeDescKey": "goal", "periodDescriptor": {"number": 1, "periodType": "REG"},
     "timeRemaining": "12:00", "situationCode": "1551",
     "details": {"eventOwnerTeamId": 10, "xCoord": 80, "yCoord": 5, "shotType": "wrist"}},
    {"typeDescKey": "hit", "periodDescriptor": {"number": 1, "periodType": "REG"},
     "timeRemaining": "11:00", "situationCode": "1551",
     "details": {"eventOwnerTeamId": 20}}
  ]
}`

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "raw")
	require.NoError(t, os.Mkdir(in, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(in, "2023020001.json"), []byte(buildGame), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "2023020002.json"), []byte(`{"plays": `), 0o644))

	db := filepath.Join(dir, "features.db")
	out := filepath.Join(dir, "out", "features.csv")
	metricsFile := filepath.Join(dir, "build.prom")
	args := []string{"build", "--in", in, "--out", out, "--db", db, "--metrics-file", metricsFile, "--log-level", "error"}

	// One bad file fails the run unless --keep-going.
	rootCmd.SetArgs(args)
	require.Error(t, rootCmd.Execute())

	rootCmd.SetArgs(append(args, "--keep-going"))
	require.NoError(t, rootCmd.Execute())

	csv, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csv)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "game_id,"))
	assert.True(t, strings.HasPrefix(lines[1], "2023020001,"))

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "nhlfeat_build_games_skipped_total 1")

	store, err := storage.Open(db)
	require.NoError(t, err)
	defer store.Close()
	rec, err := store.GetRecord("2023020001")
	require.NoError(t, err)
	assert.Equal(t, 1.0, rec.Value("home_goals"))
	assert.Equal(t, 1.0, rec.Value("away_hits"))
}

func TestBuildCommand_OptionsChangeRecomputes(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "raw")
	require.NoError(t, os.Mkdir(in, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(in, "2023020001.json"), []byte(buildGame), 0o644))

	db := filepath.Join(dir, "features.db")
	metricsFile := filepath.Join(dir, "build.prom")
	args := []string{"build", "--in", in, "--out", filepath.Join(dir, "features.csv"), "--db", db,
		"--metrics-file", metricsFile, "--log-level", "error"}
	t.Cleanup(func() { buildLegacyScore = false })

	run := func(extra ...string) string {
		t.Helper()
		rootCmd.SetArgs(append(append([]string{}, args...), extra...))
		require.NoError(t, rootCmd.Execute())
		prom, err := os.ReadFile(metricsFile)
		require.NoError(t, err)
		return string(prom)
	}

	prom := run("--legacy-score-state=false")
	assert.Contains(t, prom, "nhlfeat_build_games_processed_total 1")

	prom = run("--legacy-score-state=false")
	assert.Contains(t, prom, "nhlfeat_build_games_skipped_total 1")
	assert.Contains(t, prom, "nhlfeat_build_games_processed_total 0")

	prom = run("--legacy-score-state")
	assert.Contains(t, prom, "nhlfeat_build_games_skipped_total 0")
	assert.Contains(t, prom, "nhlfeat_build_games_processed_total 1")

	store, err := storage.Open(db)
	require.NoError(t, err)
	defer store.Close()
	g, err := store.GetGameByPrefix("2023020001")
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "score=last-minutes;strength=leading-digit", g.Options)
}
