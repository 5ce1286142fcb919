package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-nhl-features/internal/features"
)

func record(t *testing.T, id string, names []string, values []float64) features.Record {
	t.Helper()
	r, err := features.NewRecord(id, names, values)
	require.NoError(t, err)
	return r
}

func TestWriteCSV(t *testing.T) {
	recs := []features.Record{
		record(t, "2023020002", []string{"home_goals", "home_xg_proxy"}, []float64{2, 0.27}),
		record(t, "2023020001", []string{"home_goals", "home_xg_proxy", "diff_save_pct"}, []float64{3, 0.18, -0.125}),
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, recs))

	want := "game_id,home_goals,home_xg_proxy,diff_save_pct\n" +
		"2023020001,3,0.18,-0.125\n" +
		"2023020002,2,0.27,0\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_Deterministic(t *testing.T) {
	recs := []features.Record{
		record(t, "b", []string{"x", "y"}, []float64{1.5, 2}),
		record(t, "a", []string{"x", "y"}, []float64{0.1 + 0.2, 0}),
	}
	var a, b bytes.Buffer
	require.NoError(t, WriteCSV(&a, recs))
	require.NoError(t, WriteCSV(&b, []features.Record{recs[1], recs[0]}))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteCSV(&buf, nil), ErrNoRecords)
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "features.csv")
	require.NoError(t, WriteCSVFile(path, []features.Record{record(t, "g", []string{"n"}, []float64{7})}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "game_id,n\ng,7\n", string(data))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "0", FormatValue(0))
	assert.Equal(t, "12", FormatValue(12))
	assert.Equal(t, "0.108", FormatValue(0.108))
	assert.Equal(t, "-3", FormatValue(-3))
}
