package chanpick

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "results.csv", "\ufeffQ,gi,S\n"+
		"1530-1537-1538,1542,0.25\n"+
		"1530-1537-1538,1543,n/a\n"+
		"１５３０－１５３７－１５３８, 1544 ,0.5\n"+
		"1530-1540,,0.1\n"+
		"1530-1540,1545,NaN\n"+
		"1530-1537-1538,Inf,0.0\n"+
		"1530-1537-1538,1546,-Inf\n")

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, 4, table.Dropped)
	assert.Equal(t, []Row{
		{Key: "1530-1537-1538", ID: 1542, Score: 0.25},
		{Key: "1530-1537-1538", ID: 1544, Score: 0.5},
		{Key: "1530-1537-1538", ID: 1546, Score: math.Inf(-1)},
	}, table.Rows)

	report := Select(table, Key{1530, 1537, 1538}, []float64{1546})
	require.True(t, report.Found())
	assert.Equal(t, 1542.0, report.Selection.ID)
	assert.Equal(t, 2, report.Eligible)
}

func TestLoadTableTSVAndAliases(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "results.tsv", "group\tchannel\tscore\textra\n1-2\t3\t0.7\tx\n1-2\t4\t0.2\n")

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, []Row{
		{Key: "1-2", ID: 3, Score: 0.7},
		{Key: "1-2", ID: 4, Score: 0.2},
	}, table.Rows)
}

func TestLoadTableWithOptions(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.csv", "cfg,lambda,cost\n1-2,5,0.3\n")

	_, err := LoadTable(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "group key")

	table, err := LoadTableWithOptions(path, TableOptions{KeyColumn: "CFG", IDColumn: "#2", ScoreColumn: "cost"})
	require.NoError(t, err)
	assert.Equal(t, []Row{{Key: "1-2", ID: 5, Score: 0.3}}, table.Rows)

	_, err = LoadTableWithOptions(path, TableOptions{KeyColumn: "cfg", IDColumn: "#9", ScoreColumn: "cost"})
	require.Error(t, err)
	_, err = LoadTableWithOptions(path, TableOptions{KeyColumn: "cfg", IDColumn: "#0", ScoreColumn: "cost"})
	require.Error(t, err)
}

func TestLoadTableErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTable(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := writeFile(t, dir, "empty.csv", "")
	_, err = LoadTable(empty)
	require.Error(t, err)

	headerOnly := writeFile(t, dir, "header.csv", "Q,gi,S\n")
	table, err := LoadTable(headerOnly)
	require.NoError(t, err)
	assert.Zero(t, table.Len())
}

func TestColumnCandidates(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "alt.csv", "combo,lane,penalty\n7,8,0.4\n")

	_, err := LoadTable(path)
	require.Error(t, err)

	table, err := LoadTableWithOptions(path, TableOptions{
		Candidates: ColumnCandidates{Key: []string{"combo"}, ID: []string{"lane"}, Score: []string{"penalty"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []Row{{Key: "7", ID: 8, Score: 0.4}}, table.Rows)

	partial := ColumnCandidates{Key: []string{"combo"}, ID: []string{}}.withDefaults()
	assert.Equal(t, []string{"combo"}, partial.Key)
	assert.Equal(t, DefaultColumnCandidates().ID, partial.ID)
	assert.Equal(t, DefaultColumnCandidates().Score, partial.Score)
}
