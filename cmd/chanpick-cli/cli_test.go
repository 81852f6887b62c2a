package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yashubustudio/chanpick/chanpick"
	"yashubustudio/chanpick/internal/rootcmd"
)

func TestPrinterReport(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf)

	p.iterationHeader(2)
	p.report(chanpick.Iteration{
		Number: 2,
		Report: chanpick.Report{
			Key: chanpick.Key{1530, 1537, 1538}, Total: 40, Matching: 12, Eligible: 5,
			Selection: &chanpick.Selection{ID: 1542, Score: 0.25},
		},
		Exclusions: []float64{1531, 1542},
	})
	out := buf.String()
	assert.Contains(t, out, "Iteration 2:")
	assert.Contains(t, out, "Total rows in CSV: 40\n")
	assert.Contains(t, out, "Rows after filtering Q: 12\n")
	assert.Contains(t, out, "Rows after excluding Q and CCh: 5\n")
	assert.Contains(t, out, "Found candidate: gi=1542, S=0.25\n")

	buf.Reset()
	p.report(chanpick.Iteration{
		Report:     chanpick.Report{Key: chanpick.Key{1530, 1537, 1538}, Total: 40, Matching: 12},
		Exclusions: []float64{1531, 1532},
	})
	assert.Contains(t, buf.String(), "No candidate found for Q = 1530-1537-1538 excluding [1531, 1532]\n")
}

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	return parseTo(t, &bytes.Buffer{}, args...)
}

func parseTo(t *testing.T, out *bytes.Buffer, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	cli := &CLI{}
	parser, err := rootcmd.New(context.Background(), cli, "chanpick-cli", "test",
		kong.Bind(&cli.Globals),
		kong.Writers(out, out),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return cli, kctx
}

func TestParseCommands(t *testing.T) {
	cli, kctx := parse(t, "--key", "1540-1545", "run", "-n", "3", "--reset")
	assert.Equal(t, "run", kctx.Command())
	assert.Equal(t, 3, cli.Run.Iterations)
	assert.True(t, cli.Run.Reset)
	assert.Equal(t, "1540-1545", cli.Key)

	_, kctx = parse(t, "exclusions")
	assert.Equal(t, "exclusions show", kctx.Command())

	cli, kctx = parse(t, "plot", "--mode", "cumulative", "--png", "out.png")
	assert.Equal(t, "plot", kctx.Command())
	assert.Equal(t, "cumulative", cli.Plot.Mode)
	assert.True(t, filepath.IsAbs(cli.Plot.PNG))
}

func TestSelectCommandRun(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(table, []byte("Q,gi,S\n1-5,2,0.4\n1-5,3,0.1\n"), 0o644))
	excl := filepath.Join(dir, "exclusion_list.json")
	png := filepath.Join(dir, "chart.png")

	_, kctx := parse(t,
		"--config", filepath.Join(dir, "missing.json"),
		"--table", table,
		"--exclusions", excl,
		"--key", "1-5",
		"select", "--png", png,
	)
	require.NoError(t, kctx.Run())

	assert.Equal(t, []float64{1531, 1532, 1533, 1534, 1535, 1536, 1539, 1540, 1541, 1560, 1561, 1562, 1563, 1564, 1565, 3},
		chanpick.NewExclusionStore(excl).Load())
	info, err := os.Stat(png)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, kctx = parse(t, "--exclusions", excl, "--config", filepath.Join(dir, "missing.json"), "exclusions", "reset")
	require.NoError(t, kctx.Run())
	assert.Empty(t, chanpick.NewExclusionStore(excl).Load())
}

func TestGlobalsLoadRejectsBadKey(t *testing.T) {
	g := rootcmd.Globals{Config: filepath.Join(t.TempDir(), "none.json"), Key: "abc"}
	_, _, err := g.Load()
	require.Error(t, err)
}

func writeTable(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(path, []byte("Q,gi,S\n1-5,2,0.4\n1-5,3,0.1\n"), 0o644))
	return path
}

func pngSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestRunCommandRun(t *testing.T) {
	dir := t.TempDir()
	excl := filepath.Join(dir, "exclusion_list.json")
	out := filepath.Join(dir, "cumulative.png")

	var buf bytes.Buffer
	_, kctx := parseTo(t, &buf,
		"--config", filepath.Join(dir, "missing.json"),
		"--table", writeTable(t, dir),
		"--exclusions", excl,
		"--key", "1-5",
		"run", "-n", "3", "--png", out,
	)
	require.NoError(t, kctx.Run())

	want := append(chanpick.DefaultExclusions(), 3, 2)
	assert.Equal(t, want, chanpick.NewExclusionStore(excl).Load())

	text := buf.String()
	for _, line := range []string{
		"Iteration 1:\n",
		"Found candidate: gi=3, S=0.1\n",
		"Iteration 2:\n",
		"Found candidate: gi=2, S=0.4\n",
		"Iteration 3:\n",
		"Rows after excluding Q and CCh: 0\n",
		"No candidate found for Q = 1-5 excluding " + chanpick.FormatIDs(want) + "\n",
		"wrote " + out + "\n",
	} {
		assert.Contains(t, text, line)
	}

	w, h := pngSize(t, out)
	assert.Equal(t, 1000, w)
	assert.Equal(t, 1000, h)
}

func TestPlotCommandRun(t *testing.T) {
	dir := t.TempDir()
	table := writeTable(t, dir)
	cfgPath := filepath.Join(dir, "missing.json")

	tests := []struct {
		mode          string
		width, height int
	}{
		{"single", 800, 1000},
		{"cumulative", 1000, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), tt.mode+".png")
			_, kctx := parse(t,
				"--config", cfgPath,
				"--table", table,
				"--exclusions", filepath.Join(t.TempDir(), "exclusion_list.json"),
				"plot", "--mode", tt.mode, "--png", out,
			)
			require.NoError(t, kctx.Run())
			w, h := pngSize(t, out)
			assert.Equal(t, tt.width, w)
			assert.Equal(t, tt.height, h)
		})
	}

	_, kctx := parse(t, "--config", cfgPath, "plot")
	require.Error(t, kctx.Run())
}

func TestVersionCommandRun(t *testing.T) {
	var buf bytes.Buffer
	_, kctx := parseTo(t, &buf, "version")
	require.NoError(t, kctx.Run())
	assert.Contains(t, buf.String(), "chanpick-cli dev")
}
