package plot

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yashubustudio/chanpick/chanpick"
)

func sampleRows() []chanpick.Row {
	return []chanpick.Row{
		{Key: "1530-1537-1538", ID: 1530, Score: 0.9},
		{Key: "1530-1537-1538", ID: 1531, Score: 0.4},
		{Key: "1530-1537-1538", ID: 1542, Score: 0.2},
		{Key: "1530-1537-1538", ID: 1543, Score: 0.3},
		{Key: "1530-1537-1538", ID: 1544, Score: 0.5},
		{Key: "1530-1540", ID: 1543, Score: 0.1},
	}
}

func TestPartition(t *testing.T) {
	key := chanpick.Key{1530, 1537, 1538}
	sel := &chanpick.Selection{ID: 1542, Score: 0.2}

	tests := []struct {
		name       string
		exclusions []float64
		sel        *chanpick.Selection
		want       Groups
	}{
		{
			name:       "with_selection",
			exclusions: []float64{1531, 1542},
			sel:        sel,
			want: Groups{
				Available: []Point{{1543, 0.3}, {1544, 0.5}, {1543, 0.1}},
				InKey:     []Point{{1530, 0.9}},
				Excluded:  []Point{{1531, 0.4}},
				Selected:  []Point{{1542, 0.2}},
			},
		},
		{
			name:       "no_selection",
			exclusions: []float64{1531, 1530},
			want: Groups{
				Available: []Point{{1542, 0.2}, {1543, 0.3}, {1544, 0.5}, {1543, 0.1}},
				InKey:     []Point{{1530, 0.9}},
				Excluded:  []Point{{1531, 0.4}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := sampleRows()
			got := Partition(rows, key, tt.exclusions, tt.sel)
			assert.Equal(t, tt.want, got)

			// the lone selected row collapses into the selected point
			assert.Equal(t, len(rows), got.Len())
		})
	}
}

func TestRenderAssignment(t *testing.T) {
	cfg := chanpick.DefaultConfig().Chart
	cfg.Width, cfg.Height = 400, 600

	groups := Partition(sampleRows(), chanpick.Key{1530, 1537, 1538}, []float64{1531}, &chanpick.Selection{ID: 1542, Score: 0.2})
	img, err := Render(AssignmentChart(groups, AssignmentOptions(cfg)))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestRenderEmptyGroups(t *testing.T) {
	cfg := chanpick.DefaultConfig().Chart
	cfg.Width, cfg.Height = 300, 300

	img, err := Render(AssignmentChart(Groups{}, AssignmentOptions(cfg)))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
}

func TestCumulativeChartRanges(t *testing.T) {
	cfg := chanpick.DefaultConfig().Chart
	key := chanpick.Key{1530, 1537, 1538}
	sel := 1542.0

	t.Run("snapshots", func(t *testing.T) {
		snaps := []chanpick.Snapshot{
			{Y: 20, Exclusions: []float64{1531, 1542}, Selected: &sel},
			{Y: 21, Exclusions: []float64{1531, 1542}},
		}
		ch := CumulativeChart(key, snaps, CumulativeOptions(cfg))
		assert.Equal(t, 1530.0, ch.XAxis.Range.GetMin())
		assert.Equal(t, 1565.0, ch.XAxis.Range.GetMax())
		assert.Equal(t, 0.0, ch.YAxis.Range.GetMin())
		assert.Equal(t, 31.0, ch.YAxis.Range.GetMax())
		require.Len(t, ch.Series, 3)
	})

	t.Run("empty", func(t *testing.T) {
		ch := CumulativeChart(key, nil, CumulativeOptions(cfg))
		assert.Equal(t, 20.0, ch.YAxis.Range.GetMax())
		require.Len(t, ch.Series, 1)
		assert.False(t, ch.Series[0].GetStyle().Hidden)

		img, err := Render(ch)
		require.NoError(t, err)
		assert.Equal(t, cfg.CumulativeWidth, img.Bounds().Dx())
	})

	t.Run("bad_range", func(t *testing.T) {
		bad := cfg
		bad.XMin, bad.XMax = 1600, 1500
		ch := CumulativeChart(key, nil, CumulativeOptions(bad))
		assert.Equal(t, float64(chanpick.DefaultXMin), ch.XAxis.Range.GetMin())
		assert.Equal(t, float64(chanpick.DefaultXMax), ch.XAxis.Range.GetMax())
	})
}

func TestRenderStateEmpty(t *testing.T) {
	cfg := chanpick.DefaultConfig().Chart
	cfg.Width, cfg.Height = 300, 300
	cfg.CumulativeWidth, cfg.CumulativeHeight = 320, 240

	tests := []struct {
		mode  Mode
		width int
	}{
		{ModeSingle, 300},
		{ModeCumulative, 320},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			img, err := RenderState(tt.mode, State{Key: chanpick.DefaultKey()}, cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.width, img.Bounds().Dx())
		})
	}
}

func TestWavelengthTicks(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
		want   int
	}{
		{"default_range", 1530, 1565, 8},
		{"wide_range", 0, 1e9, maxTicks + 1},
		{"reversed", 10, 5, 0},
		{"infinite", 0, math.Inf(1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks := wavelengthTicks(tt.lo, tt.hi, 5)
			assert.Len(t, ticks, tt.want)
			if len(ticks) > 0 {
				assert.Equal(t, tt.lo, ticks[0].Value)
				assert.LessOrEqual(t, ticks[len(ticks)-1].Value, tt.hi)
			}
		})
	}
}

func TestRenderStateWritesPNG(t *testing.T) {
	cfg := chanpick.DefaultConfig().Chart
	cfg.CumulativeWidth, cfg.CumulativeHeight = 320, 240
	sel := 1542.0
	st := State{
		Key:       chanpick.Key{1530, 1537, 1538},
		Snapshots: []chanpick.Snapshot{{Y: 19, Exclusions: []float64{1531, 1542}, Selected: &sel}},
		Note:      "iteration 1",
	}
	img, err := RenderState(ModeCumulative, st, cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, WritePNG(path, img))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 320, decoded.Bounds().Dx())
	assert.Equal(t, 240, decoded.Bounds().Dy())
}

func TestAnnotate(t *testing.T) {
	base := Blank(200, 50)
	assert.Same(t, base, Annotate(base, "  "))

	out := Annotate(base, "no candidate")
	assert.Equal(t, base.Bounds(), out.Bounds())
	// the caption box darkens the bottom-left corner
	r, g, b, _ := out.At(4, 40).RGBA()
	assert.Less(t, r+g+b, uint32(3*0xffff))
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeCumulative, ParseMode("cumulative"))
	assert.Equal(t, ModeSingle, ParseMode("single"))
	assert.Equal(t, ModeSingle, ParseMode(""))
}
