package plot

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"yashubustudio/chanpick/chanpick"
)

var (
	colorAvailable = drawing.Color{R: 128, G: 128, B: 128, A: 255}
	colorKey       = drawing.Color{R: 31, G: 119, B: 180, A: 255}
	colorExcluded  = drawing.Color{R: 214, G: 39, B: 40, A: 255}
	colorSelected  = drawing.Color{R: 44, G: 160, B: 44, A: 255}
	colorGrid      = drawing.Color{R: 220, G: 220, B: 220, A: 255}
)

// Options controls chart geometry and scaling.
type Options struct {
	Title       string
	Width       int
	Height      int
	ScaleFactor float64
	XMin        float64
	XMax        float64
	YMargin     float64
}

// AssignmentOptions derives single-iteration chart options from the chart config.
func AssignmentOptions(cfg chanpick.ChartConfig) Options {
	return Options{
		Title:       "Channel Assignment with Scaled Y-Axis",
		Width:       cfg.Width,
		Height:      cfg.Height,
		ScaleFactor: cfg.ScaleFactor,
	}
}

// CumulativeOptions derives cumulative chart options from the chart config.
func CumulativeOptions(cfg chanpick.ChartConfig) Options {
	return Options{
		Title:   "Cumulative Data Distribution Across Iterations",
		Width:   cfg.CumulativeWidth,
		Height:  cfg.CumulativeHeight,
		XMin:    cfg.XMin,
		XMax:    cfg.XMax,
		YMargin: cfg.YMargin,
	}
}

// pointStyle renders markers only, no connecting line.
func pointStyle(col drawing.Color, width float64) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    width,
		DotColor:    col,
	}
}

func scatter(name string, pts []Point, scale float64, col drawing.Color, width float64) chart.ContinuousSeries {
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
		ys[i] = p.Y * scale
	}
	return chart.ContinuousSeries{Name: name, XValues: xs, YValues: ys, Style: pointStyle(col, width)}
}

func idFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return chanpick.FormatID(f)
	}
	return fmt.Sprintf("%v", v)
}

// AssignmentChart draws the single-iteration view: every table row at (id, score × scale),
// coloured by group.
func AssignmentChart(g Groups, opts Options) chart.Chart {
	scale := opts.ScaleFactor
	if scale == 0 {
		scale = 1
	}
	var series []chart.Series
	add := func(name string, pts []Point, col drawing.Color, width float64) {
		if len(pts) == 0 {
			return
		}
		series = append(series, scatter(name, pts, scale, col, width))
	}
	add("Available Candidates", g.Available, colorAvailable, 5)
	add("Q Channels", g.InKey, colorKey, 5)
	add("Excluded Channels", g.Excluded, colorExcluded, 5)
	add("Selected Candidate", g.Selected, colorSelected, 8)

	xr, yr := assignmentRanges(g, scale)
	series = ensureSeries(series, xr, yr)

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:           "Assigned Wavelength (Channel gi)",
			Range:          xr,
			ValueFormatter: idFormatter,
			GridMajorStyle: chart.Style{StrokeColor: colorGrid, StrokeWidth: 1},
		},
		YAxis: chart.YAxis{
			Name:           fmt.Sprintf("Total Channels (S) x %s", chanpick.FormatID(scale)),
			Range:          yr,
			GridMajorStyle: chart.Style{StrokeColor: colorGrid, StrokeWidth: 1},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}

// CumulativeChart draws one row of markers per snapshot at the snapshot's y value:
// key channels, the snapshot's exclusion list and the selected channel.
func CumulativeChart(key chanpick.Key, snaps []chanpick.Snapshot, opts Options) chart.Chart {
	var keyPts, exclPts, selPts []Point
	maxY := 0.0
	for _, s := range snaps {
		for _, id := range key {
			keyPts = append(keyPts, Point{X: id, Y: s.Y})
		}
		for _, id := range s.Exclusions {
			exclPts = append(exclPts, Point{X: id, Y: s.Y})
		}
		if s.Selected != nil {
			selPts = append(selPts, Point{X: *s.Selected, Y: s.Y})
		}
		maxY = math.Max(maxY, s.Y)
	}
	if len(snaps) == 0 {
		maxY = 10
	}

	var series []chart.Series
	add := func(name string, pts []Point, col drawing.Color, width float64) {
		if len(pts) == 0 {
			return
		}
		series = append(series, scatter(name, pts, 1, col, width))
	}
	add("Q Channels", keyPts, colorKey, 6)
	add("Excluded Channels", exclPts, colorExcluded, 7)
	add("Candidate", selPts, colorSelected, 7)

	xr := &chart.ContinuousRange{Min: opts.XMin, Max: opts.XMax}
	if !finite(xr.Min) || !finite(xr.Max) || xr.Max <= xr.Min {
		xr.Min, xr.Max = chanpick.DefaultXMin, chanpick.DefaultXMax
	}
	yr := &chart.ContinuousRange{Min: 0, Max: maxY + opts.YMargin}
	series = ensureSeries(series, xr, yr)

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:           "Wavelength (nm)",
			Range:          xr,
			ValueFormatter: idFormatter,
			Ticks:          wavelengthTicks(xr.Min, xr.Max, 5),
			GridMajorStyle: chart.Style{StrokeColor: colorGrid, StrokeWidth: 1},
		},
		YAxis: chart.YAxis{
			Name:           "Total Channel Count",
			Range:          yr,
			ValueFormatter: idFormatter,
			GridMajorStyle: chart.Style{StrokeColor: colorGrid, StrokeWidth: 1},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}

func assignmentRanges(g Groups, scale float64) (*chart.ContinuousRange, *chart.ContinuousRange) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, pts := range [][]Point{g.Available, g.InKey, g.Excluded, g.Selected} {
		for _, p := range pts {
			y := p.Y * scale
			if math.IsInf(y, 0) {
				continue
			}
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
	}
	if math.IsInf(minX, 1) {
		return &chart.ContinuousRange{Min: chanpick.DefaultXMin, Max: chanpick.DefaultXMax},
			&chart.ContinuousRange{Min: 0, Max: 1}
	}
	return padRange(minX, maxX, 1), padRange(minY, maxY, 0.05*(maxY-minY))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func padRange(lo, hi, pad float64) *chart.ContinuousRange {
	if pad <= 0 {
		pad = 1
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// ensureSeries keeps the renderer happy when every group is empty. go-chart
// refuses to render without a visible series, so the placeholder stays visible
// and draws nothing.
func ensureSeries(series []chart.Series, xr, yr *chart.ContinuousRange) []chart.Series {
	if len(series) > 0 {
		return series
	}
	return []chart.Series{chart.ContinuousSeries{
		XValues: []float64{xr.Min, xr.Max},
		YValues: []float64{yr.Min, yr.Max},
		Style: chart.Style{
			StrokeColor: drawing.ColorTransparent,
			StrokeWidth: chart.Disabled,
			DotWidth:    0,
		},
	}}
}

const maxTicks = 40

// wavelengthTicks labels [lo, hi] every step units, widening the step so a
// wide range never yields more than maxTicks labels.
func wavelengthTicks(lo, hi, step float64) []chart.Tick {
	if !finite(lo) || !finite(hi) || hi <= lo {
		return nil
	}
	if step <= 0 || math.IsNaN(step) {
		step = 1
	}
	span := hi - lo
	if span/step > maxTicks {
		step = math.Ceil(span / maxTicks)
	}
	n := int(math.Floor(span/step + 1e-9))
	ticks := make([]chart.Tick, 0, n+1)
	for i := 0; i <= n; i++ {
		v := lo + float64(i)*step
		ticks = append(ticks, chart.Tick{Value: v, Label: chanpick.FormatID(v)})
	}
	return ticks
}
