package plot

import (
	"image"

	"yashubustudio/chanpick/chanpick"
)

// Mode selects which chart a view renders.
type Mode string

const (
	// ModeSingle shows the current table coloured by group.
	ModeSingle Mode = "single"
	// ModeCumulative shows one marker row per recorded iteration.
	ModeCumulative Mode = "cumulative"
)

// ParseMode maps a user supplied name to a Mode, defaulting to ModeSingle.
func ParseMode(s string) Mode {
	if Mode(s) == ModeCumulative {
		return ModeCumulative
	}
	return ModeSingle
}

// State is everything a view needs to draw one frame.
type State struct {
	Table      chanpick.Table
	Key        chanpick.Key
	Exclusions []float64
	Selection  *chanpick.Selection
	Snapshots  []chanpick.Snapshot
	// Note is drawn as a caption when set.
	Note string
}

// RenderState draws the chart for mode.
func RenderState(mode Mode, st State, cfg chanpick.ChartConfig) (image.Image, error) {
	var (
		img image.Image
		err error
	)
	switch mode {
	case ModeCumulative:
		img, err = Render(CumulativeChart(st.Key, st.Snapshots, CumulativeOptions(cfg)))
	default:
		groups := Partition(st.Table.Rows, st.Key, st.Exclusions, st.Selection)
		img, err = Render(AssignmentChart(groups, AssignmentOptions(cfg)))
	}
	if err != nil {
		return nil, err
	}
	return Annotate(img, st.Note), nil
}
