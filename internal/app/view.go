package app

import (
	"fmt"

	"yashubustudio/chanpick/chanpick"
	"yashubustudio/chanpick/plot"
)

// ViewState assembles what the chart needs from the session and the most
// recent iteration, if any.
func ViewState(sess *chanpick.Session, last *chanpick.Iteration) plot.State {
	cfg := sess.Config()
	st := plot.State{
		Table:      sess.Table(),
		Key:        cfg.Key,
		Exclusions: sess.Exclusions(),
		Snapshots:  sess.Snapshots(),
	}
	if last == nil {
		return st
	}
	st.Selection = last.Report.Selection
	if !last.Report.Found() {
		st.Note = NoCandidateMessage(cfg.Key, last.Exclusions)
	}
	return st
}

// NoCandidateMessage is the line shown when an iteration finds nothing to select.
func NoCandidateMessage(key chanpick.Key, exclusions []float64) string {
	return fmt.Sprintf("No candidate found for Q = %s excluding %s", key.String(), chanpick.FormatIDs(exclusions))
}

// summaryText is the one-line status shown under the chart.
func summaryText(key chanpick.Key, exclusions []float64, last *chanpick.Iteration) string {
	base := fmt.Sprintf("Q = %s | excluded: %d", key.String(), len(exclusions))
	if last == nil {
		return base
	}
	if sel := last.Report.Selection; sel != nil {
		return fmt.Sprintf("%s | iteration %d: gi=%s, S=%s", base, last.Number, chanpick.FormatID(sel.ID), chanpick.FormatID(sel.Score))
	}
	return fmt.Sprintf("%s | iteration %d: no candidate", base, last.Number)
}
