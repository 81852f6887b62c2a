package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"yashubustudio/chanpick/chanpick"
	"yashubustudio/chanpick/internal/app"
)

type printer struct {
	w       io.Writer
	heading lipgloss.Style
	label   lipgloss.Style
	found   lipgloss.Style
	missing lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:       w,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		label:   r.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
		found:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#2CA02C")),
		missing: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
	}
}

func (p *printer) line(style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(p.w, style.Render(fmt.Sprintf(format, args...)))
}

func (p *printer) iterationHeader(n int) {
	fmt.Fprintln(p.w)
	p.line(p.heading, "Iteration %d:", n)
}

// report prints the filtering counts and the outcome of one selection pass.
func (p *printer) report(it chanpick.Iteration) {
	r := it.Report
	p.line(p.label, "Total rows in CSV: %d", r.Total)
	p.line(p.label, "Rows after filtering Q: %d", r.Matching)
	p.line(p.label, "Rows after excluding Q and CCh: %d", r.Eligible)
	if sel := r.Selection; sel != nil {
		p.line(p.found, "Found candidate: gi=%s, S=%s", chanpick.FormatID(sel.ID), chanpick.FormatID(sel.Score))
		return
	}
	p.line(p.missing, "%s", app.NoCandidateMessage(r.Key, it.Exclusions))
}

func (p *printer) exclusions(path string, ids []float64) {
	p.line(p.heading, "%s (%d)", path, len(ids))
	fmt.Fprintln(p.w, chanpick.FormatIDs(ids))
}
