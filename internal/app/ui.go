package app

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"yashubustudio/chanpick/chanpick"
	"yashubustudio/chanpick/plot"
)

type uiState struct {
	ctx     context.Context
	session *chanpick.Session
	cfg     chanpick.Config
	log     *slog.Logger

	w          fyne.Window
	chart      *canvas.Image
	logView    *widget.Entry
	modeSelect *widget.Select
	iterEntry  *widget.Entry
	statusBind binding.String
	logBind    binding.String

	nextBtn   *widget.Button
	runBtn    *widget.Button
	resetBtn  *widget.Button
	exportBtn *widget.Button

	mu      sync.Mutex
	mode    plot.Mode
	last    *chanpick.Iteration
	current image.Image
}

func buildUI(ctx context.Context, a fyne.App, sess *chanpick.Session, mode plot.Mode, log *slog.Logger) *uiState {
	u := &uiState{ctx: ctx, session: sess, cfg: sess.Config(), log: log, mode: mode}
	u.w = a.NewWindow("Channel Picker")

	u.statusBind = binding.NewString()
	_ = u.statusBind.Set("Ready")
	u.logBind = binding.NewString()

	u.logView = widget.NewEntryWithData(u.logBind)
	u.logView.MultiLine = true
	u.logView.Wrapping = fyne.TextWrapWord
	u.logView.SetPlaceHolder("Log")
	u.logView.Disable()

	u.chart = canvas.NewImageFromImage(plot.Blank(u.cfg.Chart.Width, u.cfg.Chart.Height))
	u.chart.FillMode = canvas.ImageFillContain
	u.chart.SetMinSize(fyne.NewSize(480, 600))

	u.modeSelect = widget.NewSelect([]string{string(plot.ModeSingle), string(plot.ModeCumulative)}, func(s string) {
		u.mu.Lock()
		u.mode = plot.ParseMode(s)
		u.mu.Unlock()
		u.redraw()
	})
	u.modeSelect.Selected = string(mode)

	u.iterEntry = widget.NewEntry()
	u.iterEntry.SetText(strconv.Itoa(u.cfg.Iterations))

	u.nextBtn = widget.NewButtonWithIcon("Next iteration", theme.MediaPlayIcon(), func() { u.onRun(1) })
	u.runBtn = widget.NewButtonWithIcon("Run N", theme.MediaFastForwardIcon(), func() { u.onRunN() })
	u.resetBtn = widget.NewButtonWithIcon("Reset exclusions", theme.DeleteIcon(), func() { u.onReset() })
	u.exportBtn = widget.NewButtonWithIcon("Export PNG", theme.DocumentSaveIcon(), func() { u.onExport() })

	controls := container.NewVBox(
		widget.NewLabelWithStyle("View", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		u.modeSelect,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Iterations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		u.iterEntry,
		container.NewGridWithColumns(2, u.nextBtn, u.runBtn),
		container.NewGridWithColumns(2, u.resetBtn, u.exportBtn),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Configuration", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel(configSummary(u.cfg)),
	)
	left := container.NewBorder(controls, nil, nil, nil, u.logView)
	right := container.NewBorder(nil, widget.NewLabelWithData(u.statusBind), nil, nil, u.chart)
	split := container.NewHSplit(left, right)
	split.Offset = 0.3

	u.w.SetContent(split)
	u.w.Resize(fyne.NewSize(1180, 900))
	return u
}

func configSummary(cfg chanpick.Config) string {
	return strings.Join([]string{
		"Table: " + cfg.TablePath,
		"Exclusions: " + cfg.ExclusionPath,
		"Q: " + cfg.Key.String(),
		"Scale: x" + chanpick.FormatID(cfg.Chart.ScaleFactor),
	}, "\n")
}

func (u *uiState) setBusy(b bool) {
	fyne.Do(func() {
		for _, btn := range []*widget.Button{u.nextBtn, u.runBtn, u.resetBtn, u.exportBtn} {
			if b {
				btn.Disable()
			} else {
				btn.Enable()
			}
		}
	})
}

func (u *uiState) setStatus(text string) {
	_ = u.statusBind.Set(text)
}

func (u *uiState) setLog(text string) {
	_ = u.logBind.Set(text)
}

// refresh reloads both files and redraws without selecting.
func (u *uiState) refresh() {
	if _, _, err := u.session.Refresh(u.ctx); err != nil {
		u.log.Error("refresh failed", "err", err)
		u.setStatus(fmt.Sprintf("Error: %v", err))
		return
	}
	u.redraw()
}

func (u *uiState) redraw() {
	u.mu.Lock()
	mode := u.mode
	last := u.last
	u.mu.Unlock()

	st := ViewState(u.session, last)
	cfg := u.session.Config()
	img, err := plot.RenderState(mode, st, cfg.Chart)
	if err != nil {
		u.log.Error("render failed", "mode", string(mode), "err", err)
		u.setStatus(fmt.Sprintf("Error: %v", err))
		return
	}
	u.mu.Lock()
	u.current = img
	u.mu.Unlock()
	u.setStatus(summaryText(cfg.Key, st.Exclusions, last))
	fyne.Do(func() {
		u.chart.Image = img
		u.chart.Refresh()
	})
}

func (u *uiState) onRunN() {
	n, err := strconv.Atoi(strings.TrimSpace(u.iterEntry.Text))
	if err != nil || n <= 0 {
		dialog.ShowInformation("Iterations", "Enter a positive number of iterations", u.w)
		return
	}
	u.onRun(n)
}

func (u *uiState) onRun(n int) {
	u.setBusy(true)
	go func() {
		defer u.setBusy(false)
		err := u.session.Run(u.ctx, n, func(it chanpick.Iteration) error {
			u.mu.Lock()
			u.last = &it
			u.mu.Unlock()
			u.redraw()
			return nil
		})
		if err != nil {
			u.log.Error("run failed", "err", err)
			fyne.Do(func() {
				dialog.ShowError(err, u.w)
			})
		}
	}()
}

func (u *uiState) onReset() {
	dialog.ShowConfirm("Reset exclusions", "Empty the exclusion list file?", func(ok bool) {
		if !ok {
			return
		}
		if err := u.session.Reset(); err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		u.mu.Lock()
		u.last = nil
		u.mu.Unlock()
		go u.refresh()
	}, u.w)
}

func (u *uiState) onExport() {
	u.mu.Lock()
	img := u.current
	mode := u.mode
	u.mu.Unlock()
	if img == nil {
		dialog.ShowInformation("Export", "Nothing has been drawn yet", u.w)
		return
	}
	fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil || uc == nil {
			return
		}
		defer uc.Close()
		if err := plot.EncodePNG(uc, img); err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		u.log.Info("chart exported", "path", uc.URI().Path())
	}, u.w)
	fd.SetFileName(fmt.Sprintf("chanpick-%s.png", mode))
	fd.Show()
}
