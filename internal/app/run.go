package app

import (
	"context"
	"io"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"yashubustudio/chanpick/chanpick"
	"yashubustudio/chanpick/logger"
	"yashubustudio/chanpick/plot"
)

const fyneAppID = "com.yashubustudio.chanpick"

// Options configures the desktop viewer.
type Options struct {
	Config chanpick.Config
	Mode   plot.Mode
	// Watch re-renders when the table or exclusion file changes on disk.
	Watch bool
	// Session continues an existing run instead of starting a new one.
	Session *chanpick.Session
	// Last is shown as the current selection until the next step.
	Last *chanpick.Iteration
}

// Run opens the viewer window and blocks until it is closed.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var u *uiState
	logs := newLogBuffer(300, func(text string) {
		if u != nil {
			u.setLog(text)
		}
	})
	log := logger.New(io.MultiWriter(os.Stderr, logs))
	logger.SetLevel(opts.Config.LogLevel)

	ctx = logger.NewContext(ctx, log)

	sess := opts.Session
	if sess == nil {
		sess = chanpick.NewSession(opts.Config, log)
	}

	a := fyneapp.NewWithID(fyneAppID)
	u = buildUI(ctx, a, sess, opts.Mode, log)
	u.last = opts.Last
	logs.start()
	defer logs.stop()

	cfg := sess.Config()
	log.Info("viewer started", "table", cfg.TablePath, "exclusions", cfg.ExclusionPath, "key", cfg.Key.String(), "mode", string(opts.Mode))
	a.Lifecycle().SetOnStarted(func() {
		if opts.Last != nil {
			go u.redraw()
			return
		}
		go u.refresh()
	})
	if opts.Watch {
		go func() {
			err := watchFiles(ctx, []string{cfg.TablePath, cfg.ExclusionPath}, 0, u.refresh)
			if err != nil {
				log.Warn("file watching disabled", "err", err)
			}
		}()
	}
	u.w.SetOnClosed(cancel)
	u.w.ShowAndRun()
	return nil
}
