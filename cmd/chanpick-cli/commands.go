package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/alecthomas/kong"

	"yashubustudio/chanpick/chanpick"
	"yashubustudio/chanpick/internal/app"
	"yashubustudio/chanpick/internal/rootcmd"
	"yashubustudio/chanpick/plot"
)

type selectCmd struct {
	PNG  string `name:"png" help:"Write the assignment chart to this PNG file" type:"path"`
	Show bool   `help:"Open the chart in a window"`
}

func (cmd *selectCmd) Run(ctx context.Context, kctx *kong.Context, g *rootcmd.Globals) error {
	cfg, log, err := g.Load()
	if err != nil {
		return err
	}
	sess := chanpick.NewSession(cfg, log)
	it, err := sess.Step(ctx)
	if err != nil {
		return err
	}
	newPrinter(kctx.Stdout).report(it)
	return output(ctx, kctx, sess, &it, plot.ModeSingle, cmd.PNG, cmd.Show)
}

type runCmd struct {
	Iterations int    `short:"n" help:"Number of iterations (defaults to the configured count)"`
	Reset      bool   `help:"Empty the exclusion list before the first iteration"`
	PNG        string `name:"png" help:"Write the cumulative chart to this PNG file" type:"path"`
	Show       bool   `help:"Open the chart in a window"`
}

func (cmd *runCmd) Run(ctx context.Context, kctx *kong.Context, g *rootcmd.Globals) error {
	cfg, log, err := g.Load()
	if err != nil {
		return err
	}
	n := cmd.Iterations
	if n <= 0 {
		n = cfg.Iterations
	}
	sess := chanpick.NewSession(cfg, log)
	if cmd.Reset {
		if err := sess.Reset(); err != nil {
			return err
		}
	}
	p := newPrinter(kctx.Stdout)
	var last *chanpick.Iteration
	err = sess.Run(ctx, n, func(it chanpick.Iteration) error {
		p.iterationHeader(it.Number)
		p.report(it)
		last = &it
		return nil
	})
	if err != nil {
		return err
	}
	return output(ctx, kctx, sess, last, plot.ModeCumulative, cmd.PNG, cmd.Show)
}

type plotCmd struct {
	Mode string `help:"Chart to draw" enum:"single,cumulative" default:"single"`
	PNG  string `name:"png" help:"Write the chart to this PNG file" type:"path"`
	Show bool   `help:"Open the chart in a window"`
}

func (cmd *plotCmd) Run(ctx context.Context, kctx *kong.Context, g *rootcmd.Globals) error {
	if cmd.PNG == "" && !cmd.Show {
		return errors.New("nothing to do: pass --png and/or --show")
	}
	cfg, log, err := g.Load()
	if err != nil {
		return err
	}
	sess := chanpick.NewSession(cfg, log)
	if _, _, err := sess.Refresh(ctx); err != nil {
		return err
	}
	return output(ctx, kctx, sess, nil, plot.ParseMode(cmd.Mode), cmd.PNG, cmd.Show)
}

type exclusionsCmd struct {
	Show  exclusionsShowCmd  `cmd:"" default:"1" help:"Print the exclusion list"`
	Reset exclusionsResetCmd `cmd:"" help:"Empty the exclusion list"`
}

type exclusionsShowCmd struct{}

func (cmd *exclusionsShowCmd) Run(kctx *kong.Context, g *rootcmd.Globals) error {
	cfg, _, err := g.Load()
	if err != nil {
		return err
	}
	store := chanpick.NewExclusionStore(cfg.ExclusionPath)
	p := newPrinter(kctx.Stdout)
	ids := store.Load()
	p.exclusions(store.Path, ids)
	if len(ids) == 0 && len(cfg.DefaultExclusions) > 0 {
		p.line(p.label, "empty; the next iteration starts from the %d default exclusions", len(cfg.DefaultExclusions))
	}
	return nil
}

type exclusionsResetCmd struct{}

func (cmd *exclusionsResetCmd) Run(g *rootcmd.Globals) error {
	cfg, log, err := g.Load()
	if err != nil {
		return err
	}
	if err := chanpick.NewExclusionStore(cfg.ExclusionPath).Reset(); err != nil {
		return err
	}
	log.Info("exclusion list reset", "path", cfg.ExclusionPath)
	return nil
}

type versionCmd struct{}

func (cmd *versionCmd) Run(kctx *kong.Context) error {
	fmt.Fprintf(kctx.Stdout, "chanpick-cli %s (%s)\n", version, runtime.Version())
	return nil
}

// output writes and/or shows the chart for the session state.
func output(ctx context.Context, kctx *kong.Context, sess *chanpick.Session, last *chanpick.Iteration, mode plot.Mode, pngPath string, show bool) error {
	if pngPath != "" {
		cfg := sess.Config()
		img, err := plot.RenderState(mode, app.ViewState(sess, last), cfg.Chart)
		if err != nil {
			return err
		}
		if err := plot.WritePNG(pngPath, img); err != nil {
			return err
		}
		fmt.Fprintf(kctx.Stderr, "wrote %s\n", pngPath)
	}
	if !show {
		return nil
	}
	return app.Run(ctx, app.Options{
		Config:  sess.Config(),
		Mode:    mode,
		Session: sess,
		Last:    last,
	})
}
