package main

import (
	"context"

	"github.com/alecthomas/kong"

	"yashubustudio/chanpick/internal/app"
	"yashubustudio/chanpick/internal/rootcmd"
	"yashubustudio/chanpick/plot"
)

type viewer struct {
	rootcmd.Globals

	Mode  string `help:"Initial chart" enum:"single,cumulative" default:"single"`
	Watch bool   `help:"Redraw when the table or exclusion file changes" default:"true" negatable:""`
}

func (v *viewer) Run(ctx context.Context) error {
	cfg, _, err := v.Load()
	if err != nil {
		return err
	}
	return app.Run(ctx, app.Options{
		Config: cfg,
		Mode:   plot.ParseMode(v.Mode),
		Watch:  v.Watch,
	})
}

func main() {
	v := &viewer{}
	rootcmd.Run(v, "chanpick", "Channel selection viewer", kong.Bind(&v.Globals))
}
