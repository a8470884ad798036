package main

import (
	"context"
	"os"

	"github.com/rymskip/evenframe-sub000/pkg/cmd"
	"github.com/rymskip/evenframe-sub000/pkg/config"
	"go.uber.org/fx"
)

// NB: These are set by GoReleaser during a build.
var (
	version string
	commit  string
	date    string
)

func main() {
	fx.New(
		fx.NopLogger,
		config.Module,
		cmd.Module,
		fx.Provide(func() context.Context { return context.Background() }),
		fx.Supply(
			os.Args,
			&cmd.Version{
				Version:   version,
				Commit:    commit,
				Timestamp: date,
			},
		),
	).Run()
}
