package cmd

import "go.uber.org/fx"

var Module = fx.Module("cli",
	fx.Provide(
		fx.Annotate(diff, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(parse, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(summary, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)
