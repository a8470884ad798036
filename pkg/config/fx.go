package config

import (
	"os"

	"github.com/rymskip/evenframe-sub000/pkg/consts"
	"go.uber.org/fx"
)

var Module = fx.Module("config", fx.Provide(
	// Loads schemadrift.yaml from the working directory when present. A nil
	// config lets commands run entirely from flags.
	func() (*Config, error) {
		if _, err := os.Stat(consts.DefaultConfigFile); os.IsNotExist(err) {
			return nil, nil
		}

		return LoadConfigFile(consts.DefaultConfigFile)
	},
))
