package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookr/internal/cli"
	"github.com/mrlokans/bookr/internal/config"
	"github.com/mrlokans/bookr/internal/logging"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()
	logging.Setup(cfg.Global.LogLevel, cfg.Global.LogPretty)

	var commands cli.CLI
	parser, err := cli.New(&commands, &cli.Globals{
		Config:  cfg,
		Version: Version + " (" + Commit + ")",
		Out:     os.Stdout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build command line")
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := ctx.Run(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
