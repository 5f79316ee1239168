package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/api"
	"github.com/travigo/patnametro/pkg/consumer"
	"github.com/travigo/patnametro/pkg/dataimporter"
	"github.com/travigo/patnametro/pkg/indexer"
	"github.com/travigo/patnametro/pkg/transforms"
	"github.com/travigo/patnametro/pkg/util"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	_ "time/tzdata"
)

func main() {
	if err := util.LoadEnvironmentFile(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load .env file")
	}

	var output io.Writer = os.Stdout
	if os.Getenv("PATNAMETRO_LOG_FORMAT") != "JSON" {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	if logFile := os.Getenv("PATNAMETRO_LOG_FILE"); logFile != "" {
		output = io.MultiWriter(output, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		})
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	if os.Getenv("PATNAMETRO_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	if err := transforms.SetupClient(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load transforms")
	}

	app := &cli.App{
		Name:        "patnametro",
		Description: "Single binary for the Patna Metro rider portal - runs all the services",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			consumer.RegisterCLI(),
			indexer.RegisterCLI(),
			dataimporter.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
