package main

import (
	"os"

	"tsuro/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if len(os.Args) > 1 {
		// Run matchups from a YAML experiment file
		err := experiments.RunFromConfig(os.Args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("failed to run experiment")
		}
		return
	}

	experiments.RunParallelizationExperiment()
}
