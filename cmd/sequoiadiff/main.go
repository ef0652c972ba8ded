// Command sequoiadiff is a thin demonstration CLI around the sequoiadiff
// library: it reads two JSON-encoded node trees and prints the edit
// script that transforms the first into the second. It is not part of
// the core (§1 scopes CLI wrappers out of the algorithmic core) and does
// not wire in a real parser — see the package's Non-goals.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("sequoiadiff failed")
	}
}
