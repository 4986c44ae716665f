// Command wareki converts dates between the Gregorian and Japanese era
// calendars.
//
// Usage:
//
//	wareki to 2026-02-23
//	wareki from 令和 8 2 23
//	wareki eras
//	wareki convert --column 1 --header dates.csv
package main

import (
	"errors"
	"log"
	"os"

	"github.com/rabitt1ove/jp-wareki/internal/cli"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("wareki: ")

	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}
	// Commands report their own errors; anything else is a usage error from
	// flag or argument parsing.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		log.Print(err)
	}
	os.Exit(cli.GetExitCode(err))
}
