package main

import (
	"fmt"
	"os"

	"github.com/hupe1980/clashgo"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "clashgo",
		Short: "Query the Clash of Clans API from the command line",
		Long: "clashgo queries the Clash of Clans API.\n\n" +
			"Configuration comes from the environment: set CLASHGO_TOKENS to one or\n" +
			"more comma-separated API tokens from https://developer.clashofclans.com.",
	}

	root.AddCommand(newClanCmd())
	root.AddCommand(newPlayerCmd())
	root.AddCommand(newRankingsCmd())
	root.AddCommand(newLocationsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newClient() (*clashgo.Client, error) {
	return clashgo.NewFromEnv()
}
