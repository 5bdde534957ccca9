package main

import (
	"fmt"

	"github.com/hupe1980/clashgo"
	"github.com/spf13/cobra"
)

func newRankingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rankings",
		Short: "Show location leaderboards",
	}

	cmd.AddCommand(newRankingsClansCmd())
	cmd.AddCommand(newRankingsPlayersCmd())

	return cmd
}

func newRankingsClansCmd() *cobra.Command {
	var (
		locationID int
		limit      int
		versus     bool
	)

	cmd := &cobra.Command{
		Use:   "clans",
		Short: "Show the clan leaderboard of a location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			pageOpts := func(o *clashgo.PageOptions) { o.Limit = limit }

			var page *clashgo.Page[*clashgo.RankedClan]
			if versus {
				page, err = client.LocationClanVersusRankings(cmd.Context(), locationID, pageOpts)
			} else {
				page, err = client.LocationClanRankings(cmd.Context(), locationID, pageOpts)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, clan := range page.Items {
				rank, _ := clan.Rank()
				points, _ := clan.Points()
				if versus {
					points, _ = clan.VersusPoints()
				}
				fmt.Fprintf(out, "%3d. %-12s %-24s %d\n", rank, clan.Tag(), clan.Name(), points)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&locationID, "location", 0, "location ID (see the locations command)")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries")
	cmd.Flags().BoolVar(&versus, "versus", false, "show the versus leaderboard")
	_ = cmd.MarkFlagRequired("location")

	return cmd
}

func newRankingsPlayersCmd() *cobra.Command {
	var (
		locationID int
		limit      int
		versus     bool
	)

	cmd := &cobra.Command{
		Use:   "players",
		Short: "Show the player leaderboard of a location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			pageOpts := func(o *clashgo.PageOptions) { o.Limit = limit }

			var page *clashgo.Page[*clashgo.RankedPlayer]
			if versus {
				page, err = client.LocationPlayerVersusRankings(cmd.Context(), locationID, pageOpts)
			} else {
				page, err = client.LocationPlayerRankings(cmd.Context(), locationID, pageOpts)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, player := range page.Items {
				rank, _ := player.Rank()
				trophies, _ := player.Trophies()
				if versus {
					trophies, _ = player.VersusTrophies()
				}
				fmt.Fprintf(out, "%3d. %-12s %-24s %d\n", rank, player.Tag(), player.Name(), trophies)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&locationID, "location", 0, "location ID (see the locations command)")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries")
	cmd.Flags().BoolVar(&versus, "versus", false, "show the versus leaderboard")
	_ = cmd.MarkFlagRequired("location")

	return cmd
}

func newLocationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List the locations the API ranks by",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			page, err := client.ListLocations(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, loc := range page.Items {
				kind := "region"
				if loc.IsCountry {
					kind = "country"
				}
				fmt.Fprintf(out, "%-10d %-8s %s\n", loc.ID, kind, loc.Name)
			}

			return nil
		},
	}
}
