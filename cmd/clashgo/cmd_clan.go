package main

import (
	"fmt"

	"github.com/hupe1980/clashgo"
	"github.com/spf13/cobra"
)

func newClanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clan",
		Short: "Inspect clans",
	}

	cmd.AddCommand(newClanGetCmd())
	cmd.AddCommand(newClanMembersCmd())
	cmd.AddCommand(newClanSearchCmd())

	return cmd
}

func newClanGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <tag>",
		Short: "Show a clan profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			clan, err := client.GetClan(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", clan.Tag(), clan.Name())
			if desc, ok := clan.Description(); ok && desc != "" {
				fmt.Fprintln(out, desc)
			}
			if level, ok := clan.Level(); ok {
				fmt.Fprintf(out, "Level:    %d\n", level)
			}
			if points, ok := clan.Points(); ok {
				fmt.Fprintf(out, "Points:   %d\n", points)
			}
			if count, ok := clan.MemberCount(); ok {
				fmt.Fprintf(out, "Members:  %d\n", count)
			}
			if loc := clan.Location(); loc != nil {
				fmt.Fprintf(out, "Location: %s\n", loc.Name)
			}
			if wins, ok := clan.WarWins(); ok {
				fmt.Fprintf(out, "War wins: %d\n", wins)
			}
			if wl := clan.WarLeague(); wl != nil {
				fmt.Fprintf(out, "War league: %s\n", wl.Name)
			}
			for _, label := range clan.Labels() {
				fmt.Fprintf(out, "Label:    %s\n", label.Name)
			}

			return nil
		},
	}
}

func newClanMembersCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "members <tag>",
		Short: "List the members of a clan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			page, err := client.GetClanMembers(cmd.Context(), args[0], func(o *clashgo.PageOptions) {
				o.Limit = limit
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, member := range page.Items {
				role, _ := member.Role()
				trophies, _ := member.Trophies()
				fmt.Fprintf(out, "%-12s %-24s %-10s %5d\n", member.Tag(), member.Name(), role.String(), trophies)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of members to list")

	return cmd
}

func newClanSearchCmd() *cobra.Command {
	var opts clashgo.ClanSearchOptions

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for clans",
		Long:  "Search for clans. At least one filter flag is required.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			page, err := client.SearchClans(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, clan := range page.Items {
				count, _ := clan.MemberCount()
				points, _ := clan.Points()
				fmt.Fprintf(out, "%-12s %-24s members=%2d points=%d\n", clan.Tag(), clan.Name(), count, points)
			}
			if page.After != "" {
				fmt.Fprintf(out, "next page cursor: %s\n", page.After)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "clan name to search for (min. 3 characters)")
	cmd.Flags().StringVar(&opts.WarFrequency, "war-frequency", "", "declared war frequency, e.g. always")
	cmd.Flags().IntVar(&opts.LocationID, "location", 0, "location ID to restrict results to")
	cmd.Flags().IntVar(&opts.MinMembers, "min-members", 0, "minimum member count")
	cmd.Flags().IntVar(&opts.MaxMembers, "max-members", 0, "maximum member count")
	cmd.Flags().IntVar(&opts.MinClanPoints, "min-points", 0, "minimum clan points")
	cmd.Flags().IntVar(&opts.MinClanLevel, "min-level", 0, "minimum clan level")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of results")
	cmd.Flags().StringVar(&opts.After, "after", "", "page cursor to resume from")

	return cmd
}
