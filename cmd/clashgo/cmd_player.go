package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Inspect players",
	}

	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerVerifyCmd())

	return cmd
}

func newPlayerGetCmd() *cobra.Command {
	var showAchievements bool

	cmd := &cobra.Command{
		Use:   "get <tag>",
		Short: "Show a player profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			player, err := client.GetPlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", player.Tag(), player.Name())
			if th, ok := player.TownHall(); ok {
				fmt.Fprintf(out, "Town hall: %d\n", th)
			}
			if level, ok := player.ExpLevel(); ok {
				fmt.Fprintf(out, "Level:     %d\n", level)
			}
			if trophies, ok := player.Trophies(); ok {
				fmt.Fprintf(out, "Trophies:  %d\n", trophies)
			}
			if stars, ok := player.WarStars(); ok {
				fmt.Fprintf(out, "War stars: %d\n", stars)
			}
			if league := player.League(); league != nil {
				fmt.Fprintf(out, "League:    %s\n", league.Name)
			}
			if clan := player.Clan(); clan != nil {
				fmt.Fprintf(out, "Clan:      %s %s\n", clan.Tag(), clan.Name())
			}

			if showAchievements {
				for _, a := range player.Achievements() {
					fmt.Fprintf(out, "%d* %-32s %d/%d\n", a.Stars, a.Name, a.Value, a.Target)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showAchievements, "achievements", false, "list achievements")

	return cmd
}

func newPlayerVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <tag> <token>",
		Short: "Verify an in-game API token against a player tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			valid, err := client.VerifyPlayerToken(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			if valid {
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), "invalid")
			return nil
		},
	}
}
