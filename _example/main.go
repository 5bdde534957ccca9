package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hupe1980/clashgo"
)

func main() {
	ctx := context.Background()

	metrics := &clashgo.BasicMetricsCollector{}

	client, err := clashgo.NewFromEnv(clashgo.WithMetricsCollector(metrics))
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	fmt.Println("--- Clan ---")

	start := time.Now()

	clan, err := client.GetClan(ctx, "#2PP")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Tag:", clan.Tag())
	fmt.Println("Name:", clan.Name())
	if points, ok := clan.Points(); ok {
		fmt.Println("Points:", points)
	}
	if freq, ok := clan.WarFrequency(); ok {
		fmt.Println("War frequency:", freq)
	}

	fmt.Println("\n--- Members ---")

	for _, m := range clan.Members() {
		role, _ := m.Role()
		trophies, _ := m.Trophies()
		fmt.Printf("%-12s %-20s %s (%d)\n", m.Tag(), m.Name(), role, trophies)
	}

	leader, err := clan.GetMemberBy(clashgo.MatchRole(clashgo.RoleLeader))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Leader:", leader.Name())

	fmt.Println("\n--- Search ---")

	page, err := client.SearchClans(ctx, clashgo.ClanSearchOptions{
		Name:       "reapers",
		MinMembers: 10,
		Limit:      5,
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, c := range page.Items {
		count, _ := c.MemberCount()
		fmt.Printf("%-12s %-24s %d members\n", c.Tag(), c.Name(), count)
	}

	fmt.Printf("\nSeconds: %.2f\n", time.Since(start).Seconds())

	stats := metrics.GetStats()
	fmt.Println("Requests:", stats.RequestCount)
	fmt.Println("Cache hits:", stats.CacheHits)
}
