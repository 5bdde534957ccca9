// Package clashgo provides a typed Go client for the Clash of Clans API.
//
// clashgo wraps the REST API with read-only model types built once from a
// decoded payload. Scalar fields are extracted eagerly; the large embedded
// collections (clan member lists, player achievements, labels) stay
// pending until first accessed, then materialize exactly once per instance
// and serve every later access from the cache.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	client, err := clashgo.New(token)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	clan, err := client.GetClan(ctx, "#2PP")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(clan.Name(), clan.MemberCount())
//
//	member, err := clan.GetMember("#8QU8J9LP")  // normalized, O(1) after first use
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(member.Name())
//
// # Unknown Fields
//
// The API omits fields it has no value for, and payload shapes differ
// between endpoints. Model accessors therefore report absence instead of
// failing: scalar accessors return (value, ok) pairs and sub-model
// accessors return nil pointers. A model can always be constructed, even
// from an empty payload.
//
//	if points, ok := clan.Points(); ok {
//	    fmt.Println("points:", points)
//	}
//
// # Lazy Collections
//
// Clan.Members, Clan.Labels, Player.Achievements and Player.Labels defer
// element construction until first access. The first call drains the
// pending elements into a cache (a tag-keyed map for members, an ordered
// slice for labels); repeated calls and lookups reuse it. Identity lookups
// like Clan.GetMember are O(1) once materialized and trigger
// materialization transparently when called first.
//
// # Errors
//
// Expected failures map onto package-level sentinels for errors.Is tests:
// ErrNotFound (missing members, unknown tags, HTTP 404), ErrInvalidTag,
// ErrRateLimited, ErrMaintenance, ErrInvalidCredentials. Other API
// failures surface as *APIError with status code and reason.
//
//	if _, err := client.GetClan(ctx, tag); errors.Is(err, clashgo.ErrNotFound) {
//	    // no such clan
//	}
//
// # Configuration
//
// Constructor options tune the client; NewFromEnv reads the same settings
// from CLASHGO_* environment variables:
//
//	client, err := clashgo.New(token,
//	    clashgo.WithRateLimit(20),
//	    clashgo.WithResponseCache(2048, 5*time.Minute),
//	    clashgo.WithLogLevel(slog.LevelDebug),
//	)
//
// Multiple API tokens can be rotated round-robin with WithExtraTokens to
// raise the sustained request rate.
package clashgo
