package clashgo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/clashgo/internal/rest"
	"github.com/hupe1980/clashgo/record"
)

// maxConcurrentFetches bounds the fan-out of the batch Get* helpers.
const maxConcurrentFetches = 8

// Client is the entry point to the Clash of Clans API. It is safe for
// concurrent use; model values it returns carry a reference back to it for
// follow-up fetches.
type Client struct {
	rest    *rest.Client
	metrics MetricsCollector
	logger  *Logger
}

// New creates a new Client authenticated with the given API token.
//
// Tokens are issued per IP on the developer portal. Additional tokens can
// be supplied with WithExtraTokens to raise the sustained request rate.
func New(token string, optFns ...Option) (*Client, error) {
	opts := applyOptions(optFns)

	tokens := make([]string, 0, 1+len(opts.extraTokens))
	if token != "" {
		tokens = append(tokens, token)
	}
	tokens = append(tokens, opts.extraTokens...)

	if len(tokens) == 0 {
		return nil, ErrNoTokens
	}

	metrics := opts.metricsCollector
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	logger := opts.logger
	if logger == nil {
		logger = NoopLogger()
	}

	restClient, err := rest.New(func(o *rest.Options) {
		o.HTTPClient = opts.httpClient
		o.BaseURL = opts.baseURL
		o.Tokens = tokens
		o.RateLimit = opts.rateLimit
		o.Timeout = opts.requestTimeout
		o.CacheMaxEntries = opts.cacheMaxEntries
		o.CacheTTL = opts.cacheTTL
		o.MaxRetries = opts.maxRetries
		o.Hooks = rest.Hooks{
			RateLimitWait: metrics.RecordRateLimitWait,
			CacheHit:      metrics.RecordCacheHit,
			CacheMiss:     metrics.RecordCacheMiss,
			Retry:         metrics.RecordRetry,
		}
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		rest:    restClient,
		metrics: metrics,
		logger:  logger,
	}, nil
}

// Close releases idle HTTP connections. It is safe to call more than once;
// the client remains usable afterwards.
func (c *Client) Close() error {
	c.rest.Close()
	return nil
}

// get performs a GET request, translates transport errors onto the public
// error surface and decodes the JSON body. endpoint is the stable metric
// and log label for the operation, path the concrete request path.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values) (record.Record, error) {
	start := time.Now()
	data, err := c.rest.Get(ctx, path, query)
	duration := time.Since(start)
	err = translateError(err)
	c.metrics.RecordRequest(endpoint, duration, err)
	c.logger.LogRequest(ctx, endpoint, duration, err)
	if err != nil {
		return nil, err
	}

	rec, err := record.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	return rec, nil
}

// escapeTag validates and escapes a caller-supplied tag for use in a
// request path. Tags are normalized first, so "2pp", "#2PP" and " 2Pp "
// all address the same resource.
func escapeTag(tag string) (string, error) {
	normalized := NormalizeTag(tag)
	if !IsValidTag(normalized) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}

	return url.PathEscape(normalized), nil
}

// GetClan fetches a clan by tag. The tag is normalized before the request,
// and a tag unknown to the API yields ErrNotFound.
func (c *Client) GetClan(ctx context.Context, tag string) (*Clan, error) {
	escaped, err := escapeTag(tag)
	if err != nil {
		return nil, err
	}

	rec, err := c.get(ctx, "clan", "/clans/"+escaped, nil)
	if err != nil {
		return nil, err
	}

	return NewClan(rec, c), nil
}

// GetClans fetches several clans concurrently. Results are returned in the
// order of the given tags. The first error cancels outstanding fetches and
// is returned.
func (c *Client) GetClans(ctx context.Context, tags ...string) ([]*Clan, error) {
	clans := make([]*Clan, len(tags))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for i, tag := range tags {
		g.Go(func() error {
			clan, err := c.GetClan(ctx, tag)
			if err != nil {
				return err
			}
			clans[i] = clan
			return nil
		})
	}

	err := g.Wait()
	c.logger.LogBatchFetch(ctx, "clan", len(tags), err)
	if err != nil {
		return nil, err
	}

	return clans, nil
}

// GetClanMembers lists the members of a clan without fetching the full
// clan body.
func (c *Client) GetClanMembers(ctx context.Context, tag string, optFns ...func(*PageOptions)) (*Page[*ClanMember], error) {
	escaped, err := escapeTag(tag)
	if err != nil {
		return nil, err
	}

	rec, err := c.get(ctx, "clan_members", "/clans/"+escaped+"/members", pageQuery(optFns))
	if err != nil {
		return nil, err
	}

	return newPage(rec, func(r record.Record) *ClanMember { return NewClanMember(r, c, nil) }), nil
}

// GetPlayer fetches a full player profile by tag.
func (c *Client) GetPlayer(ctx context.Context, tag string) (*Player, error) {
	escaped, err := escapeTag(tag)
	if err != nil {
		return nil, err
	}

	rec, err := c.get(ctx, "player", "/players/"+escaped, nil)
	if err != nil {
		return nil, err
	}

	return NewPlayer(rec, c), nil
}

// GetPlayers fetches several players concurrently. Results are returned in
// the order of the given tags. The first error cancels outstanding fetches
// and is returned.
func (c *Client) GetPlayers(ctx context.Context, tags ...string) ([]*Player, error) {
	players := make([]*Player, len(tags))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for i, tag := range tags {
		g.Go(func() error {
			player, err := c.GetPlayer(ctx, tag)
			if err != nil {
				return err
			}
			players[i] = player
			return nil
		})
	}

	err := g.Wait()
	c.logger.LogBatchFetch(ctx, "player", len(tags), err)
	if err != nil {
		return nil, err
	}

	return players, nil
}

// VerifyPlayerToken checks an in-game API token against a player tag. It
// reports true only when the API confirms the token belongs to the player.
// Tokens are issued in the game's settings screen and expire after a short
// time.
func (c *Client) VerifyPlayerToken(ctx context.Context, tag, token string) (bool, error) {
	escaped, err := escapeTag(tag)
	if err != nil {
		return false, err
	}

	start := time.Now()
	data, err := c.rest.Post(ctx, "/players/"+escaped+"/verifytoken", map[string]string{"token": token})
	duration := time.Since(start)
	err = translateError(err)
	c.metrics.RecordRequest("verify_token", duration, err)
	if err != nil {
		c.logger.LogVerify(ctx, NormalizeTag(tag), false, err)
		return false, err
	}

	rec, err := record.Decode(data)
	if err != nil {
		return false, fmt.Errorf("decode verify_token response: %w", err)
	}

	status, _ := rec.GetString("status")
	valid := status == "ok"
	c.logger.LogVerify(ctx, NormalizeTag(tag), valid, nil)

	return valid, nil
}

// GetLocation fetches a location by its numeric ID.
func (c *Client) GetLocation(ctx context.Context, id int) (*Location, error) {
	rec, err := c.get(ctx, "location", "/locations/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}

	return NewLocation(rec), nil
}

// GetLocationNamed fetches the location with the given name, scanning the
// full location list client-side. Matching is exact and case-sensitive;
// ErrNotFound is returned when no location carries the name.
func (c *Client) GetLocationNamed(ctx context.Context, name string) (*Location, error) {
	page, err := c.ListLocations(ctx)
	if err != nil {
		return nil, err
	}

	for _, loc := range page.Items {
		if loc.Name == name {
			return loc, nil
		}
	}

	return nil, fmt.Errorf("%w: location %q", ErrNotFound, name)
}

// ListLocations lists all locations the API ranks by.
func (c *Client) ListLocations(ctx context.Context, optFns ...func(*PageOptions)) (*Page[*Location], error) {
	rec, err := c.get(ctx, "locations", "/locations", pageQuery(optFns))
	if err != nil {
		return nil, err
	}

	return newPage(rec, NewLocation), nil
}

// LocationClanRankings lists the clan leaderboard of a location.
func (c *Client) LocationClanRankings(ctx context.Context, locationID int, optFns ...func(*PageOptions)) (*Page[*RankedClan], error) {
	path := "/locations/" + strconv.Itoa(locationID) + "/rankings/clans"

	rec, err := c.get(ctx, "clan_rankings", path, pageQuery(optFns))
	if err != nil {
		return nil, err
	}

	return newPage(rec, func(r record.Record) *RankedClan { return NewRankedClan(r, c) }), nil
}

// LocationClanVersusRankings lists the clan versus leaderboard of a
// location.
func (c *Client) LocationClanVersusRankings(ctx context.Context, locationID int, optFns ...func(*PageOptions)) (*Page[*RankedClan], error) {
	path := "/locations/" + strconv.Itoa(locationID) + "/rankings/clans-versus"

	rec, err := c.get(ctx, "clan_versus_rankings", path, pageQuery(optFns))
	if err != nil {
		return nil, err
	}

	return newPage(rec, func(r record.Record) *RankedClan { return NewRankedClan(r, c) }), nil
}

// LocationPlayerRankings lists the player leaderboard of a location.
func (c *Client) LocationPlayerRankings(ctx context.Context, locationID int, optFns ...func(*PageOptions)) (*Page[*RankedPlayer], error) {
	path := "/locations/" + strconv.Itoa(locationID) + "/rankings/players"

	rec, err := c.get(ctx, "player_rankings", path, pageQuery(optFns))
	if err != nil {
		return nil, err
	}

	return newPage(rec, func(r record.Record) *RankedPlayer { return NewRankedPlayer(r, c) }), nil
}

// LocationPlayerVersusRankings lists the player versus leaderboard of a
// location.
func (c *Client) LocationPlayerVersusRankings(ctx context.Context, locationID int, optFns ...func(*PageOptions)) (*Page[*RankedPlayer], error) {
	path := "/locations/" + strconv.Itoa(locationID) + "/rankings/players-versus"

	rec, err := c.get(ctx, "player_versus_rankings", path, pageQuery(optFns))
	if err != nil {
		return nil, err
	}

	return newPage(rec, func(r record.Record) *RankedPlayer { return NewRankedPlayer(r, c) }), nil
}

// GetLeague fetches a trophy league by its numeric ID.
func (c *Client) GetLeague(ctx context.Context, id int) (*League, error) {
	rec, err := c.get(ctx, "league", "/leagues/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}

	return NewLeague(rec), nil
}

// ListLeagues lists all trophy leagues.
func (c *Client) ListLeagues(ctx context.Context, optFns ...func(*PageOptions)) (*Page[*League], error) {
	rec, err := c.get(ctx, "leagues", "/leagues", pageQuery(optFns))
	if err != nil {
		return nil, err
	}

	return newPage(rec, NewLeague), nil
}

// ListLeagueSeasons lists the finished seasons of a league. Only the
// Legend League keeps season records; other league IDs yield ErrNotFound.
func (c *Client) ListLeagueSeasons(ctx context.Context, leagueID int, optFns ...func(*PageOptions)) (*Page[string], error) {
	path := "/leagues/" + strconv.Itoa(leagueID) + "/seasons"

	rec, err := c.get(ctx, "league_seasons", path, pageQuery(optFns))
	if err != nil {
		return nil, err
	}

	return newPage(rec, func(r record.Record) string {
		id, _ := r.GetString("id")
		return id
	}), nil
}

// LeagueSeasonRankings lists the player rankings of a finished league
// season, e.g. season "2024-07" of the Legend League.
func (c *Client) LeagueSeasonRankings(ctx context.Context, leagueID int, seasonID string, optFns ...func(*PageOptions)) (*Page[*RankedPlayer], error) {
	path := "/leagues/" + strconv.Itoa(leagueID) + "/seasons/" + url.PathEscape(seasonID)

	rec, err := c.get(ctx, "league_season_rankings", path, pageQuery(optFns))
	if err != nil {
		return nil, err
	}

	return newPage(rec, func(r record.Record) *RankedPlayer { return NewRankedPlayer(r, c) }), nil
}

// GetWarLeague fetches a war league by its numeric ID.
func (c *Client) GetWarLeague(ctx context.Context, id int) (*WarLeague, error) {
	rec, err := c.get(ctx, "war_league", "/warleagues/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}

	return NewWarLeague(rec), nil
}

// ListWarLeagues lists all war leagues.
func (c *Client) ListWarLeagues(ctx context.Context, optFns ...func(*PageOptions)) (*Page[*WarLeague], error) {
	rec, err := c.get(ctx, "war_leagues", "/warleagues", pageQuery(optFns))
	if err != nil {
		return nil, err
	}

	return newPage(rec, NewWarLeague), nil
}

// ListClanLabels lists the labels clans can carry.
func (c *Client) ListClanLabels(ctx context.Context, optFns ...func(*PageOptions)) (*Page[*Label], error) {
	rec, err := c.get(ctx, "clan_labels", "/labels/clans", pageQuery(optFns))
	if err != nil {
		return nil, err
	}

	return newPage(rec, NewLabel), nil
}

// ListPlayerLabels lists the labels players can carry.
func (c *Client) ListPlayerLabels(ctx context.Context, optFns ...func(*PageOptions)) (*Page[*Label], error) {
	rec, err := c.get(ctx, "player_labels", "/labels/players", pageQuery(optFns))
	if err != nil {
		return nil, err
	}

	return newPage(rec, NewLabel), nil
}

// GetGoldPassSeason fetches the current gold pass season.
func (c *Client) GetGoldPassSeason(ctx context.Context) (*GoldPassSeason, error) {
	rec, err := c.get(ctx, "goldpass", "/goldpass/seasons/current", nil)
	if err != nil {
		return nil, err
	}

	return NewGoldPassSeason(rec), nil
}
