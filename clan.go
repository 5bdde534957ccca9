package clashgo

import (
	"fmt"
	"iter"

	"github.com/hupe1980/clashgo/internal/lazy"
	"github.com/hupe1980/clashgo/record"
)

// ClanType describes how a clan accepts new members.
type ClanType string

const (
	// ClanTypeOpen means anyone may join.
	ClanTypeOpen ClanType = "open"
	// ClanTypeInviteOnly means joining requires an accepted request.
	ClanTypeInviteOnly ClanType = "inviteOnly"
	// ClanTypeClosed means the clan accepts no new members.
	ClanTypeClosed ClanType = "closed"
)

// RankedClan is a clan snapshot as returned by leaderboard rankings.
//
// Every field is independently optional: regular rankings omit versus
// points, versus rankings omit regular points. A RankedClan is immutable
// after construction.
type RankedClan struct {
	BaseClan

	location     *Location
	memberCount  optInt
	points       optInt
	versusPoints optInt
	rank         optInt
	previousRank optInt
}

// NewRankedClan builds a RankedClan from a decoded ranking entry.
// Missing fields read back as unknown; construction never fails.
func NewRankedClan(rec record.Record, client *Client) *RankedClan {
	return &RankedClan{
		BaseClan:     newBaseClan(rec, client),
		location:     NewLocation(rec.GetRecord("location")),
		memberCount:  intField(rec, "members"),
		points:       intField(rec, "clanPoints"),
		versusPoints: intField(rec, "clanVersusPoints"),
		rank:         intField(rec, "rank"),
		previousRank: intField(rec, "previousRank"),
	}
}

// Location returns the clan's location, or nil if absent.
func (c *RankedClan) Location() *Location { return c.location }

// MemberCount returns the number of members, if present.
func (c *RankedClan) MemberCount() (int, bool) { return c.memberCount.get() }

// Points returns the clan's trophy count, if present. Versus leaderboard
// payloads omit it.
func (c *RankedClan) Points() (int, bool) { return c.points.get() }

// VersusPoints returns the clan's versus trophy count, if present. Regular
// leaderboard payloads omit it.
func (c *RankedClan) VersusPoints() (int, bool) { return c.versusPoints.get() }

// Rank returns the clan's position in the leaderboard, if present.
func (c *RankedClan) Rank() (int, bool) { return c.rank.get() }

// PreviousRank returns the clan's position in the previous season's
// leaderboard, if present.
func (c *RankedClan) PreviousRank() (int, bool) { return c.previousRank.get() }

// Clan is a full clan profile.
//
// Scalar fields are extracted eagerly at construction; the labels and
// member list stay as unconsumed sequences until first accessed, then
// materialize once into cached structures that every later read reuses.
// Aside from those two internal caches a Clan is immutable, and the caches
// themselves are guarded, so sharing an instance across goroutines is safe.
type Clan struct {
	BaseClan

	clanType         optString
	description      optString
	location         *Location
	points           optInt
	versusPoints     optInt
	requiredTrophies optInt
	warFrequency     optString
	warWinStreak     optInt
	warWins          optInt
	warTies          optInt
	warLosses        optInt
	publicWarLog     optBool
	memberCount      optInt
	warLeague        *WarLeague

	labels  *lazy.List[*Label]
	members *lazy.Map[*ClanMember]
}

// NewClan builds a Clan from a decoded clan payload. Missing fields read
// back as unknown, absent arrays as empty collections; construction never
// fails. Constructing the label and member elements is deferred until the
// collections are first read.
func NewClan(rec record.Record, client *Client) *Clan {
	c := &Clan{
		BaseClan:         newBaseClan(rec, client),
		clanType:         stringField(rec, "type"),
		description:      stringField(rec, "description"),
		location:         NewLocation(rec.GetRecord("location")),
		points:           intField(rec, "clanPoints"),
		versusPoints:     intField(rec, "clanVersusPoints"),
		requiredTrophies: intField(rec, "requiredTrophies"),
		warFrequency:     stringField(rec, "warFrequency"),
		warWinStreak:     intField(rec, "warWinStreak"),
		warWins:          intField(rec, "warWins"),
		warTies:          intField(rec, "warTies"),
		warLosses:        intField(rec, "warLosses"),
		publicWarLog:     boolField(rec, "isWarLogPublic"),
		memberCount:      intField(rec, "members"),
		warLeague:        NewWarLeague(rec.GetRecord("warLeague")),
	}

	c.labels = lazy.NewList(labelSeq(rec.GetArray("labels")))
	c.members = lazy.NewMap(
		func(m *ClanMember) string { return m.Tag() },
		memberSeq(rec.GetArray("memberList"), client, c),
	)

	return c
}

// labelSeq defers Label construction until the sequence is drained.
// Array elements that are not records are dropped.
func labelSeq(raw []record.Value) iter.Seq[*Label] {
	return func(yield func(*Label) bool) {
		for _, v := range raw {
			sub, ok := v.AsRecord()
			if !ok {
				continue
			}
			if !yield(NewLabel(sub)) {
				return
			}
		}
	}
}

// memberSeq defers ClanMember construction until the sequence is drained.
// Array elements that are not records are dropped.
func memberSeq(raw []record.Value, client *Client, owner *Clan) iter.Seq[*ClanMember] {
	return func(yield func(*ClanMember) bool) {
		for _, v := range raw {
			sub, ok := v.AsRecord()
			if !ok {
				continue
			}
			if !yield(NewClanMember(sub, client, owner)) {
				return
			}
		}
	}
}

// Type returns how the clan accepts members, if present.
func (c *Clan) Type() (ClanType, bool) {
	v, ok := c.clanType.get()
	return ClanType(v), ok
}

// Description returns the clan's public description, if present. Search
// results omit it.
func (c *Clan) Description() (string, bool) { return c.description.get() }

// Location returns the clan's location, or nil if absent.
func (c *Clan) Location() *Location { return c.location }

// Points returns the clan's trophy count, if present.
func (c *Clan) Points() (int, bool) { return c.points.get() }

// VersusPoints returns the clan's versus trophy count, if present.
func (c *Clan) VersusPoints() (int, bool) { return c.versusPoints.get() }

// RequiredTrophies returns the minimum trophies to apply, if present.
func (c *Clan) RequiredTrophies() (int, bool) { return c.requiredTrophies.get() }

// WarFrequency returns how often the clan wars, e.g. "always", if present.
func (c *Clan) WarFrequency() (string, bool) { return c.warFrequency.get() }

// WarWinStreak returns the current war win streak, if present.
func (c *Clan) WarWinStreak() (int, bool) { return c.warWinStreak.get() }

// WarWins returns the number of wars won, if present.
func (c *Clan) WarWins() (int, bool) { return c.warWins.get() }

// WarTies returns the number of wars tied, if present.
func (c *Clan) WarTies() (int, bool) { return c.warTies.get() }

// WarLosses returns the number of wars lost, if present.
func (c *Clan) WarLosses() (int, bool) { return c.warLosses.get() }

// PublicWarLog reports whether the clan's war log is public, if present.
func (c *Clan) PublicWarLog() (bool, bool) { return c.publicWarLog.get() }

// MemberCount returns the number of members, if present. It comes from the
// payload's own count field and is available without materializing Members.
func (c *Clan) MemberCount() (int, bool) { return c.memberCount.get() }

// WarLeague returns the clan's CWL league, or nil if absent.
func (c *Clan) WarLeague() *WarLeague { return c.warLeague }

// Labels returns the clan's labels in payload order, duplicates included.
// The first call drains the pending sequence; later calls return the cached
// list. Callers must treat the returned slice as read-only.
func (c *Clan) Labels() []*Label {
	return c.labels.Items()
}

// Members returns the clan's members in materialization order. The first
// call drains the pending sequence into a tag-keyed map, keeping the later
// entry when two members share a tag; later calls reuse that cache.
func (c *Clan) Members() []*ClanMember {
	return c.members.Values()
}

// GetMember returns the member with the given tag. The tag is normalized
// before lookup, so "  #abc123 " and "#ABC123" address the same member.
// A tag that normalizes to nothing yields ErrInvalidTag; a well-formed tag
// with no member yields ErrNotFound. Lookup is O(1) once the member map is
// materialized, and the first call materializes it.
func (c *Clan) GetMember(tag string) (*ClanMember, error) {
	normalized := NormalizeTag(tag)
	if normalized == "#" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}

	m, ok := c.members.Get(normalized)
	if !ok {
		return nil, fmt.Errorf("%w: member %s", ErrNotFound, normalized)
	}
	return m, nil
}

// GetMemberBy returns the first member, in the stable order of Members,
// that satisfies every matcher. At least one matcher is required; an empty
// set yields ErrNoMatchers. The scan is linear, which is fine at clan size:
// materialization dominates and member lists top out at fifty.
func (c *Clan) GetMemberBy(matchers ...MemberMatcher) (*ClanMember, error) {
	if len(matchers) == 0 {
		return nil, ErrNoMatchers
	}

	for _, m := range c.members.Values() {
		all := true
		for _, matcher := range matchers {
			ok, err := matcher.matches(m)
			if err != nil {
				return nil, err
			}
			if !ok {
				all = false
				break
			}
		}
		if all {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: no member matches", ErrNotFound)
}
