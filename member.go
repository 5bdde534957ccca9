package clashgo

import (
	"context"
	"fmt"

	"github.com/hupe1980/clashgo/record"
)

// Role is a member's in-clan role as the API encodes it on the wire.
// Note that the wire value for Elder is "admin".
type Role string

const (
	// RoleMember is a regular member.
	RoleMember Role = "member"
	// RoleElder is an elder ("admin" on the wire).
	RoleElder Role = "admin"
	// RoleCoLeader is a co-leader.
	RoleCoLeader Role = "coLeader"
	// RoleLeader is the clan leader.
	RoleLeader Role = "leader"
)

// String returns the in-game display name for the role.
func (r Role) String() string {
	switch r {
	case RoleMember:
		return "Member"
	case RoleElder:
		return "Elder"
	case RoleCoLeader:
		return "Co-Leader"
	case RoleLeader:
		return "Leader"
	default:
		return string(r)
	}
}

// ClanMember is a member entry from a clan's member list.
//
// Members constructed through Clan.Members carry a reference to the owning
// clan; members from other endpoints carry whatever partial clan record the
// payload embedded, or none.
type ClanMember struct {
	BasePlayer

	clan             *Clan
	role             optString
	expLevel         optInt
	league           *League
	trophies         optInt
	versusTrophies   optInt
	clanRank         optInt
	clanPreviousRank optInt
	donations        optInt
	received         optInt
}

// NewClanMember builds a ClanMember from a member sub-record. clan is the
// owning clan for members drawn from a clan payload and may be nil; when it
// is, an embedded "clan" sub-record on the member stands in.
// All fields are optional; absent ones read back as unknown.
func NewClanMember(rec record.Record, client *Client, clan *Clan) *ClanMember {
	m := &ClanMember{
		BasePlayer:       newBasePlayer(rec, client),
		clan:             clan,
		role:             stringField(rec, "role"),
		expLevel:         intField(rec, "expLevel"),
		league:           NewLeague(rec.GetRecord("league")),
		trophies:         intField(rec, "trophies"),
		versusTrophies:   intField(rec, "versusTrophies"),
		clanRank:         intField(rec, "clanRank"),
		clanPreviousRank: intField(rec, "previousClanRank"),
		donations:        intField(rec, "donations"),
		received:         intField(rec, "donationsReceived"),
	}
	if m.clan == nil {
		if clanRec := rec.GetRecord("clan"); clanRec != nil {
			m.clan = NewClan(clanRec, client)
		}
	}
	return m
}

// Clan returns the clan this member belongs to, or nil when unknown.
func (m *ClanMember) Clan() *Clan { return m.clan }

// Role returns the member's role, if present.
func (m *ClanMember) Role() (Role, bool) {
	v, ok := m.role.get()
	return Role(v), ok
}

// ExpLevel returns the member's experience level, if present.
func (m *ClanMember) ExpLevel() (int, bool) { return m.expLevel.get() }

// League returns the member's trophy league, or nil if absent.
func (m *ClanMember) League() *League { return m.league }

// Trophies returns the member's trophy count, if present.
func (m *ClanMember) Trophies() (int, bool) { return m.trophies.get() }

// VersusTrophies returns the member's versus trophy count, if present.
func (m *ClanMember) VersusTrophies() (int, bool) { return m.versusTrophies.get() }

// ClanRank returns the member's rank within the clan, if present.
func (m *ClanMember) ClanRank() (int, bool) { return m.clanRank.get() }

// ClanPreviousRank returns the member's rank in the previous season,
// if present.
func (m *ClanMember) ClanPreviousRank() (int, bool) { return m.clanPreviousRank.get() }

// Donations returns the troops donated this season, if present.
func (m *ClanMember) Donations() (int, bool) { return m.donations.get() }

// Received returns the troops received this season, if present.
func (m *ClanMember) Received() (int, bool) { return m.received.get() }

// FetchPlayer loads the member's full player profile from the API.
func (m *ClanMember) FetchPlayer(ctx context.Context) (*Player, error) {
	if m.client == nil {
		return nil, ErrNoClient
	}
	return m.client.GetPlayer(ctx, m.tag)
}

// memberAttrs is the static accessor table backing member matchers. Each
// accessor returns the attribute as a typed value plus a presence flag; an
// absent attribute matches nothing.
var memberAttrs = map[string]func(*ClanMember) (record.Value, bool){
	"tag": func(m *ClanMember) (record.Value, bool) {
		return record.String(m.tag), m.tag != ""
	},
	"name": func(m *ClanMember) (record.Value, bool) {
		return record.String(m.name), m.name != ""
	},
	"role": func(m *ClanMember) (record.Value, bool) {
		v, ok := m.role.get()
		return record.String(v), ok
	},
	"expLevel":          memberIntAttr(func(m *ClanMember) optInt { return m.expLevel }),
	"trophies":          memberIntAttr(func(m *ClanMember) optInt { return m.trophies }),
	"versusTrophies":    memberIntAttr(func(m *ClanMember) optInt { return m.versusTrophies }),
	"clanRank":          memberIntAttr(func(m *ClanMember) optInt { return m.clanRank }),
	"previousClanRank":  memberIntAttr(func(m *ClanMember) optInt { return m.clanPreviousRank }),
	"donations":         memberIntAttr(func(m *ClanMember) optInt { return m.donations }),
	"donationsReceived": memberIntAttr(func(m *ClanMember) optInt { return m.received }),
}

func memberIntAttr(field func(*ClanMember) optInt) func(*ClanMember) (record.Value, bool) {
	return func(m *ClanMember) (record.Value, bool) {
		v, ok := field(m).get()
		return record.Int(v), ok
	}
}

// MemberMatcher is one attribute condition for Clan.GetMemberBy. Build
// matchers with the Match* constructors; a member is selected only when
// every matcher in the call holds.
type MemberMatcher struct {
	attr string
	want record.Value
}

// MatchTag matches members by normalized tag.
func MatchTag(tag string) MemberMatcher {
	return MemberMatcher{attr: "tag", want: record.String(NormalizeTag(tag))}
}

// MatchName matches members by exact name.
func MatchName(name string) MemberMatcher {
	return MemberMatcher{attr: "name", want: record.String(name)}
}

// MatchRole matches members by role.
func MatchRole(role Role) MemberMatcher {
	return MemberMatcher{attr: "role", want: record.String(string(role))}
}

// MatchExpLevel matches members by experience level.
func MatchExpLevel(level int) MemberMatcher {
	return MemberMatcher{attr: "expLevel", want: record.Int(level)}
}

// MatchTrophies matches members by trophy count.
func MatchTrophies(trophies int) MemberMatcher {
	return MemberMatcher{attr: "trophies", want: record.Int(trophies)}
}

// MatchVersusTrophies matches members by versus trophy count.
func MatchVersusTrophies(trophies int) MemberMatcher {
	return MemberMatcher{attr: "versusTrophies", want: record.Int(trophies)}
}

// MatchClanRank matches members by in-clan rank.
func MatchClanRank(rank int) MemberMatcher {
	return MemberMatcher{attr: "clanRank", want: record.Int(rank)}
}

// MatchDonations matches members by troops donated this season.
func MatchDonations(donations int) MemberMatcher {
	return MemberMatcher{attr: "donations", want: record.Int(donations)}
}

// MatchField matches members by an attribute named with its API payload key.
// Prefer the typed constructors; this is the open form for keys they do not
// cover. Unknown keys surface as ErrUnknownAttribute from GetMemberBy.
func MatchField(attr string, want record.Value) MemberMatcher {
	return MemberMatcher{attr: attr, want: want}
}

// matches reports whether the member satisfies the condition.
func (mm MemberMatcher) matches(m *ClanMember) (bool, error) {
	accessor, ok := memberAttrs[mm.attr]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownAttribute, mm.attr)
	}
	got, present := accessor(m)
	if !present {
		return false, nil
	}
	return record.Equal(got, mm.want), nil
}
