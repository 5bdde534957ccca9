package clashgo

import (
	"fmt"
	"iter"

	"github.com/hupe1980/clashgo/internal/lazy"
	"github.com/hupe1980/clashgo/record"
)

// Achievement is one entry from a player's achievement list.
type Achievement struct {
	// Name is the achievement name, which also keys GetAchievement.
	Name string
	// Stars is the number of stars earned, 0-3.
	Stars int
	// Value is the current progress counter.
	Value int
	// Target is the counter value required for the next star.
	Target int
	// Info is the achievement description.
	Info string
	// CompletionInfo describes the progress, empty for some achievements.
	CompletionInfo string
	// Village is "home" or "builderBase".
	Village string
}

// NewAchievement builds an Achievement from an achievement sub-record.
// It tolerates absent input: a nil record yields nil, never an error.
func NewAchievement(rec record.Record) *Achievement {
	if rec == nil {
		return nil
	}
	a := &Achievement{}
	a.Name, _ = rec.GetString("name")
	a.Stars, _ = rec.GetInt("stars")
	a.Value, _ = rec.GetInt("value")
	a.Target, _ = rec.GetInt("target")
	a.Info, _ = rec.GetString("info")
	a.CompletionInfo, _ = rec.GetString("completionInfo")
	a.Village, _ = rec.GetString("village")
	return a
}

// Player is a full player profile.
//
// It extends the member fields with profile-only ones and owns two deferred
// collections of its own: labels and achievements. Both follow the same
// materialize-once contract as the clan collections.
type Player struct {
	ClanMember

	townHall           optInt
	townHallWeapon     optInt
	builderHall        optInt
	bestTrophies       optInt
	bestVersusTrophies optInt
	warStars           optInt
	attackWins         optInt
	defenseWins        optInt
	versusAttackWins   optInt
	warOptedIn         optBool

	labels       *lazy.List[*Label]
	achievements *lazy.Map[*Achievement]
}

// NewPlayer builds a Player from a decoded player payload. Missing fields
// read back as unknown, absent arrays as empty collections; construction
// never fails. The clan reference comes from the payload's embedded clan
// sub-record, when present.
func NewPlayer(rec record.Record, client *Client) *Player {
	p := &Player{
		ClanMember:         *NewClanMember(rec, client, nil),
		townHall:           intField(rec, "townHallLevel"),
		townHallWeapon:     intField(rec, "townHallWeaponLevel"),
		builderHall:        intField(rec, "builderHallLevel"),
		bestTrophies:       intField(rec, "bestTrophies"),
		bestVersusTrophies: intField(rec, "bestVersusTrophies"),
		warStars:           intField(rec, "warStars"),
		attackWins:         intField(rec, "attackWins"),
		defenseWins:        intField(rec, "defenseWins"),
		versusAttackWins:   intField(rec, "versusBattleWinCount"),
	}

	if pref, ok := rec.GetString("warPreference"); ok {
		p.warOptedIn = optBool{v: pref == "in", set: true}
	}

	p.labels = lazy.NewList(labelSeq(rec.GetArray("labels")))
	p.achievements = lazy.NewMap(
		func(a *Achievement) string { return a.Name },
		achievementSeq(rec.GetArray("achievements")),
	)

	return p
}

// achievementSeq defers Achievement construction until the sequence is
// drained. Array elements that are not records are dropped.
func achievementSeq(raw []record.Value) iter.Seq[*Achievement] {
	return func(yield func(*Achievement) bool) {
		for _, v := range raw {
			sub, ok := v.AsRecord()
			if !ok {
				continue
			}
			if !yield(NewAchievement(sub)) {
				return
			}
		}
	}
}

// TownHall returns the player's town hall level, if present.
func (p *Player) TownHall() (int, bool) { return p.townHall.get() }

// TownHallWeapon returns the town hall weapon level, if present. Only town
// halls of level twelve and up carry one.
func (p *Player) TownHallWeapon() (int, bool) { return p.townHallWeapon.get() }

// BuilderHall returns the player's builder hall level, if present.
func (p *Player) BuilderHall() (int, bool) { return p.builderHall.get() }

// BestTrophies returns the player's highest trophy count, if present.
func (p *Player) BestTrophies() (int, bool) { return p.bestTrophies.get() }

// BestVersusTrophies returns the highest versus trophy count, if present.
func (p *Player) BestVersusTrophies() (int, bool) { return p.bestVersusTrophies.get() }

// WarStars returns the total war stars earned, if present.
func (p *Player) WarStars() (int, bool) { return p.warStars.get() }

// AttackWins returns this season's attack wins, if present.
func (p *Player) AttackWins() (int, bool) { return p.attackWins.get() }

// DefenseWins returns this season's defense wins, if present.
func (p *Player) DefenseWins() (int, bool) { return p.defenseWins.get() }

// VersusAttackWins returns the lifetime versus battle wins, if present.
func (p *Player) VersusAttackWins() (int, bool) { return p.versusAttackWins.get() }

// WarOptedIn reports whether the player opted into wars, if the payload
// carried a war preference.
func (p *Player) WarOptedIn() (bool, bool) { return p.warOptedIn.get() }

// Labels returns the player's labels in payload order, duplicates included.
// The first call drains the pending sequence; later calls return the cached
// list. Callers must treat the returned slice as read-only.
func (p *Player) Labels() []*Label {
	return p.labels.Items()
}

// Achievements returns the player's achievements in materialization order.
// The first call drains the pending sequence into a name-keyed map; later
// calls reuse that cache.
func (p *Player) Achievements() []*Achievement {
	return p.achievements.Values()
}

// GetAchievement returns the achievement with the given name, or
// ErrNotFound. The first call materializes the achievement map.
func (p *Player) GetAchievement(name string) (*Achievement, error) {
	a, ok := p.achievements.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: achievement %q", ErrNotFound, name)
	}
	return a, nil
}

// RankedPlayer is a player snapshot as returned by leaderboard rankings.
//
// Every field is independently optional: regular rankings omit the versus
// fields, versus rankings omit the regular ones. A RankedPlayer is
// immutable after construction.
type RankedPlayer struct {
	BasePlayer

	expLevel         optInt
	trophies         optInt
	attackWins       optInt
	defenseWins      optInt
	versusTrophies   optInt
	versusBattleWins optInt
	rank             optInt
	previousRank     optInt
	league           *League
	clan             *BaseClan
}

// NewRankedPlayer builds a RankedPlayer from a decoded ranking entry.
// Missing fields read back as unknown; construction never fails.
func NewRankedPlayer(rec record.Record, client *Client) *RankedPlayer {
	p := &RankedPlayer{
		BasePlayer:       newBasePlayer(rec, client),
		expLevel:         intField(rec, "expLevel"),
		trophies:         intField(rec, "trophies"),
		attackWins:       intField(rec, "attackWins"),
		defenseWins:      intField(rec, "defenseWins"),
		versusTrophies:   intField(rec, "versusTrophies"),
		versusBattleWins: intField(rec, "versusBattleWins"),
		rank:             intField(rec, "rank"),
		previousRank:     intField(rec, "previousRank"),
		league:           NewLeague(rec.GetRecord("league")),
	}
	if clanRec := rec.GetRecord("clan"); clanRec != nil {
		base := newBaseClan(clanRec, client)
		p.clan = &base
	}
	return p
}

// ExpLevel returns the player's experience level, if present.
func (p *RankedPlayer) ExpLevel() (int, bool) { return p.expLevel.get() }

// Trophies returns the player's trophy count, if present.
func (p *RankedPlayer) Trophies() (int, bool) { return p.trophies.get() }

// AttackWins returns this season's attack wins, if present.
func (p *RankedPlayer) AttackWins() (int, bool) { return p.attackWins.get() }

// DefenseWins returns this season's defense wins, if present.
func (p *RankedPlayer) DefenseWins() (int, bool) { return p.defenseWins.get() }

// VersusTrophies returns the versus trophy count, if present.
func (p *RankedPlayer) VersusTrophies() (int, bool) { return p.versusTrophies.get() }

// VersusBattleWins returns the versus battle wins, if present.
func (p *RankedPlayer) VersusBattleWins() (int, bool) { return p.versusBattleWins.get() }

// Rank returns the player's position in the leaderboard, if present.
func (p *RankedPlayer) Rank() (int, bool) { return p.rank.get() }

// PreviousRank returns the player's position in the previous season's
// leaderboard, if present.
func (p *RankedPlayer) PreviousRank() (int, bool) { return p.previousRank.get() }

// League returns the player's trophy league, or nil if absent.
func (p *RankedPlayer) League() *League { return p.league }

// Clan returns the identity of the player's clan, or nil when the player
// is clanless.
func (p *RankedPlayer) Clan() *BaseClan { return p.clan }
