package clashgo

import (
	"testing"

	"github.com/hupe1980/clashgo/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const playerFixture = `{
	"tag": "#8QU8J9LP",
	"name": "Luke",
	"townHallLevel": 14,
	"townHallWeaponLevel": 5,
	"builderHallLevel": 9,
	"expLevel": 220,
	"trophies": 5400,
	"bestTrophies": 5800,
	"versusTrophies": 3200,
	"bestVersusTrophies": 4000,
	"warStars": 1500,
	"attackWins": 120,
	"defenseWins": 40,
	"versusBattleWinCount": 900,
	"warPreference": "in",
	"role": "coLeader",
	"donations": 600,
	"donationsReceived": 200,
	"clan": {"tag": "#2PP", "name": "Reapers of Dusk", "clanLevel": 12},
	"league": {"id": 29000022, "name": "Legend League"},
	"labels": [
		{"id": 57000000, "name": "Clan Wars"},
		{"id": 57000002, "name": "Trophy Pushing"}
	],
	"achievements": [
		{"name": "Bigger Coffers", "stars": 3, "value": 11, "target": 10, "info": "Upgrade a Gold Storage to level 10", "completionInfo": "Highest Gold Storage level: 11", "village": "home"},
		{"name": "Get those Goblins!", "stars": 2, "value": 120, "target": 150, "info": "Win 150 Stars on the Campaign Map", "completionInfo": "Stars won: 120", "village": "home"}
	]
}`

func TestPlayer(t *testing.T) {
	t.Run("Fields", func(t *testing.T) {
		p := NewPlayer(decodeRecord(t, playerFixture), nil)

		assert.Equal(t, "#8QU8J9LP", p.Tag())
		assert.Equal(t, "Luke", p.Name())

		townHall, ok := p.TownHall()
		require.True(t, ok)
		assert.Equal(t, 14, townHall)

		weapon, ok := p.TownHallWeapon()
		require.True(t, ok)
		assert.Equal(t, 5, weapon)

		builderHall, ok := p.BuilderHall()
		require.True(t, ok)
		assert.Equal(t, 9, builderHall)

		best, ok := p.BestTrophies()
		require.True(t, ok)
		assert.Equal(t, 5800, best)

		bestVersus, ok := p.BestVersusTrophies()
		require.True(t, ok)
		assert.Equal(t, 4000, bestVersus)

		warStars, ok := p.WarStars()
		require.True(t, ok)
		assert.Equal(t, 1500, warStars)

		attacks, ok := p.AttackWins()
		require.True(t, ok)
		assert.Equal(t, 120, attacks)

		defenses, ok := p.DefenseWins()
		require.True(t, ok)
		assert.Equal(t, 40, defenses)

		versusWins, ok := p.VersusAttackWins()
		require.True(t, ok)
		assert.Equal(t, 900, versusWins)
	})

	t.Run("MemberFieldsThroughEmbedding", func(t *testing.T) {
		p := NewPlayer(decodeRecord(t, playerFixture), nil)

		role, ok := p.Role()
		require.True(t, ok)
		assert.Equal(t, RoleCoLeader, role)

		trophies, ok := p.Trophies()
		require.True(t, ok)
		assert.Equal(t, 5400, trophies)

		donations, ok := p.Donations()
		require.True(t, ok)
		assert.Equal(t, 600, donations)

		require.NotNil(t, p.Clan())
		assert.Equal(t, "#2PP", p.Clan().Tag())

		require.NotNil(t, p.League())
		assert.Equal(t, "Legend League", p.League().Name)
	})

	t.Run("WarPreference", func(t *testing.T) {
		in := NewPlayer(decodeRecord(t, `{"warPreference": "in"}`), nil)
		optedIn, ok := in.WarOptedIn()
		require.True(t, ok)
		assert.True(t, optedIn)

		out := NewPlayer(decodeRecord(t, `{"warPreference": "out"}`), nil)
		optedIn, ok = out.WarOptedIn()
		require.True(t, ok)
		assert.False(t, optedIn)

		// Absent preference is unknown, not opted out.
		absent := NewPlayer(record.Record{}, nil)
		_, ok = absent.WarOptedIn()
		assert.False(t, ok)
	})

	t.Run("EmptyRecord", func(t *testing.T) {
		p := NewPlayer(record.Record{}, nil)

		assert.Empty(t, p.Tag())
		assert.Nil(t, p.Clan())
		assert.Nil(t, p.League())

		_, ok := p.TownHall()
		assert.False(t, ok)
		_, ok = p.WarStars()
		assert.False(t, ok)

		assert.Empty(t, p.Labels())
		assert.Empty(t, p.Achievements())

		_, err := p.GetAchievement("Bigger Coffers")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Labels", func(t *testing.T) {
		p := NewPlayer(decodeRecord(t, playerFixture), nil)

		labels := p.Labels()
		require.Len(t, labels, 2)
		assert.Equal(t, "Clan Wars", labels[0].Name)
		assert.Equal(t, "Trophy Pushing", labels[1].Name)

		assert.Same(t, labels[0], p.Labels()[0])
	})
}

func TestPlayerAchievements(t *testing.T) {
	t.Run("Order", func(t *testing.T) {
		p := NewPlayer(decodeRecord(t, playerFixture), nil)

		achievements := p.Achievements()
		require.Len(t, achievements, 2)
		assert.Equal(t, "Bigger Coffers", achievements[0].Name)
		assert.Equal(t, "Get those Goblins!", achievements[1].Name)
		assert.Equal(t, 3, achievements[0].Stars)
		assert.Equal(t, 11, achievements[0].Value)
		assert.Equal(t, 10, achievements[0].Target)
		assert.Equal(t, "home", achievements[0].Village)
	})

	t.Run("GetByName", func(t *testing.T) {
		p := NewPlayer(decodeRecord(t, playerFixture), nil)

		a, err := p.GetAchievement("Get those Goblins!")
		require.NoError(t, err)
		assert.Equal(t, 120, a.Value)

		_, err = p.GetAchievement("No Such Feat")
		require.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "No Such Feat")
	})

	t.Run("MaterializeOnce", func(t *testing.T) {
		p := NewPlayer(decodeRecord(t, playerFixture), nil)

		first := p.Achievements()
		second := p.Achievements()
		require.Len(t, first, 2)

		for i := range first {
			assert.Same(t, first[i], second[i])
		}

		a, err := p.GetAchievement("Bigger Coffers")
		require.NoError(t, err)
		assert.Same(t, first[0], a)
	})

	t.Run("DuplicateNameLastWins", func(t *testing.T) {
		rec := decodeRecord(t, `{
			"achievements": [
				{"name": "Bigger Coffers", "stars": 1, "value": 5},
				{"name": "Bigger Coffers", "stars": 3, "value": 11}
			]
		}`)
		p := NewPlayer(rec, nil)

		achievements := p.Achievements()
		require.Len(t, achievements, 1)
		assert.Equal(t, 3, achievements[0].Stars)

		a, err := p.GetAchievement("Bigger Coffers")
		require.NoError(t, err)
		assert.Equal(t, 11, a.Value)
	})
}

func TestNewAchievement(t *testing.T) {
	assert.Nil(t, NewAchievement(nil))

	a := NewAchievement(record.Record{"name": record.String("Bigger Coffers")})
	require.NotNil(t, a)
	assert.Equal(t, "Bigger Coffers", a.Name)
	assert.Zero(t, a.Stars)
}

func TestRankedPlayer(t *testing.T) {
	t.Run("Fields", func(t *testing.T) {
		rec := decodeRecord(t, `{
			"tag": "#8QU8J9LP",
			"name": "Luke",
			"expLevel": 220,
			"trophies": 6200,
			"attackWins": 150,
			"defenseWins": 60,
			"rank": 12,
			"previousRank": 15,
			"league": {"id": 29000022, "name": "Legend League"},
			"clan": {"tag": "#2PP", "name": "Reapers of Dusk", "badgeUrls": {"small": "https://cdn.example/small.png"}}
		}`)
		p := NewRankedPlayer(rec, nil)

		assert.Equal(t, "#8QU8J9LP", p.Tag())

		level, ok := p.ExpLevel()
		require.True(t, ok)
		assert.Equal(t, 220, level)

		trophies, ok := p.Trophies()
		require.True(t, ok)
		assert.Equal(t, 6200, trophies)

		rank, ok := p.Rank()
		require.True(t, ok)
		assert.Equal(t, 12, rank)

		previous, ok := p.PreviousRank()
		require.True(t, ok)
		assert.Equal(t, 15, previous)

		require.NotNil(t, p.League())
		assert.Equal(t, "Legend League", p.League().Name)

		require.NotNil(t, p.Clan())
		assert.Equal(t, "#2PP", p.Clan().Tag())
		require.NotNil(t, p.Clan().Badge())

		// Regular leaderboard payloads carry no versus fields.
		_, ok = p.VersusTrophies()
		assert.False(t, ok)
		_, ok = p.VersusBattleWins()
		assert.False(t, ok)
	})

	t.Run("VersusFields", func(t *testing.T) {
		rec := decodeRecord(t, `{
			"tag": "#8QU8J9LP",
			"name": "Luke",
			"versusTrophies": 5100,
			"versusBattleWins": 1300,
			"rank": 3
		}`)
		p := NewRankedPlayer(rec, nil)

		versus, ok := p.VersusTrophies()
		require.True(t, ok)
		assert.Equal(t, 5100, versus)

		wins, ok := p.VersusBattleWins()
		require.True(t, ok)
		assert.Equal(t, 1300, wins)

		_, ok = p.Trophies()
		assert.False(t, ok)
	})

	t.Run("Clanless", func(t *testing.T) {
		p := NewRankedPlayer(decodeRecord(t, `{"tag": "#8QU8J9LP", "name": "Luke"}`), nil)
		assert.Nil(t, p.Clan())
	})
}
