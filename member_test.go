package clashgo

import (
	"context"
	"testing"

	"github.com/hupe1980/clashgo/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const memberFixture = `{
	"tag": "#9Q8GYCUV",
	"name": "Han",
	"role": "admin",
	"expLevel": 180,
	"league": {"id": 29000022, "name": "Legend League", "iconUrls": {"tiny": "https://cdn.example/legend.png"}},
	"trophies": 4100,
	"versusTrophies": 3100,
	"clanRank": 2,
	"previousClanRank": 3,
	"donations": 800,
	"donationsReceived": 500
}`

func TestRoleString(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleMember, "Member"},
		{RoleElder, "Elder"},
		{RoleCoLeader, "Co-Leader"},
		{RoleLeader, "Leader"},
		{Role("guest"), "guest"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.role.String())
	}
}

func TestClanMember(t *testing.T) {
	t.Run("Fields", func(t *testing.T) {
		m := NewClanMember(decodeRecord(t, memberFixture), nil, nil)

		assert.Equal(t, "#9Q8GYCUV", m.Tag())
		assert.Equal(t, "Han", m.Name())
		assert.Equal(t, "https://link.clashofclans.com/en?action=OpenPlayerProfile&tag=%239Q8GYCUV", m.ShareLink())

		role, ok := m.Role()
		require.True(t, ok)
		assert.Equal(t, RoleElder, role)
		assert.Equal(t, "Elder", role.String())

		level, ok := m.ExpLevel()
		require.True(t, ok)
		assert.Equal(t, 180, level)

		trophies, ok := m.Trophies()
		require.True(t, ok)
		assert.Equal(t, 4100, trophies)

		versus, ok := m.VersusTrophies()
		require.True(t, ok)
		assert.Equal(t, 3100, versus)

		rank, ok := m.ClanRank()
		require.True(t, ok)
		assert.Equal(t, 2, rank)

		previous, ok := m.ClanPreviousRank()
		require.True(t, ok)
		assert.Equal(t, 3, previous)

		donations, ok := m.Donations()
		require.True(t, ok)
		assert.Equal(t, 800, donations)

		received, ok := m.Received()
		require.True(t, ok)
		assert.Equal(t, 500, received)

		require.NotNil(t, m.League())
		assert.Equal(t, "Legend League", m.League().Name)
		require.NotNil(t, m.League().Icon)
		assert.Equal(t, "https://cdn.example/legend.png", m.League().Icon.Tiny)
	})

	t.Run("EmptyRecord", func(t *testing.T) {
		m := NewClanMember(record.Record{}, nil, nil)

		assert.Empty(t, m.Tag())
		assert.Empty(t, m.ShareLink())
		assert.Nil(t, m.Clan())
		assert.Nil(t, m.League())

		_, ok := m.Role()
		assert.False(t, ok)
		_, ok = m.Trophies()
		assert.False(t, ok)
		_, ok = m.Donations()
		assert.False(t, ok)
	})

	t.Run("EmbeddedClan", func(t *testing.T) {
		// Members from non-clan endpoints carry their clan as a
		// sub-record instead of an owner.
		rec := decodeRecord(t, `{
			"tag": "#9Q8GYCUV",
			"name": "Han",
			"clan": {"tag": "#2PP", "name": "Reapers of Dusk", "clanLevel": 12}
		}`)
		m := NewClanMember(rec, nil, nil)

		require.NotNil(t, m.Clan())
		assert.Equal(t, "#2PP", m.Clan().Tag())
		assert.Equal(t, "Reapers of Dusk", m.Clan().Name())
	})

	t.Run("OwnerWinsOverEmbeddedClan", func(t *testing.T) {
		owner := NewClan(decodeRecord(t, `{"tag": "#2PP"}`), nil)
		rec := decodeRecord(t, `{
			"tag": "#9Q8GYCUV",
			"clan": {"tag": "#OTHER"}
		}`)
		m := NewClanMember(rec, nil, owner)

		assert.Same(t, owner, m.Clan())
	})

	t.Run("FetchPlayerWithoutClient", func(t *testing.T) {
		m := NewClanMember(decodeRecord(t, memberFixture), nil, nil)

		_, err := m.FetchPlayer(context.Background())
		assert.ErrorIs(t, err, ErrNoClient)
	})
}

func TestMemberMatcher(t *testing.T) {
	m := NewClanMember(decodeRecord(t, memberFixture), nil, nil)

	t.Run("TagNormalizes", func(t *testing.T) {
		ok, err := MatchTag(" 9q8gycuv ").matches(m)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("RoleUsesWireValue", func(t *testing.T) {
		ok, err := MatchRole(RoleElder).matches(m)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = MatchRole(RoleLeader).matches(m)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("IntAttributes", func(t *testing.T) {
		for _, mm := range []MemberMatcher{
			MatchExpLevel(180),
			MatchTrophies(4100),
			MatchVersusTrophies(3100),
			MatchClanRank(2),
			MatchDonations(800),
		} {
			ok, err := mm.matches(m)
			require.NoError(t, err)
			assert.True(t, ok, "attr %q", mm.attr)
		}
	})

	t.Run("FloatWantMatchesIntAttribute", func(t *testing.T) {
		ok, err := MatchField("trophies", record.Float(4100)).matches(m)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("AbsentAttribute", func(t *testing.T) {
		sparse := NewClanMember(record.Record{}, nil, nil)

		// Absent attributes never match, not even against zero values.
		ok, err := MatchTrophies(0).matches(sparse)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = MatchName("").matches(sparse)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("UnknownAttribute", func(t *testing.T) {
		_, err := MatchField("shoeSize", record.Int(44)).matches(m)
		require.ErrorIs(t, err, ErrUnknownAttribute)
		assert.Contains(t, err.Error(), "shoeSize")
	})
}
