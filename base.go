package clashgo

import (
	"strings"

	"github.com/hupe1980/clashgo/record"
)

// optInt is an eagerly extracted integer field that keeps absent distinct
// from zero.
type optInt struct {
	v   int
	set bool
}

func intField(rec record.Record, key string) optInt {
	v, ok := rec.GetInt(key)
	return optInt{v: v, set: ok}
}

func (o optInt) get() (int, bool) { return o.v, o.set }

// optString is an eagerly extracted string field that keeps absent distinct
// from empty.
type optString struct {
	v   string
	set bool
}

func stringField(rec record.Record, key string) optString {
	v, ok := rec.GetString(key)
	return optString{v: v, set: ok}
}

func (o optString) get() (string, bool) { return o.v, o.set }

// optBool is an eagerly extracted boolean field that keeps absent distinct
// from false.
type optBool struct {
	v   bool
	set bool
}

func boolField(rec record.Record, key string) optBool {
	v, ok := rec.GetBool(key)
	return optBool{v: v, set: ok}
}

func (o optBool) get() (bool, bool) { return o.v, o.set }

// BaseClan carries the identity fields every clan-shaped payload shares:
// tag, name, badge and level. It is embedded by value into RankedClan and
// Clan, and serves standalone as the clan reference on ranked players.
type BaseClan struct {
	client *Client
	tag    string
	name   string
	level  optInt
	badge  *Badge
}

func newBaseClan(rec record.Record, client *Client) BaseClan {
	tag, _ := rec.GetString("tag")
	name, _ := rec.GetString("name")
	return BaseClan{
		client: client,
		tag:    tag,
		name:   name,
		level:  intField(rec, "clanLevel"),
		badge:  newBadge(rec.GetRecord("badgeUrls")),
	}
}

// Tag returns the clan's unique tag, or "" when the payload carried none.
func (b BaseClan) Tag() string { return b.tag }

// Name returns the clan's name, or "" when the payload carried none.
func (b BaseClan) Name() string { return b.name }

// Level returns the clan's level, if present.
func (b BaseClan) Level() (int, bool) { return b.level.get() }

// Badge returns the clan's badge URLs, or nil if absent.
func (b BaseClan) Badge() *Badge { return b.badge }

// ShareLink returns the in-game share link for the clan, or "" when the
// payload carried no tag.
func (b BaseClan) ShareLink() string {
	if b.tag == "" {
		return ""
	}
	return "https://link.clashofclans.com/en?action=OpenClanProfile&tag=%23" + strings.TrimPrefix(b.tag, "#")
}

// BasePlayer carries the identity fields every player-shaped payload shares:
// tag and name.
type BasePlayer struct {
	client *Client
	tag    string
	name   string
}

func newBasePlayer(rec record.Record, client *Client) BasePlayer {
	tag, _ := rec.GetString("tag")
	name, _ := rec.GetString("name")
	return BasePlayer{
		client: client,
		tag:    tag,
		name:   name,
	}
}

// Tag returns the player's unique tag, or "" when the payload carried none.
func (b BasePlayer) Tag() string { return b.tag }

// Name returns the player's name, or "" when the payload carried none.
func (b BasePlayer) Name() string { return b.name }

// ShareLink returns the in-game share link for the player, or "" when the
// payload carried no tag.
func (b BasePlayer) ShareLink() string {
	if b.tag == "" {
		return ""
	}
	return "https://link.clashofclans.com/en?action=OpenPlayerProfile&tag=%23" + strings.TrimPrefix(b.tag, "#")
}
