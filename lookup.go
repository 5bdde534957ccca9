package clashgo

import (
	"time"

	"github.com/hupe1980/clashgo/record"
)

// Location is a country or region the API attaches to clans and players.
type Location struct {
	// ID is the location identifier used by ranking endpoints.
	ID int
	// Name is the English location name.
	Name string
	// LocalizedName is the name in the language requested, if any.
	LocalizedName string
	// IsCountry reports whether the location is a country rather than a
	// region such as "International".
	IsCountry bool
	// CountryCode is the ISO 3166-1 alpha-2 code, empty for regions.
	CountryCode string
}

// NewLocation builds a Location from a location sub-record.
// It tolerates absent input: a nil record yields nil, never an error.
func NewLocation(rec record.Record) *Location {
	if rec == nil {
		return nil
	}
	loc := &Location{}
	loc.ID, _ = rec.GetInt("id")
	loc.Name, _ = rec.GetString("name")
	loc.LocalizedName, _ = rec.GetString("localizedName")
	loc.IsCountry, _ = rec.GetBool("isCountry")
	loc.CountryCode, _ = rec.GetString("countryCode")
	return loc
}

// Label is a descriptive label attached to a clan or player, such as
// "Clan Wars" or "Trophy Pushing". It is unrelated to the identifier tag.
type Label struct {
	// ID is the label identifier used by search endpoints.
	ID int
	// Name is the label display name.
	Name string
	// Icon holds the label icon URLs, nil if absent.
	Icon *Icon
}

// NewLabel builds a Label from a label sub-record.
// It tolerates absent input: a nil record yields nil, never an error.
func NewLabel(rec record.Record) *Label {
	if rec == nil {
		return nil
	}
	label := &Label{}
	label.ID, _ = rec.GetInt("id")
	label.Name, _ = rec.GetString("name")
	label.Icon = newIcon(rec.GetRecord("iconUrls"))
	return label
}

// League is a trophy league such as "Legend League".
type League struct {
	// ID is the league identifier.
	ID int
	// Name is the league display name.
	Name string
	// Icon holds the league icon URLs, nil if absent.
	Icon *Icon
}

// NewLeague builds a League from a league sub-record.
// It tolerates absent input: a nil record yields nil, never an error.
func NewLeague(rec record.Record) *League {
	if rec == nil {
		return nil
	}
	league := &League{}
	league.ID, _ = rec.GetInt("id")
	league.Name, _ = rec.GetString("name")
	league.Icon = newIcon(rec.GetRecord("iconUrls"))
	return league
}

// WarLeague is a clan's Clan War League division.
type WarLeague struct {
	// ID is the war league identifier.
	ID int
	// Name is the war league display name.
	Name string
}

// NewWarLeague builds a WarLeague from a warLeague sub-record.
// It tolerates absent input: a nil record yields nil, never an error.
func NewWarLeague(rec record.Record) *WarLeague {
	if rec == nil {
		return nil
	}
	wl := &WarLeague{}
	wl.ID, _ = rec.GetInt("id")
	wl.Name, _ = rec.GetString("name")
	return wl
}

// Badge holds the clan badge image URLs in the sizes the API serves.
type Badge struct {
	Small  string
	Medium string
	Large  string
}

func newBadge(rec record.Record) *Badge {
	if rec == nil {
		return nil
	}
	badge := &Badge{}
	badge.Small, _ = rec.GetString("small")
	badge.Medium, _ = rec.GetString("medium")
	badge.Large, _ = rec.GetString("large")
	return badge
}

// Icon holds label and league icon image URLs in the sizes the API serves.
type Icon struct {
	Tiny   string
	Small  string
	Medium string
}

func newIcon(rec record.Record) *Icon {
	if rec == nil {
		return nil
	}
	icon := &Icon{}
	icon.Tiny, _ = rec.GetString("tiny")
	icon.Small, _ = rec.GetString("small")
	icon.Medium, _ = rec.GetString("medium")
	return icon
}

// goldPassTimeLayout is the compact timestamp format the API uses for
// season boundaries, e.g. "20240801T070000.000Z".
const goldPassTimeLayout = "20060102T150405.000Z"

// GoldPassSeason is the current gold pass season window. Times are zero
// when absent or unparsable.
type GoldPassSeason struct {
	StartTime time.Time
	EndTime   time.Time
}

// NewGoldPassSeason builds a GoldPassSeason from a season record.
// It tolerates absent input: a nil record yields nil, never an error.
func NewGoldPassSeason(rec record.Record) *GoldPassSeason {
	if rec == nil {
		return nil
	}
	season := &GoldPassSeason{}
	if raw, ok := rec.GetString("startTime"); ok {
		season.StartTime, _ = time.Parse(goldPassTimeLayout, raw)
	}
	if raw, ok := rec.GetString("endTime"); ok {
		season.EndTime, _ = time.Parse(goldPassTimeLayout, raw)
	}
	return season
}
