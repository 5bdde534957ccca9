package clashgo

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/hupe1980/clashgo/record"
)

// Page is one page of API results plus the cursors to reach its neighbors.
type Page[T any] struct {
	// Items holds the page contents in API order.
	Items []T

	// After is the cursor of the next page, empty on the last page.
	After string

	// Before is the cursor of the previous page, empty on the first page.
	Before string
}

// PageOptions control paged listing endpoints.
type PageOptions struct {
	// Limit caps the number of items in the page. If 0, the API default
	// applies.
	Limit int

	// After resumes listing after the given cursor.
	After string

	// Before lists the page preceding the given cursor.
	Before string
}

func pageQuery(optFns []func(*PageOptions)) url.Values {
	var opts PageOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	query := url.Values{}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.After != "" {
		query.Set("after", opts.After)
	}
	if opts.Before != "" {
		query.Set("before", opts.Before)
	}

	return query
}

// newPage decodes an items/paging envelope into a typed page. Array
// elements that are not records are dropped.
func newPage[T any](rec record.Record, build func(record.Record) T) *Page[T] {
	page := &Page[T]{}

	for _, v := range rec.GetArray("items") {
		sub, ok := v.AsRecord()
		if !ok {
			continue
		}
		page.Items = append(page.Items, build(sub))
	}

	if paging := rec.GetRecord("paging"); paging != nil {
		if cursors := paging.GetRecord("cursors"); cursors != nil {
			page.After, _ = cursors.GetString("after")
			page.Before, _ = cursors.GetString("before")
		}
	}

	return page
}

// ClanSearchOptions are the filters accepted by SearchClans. At least one
// filtering field must be set; paging fields alone do not qualify.
type ClanSearchOptions struct {
	// Name filters by clan name. The API requires at least three
	// characters.
	Name string

	// WarFrequency filters by declared war frequency, e.g. "always".
	WarFrequency string

	// LocationID restricts results to one location.
	LocationID int

	// MinMembers and MaxMembers bound the member count.
	MinMembers int
	MaxMembers int

	// MinClanPoints is the minimum clan points.
	MinClanPoints int

	// MinClanLevel is the minimum clan level.
	MinClanLevel int

	// LabelIDs restricts results to clans carrying every given label.
	LabelIDs []int

	// Limit, After and Before page through results.
	Limit  int
	After  string
	Before string
}

func (o ClanSearchOptions) hasCriterion() bool {
	return o.Name != "" ||
		o.WarFrequency != "" ||
		o.LocationID != 0 ||
		o.MinMembers != 0 ||
		o.MaxMembers != 0 ||
		o.MinClanPoints != 0 ||
		o.MinClanLevel != 0 ||
		len(o.LabelIDs) != 0
}

func (o ClanSearchOptions) query() url.Values {
	query := url.Values{}

	if o.Name != "" {
		query.Set("name", o.Name)
	}
	if o.WarFrequency != "" {
		query.Set("warFrequency", o.WarFrequency)
	}
	if o.LocationID != 0 {
		query.Set("locationId", strconv.Itoa(o.LocationID))
	}
	if o.MinMembers != 0 {
		query.Set("minMembers", strconv.Itoa(o.MinMembers))
	}
	if o.MaxMembers != 0 {
		query.Set("maxMembers", strconv.Itoa(o.MaxMembers))
	}
	if o.MinClanPoints != 0 {
		query.Set("minClanPoints", strconv.Itoa(o.MinClanPoints))
	}
	if o.MinClanLevel != 0 {
		query.Set("minClanLevel", strconv.Itoa(o.MinClanLevel))
	}
	if len(o.LabelIDs) != 0 {
		ids := make([]string, len(o.LabelIDs))
		for i, id := range o.LabelIDs {
			ids[i] = strconv.Itoa(id)
		}
		query.Set("labelIds", strings.Join(ids, ","))
	}
	if o.Limit > 0 {
		query.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.After != "" {
		query.Set("after", o.After)
	}
	if o.Before != "" {
		query.Set("before", o.Before)
	}

	return query
}

// SearchClans searches for clans matching the given criteria.
//
// The API rejects unfiltered searches, so at least one filtering field of
// ClanSearchOptions must be set or ErrInvalidSearch is returned before any
// request is made.
//
// Example:
//
//	page, err := client.SearchClans(ctx, clashgo.ClanSearchOptions{
//	    Name:       "the best clan",
//	    MinMembers: 10,
//	    Limit:      20,
//	})
func (c *Client) SearchClans(ctx context.Context, opts ClanSearchOptions) (*Page[*Clan], error) {
	if !opts.hasCriterion() {
		return nil, ErrInvalidSearch
	}

	rec, err := c.get(ctx, "clan_search", "/clans", opts.query())
	if err != nil {
		c.logger.LogSearch(ctx, opts.Name, 0, err)
		return nil, err
	}

	page := newPage(rec, func(r record.Record) *Clan { return NewClan(r, c) })
	c.logger.LogSearch(ctx, opts.Name, len(page.Items), nil)

	return page, nil
}
