package jikan

import (
	"strconv"
	"time"
)

// MangaListSearch filters and sorts a user's manga list.
// The zero value is a valid search that applies no filtering.
type MangaListSearch struct {
	// Query matches titles; empty matches everything
	Query            string
	PublishingStatus PublishingFilter
	OrderBy          MangaSortField
	OrderBy2         MangaSortField // requires OrderBy
	Sort             SortDirection
	MagazineID       int
	PublishedFrom    time.Time
	PublishedTo      time.Time
	// Page is 1-based; 0 leaves paging to the server
	Page int
}

func (s *MangaListSearch) validate() error {
	if s == nil {
		return invalid("search", nil, "search configuration is required")
	}
	return firstError(
		validateEnum("publishing_status", s.PublishingStatus),
		validateEnum("order_by", s.OrderBy),
		validateEnum("order_by2", s.OrderBy2),
		validateEnum("sort", s.Sort),
		validateSecondarySort(s.OrderBy2 != MangaSortNone, s.OrderBy != MangaSortNone, s.OrderBy2),
		validateRange("published_from", s.PublishedFrom, s.PublishedTo),
		validateSearchPage(s.Page),
	)
}

func (s *MangaListSearch) query() *query {
	q := &query{}
	q.setString("q", s.Query)
	q.setString("publishing_status", publishingFilterValues[s.PublishingStatus])
	q.setString("order_by", mangaSortValues[s.OrderBy])
	q.setString("order_by2", mangaSortValues[s.OrderBy2])
	q.setString("sort", sortDirectionValues[s.Sort])
	q.setInt("magazine", s.MagazineID)
	q.setDate("published_from", s.PublishedFrom)
	q.setDate("published_to", s.PublishedTo)
	q.setInt("page", s.Page)
	return q
}

// AnimeListSearch filters and sorts a user's anime list.
// The zero value is a valid search that applies no filtering.
type AnimeListSearch struct {
	// Query matches titles; empty matches everything
	Query        string
	AiringStatus AiringFilter
	OrderBy      AnimeSortField
	OrderBy2     AnimeSortField // requires OrderBy
	Sort         SortDirection
	ProducerID   int
	// Year and Season select a broadcast season and must be set together
	Year      int
	Season    Season
	AiredFrom time.Time
	AiredTo   time.Time
	// Page is 1-based; 0 leaves paging to the server
	Page int
}

func (s *AnimeListSearch) validate() error {
	if s == nil {
		return invalid("search", nil, "search configuration is required")
	}
	return firstError(
		validateEnum("airing_status", s.AiringStatus),
		validateEnum("order_by", s.OrderBy),
		validateEnum("order_by2", s.OrderBy2),
		validateEnum("sort", s.Sort),
		validateSecondarySort(s.OrderBy2 != AnimeSortNone, s.OrderBy != AnimeSortNone, s.OrderBy2),
		s.validateSeason(),
		validateRange("aired_from", s.AiredFrom, s.AiredTo),
		validateSearchPage(s.Page),
	)
}

func (s *AnimeListSearch) validateSeason() error {
	switch {
	case s.Year == 0 && s.Season == 0:
		return nil
	case s.Year == 0:
		return invalid("year", s.Year, "required when season is set")
	case s.Season == 0:
		return invalid("season", s.Season, "required when year is set")
	}
	return firstError(validateYear(s.Year), validateEnum("season", s.Season))
}

func (s *AnimeListSearch) query() *query {
	q := &query{}
	q.setString("q", s.Query)
	q.setString("airing_status", airingFilterValues[s.AiringStatus])
	q.setString("order_by", animeSortValues[s.OrderBy])
	q.setString("order_by2", animeSortValues[s.OrderBy2])
	q.setString("sort", sortDirectionValues[s.Sort])
	q.setInt("producer", s.ProducerID)
	if s.Year != 0 {
		q.set("year", strconv.Itoa(s.Year))
		q.set("season", s.Season.segment())
	}
	q.setDate("aired_from", s.AiredFrom)
	q.setDate("aired_to", s.AiredTo)
	q.setInt("page", s.Page)
	return q
}

func validateSecondarySort(hasSecondary, hasPrimary bool, value enum) error {
	if hasSecondary && !hasPrimary {
		return invalid("order_by2", value, "requires order_by")
	}
	return nil
}

func validateRange(param string, from, to time.Time) error {
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return invalid(param, from.Format(queryDateLayout), "must not be after "+to.Format(queryDateLayout))
	}
	return nil
}

func validateSearchPage(page int) error {
	if page < 0 {
		return invalid("page", page, "must not be negative")
	}
	return nil
}
