package jikan

import (
	"context"
	"strconv"
)

// GetSeason returns the anime broadcast in season of year.
// A season the server has no data for is not an error: the result has
// absent Name and Year and no entries.
func (c *Client) GetSeason(ctx context.Context, year int, season Season) (*SeasonResult, error) {
	return execute(ctx, c, request[rawSeason, SeasonResult]{
		name:   "season",
		checks: []error{validateYear(year), validateEnum("season", season)},
		build: func() ([]string, *query) {
			return []string{"season", strconv.Itoa(year), season.segment()}, nil
		},
		mapper: mapSeason,
	})
}

// GetCurrentSeason returns the anime of the season currently airing
func (c *Client) GetCurrentSeason(ctx context.Context) (*SeasonResult, error) {
	return execute(ctx, c, request[rawSeason, SeasonResult]{
		name: "season",
		build: func() ([]string, *query) {
			return []string{"season"}, nil
		},
		mapper: mapSeason,
	})
}

// GetSeasonLater returns announced anime not yet assigned to a season.
// The result is named "Later" and has no year.
func (c *Client) GetSeasonLater(ctx context.Context) (*SeasonResult, error) {
	return execute(ctx, c, request[rawSeason, SeasonResult]{
		name: "season/later",
		build: func() ([]string, *query) {
			return []string{"season", "later"}, nil
		},
		mapper: mapSeason,
	})
}

// GetSeasonArchive returns every year and season the server has listings for
func (c *Client) GetSeasonArchive(ctx context.Context) (*SeasonArchive, error) {
	return execute(ctx, c, request[rawSeasonArchive, SeasonArchive]{
		name: "season/archive",
		build: func() ([]string, *query) {
			return []string{"season", "archive"}, nil
		},
		mapper: mapSeasonArchive,
	})
}
