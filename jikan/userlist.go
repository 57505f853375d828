package jikan

import (
	"context"
	"strconv"
)

// GetUserMangaList returns one page of username's manga list filtered by status
func (c *Client) GetUserMangaList(ctx context.Context, username string, status MangaListStatus, page int) (*UserMangaList, error) {
	return execute(ctx, c, request[rawUserMangaList, UserMangaList]{
		name: "user/mangalist",
		checks: []error{
			validateUsername(username),
			validateEnum("status", status),
			validatePage(page),
		},
		build: func() ([]string, *query) {
			return []string{"user", username, "mangalist", mangaListSegments[status], strconv.Itoa(page)}, nil
		},
		mapper: mapUserMangaList,
	})
}

// SearchUserMangaList returns username's manga list filtered and sorted by search.
// search must not be nil; a zero MangaListSearch returns the unfiltered list.
func (c *Client) SearchUserMangaList(ctx context.Context, username string, search *MangaListSearch) (*UserMangaList, error) {
	return execute(ctx, c, request[rawUserMangaList, UserMangaList]{
		name:   "user/mangalist",
		checks: []error{validateUsername(username), search.validate()},
		build: func() ([]string, *query) {
			return []string{"user", username, "mangalist", mangaListSegments[MangaListAll]}, search.query()
		},
		mapper: mapUserMangaList,
	})
}

// GetUserAnimeList returns one page of username's anime list filtered by status
func (c *Client) GetUserAnimeList(ctx context.Context, username string, status AnimeListStatus, page int) (*UserAnimeList, error) {
	return execute(ctx, c, request[rawUserAnimeList, UserAnimeList]{
		name: "user/animelist",
		checks: []error{
			validateUsername(username),
			validateEnum("status", status),
			validatePage(page),
		},
		build: func() ([]string, *query) {
			return []string{"user", username, "animelist", animeListSegments[status], strconv.Itoa(page)}, nil
		},
		mapper: mapUserAnimeList,
	})
}

// SearchUserAnimeList returns username's anime list filtered and sorted by search.
// search must not be nil; a zero AnimeListSearch returns the unfiltered list.
func (c *Client) SearchUserAnimeList(ctx context.Context, username string, search *AnimeListSearch) (*UserAnimeList, error) {
	return execute(ctx, c, request[rawUserAnimeList, UserAnimeList]{
		name:   "user/animelist",
		checks: []error{validateUsername(username), search.validate()},
		build: func() ([]string, *query) {
			return []string{"user", username, "animelist", animeListSegments[AnimeListAll]}, search.query()
		},
		mapper: mapUserAnimeList,
	})
}
