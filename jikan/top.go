package jikan

import (
	"context"
	"strconv"
)

// GetAnimeTop returns one page of the anime ranking selected by ext.
// Use TopAnimeNone for the overall ranking.
func (c *Client) GetAnimeTop(ctx context.Context, page int, ext TopAnimeExtension) (*AnimeTop, error) {
	return execute(ctx, c, request[rawAnimeTop, AnimeTop]{
		name:   "top/anime",
		checks: []error{validatePage(page), validateEnum("extension", ext)},
		build: func() ([]string, *query) {
			return []string{"top", "anime", strconv.Itoa(page), topAnimeSegments[ext]}, nil
		},
		mapper: mapAnimeTop,
	})
}

// GetMangaTop returns one page of the manga ranking selected by ext.
// Use TopMangaNone for the overall ranking.
func (c *Client) GetMangaTop(ctx context.Context, page int, ext TopMangaExtension) (*MangaTop, error) {
	return execute(ctx, c, request[rawMangaTop, MangaTop]{
		name:   "top/manga",
		checks: []error{validatePage(page), validateEnum("extension", ext)},
		build: func() ([]string, *query) {
			return []string{"top", "manga", strconv.Itoa(page), topMangaSegments[ext]}, nil
		},
		mapper: mapMangaTop,
	})
}

// GetPeopleTop returns one page of the most favorited people
func (c *Client) GetPeopleTop(ctx context.Context, page int) (*PeopleTop, error) {
	return execute(ctx, c, request[rawPeopleTop, PeopleTop]{
		name:   "top/people",
		checks: []error{validatePage(page)},
		build: func() ([]string, *query) {
			return []string{"top", "people", strconv.Itoa(page)}, nil
		},
		mapper: mapPeopleTop,
	})
}

// GetCharactersTop returns one page of the most favorited characters
func (c *Client) GetCharactersTop(ctx context.Context, page int) (*CharactersTop, error) {
	return execute(ctx, c, request[rawCharactersTop, CharactersTop]{
		name:   "top/characters",
		checks: []error{validatePage(page)},
		build: func() ([]string, *query) {
			return []string{"top", "characters", strconv.Itoa(page)}, nil
		},
		mapper: mapCharactersTop,
	})
}
