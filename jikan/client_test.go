package jikan

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/s0up4200/jikan/jikan/mocks"
)

// fixtureServer serves testdata files keyed by request URI and counts hits
func fixtureServer(t *testing.T, routes map[string]string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		name, ok := routes[r.URL.RequestURI()]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"status":404,"type":"BadResponseException","message":"Resource does not exist","error":"404 on ` + r.URL.Path + `"}`))
			return
		}
		data, err := os.ReadFile(filepath.Join("testdata", name))
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	client, err := NewClient(zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "default", baseURL: DefaultBaseURL},
		{name: "trailing slash", baseURL: "http://localhost:8080/v3/"},
		{name: "relative", baseURL: "/v3", wantErr: true},
		{name: "unsupported scheme", baseURL: "ftp://example.com", wantErr: true},
		{name: "empty", baseURL: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(zerolog.Nop(), WithBaseURL(tt.baseURL))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.False(t, strings.HasSuffix(client.BaseURL(), "/"))
		})
	}
}

func TestClientOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		client := newTestClient(t)
		assert.Equal(t, DefaultBaseURL, client.BaseURL())
		assert.False(t, client.SuppressErrors())
		assert.IsType(t, &HTTPTransport{}, client.transport)
	})

	t.Run("with timeout", func(t *testing.T) {
		client := newTestClient(t, WithTimeout(5*time.Second))
		transport := client.transport.(*HTTPTransport)
		assert.Equal(t, 5*time.Second, transport.client.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client := newTestClient(t, WithHTTPClient(custom))
		assert.Same(t, custom, client.transport.(*HTTPTransport).client)
	})

	t.Run("with user agent", func(t *testing.T) {
		var got string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("User-Agent")
			w.Write([]byte(`{"archive":[]}`))
		}))
		defer server.Close()

		client := newTestClient(t, WithBaseURL(server.URL), WithUserAgent("jikan-test/1.0"))
		_, err := client.GetSeasonArchive(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "jikan-test/1.0", got)
	})

	t.Run("with parser", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		transport := mocks.NewMockTransport(ctrl)
		transport.EXPECT().Get(gomock.Any(), gomock.Any()).Return([]byte("ignored"), nil)

		var calls int
		parser := ParserFunc(func(data []byte, v any) error {
			calls++
			v.(*rawSeasonArchive).Archive = nil
			return nil
		})

		client := newTestClient(t, WithTransport(transport), WithParser(parser))
		archive, err := client.GetSeasonArchive(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Empty(t, archive.Years)
	})
}

func TestClient_GetSeason(t *testing.T) {
	server, hits := fixtureServer(t, map[string]string{
		"/season/1970/spring": "season_1970_spring.json",
		"/season/1924/winter": "season_empty.json",
		"/season":             "season_1970_spring.json",
		"/season/later":       "season_later.json",
		"/season/archive":     "season_archive.json",
	})
	client := newTestClient(t, WithBaseURL(server.URL))
	ctx := context.Background()

	t.Run("spring 1970", func(t *testing.T) {
		season, err := client.GetSeason(ctx, 1970, SeasonSpring)
		require.NoError(t, err)
		assert.Equal(t, "Spring", season.Name.OrEmpty())
		assert.Equal(t, 1970, season.Year.OrEmpty())
		assert.Len(t, season.Entries, 3)
	})

	t.Run("season without data", func(t *testing.T) {
		season, err := client.GetSeason(ctx, 1924, SeasonWinter)
		require.NoError(t, err)
		require.NotNil(t, season)
		assert.True(t, season.Name.IsAbsent())
		assert.True(t, season.Year.IsAbsent())
		assert.Empty(t, season.Entries)
	})

	t.Run("current", func(t *testing.T) {
		season, err := client.GetCurrentSeason(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, season.Entries)
	})

	t.Run("later", func(t *testing.T) {
		season, err := client.GetSeasonLater(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Later", season.Name.OrEmpty())
		assert.True(t, season.Year.IsAbsent())
	})

	t.Run("archive", func(t *testing.T) {
		archive, err := client.GetSeasonArchive(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, archive.Years)
		oldest := archive.Years[len(archive.Years)-1]
		assert.Equal(t, 1917, oldest.Year)
		assert.Len(t, oldest.Seasons, 4)
	})

	t.Run("invalid parameters", func(t *testing.T) {
		before := hits.Load()
		for _, year := range []int{math.MinInt, -1, 0, 1, 999, 10000, math.MaxInt} {
			_, err := client.GetSeason(ctx, year, SeasonSpring)
			assert.ErrorIs(t, err, ErrValidation, "year %d", year)
		}
		for _, season := range []Season{Season(math.MinInt), Season(math.MaxInt)} {
			_, err := client.GetSeason(ctx, 2000, season)
			assert.ErrorIs(t, err, ErrValidation)
		}
		assert.Equal(t, before, hits.Load())
	})
}

func TestClient_GetTop(t *testing.T) {
	server, _ := fixtureServer(t, map[string]string{
		"/top/anime/1/ova":  "top_anime_ova.json",
		"/top/manga/1":      "top_manga.json",
		"/top/people/1":     "top_people.json",
		"/top/characters/1": "top_characters.json",
	})
	client := newTestClient(t, WithBaseURL(server.URL))
	ctx := context.Background()

	anime, err := client.GetAnimeTop(ctx, 1, TopAnimeOVA)
	require.NoError(t, err)
	assert.Equal(t, "Jan 1988", anime.Entries[0].StartDate.OrEmpty())

	manga, err := client.GetMangaTop(ctx, 1, TopMangaNone)
	require.NoError(t, err)
	assert.Equal(t, "Berserk", manga.Entries[0].Title)

	people, err := client.GetPeopleTop(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Hanazawa, Kana", people.Entries[0].Name)

	characters, err := client.GetCharactersTop(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Lamperouge, Lelouch", characters.Entries[0].Name)

	t.Run("not found", func(t *testing.T) {
		_, err := client.GetAnimeTop(ctx, 99, TopAnimeNone)
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.True(t, reqErr.IsNotFound())
		assert.Equal(t, "Resource does not exist", reqErr.Message)
		assert.ErrorIs(t, err, ErrRequest)
	})
}

func TestClient_GetUserLists(t *testing.T) {
	const searched = "/user/Ervelan/mangalist/all?q=berserk&order_by=priority&order_by2=score&sort=descending"
	server, _ := fixtureServer(t, map[string]string{
		"/user/Ervelan/mangalist/reading/1":                 "user_mangalist.json",
		"/user/Ervelan/mangalist/all":                       "user_mangalist.json",
		searched:                                            "user_mangalist.json",
		"/user/Ervelan/animelist/all/2":                     "user_animelist.json",
		"/user/Ervelan/animelist/all?year=1999&season=fall": "user_animelist.json",
	})
	client := newTestClient(t, WithBaseURL(server.URL))
	ctx := context.Background()

	t.Run("manga by status", func(t *testing.T) {
		list, err := client.GetUserMangaList(ctx, "Ervelan", MangaListReading, 1)
		require.NoError(t, err)
		assert.Len(t, list.Entries, 2)
	})

	t.Run("manga with empty search", func(t *testing.T) {
		list, err := client.SearchUserMangaList(ctx, "Ervelan", &MangaListSearch{Query: ""})
		require.NoError(t, err)
		assert.Len(t, list.Entries, 2)
	})

	t.Run("manga with search", func(t *testing.T) {
		list, err := client.SearchUserMangaList(ctx, "Ervelan", &MangaListSearch{
			Query:    "berserk",
			OrderBy:  MangaSortPriority,
			OrderBy2: MangaSortScore,
			Sort:     SortDescending,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, list.Entries)
	})

	t.Run("anime page", func(t *testing.T) {
		list, err := client.GetUserAnimeList(ctx, "Ervelan", AnimeListAll, 2)
		require.NoError(t, err)
		assert.Len(t, list.Entries, 2)
	})

	t.Run("anime by season", func(t *testing.T) {
		list, err := client.SearchUserAnimeList(ctx, "Ervelan", &AnimeListSearch{Year: 1999, Season: SeasonFall})
		require.NoError(t, err)
		assert.NotEmpty(t, list.Entries)
	})
}

func TestClient_ValidationSkipsTransport(t *testing.T) {
	ctrl := gomock.NewController(t)
	// no expectations: any transport call fails the test
	transport := mocks.NewMockTransport(ctrl)
	client := newTestClient(t, WithTransport(transport), WithSuppressErrors(true))
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"anime top page", func() error {
			_, err := client.GetAnimeTop(ctx, 0, TopAnimeNone)
			return err
		}},
		{"anime top extension", func() error {
			_, err := client.GetAnimeTop(ctx, 1, TopAnimeExtension(math.MaxInt))
			return err
		}},
		{"manga top page", func() error {
			_, err := client.GetMangaTop(ctx, math.MinInt, TopMangaPopularity)
			return err
		}},
		{"manga top extension", func() error {
			_, err := client.GetMangaTop(ctx, 1, TopMangaExtension(math.MinInt))
			return err
		}},
		{"people page", func() error {
			_, err := client.GetPeopleTop(ctx, -1)
			return err
		}},
		{"characters page", func() error {
			_, err := client.GetCharactersTop(ctx, 0)
			return err
		}},
		{"empty username", func() error {
			_, err := client.GetUserMangaList(ctx, "", MangaListAll, 1)
			return err
		}},
		{"whitespace username", func() error {
			_, err := client.GetUserAnimeList(ctx, " \t\n", AnimeListAll, 1)
			return err
		}},
		{"list status", func() error {
			_, err := client.GetUserMangaList(ctx, "Ervelan", MangaListStatus(math.MaxInt), 1)
			return err
		}},
		{"list page", func() error {
			_, err := client.GetUserMangaList(ctx, "Ervelan", MangaListAll, 0)
			return err
		}},
		{"nil manga search", func() error {
			_, err := client.SearchUserMangaList(ctx, "Ervelan", nil)
			return err
		}},
		{"nil anime search", func() error {
			_, err := client.SearchUserAnimeList(ctx, "Ervelan", nil)
			return err
		}},
		{"search username", func() error {
			_, err := client.SearchUserMangaList(ctx, "  ", &MangaListSearch{})
			return err
		}},
		{"search sort", func() error {
			_, err := client.SearchUserMangaList(ctx, "Ervelan", &MangaListSearch{Sort: SortDirection(math.MaxInt)})
			return err
		}},
		{"season year", func() error {
			_, err := client.GetSeason(ctx, 10000, SeasonFall)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), ErrValidation)
		})
	}
}

func TestClient_SuppressErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("transport failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		transport := mocks.NewMockTransport(ctrl)
		transport.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection refused")).
			AnyTimes()

		suppressed := newTestClient(t, WithTransport(transport), WithSuppressErrors(true))
		loud := newTestClient(t, WithTransport(transport))

		operations := []struct {
			name string
			call func(*Client) (any, error)
		}{
			{"GetSeason", func(c *Client) (any, error) { return c.GetSeason(ctx, 2020, SeasonWinter) }},
			{"GetCurrentSeason", func(c *Client) (any, error) { return c.GetCurrentSeason(ctx) }},
			{"GetSeasonLater", func(c *Client) (any, error) { return c.GetSeasonLater(ctx) }},
			{"GetSeasonArchive", func(c *Client) (any, error) { return c.GetSeasonArchive(ctx) }},
			{"GetAnimeTop", func(c *Client) (any, error) { return c.GetAnimeTop(ctx, 1, TopAnimeNone) }},
			{"GetMangaTop", func(c *Client) (any, error) { return c.GetMangaTop(ctx, 2, TopMangaNovels) }},
			{"GetPeopleTop", func(c *Client) (any, error) { return c.GetPeopleTop(ctx, 1) }},
			{"GetCharactersTop", func(c *Client) (any, error) { return c.GetCharactersTop(ctx, 1) }},
			{"GetUserMangaList", func(c *Client) (any, error) {
				return c.GetUserMangaList(ctx, "Ervelan", MangaListReading, 1)
			}},
			{"SearchUserMangaList", func(c *Client) (any, error) {
				return c.SearchUserMangaList(ctx, "Ervelan", &MangaListSearch{})
			}},
			{"GetUserAnimeList", func(c *Client) (any, error) {
				return c.GetUserAnimeList(ctx, "Ervelan", AnimeListWatching, 1)
			}},
			{"SearchUserAnimeList", func(c *Client) (any, error) {
				return c.SearchUserAnimeList(ctx, "Ervelan", &AnimeListSearch{Query: "bebop"})
			}},
		}

		for _, op := range operations {
			t.Run(op.name, func(t *testing.T) {
				result, err := op.call(suppressed)
				assert.NoError(t, err)
				assert.Nil(t, result)

				_, err = op.call(loud)
				assert.ErrorIs(t, err, ErrRequest)
			})
		}

		_, err := suppressed.GetPeopleTop(ctx, 0)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("null body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		transport := mocks.NewMockTransport(ctrl)
		transport.EXPECT().Get(gomock.Any(), gomock.Any()).Return([]byte(" null\n"), nil).Times(2)

		loud := newTestClient(t, WithTransport(transport))
		season, err := loud.GetSeason(ctx, 1970, SeasonSpring)
		assert.ErrorIs(t, err, ErrParse)
		assert.Nil(t, season)

		suppressed := newTestClient(t, WithTransport(transport), WithSuppressErrors(true))
		season, err = suppressed.GetSeason(ctx, 1970, SeasonSpring)
		assert.NoError(t, err)
		assert.Nil(t, season)
	})

	t.Run("malformed body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		transport := mocks.NewMockTransport(ctrl)
		transport.EXPECT().Get(gomock.Any(), gomock.Any()).Return([]byte("<html>"), nil).Times(2)

		suppressed := newTestClient(t, WithTransport(transport), WithSuppressErrors(true))
		top, err := suppressed.GetCharactersTop(ctx, 1)
		assert.NoError(t, err)
		assert.Nil(t, top)

		loud := newTestClient(t, WithTransport(transport))
		_, err = loud.GetCharactersTop(ctx, 1)
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("mapping errors propagate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		transport := mocks.NewMockTransport(ctrl)
		transport.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return([]byte(`{"manga":[{"mal_id":1,"reading_status":5}]}`), nil)

		client := newTestClient(t, WithTransport(transport), WithSuppressErrors(true))
		_, err := client.GetUserMangaList(ctx, "Ervelan", MangaListAll, 1)
		assert.ErrorIs(t, err, ErrMapping)
	})

	t.Run("cancellation propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		transport := mocks.NewMockTransport(ctrl)
		transport.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ string) ([]byte, error) {
				return nil, ctx.Err()
			})

		client := newTestClient(t, WithTransport(transport), WithSuppressErrors(true))
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := client.GetSeasonLater(cancelled)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("client timeout is a request failure", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		loud := newTestClient(t, WithBaseURL(server.URL), WithTimeout(20*time.Millisecond))
		_, err := loud.GetSeasonLater(ctx)
		assert.ErrorIs(t, err, ErrRequest)

		suppressed := newTestClient(t, WithBaseURL(server.URL), WithTimeout(20*time.Millisecond), WithSuppressErrors(true))
		season, err := suppressed.GetSeasonLater(ctx)
		assert.NoError(t, err)
		assert.Nil(t, season)
	})
}

func TestClient_RequestErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(*RequestError) bool
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, check: (*RequestError).IsRateLimited},
		{name: "server error", status: http.StatusServiceUnavailable, check: (*RequestError).IsServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := newTestClient(t, WithBaseURL(server.URL))
			_, err := client.GetPeopleTop(context.Background(), 1)

			var reqErr *RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, tt.status, reqErr.StatusCode)
			assert.True(t, tt.check(reqErr))
			assert.Equal(t, server.URL+"/top/people/1", reqErr.URL)
		})
	}
}

func TestClient_Concurrent(t *testing.T) {
	server, hits := fixtureServer(t, map[string]string{
		"/top/people/1": "top_people.json",
	})
	client := newTestClient(t, WithBaseURL(server.URL))

	const workers = 8
	errs := make(chan error, workers)
	for range workers {
		go func() {
			_, err := client.GetPeopleTop(context.Background(), 1)
			errs <- err
		}()
	}
	for range workers {
		assert.NoError(t, <-errs)
	}
	assert.Equal(t, int32(workers), hits.Load())
}
