package jikan

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePage(t *testing.T) {
	for _, page := range []int{math.MinInt, -1, 0} {
		err := validatePage(page)
		require.Error(t, err, "page %d", page)
		assert.ErrorIs(t, err, ErrValidation)
	}
	for _, page := range []int{1, 2, math.MaxInt} {
		assert.NoError(t, validatePage(page), "page %d", page)
	}
}

func TestValidateYear(t *testing.T) {
	tests := []struct {
		year    int
		wantErr bool
	}{
		{math.MinInt, true},
		{-1, true},
		{0, true},
		{1, true},
		{999, true},
		{1000, false},
		{1970, false},
		{9999, false},
		{10000, true},
		{math.MaxInt, true},
	}

	for _, tt := range tests {
		err := validateYear(tt.year)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrValidation, "year %d", tt.year)
		} else {
			assert.NoError(t, err, "year %d", tt.year)
		}
	}
}

func TestValidateUsername(t *testing.T) {
	for _, name := range []string{"", " ", "\t", "\n", " \t\r\n "} {
		err := validateUsername(name)
		require.Error(t, err, "username %q", name)

		var valErr *ValidationError
		require.True(t, errors.As(err, &valErr))
		assert.Equal(t, "username", valErr.Param)
		assert.Equal(t, name, valErr.Value)
	}
	assert.NoError(t, validateUsername("Ervelan"))
	assert.NoError(t, validateUsername("ユーザー"))
}

func TestValidateEnum(t *testing.T) {
	t.Run("declared members", func(t *testing.T) {
		members := []enum{
			SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall,
			TopAnimeNone, TopAnimeOVA, TopAnimeFavorites,
			TopMangaNone, TopMangaNovels, TopMangaPopularity,
			MangaListAll, MangaListReading, MangaListPlanToRead,
			AnimeListAll, AnimeListWatching, AnimeListPlanToWatch,
			SortUnset, SortAscending, SortDescending,
			MangaSortNone, MangaSortVolumesRead,
			AnimeSortNone, AnimeSortStatus,
			PublishingAny, PublishingNotYetPublished,
			AiringAny, AiringToBeAired,
		}
		for _, m := range members {
			assert.NoError(t, validateEnum("value", m), "%v", m)
		}
	})

	t.Run("undeclared codes", func(t *testing.T) {
		candidates := []enum{
			Season(0), Season(math.MinInt), Season(math.MaxInt), Season(5),
			TopAnimeExtension(math.MinInt), TopAnimeExtension(math.MaxInt), TopAnimeExtension(-1),
			TopMangaExtension(math.MinInt), TopMangaExtension(math.MaxInt), TopMangaExtension(9),
			MangaListStatus(math.MinInt), MangaListStatus(math.MaxInt), MangaListStatus(5),
			AnimeListStatus(math.MinInt), AnimeListStatus(math.MaxInt), AnimeListStatus(5),
			SortDirection(math.MinInt), SortDirection(math.MaxInt),
			MangaSortField(math.MinInt), MangaSortField(math.MaxInt),
			AnimeSortField(math.MinInt), AnimeSortField(math.MaxInt),
			PublishingFilter(math.MinInt), PublishingFilter(math.MaxInt),
			AiringFilter(math.MinInt), AiringFilter(math.MaxInt),
		}
		for _, p := range candidates {
			err := validateEnum("value", p)
			assert.ErrorIs(t, err, ErrValidation, "%v", p)
		}
	})
}

func TestMangaListSearchValidate(t *testing.T) {
	tests := []struct {
		name    string
		search  *MangaListSearch
		wantErr string
	}{
		{name: "nil", search: nil, wantErr: "search"},
		{name: "empty", search: &MangaListSearch{}},
		{name: "empty query", search: &MangaListSearch{Query: ""}},
		{name: "negative magazine passes through", search: &MangaListSearch{MagazineID: -1}},
		{name: "invalid publishing status", search: &MangaListSearch{PublishingStatus: PublishingFilter(math.MaxInt)}, wantErr: "publishing_status"},
		{name: "invalid order by", search: &MangaListSearch{OrderBy: MangaSortField(math.MinInt)}, wantErr: "order_by"},
		{name: "invalid order by2", search: &MangaListSearch{OrderBy: MangaSortPriority, OrderBy2: MangaSortField(math.MaxInt)}, wantErr: "order_by2"},
		{name: "order by2 alone", search: &MangaListSearch{OrderBy2: MangaSortScore}, wantErr: "order_by2"},
		{name: "invalid sort", search: &MangaListSearch{Sort: SortDirection(math.MinInt)}, wantErr: "sort"},
		{name: "negative page", search: &MangaListSearch{Page: -1}, wantErr: "page"},
		{
			name: "inverted date range",
			search: &MangaListSearch{
				PublishedFrom: date(2010, 1, 1),
				PublishedTo:   date(2000, 1, 1),
			},
			wantErr: "published_from",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.search.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.wantErr, valErr.Param)
		})
	}
}

func TestAnimeListSearchValidate(t *testing.T) {
	tests := []struct {
		name    string
		search  *AnimeListSearch
		wantErr string
	}{
		{name: "nil", search: nil, wantErr: "search"},
		{name: "empty", search: &AnimeListSearch{}},
		{name: "year and season", search: &AnimeListSearch{Year: 2019, Season: SeasonFall}},
		{name: "year without season", search: &AnimeListSearch{Year: 2019}, wantErr: "season"},
		{name: "season without year", search: &AnimeListSearch{Season: SeasonFall}, wantErr: "year"},
		{name: "year out of range", search: &AnimeListSearch{Year: 999, Season: SeasonFall}, wantErr: "year"},
		{name: "invalid season", search: &AnimeListSearch{Year: 2019, Season: Season(math.MaxInt)}, wantErr: "season"},
		{name: "invalid airing status", search: &AnimeListSearch{AiringStatus: AiringFilter(-1)}, wantErr: "airing_status"},
		{name: "order by2 alone", search: &AnimeListSearch{OrderBy2: AnimeSortTitle}, wantErr: "order_by2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.search.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.wantErr, valErr.Param)
		})
	}
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "Spring", SeasonSpring.String())
	assert.Equal(t, "Season(7)", Season(7).String())
	assert.Equal(t, "ova", TopAnimeOVA.String())
	assert.Equal(t, "none", TopMangaNone.String())
	assert.Equal(t, "plantoread", MangaListPlanToRead.String())
	assert.Equal(t, "unset", SortUnset.String())
	assert.Equal(t, "NOT_YET_AIRED", AiringStatusNotYetAired.String())

	s, ok := ParseSeason(" fall ")
	assert.True(t, ok)
	assert.Equal(t, SeasonFall, s)

	_, ok = ParseSeason("Later")
	assert.False(t, ok)
}
