package jikan

import (
	"time"

	"github.com/samber/mo"
)

// SubItem is a cross-reference to another MyAnimeList resource (genre, producer, anime, ...)
type SubItem struct {
	MalID int64
	Type  string
	Name  string
	URL   string
}

// SeasonResult holds the anime broadcast in one season.
// Name and Year are absent when the server has no data for the requested season.
type SeasonResult struct {
	Name    mo.Option[string]
	Year    mo.Option[int]
	Entries []SeasonEntry
}

// SeasonEntry is one anime of a season listing
type SeasonEntry struct {
	MalID       int64
	URL         string
	Title       string
	ImageURL    string
	Synopsis    string
	Type        string
	AiringStart mo.Option[time.Time]
	Episodes    mo.Option[int]
	Members     int
	Genres      []SubItem
	Source      string
	Producers   []SubItem
	Score       mo.Option[float64]
	Licensors   []string
	R18         bool
	Kids        bool
	Continuing  bool
}

// SeasonArchive lists every year the server has season data for, newest first
type SeasonArchive struct {
	Years []SeasonArchiveYear
}

// SeasonArchiveYear is a year and the seasons available in it
type SeasonArchiveYear struct {
	Year    int
	Seasons []Season
}

// AnimeTop is one page of an anime ranking
type AnimeTop struct {
	Entries []AnimeTopEntry
}

// AnimeTopEntry is a ranked anime.
// StartDate and EndDate are kept exactly as the server formats them, e.g. "Jan 1988".
type AnimeTopEntry struct {
	MalID     int64
	Rank      int
	Title     string
	URL       string
	ImageURL  string
	Type      string
	Episodes  mo.Option[int]
	StartDate mo.Option[string]
	EndDate   mo.Option[string]
	Members   int
	Score     mo.Option[float64]
}

// MangaTop is one page of a manga ranking
type MangaTop struct {
	Entries []MangaTopEntry
}

// MangaTopEntry is a ranked manga.
// StartDate and EndDate are kept exactly as the server formats them, e.g. "Aug 1989".
type MangaTopEntry struct {
	MalID     int64
	Rank      int
	Title     string
	URL       string
	ImageURL  string
	Type      string
	Volumes   mo.Option[int]
	StartDate mo.Option[string]
	EndDate   mo.Option[string]
	Members   int
	Score     mo.Option[float64]
}

// PeopleTop is one page of the most favorited people
type PeopleTop struct {
	Entries []PersonTopEntry
}

// PersonTopEntry is a ranked person
type PersonTopEntry struct {
	MalID     int64
	Rank      int
	Name      string
	NameKanji mo.Option[string]
	URL       string
	ImageURL  string
	Favorites int
	Birthday  mo.Option[time.Time]
}

// CharactersTop is one page of the most favorited characters
type CharactersTop struct {
	Entries []CharacterTopEntry
}

// CharacterTopEntry is a ranked character and the works it appears in
type CharacterTopEntry struct {
	MalID        int64
	Rank         int
	Name         string
	NameKanji    mo.Option[string]
	URL          string
	ImageURL     string
	Favorites    int
	Animeography []SubItem
	Mangaography []SubItem
}

// UserMangaList is one page of a user's manga list
type UserMangaList struct {
	Entries []MangaListEntry
}

// MangaListEntry is a manga on a user's list with the user's progress
type MangaListEntry struct {
	MalID            int64
	Title            string
	URL              string
	ImageURL         string
	Type             string
	ReadingStatus    mo.Option[MangaListStatus]
	Score            int
	ReadChapters     int
	ReadVolumes      int
	TotalChapters    int
	TotalVolumes     int
	PublishingStatus mo.Option[AiringStatus]
	IsRereading      bool
	Tags             mo.Option[string]
	StartDate        mo.Option[time.Time]
	EndDate          mo.Option[time.Time]
	ReadStartDate    mo.Option[time.Time]
	ReadEndDate      mo.Option[time.Time]
	Days             mo.Option[int]
	Priority         string
	AddedToList      bool
	Magazines        []SubItem
}

// UserAnimeList is one page of a user's anime list
type UserAnimeList struct {
	Entries []AnimeListEntry
}

// AnimeListEntry is an anime on a user's list with the user's progress
type AnimeListEntry struct {
	MalID           int64
	Title           string
	URL             string
	VideoURL        string
	ImageURL        string
	Type            string
	WatchingStatus  mo.Option[AnimeListStatus]
	Score           int
	WatchedEpisodes int
	TotalEpisodes   int
	AiringStatus    mo.Option[AiringStatus]
	Season          mo.Option[Season]
	SeasonYear      mo.Option[int]
	IsRewatching    bool
	Tags            mo.Option[string]
	Rating          string
	StartDate       mo.Option[time.Time]
	EndDate         mo.Option[time.Time]
	WatchStartDate  mo.Option[time.Time]
	WatchEndDate    mo.Option[time.Time]
	Days            mo.Option[int]
	Storage         mo.Option[string]
	Priority        string
	AddedToList     bool
	Studios         []SubItem
	Licensors       []SubItem
}
