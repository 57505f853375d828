package jikan

import (
	"fmt"
	"strings"
)

// Season represents one of the four broadcast seasons
type Season int

const (
	// SeasonWinter covers January to March
	SeasonWinter Season = iota + 1
	// SeasonSpring covers April to June
	SeasonSpring
	// SeasonSummer covers July to September
	SeasonSummer
	// SeasonFall covers October to December
	SeasonFall
)

// String returns the display name of a Season
func (s Season) String() string {
	switch s {
	case SeasonWinter:
		return "Winter"
	case SeasonSpring:
		return "Spring"
	case SeasonSummer:
		return "Summer"
	case SeasonFall:
		return "Fall"
	default:
		return fmt.Sprintf("Season(%d)", int(s))
	}
}

// IsValid reports whether s is one of the declared seasons
func (s Season) IsValid() bool {
	switch s {
	case SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall:
		return true
	}
	return false
}

func (s Season) segment() string {
	return strings.ToLower(s.String())
}

// ParseSeason resolves a season name case-insensitively
func ParseSeason(name string) (Season, bool) {
	for _, s := range []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall} {
		if strings.EqualFold(strings.TrimSpace(name), s.String()) {
			return s, true
		}
	}
	return 0, false
}

// TopAnimeExtension selects a sub-ranking of the top anime list
type TopAnimeExtension int

const (
	TopAnimeNone TopAnimeExtension = iota
	TopAnimeAiring
	TopAnimeUpcoming
	TopAnimeTV
	TopAnimeMovies
	TopAnimeOVA
	TopAnimeSpecials
	TopAnimePopularity
	TopAnimeFavorites
)

var topAnimeSegments = map[TopAnimeExtension]string{
	TopAnimeNone:       "",
	TopAnimeAiring:     "airing",
	TopAnimeUpcoming:   "upcoming",
	TopAnimeTV:         "tv",
	TopAnimeMovies:     "movie",
	TopAnimeOVA:        "ova",
	TopAnimeSpecials:   "special",
	TopAnimePopularity: "bypopularity",
	TopAnimeFavorites:  "favorite",
}

// IsValid reports whether e is a declared extension
func (e TopAnimeExtension) IsValid() bool {
	_, ok := topAnimeSegments[e]
	return ok
}

func (e TopAnimeExtension) String() string {
	if seg, ok := topAnimeSegments[e]; ok {
		if seg == "" {
			return "none"
		}
		return seg
	}
	return fmt.Sprintf("TopAnimeExtension(%d)", int(e))
}

// TopMangaExtension selects a sub-ranking of the top manga list
type TopMangaExtension int

const (
	TopMangaNone TopMangaExtension = iota
	TopMangaMangaOnly
	TopMangaNovels
	TopMangaOneShots
	TopMangaDoujinshi
	TopMangaManhwa
	TopMangaManhua
	TopMangaPopularity
	TopMangaFavorites
)

var topMangaSegments = map[TopMangaExtension]string{
	TopMangaNone:       "",
	TopMangaMangaOnly:  "manga",
	TopMangaNovels:     "novels",
	TopMangaOneShots:   "oneshots",
	TopMangaDoujinshi:  "doujin",
	TopMangaManhwa:     "manhwa",
	TopMangaManhua:     "manhua",
	TopMangaPopularity: "bypopularity",
	TopMangaFavorites:  "favorite",
}

// IsValid reports whether e is a declared extension
func (e TopMangaExtension) IsValid() bool {
	_, ok := topMangaSegments[e]
	return ok
}

func (e TopMangaExtension) String() string {
	if seg, ok := topMangaSegments[e]; ok {
		if seg == "" {
			return "none"
		}
		return seg
	}
	return fmt.Sprintf("TopMangaExtension(%d)", int(e))
}

// MangaListStatus is both the user manga list filter and an entry's reading status.
// The numeric values match the API's reading_status codes.
type MangaListStatus int

const (
	MangaListAll        MangaListStatus = 0
	MangaListReading    MangaListStatus = 1
	MangaListCompleted  MangaListStatus = 2
	MangaListOnHold     MangaListStatus = 3
	MangaListDropped    MangaListStatus = 4
	MangaListPlanToRead MangaListStatus = 6
)

var mangaListSegments = map[MangaListStatus]string{
	MangaListAll:        "all",
	MangaListReading:    "reading",
	MangaListCompleted:  "completed",
	MangaListOnHold:     "onhold",
	MangaListDropped:    "dropped",
	MangaListPlanToRead: "plantoread",
}

// IsValid reports whether s is a declared list status
func (s MangaListStatus) IsValid() bool {
	_, ok := mangaListSegments[s]
	return ok
}

func (s MangaListStatus) String() string {
	if seg, ok := mangaListSegments[s]; ok {
		return seg
	}
	return fmt.Sprintf("MangaListStatus(%d)", int(s))
}

// AnimeListStatus is both the user anime list filter and an entry's watching status.
// The numeric values match the API's watching_status codes.
type AnimeListStatus int

const (
	AnimeListAll         AnimeListStatus = 0
	AnimeListWatching    AnimeListStatus = 1
	AnimeListCompleted   AnimeListStatus = 2
	AnimeListOnHold      AnimeListStatus = 3
	AnimeListDropped     AnimeListStatus = 4
	AnimeListPlanToWatch AnimeListStatus = 6
)

var animeListSegments = map[AnimeListStatus]string{
	AnimeListAll:         "all",
	AnimeListWatching:    "watching",
	AnimeListCompleted:   "completed",
	AnimeListOnHold:      "onhold",
	AnimeListDropped:     "dropped",
	AnimeListPlanToWatch: "plantowatch",
}

// IsValid reports whether s is a declared list status
func (s AnimeListStatus) IsValid() bool {
	_, ok := animeListSegments[s]
	return ok
}

func (s AnimeListStatus) String() string {
	if seg, ok := animeListSegments[s]; ok {
		return seg
	}
	return fmt.Sprintf("AnimeListStatus(%d)", int(s))
}

// SortDirection orders user list search results
type SortDirection int

const (
	// SortUnset leaves ordering to the server
	SortUnset SortDirection = iota
	SortAscending
	SortDescending
)

var sortDirectionValues = map[SortDirection]string{
	SortUnset:      "",
	SortAscending:  "ascending",
	SortDescending: "descending",
}

// IsValid reports whether d is a declared direction
func (d SortDirection) IsValid() bool {
	_, ok := sortDirectionValues[d]
	return ok
}

func (d SortDirection) String() string {
	if v, ok := sortDirectionValues[d]; ok {
		if v == "" {
			return "unset"
		}
		return v
	}
	return fmt.Sprintf("SortDirection(%d)", int(d))
}

// MangaSortField is a sortable column of a user manga list
type MangaSortField int

const (
	MangaSortNone MangaSortField = iota
	MangaSortTitle
	MangaSortFinishDate
	MangaSortStartDate
	MangaSortScore
	MangaSortLastUpdated
	MangaSortType
	MangaSortStatus
	MangaSortRead
	MangaSortPriority
	MangaSortProgress
	MangaSortChaptersRead
	MangaSortVolumesRead
)

var mangaSortValues = map[MangaSortField]string{
	MangaSortNone:         "",
	MangaSortTitle:        "title",
	MangaSortFinishDate:   "finish_date",
	MangaSortStartDate:    "start_date",
	MangaSortScore:        "score",
	MangaSortLastUpdated:  "last_updated",
	MangaSortType:         "type",
	MangaSortStatus:       "status",
	MangaSortRead:         "read",
	MangaSortPriority:     "priority",
	MangaSortProgress:     "progress",
	MangaSortChaptersRead: "chapters_read",
	MangaSortVolumesRead:  "volumes_read",
}

// IsValid reports whether f is a declared sort field
func (f MangaSortField) IsValid() bool {
	_, ok := mangaSortValues[f]
	return ok
}

func (f MangaSortField) String() string {
	if v, ok := mangaSortValues[f]; ok {
		if v == "" {
			return "none"
		}
		return v
	}
	return fmt.Sprintf("MangaSortField(%d)", int(f))
}

// AnimeSortField is a sortable column of a user anime list
type AnimeSortField int

const (
	AnimeSortNone AnimeSortField = iota
	AnimeSortTitle
	AnimeSortFinishDate
	AnimeSortStartDate
	AnimeSortScore
	AnimeSortLastUpdated
	AnimeSortType
	AnimeSortRated
	AnimeSortRewatchValue
	AnimeSortPriority
	AnimeSortProgress
	AnimeSortStorage
	AnimeSortAirStart
	AnimeSortAirEnd
	AnimeSortStatus
)

var animeSortValues = map[AnimeSortField]string{
	AnimeSortNone:         "",
	AnimeSortTitle:        "title",
	AnimeSortFinishDate:   "finish_date",
	AnimeSortStartDate:    "start_date",
	AnimeSortScore:        "score",
	AnimeSortLastUpdated:  "last_updated",
	AnimeSortType:         "type",
	AnimeSortRated:        "rated",
	AnimeSortRewatchValue: "rewatch_value",
	AnimeSortPriority:     "priority",
	AnimeSortProgress:     "progress",
	AnimeSortStorage:      "storage",
	AnimeSortAirStart:     "air_start",
	AnimeSortAirEnd:       "air_end",
	AnimeSortStatus:       "status",
}

// IsValid reports whether f is a declared sort field
func (f AnimeSortField) IsValid() bool {
	_, ok := animeSortValues[f]
	return ok
}

func (f AnimeSortField) String() string {
	if v, ok := animeSortValues[f]; ok {
		if v == "" {
			return "none"
		}
		return v
	}
	return fmt.Sprintf("AnimeSortField(%d)", int(f))
}

// PublishingFilter restricts a user manga list search by publication state
type PublishingFilter int

const (
	PublishingAny PublishingFilter = iota
	PublishingOngoing
	PublishingFinished
	PublishingNotYetPublished
)

var publishingFilterValues = map[PublishingFilter]string{
	PublishingAny:             "",
	PublishingOngoing:         "publishing",
	PublishingFinished:        "finished",
	PublishingNotYetPublished: "not_yet_published",
}

// IsValid reports whether f is a declared filter
func (f PublishingFilter) IsValid() bool {
	_, ok := publishingFilterValues[f]
	return ok
}

func (f PublishingFilter) String() string {
	if v, ok := publishingFilterValues[f]; ok {
		if v == "" {
			return "any"
		}
		return v
	}
	return fmt.Sprintf("PublishingFilter(%d)", int(f))
}

// AiringFilter restricts a user anime list search by broadcast state
type AiringFilter int

const (
	AiringAny AiringFilter = iota
	AiringOngoing
	AiringFinished
	AiringToBeAired
)

var airingFilterValues = map[AiringFilter]string{
	AiringAny:       "",
	AiringOngoing:   "airing",
	AiringFinished:  "finished",
	AiringToBeAired: "to_be_aired",
}

// IsValid reports whether f is a declared filter
func (f AiringFilter) IsValid() bool {
	_, ok := airingFilterValues[f]
	return ok
}

func (f AiringFilter) String() string {
	if v, ok := airingFilterValues[f]; ok {
		if v == "" {
			return "any"
		}
		return v
	}
	return fmt.Sprintf("AiringFilter(%d)", int(f))
}

// AiringStatus is the broadcast or publication state reported on list entries.
// The numeric values match the API's codes.
type AiringStatus int

const (
	AiringStatusAiring      AiringStatus = 1
	AiringStatusCompleted   AiringStatus = 2
	AiringStatusNotYetAired AiringStatus = 3
)

// String returns the string representation of an AiringStatus
func (s AiringStatus) String() string {
	switch s {
	case AiringStatusAiring:
		return "AIRING"
	case AiringStatusCompleted:
		return "COMPLETED"
	case AiringStatusNotYetAired:
		return "NOT_YET_AIRED"
	default:
		return fmt.Sprintf("AiringStatus(%d)", int(s))
	}
}

// airingStatusText maps the textual forms the API emits across endpoints
var airingStatusText = map[string]AiringStatus{
	"airing":            AiringStatusAiring,
	"currently airing":  AiringStatusAiring,
	"publishing":        AiringStatusAiring,
	"finished":          AiringStatusCompleted,
	"finished airing":   AiringStatusCompleted,
	"completed":         AiringStatusCompleted,
	"not yet aired":     AiringStatusNotYetAired,
	"not yet published": AiringStatusNotYetAired,
}
