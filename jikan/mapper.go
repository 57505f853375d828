package jikan

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Raw response documents. Pointer fields distinguish absent from zero.
type (
	rawSubItem struct {
		MalID int64  `json:"mal_id"`
		Type  string `json:"type"`
		Name  string `json:"name"`
		URL   string `json:"url"`
	}

	rawSeason struct {
		SeasonName *string          `json:"season_name"`
		SeasonYear *int             `json:"season_year"`
		Anime      []rawSeasonEntry `json:"anime"`
	}

	rawSeasonEntry struct {
		MalID       int64        `json:"mal_id"`
		URL         string       `json:"url"`
		Title       string       `json:"title"`
		ImageURL    string       `json:"image_url"`
		Synopsis    string       `json:"synopsis"`
		Type        string       `json:"type"`
		AiringStart *string      `json:"airing_start"`
		Episodes    *int         `json:"episodes"`
		Members     int          `json:"members"`
		Genres      []rawSubItem `json:"genres"`
		Source      string       `json:"source"`
		Producers   []rawSubItem `json:"producers"`
		Score       *float64     `json:"score"`
		Licensors   []string     `json:"licensors"`
		R18         bool         `json:"r18"`
		Kids        bool         `json:"kids"`
		Continuing  bool         `json:"continuing"`
	}

	rawSeasonArchive struct {
		Archive []struct {
			Year    int      `json:"year"`
			Seasons []string `json:"seasons"`
		} `json:"archive"`
	}

	rawAnimeTop struct {
		Top []struct {
			MalID     int64    `json:"mal_id"`
			Rank      int      `json:"rank"`
			Title     string   `json:"title"`
			URL       string   `json:"url"`
			ImageURL  string   `json:"image_url"`
			Type      string   `json:"type"`
			Episodes  *int     `json:"episodes"`
			StartDate *string  `json:"start_date"`
			EndDate   *string  `json:"end_date"`
			Members   int      `json:"members"`
			Score     *float64 `json:"score"`
		} `json:"top"`
	}

	rawMangaTop struct {
		Top []struct {
			MalID     int64    `json:"mal_id"`
			Rank      int      `json:"rank"`
			Title     string   `json:"title"`
			URL       string   `json:"url"`
			ImageURL  string   `json:"image_url"`
			Type      string   `json:"type"`
			Volumes   *int     `json:"volumes"`
			StartDate *string  `json:"start_date"`
			EndDate   *string  `json:"end_date"`
			Members   int      `json:"members"`
			Score     *float64 `json:"score"`
		} `json:"top"`
	}

	// people and characters carry their name in "title"
	rawPeopleTop struct {
		Top []struct {
			MalID     int64   `json:"mal_id"`
			Rank      int     `json:"rank"`
			Title     string  `json:"title"`
			NameKanji *string `json:"name_kanji"`
			URL       string  `json:"url"`
			ImageURL  string  `json:"image_url"`
			Favorites int     `json:"favorites"`
			Birthday  *string `json:"birthday"`
		} `json:"top"`
	}

	rawCharactersTop struct {
		Top []struct {
			MalID        int64        `json:"mal_id"`
			Rank         int          `json:"rank"`
			Title        string       `json:"title"`
			NameKanji    *string      `json:"name_kanji"`
			URL          string       `json:"url"`
			ImageURL     string       `json:"image_url"`
			Favorites    int          `json:"favorites"`
			Animeography []rawSubItem `json:"animeography"`
			Mangaography []rawSubItem `json:"mangaography"`
		} `json:"top"`
	}

	rawUserMangaList struct {
		Manga []rawMangaListEntry `json:"manga"`
	}

	rawMangaListEntry struct {
		MalID            int64           `json:"mal_id"`
		Title            string          `json:"title"`
		URL              string          `json:"url"`
		ImageURL         string          `json:"image_url"`
		Type             string          `json:"type"`
		ReadingStatus    json.RawMessage `json:"reading_status"`
		Score            int             `json:"score"`
		ReadChapters     int             `json:"read_chapters"`
		ReadVolumes      int             `json:"read_volumes"`
		TotalChapters    int             `json:"total_chapters"`
		TotalVolumes     int             `json:"total_volumes"`
		PublishingStatus json.RawMessage `json:"publishing_status"`
		IsRereading      bool            `json:"is_rereading"`
		Tags             *string         `json:"tags"`
		StartDate        *string         `json:"start_date"`
		EndDate          *string         `json:"end_date"`
		ReadStartDate    *string         `json:"read_start_date"`
		ReadEndDate      *string         `json:"read_end_date"`
		Days             *int            `json:"days"`
		Priority         string          `json:"priority"`
		AddedToList      bool            `json:"added_to_list"`
		Magazines        []rawSubItem    `json:"magazines"`
	}

	rawUserAnimeList struct {
		Anime []rawAnimeListEntry `json:"anime"`
	}

	rawAnimeListEntry struct {
		MalID           int64           `json:"mal_id"`
		Title           string          `json:"title"`
		URL             string          `json:"url"`
		VideoURL        string          `json:"video_url"`
		ImageURL        string          `json:"image_url"`
		Type            string          `json:"type"`
		WatchingStatus  json.RawMessage `json:"watching_status"`
		Score           int             `json:"score"`
		WatchedEpisodes int             `json:"watched_episodes"`
		TotalEpisodes   int             `json:"total_episodes"`
		AiringStatus    json.RawMessage `json:"airing_status"`
		SeasonName      *string         `json:"season_name"`
		SeasonYear      *int            `json:"season_year"`
		IsRewatching    bool            `json:"is_rewatching"`
		Tags            *string         `json:"tags"`
		Rating          string          `json:"rating"`
		StartDate       *string         `json:"start_date"`
		EndDate         *string         `json:"end_date"`
		WatchStartDate  *string         `json:"watch_start_date"`
		WatchEndDate    *string         `json:"watch_end_date"`
		Days            *int            `json:"days"`
		Storage         *string         `json:"storage"`
		Priority        string          `json:"priority"`
		AddedToList     bool            `json:"added_to_list"`
		Studios         []rawSubItem    `json:"studios"`
		Licensors       []rawSubItem    `json:"licensors"`
	}
)

func mapSeason(raw *rawSeason) (SeasonResult, error) {
	return SeasonResult{
		Name: verbatim(raw.SeasonName),
		Year: mo.PointerToOption(raw.SeasonYear),
		Entries: lo.Map(raw.Anime, func(e rawSeasonEntry, _ int) SeasonEntry {
			return SeasonEntry{
				MalID:       e.MalID,
				URL:         e.URL,
				Title:       e.Title,
				ImageURL:    e.ImageURL,
				Synopsis:    e.Synopsis,
				Type:        e.Type,
				AiringStart: parseDate(e.AiringStart),
				Episodes:    mo.PointerToOption(e.Episodes),
				Members:     e.Members,
				Genres:      mapSubItems(e.Genres),
				Source:      e.Source,
				Producers:   mapSubItems(e.Producers),
				Score:       mo.PointerToOption(e.Score),
				Licensors:   orEmpty(e.Licensors),
				R18:         e.R18,
				Kids:        e.Kids,
				Continuing:  e.Continuing,
			}
		}),
	}, nil
}

func mapSeasonArchive(raw *rawSeasonArchive) (SeasonArchive, error) {
	years := make([]SeasonArchiveYear, 0, len(raw.Archive))
	for _, y := range raw.Archive {
		seasons := make([]Season, 0, len(y.Seasons))
		for _, name := range y.Seasons {
			s, ok := ParseSeason(name)
			if !ok {
				return SeasonArchive{}, &MappingError{Field: "archive.seasons", Value: name}
			}
			seasons = append(seasons, s)
		}
		years = append(years, SeasonArchiveYear{Year: y.Year, Seasons: seasons})
	}
	return SeasonArchive{Years: years}, nil
}

func mapAnimeTop(raw *rawAnimeTop) (AnimeTop, error) {
	entries := make([]AnimeTopEntry, 0, len(raw.Top))
	for _, e := range raw.Top {
		entries = append(entries, AnimeTopEntry{
			MalID:     e.MalID,
			Rank:      e.Rank,
			Title:     e.Title,
			URL:       e.URL,
			ImageURL:  e.ImageURL,
			Type:      e.Type,
			Episodes:  mo.PointerToOption(e.Episodes),
			StartDate: verbatim(e.StartDate),
			EndDate:   verbatim(e.EndDate),
			Members:   e.Members,
			Score:     mo.PointerToOption(e.Score),
		})
	}
	return AnimeTop{Entries: entries}, nil
}

func mapMangaTop(raw *rawMangaTop) (MangaTop, error) {
	entries := make([]MangaTopEntry, 0, len(raw.Top))
	for _, e := range raw.Top {
		entries = append(entries, MangaTopEntry{
			MalID:     e.MalID,
			Rank:      e.Rank,
			Title:     e.Title,
			URL:       e.URL,
			ImageURL:  e.ImageURL,
			Type:      e.Type,
			Volumes:   mo.PointerToOption(e.Volumes),
			StartDate: verbatim(e.StartDate),
			EndDate:   verbatim(e.EndDate),
			Members:   e.Members,
			Score:     mo.PointerToOption(e.Score),
		})
	}
	return MangaTop{Entries: entries}, nil
}

func mapPeopleTop(raw *rawPeopleTop) (PeopleTop, error) {
	entries := make([]PersonTopEntry, 0, len(raw.Top))
	for _, e := range raw.Top {
		entries = append(entries, PersonTopEntry{
			MalID:     e.MalID,
			Rank:      e.Rank,
			Name:      e.Title,
			NameKanji: verbatim(e.NameKanji),
			URL:       e.URL,
			ImageURL:  e.ImageURL,
			Favorites: e.Favorites,
			Birthday:  parseDate(e.Birthday),
		})
	}
	return PeopleTop{Entries: entries}, nil
}

func mapCharactersTop(raw *rawCharactersTop) (CharactersTop, error) {
	entries := make([]CharacterTopEntry, 0, len(raw.Top))
	for _, e := range raw.Top {
		entries = append(entries, CharacterTopEntry{
			MalID:        e.MalID,
			Rank:         e.Rank,
			Name:         e.Title,
			NameKanji:    verbatim(e.NameKanji),
			URL:          e.URL,
			ImageURL:     e.ImageURL,
			Favorites:    e.Favorites,
			Animeography: mapSubItems(e.Animeography),
			Mangaography: mapSubItems(e.Mangaography),
		})
	}
	return CharactersTop{Entries: entries}, nil
}

func mapUserMangaList(raw *rawUserMangaList) (UserMangaList, error) {
	entries := make([]MangaListEntry, 0, len(raw.Manga))
	for _, e := range raw.Manga {
		reading, err := decodeStatus("reading_status", e.ReadingStatus, isEntryMangaStatus, mangaStatusText)
		if err != nil {
			return UserMangaList{}, err
		}
		publishing, err := decodeStatus("publishing_status", e.PublishingStatus, isAiringStatus, airingStatusText)
		if err != nil {
			return UserMangaList{}, err
		}
		entries = append(entries, MangaListEntry{
			MalID:            e.MalID,
			Title:            e.Title,
			URL:              e.URL,
			ImageURL:         e.ImageURL,
			Type:             e.Type,
			ReadingStatus:    reading,
			Score:            e.Score,
			ReadChapters:     e.ReadChapters,
			ReadVolumes:      e.ReadVolumes,
			TotalChapters:    e.TotalChapters,
			TotalVolumes:     e.TotalVolumes,
			PublishingStatus: publishing,
			IsRereading:      e.IsRereading,
			Tags:             verbatim(e.Tags),
			StartDate:        parseDate(e.StartDate),
			EndDate:          parseDate(e.EndDate),
			ReadStartDate:    parseDate(e.ReadStartDate),
			ReadEndDate:      parseDate(e.ReadEndDate),
			Days:             mo.PointerToOption(e.Days),
			Priority:         e.Priority,
			AddedToList:      e.AddedToList,
			Magazines:        mapSubItems(e.Magazines),
		})
	}
	return UserMangaList{Entries: entries}, nil
}

func mapUserAnimeList(raw *rawUserAnimeList) (UserAnimeList, error) {
	entries := make([]AnimeListEntry, 0, len(raw.Anime))
	for _, e := range raw.Anime {
		watching, err := decodeStatus("watching_status", e.WatchingStatus, isEntryAnimeStatus, animeStatusText)
		if err != nil {
			return UserAnimeList{}, err
		}
		airing, err := decodeStatus("airing_status", e.AiringStatus, isAiringStatus, airingStatusText)
		if err != nil {
			return UserAnimeList{}, err
		}
		season, err := decodeSeason(e.SeasonName)
		if err != nil {
			return UserAnimeList{}, err
		}
		entries = append(entries, AnimeListEntry{
			MalID:           e.MalID,
			Title:           e.Title,
			URL:             e.URL,
			VideoURL:        e.VideoURL,
			ImageURL:        e.ImageURL,
			Type:            e.Type,
			WatchingStatus:  watching,
			Score:           e.Score,
			WatchedEpisodes: e.WatchedEpisodes,
			TotalEpisodes:   e.TotalEpisodes,
			AiringStatus:    airing,
			Season:          season,
			SeasonYear:      mo.PointerToOption(e.SeasonYear),
			IsRewatching:    e.IsRewatching,
			Tags:            verbatim(e.Tags),
			Rating:          e.Rating,
			StartDate:       parseDate(e.StartDate),
			EndDate:         parseDate(e.EndDate),
			WatchStartDate:  parseDate(e.WatchStartDate),
			WatchEndDate:    parseDate(e.WatchEndDate),
			Days:            mo.PointerToOption(e.Days),
			Storage:         verbatim(e.Storage),
			Priority:        e.Priority,
			AddedToList:     e.AddedToList,
			Studios:         mapSubItems(e.Studios),
			Licensors:       mapSubItems(e.Licensors),
		})
	}
	return UserAnimeList{Entries: entries}, nil
}

func mapSubItems(items []rawSubItem) []SubItem {
	return lo.Map(items, func(i rawSubItem, _ int) SubItem {
		return SubItem{MalID: i.MalID, Type: i.Type, Name: i.Name, URL: i.URL}
	})
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// verbatim keeps free text as sent; absent and empty strings are both None
func verbatim(s *string) mo.Option[string] {
	if s == nil || *s == "" {
		return mo.None[string]()
	}
	return mo.Some(*s)
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", queryDateLayout}

// parseDate reads fields the server documents as timestamps.
// Unparsable values are treated as absent.
func parseDate(s *string) mo.Option[time.Time] {
	if s == nil {
		return mo.None[time.Time]()
	}
	value := strings.TrimSpace(*s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return mo.Some(t)
		}
	}
	return mo.None[time.Time]()
}

func decodeSeason(name *string) (mo.Option[Season], error) {
	if name == nil || strings.TrimSpace(*name) == "" {
		return mo.None[Season](), nil
	}
	s, ok := ParseSeason(*name)
	if !ok {
		return mo.None[Season](), &MappingError{Field: "season_name", Value: *name}
	}
	return mo.Some(s), nil
}

var mangaStatusText = map[string]MangaListStatus{
	"reading":      MangaListReading,
	"completed":    MangaListCompleted,
	"on-hold":      MangaListOnHold,
	"on hold":      MangaListOnHold,
	"onhold":       MangaListOnHold,
	"dropped":      MangaListDropped,
	"plan to read": MangaListPlanToRead,
	"plantoread":   MangaListPlanToRead,
}

var animeStatusText = map[string]AnimeListStatus{
	"watching":      AnimeListWatching,
	"completed":     AnimeListCompleted,
	"on-hold":       AnimeListOnHold,
	"on hold":       AnimeListOnHold,
	"onhold":        AnimeListOnHold,
	"dropped":       AnimeListDropped,
	"plan to watch": AnimeListPlanToWatch,
	"plantowatch":   AnimeListPlanToWatch,
}

// "all" is a filter, never an entry's status
func isEntryMangaStatus(s MangaListStatus) bool { return s != MangaListAll && s.IsValid() }
func isEntryAnimeStatus(s AnimeListStatus) bool { return s != AnimeListAll && s.IsValid() }

func isAiringStatus(s AiringStatus) bool {
	switch s {
	case AiringStatusAiring, AiringStatusCompleted, AiringStatusNotYetAired:
		return true
	}
	return false
}

// decodeStatus reads an enum-backed field sent either as a numeric code or as text.
// Absent, null and empty values are None; anything unrecognized is a *MappingError.
func decodeStatus[S ~int](field string, raw json.RawMessage, known func(S) bool, text map[string]S) (mo.Option[S], error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return mo.None[S](), nil
	}

	var code int
	if err := json.Unmarshal(trimmed, &code); err == nil {
		if s := S(code); known(s) {
			return mo.Some(s), nil
		}
		return mo.None[S](), &MappingError{Field: field, Value: string(trimmed)}
	}

	var str string
	if err := json.Unmarshal(trimmed, &str); err == nil {
		key := strings.ToLower(strings.TrimSpace(str))
		if key == "" {
			return mo.None[S](), nil
		}
		if n, err := strconv.Atoi(key); err == nil && known(S(n)) {
			return mo.Some(S(n)), nil
		}
		if s, ok := text[key]; ok {
			return mo.Some(s), nil
		}
		return mo.None[S](), &MappingError{Field: field, Value: str}
	}

	return mo.None[S](), &MappingError{Field: field, Value: string(trimmed)}
}
