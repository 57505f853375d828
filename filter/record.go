package filter

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/s0up4200/jikan/jikan"
)

// Record is the flattened view of one entry that expressions are evaluated against.
// Absent optional values are exposed as zero values alongside a Has* flag.
type Record map[string]any

// Title returns the record's title for diagnostics
func (r Record) Title() string {
	s, _ := r["Title"].(string)
	return s
}

// RecordOf flattens a season, ranking or list entry into a Record
func RecordOf(entry any) (Record, error) {
	switch e := entry.(type) {
	case jikan.SeasonEntry:
		r := Record{
			"Kind":     "season",
			"MalID":    e.MalID,
			"Title":    e.Title,
			"URL":      e.URL,
			"Type":     e.Type,
			"Source":   e.Source,
			"Members":  e.Members,
			"Synopsis": e.Synopsis,
			"Genres":   subItemNames(e.Genres),
			"Studios":  subItemNames(e.Producers),
			"Kids":     e.Kids,
			"R18":      e.R18,
		}
		setOption(r, "Score", e.Score)
		setOption(r, "Episodes", e.Episodes)
		setOption(r, "AiringStart", e.AiringStart)
		return r, nil

	case jikan.AnimeTopEntry:
		r := Record{
			"Kind":    "anime",
			"MalID":   e.MalID,
			"Rank":    e.Rank,
			"Title":   e.Title,
			"URL":     e.URL,
			"Type":    e.Type,
			"Members": e.Members,
		}
		setOption(r, "Score", e.Score)
		setOption(r, "Episodes", e.Episodes)
		setOption(r, "StartDate", e.StartDate)
		setOption(r, "EndDate", e.EndDate)
		return r, nil

	case jikan.MangaTopEntry:
		r := Record{
			"Kind":    "manga",
			"MalID":   e.MalID,
			"Rank":    e.Rank,
			"Title":   e.Title,
			"URL":     e.URL,
			"Type":    e.Type,
			"Members": e.Members,
		}
		setOption(r, "Score", e.Score)
		setOption(r, "Volumes", e.Volumes)
		setOption(r, "StartDate", e.StartDate)
		setOption(r, "EndDate", e.EndDate)
		return r, nil

	case jikan.PersonTopEntry:
		r := Record{
			"Kind":      "person",
			"MalID":     e.MalID,
			"Rank":      e.Rank,
			"Title":     e.Name,
			"Name":      e.Name,
			"URL":       e.URL,
			"Favorites": e.Favorites,
		}
		setOption(r, "NameKanji", e.NameKanji)
		setOption(r, "Birthday", e.Birthday)
		return r, nil

	case jikan.CharacterTopEntry:
		r := Record{
			"Kind":         "character",
			"MalID":        e.MalID,
			"Rank":         e.Rank,
			"Title":        e.Name,
			"Name":         e.Name,
			"URL":          e.URL,
			"Favorites":    e.Favorites,
			"Animeography": subItemNames(e.Animeography),
			"Mangaography": subItemNames(e.Mangaography),
		}
		setOption(r, "NameKanji", e.NameKanji)
		return r, nil

	case jikan.MangaListEntry:
		r := Record{
			"Kind":          "mangalist",
			"MalID":         e.MalID,
			"Title":         e.Title,
			"URL":           e.URL,
			"Type":          e.Type,
			"Score":         e.Score,
			"HasScore":      e.Score > 0,
			"ReadChapters":  e.ReadChapters,
			"ReadVolumes":   e.ReadVolumes,
			"TotalChapters": e.TotalChapters,
			"TotalVolumes":  e.TotalVolumes,
			"Rereading":     e.IsRereading,
			"Priority":      e.Priority,
			"Magazines":     subItemNames(e.Magazines),
			"Status":        statusName(e.ReadingStatus),
			"Publishing":    statusName(e.PublishingStatus),
		}
		setOption(r, "Tags", e.Tags)
		setOption(r, "StartDate", e.StartDate)
		setOption(r, "EndDate", e.EndDate)
		setOption(r, "ReadStartDate", e.ReadStartDate)
		setOption(r, "ReadEndDate", e.ReadEndDate)
		return r, nil

	case jikan.AnimeListEntry:
		r := Record{
			"Kind":            "animelist",
			"MalID":           e.MalID,
			"Title":           e.Title,
			"URL":             e.URL,
			"Type":            e.Type,
			"Score":           e.Score,
			"HasScore":        e.Score > 0,
			"WatchedEpisodes": e.WatchedEpisodes,
			"TotalEpisodes":   e.TotalEpisodes,
			"Rewatching":      e.IsRewatching,
			"Rating":          e.Rating,
			"Priority":        e.Priority,
			"Studios":         subItemNames(e.Studios),
			"Licensors":       subItemNames(e.Licensors),
			"Status":          statusName(e.WatchingStatus),
			"Airing":          statusName(e.AiringStatus),
			"Season":          statusName(e.Season),
		}
		setOption(r, "SeasonYear", e.SeasonYear)
		setOption(r, "Tags", e.Tags)
		setOption(r, "StartDate", e.StartDate)
		setOption(r, "EndDate", e.EndDate)
		setOption(r, "WatchStartDate", e.WatchStartDate)
		setOption(r, "WatchEndDate", e.WatchEndDate)
		return r, nil
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupportedEntry, entry)
}

func recordsOf[T any](items []T) ([]Record, error) {
	records := make([]Record, len(items))
	for i, item := range items {
		record, err := RecordOf(item)
		if err != nil {
			return nil, err
		}
		records[i] = record
	}
	return records, nil
}

// setOption stores the option's value (or its zero value) under key plus a Has<key> flag
func setOption[T any](r Record, key string, opt mo.Option[T]) {
	r[key] = opt.OrEmpty()
	r["Has"+key] = opt.IsPresent()
}

func subItemNames(items []jikan.SubItem) []string {
	return lo.Map(items, func(i jikan.SubItem, _ int) string { return i.Name })
}

func statusName[T fmt.Stringer](opt mo.Option[T]) string {
	if v, ok := opt.Get(); ok {
		return v.String()
	}
	return ""
}

// yearOf returns the calendar year of t, or 0 for the zero time
func yearOf(t time.Time) int {
	if t.IsZero() {
		return 0
	}
	return t.Year()
}
