package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/s0up4200/jikan/jikan"
)

const (
	dateLayout    = "2006-01-02"
	synopsisWidth = 76
)

// FormatOptions controls how much of each entry is printed
type FormatOptions struct {
	ShowDetails bool
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

// ConsoleFormatter renders API results as trees for terminal output
type ConsoleFormatter struct {
	color bool
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// SetColor enables styled headers and titles
func (f *ConsoleFormatter) SetColor(enabled bool) {
	f.color = enabled
}

// FormatSeason formats a season listing
func (f *ConsoleFormatter) FormatSeason(season *jikan.SeasonResult, options FormatOptions) string {
	if season == nil || len(season.Entries) == 0 {
		return "No anime found for this season"
	}

	header := fmt.Sprintf("%s %s", season.Name.OrElse("Unknown season"), optionString(season.Year, "%d"))
	return writeTree(f, strings.TrimSpace(header), season.Entries,
		func(e jikan.SeasonEntry) string {
			return fmt.Sprintf("%s [%s]", e.Title, e.Type)
		},
		func(e jikan.SeasonEntry) []string {
			lines := []string{
				fmt.Sprintf("Score: %s | Episodes: %s | Members: %d",
					optionString(e.Score, "%.2f"), optionString(e.Episodes, "%d"), e.Members),
			}
			if start, ok := e.AiringStart.Get(); ok {
				lines = append(lines, "Airing: "+start.Format(dateLayout))
			}
			if !options.ShowDetails {
				return lines
			}
			if len(e.Genres) > 0 {
				lines = append(lines, "Genres: "+joinNames(e.Genres))
			}
			if len(e.Producers) > 0 {
				lines = append(lines, "Producers: "+joinNames(e.Producers))
			}
			if len(e.Licensors) > 0 {
				lines = append(lines, "Licensors: "+strings.Join(e.Licensors, ", "))
			}
			if e.Source != "" {
				lines = append(lines, "Source: "+e.Source)
			}
			lines = append(lines, "URL: "+e.URL)
			return append(lines, wrapText(e.Synopsis, synopsisWidth)...)
		})
}

// FormatSeasonArchive formats the years and seasons the server has data for
func (f *ConsoleFormatter) FormatSeasonArchive(archive *jikan.SeasonArchive) string {
	if archive == nil || len(archive.Years) == 0 {
		return "Season archive is empty"
	}

	return writeTree(f, "Season archive", archive.Years,
		func(y jikan.SeasonArchiveYear) string {
			return fmt.Sprintf("%d", y.Year)
		},
		func(y jikan.SeasonArchiveYear) []string {
			names := lo.Map(y.Seasons, func(s jikan.Season, _ int) string { return s.String() })
			return []string{strings.Join(names, ", ")}
		})
}

// FormatAnimeTop formats one page of an anime ranking
func (f *ConsoleFormatter) FormatAnimeTop(top *jikan.AnimeTop, options FormatOptions) string {
	if top == nil || len(top.Entries) == 0 {
		return "No ranked anime found"
	}

	return writeTree(f, "Top anime", top.Entries,
		func(e jikan.AnimeTopEntry) string {
			return fmt.Sprintf("#%d %s [%s]", e.Rank, e.Title, e.Type)
		},
		func(e jikan.AnimeTopEntry) []string {
			lines := []string{
				fmt.Sprintf("Score: %s | Episodes: %s | Members: %d",
					optionString(e.Score, "%.2f"), optionString(e.Episodes, "%d"), e.Members),
			}
			if options.ShowDetails {
				lines = append(lines,
					fmt.Sprintf("Aired: %s - %s", e.StartDate.OrElse("?"), e.EndDate.OrElse("?")),
					"URL: "+e.URL)
			}
			return lines
		})
}

// FormatMangaTop formats one page of a manga ranking
func (f *ConsoleFormatter) FormatMangaTop(top *jikan.MangaTop, options FormatOptions) string {
	if top == nil || len(top.Entries) == 0 {
		return "No ranked manga found"
	}

	return writeTree(f, "Top manga", top.Entries,
		func(e jikan.MangaTopEntry) string {
			return fmt.Sprintf("#%d %s [%s]", e.Rank, e.Title, e.Type)
		},
		func(e jikan.MangaTopEntry) []string {
			lines := []string{
				fmt.Sprintf("Score: %s | Volumes: %s | Members: %d",
					optionString(e.Score, "%.2f"), optionString(e.Volumes, "%d"), e.Members),
			}
			if options.ShowDetails {
				lines = append(lines,
					fmt.Sprintf("Published: %s - %s", e.StartDate.OrElse("?"), e.EndDate.OrElse("?")),
					"URL: "+e.URL)
			}
			return lines
		})
}

// FormatPeopleTop formats one page of the most favorited people
func (f *ConsoleFormatter) FormatPeopleTop(top *jikan.PeopleTop, options FormatOptions) string {
	if top == nil || len(top.Entries) == 0 {
		return "No ranked people found"
	}

	return writeTree(f, "Top people", top.Entries,
		func(e jikan.PersonTopEntry) string {
			if kanji, ok := e.NameKanji.Get(); ok {
				return fmt.Sprintf("#%d %s (%s)", e.Rank, e.Name, kanji)
			}
			return fmt.Sprintf("#%d %s", e.Rank, e.Name)
		},
		func(e jikan.PersonTopEntry) []string {
			lines := []string{fmt.Sprintf("Favorites: %d", e.Favorites)}
			if birthday, ok := e.Birthday.Get(); ok {
				lines = append(lines, "Birthday: "+birthday.Format(dateLayout))
			}
			if options.ShowDetails {
				lines = append(lines, "URL: "+e.URL)
			}
			return lines
		})
}

// FormatCharactersTop formats one page of the most favorited characters
func (f *ConsoleFormatter) FormatCharactersTop(top *jikan.CharactersTop, options FormatOptions) string {
	if top == nil || len(top.Entries) == 0 {
		return "No ranked characters found"
	}

	return writeTree(f, "Top characters", top.Entries,
		func(e jikan.CharacterTopEntry) string {
			return fmt.Sprintf("#%d %s", e.Rank, e.Name)
		},
		func(e jikan.CharacterTopEntry) []string {
			lines := []string{fmt.Sprintf("Favorites: %d", e.Favorites)}
			if !options.ShowDetails {
				return lines
			}
			if len(e.Animeography) > 0 {
				lines = append(lines, "Anime: "+joinNames(e.Animeography))
			}
			if len(e.Mangaography) > 0 {
				lines = append(lines, "Manga: "+joinNames(e.Mangaography))
			}
			return append(lines, "URL: "+e.URL)
		})
}

// FormatMangaList formats one page of a user's manga list
func (f *ConsoleFormatter) FormatMangaList(list *jikan.UserMangaList, options FormatOptions) string {
	if list == nil || len(list.Entries) == 0 {
		return "No manga found"
	}

	return writeTree(f, "Manga", list.Entries,
		func(e jikan.MangaListEntry) string {
			return fmt.Sprintf("%s [%s]", e.Title, optionString(e.ReadingStatus, "%s"))
		},
		func(e jikan.MangaListEntry) []string {
			lines := []string{
				fmt.Sprintf("Chapters: %d/%s | Volumes: %d/%s | Score: %s",
					e.ReadChapters, total(e.TotalChapters), e.ReadVolumes, total(e.TotalVolumes), userScore(e.Score)),
			}
			if !options.ShowDetails {
				return lines
			}
			if status, ok := e.PublishingStatus.Get(); ok {
				lines = append(lines, "Publishing: "+status.String())
			}
			if dates := dateRange(e.ReadStartDate, e.ReadEndDate); dates != "" {
				lines = append(lines, "Read: "+dates)
			}
			if tags, ok := e.Tags.Get(); ok {
				lines = append(lines, "Tags: "+tags)
			}
			if len(e.Magazines) > 0 {
				lines = append(lines, "Magazines: "+joinNames(e.Magazines))
			}
			return lines
		})
}

// FormatAnimeList formats one page of a user's anime list
func (f *ConsoleFormatter) FormatAnimeList(list *jikan.UserAnimeList, options FormatOptions) string {
	if list == nil || len(list.Entries) == 0 {
		return "No anime found"
	}

	return writeTree(f, "Anime", list.Entries,
		func(e jikan.AnimeListEntry) string {
			return fmt.Sprintf("%s [%s]", e.Title, optionString(e.WatchingStatus, "%s"))
		},
		func(e jikan.AnimeListEntry) []string {
			lines := []string{
				fmt.Sprintf("Episodes: %d/%s | Score: %s", e.WatchedEpisodes, total(e.TotalEpisodes), userScore(e.Score)),
			}
			if !options.ShowDetails {
				return lines
			}
			if status, ok := e.AiringStatus.Get(); ok {
				lines = append(lines, "Airing: "+status.String())
			}
			if season, ok := e.Season.Get(); ok {
				lines = append(lines, fmt.Sprintf("Season: %s %s", season, optionString(e.SeasonYear, "%d")))
			}
			if dates := dateRange(e.WatchStartDate, e.WatchEndDate); dates != "" {
				lines = append(lines, "Watched: "+dates)
			}
			if tags, ok := e.Tags.Get(); ok {
				lines = append(lines, "Tags: "+tags)
			}
			if len(e.Studios) > 0 {
				lines = append(lines, "Studios: "+joinNames(e.Studios))
			}
			return lines
		})
}

// writeTree renders items under a counted header, one branch per item
func writeTree[T any](f *ConsoleFormatter, header string, items []T, title func(T) string, details func(T) []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s:\n\n", f.style(headerStyle, fmt.Sprintf("%s (%d)", header, len(items))))

	for i, item := range items {
		isLast := i == len(items)-1
		prefix := "├"
		indent := "│   "
		if isLast {
			prefix = "╰"
			indent = "    "
		}

		fmt.Fprintf(&sb, "%s── %s\n", prefix, f.style(titleStyle, title(item)))
		for _, line := range details(item) {
			fmt.Fprintf(&sb, "%s%s\n", indent, line)
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

func (f *ConsoleFormatter) style(style lipgloss.Style, s string) string {
	if !f.color {
		return s
	}
	return style.Render(s)
}

// wrapText word-wraps s and splits it into lines
func wrapText(s string, width int) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(wordwrap.String(s, width), "\n")
}

// optionString formats a present value with verb, or "N/A"
func optionString[T any](opt mo.Option[T], verb string) string {
	if v, ok := opt.Get(); ok {
		return fmt.Sprintf(verb, v)
	}
	return "N/A"
}

func joinNames(items []jikan.SubItem) string {
	return strings.Join(lo.Map(items, func(i jikan.SubItem, _ int) string { return i.Name }), ", ")
}

// total prints an unknown (zero) total as "?"
func total(n int) string {
	if n <= 0 {
		return "?"
	}
	return fmt.Sprintf("%d", n)
}

func userScore(score int) string {
	if score <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", score)
}

func dateRange(start, end mo.Option[time.Time]) string {
	if start.IsAbsent() && end.IsAbsent() {
		return ""
	}
	return fmt.Sprintf("%s - %s", formatDate(start), formatDate(end))
}

func formatDate(opt mo.Option[time.Time]) string {
	if t, ok := opt.Get(); ok {
		return t.Format(dateLayout)
	}
	return "?"
}
