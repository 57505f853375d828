package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/jikan/jikan"
)

var (
	listStatus   string
	listPage     int
	listQuery    string
	listOrderBy  string
	listOrderBy2 string
	listSort     string
	listState    string
	listFrom     string
	listTo       string
	listYear     int
	listSeason   string
	listSourceID int
)

var (
	mangaListStatuses = []jikan.MangaListStatus{
		jikan.MangaListAll, jikan.MangaListReading, jikan.MangaListCompleted,
		jikan.MangaListOnHold, jikan.MangaListDropped, jikan.MangaListPlanToRead,
	}
	animeListStatuses = []jikan.AnimeListStatus{
		jikan.AnimeListAll, jikan.AnimeListWatching, jikan.AnimeListCompleted,
		jikan.AnimeListOnHold, jikan.AnimeListDropped, jikan.AnimeListPlanToWatch,
	}
	mangaSortFields = []jikan.MangaSortField{
		jikan.MangaSortNone, jikan.MangaSortTitle, jikan.MangaSortFinishDate, jikan.MangaSortStartDate,
		jikan.MangaSortScore, jikan.MangaSortLastUpdated, jikan.MangaSortType, jikan.MangaSortStatus,
		jikan.MangaSortRead, jikan.MangaSortPriority, jikan.MangaSortProgress,
		jikan.MangaSortChaptersRead, jikan.MangaSortVolumesRead,
	}
	animeSortFields = []jikan.AnimeSortField{
		jikan.AnimeSortNone, jikan.AnimeSortTitle, jikan.AnimeSortFinishDate, jikan.AnimeSortStartDate,
		jikan.AnimeSortScore, jikan.AnimeSortLastUpdated, jikan.AnimeSortType, jikan.AnimeSortRated,
		jikan.AnimeSortRewatchValue, jikan.AnimeSortPriority, jikan.AnimeSortProgress,
		jikan.AnimeSortStorage, jikan.AnimeSortAirStart, jikan.AnimeSortAirEnd, jikan.AnimeSortStatus,
	}
	sortDirections = []jikan.SortDirection{jikan.SortUnset, jikan.SortAscending, jikan.SortDescending}
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show a user's anime or manga list",
	Long: `Show a page of a user's anime or manga list. Passing any search flag
(--query, --order-by, --sort, --state, --from, --to, --year, --season, --id)
switches to a list search.

Examples:
  jikan list anime someuser --status watching
  jikan list manga someuser --query monster --order-by score --sort descending
  jikan list anime someuser --year 2021 --season fall --filter 'Score >= 8'`,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: shutdownApp,
}

var listMangaCmd = &cobra.Command{
	Use:   "manga <username>",
	Short: "A user's manga list",
	Args:  cobra.ExactArgs(1),
	RunE:  runListManga,
}

var listAnimeCmd = &cobra.Command{
	Use:   "anime <username>",
	Short: "A user's anime list",
	Args:  cobra.ExactArgs(1),
	RunE:  runListAnime,
}

func init() {
	flags := listCmd.PersistentFlags()
	flags.StringVarP(&listStatus, "status", "s", "all", "list status (ignored when searching)")
	flags.IntVar(&listPage, "page", 1, "page to fetch")
	flags.StringVarP(&listQuery, "query", "q", "", "title search")
	flags.StringVar(&listOrderBy, "order-by", "none", "primary sort column")
	flags.StringVar(&listOrderBy2, "order-by2", "none", "secondary sort column (requires --order-by)")
	flags.StringVar(&listSort, "sort", "unset", "sort direction: ascending, descending")
	flags.StringVar(&listState, "state", "any", "airing/publishing state")
	flags.StringVar(&listFrom, "from", "", "aired/published from (YYYY-MM-DD)")
	flags.StringVar(&listTo, "to", "", "aired/published to (YYYY-MM-DD)")
	flags.IntVar(&listSourceID, "id", 0, "producer (anime) or magazine (manga) id")
	listAnimeCmd.Flags().IntVar(&listYear, "year", 0, "broadcast year (with --season)")
	listAnimeCmd.Flags().StringVar(&listSeason, "season", "", "broadcast season (with --year)")

	addFilterFlags(listMangaCmd)
	addFilterFlags(listAnimeCmd)
	listCmd.AddCommand(listMangaCmd)
	listCmd.AddCommand(listAnimeCmd)
}

// searching reports whether any search-only flag was given
func searching(cmd *cobra.Command) bool {
	for _, name := range []string{"query", "order-by", "order-by2", "sort", "state", "from", "to", "id", "year", "season"} {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			return true
		}
	}
	return false
}

func runListManga(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	username := args[0]

	var (
		list *jikan.UserMangaList
		err  error
	)
	if searching(cmd) {
		search, buildErr := mangaSearch()
		if buildErr != nil {
			return buildErr
		}
		logger.Info().Str("user", username).Str("query", search.Query).Msg("Searching manga list")
		list, err = client.SearchUserMangaList(ctx, username, search)
	} else {
		status, parseErr := parseChoice("status", listStatus, mangaListStatuses)
		if parseErr != nil {
			return parseErr
		}
		logger.Info().Str("user", username).Str("status", status.String()).Msg("Fetching manga list")
		list, err = client.GetUserMangaList(ctx, username, status, listPage)
	}
	if err != nil {
		return fmt.Errorf("failed to get manga list: %w", err)
	}
	if list == nil {
		list = &jikan.UserMangaList{}
	}

	entries, err := applyFilter(ctx, list.Entries)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMangaList(&jikan.UserMangaList{Entries: entries}, formatOptions()))
	return nil
}

func runListAnime(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	username := args[0]

	var (
		list *jikan.UserAnimeList
		err  error
	)
	if searching(cmd) {
		search, buildErr := animeSearch()
		if buildErr != nil {
			return buildErr
		}
		logger.Info().Str("user", username).Str("query", search.Query).Msg("Searching anime list")
		list, err = client.SearchUserAnimeList(ctx, username, search)
	} else {
		status, parseErr := parseChoice("status", listStatus, animeListStatuses)
		if parseErr != nil {
			return parseErr
		}
		logger.Info().Str("user", username).Str("status", status.String()).Msg("Fetching anime list")
		list, err = client.GetUserAnimeList(ctx, username, status, listPage)
	}
	if err != nil {
		return fmt.Errorf("failed to get anime list: %w", err)
	}
	if list == nil {
		list = &jikan.UserAnimeList{}
	}

	entries, err := applyFilter(ctx, list.Entries)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAnimeList(&jikan.UserAnimeList{Entries: entries}, formatOptions()))
	return nil
}

func mangaSearch() (*jikan.MangaListSearch, error) {
	state, err := parseChoice("publishing state", listState, []jikan.PublishingFilter{
		jikan.PublishingAny, jikan.PublishingOngoing, jikan.PublishingFinished, jikan.PublishingNotYetPublished,
	})
	if err != nil {
		return nil, err
	}
	orderBy, err := parseChoice("sort column", listOrderBy, mangaSortFields)
	if err != nil {
		return nil, err
	}
	orderBy2, err := parseChoice("sort column", listOrderBy2, mangaSortFields)
	if err != nil {
		return nil, err
	}
	sort, err := parseChoice("sort direction", listSort, sortDirections)
	if err != nil {
		return nil, err
	}
	from, to, err := parseDateRange()
	if err != nil {
		return nil, err
	}

	return &jikan.MangaListSearch{
		Query:            listQuery,
		PublishingStatus: state,
		OrderBy:          orderBy,
		OrderBy2:         orderBy2,
		Sort:             sort,
		MagazineID:       listSourceID,
		PublishedFrom:    from,
		PublishedTo:      to,
		Page:             listPage,
	}, nil
}

func animeSearch() (*jikan.AnimeListSearch, error) {
	state, err := parseChoice("airing state", listState, []jikan.AiringFilter{
		jikan.AiringAny, jikan.AiringOngoing, jikan.AiringFinished, jikan.AiringToBeAired,
	})
	if err != nil {
		return nil, err
	}
	orderBy, err := parseChoice("sort column", listOrderBy, animeSortFields)
	if err != nil {
		return nil, err
	}
	orderBy2, err := parseChoice("sort column", listOrderBy2, animeSortFields)
	if err != nil {
		return nil, err
	}
	sort, err := parseChoice("sort direction", listSort, sortDirections)
	if err != nil {
		return nil, err
	}
	from, to, err := parseDateRange()
	if err != nil {
		return nil, err
	}

	var season jikan.Season
	if listSeason != "" {
		var ok bool
		if season, ok = jikan.ParseSeason(listSeason); !ok {
			return nil, fmt.Errorf("unknown season %q (valid: winter, spring, summer, fall)", listSeason)
		}
	}

	return &jikan.AnimeListSearch{
		Query:        listQuery,
		AiringStatus: state,
		OrderBy:      orderBy,
		OrderBy2:     orderBy2,
		Sort:         sort,
		ProducerID:   listSourceID,
		Year:         listYear,
		Season:       season,
		AiredFrom:    from,
		AiredTo:      to,
		Page:         listPage,
	}, nil
}

func parseDateRange() (from, to time.Time, err error) {
	if listFrom != "" {
		if from, err = time.Parse(time.DateOnly, listFrom); err != nil {
			return from, to, fmt.Errorf("invalid --from date: %w", err)
		}
	}
	if listTo != "" {
		if to, err = time.Parse(time.DateOnly, listTo); err != nil {
			return from, to, fmt.Errorf("invalid --to date: %w", err)
		}
	}
	return from, to, nil
}
