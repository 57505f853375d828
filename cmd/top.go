package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/jikan/jikan"
)

var (
	topPage      int
	topPages     int
	topExtension string
)

// topCmd represents the top command
var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show MyAnimeList rankings",
	Long: `Show anime, manga, people or character rankings. Use --pages to fetch several
consecutive pages concurrently.

Examples:
  jikan top anime --type ova
  jikan top manga --type manhwa --pages 3
  jikan top people --page 2`,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: shutdownApp,
}

var topAnimeCmd = &cobra.Command{
	Use:   "anime",
	Short: "Top ranked anime",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ext, err := parseChoice("anime ranking", topExtension, []jikan.TopAnimeExtension{
			jikan.TopAnimeNone, jikan.TopAnimeAiring, jikan.TopAnimeUpcoming, jikan.TopAnimeTV,
			jikan.TopAnimeMovies, jikan.TopAnimeOVA, jikan.TopAnimeSpecials,
			jikan.TopAnimePopularity, jikan.TopAnimeFavorites,
		})
		if err != nil {
			return err
		}

		entries, err := fetchPages(cmd.Context(), func(ctx context.Context, page int) ([]jikan.AnimeTopEntry, error) {
			top, err := client.GetAnimeTop(ctx, page, ext)
			if err != nil || top == nil {
				return nil, err
			}
			return top.Entries, nil
		})
		if err != nil {
			return fmt.Errorf("failed to get top anime: %w", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAnimeTop(&jikan.AnimeTop{Entries: entries}, formatOptions()))
		return nil
	},
}

var topMangaCmd = &cobra.Command{
	Use:   "manga",
	Short: "Top ranked manga",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ext, err := parseChoice("manga ranking", topExtension, []jikan.TopMangaExtension{
			jikan.TopMangaNone, jikan.TopMangaMangaOnly, jikan.TopMangaNovels, jikan.TopMangaOneShots,
			jikan.TopMangaDoujinshi, jikan.TopMangaManhwa, jikan.TopMangaManhua,
			jikan.TopMangaPopularity, jikan.TopMangaFavorites,
		})
		if err != nil {
			return err
		}

		entries, err := fetchPages(cmd.Context(), func(ctx context.Context, page int) ([]jikan.MangaTopEntry, error) {
			top, err := client.GetMangaTop(ctx, page, ext)
			if err != nil || top == nil {
				return nil, err
			}
			return top.Entries, nil
		})
		if err != nil {
			return fmt.Errorf("failed to get top manga: %w", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMangaTop(&jikan.MangaTop{Entries: entries}, formatOptions()))
		return nil
	},
}

var topPeopleCmd = &cobra.Command{
	Use:   "people",
	Short: "Most favorited people",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := fetchPages(cmd.Context(), func(ctx context.Context, page int) ([]jikan.PersonTopEntry, error) {
			top, err := client.GetPeopleTop(ctx, page)
			if err != nil || top == nil {
				return nil, err
			}
			return top.Entries, nil
		})
		if err != nil {
			return fmt.Errorf("failed to get top people: %w", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPeopleTop(&jikan.PeopleTop{Entries: entries}, formatOptions()))
		return nil
	},
}

var topCharactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "Most favorited characters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := fetchPages(cmd.Context(), func(ctx context.Context, page int) ([]jikan.CharacterTopEntry, error) {
			top, err := client.GetCharactersTop(ctx, page)
			if err != nil || top == nil {
				return nil, err
			}
			return top.Entries, nil
		})
		if err != nil {
			return fmt.Errorf("failed to get top characters: %w", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCharactersTop(&jikan.CharactersTop{Entries: entries}, formatOptions()))
		return nil
	},
}

func init() {
	topCmd.PersistentFlags().IntVar(&topPage, "page", 1, "first page to fetch")
	topCmd.PersistentFlags().IntVar(&topPages, "pages", 1, "number of consecutive pages to fetch")
	topAnimeCmd.Flags().StringVarP(&topExtension, "type", "t", "none", "ranking: none, airing, upcoming, tv, movie, ova, special, bypopularity, favorite")
	topMangaCmd.Flags().StringVarP(&topExtension, "type", "t", "none", "ranking: none, manga, novels, oneshots, doujin, manhwa, manhua, bypopularity, favorite")

	for _, sub := range []*cobra.Command{topAnimeCmd, topMangaCmd, topPeopleCmd, topCharactersCmd} {
		addFilterFlags(sub)
		topCmd.AddCommand(sub)
	}
}

// fetchPages fetches topPages pages starting at topPage concurrently, bounded by
// jikan.concurrency, and returns the filtered entries in page order.
func fetchPages[T any](ctx context.Context, fetch func(ctx context.Context, page int) ([]T, error)) ([]T, error) {
	if topPages < 1 {
		return nil, fmt.Errorf("--pages must be at least 1")
	}

	results := make([][]T, topPages)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Jikan.Concurrency)

	for i := range topPages {
		page := topPage + i
		g.Go(func() error {
			entries, err := fetch(gctx, page)
			if err != nil {
				return fmt.Errorf("page %d: %w", page, err)
			}
			logger.Debug().Int("page", page).Int("entries", len(entries)).Msg("Fetched page")
			results[i] = entries
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []T
	for _, entries := range results {
		all = append(all, entries...)
	}

	return applyFilter(ctx, all)
}
