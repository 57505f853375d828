package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/jikan/jikan"
)

// seasonCmd represents the season command
var seasonCmd = &cobra.Command{
	Use:   "season [year season]",
	Short: "List the anime of a broadcast season",
	Long: `List the anime of a broadcast season. Without arguments the current season is shown.

Examples:
  jikan season
  jikan season 1970 spring
  jikan season 2021 fall --filter 'hasGenre("Action") and Score > 7'`,
	Args:               cobra.RangeArgs(0, 2),
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: shutdownApp,
	RunE:               runSeason,
}

var seasonLaterCmd = &cobra.Command{
	Use:   "later",
	Short: "List anime announced for upcoming seasons",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := client.GetSeasonLater(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get upcoming anime: %w", err)
		}
		return printSeason(cmd, result)
	},
}

var seasonArchiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "List every year and season with data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		archive, err := client.GetSeasonArchive(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get season archive: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSeasonArchive(archive))
		return nil
	},
}

func init() {
	addFilterFlags(seasonCmd)
	addFilterFlags(seasonLaterCmd)

	seasonCmd.AddCommand(seasonLaterCmd)
	seasonCmd.AddCommand(seasonArchiveCmd)
}

func runSeason(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var (
		result *jikan.SeasonResult
		err    error
	)
	switch len(args) {
	case 0:
		result, err = client.GetCurrentSeason(ctx)
	case 2:
		year, convErr := strconv.Atoi(args[0])
		if convErr != nil {
			return fmt.Errorf("invalid year %q: %w", args[0], convErr)
		}
		season, ok := jikan.ParseSeason(args[1])
		if !ok {
			return fmt.Errorf("unknown season %q (valid: winter, spring, summer, fall)", args[1])
		}
		logger.Info().Int("year", year).Str("season", season.String()).Msg("Fetching season")
		result, err = client.GetSeason(ctx, year, season)
	default:
		return fmt.Errorf("expected both a year and a season")
	}
	if err != nil {
		return fmt.Errorf("failed to get season: %w", err)
	}

	return printSeason(cmd, result)
}

// printSeason filters and prints a season; a suppressed failure prints nothing found
func printSeason(cmd *cobra.Command, result *jikan.SeasonResult) error {
	if result == nil {
		logger.Warn().Msg("No season data returned")
		result = &jikan.SeasonResult{}
	}

	entries, err := applyFilter(cmd.Context(), result.Entries)
	if err != nil {
		return err
	}
	filtered := *result
	filtered.Entries = entries

	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSeason(&filtered, formatOptions()))
	return nil
}
