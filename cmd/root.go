package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/s0up4200/jikan/config"
	"github.com/s0up4200/jikan/filter"
	"github.com/s0up4200/jikan/format"
	"github.com/s0up4200/jikan/jikan"
)

var (
	cfgFile       string
	cfg           *config.Config
	logger        zerolog.Logger
	client        *jikan.Client
	filterManager *filter.Manager
	formatter     = format.NewConsoleFormatter()

	// Command flags
	filterExpr  string
	preset      string
	showDetails bool
	suppress    bool

	appVersion   = "dev"
	appBuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "jikan",
	Short: "Browse MyAnimeList data through the Jikan API",
	Long: `jikan is a CLI for the Jikan v3 API. It lists seasonal anime, rankings
and user anime/manga lists, optionally narrowed by filter expressions evaluated
against each entry.`,
	SilenceUsage: true,
}

// SetVersion records build information for the version and update commands
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
	rootCmd.Version = version
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if isatty.IsTerminal(os.Stdout.Fd()) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&showDetails, "details", false, "show extended entry details")
	rootCmd.PersistentFlags().BoolVar(&suppress, "suppress-errors", false, "treat request failures as empty results")

	rootCmd.AddCommand(seasonCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// addFilterFlags registers the filter flags on commands whose output can be filtered
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "preset filters from config, comma-separated; entries must match all")
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)
	formatter.SetColor(cfg.Logging.Color && isatty.IsTerminal(os.Stdout.Fd()))

	// Override suppress-errors from command line if specified
	if cmd.Flags().Changed("suppress-errors") {
		cfg.Jikan.SuppressErrors = suppress
	}

	client, err = jikan.NewClient(logger,
		jikan.WithBaseURL(cfg.Jikan.BaseURL),
		jikan.WithTimeout(cfg.Jikan.Timeout),
		jikan.WithUserAgent(cfg.Jikan.UserAgent),
		jikan.WithSuppressErrors(cfg.Jikan.SuppressErrors),
	)
	if err != nil {
		return fmt.Errorf("failed to create Jikan client: %w", err)
	}

	filterManager = filter.NewManager()
	if err := filterManager.RegisterFilters(cfg.Filter.PresetExpressions()); err != nil {
		return fmt.Errorf("failed to register filter presets: %w", err)
	}

	logger.Debug().
		Str("base_url", client.BaseURL()).
		Bool("suppress_errors", client.SuppressErrors()).
		Strs("presets", filterManager.ListFilters()).
		Msg("Initialized")

	return nil
}

// shutdownApp releases the filter workers
func shutdownApp(cmd *cobra.Command, args []string) error {
	if filterManager == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return filterManager.Close(ctx)
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colored only on a terminal
	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// presetNames splits --preset into distinct, non-empty names
func presetNames() []string {
	names := lo.Map(strings.Split(preset, ","), func(name string, _ int) string {
		return strings.TrimSpace(name)
	})
	return lo.Uniq(lo.Compact(names))
}

// applyFilter narrows entries by --filter, else by every --preset, else by the
// configured default expression
func applyFilter[T any](ctx context.Context, entries []T) ([]T, error) {
	if filterExpr == "" {
		if names := presetNames(); len(names) > 0 {
			logger.Debug().Strs("presets", names).Int("entries", len(entries)).Msg("Applying presets")

			matched, err := filter.ApplyPresets(ctx, filterManager, names, entries)
			if err != nil {
				return nil, fmt.Errorf("failed to apply presets: %w", err)
			}
			return matched, nil
		}
	}

	expression := filterExpr
	if expression == "" {
		expression = cfg.Filter.DefaultExpression
	}
	if expression == "" {
		return entries, nil
	}

	compiled, err := filter.CompileFilter(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	logger.Debug().Str("filter", compiled.Expression()).Int("entries", len(entries)).Msg("Applying filter")

	matched, err := filter.Apply(ctx, filterManager.Evaluator(), compiled, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to apply filter: %w", err)
	}
	return matched, nil
}

func formatOptions() format.FormatOptions {
	return format.FormatOptions{ShowDetails: showDetails}
}

// parseChoice maps a user supplied name onto one of the values' String forms
func parseChoice[E fmt.Stringer](kind, name string, values []E) (E, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, v := range values {
		if strings.ToLower(v.String()) == name {
			return v, nil
		}
	}

	var zero E
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.String()
	}
	if suggestion, ok := filter.Closest(name, names); ok {
		return zero, fmt.Errorf("unknown %s %q, did you mean %q?", kind, name, suggestion)
	}
	return zero, fmt.Errorf("unknown %s %q (valid: %s)", kind, name, strings.Join(names, ", "))
}
