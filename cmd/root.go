// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"whereto/internal/browser"
	"whereto/internal/config"
	"whereto/internal/httputil"
	"whereto/internal/media"
	"whereto/internal/provider"
	"whereto/internal/resolver"
	"whereto/internal/store"
	"whereto/internal/ui"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagIMDB    string
	flagType    string
	flagYear    string
	flagCountry string
	flagJSON    bool
	flagNoCache bool
	flagDebug   bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

// logger is the process-wide slog logger, levelled by the debug flag.
var logger *slog.Logger

var rootCmd = &cobra.Command{
	Use:   "whereto [title]",
	Short: "Find out where to legally watch a movie or TV show",
	Long: `Whereto resolves a title (or IMDb id) into a ranked list of streaming
platforms where it can be watched, learns which platforms you actually
use, and can open the best offer straight in your browser.`,
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: loadConfig,
	RunE:              resolveRun,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagIMDB, "imdb", "i", "", "IMDb id of the title (e.g. tt1234567)")
	rootCmd.PersistentFlags().StringVarP(&flagType, "type", "t", "movie", "Media type: movie | tv")
	rootCmd.PersistentFlags().StringVarP(&flagYear, "year", "y", "", "Release year, used to disambiguate")
	rootCmd.PersistentFlags().StringVarP(&flagCountry, "country", "c", "", "Two-letter country code (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output offers as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the resolution cache")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(platformsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagCountry != "" {
		cfg.Country = strings.ToLower(flagCountry)
	}
	if flagDebug {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return nil
}

// openStore opens the durable store, falling back to an in-memory store
// so a broken data dir never blocks resolution.
func openStore() (*store.Store, error) {
	path, err := config.StorePath()
	if err == nil {
		st, openErr := store.Open(path)
		if openErr == nil {
			return st, nil
		}
		logger.Warn("durable store unavailable, using in-memory store", "error", openErr)
	}
	return store.OpenMemory()
}

// adapterChain builds the fallback chain in its fixed order.
func adapterChain(client *http.Client) []provider.Adapter {
	adapters := []provider.Adapter{
		provider.NewUtellyIDLookup(cfg.UtellyBase, cfg.Country, client, logger),
		provider.NewWatchmode(cfg.WatchmodeBase, cfg.WatchmodeAPIKey, cfg.Country, client, logger),
		provider.NewUtellyTitleSearch(cfg.UtellyBase, cfg.Country, client, logger),
	}
	if cfg.ScrapeFallback {
		adapters = append(adapters, provider.NewJustWatch(cfg.ScrapeBase, cfg.Country, client, logger))
	}
	return adapters
}

// newService wires up the resolution service. The caller must invoke the
// returned cleanup function.
func newService() (*resolver.Service, func(), error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}

	ttl := cfg.CacheTTL()
	if flagNoCache {
		ttl = 0
	}

	svc := resolver.New(adapterChain(httputil.NewClient()), st, ttl, logger)
	svc.OpenURL = (&browser.Launcher{Command: cfg.Browser}).Open
	return svc, func() { st.Close() }, nil
}

// identityFromArgs builds the media identity from flags and positional args,
// prompting for a title when none was given and the terminal is interactive.
func identityFromArgs(args []string) (media.Identity, error) {
	title := strings.Join(args, " ")
	if title == "" && flagIMDB == "" {
		if !ui.IsInteractive() {
			return media.Identity{}, fmt.Errorf("no title or --imdb id provided")
		}
		var err error
		title, err = ui.Input("Search")
		if err != nil {
			return media.Identity{}, fmt.Errorf("no search query provided")
		}
	}

	return media.Identity{
		Title:       title,
		Kind:        media.ParseKind(flagType),
		IMDBID:      flagIMDB,
		ReleaseYear: flagYear,
	}, nil
}

// resolveRun is the default command: whereto <title>
func resolveRun(cmd *cobra.Command, args []string) error {
	identity, err := identityFromArgs(args)
	if err != nil {
		return err
	}

	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	result := svc.Resolve(ctx, identity)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Print(ui.RenderOffers(result))
	return nil
}

// resolveTimeout bounds one full resolution round, adapters included.
const resolveTimeout = 30 * time.Second

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("whereto %s\n", Version)
	},
}
