package cli

import (
	"fmt"
	"os"
	"strings"

	"swipedeck/internal/format"
	"swipedeck/internal/logging"
	"swipedeck/internal/store"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	DeckPath   string
	PrettyJSON bool
	Format     string
	LogLevel   string
	DebugLog   string

	log      logr.Logger
	closeLog func()
}

func NewRootCmd() *cobra.Command {
	app := &App{log: logr.Discard(), closeLog: func() {}}
	stack := &stackFlags{}

	cmd := &cobra.Command{
		Use:          "swipedeck",
		Short:        "Swipe through a deck of cards in the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Swipe the built-in sample deck (drag with the mouse or use ←/→)
  swipedeck

  # Your own deck, finite, two cards deep
  swipedeck --deck capitals.json --endless=false --max-visible 2

  # What did I swipe?
  swipedeck decisions list --format table

  # Replay swipes without a terminal
  swipedeck simulate --swipes r,l,r:5,t
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app, stack)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// The TUI owns the terminal, so it only logs to --debug-log.
		path := app.DebugLog
		if path == "" && cmd != cmd.Root() {
			path = "-"
		}
		log, closeLog, err := logging.New(app.LogLevel, path)
		if err != nil {
			return err
		}
		app.log = log.WithName("swipedeck")
		app.closeLog = closeLog
		return nil
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		app.closeLog()
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("SWIPEDECK_DIR", ""), "Data dir holding the decision log (default: the config dir)")
	cmd.PersistentFlags().StringVar(&app.DeckPath, "deck", envOr("SWIPEDECK_DECK", ""), "Deck JSON file (default: config defaultDeck, then the built-in sample)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("SWIPEDECK_FORMAT", "json"), "Output format (json|edn|table)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("SWIPEDECK_LOG_LEVEL", "warn"), "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&app.DebugLog, "debug-log", envOr("SWIPEDECK_DEBUG_LOG", ""), "Write logs to this file")
	stack.register(cmd)

	cmd.AddCommand(newDecksCmd(app))
	cmd.AddCommand(newDecisionsCmd(app))
	cmd.AddCommand(newSimulateCmd(app, stack))
	cmd.AddCommand(newConfigCmd(app, stack))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// loadDeck resolves --deck, then the configured default deck, then the
// built-in sample.
func loadDeck(app *App, cfg *store.GlobalConfig) (*store.Deck, error) {
	path := app.DeckPath
	if path == "" && cfg != nil {
		path = cfg.DefaultDeck
	}
	d, err := store.LoadDeck(path)
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}
	return d, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
