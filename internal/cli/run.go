package cli

import (
	"context"

	"swipedeck/internal/store"
	"swipedeck/internal/tui"

	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, app *App, flags *stackFlags) error {
	gc, cfg, err := effectiveConfig(cmd, flags)
	if err != nil {
		return writeErr(cmd, err)
	}
	d, err := loadDeck(app, gc)
	if err != nil {
		return writeErr(cmd, err)
	}

	opts := tui.Options{
		Deck:  d,
		Stack: cfg,
		Log:   app.log,
	}
	if gc.TUI != nil {
		opts.UI = *gc.TUI
	}

	// A missing decision log costs history, not the session.
	st, err := store.Open(app.Dir)
	if err == nil {
		var dl *store.DecisionLog
		dl, err = st.OpenDecisionLog(context.Background())
		if err == nil {
			defer dl.Close()
			opts.Subscriber = dl.Recorder(d, app.log.WithName("decisions"))
		}
	}
	if err != nil {
		app.log.Error(err, "decision log unavailable")
	}

	app.log.Info("starting", "deck", d.Name, "cards", len(d.Cards), "endless", cfg.Endless)
	return tui.Run(opts)
}
