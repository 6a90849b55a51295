package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"swipedeck/internal/deck"
	"swipedeck/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App, flags *stackFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings in ~/.swipedeck/config.json",
	}
	cmd.AddCommand(newConfigShowCmd(app, flags))
	cmd.AddCommand(newConfigSetCmd(app))
	return cmd
}

type configView struct {
	Path        string          `json:"path"`
	DefaultDeck string          `json:"defaultDeck,omitempty"`
	Stack       deck.Config     `json:"stack"`
	TUI         store.TUIConfig `json:"tui"`
}

func (v configView) TableHeaders() []string { return []string{"KEY", "VALUE"} }

func (v configView) TableRows() [][]string {
	s := v.Stack
	f := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	return [][]string{
		{"path", v.Path},
		{"defaultDeck", v.DefaultDeck},
		{"stack.endless", strconv.FormatBool(s.Endless)},
		{"stack.maxVisibleCards", strconv.Itoa(s.MaxVisibleCards)},
		{"stack.xCardSpacing", f(s.XCardSpacing)},
		{"stack.yCardSpacing", f(s.YCardSpacing)},
		{"stack.scaleFactor", f(s.ScaleFactor)},
		{"stack.swipeThreshold", f(s.SwipeThreshold)},
		{"stack.rotationMax", f(s.RotationMax)},
		{"stack.animationDuration", s.AnimationDuration.String()},
		{"stack.opacityRate", f(s.OpacityRate)},
		{"stack.dragDeadZone", f(s.DragDeadZone)},
		{"tui.glyphs", v.TUI.Glyphs},
		{"tui.cardWidth", strconv.Itoa(v.TUI.CardWidth)},
		{"tui.cardHeight", strconv.Itoa(v.TUI.CardHeight)},
		{"tui.fps", strconv.Itoa(v.TUI.FPS)},
	}
}

func newConfigShowCmd(app *App, flags *stackFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings (flags, env and config file applied)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gc, cfg, err := effectiveConfig(cmd, flags)
			if err != nil {
				return writeErr(cmd, err)
			}
			path, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			v := configView{Path: path, DefaultDeck: gc.DefaultDeck, Stack: cfg}
			if app.DeckPath != "" {
				v.DefaultDeck = app.DeckPath
			}
			if gc.TUI != nil {
				v.TUI = *gc.TUI
			}
			return writeOut(cmd, app, v)
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key>=<value> | set <key> <value>",
		Short: "Persist a setting",
		Long: strings.TrimSpace(`
Keys:
  defaultDeck
  stack.endless stack.maxVisibleCards stack.xCardSpacing stack.yCardSpacing
  stack.scaleFactor stack.swipeThreshold stack.rotationMaxDeg stack.animationMs
  stack.opacityRate stack.dragDeadZone
  tui.glyphs tui.cardWidth tui.cardHeight tui.fps

The "stack." prefix may be omitted.`),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value, err := splitSetArgs(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			gc, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := applySetting(gc, key, value); err != nil {
				return writeErr(cmd, err)
			}
			if err := gc.StackPolicy().Validate(); err != nil {
				return writeErr(cmd, fmt.Errorf("stack config: %w", err))
			}
			if err := store.SaveConfig(gc); err != nil {
				return writeErr(cmd, err)
			}
			app.log.V(1).Info("config updated", "key", key)
			return writeOut(cmd, app, map[string]any{"key": key, "value": value})
		},
	}
}

func splitSetArgs(args []string) (string, string, error) {
	if len(args) == 2 {
		return strings.TrimSpace(args[0]), strings.TrimSpace(args[1]), nil
	}
	k, v, ok := strings.Cut(args[0], "=")
	if !ok {
		return "", "", errors.New("expected key=value")
	}
	return strings.TrimSpace(k), strings.TrimSpace(v), nil
}

func applySetting(gc *store.GlobalConfig, key, value string) error {
	switch {
	case key == "defaultDeck":
		gc.DefaultDeck = value
		return nil
	case strings.HasPrefix(key, "tui."):
		if gc.TUI == nil {
			gc.TUI = &store.TUIConfig{}
		}
		return setTUI(gc.TUI, strings.TrimPrefix(key, "tui."), value)
	default:
		if gc.Stack == nil {
			gc.Stack = &store.StackConfig{}
		}
		return gc.Stack.Set(strings.TrimPrefix(key, "stack."), value)
	}
}

func setTUI(t *store.TUIConfig, key, value string) error {
	if key == "glyphs" {
		switch value {
		case "unicode", "ascii", "":
			t.Glyphs = value
			return nil
		}
		return fmt.Errorf("glyphs: expected unicode or ascii, got %q", value)
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fmt.Errorf("tui.%s: expected a non-negative integer, got %q", key, value)
	}
	switch key {
	case "cardWidth":
		t.CardWidth = n
	case "cardHeight":
		t.CardHeight = n
	case "fps":
		t.FPS = n
	default:
		return fmt.Errorf("unknown tui option: %s", key)
	}
	return nil
}
