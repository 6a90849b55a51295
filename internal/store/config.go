package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"swipedeck/internal/deck"
)

type GlobalConfig struct {
	// DefaultDeck is the deck file opened when no --deck is given.
	// Empty means the embedded sample deck.
	DefaultDeck string `json:"defaultDeck,omitempty"`

	// Stack overrides the stack policy. Unset fields keep TerminalDefaults.
	Stack *StackConfig `json:"stack,omitempty"`

	// TUI holds optional user preferences for the interactive TUI.
	TUI *TUIConfig `json:"tui,omitempty"`
}

// StackConfig is the persisted form of deck.Config. Every field is optional.
type StackConfig struct {
	Endless         *bool    `json:"endless,omitempty"`
	MaxVisibleCards *int     `json:"maxVisibleCards,omitempty"`
	XCardSpacing    *float64 `json:"xCardSpacing,omitempty"`
	YCardSpacing    *float64 `json:"yCardSpacing,omitempty"`
	ScaleFactor     *float64 `json:"scaleFactor,omitempty"`
	SwipeThreshold  *float64 `json:"swipeThreshold,omitempty"`
	// RotationMax is in degrees; it is easier to write by hand than radians.
	RotationMaxDeg *float64 `json:"rotationMaxDeg,omitempty"`
	// AnimationMS is the animation duration in milliseconds.
	AnimationMS  *int     `json:"animationMs,omitempty"`
	OpacityRate  *float64 `json:"opacityRate,omitempty"`
	DragDeadZone *float64 `json:"dragDeadZone,omitempty"`
}

type TUIConfig struct {
	// Glyphs selects the glyph set ("unicode" or "ascii").
	Glyphs string `json:"glyphs,omitempty"`
	// CardWidth and CardHeight size the front card in cells.
	CardWidth  int `json:"cardWidth,omitempty"`
	CardHeight int `json:"cardHeight,omitempty"`
	// FPS caps the animation frame rate.
	FPS int `json:"fps,omitempty"`
}

// TerminalDefaults is deck.DefaultConfig scaled to terminal cells, where a
// card is a few dozen columns wide rather than hundreds of points.
func TerminalDefaults() deck.Config {
	cfg := deck.DefaultConfig()
	cfg.XCardSpacing = 2
	cfg.YCardSpacing = 1
	cfg.ScaleFactor = 0.06
	cfg.SwipeThreshold = 14
	cfg.AnimationDuration = 250 * time.Millisecond
	cfg.OpacityRate = 0.3
	cfg.DragDeadZone = 1
	return cfg
}

// Apply overlays the set fields of sc onto cfg.
func (sc *StackConfig) Apply(cfg deck.Config) deck.Config {
	if sc == nil {
		return cfg
	}
	if sc.Endless != nil {
		cfg.Endless = *sc.Endless
	}
	if sc.MaxVisibleCards != nil {
		cfg.MaxVisibleCards = *sc.MaxVisibleCards
	}
	if sc.XCardSpacing != nil {
		cfg.XCardSpacing = *sc.XCardSpacing
	}
	if sc.YCardSpacing != nil {
		cfg.YCardSpacing = *sc.YCardSpacing
	}
	if sc.ScaleFactor != nil {
		cfg.ScaleFactor = *sc.ScaleFactor
	}
	if sc.SwipeThreshold != nil {
		cfg.SwipeThreshold = *sc.SwipeThreshold
	}
	if sc.RotationMaxDeg != nil {
		cfg.RotationMax = *sc.RotationMaxDeg * math.Pi / 180
	}
	if sc.AnimationMS != nil {
		cfg.AnimationDuration = time.Duration(*sc.AnimationMS) * time.Millisecond
	}
	if sc.OpacityRate != nil {
		cfg.OpacityRate = *sc.OpacityRate
	}
	if sc.DragDeadZone != nil {
		cfg.DragDeadZone = *sc.DragDeadZone
	}
	return cfg
}

// Set parses value for the option named key (the JSON field name).
func (sc *StackConfig) Set(key, value string) error {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	parseFloat := func() (*float64, error) {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return &f, nil
	}
	parseInt := func() (*int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return &n, nil
	}
	var err error
	switch key {
	case "endless":
		b, perr := strconv.ParseBool(value)
		if perr != nil {
			return fmt.Errorf("%s: %w", key, perr)
		}
		sc.Endless = &b
	case "maxVisibleCards":
		sc.MaxVisibleCards, err = parseInt()
	case "xCardSpacing":
		sc.XCardSpacing, err = parseFloat()
	case "yCardSpacing":
		sc.YCardSpacing, err = parseFloat()
	case "scaleFactor":
		sc.ScaleFactor, err = parseFloat()
	case "swipeThreshold":
		sc.SwipeThreshold, err = parseFloat()
	case "rotationMaxDeg":
		sc.RotationMaxDeg, err = parseFloat()
	case "animationMs":
		sc.AnimationMS, err = parseInt()
	case "opacityRate":
		sc.OpacityRate, err = parseFloat()
	case "dragDeadZone":
		sc.DragDeadZone, err = parseFloat()
	default:
		return fmt.Errorf("unknown stack option: %s", key)
	}
	return err
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.swipedeck).
	if v := strings.TrimSpace(os.Getenv("SWIPEDECK_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".swipedeck"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// Unique temp name + rename so a TUI and a CLI writing at once can't corrupt the file.
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// StackPolicy returns cfg's stack overrides applied to TerminalDefaults.
func (cfg *GlobalConfig) StackPolicy() deck.Config {
	if cfg == nil {
		return TerminalDefaults()
	}
	return cfg.Stack.Apply(TerminalDefaults())
}
