package cli

import (
	"fmt"
	"math"
	"time"

	"swipedeck/internal/deck"
	"swipedeck/internal/store"

	"github.com/spf13/cobra"
)

// stackFlags are the stack policy flags. Only flags given on the command line
// override the config file.
type stackFlags struct {
	endless     bool
	maxVisible  int
	xSpacing    float64
	ySpacing    float64
	scale       float64
	threshold   float64
	rotationDeg float64
	duration    time.Duration
	opacityRate float64
}

func (f *stackFlags) register(cmd *cobra.Command) {
	def := store.TerminalDefaults()
	fs := cmd.PersistentFlags()
	fs.BoolVar(&f.endless, "endless", def.Endless, "Loop the deck instead of running out")
	fs.IntVar(&f.maxVisible, "max-visible", def.MaxVisibleCards, "Cards visible at once")
	fs.Float64Var(&f.xSpacing, "x-spacing", def.XCardSpacing, "Horizontal offset per depth level (cells)")
	fs.Float64Var(&f.ySpacing, "y-spacing", def.YCardSpacing, "Vertical offset per depth level (cells)")
	fs.Float64Var(&f.scale, "scale", def.ScaleFactor, "Shrink per depth level")
	fs.Float64Var(&f.threshold, "threshold", def.SwipeThreshold, "Drag distance that commits a swipe (cells)")
	fs.Float64Var(&f.rotationDeg, "rotation", def.RotationMax*180/math.Pi, "Tilt at full drag strength (degrees)")
	fs.DurationVar(&f.duration, "duration", def.AnimationDuration, "Animation duration")
	fs.Float64Var(&f.opacityRate, "opacity-rate", def.OpacityRate, "Fade at full drag strength (0-1)")
}

func (f *stackFlags) apply(cmd *cobra.Command, cfg deck.Config) deck.Config {
	changed := cmd.Flags().Changed
	if changed("endless") {
		cfg.Endless = f.endless
	}
	if changed("max-visible") {
		cfg.MaxVisibleCards = f.maxVisible
	}
	if changed("x-spacing") {
		cfg.XCardSpacing = f.xSpacing
	}
	if changed("y-spacing") {
		cfg.YCardSpacing = f.ySpacing
	}
	if changed("scale") {
		cfg.ScaleFactor = f.scale
	}
	if changed("threshold") {
		cfg.SwipeThreshold = f.threshold
	}
	if changed("rotation") {
		cfg.RotationMax = f.rotationDeg * math.Pi / 180
	}
	if changed("duration") {
		cfg.AnimationDuration = f.duration
	}
	if changed("opacity-rate") {
		cfg.OpacityRate = f.opacityRate
	}
	return cfg
}

// effectiveConfig layers flags over the config file over terminal defaults.
func effectiveConfig(cmd *cobra.Command, f *stackFlags) (*store.GlobalConfig, deck.Config, error) {
	gc, err := store.LoadConfig()
	if err != nil {
		return nil, deck.Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg := f.apply(cmd, gc.StackPolicy())
	if err := cfg.Validate(); err != nil {
		return nil, deck.Config{}, fmt.Errorf("stack config: %w", err)
	}
	return gc, cfg, nil
}
