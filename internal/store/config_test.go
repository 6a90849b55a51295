package store

import (
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig_MissingFileIsEmpty(t *testing.T) {
	t.Setenv("SWIPEDECK_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if diff := cmp.Diff(&GlobalConfig{}, cfg); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
	if got := cfg.StackPolicy(); got != TerminalDefaults() {
		t.Fatalf("expected terminal defaults, got %+v", got)
	}
}

func TestSaveConfig_RoundTripsStackOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SWIPEDECK_CONFIG_DIR", dir)

	sc := &StackConfig{}
	for k, v := range map[string]string{
		"endless":         "false",
		"maxVisibleCards": "4",
		"rotationMaxDeg":  "90",
		"animationMs":     "120",
	} {
		if err := sc.Set(k, v); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}
	if err := SaveConfig(&GlobalConfig{DefaultDeck: "/tmp/d.json", Stack: sc}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		t.Fatalf("expected config.json: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DefaultDeck != "/tmp/d.json" {
		t.Fatalf("defaultDeck: got %q", cfg.DefaultDeck)
	}
	pol := cfg.StackPolicy()
	if pol.Endless {
		t.Fatalf("expected endless=false")
	}
	if pol.MaxVisibleCards != 4 {
		t.Fatalf("maxVisibleCards: got %d", pol.MaxVisibleCards)
	}
	if math.Abs(pol.RotationMax-math.Pi/2) > 1e-9 {
		t.Fatalf("rotationMax: got %v", pol.RotationMax)
	}
	if pol.AnimationDuration != 120*time.Millisecond {
		t.Fatalf("animationDuration: got %v", pol.AnimationDuration)
	}
	// Untouched fields keep the terminal defaults.
	if pol.SwipeThreshold != TerminalDefaults().SwipeThreshold {
		t.Fatalf("swipeThreshold: got %v", pol.SwipeThreshold)
	}
}

func TestStackConfigSet_Errors(t *testing.T) {
	cases := []struct {
		key, value string
	}{
		{"endless", "maybe"},
		{"maxVisibleCards", "three"},
		{"scaleFactor", "x"},
		{"nope", "1"},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			var sc StackConfig
			if err := sc.Set(tc.key, tc.value); err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestSaveConfig_ConcurrentWriters_DoesNotCorruptConfig(t *testing.T) {
	t.Setenv("SWIPEDECK_CONFIG_DIR", t.TempDir())

	const n = 32
	errCh := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v := i + 1
			errCh <- SaveConfig(&GlobalConfig{Stack: &StackConfig{MaxVisibleCards: &v}})
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("SaveConfig: %v", err)
		}
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig after concurrent writes: %v", err)
	}
	if cfg.Stack == nil || cfg.Stack.MaxVisibleCards == nil {
		t.Fatalf("expected a stack override to survive, got %+v", cfg)
	}
	if v := *cfg.Stack.MaxVisibleCards; v < 1 || v > n {
		t.Fatalf("unexpected maxVisibleCards %d", v)
	}
}

func TestOpen_DefaultsToConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SWIPEDECK_CONFIG_DIR", dir)

	s, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Dir != filepath.Clean(dir) {
		t.Fatalf("dir: got %q want %q", s.Dir, dir)
	}
	if got, want := s.DecisionsPath(), filepath.Join(dir, "decisions.sqlite"); got != want {
		t.Fatalf("decisions path: got %q want %q", got, want)
	}
}
