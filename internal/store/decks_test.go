package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"swipedeck/internal/deck"
)

func TestSampleDeck_Loads(t *testing.T) {
	d, err := LoadDeck("")
	if err != nil {
		t.Fatalf("LoadDeck: %v", err)
	}
	if d.Name != SampleDeckName {
		t.Fatalf("name: got %q", d.Name)
	}
	if len(d.Cards) < 3 {
		t.Fatalf("expected a few sample cards, got %d", len(d.Cards))
	}
}

func TestLoadDeck_NotFound(t *testing.T) {
	_, err := LoadDeck(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, ErrDeckNotFound) {
		t.Fatalf("expected ErrDeckNotFound, got %v", err)
	}
}

func TestLoadDeck_NameFromFileName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capitals.json")
	body := `{"cards":[{"title":"Paris","back":{"title":"France"}},{"title":"Lima"}]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := LoadDeck(path)
	if err != nil {
		t.Fatalf("LoadDeck: %v", err)
	}
	if d.Name != "capitals" {
		t.Fatalf("name: got %q", d.Name)
	}
}

func TestParseDeck_Rejects(t *testing.T) {
	if _, err := ParseDeck([]byte(`{"name":"x","cards":[]}`)); !errors.Is(err, ErrEmptyDeck) {
		t.Fatalf("expected ErrEmptyDeck, got %v", err)
	}
	if _, err := ParseDeck([]byte(`{"cards":[{"title":" "}]}`)); err == nil || !strings.Contains(err.Error(), "missing title") {
		t.Fatalf("expected missing title error, got %v", err)
	}
	if _, err := ParseDeck([]byte(`{`)); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestDeck_DrivesStack(t *testing.T) {
	d, err := ParseDeck([]byte(`{"name":"t","cards":[
		{"title":"a","body":"A","back":{"title":"a2"}},
		{"title":"b"},
		{"title":"c"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	cfg := deck.DefaultConfig()
	cfg.Endless = false
	cfg.MaxVisibleCards = 2
	s := deck.New(cfg, deck.NewSurface(40, 20), nil)
	s.SetSource(d)
	s.Reload()

	w := s.Window()
	if len(w) != 2 {
		t.Fatalf("window: got %d cards", len(w))
	}
	front := w[0]
	if front.Front.Title() != "a" || front.Front.Body() != "A" {
		t.Fatalf("front content: got %q/%q", front.Front.Title(), front.Front.Body())
	}
	if front.Back == nil || front.Back.Title() != "a2" {
		t.Fatalf("expected back face on card 0")
	}
	if w[1].Back != nil {
		t.Fatalf("card 1 has no back in the deck, got %v", w[1].Back)
	}

	if !s.Swipe(deck.Right) {
		t.Fatalf("swipe refused")
	}
	if got := s.Front().Front.Title(); got != "b" {
		t.Fatalf("front after swipe: got %q", got)
	}
	if got := d.Title(2); got != "c" {
		t.Fatalf("Title(2): got %q", got)
	}
	if got := d.Title(9); got != "" {
		t.Fatalf("Title out of range: got %q", got)
	}
}

func TestDeck_Markdown(t *testing.T) {
	d := &Deck{Name: "n", Description: "desc", Cards: []CardEntry{
		{Title: "one", Body: "first", Back: &Face{Title: "uno"}},
	}}
	md := d.Markdown()
	for _, want := range []string{"# n", "desc", "## 1. one", "first", "> **uno**"} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}
