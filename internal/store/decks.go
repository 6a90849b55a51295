package store

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"swipedeck/internal/deck"
)

//go:embed sample/*.json
var sampleFS embed.FS

// SampleDeckName is the embedded deck used when no deck file is given.
const SampleDeckName = "go-proverbs"

var (
	ErrDeckNotFound = errors.New("deck not found")
	ErrEmptyDeck    = errors.New("deck has no cards")
)

// Face is one side of a card in a deck file.
type Face struct {
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
}

// CardEntry is a card in a deck file. The front face is inlined.
type CardEntry struct {
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
	Back  *Face  `json:"back,omitempty"`
}

// Deck is a JSON deck file. It is the stack's content source in the TUI and
// in simulations.
type Deck struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Cards       []CardEntry `json:"cards"`
}

// TextContent is a card face made of a title and a body.
type TextContent struct {
	T string
	B string
}

func (c TextContent) Title() string { return c.T }
func (c TextContent) Body() string  { return c.B }

// LoadDeck reads a deck file; an empty path loads the embedded sample deck.
func LoadDeck(path string) (*Deck, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return SampleDeck()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDeckNotFound, path)
		}
		return nil, err
	}
	d, err := ParseDeck(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return d, nil
}

func SampleDeck() (*Deck, error) {
	b, err := sampleFS.ReadFile("sample/" + SampleDeckName + ".json")
	if err != nil {
		return nil, fmt.Errorf("read embedded deck %s: %w", SampleDeckName, err)
	}
	return ParseDeck(b)
}

func ParseDeck(b []byte) (*Deck, error) {
	var d Deck
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parse deck: %w", err)
	}
	if len(d.Cards) == 0 {
		return nil, ErrEmptyDeck
	}
	for i, c := range d.Cards {
		if strings.TrimSpace(c.Title) == "" {
			return nil, fmt.Errorf("card %d: missing title", i)
		}
	}
	return &d, nil
}

func (d *Deck) Count(*deck.Stack) int { return len(d.Cards) }

func (d *Deck) Card(s *deck.Stack, index int) *deck.Card {
	if index < 0 || index >= len(d.Cards) {
		return nil
	}
	entry := d.Cards[index]
	c := s.DequeueReusableCard()
	c.Front = TextContent{T: entry.Title, B: entry.Body}
	return c
}

func (d *Deck) BackContent(_ *deck.Stack, index int) deck.Content {
	if index < 0 || index >= len(d.Cards) || d.Cards[index].Back == nil {
		return nil
	}
	back := d.Cards[index].Back
	return TextContent{T: back.Title, B: back.Body}
}

// Title returns the front title of card index, or "" when out of range.
func (d *Deck) Title(index int) string {
	if index < 0 || index >= len(d.Cards) {
		return ""
	}
	return d.Cards[index].Title
}

// Markdown renders the deck as a markdown document, one section per card.
func (d *Deck) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.Name)
	if d.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", d.Description)
	}
	for i, c := range d.Cards {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, c.Title)
		if c.Body != "" {
			fmt.Fprintf(&b, "%s\n\n", c.Body)
		}
		if c.Back != nil {
			fmt.Fprintf(&b, "> **%s**", c.Back.Title)
			if c.Back.Body != "" {
				fmt.Fprintf(&b, " %s", c.Back.Body)
			}
			b.WriteString("\n\n")
		}
	}
	return b.String()
}
