package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
	"time"

	"swipedeck/internal/deck"

	"github.com/go-logr/logr"
	_ "modernc.org/sqlite"
)

// Decision is one completed swipe.
type Decision struct {
	ID        string    `json:"id"`
	Deck      string    `json:"deck"`
	Index     int       `json:"index"`
	Title     string    `json:"title"`
	Direction string    `json:"direction"`
	DecidedAt time.Time `json:"decidedAt"`
}

// DecisionLog is an append-only SQLite log of swipes. It records outcomes,
// not stack state: nothing here is used to restore a stack.
type DecisionLog struct {
	db *sql.DB
}

func OpenDecisionLog(ctx context.Context, path string) (*DecisionLog, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets `decisions list` read while the TUI is writing; busy_timeout avoids
	// "database is locked" when both touch the file at once.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("open decision log: %w", err)
		}
	}
	if err := migrateDecisions(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate decision log: %w", err)
	}
	return &DecisionLog{db: db}, nil
}

// OpenDecisionLog opens the store's decision log, creating the directory.
func (s Store) OpenDecisionLog(ctx context.Context) (*DecisionLog, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return OpenDecisionLog(ctx, s.DecisionsPath())
}

func migrateDecisions(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS decisions (
			decision_id TEXT PRIMARY KEY,
			deck TEXT NOT NULL,
			card_index INTEGER NOT NULL,
			title TEXT NOT NULL,
			direction TEXT NOT NULL,
			decided_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_deck ON decisions(deck, decided_at_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (l *DecisionLog) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Record appends d, filling in ID and DecidedAt when unset.
func (l *DecisionLog) Record(ctx context.Context, d Decision) (Decision, error) {
	if d.Direction != deck.Left.String() && d.Direction != deck.Right.String() {
		return Decision{}, fmt.Errorf("invalid direction %q", d.Direction)
	}
	if d.ID == "" {
		id, err := newDecisionID()
		if err != nil {
			return Decision{}, err
		}
		d.ID = id
	}
	if d.DecidedAt.IsZero() {
		d.DecidedAt = time.Now()
	}
	d.DecidedAt = d.DecidedAt.UTC().Truncate(time.Millisecond)
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO decisions(decision_id, deck, card_index, title, direction, decided_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
		d.ID, d.Deck, d.Index, d.Title, d.Direction, d.DecidedAt.UnixMilli(),
	)
	if err != nil {
		return Decision{}, fmt.Errorf("record decision: %w", err)
	}
	return d, nil
}

type DecisionFilter struct {
	// Deck restricts results to one deck; empty means every deck.
	Deck string
	// Limit caps the result count; <= 0 means no cap.
	Limit int
}

// List returns decisions newest first.
func (l *DecisionLog) List(ctx context.Context, f DecisionFilter) ([]Decision, error) {
	q := `SELECT decision_id, deck, card_index, title, direction, decided_at_unixms FROM decisions`
	var args []any
	if strings.TrimSpace(f.Deck) != "" {
		q += ` WHERE deck = ?`
		args = append(args, f.Deck)
	}
	q += ` ORDER BY decided_at_unixms DESC, rowid DESC`
	if f.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, f.Limit)
	}
	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Decision
	for rows.Next() {
		var d Decision
		var ms int64
		if err := rows.Scan(&d.ID, &d.Deck, &d.Index, &d.Title, &d.Direction, &ms); err != nil {
			return nil, err
		}
		d.DecidedAt = time.UnixMilli(ms).UTC()
		out = append(out, d)
	}
	return out, rows.Err()
}

// Tally counts decisions per direction for a deck.
func (l *DecisionLog) Tally(ctx context.Context, deckName string) (map[string]int, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT direction, COUNT(*) FROM decisions WHERE deck = ? GROUP BY direction`, deckName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int{deck.Left.String(): 0, deck.Right.String(): 0}
	for rows.Next() {
		var dir string
		var n int
		if err := rows.Scan(&dir, &n); err != nil {
			return nil, err
		}
		out[dir] = n
	}
	return out, rows.Err()
}

// Recorder returns a subscriber that logs every completed swipe on d. Write
// failures are logged and otherwise ignored; a broken log must not stop the
// stack.
func (l *DecisionLog) Recorder(d *Deck, log logr.Logger) deck.Subscriber {
	return deck.Callbacks{
		DidSwipe: func(index int, dir deck.Direction) {
			if l == nil || d == nil {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_, err := l.Record(ctx, Decision{
				Deck:      d.Name,
				Index:     index,
				Title:     d.Title(index),
				Direction: dir.String(),
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Error(err, "record decision", "deck", d.Name, "index", index)
			}
		},
	}
}

// newDecisionID returns dec-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
func newDecisionID() (string, error) {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	return "dec-" + strings.ToLower(enc.EncodeToString(b[:])), nil
}
