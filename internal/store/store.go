package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const decisionsFileName = "decisions.sqlite"

// Store is a data directory. It holds the decision log; decks live wherever
// the user keeps them.
type Store struct {
	Dir string
}

// Open resolves the data directory: an explicit dir wins, otherwise the
// config dir is used.
func Open(dir string) (Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		d, err := ConfigDir()
		if err != nil {
			return Store{}, err
		}
		dir = d
	}
	return Store{Dir: filepath.Clean(dir)}, nil
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store dir is empty")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) DecisionsPath() string {
	return filepath.Join(s.Dir, decisionsFileName)
}
