package storage

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chesscore/internal/engine"
)

// Storage keys
const (
	prefixProfile = "profile/"
	prefixGame    = "game/"
	keyStats      = "stats"
	keyGameSeq    = "seq/game"
)

// ErrNotFound is returned when a stored record does not exist.
var ErrNotFound = errors.New("not found")

// GameStats stores results over all recorded games.
type GameStats struct {
	GamesPlayed int `json:"games_played"`
	WhiteWins   int `json:"white_wins"`
	BlackWins   int `json:"black_wins"`
	Draws       int `json:"draws"`
	Unfinished  int `json:"unfinished"`
	TotalPlies  int `json:"total_plies"`
}

// WhiteScore returns White's score as a percentage of finished games (0-100),
// counting draws as half.
func (s *GameStats) WhiteScore() float64 {
	finished := s.WhiteWins + s.BlackWins + s.Draws
	if finished == 0 {
		return 0
	}
	return (float64(s.WhiteWins) + float64(s.Draws)/2) / float64(finished) * 100
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	seq *badger.Sequence
}

// NewStorage opens the database in the application data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens or creates a database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", dir, err)
	}

	seq, err := db.GetSequence([]byte(keyGameSeq), 16)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storage{db: db, seq: seq}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	var errs []error
	if s.seq != nil {
		errs = append(errs, s.seq.Release())
	}
	errs = append(errs, s.db.Close())
	return errors.Join(errs...)
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the value at key into v. A missing key leaves v untouched and
// returns ErrNotFound.
func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// SaveParams stores p under the profile name.
func (s *Storage) SaveParams(name string, p *engine.Params) error {
	if name == "" {
		return fmt.Errorf("empty profile name")
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return s.put(prefixProfile+name, p)
}

// LoadParams loads the named profile, returns defaults if not found.
// Stored fields are decoded over the defaults.
func (s *Storage) LoadParams(name string) (*engine.Params, error) {
	p := engine.DefaultParams()
	err := s.get(prefixProfile+name, p)
	if errors.Is(err, ErrNotFound) {
		return p, nil // Use defaults
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile %q: %w", name, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}
	return p, nil
}

// Profiles returns the stored profile names in order.
func (s *Storage) Profiles() ([]string, error) {
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixProfile)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			names = append(names, strings.TrimPrefix(string(it.Item().Key()), prefixProfile))
		}
		return nil
	})
	sort.Strings(names)
	return names, err
}

// DeleteParams removes a profile.
func (s *Storage) DeleteParams(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(prefixProfile + name))
	})
}

func gameKey(id uint64) []byte {
	key := make([]byte, len(prefixGame)+8)
	copy(key, prefixGame)
	binary.BigEndian.PutUint64(key[len(prefixGame):], id)
	return key
}

// SaveGame stores a game record, updates the statistics and returns the
// record's id. Ids increase in the order games are saved.
func (s *Storage) SaveGame(rec engine.GameRecord) (uint64, error) {
	id, err := s.seq.Next()
	if err != nil {
		return 0, err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return 0, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(gameKey(id), data); err != nil {
			return err
		}

		stats := &GameStats{}
		item, err := txn.Get([]byte(keyStats))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
		case err != nil:
			return err
		default:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, stats)
			}); err != nil {
				return err
			}
		}

		stats.GamesPlayed++
		stats.TotalPlies += len(rec.Moves)
		switch rec.Result {
		case "1-0":
			stats.WhiteWins++
		case "0-1":
			stats.BlackWins++
		case "1/2-1/2":
			stats.Draws++
		default:
			stats.Unfinished++
		}

		out, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), out)
	})
	return id, err
}

// LoadGame returns the game saved under id.
func (s *Storage) LoadGame(id uint64) (engine.GameRecord, error) {
	var rec engine.GameRecord
	err := s.get(string(gameKey(id)), &rec)
	if err != nil {
		return engine.GameRecord{}, fmt.Errorf("game %d: %w", id, err)
	}
	return rec, nil
}

// Games returns up to limit of the most recently saved games, newest first.
// A limit of zero returns all games.
func (s *Storage) Games(limit int) ([]engine.GameRecord, error) {
	var games []engine.GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixGame)
		seek := append(bytes.Clone(prefix), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			var rec engine.GameRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			games = append(games, rec)
			if limit > 0 && len(games) == limit {
				break
			}
		}
		return nil
	})
	return games, err
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := &GameStats{}
	err := s.get(keyStats, stats)
	if errors.Is(err, ErrNotFound) {
		return stats, nil // Use empty stats
	}
	return stats, err
}
