package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/magic"
)

const keyMagicPrefix = "magic"

var _ magic.Cache = (*Store)(nil)

// MagicRecord is the stored form of one discovered magic.
type MagicRecord struct {
	Family  string    `json:"family"`
	Square  string    `json:"square"`
	Magic   uint64    `json:"magic"`
	Bits    uint8     `json:"bits"`
	SavedAt time.Time `json:"saved_at"`
}

// Store wraps BadgerDB as a resumable cache for the magic search.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenDefault opens the store in the platform data directory.
func OpenDefault() (*Store, error) {
	dir, err := GetMagicDBDir()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

// OpenInMemory opens a store that is discarded on Close.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func magicPrefix() string {
	return fmt.Sprintf("%s/v%d/", keyMagicPrefix, board.MagicVersion)
}

func magicKey(f board.Family, sq board.Square) []byte {
	return []byte(magicPrefix() + f.String() + "/" + sq.String())
}

// Load returns the cached magic for sq, if any.
func (s *Store) Load(f board.Family, sq board.Square) (uint64, bool, error) {
	var rec MagicRecord
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(magicKey(f, sq))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil || !found {
		return 0, false, err
	}
	return rec.Magic, true, nil
}

// Save stores the magic for sq, replacing any previous entry.
func (s *Store) Save(f board.Family, sq board.Square, magic uint64, bits uint8) error {
	data, err := json.Marshal(MagicRecord{
		Family:  f.String(),
		Square:  sq.String(),
		Magic:   magic,
		Bits:    bits,
		SavedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(magicKey(f, sq), data)
	})
}

// Records returns every magic cached for the current dataset version.
func (s *Store) Records() ([]MagicRecord, error) {
	var records []MagicRecord
	prefix := []byte(magicPrefix())

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec MagicRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})

	return records, err
}

// Reset drops every cached magic of the current dataset version.
func (s *Store) Reset() error {
	prefix := []byte(magicPrefix())

	return s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}
