// Package trendcache keeps per-replay trend data points in a badger store,
// so re-running trends only reads replays that were added or changed.
package trendcache

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/dgraph-io/badger/v3"
	jsoniter "github.com/json-iterator/go"

	"github.com/Sumatoshi-tech/skilltracker/pkg/trends"
)

const (
	keyPrefix    = "trend:v1:"
	keySeparator = "|"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrClosed is returned after Close.
var ErrClosed = errors.New("trend cache is closed")

// Store is a trends.Cache on disk.
type Store struct {
	db     *badger.DB
	mu     sync.RWMutex
	closed bool
}

var _ trends.Cache = (*Store)(nil)

// Open opens or creates the store in dir. A nil logger silences badger.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if logger != nil {
		opts = opts.WithLogger(badgerLogger{logger: logger})
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open trend cache %s: %w", dir, err)
	}

	return &Store{db: db}, nil
}

// EncodeKey builds the store key. Modification time is kept to the
// nanosecond so a rewritten file never hits an old entry.
func EncodeKey(k trends.Key) []byte {
	parts := []string{
		k.Path,
		strconv.FormatInt(k.Size, 10),
		strconv.FormatInt(k.ModTime.UnixNano(), 10),
		k.Player,
		strconv.Itoa(k.Cutoff),
	}

	return []byte(keyPrefix + strings.Join(parts, keySeparator))
}

// Get implements trends.Cache.
func (s *Store) Get(key trends.Key) (trends.Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return trends.Entry{}, false, ErrClosed
	}

	var data []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(EncodeKey(key))
		if err != nil {
			return err
		}

		data, err = item.ValueCopy(nil)

		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return trends.Entry{}, false, nil
	}

	if err != nil {
		return trends.Entry{}, false, fmt.Errorf("read trend entry: %w", err)
	}

	var entry trends.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return trends.Entry{}, false, fmt.Errorf("decode trend entry: %w", err)
	}

	return entry, true, nil
}

// Put implements trends.Cache.
func (s *Store) Put(key trends.Key, entry trends.Entry) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrClosed
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode trend entry: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(EncodeKey(key), data)
	})
	if err != nil {
		return fmt.Errorf("write trend entry: %w", err)
	}

	return nil
}

// Len counts the stored entries.
func (s *Store) Len() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, ErrClosed
	}

	n := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count trend entries: %w", err)
	}

	return n, nil
}

// Clear drops every entry.
func (s *Store) Clear() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrClosed
	}

	if err := s.db.DropPrefix([]byte(keyPrefix)); err != nil {
		return fmt.Errorf("clear trend cache: %w", err)
	}

	return nil
}

// Close releases the store. Further calls return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close trend cache: %w", err)
	}

	return nil
}

// badgerLogger routes badger's own logging to slog. Info is demoted to
// debug: badger reports every compaction.
type badgerLogger struct {
	logger *slog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "badger")
}
