// Package file persists the cart record as a JSON document on a local
// filesystem, the service-side analog of the browser's origin-scoped
// storage. The record survives restarts and is shared by every process
// pointed at the same directory, with last-write-wins semantics.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/vegefoods/cart-service/internal/domains/cart/domain"
	"github.com/vegefoods/cart-service/internal/domains/cart/ports"
)

var _ ports.Repository = (*Store)(nil)

// Store reads and writes one JSON record under dir, named after the
// storage key. The filesystem is abstracted through afero so tests run
// against an in-memory fs.
type Store struct {
	fs     afero.Fs
	dir    string
	key    string
	logger *slog.Logger

	mu sync.Mutex
}

// Option configures optional Store collaborators.
type Option func(*Store)

// WithLogger injects a slog logger for parse-failure warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStorageKey overrides the default record key.
func WithStorageKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// NewStore wires a file-backed cart store rooted at dir.
func NewStore(fs afero.Fs, dir string, opts ...Option) (*Store, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	s := &Store{
		fs:     fs,
		dir:    dir,
		key:    domain.StorageKey,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cart data dir: %w", err)
	}
	return s, nil
}

// Path returns the absolute location of the record file, used by the
// change watcher.
func (s *Store) Path() string {
	return filepath.Join(s.dir, s.key+".json")
}

// Load parses the stored record through the sanitizer. A missing file
// yields the empty cart; a corrupt one degrades to the empty cart with
// a warning and is never an error.
func (s *Store) Load(_ context.Context) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := afero.ReadFile(s.fs, s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return domain.EmptyCart(), nil
		}
		return domain.EmptyCart(), fmt.Errorf("read cart record: %w", err)
	}
	var raw any
	if err := json.Unmarshal(payload, &raw); err != nil {
		s.logger.Warn("cart record is corrupt, resetting to empty",
			slog.String("path", s.Path()), slog.String("error", err.Error()))
		return domain.EmptyCart(), nil
	}
	return domain.SanitizeRaw(raw), nil
}

// Save serializes the sanitized cart and replaces the record atomically
// via a temp-file rename, then returns the canonical stored value.
func (s *Store) Save(_ context.Context, cart domain.Cart) (domain.Cart, error) {
	sanitized := domain.Sanitize(cart)
	payload, err := json.Marshal(sanitized)
	if err != nil {
		return domain.EmptyCart(), fmt.Errorf("encode cart record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.Path() + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, payload, 0o644); err != nil {
		return domain.EmptyCart(), fmt.Errorf("write cart record: %w", err)
	}
	if err := s.fs.Rename(tmp, s.Path()); err != nil {
		return domain.EmptyCart(), fmt.Errorf("replace cart record: %w", err)
	}
	return sanitized, nil
}
