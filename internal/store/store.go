// Package store owns the persisted application state. Every read and write
// goes through one Store so mutations are serialized and all-or-nothing.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mcoot/hockeytracker/internal/model"
	"github.com/mcoot/hockeytracker/internal/storage"
)

// ErrNoChange may be returned by an Update transform to skip saving.
// Update itself then returns nil.
var ErrNoChange = errors.New("no change")

// Store is the single owner of the application state blob
type Store struct {
	mu      sync.Mutex
	storage storage.Storage
	logger  *slog.Logger
	state   *model.AppState // nil until first load
}

// New creates a Store over the given storage backend
func New(storage storage.Storage, logger *slog.Logger) *Store {
	return &Store{
		storage: storage,
		logger:  logger,
	}
}

// load returns the cached state, reading it from storage on first use.
// Callers must hold s.mu.
func (s *Store) load(ctx context.Context) (*model.AppState, error) {
	if s.state != nil {
		return s.state, nil
	}

	data, err := s.storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}

	state, err := storage.Decode(data)
	if err != nil {
		s.logger.Warn("stored state unreadable, starting from defaults",
			slog.String("error", err.Error()),
		)
	}
	s.state = state
	return s.state, nil
}

// View runs fn against a private copy of the current state
func (s *Store) View(ctx context.Context, fn func(state *model.AppState) error) error {
	s.mu.Lock()
	state, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	snapshot := state.Clone()
	s.mu.Unlock()

	return fn(snapshot)
}

// Update runs fn against a copy of the state and, if it succeeds, saves the
// copy and makes it current. On any error the previous state is kept.
func (s *Store) Update(ctx context.Context, fn func(state *model.AppState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return err
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		if errors.Is(err, ErrNoChange) {
			return nil
		}
		return err
	}

	data, err := storage.Encode(next)
	if err != nil {
		return err
	}
	if err := s.storage.Save(ctx, data); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	s.state = next
	return nil
}

// Reload drops the cached state so the next access reads storage again
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = nil
}
