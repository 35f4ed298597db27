package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/tahsinhasem/MonopolyDeal/internal/game"
)

// MemoryStore is a process-local GameStore with the same commit contract
// as PostgresStore. It backs tests and the single-node demo configuration.
type MemoryStore struct {
	mu     sync.RWMutex
	games  map[string]*game.GameState
	notify *notifier
	logger *zap.Logger
}

var _ GameStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStore{
		games:  make(map[string]*game.GameState),
		notify: newNotifier(),
		logger: logger,
	}
}

func (s *MemoryStore) Create(_ context.Context, state *game.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.games[state.ID]; exists {
		return fmt.Errorf("game %s already exists", state.ID)
	}
	s.games[state.ID] = state.Clone()
	return nil
}

func (s *MemoryStore) Load(_ context.Context, gameID string) (*game.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.games[gameID]
	if !ok {
		return nil, ErrNotFound
	}
	return state.Clone(), nil
}

func (s *MemoryStore) LoadByCode(_ context.Context, code string) (*game.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, state := range s.games {
		if strings.EqualFold(state.Code, code) {
			return state.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) Save(_ context.Context, state *game.GameState) error {
	s.mu.Lock()
	current, ok := s.games[state.ID]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	if current.Version != state.Version {
		s.mu.Unlock()
		return ErrVersionConflict
	}
	committed := state.Clone()
	committed.Version = state.Version + 1
	s.games[state.ID] = committed
	s.mu.Unlock()

	if violations := game.CheckInvariants(committed); len(violations) > 0 {
		for _, v := range violations {
			s.logger.Error("invariant violation in committed state",
				zap.String("game_id", state.ID),
				zap.String("rule", v.Rule),
				zap.String("detail", v.Detail),
			)
		}
	}
	state.Version = committed.Version
	s.notify.publish(committed.Clone())
	return nil
}

func (s *MemoryStore) Subscribe(gameID string, fn func(*game.GameState)) func() {
	return s.notify.subscribe(gameID, fn)
}
