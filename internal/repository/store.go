// Package repository persists game state documents and provides the
// optimistic-concurrency commit discipline the engine requires: read the
// current state and version, resolve, and commit only if the version is
// unchanged, retrying on conflict.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tahsinhasem/MonopolyDeal/internal/game"
)

// ErrVersionConflict is returned by Save when another commit landed since
// the state was loaded. The caller re-reads and resubmits.
var ErrVersionConflict = errors.New("repository: version conflict")

// ErrNotFound is returned when no game exists for the given id or code.
var ErrNotFound = errors.New("repository: game not found")

// GameStore is the engine's only I/O boundary.
type GameStore interface {
	// Create persists a brand-new game at its initial version.
	Create(ctx context.Context, state *game.GameState) error
	// Load returns the committed state for a game id.
	Load(ctx context.Context, gameID string) (*game.GameState, error)
	// LoadByCode returns the committed state for a join code.
	LoadByCode(ctx context.Context, code string) (*game.GameState, error)
	// Save commits state if its Version still matches the stored row,
	// bumping Version on success; ErrVersionConflict on a stale read.
	Save(ctx context.Context, state *game.GameState) error
	// Subscribe registers fn to observe every committed state of a game.
	// The returned cancel func unregisters it.
	Subscribe(gameID string, fn func(*game.GameState)) (cancel func())
}

// Apply computes a new state from a loaded snapshot. Returning an error
// aborts the commit; returning (nil, nil) commits nothing (used when an
// action is rejected and the caller only wants the rejection).
type Apply func(*game.GameState) (*game.GameState, error)

// Commit runs the load-resolve-save loop, retrying on version conflicts.
// A stale read simply fails its precondition checks against the fresh
// state on the next attempt.
func Commit(ctx context.Context, store GameStore, gameID string, retries int, apply Apply) (*game.GameState, error) {
	if retries < 1 {
		retries = 1
	}
	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		state, err := store.Load(ctx, gameID)
		if err != nil {
			return nil, err
		}
		next, err := apply(state)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return state, nil
		}
		if err := store.Save(ctx, next); err != nil {
			if errors.Is(err, ErrVersionConflict) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return next, nil
	}
	return nil, fmt.Errorf("commit for game %s: %w", gameID, lastErr)
}
