package repository

import (
	"sync"

	"github.com/tahsinhasem/MonopolyDeal/internal/game"
)

// notifier fans committed states out to subscribers, keyed by game id.
// Both stores embed one; callbacks run synchronously on the committing
// goroutine and must not block.
type notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]func(*game.GameState)
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[string]map[int]func(*game.GameState))}
}

func (n *notifier) subscribe(gameID string, fn func(*game.GameState)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs[gameID] == nil {
		n.subs[gameID] = make(map[int]func(*game.GameState))
	}
	id := n.nextID
	n.nextID++
	n.subs[gameID][id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs[gameID], id)
		if len(n.subs[gameID]) == 0 {
			delete(n.subs, gameID)
		}
	}
}

func (n *notifier) publish(state *game.GameState) {
	n.mu.Lock()
	fns := make([]func(*game.GameState), 0, len(n.subs[state.ID]))
	for _, fn := range n.subs[state.ID] {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn(state)
	}
}
