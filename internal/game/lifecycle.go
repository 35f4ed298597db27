package game

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"github.com/tahsinhasem/MonopolyDeal/internal/cards"
)

const gameCodeLength = 6

const gameCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewGameCode returns a short join code for a new match.
func NewGameCode() string {
	var b strings.Builder
	for i := 0; i < gameCodeLength; i++ {
		b.WriteByte(gameCodeAlphabet[rand.IntN(len(gameCodeAlphabet))])
	}
	return b.String()
}

// NewGame creates a fresh match with a shuffled draw pile and the host
// seated with an opening hand. The game waits for more players until the
// host starts it.
func NewGame(hostID, hostName string) *GameState {
	return NewGameFromDeck(hostID, hostName, cards.NewDeck())
}

// NewGameFromDeck is NewGame with a caller-supplied draw pile, used by
// tests that need reproducible deals.
func NewGameFromDeck(hostID, hostName string, deck []string) *GameState {
	g := &GameState{
		ID:        uuid.NewString(),
		Code:      NewGameCode(),
		Status:    StatusWaiting,
		Players:   make(map[string]*Player),
		HostID:    hostID,
		DrawPile:  deck,
		TurnPhase: PhaseDraw,
		Version:   1,
		CreatedAt: nowUTC(),
		UpdatedAt: nowUTC(),
	}
	g.seatPlayer(hostID, hostName, true)
	return g
}

// seatPlayer deals an opening hand and appends the player to turn order.
func (g *GameState) seatPlayer(id, name string, host bool) *Player {
	p := &Player{
		ID:           id,
		DisplayName:  name,
		Bank:         []string{},
		Properties:   make(map[cards.Color][]string),
		Improvements: make(map[cards.Color]*Improvement),
		IsHost:       host,
	}
	g.drawFromPile(p, cards.InitialHandSize)
	g.Players[id] = p
	g.Seats = append(g.Seats, id)
	return p
}

// AddPlayer seats a new player. Joining is only possible while the game is
// waiting and below the table limit.
func (g *GameState) AddPlayer(id, name string) error {
	if g.Status != StatusWaiting {
		return fmt.Errorf("game %s already started", g.Code)
	}
	if len(g.Players) >= cards.MaxPlayers {
		return fmt.Errorf("game %s is full", g.Code)
	}
	if _, taken := g.Players[id]; taken {
		return fmt.Errorf("player %s already seated", id)
	}
	g.seatPlayer(id, name, false)
	return nil
}

// PlayerByName finds a seated player by display name, case-insensitively.
// Used by the rejoin flow to match a returning player to their old seat.
func (g *GameState) PlayerByName(name string) (*Player, bool) {
	for _, p := range g.Players {
		if strings.EqualFold(p.DisplayName, name) {
			return p, true
		}
	}
	return nil, false
}

// Start begins play: first seated player, draw phase. Only the host of a
// waiting game may start it.
func (g *GameState) Start(byPlayerID string) error {
	if g.Status != StatusWaiting {
		return fmt.Errorf("game %s already started", g.Code)
	}
	if byPlayerID != g.HostID {
		return fmt.Errorf("only the host can start the game")
	}
	if len(g.Seats) == 0 {
		return fmt.Errorf("no players seated")
	}
	g.Status = StatusPlaying
	g.CurrentTurnPlayerID = g.Seats[0]
	g.TurnPhase = PhaseDraw
	g.UpdatedAt = nowUTC()
	return nil
}

// RebindPlayer remaps an existing seat to a new identity token, preserving
// hand, bank, properties, improvements, host flag, and seat position. Every
// state field that referenced the old id follows: host pointer, turn
// pointer, the pending interaction's parties, and queued debts. Used when a
// disconnected player rejoins under a fresh identity.
func (g *GameState) RebindPlayer(oldID, newID string) error {
	p, ok := g.Players[oldID]
	if !ok {
		return fmt.Errorf("no seat for player %s", oldID)
	}
	if oldID == newID {
		return nil
	}
	if _, taken := g.Players[newID]; taken {
		return fmt.Errorf("identity %s already seated", newID)
	}
	delete(g.Players, oldID)
	p.ID = newID
	g.Players[newID] = p

	for i, seat := range g.Seats {
		if seat == oldID {
			g.Seats[i] = newID
		}
	}
	if g.HostID == oldID {
		g.HostID = newID
	}
	if g.CurrentTurnPlayerID == oldID {
		g.CurrentTurnPlayerID = newID
	}
	if g.Pending != nil {
		if c := g.Pending.Confirm; c != nil {
			if c.InitiatorID == oldID {
				c.InitiatorID = newID
			}
			if c.TargetID == oldID {
				c.TargetID = newID
			}
			if c.Original.ActingPlayerID == oldID {
				c.Original.ActingPlayerID = newID
			}
			if c.Original.TargetPlayerID == oldID {
				c.Original.TargetPlayerID = newID
			}
		}
		if d := g.Pending.Debt; d != nil {
			if d.CreditorID == oldID {
				d.CreditorID = newID
			}
			if d.DebtorID == oldID {
				d.DebtorID = newID
			}
		}
	}
	for i := range g.DebtQueue {
		if g.DebtQueue[i].CreditorID == oldID {
			g.DebtQueue[i].CreditorID = newID
		}
		if g.DebtQueue[i].DebtorID == oldID {
			g.DebtQueue[i].DebtorID = newID
		}
	}
	g.UpdatedAt = nowUTC()
	return nil
}
