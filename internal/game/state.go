// Package game implements the authoritative rules engine for the
// property-trading card game: the turn state machine, the action resolver,
// the attack interaction protocol, and debt settlement. The engine is a pure
// state-transition function; all I/O and concurrency control live with the
// caller (see internal/repository).
package game

import (
	"time"

	"github.com/tahsinhasem/MonopolyDeal/internal/cards"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

// Status is the coarse lifecycle of a match.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// Phase is the active phase of the current player's turn.
type Phase string

const (
	PhaseDraw    Phase = "draw"
	PhasePlay    Phase = "play"
	PhaseDiscard Phase = "discard"
)

// Improvement tracks houses and the optional hotel attached to one
// completed color set. Placing a hotel discards the houses, so Houses is
// empty whenever Hotel is set.
type Improvement struct {
	Houses []string `json:"houses"`
	Hotel  string   `json:"hotel,omitempty"`
}

// Player is one seat at the table. BankValue and CompletedSets are cached
// derived fields; the resolver keeps them consistent after every action and
// CheckInvariants audits them.
type Player struct {
	ID            string                       `json:"id"`
	DisplayName   string                       `json:"displayName"`
	Hand          []string                     `json:"hand"`
	Bank          []string                     `json:"bank"`
	BankValue     int                          `json:"bankValue"`
	Properties    map[cards.Color][]string     `json:"properties"`
	Improvements  map[cards.Color]*Improvement `json:"improvements"`
	CompletedSets int                          `json:"completedSets"`
	IsHost        bool                         `json:"isHost"`
}

// HasInHand reports whether the player holds the given card.
func (p *Player) HasInHand(cardID string) bool {
	for _, id := range p.Hand {
		if id == cardID {
			return true
		}
	}
	return false
}

// removeFromHand removes one occurrence of cardID from the hand.
// Returns false if the card was not held.
func (p *Player) removeFromHand(cardID string) bool {
	for i, id := range p.Hand {
		if id == cardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// propertyColorOf returns the color slot currently holding cardID, if any.
func (p *Player) propertyColorOf(cardID string) (cards.Color, bool) {
	for color, ids := range p.Properties {
		for _, id := range ids {
			if id == cardID {
				return color, true
			}
		}
	}
	return "", false
}

// removeProperty removes cardID from the given color slot, dropping the
// slot entirely when it empties.
func (p *Player) removeProperty(color cards.Color, cardID string) bool {
	ids := p.Properties[color]
	for i, id := range ids {
		if id == cardID {
			ids = append(ids[:i], ids[i+1:]...)
			if len(ids) == 0 {
				delete(p.Properties, color)
			} else {
				p.Properties[color] = ids
			}
			return true
		}
	}
	return false
}

// addProperty appends cardID to the player's color slot.
func (p *Player) addProperty(color cards.Color, cardID string) {
	if p.Properties == nil {
		p.Properties = make(map[cards.Color][]string)
	}
	p.Properties[color] = append(p.Properties[color], cardID)
}

// hasCompleteSet reports whether the player's holdings of color form a
// full set.
func (p *Player) hasCompleteSet(color cards.Color) bool {
	size := cards.SetSize(color)
	return size > 0 && len(p.Properties[color]) == size
}

// PendingDebt is one deferred payment obligation awaiting its turn at the
// head of the debt queue.
type PendingDebt struct {
	CreditorID string `json:"creditorId"`
	DebtorID   string `json:"debtorId"`
	Amount     int    `json:"amount"`
	Reason     string `json:"reason"`
}

// LastAction records the most recently resolved action for presentation
// logs. It has no effect on rules.
type LastAction struct {
	Kind      string    `json:"kind"`
	PlayerID  string    `json:"playerId"`
	TargetID  string    `json:"targetId,omitempty"`
	CardID    string    `json:"cardId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// GameState is the authoritative snapshot of one match. It is mutated
// exclusively through Resolve and the lifecycle operations; Version is
// bumped by the store on every successful commit.
type GameState struct {
	ID      string             `json:"id"`
	Code    string             `json:"code"`
	Status  Status             `json:"status"`
	Players map[string]*Player `json:"players"`
	// Seats is the stable turn order: player ids in insertion order.
	// Rebinding a player on rejoin replaces the id in place.
	Seats               []string            `json:"seats"`
	HostID              string              `json:"hostId"`
	CurrentTurnPlayerID string              `json:"currentTurnPlayerId"`
	DrawPile            []string            `json:"drawPile"`
	DiscardPile         []string            `json:"discardPile"`
	TurnPhase           Phase               `json:"turnPhase"`
	CardsDrawnThisTurn  int                 `json:"cardsDrawnThisTurn"`
	CardsPlayedThisTurn int                 `json:"cardsPlayedThisTurn"`
	Pending             *PendingInteraction `json:"pending,omitempty"`
	DebtQueue           []PendingDebt       `json:"debtQueue,omitempty"`
	LastAction          *LastAction         `json:"lastAction,omitempty"`
	Version             int64               `json:"version"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

// Player returns the seated player with the given id.
func (g *GameState) Player(id string) (*Player, bool) {
	p, ok := g.Players[id]
	return p, ok
}

// seatIndex returns the position of a player id in turn order.
func (g *GameState) seatIndex(id string) int {
	for i, seat := range g.Seats {
		if seat == id {
			return i
		}
	}
	return -1
}

// nextSeat returns the player after id in stable seat order, wrapping.
func (g *GameState) nextSeat(id string) string {
	idx := g.seatIndex(id)
	if idx < 0 || len(g.Seats) == 0 {
		return id
	}
	return g.Seats[(idx+1)%len(g.Seats)]
}

// Clone returns a deep copy of the state. Resolve operates on a clone so a
// rejected action can hand back the original snapshot untouched.
func (g *GameState) Clone() *GameState {
	out := *g
	out.Players = make(map[string]*Player, len(g.Players))
	for id, p := range g.Players {
		out.Players[id] = p.clone()
	}
	out.Seats = append([]string(nil), g.Seats...)
	out.DrawPile = append([]string(nil), g.DrawPile...)
	out.DiscardPile = append([]string(nil), g.DiscardPile...)
	if g.Pending != nil {
		out.Pending = g.Pending.clone()
	}
	if g.DebtQueue != nil {
		out.DebtQueue = append([]PendingDebt(nil), g.DebtQueue...)
	}
	if g.LastAction != nil {
		la := *g.LastAction
		out.LastAction = &la
	}
	return &out
}

func (p *Player) clone() *Player {
	out := *p
	out.Hand = append([]string(nil), p.Hand...)
	out.Bank = append([]string(nil), p.Bank...)
	out.Properties = make(map[cards.Color][]string, len(p.Properties))
	for color, ids := range p.Properties {
		out.Properties[color] = append([]string(nil), ids...)
	}
	out.Improvements = make(map[cards.Color]*Improvement, len(p.Improvements))
	for color, imp := range p.Improvements {
		cp := Improvement{Houses: append([]string(nil), imp.Houses...), Hotel: imp.Hotel}
		out.Improvements[color] = &cp
	}
	return &out
}
