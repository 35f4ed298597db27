package game

import (
	"testing"

	"github.com/tahsinhasem/MonopolyDeal/internal/cards"
)

// newTestGame builds a playing-state fixture with the given seats, empty
// hands, and the entire catalog in the draw pile. Tests move cards into
// position with the deal helpers so the card-conservation invariant holds
// by construction.
func newTestGame(ids ...string) *GameState {
	g := &GameState{
		ID:        "game-1",
		Code:      "TEST42",
		Status:    StatusPlaying,
		Players:   make(map[string]*Player),
		DrawPile:  allCardIDs(),
		TurnPhase: PhaseDraw,
		Version:   1,
	}
	for i, id := range ids {
		g.Players[id] = &Player{
			ID:           id,
			DisplayName:  id,
			Hand:         []string{},
			Bank:         []string{},
			Properties:   make(map[cards.Color][]string),
			Improvements: make(map[cards.Color]*Improvement),
			IsHost:       i == 0,
		}
		g.Seats = append(g.Seats, id)
	}
	if len(ids) > 0 {
		g.HostID = ids[0]
		g.CurrentTurnPlayerID = ids[0]
	}
	return g
}

func allCardIDs() []string {
	all := cards.All()
	ids := make([]string, len(all))
	for i, c := range all {
		ids[i] = c.ID
	}
	return ids
}

// takeFromPile removes a specific card from the draw pile.
func takeFromPile(t *testing.T, g *GameState, cardID string) string {
	t.Helper()
	for i, id := range g.DrawPile {
		if id == cardID {
			g.DrawPile = append(g.DrawPile[:i], g.DrawPile[i+1:]...)
			return id
		}
	}
	t.Fatalf("card %s not in draw pile", cardID)
	return ""
}

func toHand(t *testing.T, g *GameState, playerID string, cardIDs ...string) {
	t.Helper()
	p := g.Players[playerID]
	for _, id := range cardIDs {
		p.Hand = append(p.Hand, takeFromPile(t, g, id))
	}
}

func toBank(t *testing.T, g *GameState, playerID string, cardIDs ...string) {
	t.Helper()
	p := g.Players[playerID]
	for _, id := range cardIDs {
		p.Bank = append(p.Bank, takeFromPile(t, g, id))
	}
	recomputeBankValue(p)
}

func toProperties(t *testing.T, g *GameState, playerID string, color cards.Color, cardIDs ...string) {
	t.Helper()
	p := g.Players[playerID]
	for _, id := range cardIDs {
		p.addProperty(color, takeFromPile(t, g, id))
	}
	recomputeCompletedSets(p)
}

func toImprovements(t *testing.T, g *GameState, playerID string, color cards.Color, houseIDs []string, hotelID string) {
	t.Helper()
	p := g.Players[playerID]
	imp := &Improvement{}
	for _, id := range houseIDs {
		imp.Houses = append(imp.Houses, takeFromPile(t, g, id))
	}
	if hotelID != "" {
		imp.Hotel = takeFromPile(t, g, hotelID)
	}
	p.Improvements[color] = imp
}

// inPlayPhase positions the fixture mid-turn for the given player.
func inPlayPhase(g *GameState, playerID string) {
	g.CurrentTurnPlayerID = playerID
	g.TurnPhase = PhasePlay
	g.CardsDrawnThisTurn = cards.DrawPerTurn
	g.CardsPlayedThisTurn = 0
}

func mustResolve(t *testing.T, g *GameState, action Action) *GameState {
	t.Helper()
	next, rej := Resolve(g, action)
	if rej != nil {
		t.Fatalf("expected %s to resolve, rejected: %s", action, rej)
	}
	return next
}

func mustReject(t *testing.T, g *GameState, action Action, code RejectionCode) {
	t.Helper()
	next, rej := Resolve(g, action)
	if rej == nil {
		t.Fatalf("expected %s to be rejected with %s", action, code)
	}
	if rej.Code != code {
		t.Fatalf("expected rejection code %s, got %s (%s)", code, rej.Code, rej.Reason)
	}
	if next != g {
		t.Fatalf("rejection must return the original state unchanged")
	}
}

func assertNoViolations(t *testing.T, g *GameState) {
	t.Helper()
	for _, v := range CheckInvariants(g) {
		t.Errorf("invariant violation: %s", v)
	}
}
