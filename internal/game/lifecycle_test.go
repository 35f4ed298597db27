package game

import (
	"math/rand/v2"
	"testing"

	"github.com/tahsinhasem/MonopolyDeal/internal/cards"
)

func seededDeck(seed uint64) []string {
	return cards.NewDeckFrom(rand.New(rand.NewPCG(seed, 0)))
}

func TestNewGameSeatsHostWithOpeningHand(t *testing.T) {
	g := NewGameFromDeck("host-1", "Alice", seededDeck(1))

	if g.Status != StatusWaiting {
		t.Fatalf("new game must wait for players, got %s", g.Status)
	}
	host, ok := g.Players["host-1"]
	if !ok || !host.IsHost {
		t.Fatalf("host not seated: %+v", g.Players)
	}
	if len(host.Hand) != cards.InitialHandSize {
		t.Fatalf("expected opening hand of %d, got %d", cards.InitialHandSize, len(host.Hand))
	}
	if len(g.DrawPile) != cards.Count()-cards.InitialHandSize {
		t.Fatalf("draw pile size wrong: %d", len(g.DrawPile))
	}
	if len(g.Code) != 6 {
		t.Fatalf("expected a 6-character join code, got %q", g.Code)
	}
	if g.Version != 1 {
		t.Fatalf("new games start at version 1, got %d", g.Version)
	}
	assertNoViolations(t, g)
}

func TestAddPlayerLimits(t *testing.T) {
	g := NewGameFromDeck("host-1", "Alice", seededDeck(2))
	for i := 1; i < cards.MaxPlayers; i++ {
		if err := g.AddPlayer(playerID(i), playerName(i)); err != nil {
			t.Fatalf("seat %d: %v", i, err)
		}
	}
	if err := g.AddPlayer("overflow", "Flo"); err == nil {
		t.Fatalf("expected a full table to refuse a sixth player")
	}
	assertNoViolations(t, g)
}

func playerID(i int) string   { return string(rune('a'+i)) + "-id" }
func playerName(i int) string { return string(rune('A' + i)) }

func TestAddPlayerAfterStartRefused(t *testing.T) {
	g := NewGameFromDeck("host-1", "Alice", seededDeck(3))
	if err := g.AddPlayer("p2", "Bob"); err != nil {
		t.Fatalf("seat bob: %v", err)
	}
	if err := g.Start("host-1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := g.AddPlayer("p3", "Carol"); err == nil {
		t.Fatalf("expected join after start to fail")
	}
}

func TestOnlyHostStarts(t *testing.T) {
	g := NewGameFromDeck("host-1", "Alice", seededDeck(4))
	if err := g.AddPlayer("p2", "Bob"); err != nil {
		t.Fatalf("seat bob: %v", err)
	}
	if err := g.Start("p2"); err == nil {
		t.Fatalf("expected non-host start to fail")
	}
	if err := g.Start("host-1"); err != nil {
		t.Fatalf("host start: %v", err)
	}
	if g.Status != StatusPlaying || g.CurrentTurnPlayerID != "host-1" || g.TurnPhase != PhaseDraw {
		t.Fatalf("start state wrong: %s %s %s", g.Status, g.CurrentTurnPlayerID, g.TurnPhase)
	}
	if err := g.Start("host-1"); err == nil {
		t.Fatalf("expected double start to fail")
	}
}

func TestPlayerByNameIsCaseInsensitive(t *testing.T) {
	g := NewGameFromDeck("host-1", "Alice", seededDeck(5))
	p, ok := g.PlayerByName("aLiCe")
	if !ok || p.ID != "host-1" {
		t.Fatalf("expected to find alice, got %v %v", p, ok)
	}
	if _, ok := g.PlayerByName("nobody"); ok {
		t.Fatalf("expected no match for an unknown name")
	}
}

func TestRebindPlayerPreservesEverything(t *testing.T) {
	g := newTestGame("alice", "bob", "carol")
	inPlayPhase(g, "bob")
	toHand(t, g, "bob", "money_5m_1", "sly_deal_1")
	toBank(t, g, "bob", "money_2m_1")
	toProperties(t, g, "bob", cards.ColorBrown, "prop_brown_1", "prop_brown_2")
	toImprovements(t, g, "bob", cards.ColorBrown, []string{"house_1"}, "")
	g.HostID = "bob"
	g.Players["bob"].IsHost = true
	g.Pending = newDebt(DebtInteraction{CreditorID: "alice", DebtorID: "bob", Amount: 2, Reason: "birthday"})
	g.DebtQueue = []PendingDebt{{CreditorID: "alice", DebtorID: "bob", Amount: 2, Reason: "birthday"}}

	if err := g.RebindPlayer("bob", "bob-2"); err != nil {
		t.Fatalf("rebind: %v", err)
	}

	if _, stale := g.Players["bob"]; stale {
		t.Fatalf("old identity must be gone")
	}
	p, ok := g.Players["bob-2"]
	if !ok {
		t.Fatalf("new identity not seated")
	}
	if p.ID != "bob-2" || !p.IsHost {
		t.Fatalf("player record not rebound: %+v", p)
	}
	if len(p.Hand) != 2 || p.BankValue != 2 || len(p.Properties[cards.ColorBrown]) != 2 {
		t.Fatalf("holdings must survive the rebind")
	}
	if g.Seats[1] != "bob-2" {
		t.Fatalf("seat order must be preserved in place, got %v", g.Seats)
	}
	if g.HostID != "bob-2" || g.CurrentTurnPlayerID != "bob-2" {
		t.Fatalf("host and turn pointers must follow: %s %s", g.HostID, g.CurrentTurnPlayerID)
	}
	if g.Pending.Debt.DebtorID != "bob-2" {
		t.Fatalf("active debt must follow the rebind: %+v", g.Pending.Debt)
	}
	if g.DebtQueue[0].DebtorID != "bob-2" {
		t.Fatalf("queued debts must follow the rebind: %+v", g.DebtQueue)
	}
	assertNoViolations(t, g)
}

func TestRebindPlayerFollowsConfirmInteraction(t *testing.T) {
	g := newTestGame("alice", "bob")
	inPlayPhase(g, "alice")
	toHand(t, g, "alice", "debt_collector_1")
	g = mustResolve(t, g, Action{
		Kind:           ActionPlayAction,
		ActingPlayerID: "alice",
		CardIDs:        []string{"debt_collector_1"},
		TargetPlayerID: "bob",
	})

	if err := g.RebindPlayer("bob", "bob-2"); err != nil {
		t.Fatalf("rebind: %v", err)
	}
	confirm := g.Pending.Confirm
	if confirm.TargetID != "bob-2" || confirm.Original.TargetPlayerID != "bob-2" {
		t.Fatalf("confirm interaction must follow the rebind: %+v", confirm)
	}

	// The rebound identity can answer the interaction.
	next := mustResolve(t, g, Action{Kind: ActionAcceptAction, ActingPlayerID: "bob-2"})
	if next.Pending == nil || next.Pending.Debt == nil || next.Pending.Debt.DebtorID != "bob-2" {
		t.Fatalf("expected the shortfall debt bound to the new identity, got %+v", next.Pending)
	}
}

func TestRebindRejectsUnknownAndTakenIDs(t *testing.T) {
	g := newTestGame("alice", "bob")
	if err := g.RebindPlayer("nobody", "x"); err == nil {
		t.Fatalf("expected rebind of an unknown seat to fail")
	}
	if err := g.RebindPlayer("alice", "bob"); err == nil {
		t.Fatalf("expected rebind onto a taken identity to fail")
	}
	if err := g.RebindPlayer("alice", "alice"); err != nil {
		t.Fatalf("self rebind is a no-op, got %v", err)
	}
}

func TestWinnerAtThreeCompleteSets(t *testing.T) {
	g := newTestGame("alice", "bob")
	toProperties(t, g, "alice", cards.ColorBrown, "prop_brown_1", "prop_brown_2")
	toProperties(t, g, "alice", cards.ColorDarkBlue, "prop_darkblue_1", "prop_darkblue_2")
	toProperties(t, g, "alice", cards.ColorUtility, "prop_utility_1", "prop_utility_2")

	winner, ok := g.Winner()
	if !ok || winner.ID != "alice" {
		t.Fatalf("expected alice to win with three sets, got %v %v", winner, ok)
	}

	g2 := newTestGame("alice", "bob")
	toProperties(t, g2, "alice", cards.ColorBrown, "prop_brown_1", "prop_brown_2")
	if _, ok := g2.Winner(); ok {
		t.Fatalf("one set must not win")
	}
}

func TestNewGameCodeAlphabet(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := NewGameCode()
		if len(code) != 6 {
			t.Fatalf("bad code length: %q", code)
		}
		for _, r := range code {
			if (r < 'A' || r > 'Z') && (r < '2' || r > '9') {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
		switch {
		case containsRune(code, 'I'), containsRune(code, 'O'), containsRune(code, '0'), containsRune(code, '1'):
			t.Fatalf("code %q contains an ambiguous character", code)
		}
	}
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
