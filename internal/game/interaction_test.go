package game

import (
	"testing"

	"github.com/tahsinhasem/MonopolyDeal/internal/cards"
)

func TestSlyDealStageAcceptFlow(t *testing.T) {
	g := newTestGame("alice", "bob")
	inPlayPhase(g, "alice")
	toHand(t, g, "alice", "sly_deal_1")
	toProperties(t, g, "bob", cards.ColorBrown, "prop_brown_1")

	g = mustResolve(t, g, Action{
		Kind:           ActionPlayAction,
		ActingPlayerID: "alice",
		CardIDs:        []string{"sly_deal_1"},
		TargetPlayerID: "bob",
		PropertyColor:  cards.ColorBrown,
	})

	if g.Pending == nil || g.Pending.Confirm == nil {
		t.Fatalf("expected a confirm interaction")
	}
	confirm := g.Pending.Confirm
	if confirm.InitiatorID != "alice" || confirm.TargetID != "bob" {
		t.Fatalf("interaction parties wrong: %+v", confirm)
	}
	if confirm.AttackName != cards.NameSlyDeal {
		t.Fatalf("expected Sly Deal attack, got %s", confirm.AttackName)
	}
	if !confirm.Blockable {
		t.Fatalf("sly deal must be counterable")
	}
	if g.DiscardPile[len(g.DiscardPile)-1] != "sly_deal_1" {
		t.Fatalf("action card must be discarded when played")
	}
	if g.CardsPlayedThisTurn != 1 {
		t.Fatalf("expected one play consumed, got %d", g.CardsPlayedThisTurn)
	}

	next := mustResolve(t, g, Action{Kind: ActionAcceptAction, ActingPlayerID: "bob"})

	if next.Pending != nil {
		t.Fatalf("interaction must clear after acceptance")
	}
	if got := next.Players["alice"].Properties[cards.ColorBrown]; len(got) != 1 || got[0] != "prop_brown_1" {
		t.Fatalf("expected alice to hold prop_brown_1, got %v", got)
	}
	if got := next.Players["bob"].Properties[cards.ColorBrown]; len(got) != 0 {
		t.Fatalf("expected bob's brown holdings empty, got %v", got)
	}
	assertNoViolations(t, next)
}

func TestJustSayNoBlocksAttack(t *testing.T) {
	g := newTestGame("alice", "bob")
	inPlayPhase(g, "alice")
	toHand(t, g, "alice", "sly_deal_1")
	toHand(t, g, "bob", "just_say_no_1")
	toProperties(t, g, "bob", cards.ColorBrown, "prop_brown_1")

	g = mustResolve(t, g, Action{
		Kind:           ActionPlayAction,
		ActingPlayerID: "alice",
		CardIDs:        []string{"sly_deal_1"},
		TargetPlayerID: "bob",
		PropertyColor:  cards.ColorBrown,
	})

	next := mustResolve(t, g, Action{Kind: ActionSayNo, ActingPlayerID: "bob", CardIDs: []string{"just_say_no_1"}})

	if next.Pending != nil {
		t.Fatalf("interaction must clear after a counter")
	}
	if got := next.Players["bob"].Properties[cards.ColorBrown]; len(got) != 1 {
		t.Fatalf("blocked sly deal must leave bob's property, got %v", got)
	}
	if len(next.Players["bob"].Hand) != 0 {
		t.Fatalf("counter card must be spent")
	}
	if next.LastAction == nil || next.LastAction.Kind != "JUST_SAY_NO" {
		t.Fatalf("expected JUST_SAY_NO recorded, got %+v", next.LastAction)
	}
	assertNoViolations(t, next)
}

func TestSayNoRequiresCounterCardInHand(t *testing.T) {
	g := newTestGame("alice", "bob")
	inPlayPhase(g, "alice")
	toHand(t, g, "alice", "sly_deal_1")
	toProperties(t, g, "bob", cards.ColorBrown, "prop_brown_1")
	g = mustResolve(t, g, Action{
		Kind:           ActionPlayAction,
		ActingPlayerID: "alice",
		CardIDs:        []string{"sly_deal_1"},
		TargetPlayerID: "bob",
		PropertyColor:  cards.ColorBrown,
	})

	mustReject(t, g, Action{Kind: ActionSayNo, ActingPlayerID: "bob", CardIDs: []string{"just_say_no_1"}}, RejectCardNotHeld)
	mustReject(t, g, Action{Kind: ActionSayNo, ActingPlayerID: "alice", CardIDs: []string{"just_say_no_1"}}, RejectBadTarget)
}

func TestRespondWithNoPendingInteraction(t *testing.T) {
	g := newTestGame("alice", "bob")
	mustReject(t, g, Action{Kind: ActionAcceptAction, ActingPlayerID: "bob"}, RejectNoInteraction)
	mustReject(t, g, Action{Kind: ActionSayNo, ActingPlayerID: "bob", CardIDs: []string{"just_say_no_1"}}, RejectNoInteraction)
	mustReject(t, g, Action{Kind: ActionPayDebt, ActingPlayerID: "bob"}, RejectNoInteraction)
}

func TestDealBreakerTakesSetWithImprovements(t *testing.T) {
	g := newTestGame("alice", "bob")
	inPlayPhase(g, "alice")
	toHand(t, g, "alice", "deal_breaker_1")
	toProperties(t, g, "bob", cards.ColorBrown, "prop_brown_1", "prop_brown_2")
	toImprovements(t, g, "bob", cards.ColorBrown, []string{"house_1"}, "")

	g = mustResolve(t, g, Action{
		Kind:           ActionPlayAction,
		ActingPlayerID: "alice",
		CardIDs:        []string{"deal_breaker_1"},
		TargetPlayerID: "bob",
		PropertyColor:  cards.ColorBrown,
	})
	if g.Pending == nil || g.Pending.Confirm == nil || g.Pending.Confirm.AttackName != cards.NameDealBreaker {
		t.Fatalf("expected a Deal Breaker confirm interaction")
	}

	next := mustResolve(t, g, Action{Kind: ActionAcceptAction, ActingPlayerID: "bob"})

	alice := next.Players["alice"]
	if len(alice.Properties[cards.ColorBrown]) != 2 {
		t.Fatalf("expected the whole brown set to move, got %v", alice.Properties[cards.ColorBrown])
	}
	if alice.CompletedSets != 1 {
		t.Fatalf("expected alice's completed sets recomputed to 1, got %d", alice.CompletedSets)
	}
	imp := alice.Improvements[cards.ColorBrown]
	if imp == nil || len(imp.Houses) != 1 || imp.Houses[0] != "house_1" {
		t.Fatalf("improvements must travel with the set, got %+v", imp)
	}
	bob := next.Players["bob"]
	if len(bob.Properties[cards.ColorBrown]) != 0 || bob.CompletedSets != 0 || bob.Improvements[cards.ColorBrown] != nil {
		t.Fatalf("bob must lose the set and its improvements")
	}
	assertNoViolations(t, next)
}

func TestDealBreakerNeedsCompleteSet(t *testing.T) {
	g := newTestGame("alice", "bob")
	inPlayPhase(g, "alice")
	toHand(t, g, "alice", "deal_breaker_1")
	toProperties(t, g, "bob", cards.ColorBrown, "prop_brown_1")

	next := mustResolve(t, g, Action{
		Kind:           ActionPlayAction,
		ActingPlayerID: "alice",
		CardIDs:        []string{"deal_breaker_1"},
		TargetPlayerID: "bob",
		PropertyColor:  cards.ColorBrown,
	})
	if next.Pending != nil {
		t.Fatalf("deal breaker against an incomplete set must fizzle")
	}
}

func TestSlyDealCannotTouchCompleteSet(t *testing.T) {
	g := newTestGame("alice", "bob")
	inPlayPhase(g, "alice")
	toHand(t, g, "alice", "sly_deal_1")
	toProperties(t, g, "bob", cards.ColorBrown, "prop_brown_1", "prop_brown_2")

	next := mustResolve(t, g, Action{
		Kind:           ActionPlayAction,
		ActingPlayerID: "alice",
		CardIDs:        []string{"sly_deal_1"},
		TargetPlayerID: "bob",
		PropertyColor:  cards.ColorBrown,
	})
	if next.Pending != nil {
		t.Fatalf("sly deal must not target a completed set")
	}
}

func TestForcedDealSwapsProperties(t *testing.T) {
	g := newTestGame("alice", "bob")
	inPlayPhase(g, "alice")
	toHand(t, g, "alice", "forced_deal_1")
	toProperties(t, g, "alice", cards.ColorRed, "prop_red_1")
	toProperties(t, g, "bob", cards.ColorLightBlue, "prop_lightblue_1")

	g = mustResolve(t, g, Action{
		Kind:           ActionPlayAction,
		ActingPlayerID: "alice",
		CardIDs:        []string{"forced_deal_1", "prop_red_1", "prop_lightblue_1"},
		TargetPlayerID: "bob",
	})
	if g.Pending == nil || g.Pending.Confirm == nil || g.Pending.Confirm.AttackName != cards.NameForcedDeal {
		t.Fatalf("expected a Forced Deal confirm interaction")
	}

	next := mustResolve(t, g, Action{Kind: ActionAcceptAction, ActingPlayerID: "bob"})

	if got := next.Players["alice"].Properties[cards.ColorLightBlue]; len(got) != 1 || got[0] != "prop_lightblue_1" {
		t.Fatalf("alice must receive prop_lightblue_1, got %v", got)
	}
	if got := next.Players["bob"].Properties[cards.ColorRed]; len(got) != 1 || got[0] != "prop_red_1" {
		t.Fatalf("bob must receive prop_red_1, got %v", got)
	}
	if len(next.Players["alice"].Properties[cards.ColorRed]) != 0 {
		t.Fatalf("alice must give up prop_red_1")
	}
	assertNoViolations(t, next)
}

func TestRentChargesLadderPlusImprovements(t *testing.T) {
	g := newTestGame("alice", "bob")
	inPlayPhase(g, "alice")
	toHand(t, g, "alice", "rent_brown_lightblue")
	toProperties(t, g, "alice", cards.ColorLightBlue, "prop_lightblue_1", "prop_lightblue_2", "prop_lightblue_3")
	toImprovements(t, g, "alice", cards.ColorLightBlue, []string{"house_1", "house_2"}, "")
	toBank(t, g, "bob", "money_10m_1")

	g = mustResolve(t, g, Action{
		Kind:           ActionPlayAction,
		ActingPlayerID: "alice",
		CardIDs:        []string{"rent_brown_lightblue"},
		TargetPlayerID: "bob",
		PropertyColor:  cards.ColorLightBlue,
	})
	if g.Pending == nil || g.Pending.Confirm == nil {
		t.Fatalf("expected a rent confirm interaction")
	}

	next := mustResolve(t, g, Action{Kind: ActionAcceptAction, ActingPlayerID: "bob"})

	// Full lightblue set rents 3, plus two houses at +3 each.
	if next.Players["alice"].BankValue != 10 {
		t.Fatalf("expected alice paid with the 10M card, bank value %d", next.Players["alice"].BankValue)
	}
	if next.Players["bob"].BankValue != 0 {
		t.Fatalf("expected bob's bank drained, got %d", next.Players["bob"].BankValue)
	}
	if next.Pending != nil {
		t.Fatalf("fully paid rent must not leave a debt")
	}
	assertNoViolations(t, next)
}

func TestDualRentRequiresPrintedColor(t *testing.T) {
	g := newTestGame("alice", "bob")
	inPlayPhase(g, "alice")
	toHand(t, g, "alice", "rent_brown_lightblue")
	toProperties(t, g, "alice", cards.ColorRed, "prop_red_1")

	next := mustResolve(t, g, Action{
		Kind:           ActionPlayAction,
		ActingPlayerID: "alice",
		CardIDs:        []string{"rent_brown_lightblue"},
		TargetPlayerID: "bob",
		PropertyColor:  cards.ColorRed,
	})
	if next.Pending != nil {
		t.Fatalf("dual rent card must only charge its printed colors")
	}
}

func TestWildRentChargesAnyOwnedColor(t *testing.T) {
	g := newTestGame("alice", "bob")
	inPlayPhase(g, "alice")
	toHand(t, g, "alice", "wild_rent_1")
	toProperties(t, g, "alice", cards.ColorRed, "prop_red_1")
	toBank(t, g, "bob", "money_2m_1")

	g = mustResolve(t, g, Action{
		Kind:           ActionPlayAction,
		ActingPlayerID: "alice",
		CardIDs:        []string{"wild_rent_1"},
		TargetPlayerID: "bob",
		PropertyColor:  cards.ColorRed,
	})
	if g.Pending == nil || g.Pending.Confirm == nil {
		t.Fatalf("wild rent must stage against any owned color")
	}

	next := mustResolve(t, g, Action{Kind: ActionAcceptAction, ActingPlayerID: "bob"})
	// One red property rents 2.
	if next.Players["alice"].BankValue != 2 {
		t.Fatalf("expected rent 2 collected, got %d", next.Players["alice"].BankValue)
	}
}

func TestDebtCollectorShortfallBecomesDebt(t *testing.T) {
	g := newTestGame("alice", "bob")
	inPlayPhase(g, "alice")
	toHand(t, g, "alice", "debt_collector_1")
	toBank(t, g, "bob", "money_2m_1")

	g = mustResolve(t, g, Action{
		Kind:           ActionPlayAction,
		ActingPlayerID: "alice",
		CardIDs:        []string{"debt_collector_1"},
		TargetPlayerID: "bob",
	})
	if g.Pending == nil || g.Pending.Confirm == nil || !g.Pending.Confirm.Blockable {
		t.Fatalf("debt collector must stage a counterable confirm")
	}

	next := mustResolve(t, g, Action{Kind: ActionAcceptAction, ActingPlayerID: "bob"})

	if next.Players["alice"].BankValue != 2 {
		t.Fatalf("expected the 2M transferred, alice banks %d", next.Players["alice"].BankValue)
	}
	debt := next.Pending
	if debt == nil || debt.Debt == nil {
		t.Fatalf("expected the shortfall to open a debt interaction")
	}
	if debt.Debt.Amount != cards.DebtCollectorAmount-2 {
		t.Fatalf("expected %d still owed, got %d", cards.DebtCollectorAmount-2, debt.Debt.Amount)
	}
	if debt.Debt.CreditorID != "alice" || debt.Debt.DebtorID != "bob" {
		t.Fatalf("debt parties wrong: %+v", debt.Debt)
	}

	// The debt leg cannot be countered.
	mustReject(t, next, Action{Kind: ActionSayNo, ActingPlayerID: "bob", CardIDs: []string{"just_say_no_1"}}, RejectNoInteraction)
	assertNoViolations(t, next)
}

func TestBirthdayCollectsFromEverySeat(t *testing.T) {
	g := newTestGame("alice", "bob", "carol")
	inPlayPhase(g, "alice")
	toHand(t, g, "alice", "birthday_1")
	toBank(t, g, "bob", "money_3m_1")
	// carol has nothing banked and will owe the full amount.

	next := mustResolve(t, g, Action{Kind: ActionPlayAction, ActingPlayerID: "alice", CardIDs: []string{"birthday_1"}})

	if next.Players["alice"].BankValue != 3 {
		t.Fatalf("expected bob's 3M collected, alice banks %d", next.Players["alice"].BankValue)
	}
	if next.Pending == nil || next.Pending.Debt == nil {
		t.Fatalf("expected carol's shortfall active as a debt")
	}
	if next.Pending.Debt.DebtorID != "carol" || next.Pending.Debt.Amount != cards.BirthdayAmount {
		t.Fatalf("unexpected debt: %+v", next.Pending.Debt)
	}
	if len(next.DebtQueue) != 0 {
		t.Fatalf("single shortfall should pop straight into the active slot, queue %v", next.DebtQueue)
	}
	assertNoViolations(t, next)
}

func TestBirthdayQueuesMultipleDebtsFIFO(t *testing.T) {
	g := newTestGame("alice", "bob", "carol")
	inPlayPhase(g, "alice")
	toHand(t, g, "alice", "birthday_1")

	g = mustResolve(t, g, Action{Kind: ActionPlayAction, ActingPlayerID: "alice", CardIDs: []string{"birthday_1"}})

	// Both debtors are broke; bob's debt activates first, carol's waits.
	if g.Pending == nil || g.Pending.Debt == nil || g.Pending.Debt.DebtorID != "bob" {
		t.Fatalf("expected bob's debt active first, got %+v", g.Pending)
	}
	if len(g.DebtQueue) != 1 || g.DebtQueue[0].DebtorID != "carol" {
		t.Fatalf("expected carol queued, got %v", g.DebtQueue)
	}

	// Carol cannot settle out of order.
	mustReject(t, g, Action{Kind: ActionPayDebt, ActingPlayerID: "carol"}, RejectBadTarget)

	g = mustResolve(t, g, Action{Kind: ActionPayDebt, ActingPlayerID: "bob"})

	if g.Pending == nil || g.Pending.Debt == nil || g.Pending.Debt.DebtorID != "carol" {
		t.Fatalf("expected carol's debt promoted, got %+v", g.Pending)
	}
	if len(g.DebtQueue) != 0 {
		t.Fatalf("queue should drain, got %v", g.DebtQueue)
	}

	next := mustResolve(t, g, Action{Kind: ActionPayDebt, ActingPlayerID: "carol"})
	if next.Pending != nil {
		t.Fatalf("all debts settled, interaction should clear")
	}
	assertNoViolations(t, next)
}

func TestAcceptOnlyByTarget(t *testing.T) {
	g := newTestGame("alice", "bob", "carol")
	inPlayPhase(g, "alice")
	toHand(t, g, "alice", "debt_collector_1")
	g = mustResolve(t, g, Action{
		Kind:           ActionPlayAction,
		ActingPlayerID: "alice",
		CardIDs:        []string{"debt_collector_1"},
		TargetPlayerID: "bob",
	})

	mustReject(t, g, Action{Kind: ActionAcceptAction, ActingPlayerID: "carol"}, RejectBadTarget)
}

func TestAttackTargetMustBeAnotherPlayer(t *testing.T) {
	g := newTestGame("alice", "bob")
	inPlayPhase(g, "alice")
	toHand(t, g, "alice", "debt_collector_1", "debt_collector_2")

	// Self-target and missing target both waste the card without staging.
	next := mustResolve(t, g, Action{
		Kind:           ActionPlayAction,
		ActingPlayerID: "alice",
		CardIDs:        []string{"debt_collector_1"},
		TargetPlayerID: "alice",
	})
	if next.Pending != nil {
		t.Fatalf("self-targeted attack must not stage")
	}
	next = mustResolve(t, next, Action{
		Kind:           ActionPlayAction,
		ActingPlayerID: "alice",
		CardIDs:        []string{"debt_collector_2"},
	})
	if next.Pending != nil {
		t.Fatalf("untargeted attack must not stage")
	}
}

func TestRentFizzlesWhenColorLostBeforeAccept(t *testing.T) {
	g := newTestGame("alice", "bob")
	inPlayPhase(g, "alice")
	toHand(t, g, "alice", "wild_rent_1")
	toProperties(t, g, "alice", cards.ColorRed, "prop_red_1")
	toBank(t, g, "bob", "money_5m_1")

	g = mustResolve(t, g, Action{
		Kind:           ActionPlayAction,
		ActingPlayerID: "alice",
		CardIDs:        []string{"wild_rent_1"},
		TargetPlayerID: "bob",
		PropertyColor:  cards.ColorRed,
	})

	// The charger loses the color while the target deliberates.
	alice := g.Players["alice"]
	alice.removeProperty(cards.ColorRed, "prop_red_1")
	g.DiscardPile = append(g.DiscardPile, "prop_red_1")
	recomputeCompletedSets(alice)

	next := mustResolve(t, g, Action{Kind: ActionAcceptAction, ActingPlayerID: "bob"})
	if next.Players["alice"].BankValue != 0 {
		t.Fatalf("fizzled rent must collect nothing, got %d", next.Players["alice"].BankValue)
	}
	if next.Pending != nil {
		t.Fatalf("fizzled rent must clear the interaction")
	}
	assertNoViolations(t, next)
}
