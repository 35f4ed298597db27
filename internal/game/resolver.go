package game

import (
	"fmt"
	"time"

	"github.com/tahsinhasem/MonopolyDeal/internal/cards"
)

// Resolve validates an action against a state and returns the resulting
// state. On rejection the original state is returned untouched alongside a
// non-nil Rejection; on success a new state value is returned. Resolve
// never performs I/O and never mutates its input.
//
// Turn ownership is required for every kind except the interaction
// responses (SayNo, AcceptAction, PayDebt), which the interaction's target
// may submit regardless of whose turn it is.
func Resolve(state *GameState, action Action) (*GameState, *Rejection) {
	if !action.Kind.Valid() {
		return state, reject(RejectUnknownKind, "unknown action kind %q", action.Kind)
	}
	if state.Status != StatusPlaying {
		return state, reject(RejectWrongStatus, "game is %s, not playing", state.Status)
	}
	if _, ok := state.Players[action.ActingPlayerID]; !ok {
		return state, reject(RejectNoSuchPlayer, "player %s is not seated", action.ActingPlayerID)
	}

	switch action.Kind {
	case ActionSayNo, ActionAcceptAction, ActionPayDebt:
		// Interaction responses come from the target, who is normally
		// not the current-turn player.
	default:
		if state.CurrentTurnPlayerID != action.ActingPlayerID {
			return state, reject(RejectNotYourTurn, "it is %s's turn", state.CurrentTurnPlayerID)
		}
	}

	next := state.Clone()
	var rej *Rejection
	switch action.Kind {
	case ActionDrawCards:
		rej = next.resolveDraw(action)
	case ActionPlayMoney:
		rej = next.resolvePlayMoney(action)
	case ActionPlayProperty:
		rej = next.resolvePlayProperty(action)
	case ActionPlayImprovement:
		rej = next.resolvePlayImprovement(action)
	case ActionPlayAction:
		rej = next.resolvePlayAction(action)
	case ActionDiscardCards:
		rej = next.resolveDiscard(action)
	case ActionEndTurn:
		rej = next.resolveEndTurn(action)
	case ActionSayNo:
		rej = next.resolveSayNo(action)
	case ActionAcceptAction:
		rej = next.resolveAccept(action)
	case ActionPayDebt:
		rej = next.resolvePayDebt(action)
	}
	if rej != nil {
		return state, rej
	}
	next.UpdatedAt = time.Now().UTC()
	return next, nil
}

func (g *GameState) resolveDraw(action Action) *Rejection {
	if g.TurnPhase != PhaseDraw {
		return reject(RejectWrongPhase, "draw is only legal in the draw phase")
	}
	if g.CardsDrawnThisTurn > 0 {
		return reject(RejectAlreadyDrawn, "already drew this turn")
	}
	p := g.Players[action.ActingPlayerID]
	g.drawFromPile(p, cards.DrawPerTurn)
	g.CardsDrawnThisTurn = cards.DrawPerTurn
	g.TurnPhase = PhasePlay
	g.recordAction(action, "")
	return nil
}

// checkPlayWindow enforces the shared preconditions of the play phase:
// correct phase and the three-plays-per-turn bound.
func (g *GameState) checkPlayWindow() *Rejection {
	if g.TurnPhase != PhasePlay {
		return reject(RejectWrongPhase, "cards can only be played in the play phase")
	}
	if g.CardsPlayedThisTurn >= cards.PlaysPerTurn {
		return reject(RejectPlayLimit, "already played %d cards this turn", cards.PlaysPerTurn)
	}
	return nil
}

func (g *GameState) resolvePlayMoney(action Action) *Rejection {
	if rej := g.checkPlayWindow(); rej != nil {
		return rej
	}
	cardID, ok := action.firstCard()
	if !ok {
		return reject(RejectCardNotHeld, "no card specified")
	}
	card, ok := cards.Get(cardID)
	if !ok || card.Value <= 0 {
		return reject(RejectWrongCardKind, "card %s has no face value", cardID)
	}
	p := g.Players[action.ActingPlayerID]
	if !p.removeFromHand(cardID) {
		return reject(RejectCardNotHeld, "card %s is not in hand", cardID)
	}
	p.Bank = append(p.Bank, cardID)
	p.BankValue += card.Value
	g.CardsPlayedThisTurn++
	g.recordAction(action, cardID)
	return nil
}

func (g *GameState) resolvePlayProperty(action Action) *Rejection {
	if rej := g.checkPlayWindow(); rej != nil {
		return rej
	}
	cardID, ok := action.firstCard()
	if !ok {
		return reject(RejectCardNotHeld, "no card specified")
	}
	card, ok := cards.Get(cardID)
	if !ok || card.Kind != cards.KindProperty {
		return reject(RejectWrongCardKind, "card %s is not a property", cardID)
	}
	if _, ok := cards.Info(action.PropertyColor); !ok {
		return reject(RejectBadColor, "unknown color %q", action.PropertyColor)
	}
	if !card.EligibleColor(action.PropertyColor) {
		return reject(RejectBadColor, "card %s cannot be played as %s", cardID, action.PropertyColor)
	}
	p := g.Players[action.ActingPlayerID]
	if !p.removeFromHand(cardID) {
		return reject(RejectCardNotHeld, "card %s is not in hand", cardID)
	}
	p.addProperty(action.PropertyColor, cardID)
	recomputeCompletedSets(p)
	g.CardsPlayedThisTurn++
	g.recordAction(action, cardID)
	return nil
}

func (g *GameState) resolvePlayImprovement(action Action) *Rejection {
	if rej := g.checkPlayWindow(); rej != nil {
		return rej
	}
	cardID, ok := action.firstCard()
	if !ok {
		return reject(RejectCardNotHeld, "no card specified")
	}
	card, ok := cards.Get(cardID)
	if !ok || (card.Kind != cards.KindHouse && card.Kind != cards.KindHotel) {
		return reject(RejectWrongCardKind, "card %s is not a house or hotel", cardID)
	}
	p := g.Players[action.ActingPlayerID]
	if !p.HasInHand(cardID) {
		return reject(RejectCardNotHeld, "card %s is not in hand", cardID)
	}
	color := action.PropertyColor
	if !p.hasCompleteSet(color) {
		return reject(RejectSetIncomplete, "no complete %s set to improve", color)
	}
	if p.Improvements == nil {
		p.Improvements = make(map[cards.Color]*Improvement)
	}
	imp := p.Improvements[color]
	if imp == nil {
		imp = &Improvement{}
		p.Improvements[color] = imp
	}
	switch card.Kind {
	case cards.KindHouse:
		if imp.Hotel != "" {
			return reject(RejectImprovementRules, "%s set already has a hotel", color)
		}
		if len(imp.Houses) >= cards.MaxHousesPerSet {
			return reject(RejectImprovementRules, "%s set already has %d houses", color, cards.MaxHousesPerSet)
		}
		p.removeFromHand(cardID)
		imp.Houses = append(imp.Houses, cardID)
	case cards.KindHotel:
		if len(imp.Houses) == 0 {
			return reject(RejectImprovementRules, "a hotel needs at least one house")
		}
		if imp.Hotel != "" {
			return reject(RejectImprovementRules, "%s set already has a hotel", color)
		}
		p.removeFromHand(cardID)
		// The hotel replaces the houses; the house cards leave play.
		g.DiscardPile = append(g.DiscardPile, imp.Houses...)
		imp.Houses = nil
		imp.Hotel = cardID
	}
	g.CardsPlayedThisTurn++
	g.recordAction(action, cardID)
	return nil
}

func (g *GameState) resolveDiscard(action Action) *Rejection {
	if g.TurnPhase != PhaseDiscard {
		return reject(RejectWrongPhase, "discard is only legal in the discard phase")
	}
	p := g.Players[action.ActingPlayerID]
	listed := make(map[string]bool, len(action.CardIDs))
	for _, id := range action.CardIDs {
		if listed[id] {
			return reject(RejectCardNotHeld, "card %s listed twice", id)
		}
		listed[id] = true
		if !p.HasInHand(id) {
			return reject(RejectCardNotHeld, "card %s is not in hand", id)
		}
	}
	for _, id := range action.CardIDs {
		p.removeFromHand(id)
		g.DiscardPile = append(g.DiscardPile, id)
	}
	g.recordAction(action, "")
	if len(p.Hand) <= cards.HandLimit {
		g.advanceTurn()
	}
	return nil
}

func (g *GameState) resolveEndTurn(action Action) *Rejection {
	if g.TurnPhase != PhasePlay && g.TurnPhase != PhaseDiscard {
		return reject(RejectWrongPhase, "cannot end turn during the draw phase")
	}
	p := g.Players[action.ActingPlayerID]
	if len(p.Hand) > cards.HandLimit {
		g.TurnPhase = PhaseDiscard
		g.recordAction(action, "")
		return nil
	}
	g.recordAction(action, "")
	g.advanceTurn()
	return nil
}

// attackNames are the action/rent cards that can install a pending
// interaction or enqueue debts. Playing one while an interaction is open
// would violate the single-active-interaction invariant.
var attackNames = map[string]bool{
	cards.NameDealBreaker:   true,
	cards.NameSlyDeal:       true,
	cards.NameForcedDeal:    true,
	cards.NameDebtCollector: true,
	cards.NameBirthday:      true,
	cards.NameRent:          true,
	cards.NameWildRent:      true,
}

// resolvePlayAction plays an action or rent card. The card is always spent:
// it goes to the discard pile and consumes a play slot whether or not its
// effect completes. An attack whose precondition fails (say, the target
// owns nothing of the requested color) is simply wasted.
//
// TODO(rules): wasted attacks exhausting the card may be a rule gap rather
// than intent; revisit if the reference rules ever clarify.
func (g *GameState) resolvePlayAction(action Action) *Rejection {
	if rej := g.checkPlayWindow(); rej != nil {
		return rej
	}
	cardID, ok := action.firstCard()
	if !ok {
		return reject(RejectCardNotHeld, "no card specified")
	}
	card, ok := cards.Get(cardID)
	if !ok || (card.Kind != cards.KindAction && card.Kind != cards.KindRent) {
		return reject(RejectWrongCardKind, "card %s is not an action or rent card", cardID)
	}
	if g.Pending != nil && attackNames[card.Name] {
		return reject(RejectInteractionBusy, "an interaction is already awaiting a response")
	}
	p := g.Players[action.ActingPlayerID]
	if !p.removeFromHand(cardID) {
		return reject(RejectCardNotHeld, "card %s is not in hand", cardID)
	}
	g.DiscardPile = append(g.DiscardPile, cardID)
	g.CardsPlayedThisTurn++
	g.recordAction(action, cardID)

	switch card.Name {
	case cards.NamePassGo:
		g.drawFromPile(p, 2)
	case cards.NameBirthday:
		g.applyBirthday(action.ActingPlayerID)
	case cards.NameDebtCollector:
		g.stageDebtCollector(action)
	case cards.NameRent, cards.NameWildRent:
		g.stageRent(action, card)
	case cards.NameSlyDeal:
		g.stageSlyDeal(action)
	case cards.NameDealBreaker:
		g.stageDealBreaker(action)
	case cards.NameForcedDeal:
		g.stageForcedDeal(action)
	}
	return nil
}

// applyBirthday settles a fixed demand against every other seat directly
// from their banks; shortfalls queue as deferred debts and the first one
// becomes the active interaction.
func (g *GameState) applyBirthday(creditorID string) {
	creditor := g.Players[creditorID]
	for _, seat := range g.Seats {
		if seat == creditorID {
			continue
		}
		debtor := g.Players[seat]
		shortfall := transferBankGreedy(debtor, creditor, cards.BirthdayAmount)
		if shortfall > 0 {
			g.DebtQueue = append(g.DebtQueue, PendingDebt{
				CreditorID: creditorID,
				DebtorID:   seat,
				Amount:     shortfall,
				Reason:     "birthday",
			})
		}
	}
	if g.Pending == nil && len(g.DebtQueue) > 0 {
		g.popDebtQueue()
	}
}

// validAttackTarget reports whether targetID names another seated player.
func (g *GameState) validAttackTarget(actorID, targetID string) (*Player, bool) {
	if targetID == "" || targetID == actorID {
		return nil, false
	}
	target, ok := g.Players[targetID]
	return target, ok
}

func (g *GameState) stageDebtCollector(action Action) {
	if _, ok := g.validAttackTarget(action.ActingPlayerID, action.TargetPlayerID); !ok {
		return
	}
	p := g.Players[action.ActingPlayerID]
	g.Pending = newConfirm(ConfirmInteraction{
		InitiatorID: action.ActingPlayerID,
		TargetID:    action.TargetPlayerID,
		Blockable:   true,
		AttackName:  cards.NameDebtCollector,
		Description: fmt.Sprintf("%s wants to collect $%dM from you using Debt Collector.", p.DisplayName, cards.DebtCollectorAmount),
		Original:    action.clone(),
	})
}

func (g *GameState) stageRent(action Action, card cards.Card) {
	if _, ok := g.validAttackTarget(action.ActingPlayerID, action.TargetPlayerID); !ok {
		return
	}
	color := action.PropertyColor
	info, ok := cards.Info(color)
	if !ok {
		return
	}
	// Dual-color rent cards only charge their printed colors.
	if card.Name == cards.NameRent && !card.EligibleColor(color) {
		return
	}
	p := g.Players[action.ActingPlayerID]
	if len(p.Properties[color]) == 0 {
		return
	}
	// The figure in the prompt is informational: acceptance recharges from
	// the charger's holdings at that moment, which may have changed.
	amount := rentAmount(p, color)
	g.Pending = newConfirm(ConfirmInteraction{
		InitiatorID: action.ActingPlayerID,
		TargetID:    action.TargetPlayerID,
		Blockable:   true,
		AttackName:  card.Name,
		Description: fmt.Sprintf("%s wants to charge you $%dM rent for %s properties.", p.DisplayName, amount, info.DisplayName),
		Original:    action.clone(),
	})
}

func (g *GameState) stageSlyDeal(action Action) {
	target, ok := g.validAttackTarget(action.ActingPlayerID, action.TargetPlayerID)
	if !ok {
		return
	}
	color := action.PropertyColor
	info, ok := cards.Info(color)
	// Cards in a completed set cannot be stolen one at a time.
	if !ok || len(target.Properties[color]) == 0 || target.hasCompleteSet(color) {
		return
	}
	p := g.Players[action.ActingPlayerID]
	g.Pending = newConfirm(ConfirmInteraction{
		InitiatorID: action.ActingPlayerID,
		TargetID:    action.TargetPlayerID,
		Blockable:   true,
		AttackName:  cards.NameSlyDeal,
		Description: fmt.Sprintf("%s wants to steal one of your %s properties.", p.DisplayName, info.DisplayName),
		Original:    action.clone(),
	})
}

func (g *GameState) stageDealBreaker(action Action) {
	target, ok := g.validAttackTarget(action.ActingPlayerID, action.TargetPlayerID)
	if !ok {
		return
	}
	color := action.PropertyColor
	info, ok := cards.Info(color)
	if !ok || !target.hasCompleteSet(color) {
		return
	}
	p := g.Players[action.ActingPlayerID]
	g.Pending = newConfirm(ConfirmInteraction{
		InitiatorID: action.ActingPlayerID,
		TargetID:    action.TargetPlayerID,
		Blockable:   true,
		AttackName:  cards.NameDealBreaker,
		Description: fmt.Sprintf("%s wants to steal your complete %s property set!", p.DisplayName, info.DisplayName),
		Original:    action.clone(),
	})
}

func (g *GameState) stageForcedDeal(action Action) {
	target, ok := g.validAttackTarget(action.ActingPlayerID, action.TargetPlayerID)
	if !ok || len(action.CardIDs) != 3 {
		return
	}
	p := g.Players[action.ActingPlayerID]
	ownID, theirID := action.CardIDs[1], action.CardIDs[2]
	ownColor, ownOK := p.propertyColorOf(ownID)
	theirColor, theirOK := target.propertyColorOf(theirID)
	if !ownOK || !theirOK {
		return
	}
	// Neither side of the trade may come out of a completed set.
	if p.hasCompleteSet(ownColor) || target.hasCompleteSet(theirColor) {
		return
	}
	ownInfo, _ := cards.Info(ownColor)
	theirInfo, _ := cards.Info(theirColor)
	g.Pending = newConfirm(ConfirmInteraction{
		InitiatorID: action.ActingPlayerID,
		TargetID:    action.TargetPlayerID,
		Blockable:   true,
		AttackName:  cards.NameForcedDeal,
		Description: fmt.Sprintf("%s wants to trade their %s property for your %s property.", p.DisplayName, ownInfo.DisplayName, theirInfo.DisplayName),
		Original:    action.clone(),
	})
}

// recordAction stamps the last-resolved-action log entry.
func (g *GameState) recordAction(action Action, cardID string) {
	g.LastAction = &LastAction{
		Kind:      string(action.Kind),
		PlayerID:  action.ActingPlayerID,
		TargetID:  action.TargetPlayerID,
		CardID:    cardID,
		Timestamp: time.Now().UTC(),
	}
}
