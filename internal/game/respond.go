package game

import (
	"strings"

	"github.com/tahsinhasem/MonopolyDeal/internal/cards"
)

// resolveSayNo blocks the pending attack with a counter card. The counter
// card is spent, the interaction clears, and the attack has no further
// effect.
func (g *GameState) resolveSayNo(action Action) *Rejection {
	if g.Pending == nil || g.Pending.Confirm == nil {
		return reject(RejectNoInteraction, "no attack awaiting a response")
	}
	confirm := g.Pending.Confirm
	if confirm.TargetID != action.ActingPlayerID {
		return reject(RejectBadTarget, "the attack is not aimed at %s", action.ActingPlayerID)
	}
	if !confirm.Blockable {
		return reject(RejectNotBlockable, "%s cannot be blocked", confirm.AttackName)
	}
	counterID, ok := action.firstCard()
	if !ok {
		return reject(RejectCardNotHeld, "no counter card specified")
	}
	card, ok := cards.Get(counterID)
	if !ok || card.Name != cards.NameJustSayNo {
		return reject(RejectWrongCardKind, "card %s is not a counter card", counterID)
	}
	p := g.Players[action.ActingPlayerID]
	if !p.removeFromHand(counterID) {
		return reject(RejectCardNotHeld, "card %s is not in hand", counterID)
	}
	g.DiscardPile = append(g.DiscardPile, counterID)
	g.Pending = nil
	g.LastAction = &LastAction{
		Kind:      "JUST_SAY_NO",
		PlayerID:  action.ActingPlayerID,
		TargetID:  confirm.InitiatorID,
		CardID:    counterID,
		Timestamp: nowUTC(),
	}
	return nil
}

// resolveAccept lets the target concede the pending attack, replaying the
// captured original action's effect against the current state. Money
// effects charge the target's bank up to its funds and leave any shortfall
// as a new, unblockable debt interaction.
func (g *GameState) resolveAccept(action Action) *Rejection {
	if g.Pending == nil || g.Pending.Confirm == nil {
		return reject(RejectNoInteraction, "no attack awaiting a response")
	}
	confirm := g.Pending.Confirm
	if confirm.TargetID != action.ActingPlayerID {
		return reject(RejectBadTarget, "the attack is not aimed at %s", action.ActingPlayerID)
	}
	attacker, ok := g.Players[confirm.InitiatorID]
	if !ok {
		// Initiator left the table entirely; nothing to apply.
		g.Pending = nil
		return nil
	}
	defender := g.Players[action.ActingPlayerID]
	original := confirm.Original

	switch confirm.AttackName {
	case cards.NameDebtCollector:
		g.applyMoneyAttack(attacker, defender, cards.DebtCollectorAmount, "debt_collector")
	case cards.NameRent, cards.NameWildRent:
		amount := rentAmount(attacker, original.PropertyColor)
		if amount == 0 {
			// Charger no longer holds the color; the attack fizzles.
			g.Pending = nil
			break
		}
		g.applyMoneyAttack(attacker, defender, amount, "rent")
	case cards.NameSlyDeal:
		g.applySlyDeal(attacker, defender, original.PropertyColor)
	case cards.NameDealBreaker:
		g.applyDealBreaker(attacker, defender, original.PropertyColor)
	case cards.NameForcedDeal:
		g.applyForcedDeal(attacker, defender, original)
	default:
		g.Pending = nil
	}

	g.LastAction = &LastAction{
		Kind:      strings.ToUpper(strings.ReplaceAll(confirm.AttackName, " ", "_")) + "_ACCEPTED",
		PlayerID:  confirm.InitiatorID,
		TargetID:  action.ActingPlayerID,
		CardID:    firstOrEmpty(original.CardIDs),
		Timestamp: nowUTC(),
	}
	return nil
}

// applyMoneyAttack charges the defender's bank and converts any shortfall
// into an unblockable debt interaction.
func (g *GameState) applyMoneyAttack(attacker, defender *Player, amount int, reason string) {
	shortfall := transferBankGreedy(defender, attacker, amount)
	if shortfall > 0 {
		g.Pending = newDebt(DebtInteraction{
			CreditorID: attacker.ID,
			DebtorID:   defender.ID,
			Amount:     shortfall,
			Reason:     reason,
		})
		return
	}
	g.Pending = nil
}

func (g *GameState) applySlyDeal(attacker, defender *Player, color cards.Color) {
	if ids := defender.Properties[color]; len(ids) > 0 && !defender.hasCompleteSet(color) {
		stolen := ids[0]
		defender.removeProperty(color, stolen)
		attacker.addProperty(color, stolen)
		recomputeCompletedSets(attacker)
		recomputeCompletedSets(defender)
	}
	g.Pending = nil
}

func (g *GameState) applyDealBreaker(attacker, defender *Player, color cards.Color) {
	if defender.hasCompleteSet(color) {
		for _, id := range defender.Properties[color] {
			attacker.addProperty(color, id)
		}
		delete(defender.Properties, color)
		// Improvements travel with the set.
		if imp, ok := defender.Improvements[color]; ok {
			if attacker.Improvements == nil {
				attacker.Improvements = make(map[cards.Color]*Improvement)
			}
			attacker.Improvements[color] = imp
			delete(defender.Improvements, color)
		}
		recomputeCompletedSets(attacker)
		recomputeCompletedSets(defender)
	}
	g.Pending = nil
}

func (g *GameState) applyForcedDeal(attacker, defender *Player, original Action) {
	if len(original.CardIDs) != 3 {
		g.Pending = nil
		return
	}
	ownID, theirID := original.CardIDs[1], original.CardIDs[2]
	ownColor, ownOK := attacker.propertyColorOf(ownID)
	theirColor, theirOK := defender.propertyColorOf(theirID)
	// Both properties must still sit where the attack claimed, and
	// neither may have since become part of a completed set.
	if ownOK && theirOK && !attacker.hasCompleteSet(ownColor) && !defender.hasCompleteSet(theirColor) {
		attacker.removeProperty(ownColor, ownID)
		defender.removeProperty(theirColor, theirID)
		attacker.addProperty(theirColor, theirID)
		defender.addProperty(ownColor, ownID)
		recomputeCompletedSets(attacker)
		recomputeCompletedSets(defender)
	}
	g.Pending = nil
}

func firstOrEmpty(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}
