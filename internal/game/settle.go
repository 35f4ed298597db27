package game

import (
	"strings"

	"github.com/tahsinhasem/MonopolyDeal/internal/cards"
)

// Debt settlement. A debtor discharges a debt with an arbitrary mix of
// bank cards and unprotected property cards. The proposal is accepted when
// its face value covers the debt, or when it is everything the debtor has
// (the pay-everything escape valve, which also forgives a debtor with no
// assets at all). Overpayment is not refunded: the full proposed set
// transfers.

// transferBankGreedy moves bank cards from debtor to creditor, in bank
// order, until the transferred face value covers amount or the bank is
// exhausted. Returns the uncovered remainder. Cards are indivisible, so
// the last card moved may overpay; overpayment is not refunded.
func transferBankGreedy(debtor, creditor *Player, amount int) int {
	paid := 0
	for paid < amount && len(debtor.Bank) > 0 {
		id := debtor.Bank[0]
		debtor.Bank = debtor.Bank[1:]
		creditor.Bank = append(creditor.Bank, id)
		paid += cards.Value(id)
	}
	recomputeBankValue(debtor)
	recomputeBankValue(creditor)
	if paid < amount {
		return amount - paid
	}
	return 0
}

// eligibleAssets lists every card the debtor can be made to pay with: all
// bank cards plus property cards outside completed sets. Cards in a
// completed set are protected from forced payment.
func eligibleAssets(p *Player) map[string]bool {
	assets := make(map[string]bool, len(p.Bank))
	for _, id := range p.Bank {
		assets[id] = true
	}
	for color, ids := range p.Properties {
		if p.hasCompleteSet(color) {
			continue
		}
		for _, id := range ids {
			assets[id] = true
		}
	}
	return assets
}

// resolvePayDebt settles the active debt interaction with the submitted
// cards. An empty submission is valid only when the debtor has no eligible
// assets, in which case the debt is forgiven.
func (g *GameState) resolvePayDebt(action Action) *Rejection {
	if g.Pending == nil || g.Pending.Debt == nil {
		return reject(RejectNoInteraction, "no debt awaiting payment")
	}
	debt := g.Pending.Debt
	if debt.DebtorID != action.ActingPlayerID {
		return reject(RejectBadTarget, "the debt is not owed by %s", action.ActingPlayerID)
	}
	debtor := g.Players[debt.DebtorID]
	creditor, ok := g.Players[debt.CreditorID]
	if !ok {
		// Creditor seat vanished; nothing left to collect.
		g.popDebtQueue()
		return nil
	}

	assets := eligibleAssets(debtor)
	proposed := make(map[string]bool, len(action.CardIDs))
	total := 0
	for _, id := range action.CardIDs {
		if proposed[id] {
			return reject(RejectBadPayment, "card %s proposed twice", id)
		}
		if !assets[id] {
			return reject(RejectBadPayment, "card %s is not an eligible payment asset", id)
		}
		proposed[id] = true
		total += cards.Value(id)
	}

	payingEverything := len(proposed) == len(assets)
	if total < debt.Amount && !payingEverything {
		return reject(RejectBadPayment, "proposal worth %d does not cover the %d owed", total, debt.Amount)
	}

	for _, id := range action.CardIDs {
		if color, ok := debtor.propertyColorOf(id); ok {
			debtor.removeProperty(color, id)
			creditor.addProperty(color, id)
			continue
		}
		for i, bankID := range debtor.Bank {
			if bankID == id {
				debtor.Bank = append(debtor.Bank[:i], debtor.Bank[i+1:]...)
				creditor.Bank = append(creditor.Bank, id)
				break
			}
		}
	}
	recomputeBankValue(debtor)
	recomputeBankValue(creditor)
	recomputeCompletedSets(debtor)
	recomputeCompletedSets(creditor)

	g.LastAction = &LastAction{
		Kind:      "DEBT_PAID_" + strings.ToUpper(debt.Reason),
		PlayerID:  debt.DebtorID,
		TargetID:  debt.CreditorID,
		Timestamp: nowUTC(),
	}
	g.popDebtQueue()
	return nil
}
