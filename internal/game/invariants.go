package game

import (
	"fmt"

	"github.com/tahsinhasem/MonopolyDeal/internal/cards"
)

// InvariantViolation reports an internal-consistency failure. Violations
// indicate an engine bug, never a player mistake: callers should log them
// at error level, not surface them as rejections.
type InvariantViolation struct {
	Rule   string
	Detail string
}

func (v InvariantViolation) String() string {
	return fmt.Sprintf("%s: %s", v.Rule, v.Detail)
}

func violation(rule, format string, args ...any) InvariantViolation {
	return InvariantViolation{Rule: rule, Detail: fmt.Sprintf(format, args...)}
}

// CheckInvariants audits a state against the structural rules that every
// reachable state must satisfy: the card partition (each card id lives in
// exactly one zone), cached bank values, cached completed-set counts, the
// play-count bound, and the single-active-interaction rule.
func CheckInvariants(g *GameState) []InvariantViolation {
	var out []InvariantViolation

	// Card conservation: each catalog card appears in exactly one zone.
	seen := make(map[string]string, cards.Count())
	note := func(id, zone string) {
		if prev, dup := seen[id]; dup {
			out = append(out, violation("card-conservation", "card %s in both %s and %s", id, prev, zone))
			return
		}
		seen[id] = zone
	}
	for _, id := range g.DrawPile {
		note(id, "draw pile")
	}
	for _, id := range g.DiscardPile {
		note(id, "discard pile")
	}
	for pid, p := range g.Players {
		for _, id := range p.Hand {
			note(id, fmt.Sprintf("hand of %s", pid))
		}
		for _, id := range p.Bank {
			note(id, fmt.Sprintf("bank of %s", pid))
		}
		for color, ids := range p.Properties {
			for _, id := range ids {
				note(id, fmt.Sprintf("%s properties of %s", color, pid))
			}
		}
		for color, imp := range p.Improvements {
			for _, id := range imp.Houses {
				note(id, fmt.Sprintf("%s houses of %s", color, pid))
			}
			if imp.Hotel != "" {
				note(imp.Hotel, fmt.Sprintf("%s hotel of %s", color, pid))
			}
			if imp.Hotel != "" && len(imp.Houses) > 0 {
				out = append(out, violation("improvement", "%s set of %s has both hotel and houses", color, pid))
			}
			if size := cards.SetSize(color); len(p.Properties[color]) < size {
				out = append(out, violation("improvement", "%s improvements of %s sit on an incomplete set", color, pid))
			}
		}
	}
	for _, card := range cards.All() {
		if _, ok := seen[card.ID]; !ok {
			out = append(out, violation("card-conservation", "card %s is in no zone", card.ID))
		}
	}
	for id := range seen {
		if _, ok := cards.Get(id); !ok {
			out = append(out, violation("card-conservation", "unknown card id %s in play", id))
		}
	}

	// Cached derived fields.
	for pid, p := range g.Players {
		total := 0
		for _, id := range p.Bank {
			total += cards.Value(id)
		}
		if total != p.BankValue {
			out = append(out, violation("bank-value", "player %s caches %d, bank sums to %d", pid, p.BankValue, total))
		}
		complete := 0
		for color, ids := range p.Properties {
			if info, ok := cards.Info(color); ok && len(ids) == info.SetSize {
				complete++
			}
		}
		if complete != p.CompletedSets {
			out = append(out, violation("completed-sets", "player %s caches %d, holdings show %d", pid, p.CompletedSets, complete))
		}
	}

	// Turn bookkeeping.
	if g.CardsPlayedThisTurn > cards.PlaysPerTurn {
		out = append(out, violation("play-count", "cardsPlayedThisTurn is %d", g.CardsPlayedThisTurn))
	}
	if g.Status == StatusPlaying {
		if _, ok := g.Players[g.CurrentTurnPlayerID]; !ok {
			out = append(out, violation("turn-pointer", "current turn player %s is not seated", g.CurrentTurnPlayerID))
		}
	}
	if len(g.Seats) != len(g.Players) {
		out = append(out, violation("seats", "%d seats for %d players", len(g.Seats), len(g.Players)))
	}

	// At most one interaction, of exactly one kind.
	if g.Pending != nil {
		confirm := g.Pending.Confirm != nil
		debt := g.Pending.Debt != nil
		if confirm == debt {
			out = append(out, violation("interaction", "pending interaction must be exactly one of confirm or debt"))
		}
	}
	return out
}
