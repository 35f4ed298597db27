package game

import "github.com/tahsinhasem/MonopolyDeal/internal/cards"

// recomputeCompletedSets recounts a player's completed sets from their
// current property holdings. Always a full recount — incremental patching
// of the cached counter drifts after multi-card transfers.
func recomputeCompletedSets(p *Player) {
	count := 0
	for color, ids := range p.Properties {
		info, ok := cards.Info(color)
		if ok && len(ids) == info.SetSize {
			count++
		}
	}
	p.CompletedSets = count
}

// recomputeBankValue recounts a player's cached bank value from the cards
// actually in the bank.
func recomputeBankValue(p *Player) {
	total := 0
	for _, id := range p.Bank {
		total += cards.Value(id)
	}
	p.BankValue = total
}

// rentAmount computes the rent a player can charge for one color: the rent
// ladder entry for the number of properties held, plus +3 per house, with a
// hotel replacing all house bonuses with a flat +5.
func rentAmount(p *Player, color cards.Color) int {
	holdings := p.Properties[color]
	info, ok := cards.Info(color)
	if !ok || len(holdings) == 0 {
		return 0
	}
	idx := len(holdings) - 1
	if idx >= len(info.RentBySetCount) {
		idx = len(info.RentBySetCount) - 1
	}
	rent := info.RentBySetCount[idx]

	imp := p.Improvements[color]
	if imp == nil {
		return rent
	}
	bonus := len(imp.Houses) * cards.HouseRentBonus
	if imp.Hotel != "" {
		bonus = cards.HotelRentBonus
	}
	return rent + bonus
}

// Winner returns the first seated player whose completed sets reached the
// win threshold. Game-over is a score observation, not an engine phase;
// the caller flips Status to finished when it sees a winner.
func (g *GameState) Winner() (*Player, bool) {
	for _, id := range g.Seats {
		p, ok := g.Players[id]
		if ok && p.CompletedSets >= cards.WinThreshold {
			return p, true
		}
	}
	return nil, false
}
