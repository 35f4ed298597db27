package game

// Turn structure: Draw -> Play -> Discard -> Draw (next seat).
//
// Draw permits exactly one DrawCards action. Play permits up to three card
// plays and EndTurn at any point. EndTurn moves to Discard instead of
// advancing when the hand exceeds the limit; Discard permits only
// DiscardCards and completes the turn once the hand is back under the
// limit. There is no terminal phase.

// advanceTurn hands the turn to the next seat and resets the per-turn
// counters.
func (g *GameState) advanceTurn() {
	g.CurrentTurnPlayerID = g.nextSeat(g.CurrentTurnPlayerID)
	g.TurnPhase = PhaseDraw
	g.CardsDrawnThisTurn = 0
	g.CardsPlayedThisTurn = 0
}

// drawFromPile moves up to n cards off the top of the draw pile into the
// player's hand. An exhausted pile deals what remains.
func (g *GameState) drawFromPile(p *Player, n int) []string {
	if n > len(g.DrawPile) {
		n = len(g.DrawPile)
	}
	drawn := g.DrawPile[:n]
	p.Hand = append(p.Hand, drawn...)
	g.DrawPile = g.DrawPile[n:]
	return drawn
}
