package game

import (
	"fmt"

	"github.com/tahsinhasem/MonopolyDeal/internal/cards"
)

// ActionKind discriminates a submitted action.
type ActionKind string

const (
	ActionDrawCards       ActionKind = "DRAW_CARDS"
	ActionPlayMoney       ActionKind = "PLAY_MONEY"
	ActionPlayProperty    ActionKind = "PLAY_PROPERTY"
	ActionPlayImprovement ActionKind = "PLAY_IMPROVEMENT"
	ActionPlayAction      ActionKind = "PLAY_ACTION"
	ActionDiscardCards    ActionKind = "DISCARD_CARDS"
	ActionEndTurn         ActionKind = "END_TURN"
	ActionSayNo           ActionKind = "SAY_NO"
	ActionAcceptAction    ActionKind = "ACCEPT_ACTION"
	ActionPayDebt         ActionKind = "PAY_DEBT"
)

var validActionKinds = map[ActionKind]bool{
	ActionDrawCards:       true,
	ActionPlayMoney:       true,
	ActionPlayProperty:    true,
	ActionPlayImprovement: true,
	ActionPlayAction:      true,
	ActionDiscardCards:    true,
	ActionEndTurn:         true,
	ActionSayNo:           true,
	ActionAcceptAction:    true,
	ActionPayDebt:         true,
}

// Valid reports whether k is a known action kind.
func (k ActionKind) Valid() bool {
	return validActionKinds[k]
}

// Action is one player request against a game state. CardIDs,
// TargetPlayerID and PropertyColor are interpreted per kind; for a Forced
// Deal, CardIDs is [action card, own property, target's property].
type Action struct {
	Kind           ActionKind  `json:"kind"`
	ActingPlayerID string      `json:"actingPlayerId"`
	CardIDs        []string    `json:"cardIds,omitempty"`
	TargetPlayerID string      `json:"targetPlayerId,omitempty"`
	PropertyColor  cards.Color `json:"propertyColor,omitempty"`
}

func (a Action) clone() Action {
	out := a
	out.CardIDs = append([]string(nil), a.CardIDs...)
	return out
}

// firstCard returns the leading card id of the action, if any.
func (a Action) firstCard() (string, bool) {
	if len(a.CardIDs) == 0 {
		return "", false
	}
	return a.CardIDs[0], true
}

func (a Action) String() string {
	return fmt.Sprintf("%s by %s", a.Kind, a.ActingPlayerID)
}
