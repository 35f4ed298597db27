package game

import "fmt"

// RejectionCode classifies why an action was refused. Rejections are the
// ordinary error path: state is unchanged and nothing is logged at error
// level. They are not Go errors because the caller is expected to surface
// them to the player, not to fail.
type RejectionCode string

const (
	RejectUnknownKind      RejectionCode = "UNKNOWN_KIND"
	RejectNoSuchPlayer     RejectionCode = "NO_SUCH_PLAYER"
	RejectNotYourTurn      RejectionCode = "NOT_YOUR_TURN"
	RejectWrongPhase       RejectionCode = "WRONG_PHASE"
	RejectWrongStatus      RejectionCode = "WRONG_STATUS"
	RejectAlreadyDrawn     RejectionCode = "ALREADY_DRAWN"
	RejectPlayLimit        RejectionCode = "PLAY_LIMIT"
	RejectCardNotHeld      RejectionCode = "CARD_NOT_HELD"
	RejectWrongCardKind    RejectionCode = "WRONG_CARD_KIND"
	RejectBadColor         RejectionCode = "BAD_COLOR"
	RejectSetIncomplete    RejectionCode = "SET_INCOMPLETE"
	RejectImprovementRules RejectionCode = "IMPROVEMENT_RULES"
	RejectBadTarget        RejectionCode = "BAD_TARGET"
	RejectInteractionBusy  RejectionCode = "INTERACTION_BUSY"
	RejectNoInteraction    RejectionCode = "NO_INTERACTION"
	RejectNotBlockable     RejectionCode = "NOT_BLOCKABLE"
	RejectBadPayment       RejectionCode = "BAD_PAYMENT"
)

// Rejection explains a refused action. Mirrors the shape of a legality
// result: a code for machines, a reason for humans.
type Rejection struct {
	Code   RejectionCode
	Reason string
}

func reject(code RejectionCode, format string, args ...any) *Rejection {
	return &Rejection{Code: code, Reason: fmt.Sprintf(format, args...)}
}

func (r *Rejection) String() string {
	return fmt.Sprintf("%s: %s", r.Code, r.Reason)
}
