package game

// PendingInteraction is the single in-flight attack awaiting a response.
// It is a tagged union: exactly one of Confirm or Debt is non-nil. The
// interaction is durable state — it survives disconnects and is resumed by
// whichever response action arrives later.
type PendingInteraction struct {
	Confirm *ConfirmInteraction `json:"confirm,omitempty"`
	Debt    *DebtInteraction    `json:"debt,omitempty"`
}

// ConfirmInteraction is a played attack waiting for its target to block or
// accept. Original captures the full attack so acceptance can replay its
// effect against the then-current state.
type ConfirmInteraction struct {
	InitiatorID string `json:"initiatorId"`
	TargetID    string `json:"targetId"`
	// Blockable is true for every attack in the reference card set. The
	// field exists so an unblockable confirm remains representable.
	Blockable   bool   `json:"blockable"`
	AttackName  string `json:"attackName"`
	Description string `json:"description"`
	Original    Action `json:"original"`
}

// DebtInteraction is an obligation to pay; never blockable.
type DebtInteraction struct {
	CreditorID string `json:"creditorId"`
	DebtorID   string `json:"debtorId"`
	Amount     int    `json:"amount"`
	Reason     string `json:"reason"`
}

// newConfirm wraps a ConfirmInteraction as the active interaction.
func newConfirm(c ConfirmInteraction) *PendingInteraction {
	return &PendingInteraction{Confirm: &c}
}

// newDebt wraps a DebtInteraction as the active interaction.
func newDebt(d DebtInteraction) *PendingInteraction {
	return &PendingInteraction{Debt: &d}
}

func (pi *PendingInteraction) clone() *PendingInteraction {
	out := &PendingInteraction{}
	if pi.Confirm != nil {
		c := *pi.Confirm
		c.Original = pi.Confirm.Original.clone()
		out.Confirm = &c
	}
	if pi.Debt != nil {
		d := *pi.Debt
		out.Debt = &d
	}
	return out
}

// TargetID returns the player the interaction is waiting on.
func (pi *PendingInteraction) TargetID() string {
	switch {
	case pi.Confirm != nil:
		return pi.Confirm.TargetID
	case pi.Debt != nil:
		return pi.Debt.DebtorID
	}
	return ""
}

// popDebtQueue installs the head of the debt queue as the active
// interaction, or clears the interaction slot when the queue is empty.
// Debts are consumed strictly in creation order.
func (g *GameState) popDebtQueue() {
	if len(g.DebtQueue) == 0 {
		g.Pending = nil
		return
	}
	head := g.DebtQueue[0]
	g.DebtQueue = g.DebtQueue[1:]
	if len(g.DebtQueue) == 0 {
		g.DebtQueue = nil
	}
	g.Pending = newDebt(DebtInteraction{
		CreditorID: head.CreditorID,
		DebtorID:   head.DebtorID,
		Amount:     head.Amount,
		Reason:     head.Reason,
	})
}
