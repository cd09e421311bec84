package domain

import "time"

// Status is the outcome recorded on every auditable event.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusDecline Status = "DECLINE"
)

// TxType is the direction of a balance change.
type TxType string

const (
	TxCredit TxType = "CREDIT"
	TxDebit  TxType = "DEBIT"
)

// ActionType names a non-monetary account event.
type ActionType string

const (
	ActionLogin    ActionType = "LOGIN"
	ActionLogout   ActionType = "LOGOUT"
	ActionRegister ActionType = "REGISTER"
)

// Kind is the variant tag stored with every audit row.
type Kind string

const (
	KindTransaction Kind = "TRANSACTION"
	KindAction      Kind = "ACTION"
)

// Outcome is what a ledger operation reports back to its caller.
type Outcome string

const (
	OutcomeSuccess        Outcome = "SUCCESS"
	OutcomeNotEnoughMoney Outcome = "NOT_ENOUGH_MONEY"
)

// Result is the outcome of a credit or debit and the balance it left behind,
// read inside the same unit of work.
type Result struct {
	Outcome Outcome
	Balance Amount
}

// Envelope holds the attributes shared by every recorded event.
type Envelope struct {
	ID         int64
	UserID     int64
	OccurredAt time.Time
	Status     Status
}

// Meta returns the shared envelope.
func (e Envelope) Meta() Envelope { return e }

// Auditable is a recorded event for a user: either a Transaction or an Action.
// The set of implementations is closed.
type Auditable interface {
	Meta() Envelope
	Kind() Kind
	withID(id int64) Auditable
}

// Transaction is a credit or debit attempt and its outcome.
type Transaction struct {
	Envelope
	Type   TxType
	Amount Amount
}

func (Transaction) Kind() Kind { return KindTransaction }

func (t Transaction) withID(id int64) Auditable {
	t.ID = id
	return t
}

// Action is a login, logout or registration event.
type Action struct {
	Envelope
	Type ActionType
}

func (Action) Kind() Kind { return KindAction }

func (a Action) withID(id int64) Auditable {
	a.ID = id
	return a
}

// WithID returns a copy of rec carrying the store-assigned id.
func WithID(rec Auditable, id int64) Auditable {
	return rec.withID(id)
}

func (s Status) Valid() bool {
	return s == StatusSuccess || s == StatusDecline
}

func (t TxType) Valid() bool {
	return t == TxCredit || t == TxDebit
}

func (a ActionType) Valid() bool {
	switch a {
	case ActionLogin, ActionLogout, ActionRegister:
		return true
	default:
		return false
	}
}
