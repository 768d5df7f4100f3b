package activity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind says which record an activity was derived from
type Kind string

const (
	KindExpense    Kind = "expense"
	KindAdjustment Kind = "adjustment"
)

// Activity is one entry of a group's history. Activities are derived from
// expenses and adjustments on every request and never stored.
type Activity struct {
	ID          string
	GroupID     string
	Kind        Kind
	ActorID     string // payer of an expense, giver of an adjustment
	Description string
	Amount      decimal.Decimal
	CreatedAt   time.Time
}
