package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitType selects how an expense amount is divided.
type SplitType string

const (
	SplitEqual      SplitType = "equal"
	SplitPercentage SplitType = "percentage"
	SplitCustom     SplitType = "custom"
)

// Split is one member's fixed share of an expense.
type Split struct {
	MemberID   string
	Amount     decimal.Decimal
	Percentage *decimal.Decimal
}

// Expense is a payment made by one member on behalf of the group.
// Splits are fixed at creation and never recomputed.
type Expense struct {
	ID          string
	GroupID     string
	PayerID     string
	Amount      decimal.Decimal
	Category    string
	Description string
	SplitType   SplitType
	Splits      []Split
	CreatedAt   time.Time
}

// Adjustment is a manual transfer of balance between two members.
// Applying it moves Amount of credit from From to To.
type Adjustment struct {
	ID          string
	GroupID     string
	From        string
	To          string
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}
