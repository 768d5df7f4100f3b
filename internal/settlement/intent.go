package settlement

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/fairsplit/internal/models"
	"github.com/fkhayef/fairsplit/internal/money"
)

// IntentFormat selects the query layout of a payment intent.
type IntentFormat string

const (
	// IntentGeneric uses recipient/amount/currency/memo/name parameters.
	IntentGeneric IntentFormat = "generic"
	// IntentUPI uses the pa/am/cu/tn/pn parameters understood by UPI apps.
	IntentUPI IntentFormat = "upi"
)

// Payee is the receiving side of an intent.
type Payee struct {
	Address string
	Name    string
}

// IntentBuilder renders payment deep links. It never executes payments.
type IntentBuilder struct {
	Scheme   string
	Currency string
	Memo     string
	Format   IntentFormat
}

// DefaultIntentBuilder returns the builder used when nothing is configured.
func DefaultIntentBuilder() IntentBuilder {
	return IntentBuilder{
		Scheme:   "upi",
		Currency: "INR",
		Memo:     "FairSplit Settlement",
		Format:   IntentGeneric,
	}
}

// Build returns the intent URI for paying amount to payee.
func (b IntentBuilder) Build(payee Payee, amount decimal.Decimal) string {
	amt := money.Format(amount)

	keys := [5]string{"recipient", "amount", "currency", "memo", "name"}
	if b.Format == IntentUPI {
		keys = [5]string{"pa", "am", "cu", "tn", "pn"}
	}
	values := [5]string{payee.Address, amt, b.Currency, b.Memo, payee.Name}

	params := make([]string, len(keys))
	for i := range keys {
		params[i] = keys[i] + "=" + escape(values[i])
	}

	return fmt.Sprintf("%s://pay?%s", b.Scheme, strings.Join(params, "&"))
}

// escape percent-encodes a query value, using %20 rather than + for spaces.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// PayeesOf maps every member of a group to its payment details.
func PayeesOf(members []models.Member) map[string]Payee {
	payees := make(map[string]Payee, len(members))
	for _, m := range members {
		payees[m.ID] = Payee{Address: m.PaymentAddress, Name: m.Name}
	}
	return payees
}

// Attach fills in the intent of every pair, paying its creditor. Creditors
// missing from payees get an intent with an empty address and their id as
// name.
func (b IntentBuilder) Attach(pairs []Pair, payees map[string]Payee) {
	for i := range pairs {
		payee, ok := payees[pairs[i].To]
		if !ok {
			payee = Payee{Name: pairs[i].To}
		}
		pairs[i].Intent = b.Build(payee, pairs[i].Amount)
	}
}
