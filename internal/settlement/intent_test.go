package settlement

import (
	"strings"
	"testing"

	"github.com/fkhayef/fairsplit/internal/models"
)

func TestIntentGeneric(t *testing.T) {
	b := DefaultIntentBuilder()

	got := b.Build(Payee{Address: "ALICE_UPI@upi", Name: "Alice Smith"}, dec("300"))
	want := "upi://pay?recipient=ALICE_UPI%40upi&amount=300.00&currency=INR&memo=FairSplit%20Settlement&name=Alice%20Smith"
	if got != want {
		t.Errorf("Build() =\n%s\nwant\n%s", got, want)
	}
}

func TestIntentUPI(t *testing.T) {
	b := IntentBuilder{Scheme: "upi", Currency: "INR", Memo: "FairSplit Settlement", Format: IntentUPI}

	got := b.Build(Payee{Address: "bob@upi", Name: "Bob"}, dec("12.5"))
	want := "upi://pay?pa=bob%40upi&am=12.50&cu=INR&tn=FairSplit%20Settlement&pn=Bob"
	if got != want {
		t.Errorf("Build() =\n%s\nwant\n%s", got, want)
	}
}

func TestIntentEscapesReservedCharacters(t *testing.T) {
	b := IntentBuilder{Scheme: "pay", Currency: "USD", Memo: "a&b=c", Format: IntentGeneric}

	got := b.Build(Payee{Address: "x", Name: "Tom & Jerry"}, dec("1"))
	want := "pay://pay?recipient=x&amount=1.00&currency=USD&memo=a%26b%3Dc&name=Tom%20%26%20Jerry"
	if got != want {
		t.Errorf("Build() =\n%s\nwant\n%s", got, want)
	}
}

func TestAttach(t *testing.T) {
	pairs := []Pair{
		{From: "a", To: "b", Amount: dec("10")},
		{From: "a", To: "ghost", Amount: dec("5")},
	}
	payees := PayeesOf([]models.Member{{ID: "b", Name: "Bea", PaymentAddress: "bea@upi"}})

	DefaultIntentBuilder().Attach(pairs, payees)

	if !strings.Contains(pairs[0].Intent, "recipient=bea%40upi") || !strings.Contains(pairs[0].Intent, "name=Bea") {
		t.Errorf("unexpected intent %s", pairs[0].Intent)
	}
	if !strings.Contains(pairs[1].Intent, "recipient=&") || !strings.Contains(pairs[1].Intent, "name=ghost") {
		t.Errorf("unknown creditors should fall back to their id, got %s", pairs[1].Intent)
	}
}
