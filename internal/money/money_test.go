package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"33.333", "33.33"},
		{"33.335", "33.34"},
		{"-33.335", "-33.34"},
		{"0.005", "0.01"},
		{"100", "100"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Round2(decimal.RequireFromString(tt.in))
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Round2(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestSumAvoidsFloatDrift(t *testing.T) {
	values := make([]decimal.Decimal, 10)
	for i := range values {
		values[i] = FromFloat(0.1)
	}
	if got := Sum(values...); !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Sum = %s, want 1", got)
	}
}

func TestNearZeroAndWithin(t *testing.T) {
	if !NearZero(decimal.RequireFromString("0.01")) {
		t.Error("0.01 should be within tolerance")
	}
	if !NearZero(decimal.RequireFromString("-0.01")) {
		t.Error("-0.01 should be within tolerance")
	}
	if NearZero(decimal.RequireFromString("0.02")) {
		t.Error("0.02 should not be within tolerance")
	}
	if !Within(decimal.RequireFromString("99.99"), Hundred) {
		t.Error("99.99 should be within tolerance of 100")
	}
}

func TestFormat(t *testing.T) {
	if got := Format(decimal.NewFromInt(300)); got != "300.00" {
		t.Errorf("Format(300) = %q", got)
	}
	if got := Format(decimal.RequireFromString("12.5")); got != "12.50" {
		t.Errorf("Format(12.5) = %q", got)
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse("abc"); err == nil {
		t.Error("expected error for non-numeric amount")
	}
	d, err := Parse("42.10")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if Float(d) != 42.1 {
		t.Errorf("Float = %v, want 42.1", Float(d))
	}
}
