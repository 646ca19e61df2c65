package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormattedPrice(t *testing.T) {
	cases := []struct {
		amount   string
		currency string
		want     string
	}{
		{"12.9", "EUR", "€12.90"},
		{"7", "USD", "$7.00"},
		{"1234.567", "GBP", "£1234.57"},
		{"5", "CHF", "CHF 5.00"},
	}
	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.amount)
		if err != nil {
			t.Fatalf("bad amount %q: %v", tc.amount, err)
		}
		item := MenuItem{PriceAmount: amount, PriceCurrency: tc.currency}
		if got := item.FormattedPrice(); got != tc.want {
			t.Errorf("FormattedPrice(%s %s) = %q, want %q", tc.amount, tc.currency, got, tc.want)
		}
	}
}
