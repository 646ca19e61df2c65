package models

import "testing"

func TestParseTrafficSource(t *testing.T) {
	cases := []struct {
		raw  string
		want TrafficSource
	}{
		{"qr", TrafficSourceQr},
		{"", TrafficSourceDirect},
		{"direct", TrafficSourceDirect},
		{"QR", TrafficSourceDirect},
		{"email", TrafficSourceDirect},
	}
	for _, tc := range cases {
		if got := ParseTrafficSource(tc.raw); got != tc.want {
			t.Errorf("ParseTrafficSource(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
