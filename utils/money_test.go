package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"999", "$999.00"},
		{"1000", "$1,000.00"},
		{"1234.5", "$1,234.50"},
		{"1234567.8", "$1,234,567.80"},
		{"52.99", "$52.99"},
		{"-12.5", "-$12.50"},
		{"0.005", "$0.01"},
	}
	for _, tt := range tests {
		got := FormatUSD(decimal.RequireFromString(tt.in))
		if got != tt.want {
			t.Errorf("FormatUSD(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
