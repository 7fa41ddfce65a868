package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected string
	}{
		{"zero", "0", "₹0.00"},
		{"small", "5", "₹5.00"},
		{"thousands", "1234.5", "₹1,234.50"},
		{"millions", "1234567.891", "₹1,234,567.89"},
		{"rounds half away from zero", "0.005", "₹0.01"},
		{"negative", "-1234", "₹-1,234.00"},
		{"largest int64", "9223372036854775807", "₹9,223,372,036,854,775,807.00"},
		{"beyond int64", "10000000000000000000.5", "₹10,000,000,000,000,000,000.50"},
		{"negative beyond int64", "-123456789012345678901234", "₹-123,456,789,012,345,678,901,234.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMoney(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name     string
		part     string
		total    string
		expected int
	}{
		{"empty", "0", "1000", 0},
		{"rounded", "333", "1000", 33},
		{"rounds half up", "125", "1000", 13},
		{"complete", "1000", "1000", 100},
		{"clamped when over target", "2500", "1000", 100},
		{"non-positive total", "10", "0", 0},
		{"negative part", "-10", "100", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressPercent(decimal.RequireFromString(tt.part), decimal.RequireFromString(tt.total))
			assert.Equal(t, tt.expected, got)
		})
	}
}
