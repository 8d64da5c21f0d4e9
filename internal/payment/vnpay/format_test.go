package vnpay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{amount: 0, expected: "0\u00a0₫"},
		{amount: 999, expected: "999\u00a0₫"},
		{amount: 1000, expected: "1.000\u00a0₫"},
		{amount: 100000, expected: "100.000\u00a0₫"},
		{amount: 1234567, expected: "1.234.567\u00a0₫"},
		{amount: -1235, expected: "-1.235\u00a0₫"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAmount(tt.amount))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "valid", raw: "20240115143005", expected: "14:30:05 15/01/2024"},
		{name: "end of year", raw: "20241231235959", expected: "23:59:59 31/12/2024"},
		{name: "too short", raw: "2024011514300", expected: ""},
		{name: "too long", raw: "202401151430050", expected: ""},
		{name: "non digits", raw: "2024-01-151430", expected: ""},
		{name: "impossible month", raw: "20241315143005", expected: ""},
		{name: "empty", raw: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimestamp(tt.raw))
		})
	}
}
