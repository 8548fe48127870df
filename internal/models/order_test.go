package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemLines(t *testing.T) {
	testCases := []struct {
		name     string
		items    string
		expected []string
	}{
		{
			name:     "JSON list with and without quantity",
			items:    `[{"name":"Margherita","quantity":2},{"name":"Diavola"}]`,
			expected: []string{"Margherita (x2)", "Diavola (x1)"},
		},
		{
			name:     "invalid JSON falls back to raw string",
			items:    "Margherita, Diavola",
			expected: []string{"Margherita, Diavola"},
		},
		{
			name:     "empty renders placeholder",
			items:    "",
			expected: []string{"no pizzas"},
		},
		{
			name:     "empty JSON list renders placeholder",
			items:    "[]",
			expected: []string{"no pizzas"},
		},
		{
			name:     "JSON list of plain strings",
			items:    `["Margherita","Diavola"]`,
			expected: []string{"Margherita", "Diavola"},
		},
		{
			name:     "JSON non-list falls back to raw string",
			items:    `{"name":"Margherita"}`,
			expected: []string{`{"name":"Margherita"}`},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			order := Order{Items: tt.items}
			assert.Equal(t, tt.expected, order.ItemLines())
		})
	}
}

func TestItemCount(t *testing.T) {
	testCases := []struct {
		name     string
		items    string
		expected int
	}{
		{"JSON list", `[{"name":"Margherita","quantity":2},{"name":"Diavola"}]`, 2},
		{"comma-separated fallback", "Margherita, Diavola, Hawaiian", 3},
		{"single raw name", "Margherita", 1},
		{"empty", "", 0},
		{"whitespace only", "   ", 0},
		{"empty JSON list", "[]", 0},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			order := Order{Items: tt.items}
			assert.Equal(t, tt.expected, order.ItemCount())
		})
	}
}
