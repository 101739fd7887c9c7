package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name     string
		ratings  []float64
		expected float64
	}{
		{name: "No ratings", ratings: nil, expected: 0},
		{name: "Single rating", ratings: []float64{4}, expected: 4},
		{name: "Mean of several", ratings: []float64{5, 4, 3}, expected: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, AverageRating(tt.ratings), 1e-9)
		})
	}
}
