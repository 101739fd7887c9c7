package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalAndFloat(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		expected    float64
		expectError bool
	}{
		{name: "Number", payload: `{"productId":"p1","price":49.5}`, expected: 49.5},
		{name: "Numeric string", payload: `{"productId":"p1","price":"12"}`, expected: 12},
		{name: "Null", payload: `{"productId":"p1","price":null}`, expectError: true},
		{name: "Missing", payload: `{"productId":"p1"}`, expectError: true},
		{name: "Not a number", payload: `{"productId":"p1","price":"abc"}`, expectError: true},
		{name: "NaN string", payload: `{"productId":"p1","price":"NaN"}`, expectError: true},
		{name: "Infinity string", payload: `{"productId":"p1","price":"Inf"}`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in CartLineInput
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &in))

			v, err := in.Price.Float()
			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidPrice)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}
