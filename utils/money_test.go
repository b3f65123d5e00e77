package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLKR(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{400, "Rs. 400"},
		{1500, "Rs. 1,500"},
		{1500.5, "Rs. 1,500.50"},
		{1250000, "Rs. 1,250,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLKR(tt.amount))
	}
}
