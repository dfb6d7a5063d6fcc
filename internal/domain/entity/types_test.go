package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

func TestAlignment_String(t *testing.T) {
	tests := []struct {
		align    Alignment
		expected string
	}{
		{AlignLeft, "left"},
		{AlignCenter, "center"},
		{AlignRight, "right"},
		{Alignment(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.align.String())
		})
	}
}

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		input string
		want  Alignment
	}{
		{"left", AlignLeft},
		{"center", AlignCenter},
		{"centre", AlignCenter},
		{"", AlignCenter},
		{"right", AlignRight},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAlignment(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseAlignment("justify")
	assert.Error(t, err)
}

func TestToFloat(t *testing.T) {
	assert.Equal(t, 16.0, ToFloat(fixed.I(16)))
	assert.Equal(t, -40.0, ToFloat(fixed.I(-40)))
	assert.Equal(t, 10.5, ToFloat(fixed.I(21)/2))
}
