package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeIntToUint16(t *testing.T) {
	tests := []struct {
		name     string
		value    int
		expected uint16
		hasError bool
	}{
		{"zero", 0, 0, false},
		{"weight total", 2048, 2048, false},
		{"max", math.MaxUint16, math.MaxUint16, false},
		{"negative", -1, 0, true},
		{"overflow", math.MaxUint16 + 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SafeIntToUint16(tt.value)
			if tt.hasError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSafeIntToUint32(t *testing.T) {
	result, err := SafeIntToUint32(10102)
	require.NoError(t, err)
	assert.Equal(t, uint32(10102), result)

	_, err = SafeIntToUint32(-5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
}

func TestSafeInt64ToInt(t *testing.T) {
	result, err := SafeInt64ToInt(2352 * 929)
	require.NoError(t, err)
	assert.Equal(t, 2352*929, result)
}
