// Package common provides tests for utility functions
package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceAt(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0x03, 0x04}

	testCases := []struct {
		name     string
		offset   int
		length   int
		expected []byte
		hasError bool
	}{
		{"middle span", 1, 3, []byte{0x01, 0x02, 0x03}, false},
		{"whole buffer", 0, 5, data, false},
		{"empty span at end", 5, 0, []byte{}, false},
		{"past end", 3, 3, nil, true},
		{"negative offset", -1, 2, nil, true},
		{"negative length", 0, -1, nil, true},
		{"offset beyond buffer", 6, 0, nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := SliceAt(data, tc.offset, tc.length)
			if tc.hasError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestUint16LEAt(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		offset   int
		expected uint16
		hasError bool
	}{
		{"normal value", []byte{0x34, 0x12}, 0, 0x1234, false},
		{"offset value", []byte{0xFF, 0x00, 0x08}, 1, 0x0800, false},
		{"max value", []byte{0xFF, 0xFF}, 0, 0xFFFF, false},
		{"incomplete data", []byte{0x34}, 0, 0, true},
		{"empty data", []byte{}, 0, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Uint16LEAt(tc.data, tc.offset)
			if tc.hasError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result, "Uint16LEAt() = 0x%04X, want 0x%04X", result, tc.expected)
		})
	}
}

func TestPutUint16LEAt(t *testing.T) {
	data := make([]byte, 4)
	require.NoError(t, PutUint16LEAt(data, 2, 0x0800))
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x08}, data)

	require.Error(t, PutUint16LEAt(data, 3, 0x0001))
}

func TestUint32LEAt(t *testing.T) {
	value, err := Uint32LEAt([]byte{0xAA, 0x78, 0x56, 0x34, 0x12}, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), value)

	_, err = Uint32LEAt([]byte{0x78, 0x56, 0x34}, 0)
	require.Error(t, err)
}
