package common

import (
	"encoding/binary"
	"fmt"
)

// SliceAt returns data[offset:offset+length] or an error when the span does
// not fit inside data.
func SliceAt(data []byte, offset, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset > len(data) || length > len(data)-offset {
		return nil, fmt.Errorf("span 0x%X+%d out of bounds (buffer size %d)", offset, length, len(data))
	}
	return data[offset : offset+length], nil
}

// Uint16LEAt reads a little-endian uint16 at offset
func Uint16LEAt(data []byte, offset int) (uint16, error) {
	span, err := SliceAt(data, offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(span), nil
}

// PutUint16LEAt writes a little-endian uint16 at offset
func PutUint16LEAt(data []byte, offset int, value uint16) error {
	span, err := SliceAt(data, offset, 2)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(span, value)
	return nil
}

// Uint32LEAt reads a little-endian uint32 at offset
func Uint32LEAt(data []byte, offset int) (uint32, error) {
	span, err := SliceAt(data, offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(span), nil
}
