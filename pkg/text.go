package pkg

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/transform"
)

// UnknownChar replaces every byte without a known mapping
const UnknownChar = '_'

// charset maps the game's single-byte text encoding (SLUS-01411) to runes.
// Several bytes decode to the same rune, so the mapping is not reversible.
var charset = buildCharset()

func buildCharset() [256]rune {
	var table [256]rune
	for i := range table {
		table[i] = UnknownChar
	}

	upper := map[byte]rune{
		0x18: 'A', 0x2D: 'B', 0x2B: 'C', 0x20: 'D', 0x25: 'E', 0x31: 'F',
		0x29: 'G', 0x23: 'H', 0x1A: 'I', 0x3B: 'J', 0x33: 'K', 0x2A: 'L',
		0x1E: 'M', 0x2C: 'N', 0x21: 'O', 0x2F: 'P', 0x3E: 'Q', 0x26: 'R',
		0x1D: 'S', 0x1C: 'T', 0x35: 'U', 0x39: 'V', 0x22: 'W', 0x46: 'X',
		0x24: 'Y', 0x3F: 'Z',
	}
	lower := map[byte]rune{
		0x03: 'a', 0x15: 'b', 0x0F: 'c', 0x0C: 'd', 0x01: 'e', 0x13: 'f',
		0x10: 'g', 0x09: 'h', 0x05: 'i', 0x34: 'j', 0x16: 'k', 0x0A: 'l',
		0x0E: 'm', 0x06: 'n', 0x04: 'o', 0x14: 'p', 0x37: 'q', 0x08: 'r',
		0x07: 's', 0x02: 't', 0x0D: 'u', 0x19: 'v', 0x12: 'w', 0x36: 'x',
		0x11: 'y', 0x32: 'z',
	}
	digits := map[byte]rune{
		0x38: '0', 0x3D: '1', 0x3A: '2', 0x41: '3', 0x4A: '4',
		0x42: '5', 0x4E: '6', 0x45: '7', 0x57: '8', 0x59: '9',
	}
	// Punctuation, including the duplicate encodings of 'a', '<' and '>'
	symbols := map[byte]rune{
		0x00: ' ', 0x30: '-', 0x3C: '#', 0x43: '&', 0x0B: '.', 0x1F: ',',
		0x55: 'a', 0x17: '!', 0x1B: '\'', 0x27: '<', 0x28: '>', 0x2E: '?',
		0x44: '/', 0x48: ':', 0x4B: ')', 0x4C: '(', 0x4F: '$', 0x50: '*',
		0x51: '>', 0x54: '<', 0x40: '"', 0x56: '+', 0x5B: '%',
	}

	for _, group := range []map[byte]rune{upper, lower, digits, symbols} {
		for b, r := range group {
			table[b] = r
		}
	}
	return table
}

// ByteToChar converts a single byte of game text to a rune
func ByteToChar(b byte) rune {
	return charset[b]
}

// DecodeTerminated decodes bytes from the start of data up to, not including,
// the first StringTerminator. data may extend well past the string.
func DecodeTerminated(data []byte) (string, error) {
	var sb strings.Builder
	for _, b := range data {
		if b == StringTerminator {
			return sb.String(), nil
		}
		sb.WriteRune(ByteToChar(b))
	}
	return "", errors.Wrapf(ErrMissingTerminator, "after %d bytes", len(data))
}

// TextTransformer decodes a raw byte stream of game text into UTF-8. Every
// byte is mapped, terminators included, so it can be run over whole files.
type TextTransformer struct {
	transform.NopResetter
}

// NewTextTransformer creates a transformer for use with transform.NewReader
func NewTextTransformer() *TextTransformer {
	return &TextTransformer{}
}

// Transform implements transform.Transformer
func (t *TextTransformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r := ByteToChar(src[nSrc])
		size := utf8.RuneLen(r)
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc++
	}
	return nDst, nSrc, nil
}
