// Package utf implements the UTF codec contract of spec.md §4.2: pure
// decode/encode functions over UTF-8/16/32 in host, little, and big
// endianness, plus the 256-entry UTF-8 start-byte length table.
//
// UTF-16 decoding is backed by golang.org/x/text/encoding/unicode for the
// null-terminated string path (spec.md §9 "format file ambiguity"); the
// code-point-level decode/encode functions below are hand-rolled so the
// exact round-trip invariants of spec.md §8 are simple to state and check
// directly against this package's own output, independent of how the x/text
// decoder chooses to report errors.
package utf

import (
	"encoding/binary"
	"unicode/utf16"
	"unicode/utf8"

	xunicode "golang.org/x/text/encoding/unicode"
)

// Endian identifies the byte order used to decode/encode multi-byte code
// units. Host resolves to little-endian on every platform this tool ships
// for in practice, but is kept distinct from Little so callers can tell
// "unspecified, use native order" from "explicitly little-endian".
type Endian int

const (
	Host Endian = iota
	Little
	Big
)

func (e Endian) byteOrder() binary.ByteOrder {
	if e == Big {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

const (
	maxCodePoint    = 0x10FFFF
	surrogateStart  = 0xD800
	surrogateEnd    = 0xDFFF
	replacementChar = utf8.RuneError
)

// IsValidCodePoint reports whether cp is a valid Unicode scalar value: at
// most U+10FFFF and outside the surrogate range.
func IsValidCodePoint(cp rune) bool {
	if cp < 0 || cp > maxCodePoint {
		return false
	}
	if cp >= surrogateStart && cp <= surrogateEnd {
		return false
	}
	return true
}

// DecodeUTF8ToCP decodes one code point from the start of b, returning the
// code point and the number of bytes consumed. consumed is 0 and ok is
// false when b is empty or does not begin with a valid UTF-8 sequence.
func DecodeUTF8ToCP(b []byte) (cp rune, consumed int, ok bool) {
	if len(b) == 0 {
		return 0, 0, false
	}
	r, w := utf8.DecodeRune(b)
	if r == utf8.RuneError && w <= 1 {
		return 0, 0, false
	}
	if !IsValidCodePoint(r) {
		return 0, 0, false
	}
	return r, w, true
}

// EncodeCPToUTF8 appends the UTF-8 encoding of cp to out (which may be nil)
// and returns the updated slice and the number of bytes written, in [1,4].
// It rejects surrogate code points and code points beyond U+10FFFF.
func EncodeCPToUTF8(cp rune, out []byte) ([]byte, int, bool) {
	if !IsValidCodePoint(cp) {
		return out, 0, false
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], cp)
	return append(out, buf[:n]...), n, true
}

// DecodeUTF16ToCP decodes one code point from a stream of UTF-16 code units
// encoded in the given endianness, handling surrogate pairs. consumed is the
// number of bytes consumed (2 or 4).
func DecodeUTF16ToCP(b []byte, endian Endian) (cp rune, consumed int, ok bool) {
	order := endian.byteOrder()
	if len(b) < 2 {
		return 0, 0, false
	}
	u1 := order.Uint16(b)
	r1 := rune(u1)

	if utf16.IsSurrogate(r1) {
		if len(b) < 4 {
			return 0, 0, false
		}
		u2 := order.Uint16(b[2:])
		r2 := rune(u2)
		combined := utf16.DecodeRune(r1, r2)
		if combined == utf8.RuneError {
			return 0, 0, false
		}
		return combined, 4, true
	}

	if r1 >= surrogateStart && r1 <= surrogateEnd {
		// lone low surrogate with no preceding high surrogate
		return 0, 0, false
	}
	return r1, 2, true
}

// EncodeCPToUTF16 appends the UTF-16 encoding (in the given endianness) of
// cp to out and returns the updated slice and bytes-written count (2 or 4).
func EncodeCPToUTF16(cp rune, endian Endian, out []byte) ([]byte, int, bool) {
	if !IsValidCodePoint(cp) {
		return out, 0, false
	}
	order := endian.byteOrder()
	r1, r2 := utf16.EncodeRune(cp)
	if r1 == utf8.RuneError && r2 == utf8.RuneError {
		// basic multilingual plane, single unit
		var buf [2]byte
		order.PutUint16(buf[:], uint16(cp))
		return append(out, buf[:]...), 2, true
	}
	var buf [4]byte
	order.PutUint16(buf[0:2], uint16(r1))
	order.PutUint16(buf[2:4], uint16(r2))
	return append(out, buf[:]...), 4, true
}

// DecodeUTF32ToCP decodes one code point from a 4-byte UTF-32 code unit in
// the given endianness.
func DecodeUTF32ToCP(b []byte, endian Endian) (cp rune, consumed int, ok bool) {
	if len(b) < 4 {
		return 0, 0, false
	}
	v := endian.byteOrder().Uint32(b)
	r := rune(v)
	if !IsValidCodePoint(r) {
		return 0, 0, false
	}
	return r, 4, true
}

// EncodeCPToUTF32 appends the 4-byte UTF-32 encoding of cp in the given
// endianness to out.
func EncodeCPToUTF32(cp rune, endian Endian, out []byte) ([]byte, int, bool) {
	if !IsValidCodePoint(cp) {
		return out, 0, false
	}
	var buf [4]byte
	endian.byteOrder().PutUint32(buf[:], uint32(cp))
	return append(out, buf[:]...), 4, true
}

// utf8StartLength is the 256-entry table from spec.md §4.2/§8: for every
// possible first byte of a UTF-8 sequence, the total sequence length per
// the legacy (pre-RFC 3629) table, or 0 if the byte can never start a
// sequence under it. Apart from the continuation bytes 0x80-0xBF, 0xC0,
// 0xC1, 0xFE, and 0xFF are the only bytes the legacy table itself calls
// invalid starts; 0xF8-0xFD still carry their
// legacy 5- and 6-byte lengths even though RFC 3629 later capped sequences
// at 4 bytes (U+10FFFF).
var utf8StartLength = func() [256]int {
	var t [256]int
	for b := 0; b < 0x80; b++ {
		t[b] = 1
	}
	// 0x80-0xBF: continuation bytes, not valid starts (0).
	// 0xC0-0xC1: overlong ASCII encodings, invalid starts (0).
	for b := 0xC2; b <= 0xDF; b++ {
		t[b] = 2
	}
	for b := 0xE0; b <= 0xEF; b++ {
		t[b] = 3
	}
	for b := 0xF0; b <= 0xF4; b++ {
		t[b] = 4
	}
	for b := 0xF5; b <= 0xF7; b++ {
		t[b] = 4
	}
	for b := 0xF8; b <= 0xFB; b++ {
		t[b] = 5
	}
	for b := 0xFC; b <= 0xFD; b++ {
		t[b] = 6
	}
	// 0xFE-0xFF: invalid starts even in the legacy table (0).
	return t
}()

// UTF8StartLength returns the total sequence length implied by the first
// byte of a UTF-8 sequence, in [1,6] per the legacy table spec.md §8
// requires, or 0 if b can never start a sequence under it (0x80-0xBF, 0xC0,
// 0xC1, 0xFE, 0xFF).
func UTF8StartLength(b byte) int {
	return utf8StartLength[b]
}

// IsStart reports whether b can begin a UTF-8 sequence (lead byte or ASCII).
func IsStart(b byte) bool {
	return b < 0x80 || (b >= 0xC2 && b <= 0xF4)
}

// IsContinuation reports whether b is a UTF-8 continuation byte. IsStart and
// IsContinuation are not complements: 0xC0, 0xC1 and the bytes in
// [0xF5, 0xFF] are neither, see spec.md §4.2.
func IsContinuation(b byte) bool {
	return b >= 0x80 && b <= 0xBF
}

// DecodeUTF16Bytes uses golang.org/x/text/encoding/unicode for
// the null-terminated UTF-16 string path (SPEC_FULL.md §7): given raw bytes
// containing a UTF-16 stream up to (but not including) a terminating zero
// code unit, decode them to a UTF-8 string using the ecosystem codec rather
// than hand-rolled unit-by-unit looping.
func DecodeUTF16Bytes(b []byte, endian Endian) (string, error) {
	var enc *xunicode.Encoding
	switch endian {
	case Big:
		enc = xunicode.UTF16(xunicode.BigEndian, xunicode.IgnoreBOM)
	default:
		enc = xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM)
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
