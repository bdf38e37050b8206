// Package render implements the default hex/ASCII row renderer of spec.md
// §6 "File formats": one line per BytesPerRow input bytes, shaped
// `OFFSET: HEXPAIRS  ASCII`, with HEXPAIRS grouped by the configured
// group-by width and ASCII using `.` for any non-printable byte.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/ad-tool/ad/internal/render/color"
)

// OffsetBase selects how the leading offset column of each row is printed,
// per spec.md §6's `--decimal`/`--octal`/`--hexadecimal` flags.
type OffsetBase int

const (
	BaseHex OffsetBase = iota
	BaseDecimal
	BaseOctal
)

// Options configures one renderer. The zero value is not usable directly;
// use DefaultOptions.
type Options struct {
	BytesPerRow int // fixed at 16 by spec.md's concrete scenarios
	GroupBy     int // one of {1,2,4,8,16,32}; bytes per hex group
	OffsetBase  OffsetBase
	Painter     *color.Painter // nil disables coloring entirely
}

// DefaultOptions matches spec.md's concrete scenario 1: 16 bytes/row,
// group-by 2, hexadecimal offsets, no coloring.
func DefaultOptions() Options {
	return Options{BytesPerRow: 16, GroupBy: 2, OffsetBase: BaseHex}
}

// Match is a highlighted byte span within one row's data, [Start, End) in
// row-relative byte indices, produced by a search (`--string`) or numeric
// (`--little-endian`/`--big-endian`) match.
type Match struct {
	Start, End int
}

func (m Match) contains(i int) bool {
	return i >= m.Start && i < m.End
}

// FormatOffset renders offset in the configured base, zero-padded to 16
// characters so every row's hex column starts at the same screen column
// regardless of base.
func FormatOffset(base OffsetBase, offset int64) string {
	switch base {
	case BaseDecimal:
		return fmt.Sprintf("%016d", offset)
	case BaseOctal:
		return fmt.Sprintf("%016o", offset)
	default:
		return fmt.Sprintf("%016x", offset)
	}
}

// Row writes one rendered dump line for data (at most opts.BytesPerRow
// bytes, starting at stream offset `offset`) to w, highlighting any byte
// covered by matches in both the hex and ASCII columns.
func Row(w io.Writer, opts Options, offset int64, data []byte, matches []Match) error {
	var b strings.Builder
	b.WriteString(FormatOffset(opts.OffsetBase, offset))
	b.WriteString(": ")
	b.WriteString(hexColumn(opts, data, matches))
	b.WriteString("  ")
	b.WriteString(asciiColumn(opts, data, matches))
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// hexColumn renders data as opts.GroupBy-byte groups of uppercase hex,
// separated by single spaces and padded to the width a full row of
// opts.BytesPerRow bytes would occupy, so the ASCII column of a short final
// row still lines up with every row above it.
func hexColumn(opts Options, data []byte, matches []Match) string {
	groupBy := opts.GroupBy
	if groupBy <= 0 {
		groupBy = 1
	}
	groups := (opts.BytesPerRow + groupBy - 1) / groupBy
	fullWidth := groups*(2*groupBy) + (groups - 1)

	var b strings.Builder
	for g := 0; g < groups; g++ {
		if g > 0 {
			b.WriteByte(' ')
		}
		for i := 0; i < groupBy; i++ {
			idx := g*groupBy + i
			if idx >= len(data) {
				continue
			}
			pair := fmt.Sprintf("%02X", data[idx])
			b.WriteString(paintIfMatched(opts.Painter, color.MatchH, matches, idx, pair))
		}
	}

	out := b.String()
	if pad := fullWidth - rawHexWidth(opts, data); pad > 0 {
		out += strings.Repeat(" ", pad)
	}
	return out
}

// rawHexWidth computes how many screen columns hexColumn's raw (uncolored)
// hex text occupies for data, used to compute right-padding so the ASCII
// column lines up regardless of whether a Painter wrapped any byte in SGR
// escape bytes, which carry no screen width of their own.
func rawHexWidth(opts Options, data []byte) int {
	groupBy := opts.GroupBy
	if groupBy <= 0 {
		groupBy = 1
	}
	groups := (opts.BytesPerRow + groupBy - 1) / groupBy
	width := 0
	for g := 0; g < groups; g++ {
		if g > 0 {
			width++
		}
		for i := 0; i < groupBy; i++ {
			idx := g*groupBy + i
			if idx >= len(data) {
				continue
			}
			width += 2
		}
	}
	return width
}

// asciiColumn renders one printable byte per input byte, `.` for anything
// unicode.IsPrint would reject when treated as a single byte (ASCII-range
// hex dumps are always single-byte-per-glyph, independent of any DSL-level
// UTF interpretation).
func asciiColumn(opts Options, data []byte, matches []Match) string {
	var b strings.Builder
	for i, by := range data {
		ch := "."
		if by < unicode.MaxASCII && unicode.IsPrint(rune(by)) {
			ch = string(rune(by))
		}
		b.WriteString(paintIfMatched(opts.Painter, color.MatchA, matches, i, ch))
	}
	return b.String()
}

func paintIfMatched(p *color.Painter, cap string, matches []Match, idx int, s string) string {
	if p == nil {
		return s
	}
	for _, m := range matches {
		if m.contains(idx) {
			return p.Paint(cap, s)
		}
	}
	return s
}
