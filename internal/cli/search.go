package cli

import (
	"bytes"
	"strconv"

	"github.com/ad-tool/ad/internal/render"
)

// findMatches scans data for every search criterion active in opts (string,
// case-insensitive string, little/big-endian numeric literal) and returns
// every match as an absolute [start, end) byte range, grouped by criterion in
// the order above; matches are neither sorted nor merged across criteria.
func findMatches(data []byte) ([]render.Match, error) {
	var matches []render.Match

	if opts.stringMatch != "" {
		matches = append(matches, findString(data, []byte(opts.stringMatch), opts.ignoreCase)...)
	}
	if opts.stringIgnoreCase != "" {
		matches = append(matches, findString(data, []byte(opts.stringIgnoreCase), true)...)
	}
	if opts.littleEndian != "" {
		m, err := findNumeric(data, opts.littleEndian, littleEndianOrder)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m...)
	}
	if opts.bigEndian != "" {
		m, err := findNumeric(data, opts.bigEndian, bigEndianOrder)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m...)
	}

	return matches, nil
}

// hasSearchCriterion reports whether any search flag was given, per
// spec.md §7's "no match when a search option was given: exit 1, silent".
func hasSearchCriterion() bool {
	return opts.stringMatch != "" || opts.stringIgnoreCase != "" || opts.littleEndian != "" || opts.bigEndian != ""
}

func findString(data, needle []byte, ignoreCase bool) []render.Match {
	if len(needle) == 0 {
		return nil
	}
	haystack := data
	if ignoreCase {
		haystack = bytes.ToLower(data)
		needle = bytes.ToLower(needle)
	}

	var matches []render.Match
	for start := 0; ; {
		idx := bytes.Index(haystack[start:], needle)
		if idx < 0 {
			break
		}
		from := start + idx
		matches = append(matches, render.Match{Start: from, End: from + len(needle)})
		start = from + len(needle)
	}
	return matches
}

type byteOrder int

const (
	littleEndianOrder byteOrder = iota
	bigEndianOrder
)

// matchWidth resolves the byte width of a numeric search, from --bytes if
// given, else --bits/8, else a 4-byte default (spec.md §8 scenario 3 dumps
// a 4-byte little-endian literal with neither flag set explicitly named).
func matchWidth() (int, error) {
	if opts.bytes != 0 {
		if opts.bytes < 1 || opts.bytes > 8 {
			return 0, usageErrorf("--bytes must be in 1..8, got %d", opts.bytes)
		}
		return opts.bytes, nil
	}
	if opts.bits != 0 {
		switch opts.bits {
		case 8, 16, 24, 32, 40, 48, 56, 64:
		default:
			return 0, usageErrorf("--bits must be one of 8,16,24,32,40,48,56,64, got %d", opts.bits)
		}
		return opts.bits / 8, nil
	}
	return 4, nil
}

func findNumeric(data []byte, literal string, order byteOrder) ([]render.Match, error) {
	value, err := strconv.ParseUint(literal, 0, 64)
	if err != nil {
		return nil, usageErrorf("invalid numeric literal %q: %w", literal, err)
	}
	width, err := matchWidth()
	if err != nil {
		return nil, err
	}

	encoded := make([]byte, width)
	for i := 0; i < width; i++ {
		shift := uint(i) * 8
		if order == bigEndianOrder {
			shift = uint(width-1-i) * 8
		}
		encoded[i] = byte(value >> shift)
	}

	var matches []render.Match
	for start := 0; ; {
		idx := bytes.Index(data[start:], encoded)
		if idx < 0 {
			break
		}
		from := start + idx
		matches = append(matches, render.Match{Start: from, End: from + width})
		start = from + 1
	}
	return matches, nil
}

// rowMatches translates absolute-offset matches into a row's local
// [0, len(rowData)) coordinate space.
func rowMatches(all []render.Match, rowOffset int64, rowLen int) []render.Match {
	var out []render.Match
	rowStart := rowOffset
	rowEnd := rowOffset + int64(rowLen)
	for _, m := range all {
		start, end := int64(m.Start), int64(m.End)
		if end <= rowStart || start >= rowEnd {
			continue
		}
		if start < rowStart {
			start = rowStart
		}
		if end > rowEnd {
			end = rowEnd
		}
		out = append(out, render.Match{Start: int(start - rowStart), End: int(end - rowStart)})
	}
	return out
}
