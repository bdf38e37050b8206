package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_OffsetColumnIsSixteenHexDigits(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Row(&buf, DefaultOptions(), 0, []byte("Hello"), nil))
	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "0000000000000000: "))
}

func TestRow_HexPairCountEqualsByteCount(t *testing.T) {
	var buf bytes.Buffer
	data := []byte("Hello")
	require.NoError(t, Row(&buf, DefaultOptions(), 0, data, nil))
	line := strings.TrimRight(buf.String(), "\n")

	hexDigits := 0
	for _, r := range line {
		if (r >= '0' && r <= '9') || (r >= 'A' && r <= 'F') {
			hexDigits++
		}
	}
	// 16 from the offset column (all zero digits here) + 2 per data byte.
	assert.Equal(t, 16+2*len(data), hexDigits)
}

func TestRow_HexColumnIsUppercase(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Row(&buf, DefaultOptions(), 0, []byte{0xab, 0xcd}, nil))
	assert.Contains(t, buf.String(), "ABCD")
}

func TestRow_AsciiColumnShowsPrintableBytes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Row(&buf, DefaultOptions(), 0, []byte("Hello"), nil))
	assert.Contains(t, buf.String(), "Hello")
}

func TestRow_AsciiColumnDotsNonPrintable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Row(&buf, DefaultOptions(), 0, []byte{0x00, 'A', 0x7f}, nil))
	line := buf.String()
	assert.Contains(t, line, ".A.")
}

func TestRow_OctalOffsetBase(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.OffsetBase = BaseOctal
	require.NoError(t, Row(&buf, opts, 8, []byte{0x01}, nil))
	assert.True(t, strings.HasPrefix(buf.String(), "0000000000000010: "))
}

func TestRow_DecimalOffsetBase(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.OffsetBase = BaseDecimal
	require.NoError(t, Row(&buf, opts, 42, []byte{0x01}, nil))
	assert.True(t, strings.HasPrefix(buf.String(), "0000000000000042: "))
}

func TestRow_ShortFinalRowPadsHexColumnToAlignAscii(t *testing.T) {
	var full, short bytes.Buffer
	require.NoError(t, Row(&full, DefaultOptions(), 0, bytes.Repeat([]byte{0x41}, 16), nil))
	require.NoError(t, Row(&short, DefaultOptions(), 0, []byte{0x41}, nil))

	fullLine := strings.TrimRight(full.String(), "\n")
	shortLine := strings.TrimRight(short.String(), "\n")
	asciiColStart := strings.Index(fullLine, "  A")
	require.Greater(t, asciiColStart, 0)
	assert.Equal(t, asciiColStart, strings.Index(shortLine, "  A"))
}

func TestRow_GroupByFourProducesEightHexCharGroups(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.GroupBy = 4
	require.NoError(t, Row(&buf, opts, 0, []byte{0x01, 0x02, 0x03, 0x04, 0x05}, nil))
	assert.Contains(t, buf.String(), "01020304 05")
}
