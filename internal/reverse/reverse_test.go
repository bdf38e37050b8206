package reverse

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ad-tool/ad/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine_DecodesHexPortionOnly(t *testing.T) {
	b, err := ParseLine("0000000000000000: 4865 6C6C 6F                                Hello")
	require.NoError(t, err)
	assert.Equal(t, []byte("Hello"), b)
}

func TestParseLine_OddHexDigitsIsError(t *testing.T) {
	_, err := ParseLine("0000000000000000: 486")
	assert.Error(t, err)
}

func TestParseLine_MissingColonIsError(t *testing.T) {
	_, err := ParseLine("4865 6C6C 6F")
	assert.Error(t, err)
}

func TestParse_RoundTripsThroughRenderRow(t *testing.T) {
	original := []byte("a 37-byte fixture string, exactly!!!!")
	require.Len(t, original, 37)

	var dump bytes.Buffer
	opts := render.DefaultOptions()
	for off := 0; off < len(original); off += opts.BytesPerRow {
		end := off + opts.BytesPerRow
		if end > len(original) {
			end = len(original)
		}
		require.NoError(t, render.Row(&dump, opts, int64(off), original[off:end], nil))
	}

	got, err := Parse(&dump)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestParse_ElidedRowExpandsToPrecedingRow(t *testing.T) {
	input := "0000000000000000: 4141 4141 4141 4141 4141 4141 4141 4141  AAAAAAAAAAAAAAAA\n" +
		"- 2\n" +
		"0000000000000030: 4242                                        BB\n"
	got, err := Parse(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	row := bytes.Repeat([]byte{0x41}, 16)
	expected := append(append(append([]byte{}, row...), row...), row...)
	expected = append(expected, 0x42, 0x42)
	assert.Equal(t, expected, got)
}

func TestParse_ElidedRowWithNoPrecedingRowIsError(t *testing.T) {
	_, err := Parse(bytes.NewReader([]byte("- 2\n")))
	assert.Error(t, err)
}

func TestWriteAtomic_WritesFileAndLeavesNoTempBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")

	require.NoError(t, WriteAtomic(path, []byte("payload"), 0o644))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.bin", entries[0].Name())
}
