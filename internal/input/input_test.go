package input

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadExactConcatenationEqualsSource(t *testing.T) {
	source := "the quick brown fox jumps over the lazy dog"
	r := NewReader(strings.NewReader(source), WithChunkSize(4))

	var got bytes.Buffer
	for _, n := range []int{1, 2, 3, 5, 7, 11, 13} {
		b, err := r.ReadExact(n)
		require.NoError(t, err)
		got.Write(b)
	}
	assert.Equal(t, source[:1+2+3+5+7+11+13], got.String())
	assert.Equal(t, int64(1+2+3+5+7+11+13), r.Offset())
}

func TestReadExactShortReadDoesNotConsume(t *testing.T) {
	r := NewReader(strings.NewReader("abc"))
	_, err := r.ReadExact(10)
	assert.ErrorIs(t, err, ErrShortRead)
	assert.Equal(t, int64(0), r.Offset())
}

func TestPeekDoesNotAdvance(t *testing.T) {
	r := NewReader(strings.NewReader("hello world"))
	b, err := r.Peek(5)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
	assert.Equal(t, int64(0), r.Offset())

	got, err := r.ReadExact(5)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestSkipOverPipeReadsAndDiscards(t *testing.T) {
	pr, pw := io.Pipe()
	go func() {
		_, _ = pw.Write([]byte("0123456789"))
		pw.Close()
	}()
	r := NewReader(pr, WithChunkSize(3))
	require.NoError(t, r.Skip(4))
	assert.Equal(t, int64(4), r.Offset())
	rest, err := r.ReadExact(6)
	require.NoError(t, err)
	assert.Equal(t, "456789", string(rest))
}

func TestSkipOverSeekableSourceSeeks(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte("0123456789")))
	require.NoError(t, r.Skip(4))
	got, err := r.ReadExact(3)
	require.NoError(t, err)
	assert.Equal(t, "456", string(got))
}

func TestBufferGrowsBeyondInitialChunkSize(t *testing.T) {
	source := strings.Repeat("x", 100)
	r := NewReader(strings.NewReader(source), WithChunkSize(8))
	got, err := r.ReadExact(64)
	require.NoError(t, err)
	assert.Len(t, got, 64)
}
