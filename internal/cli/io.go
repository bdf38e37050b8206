package cli

import (
	"io"
	"os"
	"strconv"
)

// openInput opens args[0] if present, else returns stdin. A missing file
// maps to the open-file exit code per spec.md §7.
func openInput(args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), "<stdin>", nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", openErrorf("opening %s: %w", args[0], err)
	}
	return f, args[0], nil
}

// readAllBounded reads up to maxBytes (all of it if maxBytes < 0) from r.
func readAllBounded(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes < 0 {
		return io.ReadAll(r)
	}
	return io.ReadAll(io.LimitReader(r, maxBytes))
}

// parseByteCount parses spec.md §6's --skip-bytes grammar: N optionally
// suffixed by a unit, b=512, k=1024, m=1048576.
func parseByteCount(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	unit := int64(1)
	switch s[len(s)-1] {
	case 'b':
		unit = 512
		s = s[:len(s)-1]
	case 'k':
		unit = 1024
		s = s[:len(s)-1]
	case 'm':
		unit = 1048576
		s = s[:len(s)-1]
	}
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, usageErrorf("invalid byte count %q: %w", s, err)
	}
	return n * unit, nil
}
