package cli

import (
	"io"
	"strconv"
	"strings"
)

// splitPositional parses spec.md §6's `[file] [+offset]` positional form
// (used by every mode except --reverse, which instead takes
// `[infile [outfile]]`; see reverse.go).
func splitPositional(args []string) (fileArgs []string, offset int64, err error) {
	var file string
	seenOffset := false
	for _, a := range args {
		if strings.HasPrefix(a, "+") {
			if seenOffset {
				return nil, 0, usageErrorf("multiple +offset arguments given")
			}
			n, perr := strconv.ParseInt(a[1:], 0, 64)
			if perr != nil {
				return nil, 0, usageErrorf("invalid +offset %q: %w", a, perr)
			}
			offset = n
			seenOffset = true
			continue
		}
		if file != "" {
			return nil, 0, usageErrorf("too many positional arguments: %q", a)
		}
		file = a
	}
	if file == "" {
		return nil, offset, nil
	}
	return []string{file}, offset, nil
}

// skipReader discards n bytes from r, the forward-only way +offset/
// --skip-bytes are applied ahead of wrapping the source in input.Reader.
func skipReader(r io.Reader, n int64) (int64, error) {
	return io.CopyN(io.Discard, r, n)
}
