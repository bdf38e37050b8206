// Package reverse implements the reverse-dump parser of spec.md §6 "File
// formats": decoding a line-oriented `OFFSET: HEXPAIRS  ASCII` stream back
// into raw bytes, including elided-row (`-` separator with a count)
// expansion, plus an atomic output writer so a partially-written reversed
// file is never observable by another process.
package reverse

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofrs/uuid"
)

// elidedPattern matches a standalone elided-row marker line: a `-`
// separator followed by the count of rows it stands in for, e.g. `- 3`.
var elidedPattern = regexp.MustCompile(`^-\s*(\d+)\s*$`)

// ParseLine decodes one dump-format line into its raw bytes. Only the hex
// portion between the offset's `:` and the double-space that introduces the
// ASCII gutter is consulted, per spec.md §6: "the reverse dumper parses
// only the hex portion."
func ParseLine(line string) ([]byte, error) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return nil, fmt.Errorf("missing offset separator")
	}
	rest := line[colon+1:]
	if sep := strings.Index(rest, "  "); sep >= 0 {
		rest = rest[:sep]
	}

	hexDigits := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, rest)
	if len(hexDigits)%2 != 0 {
		return nil, fmt.Errorf("odd number of hex digits %q", hexDigits)
	}

	out := make([]byte, len(hexDigits)/2)
	for i := range out {
		n, err := strconv.ParseUint(hexDigits[2*i:2*i+2], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid hex pair %q: %w", hexDigits[2*i:2*i+2], err)
		}
		out[i] = byte(n)
	}
	return out, nil
}

// parseElided reports the row count of an elided-row marker line, if line
// is one.
func parseElided(line string) (count int, ok bool) {
	m := elidedPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Parse reads a full reverse-dump stream from r and returns the
// reconstructed byte sequence. An elided-row marker expands to that many
// copies of the immediately preceding row, matching spec.md §8's "Reverse
// round-trip" invariant.
func Parse(r io.Reader) ([]byte, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var out, lastRow []byte
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if count, ok := parseElided(line); ok {
			if lastRow == nil {
				return nil, fmt.Errorf("reverse:%d: elided-row marker with no preceding row", lineNo)
			}
			for i := 0; i < count; i++ {
				out = append(out, lastRow...)
			}
			continue
		}

		row, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("reverse:%d: %w", lineNo, err)
		}
		out = append(out, row...)
		lastRow = row
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteAtomic writes data to path by first writing a sibling temp file
// (uuid-suffixed, the same unique-name idiom sqltest/fixture.go uses for
// scratch database names) in path's directory, then renaming it into
// place, so a reader of path never observes a partial write and a failed
// write never clobbers an existing file.
func WriteAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.Must(uuid.NewV4()).String()))

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if _, err = f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
