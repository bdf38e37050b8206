package cli

import (
	"bytes"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ad-tool/ad/internal/reverse"
)

// runReverse implements `--reverse`'s `[infile [outfile]]` positional form
// (distinct from the default mode's `[file] [+offset]`): parse the dump
// text back into raw bytes and write them atomically.
func runReverse(cmd *cobra.Command, args []string, logger *logrus.Logger) error {
	if len(args) > 2 {
		return usageErrorf("--reverse takes at most [infile [outfile]]")
	}

	var inPath, outPath string
	if len(args) >= 1 {
		inPath = args[0]
	}
	if len(args) == 2 {
		outPath = args[1]
	}

	in, name, err := openInput(nonEmptyArgs(inPath))
	if err != nil {
		return err
	}
	defer in.Close()

	decoded, err := reverse.Parse(in)
	if err != nil {
		return badDumpFormatErrorf("reversing %s: %w", name, err)
	}
	logger.WithField("bytes", len(decoded)).Trace("reversed dump")

	if outPath == "" {
		if _, err := io.Copy(os.Stdout, bytes.NewReader(decoded)); err != nil {
			return ioErrorf("writing reversed output: %w", err)
		}
		return nil
	}
	if err := reverse.WriteAtomic(outPath, decoded, 0o644); err != nil {
		return createErrorf("writing %s: %w", outPath, err)
	}
	return nil
}

func nonEmptyArgs(path string) []string {
	if path == "" {
		return nil
	}
	return []string{path}
}
