package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ad-tool/ad/internal/config"
	"github.com/ad-tool/ad/internal/render"
	"github.com/ad-tool/ad/internal/render/color"
)

// runDump implements spec.md §6's default (non-reverse) path: open the
// input, apply --skip-bytes/+offset, read up to --max-bytes, search for any
// configured pattern, and either interpret it against a --format DSL file
// or render it as hex+ASCII (or --c-array) rows.
func runDump(cmd *cobra.Command, args []string, cfg config.Config, logger *logrus.Logger) error {
	path, startOffset, err := splitPositional(args)
	if err != nil {
		return err
	}

	in, name, err := openInput(path)
	if err != nil {
		return err
	}
	defer in.Close()

	skip, err := parseByteCount(opts.skipBytes)
	if err != nil {
		return err
	}
	skip += startOffset

	if skip > 0 {
		if _, err := skipReader(in, skip); err != nil {
			return ioErrorf("skipping %d bytes of %s: %w", skip, name, err)
		}
	}

	if opts.formatPath != "" {
		return runFormat(in, name, logger)
	}

	data, err := readAllBounded(in, opts.maxBytes)
	if err != nil {
		return ioErrorf("reading %s: %w", name, err)
	}
	logger.WithField("bytes", len(data)).Trace("read input")

	matches, err := findMatches(data)
	if err != nil {
		return err
	}
	if opts.totalMatches {
		fmt.Fprintf(os.Stderr, "%d match", len(matches))
		if len(matches) != 1 {
			fmt.Fprint(os.Stderr, "es")
		}
		fmt.Fprintln(os.Stderr)
	}
	if hasSearchCriterion() && len(matches) == 0 {
		return noMatch
	}

	if opts.cArray != "" {
		return writeCArray(os.Stdout, data, opts.cArray)
	}

	renderOpts, err := buildRenderOptions(cfg)
	if err != nil {
		return err
	}
	return writeRows(os.Stdout, renderOpts, skip, data, matches)
}

func buildRenderOptions(cfg config.Config) (render.Options, error) {
	ropts := render.DefaultOptions()
	ropts.GroupBy = cfg.GroupBy
	if opts.groupBy != 0 {
		switch opts.groupBy {
		case 1, 2, 4, 8, 16, 32:
		default:
			return ropts, usageErrorf("--group-by must be one of 1,2,4,8,16,32, got %d", opts.groupBy)
		}
		ropts.GroupBy = opts.groupBy
	}

	base, err := offsetBaseFromFlags()
	if err != nil {
		return ropts, err
	}
	if base == "hex" && cfg.OffsetBase != "" && !opts.decimal && !opts.octal && !opts.hexadecimal {
		base = cfg.OffsetBase
	}
	switch base {
	case "decimal":
		ropts.OffsetBase = render.BaseDecimal
	case "octal":
		ropts.OffsetBase = render.BaseOctal
	default:
		ropts.OffsetBase = render.BaseHex
	}

	colorMode := opts.color
	if colorMode == "" || colorMode == "auto" {
		colorMode = cfg.Color
	}
	var force *bool
	switch colorMode {
	case "always":
		t := true
		force = &t
	case "never":
		f := false
		force = &f
	}
	ropts.Painter = color.NewPainter(os.Stdout, force)

	return ropts, nil
}

// writeRows renders data (already read starting at absoluteOffset) in
// BytesPerRow chunks, honoring --max-lines.
func writeRows(w *os.File, ropts render.Options, absoluteOffset int64, data []byte, matches []render.Match) error {
	lines := int64(0)
	for off := 0; off < len(data); off += ropts.BytesPerRow {
		if opts.maxLines >= 0 && lines >= opts.maxLines {
			break
		}
		end := off + ropts.BytesPerRow
		if end > len(data) {
			end = len(data)
		}
		rowOffset := absoluteOffset + int64(off)
		if err := render.Row(w, ropts, rowOffset, data[off:end], rowMatches(matches, rowOffset, end-off)); err != nil {
			return ioErrorf("writing output: %w", err)
		}
		lines++
	}
	return nil
}
