// Package cli implements the external interface of spec.md §6: the full
// flag surface, positional argument handling, exit-code mapping, and
// `.adrc.yaml`-backed defaults, carried the way the teacher's
// cli/cmd/root.go builds a single cobra command with flags registered in
// Execute rather than scattering them across package-level init functions.
package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ad-tool/ad/internal/config"
)

// options holds every flag spec.md §6 names, bound directly to cobra flag
// variables the way the teacher's cli/cmd/root.go binds `directory`/`tags`.
type options struct {
	reverse bool

	skipBytes string
	maxBytes  int64
	maxLines  int64
	groupBy   int

	littleEndian string
	bigEndian    string
	bits         int
	bytes        int

	stringMatch      string
	stringIgnoreCase string
	ignoreCase       bool

	decimal     bool
	octal       bool
	hexadecimal bool

	cArray string

	formatPath string

	color        string
	totalMatches bool
	dumpProgram  bool
	verbose      bool
}

var opts options

var rootCmd = &cobra.Command{
	Use:          "ad [file] [+offset]",
	Short:        "ad",
	Long:         `ad is a hexdump/structured-dump tool: render bytes as hex+ASCII, search for string or endian-encoded numeric patterns, reverse a dump back to bytes, or interpret a binary format description DSL against the input.`,
	SilenceUsage: true,
	RunE:         run,
}

// Execute registers every flag of spec.md §6 and runs the root command.
func Execute() error {
	f := rootCmd.Flags()

	// spec.md §6 gives -h to --hexadecimal; pre-register --help with no
	// shorthand so cobra's InitDefaultHelpFlag doesn't try to claim "h" too
	// (pflag panics on a redefined shorthand otherwise).
	f.Bool("help", false, "help for ad")

	f.BoolVarP(&opts.reverse, "reverse", "r", false, "interpret input as a dump and reconstruct the original bytes")

	f.StringVarP(&opts.skipBytes, "skip-bytes", "j", "", "skip N bytes of input before dumping (suffix b=512, k=1024, m=1048576)")
	f.Int64VarP(&opts.maxBytes, "max-bytes", "N", -1, "dump at most N bytes")
	f.Int64VarP(&opts.maxLines, "max-lines", "L", -1, "dump at most N rows")
	f.IntVarP(&opts.groupBy, "group-by", "g", 0, "hex-column grouping width: one of 1,2,4,8,16,32")

	f.StringVarP(&opts.littleEndian, "little-endian", "e", "", "search for a little-endian encoded numeric literal")
	f.StringVarP(&opts.bigEndian, "big-endian", "E", "", "search for a big-endian encoded numeric literal")
	f.IntVarP(&opts.bits, "bits", "b", 0, "bit width for --little-endian/--big-endian: one of 8,16,24,32,40,48,56,64")
	f.IntVarP(&opts.bytes, "bytes", "B", 0, "byte width for --little-endian/--big-endian: 1..8")

	f.StringVarP(&opts.stringMatch, "string", "s", "", "search for a literal byte string")
	f.StringVarP(&opts.stringIgnoreCase, "string-ignore-case", "S", "", "search for a literal byte string, case-insensitively")
	f.BoolVarP(&opts.ignoreCase, "ignore-case", "i", false, "make --string case-insensitive")

	f.BoolVarP(&opts.decimal, "decimal", "d", false, "print offsets in decimal")
	f.BoolVarP(&opts.octal, "octal", "o", false, "print offsets in octal")
	f.BoolVarP(&opts.hexadecimal, "hexadecimal", "h", false, "print offsets in hexadecimal (default)")

	f.StringVarP(&opts.cArray, "c-array", "C", "", "emit a C source array instead of a hex dump; format letters cilstu")

	f.StringVar(&opts.formatPath, "format", "", "interpret input against the format-description DSL file at PATH")

	f.StringVar(&opts.color, "color", "auto", "colorize output: auto, always, never")
	f.BoolVar(&opts.totalMatches, "total-matches", false, "print the match count to stderr")
	f.BoolVar(&opts.dumpProgram, "dump-program", false, "with --format, dump the compiled instruction array instead of interpreting")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "trace byte reads and interpretation steps to stderr")

	return rootCmd.Execute()
}

func newLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.Out = os.Stderr
	if verbose {
		logger.SetLevel(logrus.TraceLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger(opts.verbose)

	cfg, err := config.Load(".")
	if err != nil {
		logger.WithError(err).Warn("failed to load .adrc.yaml, using built-in defaults")
		cfg = config.Default()
	}

	if opts.reverse {
		return runReverse(cmd, args, logger)
	}
	return runDump(cmd, args, cfg, logger)
}

func offsetBaseFromFlags() (string, error) {
	set := 0
	base := "hex"
	if opts.decimal {
		set++
		base = "decimal"
	}
	if opts.octal {
		set++
		base = "octal"
	}
	if opts.hexadecimal {
		set++
		base = "hex"
	}
	if set > 1 {
		return "", usageErrorf("only one of --decimal/--octal/--hexadecimal may be given")
	}
	return base, nil
}
