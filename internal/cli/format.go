package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ad-tool/ad/internal/format"
	"github.com/ad-tool/ad/internal/format/check"
	"github.com/ad-tool/ad/internal/format/compile"
	"github.com/ad-tool/ad/internal/format/runner"
	"github.com/ad-tool/ad/internal/input"
)

// runFormat implements the `--format=PATH` path of spec.md §6: parse the
// DSL file, run the semantic checker, then either dump the compiled
// instruction array (--dump-program, a debug aid) or interpret it against
// the already-positioned input stream in.
func runFormat(in io.Reader, inputName string, logger *logrus.Logger) error {
	source, err := os.ReadFile(opts.formatPath)
	if err != nil {
		return openErrorf("opening format file %s: %w", opts.formatPath, err)
	}

	typedefs := format.NewTypedefRegistry()
	p := format.NewParser(opts.formatPath, string(source), typedefs)
	stmts, bag := p.Parse()
	if bag.HasErrors() {
		bag.WriteAll(os.Stderr, string(source))
		return &ExitError{Code: ExitBadDumpFmt}
	}

	checker := check.NewChecker(typedefs)
	checkBag := checker.Check(stmts)
	if checkBag.HasErrors() {
		checkBag.WriteAll(os.Stderr, string(source))
		return &ExitError{Code: ExitBadDumpFmt}
	}

	if opts.dumpProgram {
		prog := compile.NewCompiler().Compile(stmts)
		fmt.Println(compile.Dump(prog))
		return nil
	}

	logger.WithField("format", opts.formatPath).Trace("interpreting input against format")
	interp := runner.NewInterpreter(input.NewReader(in), typedefs)
	events, err := interp.Run(stmts)
	for _, ev := range events {
		printFieldEvent(os.Stdout, ev)
	}
	if err != nil {
		return ioErrorf("interpreting %s against %s: %w", inputName, opts.formatPath, err)
	}
	return nil
}

func printFieldEvent(w io.Writer, ev runner.FieldEvent) {
	switch ev.Type.Kind {
	case format.KindStruct, format.KindSwitch:
		fmt.Fprintf(w, "%s (offset %d)\n", ev.Name, ev.Offset)
	case format.KindUTFChar:
		fmt.Fprintf(w, "%s = %q (offset %d)\n", ev.Name, rune(ev.Value.Bits), ev.Offset)
	case format.KindUTFString:
		fmt.Fprintf(w, "%s = %q (offset %d)\n", ev.Name, ev.Value.Str, ev.Offset)
	case format.KindBool:
		fmt.Fprintf(w, "%s = %t (offset %d)\n", ev.Name, ev.Value.Bool, ev.Offset)
	case format.KindFloat:
		fmt.Fprintf(w, "%s = %g (offset %d)\n", ev.Name, ev.Value.Float, ev.Offset)
	default:
		fmt.Fprintf(w, "%s = 0x%x (offset %d)\n", ev.Name, ev.Value.Bits, ev.Offset)
	}
}
