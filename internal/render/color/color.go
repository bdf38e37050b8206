// Package color implements the SGR capability parsing of spec.md §6: the
// `name[=digits(;digits)*]:...` grammar shared by AD_COLORS/GREP_COLORS, and
// the legacy single-value GREP_COLOR fallback, decided against whichever of
// the two fills in a missing capability.
package color

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Capability names the core cares about, per spec.md §6.
const (
	ByteOffset = "bn" // byte-offset column
	MatchA     = "MA" // match coloring, selected-line context
	MatchH     = "MH" // match coloring, highlighted bytes
	MatchB     = "MB" // match coloring, byte gutter
	Elided     = "EC" // elided-row marker
	Separator  = "se" // field/column separators
	NoEOLErase = "ne" // suppress end-of-line erase (boolean capability)
)

// defaults mirrors grep's built-in GREP_COLORS, adapted to this tool's
// capability names: bold byte offsets, red/bold match highlighting, cyan
// separators.
var defaults = Capabilities{
	ByteOffset: "01;34",
	MatchA:     "01;31",
	MatchH:     "01;31",
	MatchB:     "01;31",
	Elided:     "36",
	Separator:  "36",
}

// Capabilities is a parsed capability table: capability name to its SGR
// parameter string (e.g. "01;33"), or "" for a boolean capability present
// with no parameters (e.g. a bare "ne").
type Capabilities map[string]string

// Parse decodes the `name[=digits(;digits)*]:...` grammar of spec.md §6.
// Unrecognized capability names are kept (a caller may still query them) but
// never consulted by this package's own SGR-emitting helpers.
func Parse(s string) Capabilities {
	caps := Capabilities{}
	for _, field := range strings.Split(s, ":") {
		if field == "" {
			continue
		}
		name, params, hasParams := strings.Cut(field, "=")
		if !hasParams {
			caps[name] = ""
			continue
		}
		caps[name] = params
	}
	return caps
}

// merge copies every capability of b into a, overwriting a's existing entry
// for any name b also defines — used to let AD_COLORS override only the
// capabilities it mentions while falling back to defaults/GREP_COLORS for
// the rest.
func merge(a, b Capabilities) Capabilities {
	out := Capabilities{}
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// fromGrepColor translates the legacy single-value GREP_COLOR (just an SGR
// parameter string, e.g. "01;31") into the match-coloring capabilities it
// has always stood in for.
func fromGrepColor(sgr string) Capabilities {
	if sgr == "" {
		return nil
	}
	return Capabilities{MatchA: sgr, MatchH: sgr, MatchB: sgr}
}

// FromEnv builds the effective capability table from AD_COLORS,
// GREP_COLORS, and GREP_COLOR, in that priority order, layered over this
// tool's own defaults.
func FromEnv() Capabilities {
	caps := defaults
	if gc := os.Getenv("GREP_COLOR"); gc != "" {
		caps = merge(caps, fromGrepColor(gc))
	}
	if gc := os.Getenv("GREP_COLORS"); gc != "" {
		caps = merge(caps, Parse(gc))
	}
	if ac := os.Getenv("AD_COLORS"); ac != "" {
		caps = merge(caps, Parse(ac))
	}
	return caps
}

// SGR renders the ANSI escape sequence that turns on capability name, or ""
// if name is absent or carries no parameters.
func (c Capabilities) SGR(name string) string {
	params, ok := c[name]
	if !ok || params == "" {
		return ""
	}
	return fmt.Sprintf("\x1b[%sm", params)
}

// Has reports whether name was set at all, boolean or parameterized.
func (c Capabilities) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// reset is the SGR sequence that clears every attribute turned on by SGR.
const reset = "\x1b[0m"

// Painter wraps an output stream with the decision of whether to emit color
// at all — on by default only when the stream is a terminal (per
// golang.org/x/term, the same TTY-detection dependency the teacher's CLI
// stack already carries for its own interactive prompts), overridable by the
// caller (e.g. a `--color=always` flag).
type Painter struct {
	caps    Capabilities
	enabled bool
}

// NewPainter builds a Painter for w. force, when non-nil, overrides the TTY
// auto-detection outright (true for `--color=always`, false for
// `--color=never`); nil defers to whether w is a terminal.
func NewPainter(w *os.File, force *bool) *Painter {
	enabled := term.IsTerminal(int(w.Fd()))
	if force != nil {
		enabled = *force
	}
	return &Painter{caps: FromEnv(), enabled: enabled}
}

// Paint wraps s in name's SGR sequence and a trailing reset, or returns s
// unchanged if coloring is disabled or name has no parameters configured.
func (p *Painter) Paint(name, s string) string {
	if !p.enabled {
		return s
	}
	sgr := p.caps.SGR(name)
	if sgr == "" {
		return s
	}
	return sgr + s + reset
}

// Enabled reports whether this Painter emits escape sequences at all.
func (p *Painter) Enabled() bool {
	return p.enabled
}
