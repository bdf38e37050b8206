// Package scope implements the scoped-name and symbol-table contract of
// spec.md §4.3: qualified identifiers (S::T::x) mapped to per-scope
// bindings, with nested scopes and shadow resolution.
package scope

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smasher164/xid"
)

// Name is a scoped name: an ordered, non-empty sequence of identifier
// components joined conceptually by "::". The local name is the last
// component; the scope is every component before it.
type Name struct {
	parts []string
}

// NewName builds a Name from its components. At least one component is
// required; NewName panics otherwise, since spec.md §3 declares scoped names
// non-empty by invariant.
func NewName(parts ...string) Name {
	if len(parts) == 0 {
		panic("scope: a Name must have at least one component")
	}
	cp := make([]string, len(parts))
	copy(cp, parts)
	return Name{parts: cp}
}

// PushBack appends a component, returning the extended name.
func (n Name) PushBack(part string) Name {
	return NewName(append(append([]string{}, n.parts...), part)...)
}

// PopBack removes the last component. Popping the last remaining component
// of a single-component name returns the zero Name; callers should check
// Len() > 1 first if they need to guarantee non-emptiness.
func (n Name) PopBack() Name {
	if len(n.parts) <= 1 {
		return Name{}
	}
	return NewName(n.parts[:len(n.parts)-1]...)
}

// Len returns the number of components.
func (n Name) Len() int {
	return len(n.parts)
}

// LocalName returns the last component.
func (n Name) LocalName() string {
	if len(n.parts) == 0 {
		return ""
	}
	return n.parts[len(n.parts)-1]
}

// ScopeName returns a Name of every component but the last, or the zero
// Name (Len()==0) if n has only one component.
func (n Name) ScopeName() Name {
	if len(n.parts) <= 1 {
		return Name{}
	}
	return NewName(n.parts[:len(n.parts)-1]...)
}

// FullName renders the name joined by "::".
func (n Name) FullName() string {
	return strings.Join(n.parts, "::")
}

// Equal reports componentwise string equality.
func (n Name) Equal(other Name) bool {
	if len(n.parts) != len(other.parts) {
		return false
	}
	for i := range n.parts {
		if n.parts[i] != other.parts[i] {
			return false
		}
	}
	return true
}

// Compare orders names lexicographically by component, matching spec.md
// §4.3's "ordering of in-order visits is by scoped-name compare".
func Compare(a, b Name) int {
	for i := 0; i < len(a.parts) && i < len(b.parts); i++ {
		if c := strings.Compare(a.parts[i], b.parts[i]); c != 0 {
			return c
		}
	}
	return len(a.parts) - len(b.parts)
}

// Clone returns a deep duplicate.
func (n Name) Clone() Name {
	return NewName(n.parts...)
}

func isIdentStart(r rune) bool {
	return xid.Start(r) || r == '_'
}

func isIdentContinue(r rune) bool {
	return xid.Continue(r) || r == '_' || unicode.Is(unicode.Cf, r)
}

// Parse scans a scoped name off the front of str: one or more identifiers
// separated by "::". It stops at the first character that cannot continue
// an identifier or separator, or at a component recognized as a keyword by
// isKeyword. It returns the parsed name and the number of bytes consumed;
// consumed is 0 if str does not start with an identifier, or if the very
// first component is itself a keyword.
func Parse(str string, isKeyword func(string) bool) (Name, int) {
	var parts []string
	pos := 0

	for {
		start := pos
		firstRune := true
		for pos < len(str) {
			r, width := utf8.DecodeRuneInString(str[pos:])
			if r == utf8.RuneError && width <= 1 {
				break
			}
			ok := firstRune && isIdentStart(r) || !firstRune && isIdentContinue(r)
			if !ok {
				break
			}
			pos += width
			firstRune = false
		}
		if pos == start {
			// no identifier component here
			if len(parts) == 0 {
				return Name{}, 0
			}
			break
		}
		component := str[start:pos]
		if isKeyword != nil && isKeyword(component) {
			if len(parts) == 0 {
				return Name{}, 0
			}
			pos = start
			break
		}
		parts = append(parts, component)

		if pos+1 < len(str) && str[pos] == ':' && str[pos+1] == ':' {
			pos += 2
			continue
		}
		break
	}

	if len(parts) == 0 {
		return Name{}, 0
	}
	return NewName(parts...), pos
}
