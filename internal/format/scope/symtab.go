package scope

import (
	"github.com/ad-tool/ad/internal/container"
	"github.com/ad-tool/ad/internal/diag"
)

// Kind distinguishes a declaration binding from a type binding in a symbol's
// info record.
type Kind int

const (
	KindDecl Kind = iota
	KindType
)

// Location is an alias for diag.Pos: the symbol table records the source
// position a binding was first declared at, in the same shape every other
// diagnostic is anchored to.
type Location = diag.Pos

// Info is a single per-scope binding record for a symbol, per spec.md §3:
// "A symbol may have several info records pushed by nested scopes; lookup
// returns the topmost."
type Info struct {
	ScopeDepth int
	Kind       Kind
	FirstLoc   Location
	Used       bool
	Payload    any
}

// symbol is the (scoped name, stack of info records) pair from spec.md §3.
// The stack is a plain slice; the topmost (most recently pushed) record is
// the last element.
type symbol struct {
	name    Name
	records []Info
}

// Table is the symbol table contract of spec.md §4.3: open_scope,
// close_scope, add, find, find_by_local_name, visit. It is backed by a
// red-black tree keyed on Name so in-order visits follow scoped-name compare
// order, per the §4.3 semantics.
type Table struct {
	tree  *container.RBTree[Name, *symbol]
	depth int

	// byLocal indexes symbols by local (unqualified) name for
	// find_by_local_name, since the primary tree is keyed on the full
	// scoped name.
	byLocal map[string][]*symbol
}

// NewTable constructs an empty symbol table at scope depth 0.
func NewTable() *Table {
	return &Table{
		tree:    container.NewRBTree[Name, *symbol](Compare),
		byLocal: make(map[string][]*symbol),
	}
}

// OpenScope increments the current scope depth.
func (t *Table) OpenScope() {
	t.depth++
}

// CloseScope walks the table; for each symbol, pops info records whose
// scope equals the current depth, then decrements the depth — exactly the
// algorithm in spec.md §4.3.
func (t *Table) CloseScope() {
	t.tree.VisitInOrder(func(_ Name, sym *symbol) {
		for len(sym.records) > 0 && sym.records[len(sym.records)-1].ScopeDepth == t.depth {
			sym.records = sym.records[:len(sym.records)-1]
		}
	})
	if t.depth > 0 {
		t.depth--
	}
}

// Depth returns the current scope depth.
func (t *Table) Depth() int {
	return t.depth
}

// Add binds payload to name at scopeDepth. If the symbol already has a
// topmost record whose ScopeDepth is >= scopeDepth, that record is left
// unchanged (no shadow) and returned; otherwise a new record is pushed with
// firstLoc and the given kind/payload, matching spec.md §4.3: "add with an
// existing symbol whose top record's scope >= the requested depth returns
// that record unchanged".
func (t *Table) Add(payload any, name Name, kind Kind, scopeDepth int, firstLoc Location) Info {
	sym, ok := t.tree.Find(name)
	if !ok {
		sym = &symbol{name: name}
		t.tree.Upsert(name, sym)
		local := name.LocalName()
		t.byLocal[local] = append(t.byLocal[local], sym)
	}

	if len(sym.records) > 0 && sym.records[len(sym.records)-1].ScopeDepth >= scopeDepth {
		return sym.records[len(sym.records)-1]
	}

	info := Info{
		ScopeDepth: scopeDepth,
		Kind:       kind,
		FirstLoc:   firstLoc,
		Payload:    payload,
	}
	sym.records = append(sym.records, info)
	return info
}

// Find returns the topmost info record bound to name, if any.
func (t *Table) Find(name Name) (Info, bool) {
	sym, ok := t.tree.Find(name)
	if !ok || len(sym.records) == 0 {
		var zero Info
		return zero, false
	}
	return sym.records[len(sym.records)-1], true
}

// FindByLocalName returns, among the symbols carrying the given unqualified
// local name regardless of scope prefix, the topmost info record with the
// greatest ScopeDepth (on a tie, the earliest-added symbol's) — used by the
// checker and the interpreter to resolve a bare identifier against whatever
// enclosing scope currently shadows it.
func (t *Table) FindByLocalName(local string) (Info, bool) {
	candidates := t.byLocal[local]
	var best Info
	found := false
	for _, sym := range candidates {
		if len(sym.records) == 0 {
			continue
		}
		info := sym.records[len(sym.records)-1]
		if !found || info.ScopeDepth > best.ScopeDepth {
			best = info
			found = true
		}
	}
	return best, found
}

// Visit calls fn for every (Name, topmost Info) pair currently bound, in
// scoped-name order.
func (t *Table) Visit(fn func(Name, Info)) {
	t.tree.VisitInOrder(func(name Name, sym *symbol) {
		if len(sym.records) == 0 {
			return
		}
		fn(name, sym.records[len(sym.records)-1])
	})
}
