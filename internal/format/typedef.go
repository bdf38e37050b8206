package format

import (
	"strings"

	"github.com/ad-tool/ad/internal/container"
	"github.com/ad-tool/ad/internal/format/scope"
)

// TypedefRegistry is the typedef registry of spec.md §4.4: insert-or-
// replace-by-name, in-order iteration, lookup by scoped name or flat
// identifier. Unlike the nested-scope symbol table (internal/format/scope),
// a typedef survives the scope it was declared in closing — `typedef`
// bindings are process-lifetime, matching how a C typedef is visible for
// the rest of translation once seen.
type TypedefRegistry struct {
	tree *container.RBTree[string, *Type]
}

func NewTypedefRegistry() *TypedefRegistry {
	return &TypedefRegistry{tree: container.NewRBTree[string, *Type](strings.Compare)}
}

// Define inserts name -> typ, replacing any existing binding for the same
// full name.
func (r *TypedefRegistry) Define(name scope.Name, typ *Type) {
	r.tree.Upsert(name.FullName(), typ)
}

// Lookup resolves a scoped name against the registry.
func (r *TypedefRegistry) Lookup(name scope.Name) (*Type, bool) {
	return r.tree.Find(name.FullName())
}

// LookupFlat resolves a bare identifier string (e.g. an identifier the
// parser sees in type position) against the registry.
func (r *TypedefRegistry) LookupFlat(flat string) (*Type, bool) {
	return r.tree.Find(flat)
}

// VisitInOrder visits every typedef in name order.
func (r *TypedefRegistry) VisitInOrder(fn func(name string, typ *Type)) {
	r.tree.VisitInOrder(fn)
}

// Len returns the number of distinct typedef names registered.
func (r *TypedefRegistry) Len() int {
	return r.tree.Len()
}
