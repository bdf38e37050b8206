// Package check implements the semantic checker of spec.md §4.7: dangling
// `break` detection, unreachable switch-case detection, undeclared-field
// references (with "did you mean?" suggestions), found by a dry-run walk of
// every expression ahead of compilation; operand types are not checked
// here. It walks the same Stmt/Expr/Type trees
// internal/format builds, the way vippsas-sqlcode validates its parsed
// sqlparser.Document before handing it to the compiler.
package check

import (
	"fmt"

	"github.com/ad-tool/ad/internal/diag"
	"github.com/ad-tool/ad/internal/format"
	"github.com/ad-tool/ad/internal/format/scope"
)

// Checker walks a parsed program, accumulating diagnostics in a Bag and a
// scope table tracking which field names are visible at any given point —
// the same nested-scope discipline the interpreter will later repeat at run
// time over actual field values.
type Checker struct {
	bag         *diag.Bag
	typedefs    *format.TypedefRegistry
	table       *scope.Table
	switchDepth int
}

func NewChecker(typedefs *format.TypedefRegistry) *Checker {
	return &Checker{bag: &diag.Bag{}, typedefs: typedefs, table: scope.NewTable()}
}

// Check validates stmts and returns the accumulated diagnostics. A Bag with
// HasErrors() true means the program must not be compiled.
func (c *Checker) Check(stmts []format.Stmt) *diag.Bag {
	c.checkStmts(stmts)
	return c.bag
}

func (c *Checker) checkStmts(stmts []format.Stmt) {
	for i := range stmts {
		c.checkStmt(&stmts[i])
	}
}

func (c *Checker) checkStmt(st *format.Stmt) {
	switch st.Kind {
	case format.StmtDecl:
		c.checkType(st.DeclType)
		if st.DeclInit != nil {
			c.checkExprDryRun(st.DeclInit)
		}
		c.table.Add(nil, scope.NewName(st.DeclName), scope.KindDecl, c.table.Depth(), st.Pos.Start)

	case format.StmtLet:
		c.checkType(st.LetType)

	case format.StmtIf:
		c.checkExprDryRun(st.Cond)
		c.table.OpenScope()
		c.checkStmts(st.Then)
		c.table.CloseScope()
		if st.Else != nil {
			c.table.OpenScope()
			c.checkStmts(st.Else)
			c.table.CloseScope()
		}

	case format.StmtSwitch:
		c.checkExprDryRun(st.Switch.SwitchCtrl)
		c.switchDepth++
		c.table.OpenScope()
		c.checkSwitchCases(st.Switch)
		c.table.CloseScope()
		c.switchDepth--

	case format.StmtBreak:
		if c.switchDepth == 0 {
			c.bag.Errorf(st.Pos, `"break" not within "switch"`)
		}

	case format.StmtCompound:
		c.table.OpenScope()
		c.checkStmts(st.Body)
		c.table.CloseScope()
	}
}

// checkSwitchCases flags duplicate constant case values as unreachable —
// "value already handled by an earlier case, never reached" — the same
// intent as a C compiler's duplicate-case diagnostic, generalized to this
// DSL's richer value kinds (bool/int/float/utf).
func (c *Checker) checkSwitchCases(sw *format.Type) {
	seen := make(map[string]bool)
	for _, cs := range sw.Cases {
		for _, v := range cs.Values {
			c.checkExprDryRun(v)
			if folded := format.Eval(v); !folded.IsError() {
				key := constKey(folded)
				if seen[key] {
					c.bag.Errorf(v.Pos, "unreachable case: value already handled by an earlier case")
				}
				seen[key] = true
			}
		}
		c.checkStmts(cs.Body)
	}
	c.checkStmts(sw.Default)
}

func constKey(v *format.Expr) string {
	t := v.Typ
	return fmt.Sprintf("%d:%d:%v:%v:%s", t.Kind, t.BitSize, v.Val.Bool, v.Val.Bits, v.Val.Str)
}

// checkExprDryRun walks e without a live scope table of bound values —
// field references can't be evaluated before run time — and flags
// undeclared identifiers. For a cast it also walks the target type's
// struct/switch payload; operand and cast types are not checked.
func (c *Checker) checkExprDryRun(e *format.Expr) {
	if e == nil {
		return
	}
	switch e.Kind {
	case format.ExprIdentKind:
		if _, ok := c.table.FindByLocalName(e.Name); !ok {
			suggestion := diag.Suggest(e.Name, c.declaredLocalNames())
			c.bag.Add(diag.Diagnostic{
				Severity: diag.SeverityError,
				Range:    e.Pos,
				Message:  fmt.Sprintf("undefined field %q", e.Name),
				Suggest:  suggestion,
			})
		}
	case format.ExprUnaryKind:
		c.checkExprDryRun(e.A)
	case format.ExprBinaryKind:
		c.checkExprDryRun(e.A)
		c.checkExprDryRun(e.B)
	case format.ExprTernaryKind:
		c.checkExprDryRun(e.A)
		c.checkExprDryRun(e.B)
		c.checkExprDryRun(e.C)
	case format.ExprCastKind:
		c.checkType(e.Typ)
		c.checkExprDryRun(e.A)
	}
}

func (c *Checker) declaredLocalNames() []string {
	var names []string
	c.table.Visit(func(name scope.Name, _ scope.Info) {
		names = append(names, name.LocalName())
	})
	return names
}

// checkType recurses into struct bodies and switch-type payloads so nested
// declarations get the same scope-tracked validation as top-level ones.
func (c *Checker) checkType(t *format.Type) {
	if t == nil {
		return
	}
	switch t.Kind {
	case format.KindStruct:
		c.table.OpenScope()
		c.checkStmts(t.StructBody)
		c.table.CloseScope()
	case format.KindSwitch:
		c.checkExprDryRun(t.SwitchCtrl)
		c.switchDepth++
		c.table.OpenScope()
		c.checkSwitchCases(t)
		c.table.CloseScope()
		c.switchDepth--
	}
}
