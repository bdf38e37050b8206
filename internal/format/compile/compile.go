// Package compile implements spec.md §4.8: flattening a parsed statement
// tree into an indexable instruction array and back-patching `break` jump
// targets against their enclosing switch, the same "can't know the jump
// target until the whole construct has been emitted" problem a one-pass
// assembler solves by recording patch sites and filling them in once the
// target address is known.
package compile

import (
	"github.com/alecthomas/repr"

	"github.com/ad-tool/ad/internal/container"
	"github.com/ad-tool/ad/internal/format"
)

// OpCode discriminates a compiled instruction.
type OpCode int

const (
	OpField          OpCode = iota // execute st.Field as a StmtDecl: read and bind a value
	OpTypedef                      // execute st.Field as a StmtLet: informational only, already registered at parse time
	OpJumpIfFalse                  // evaluate Cond; jump to Target if falsy
	OpJump                         // unconditional jump to Target
	OpSwitchDispatch              // evaluate Switch.Ctrl and dispatch to the matching case target
	OpEnterScope
	OpExitScope
)

func (op OpCode) String() string {
	switch op {
	case OpField:
		return "field"
	case OpTypedef:
		return "typedef"
	case OpJumpIfFalse:
		return "jump_if_false"
	case OpJump:
		return "jump"
	case OpSwitchDispatch:
		return "switch_dispatch"
	case OpEnterScope:
		return "enter_scope"
	case OpExitScope:
		return "exit_scope"
	default:
		return "unknown"
	}
}

// CaseTarget is one compiled switch case: its match values and the
// instruction index its body begins at.
type CaseTarget struct {
	Values []*format.Expr
	Target int
}

// SwitchDispatch is the compiled payload of an OpSwitchDispatch instruction.
type SwitchDispatch struct {
	Ctrl    *format.Expr
	Cases   []CaseTarget
	Default int // -1 if the switch has no default case
	End     int // instruction index just past the switch; every break in it jumps here
}

// Instruction is one entry of the flattened program.
type Instruction struct {
	Op     OpCode
	Pos    format.Range
	Field  *format.Stmt    // OpField, OpTypedef
	Cond   *format.Expr    // OpJumpIfFalse
	Target int             // OpJumpIfFalse, OpJump
	Switch *SwitchDispatch // OpSwitchDispatch
}

// Compiler flattens a Stmt tree into a linear Instruction array, grown via
// internal/container.Array rather than a bare slice — the dynamic-array
// support container spec.md §11 names, backing the one component that
// genuinely appends-then-randomly-reindexes (jump target back-patching).
type Compiler struct {
	prog *container.Array[Instruction]

	// breakStack holds, per currently-open switch (innermost last), the
	// indices of OpJump instructions emitted for a `break` inside it whose
	// Target is not yet known — back-patched once that switch's end index
	// is reached.
	breakStack [][]int
}

func NewCompiler() *Compiler {
	return &Compiler{prog: container.NewArray[Instruction](0)}
}

// Compile flattens stmts and returns the resulting program. Callers should
// run internal/format/check.Checker over stmts first: Compile does not
// re-validate dangling breaks, relying on the checker to have already
// rejected them.
func (c *Compiler) Compile(stmts []format.Stmt) []Instruction {
	c.compileStmts(stmts)
	return c.prog.Slice()
}

func (c *Compiler) emit(instr Instruction) int {
	return c.prog.Append(instr)
}

// patchTarget back-patches the Target field of an already-emitted
// instruction, once its jump address is finally known.
func (c *Compiler) patchTarget(idx, target int) {
	instr := c.prog.At(idx)
	instr.Target = target
	c.prog.Set(idx, instr)
}

// patchSwitch attaches the fully-built SwitchDispatch payload to the
// dispatch instruction emitted at idx.
func (c *Compiler) patchSwitch(idx int, disp *SwitchDispatch) {
	instr := c.prog.At(idx)
	instr.Switch = disp
	c.prog.Set(idx, instr)
}

func (c *Compiler) compileStmts(stmts []format.Stmt) {
	for i := range stmts {
		c.compileStmt(&stmts[i])
	}
}

func (c *Compiler) compileStmt(st *format.Stmt) {
	switch st.Kind {
	case format.StmtDecl:
		c.emit(Instruction{Op: OpField, Pos: st.Pos, Field: st})
	case format.StmtLet:
		c.emit(Instruction{Op: OpTypedef, Pos: st.Pos, Field: st})
	case format.StmtCompound:
		c.emit(Instruction{Op: OpEnterScope, Pos: st.Pos})
		c.compileStmts(st.Body)
		c.emit(Instruction{Op: OpExitScope, Pos: st.Pos})
	case format.StmtIf:
		c.compileIf(st)
	case format.StmtSwitch:
		c.compileSwitch(st)
	case format.StmtBreak:
		c.compileBreak(st)
	}
}

func (c *Compiler) compileIf(st *format.Stmt) {
	jifIdx := c.emit(Instruction{Op: OpJumpIfFalse, Pos: st.Pos, Cond: st.Cond})
	c.emit(Instruction{Op: OpEnterScope, Pos: st.Pos})
	c.compileStmts(st.Then)
	c.emit(Instruction{Op: OpExitScope, Pos: st.Pos})

	if st.Else == nil {
		c.patchTarget(jifIdx, c.prog.Len())
		return
	}

	jmpIdx := c.emit(Instruction{Op: OpJump, Pos: st.Pos})
	c.patchTarget(jifIdx, c.prog.Len())
	c.emit(Instruction{Op: OpEnterScope, Pos: st.Pos})
	c.compileStmts(st.Else)
	c.emit(Instruction{Op: OpExitScope, Pos: st.Pos})
	c.patchTarget(jmpIdx, c.prog.Len())
}

// compileBreak emits an unconditional jump whose Target is filled in once
// the enclosing switch's end address is known. A break with no enclosing
// switch (which internal/format/check should already have rejected) jumps
// to the very next instruction, a defensive no-op rather than a panic.
func (c *Compiler) compileBreak(st *format.Stmt) {
	idx := c.emit(Instruction{Op: OpJump, Pos: st.Pos})
	if len(c.breakStack) == 0 {
		c.patchTarget(idx, idx+1)
		return
	}
	top := len(c.breakStack) - 1
	c.breakStack[top] = append(c.breakStack[top], idx)
}

// compileSwitch implements the back-patch technique spec.md §4.8 calls for:
// the dispatch instruction is emitted first (its case/default targets filled
// in as each body is compiled), and every `break` inside is recorded for
// patching once this switch's end index is finally known.
func (c *Compiler) compileSwitch(st *format.Stmt) {
	sw := st.Switch
	dispatchIdx := c.emit(Instruction{Op: OpSwitchDispatch, Pos: st.Pos})
	c.breakStack = append(c.breakStack, nil)

	disp := &SwitchDispatch{Ctrl: sw.SwitchCtrl, Default: -1}
	for _, cs := range sw.Cases {
		target := c.prog.Len()
		disp.Cases = append(disp.Cases, CaseTarget{Values: cs.Values, Target: target})
		c.emit(Instruction{Op: OpEnterScope, Pos: st.Pos})
		c.compileStmts(cs.Body)
		c.emit(Instruction{Op: OpExitScope, Pos: st.Pos})
	}
	if sw.Default != nil {
		disp.Default = c.prog.Len()
		c.emit(Instruction{Op: OpEnterScope, Pos: st.Pos})
		c.compileStmts(sw.Default)
		c.emit(Instruction{Op: OpExitScope, Pos: st.Pos})
	}

	disp.End = c.prog.Len()
	c.patchSwitch(dispatchIdx, disp)

	breaks := c.breakStack[len(c.breakStack)-1]
	c.breakStack = c.breakStack[:len(c.breakStack)-1]
	for _, idx := range breaks {
		c.patchTarget(idx, disp.End)
	}
}

// Dump renders prog with github.com/alecthomas/repr for the --dump-program
// debug flag (spec.md §6/§8).
func Dump(prog []Instruction) string {
	return repr.String(prog, repr.Indent("  "))
}
