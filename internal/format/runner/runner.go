// Package runner implements the interpreter of spec.md §4.9: it walks a
// checked statement tree, reading bytes from internal/input in each field's
// declared endianness, optionally decoding UTF code units via internal/utf,
// binding the results into a internal/format/scope.Table, and emitting one
// field event per declaration — the same recursive-descent-over-already-
// parsed-structure shape vippsas-sqlcode's walk_test.go exercises against an
// AST, generalized from "visit and collect" to "visit and consume bytes".
//
// Unlike internal/format/compile, which flattens the program into a
// back-patched instruction array purely for the --dump-program debug view,
// the interpreter walks the Stmt/Type tree directly: struct and switch
// nesting falls out of ordinary recursion and Go's own call stack, so there
// is no need to re-derive jump addresses at run time just to execute them.
package runner

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/ad-tool/ad/internal/format"
	"github.com/ad-tool/ad/internal/format/scope"
	"github.com/ad-tool/ad/internal/input"
	"github.com/ad-tool/ad/internal/utf"
)

// FieldEvent is one bound field produced while interpreting a program,
// emitted in declaration order.
type FieldEvent struct {
	Name   string
	Type   *format.Type
	Value  format.Value
	Offset int64
	Pos    format.Range
}

// errBreak unwinds execStmts up to the nearest enclosing switch, the same
// sentinel-error idiom the teacher's codebase uses to short-circuit a walk
// (e.g. goparser/walk.go's early-stop signal) rather than threading a bool
// through every return.
var errBreak = errors.New("runner: break")

// Interpreter runs a checked program against a byte source.
type Interpreter struct {
	reader   *input.Reader
	typedefs *format.TypedefRegistry
	table    *scope.Table
	events   []FieldEvent
}

// NewInterpreter constructs an Interpreter reading from r, sharing typedefs
// with whatever parsed the program (typedefs are not consulted at run time
// today, since the parser already resolves them to concrete Types, but it is
// threaded through for symmetry with Checker and to support a future
// reflective `typeof`/`offsetof` builtin without a signature change).
func NewInterpreter(r *input.Reader, typedefs *format.TypedefRegistry) *Interpreter {
	return &Interpreter{reader: r, typedefs: typedefs, table: scope.NewTable()}
}

// Run executes stmts top to bottom and returns every field event produced.
// A non-nil error means interpretation stopped partway through; the events
// collected before the failure are still returned.
func (in *Interpreter) Run(stmts []format.Stmt) ([]FieldEvent, error) {
	err := in.execStmts(stmts)
	return in.events, err
}

func (in *Interpreter) execStmts(stmts []format.Stmt) error {
	in.table.OpenScope()
	defer in.table.CloseScope()
	for i := range stmts {
		if err := in.execStmt(&stmts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execStmt(st *format.Stmt) error {
	switch st.Kind {
	case format.StmtDecl:
		return in.execDecl(st)
	case format.StmtLet:
		return nil // typedef: already resolved to a concrete Type by the parser
	case format.StmtCompound:
		return in.execStmts(st.Body)
	case format.StmtIf:
		return in.execIf(st)
	case format.StmtSwitch:
		return in.execSwitch(st.Switch)
	case format.StmtBreak:
		return errBreak
	default:
		return nil
	}
}

func (in *Interpreter) execIf(st *format.Stmt) error {
	cond := in.evalInScope(st.Cond)
	if cond.IsError() {
		return in.evalError(st.Pos, cond)
	}
	if format.Truthy(cond) {
		return in.execStmts(st.Then)
	}
	if st.Else != nil {
		return in.execStmts(st.Else)
	}
	return nil
}

// execSwitch dispatches to exactly one matching case (or the default), with
// no C-style fallthrough into the next case: `break` only ever exits the
// matched case's body early, matching how binary-template DSLs this tool's
// lineage descends from (Kaitai's switch-on, 010 Editor's switch) dispatch
// on a tag value rather than fall through arbitrary code ranges.
func (in *Interpreter) execSwitch(sw *format.Type) error {
	ctrl := in.evalInScope(sw.SwitchCtrl)
	if ctrl.IsError() {
		return in.evalError(format.Range{}, ctrl)
	}

	body, matched := in.matchCase(sw, ctrl)
	if !matched {
		if sw.Default == nil {
			return nil
		}
		body = sw.Default
	}

	err := in.execStmts(body)
	if err == errBreak {
		return nil
	}
	return err
}

func (in *Interpreter) matchCase(sw *format.Type, ctrl *format.Expr) ([]format.Stmt, bool) {
	for _, cs := range sw.Cases {
		for _, v := range cs.Values {
			candidate := in.evalInScope(v)
			if candidate.IsError() {
				continue
			}
			if valuesEqual(ctrl, candidate) {
				return cs.Body, true
			}
		}
	}
	return nil, false
}

func valuesEqual(a, b *format.Expr) bool {
	eq := format.Eval(format.NewBinaryExpr(format.OpRelEq, a, b, format.Range{}))
	return !eq.IsError() && eq.Val.Bool
}

// execDecl binds a field: if it carries an initializer it is a computed
// (virtual) field evaluated against already-bound siblings rather than read
// from the stream; otherwise its value is read from the input per its
// declared type — the same "member vs. instance" split 010 Editor templates
// and Kaitai Struct's `value` instances draw, generalized to this DSL's
// plain `=` initializer syntax.
func (in *Interpreter) execDecl(st *format.Stmt) error {
	offset := in.reader.Offset()

	// A struct-typed field has no value of its own to read before its
	// members do; emit its event first (as a container marker) and recurse,
	// rather than buffering member events ahead of it.
	if st.DeclInit == nil && st.DeclType.Kind == format.KindStruct {
		in.bind(st.DeclName, st.DeclType, format.NewValueExpr(st.DeclType, format.Value{}, format.Range{}), st.Pos, offset)
		return in.execStmts(st.DeclType.StructBody)
	}

	var value *format.Expr
	if st.DeclInit != nil {
		value = in.evalInScope(st.DeclInit)
		if value.IsError() {
			return in.evalError(st.Pos, value)
		}
	} else {
		v, err := in.readValue(st.DeclType)
		if err != nil {
			return fmt.Errorf("%s: reading %q: %w", st.Pos.Start, st.DeclName, err)
		}
		value = v
	}

	in.bind(st.DeclName, st.DeclType, value, st.Pos, offset)
	return nil
}

// bind records a field's value in scope and emits its FieldEvent. offset is
// the stream position at the start of the field, captured by the caller
// before readValue advances the reader.
func (in *Interpreter) bind(name string, typ *format.Type, value *format.Expr, pos format.Range, offset int64) {
	in.table.Add(value, scope.NewName(name), scope.KindDecl, in.table.Depth(), pos.Start)
	in.events = append(in.events, FieldEvent{
		Name: name, Type: typ, Value: value.Val, Offset: offset, Pos: pos,
	})
}

func (in *Interpreter) evalError(pos format.Range, e *format.Expr) error {
	if pos.Start.File == "" {
		pos = e.Pos
	}
	return fmt.Errorf("%s: %s", pos.Start, e.ErrKind)
}

// evalInScope resolves every field reference in e against currently bound
// values, then evaluates the now-closed expression with format.Eval.
func (in *Interpreter) evalInScope(e *format.Expr) *format.Expr {
	return format.Eval(in.resolveIdents(e))
}

func (in *Interpreter) resolveIdents(e *format.Expr) *format.Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case format.ExprIdentKind:
		info, ok := in.table.FindByLocalName(e.Name)
		if !ok {
			return format.NewErrorExpr(format.ErrRuntime, e.Pos)
		}
		bound, ok := info.Payload.(*format.Expr)
		if !ok {
			return format.NewErrorExpr(format.ErrRuntime, e.Pos)
		}
		return bound
	case format.ExprUnaryKind:
		return format.NewUnaryExpr(e.Op, in.resolveIdents(e.A), e.Pos)
	case format.ExprBinaryKind:
		return format.NewBinaryExpr(e.Op, in.resolveIdents(e.A), in.resolveIdents(e.B), e.Pos)
	case format.ExprTernaryKind:
		return format.NewTernaryExpr(in.resolveIdents(e.A), in.resolveIdents(e.B), in.resolveIdents(e.C), e.Pos)
	case format.ExprCastKind:
		return format.NewCastExpr(in.resolveIdents(e.A), e.Typ, e.Pos)
	default:
		return e
	}
}

// readValue reads one value of typ from the input stream.
func (in *Interpreter) readValue(typ *format.Type) (*format.Expr, error) {
	switch typ.Kind {
	case format.KindBool:
		b, err := in.reader.ReadExact(1)
		if err != nil {
			return nil, err
		}
		return format.NewValueExpr(typ, format.Value{Bool: b[0] != 0}, format.Range{}), nil

	case format.KindInt:
		n := typ.BitSize / 8
		if n <= 0 {
			n = 1
		}
		b, err := in.reader.ReadExact(n)
		if err != nil {
			return nil, err
		}
		return format.NewValueExpr(typ, format.Value{Bits: decodeUint(b, byteOrderFor(typ.Endian))}, format.Range{}), nil

	case format.KindFloat:
		n := typ.BitSize / 8
		b, err := in.reader.ReadExact(n)
		if err != nil {
			return nil, err
		}
		bits := decodeUint(b, byteOrderFor(typ.Endian))
		var f float64
		if typ.BitSize == 32 {
			f = float64(math.Float32frombits(uint32(bits)))
		} else {
			f = math.Float64frombits(bits)
		}
		return format.NewValueExpr(typ, format.Value{Float: f}, format.Range{}), nil

	case format.KindUTFChar:
		return in.readUTFChar(typ)

	case format.KindUTFString:
		return in.readUTFString(typ)

	default:
		return nil, fmt.Errorf("cannot read a value of kind %s from the input", typ.Kind)
	}
}

func (in *Interpreter) readUTFChar(typ *format.Type) (*format.Expr, error) {
	switch typ.UTFEncoding {
	case format.UTF8:
		lead, err := in.reader.Peek(1)
		if err != nil || len(lead) < 1 {
			return nil, firstNonNil(err, input.ErrShortRead)
		}
		n := utf.UTF8StartLength(lead[0])
		if n == 0 {
			n = 1
		}
		b, err := in.reader.ReadExact(n)
		if err != nil {
			return nil, err
		}
		cp, _, ok := utf.DecodeUTF8ToCP(b)
		if !ok {
			return nil, fmt.Errorf("invalid UTF-8 character at offset %d", in.reader.Offset()-int64(n))
		}
		return format.NewValueExpr(typ, format.Value{Bits: uint64(cp)}, format.Range{}), nil

	case format.UTF16:
		peeked, err := in.reader.Peek(4)
		if err != nil && len(peeked) < 2 {
			return nil, firstNonNil(err, input.ErrShortRead)
		}
		cp, consumed, ok := utf.DecodeUTF16ToCP(peeked, typ.Endian)
		if !ok {
			return nil, fmt.Errorf("invalid UTF-16 character at offset %d", in.reader.Offset())
		}
		if _, err := in.reader.ReadExact(consumed); err != nil {
			return nil, err
		}
		return format.NewValueExpr(typ, format.Value{Bits: uint64(cp)}, format.Range{}), nil

	default: // UTF32
		b, err := in.reader.ReadExact(4)
		if err != nil {
			return nil, err
		}
		cp, _, ok := utf.DecodeUTF32ToCP(b, typ.Endian)
		if !ok {
			return nil, fmt.Errorf("invalid UTF-32 character at offset %d", in.reader.Offset()-4)
		}
		return format.NewValueExpr(typ, format.Value{Bits: uint64(cp)}, format.Range{}), nil
	}
}

// readUTFString reads a null-terminated string one code unit at a time until
// the terminating zero unit, per spec.md §3's NullTerminated field — the
// only string representation this DSL's declared-type grammar can express
// without a companion length field.
func (in *Interpreter) readUTFString(typ *format.Type) (*format.Expr, error) {
	unitWidth := typ.BitSize / 8
	if unitWidth <= 0 {
		unitWidth = 1
	}

	var raw []byte
	for {
		unit, err := in.reader.ReadExact(unitWidth)
		if err != nil {
			return nil, err
		}
		if decodeUint(unit, byteOrderFor(typ.Endian)) == 0 {
			break
		}
		raw = append(raw, unit...)
	}

	var s string
	switch typ.UTFEncoding {
	case format.UTF16:
		decoded, err := utf.DecodeUTF16Bytes(raw, typ.Endian)
		if err != nil {
			return nil, err
		}
		s = decoded
	case format.UTF32:
		var sb []rune
		for i := 0; i+4 <= len(raw); i += 4 {
			cp, _, ok := utf.DecodeUTF32ToCP(raw[i:i+4], typ.Endian)
			if !ok {
				return nil, fmt.Errorf("invalid UTF-32 string at offset %d", in.reader.Offset())
			}
			sb = append(sb, cp)
		}
		s = string(sb)
	default:
		s = string(raw)
	}

	return format.NewValueExpr(typ, format.Value{Str: s}, format.Range{}), nil
}

// byteOrderFor mirrors internal/utf.Endian.byteOrder(): Host and Little both
// resolve to little-endian, matching every platform this tool ships for in
// practice, while Big is explicit.
func byteOrderFor(e format.Endian) binary.ByteOrder {
	if e == format.EndianBig {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func decodeUint(b []byte, order binary.ByteOrder) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(order.Uint16(b))
	case 4:
		return uint64(order.Uint32(b))
	case 8:
		return order.Uint64(b)
	default:
		var v uint64
		if order == binary.BigEndian {
			for _, by := range b {
				v = v<<8 | uint64(by)
			}
		} else {
			for i := len(b) - 1; i >= 0; i-- {
				v = v<<8 | uint64(b[i])
			}
		}
		return v
	}
}

func firstNonNil(a, b error) error {
	if a != nil {
		return a
	}
	return b
}
