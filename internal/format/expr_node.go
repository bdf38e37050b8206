package format

// ExprKind discriminates the expression tagged union of spec.md §3:
// none, error, value, unary, binary, ternary, cast.
type ExprKind int

const (
	ExprNone ExprKind = iota
	ExprErrorKind
	ExprValueKind
	ExprUnaryKind
	ExprBinaryKind
	ExprTernaryKind
	ExprCastKind
	ExprIdentKind
)

// Op enumerates unary/binary operators. Per spec.md §9's resolution of the
// "two competing expression evaluators" open question, these are named
// AD_EXPR_MATH_*-style (OpMath*) rather than the older flat AD_EXPR_* form.
type Op int

const (
	OpNone Op = iota

	// Arithmetic (binary).
	OpMathAdd
	OpMathSub
	OpMathMul
	OpMathDiv
	OpMathMod

	// Bitwise (binary) and complement (unary).
	OpBitAnd
	OpBitOr
	OpBitXor
	OpBitComplement
	OpShl
	OpShr

	// Logical (binary, short-circuiting && and ||) and not (unary).
	OpLogicalAnd
	OpLogicalOr
	OpLogicalXor
	OpLogicalNot

	// Relational (binary).
	OpRelEq
	OpRelNe
	OpRelLt
	OpRelLe
	OpRelGt
	OpRelGe

	// Unary arithmetic negation.
	OpNeg
)

func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "OpUnknown"
}

var opNames = map[Op]string{
	OpMathAdd: "+", OpMathSub: "-", OpMathMul: "*", OpMathDiv: "/", OpMathMod: "%",
	OpBitAnd: "&", OpBitOr: "|", OpBitXor: "^", OpBitComplement: "~",
	OpShl: "<<", OpShr: ">>",
	OpLogicalAnd: "&&", OpLogicalOr: "||", OpLogicalXor: "^^", OpLogicalNot: "!",
	OpRelEq: "==", OpRelNe: "!=", OpRelLt: "<", OpRelLe: "<=", OpRelGt: ">", OpRelGe: ">=",
	OpNeg: "-",
}

// ErrKind enumerates the AD_ERR_* error values an expression can carry
// (spec.md §3/§4.5): bad_operand, div_by_zero, and propagation of
// lexical/runtime errors raised elsewhere in the pipeline.
type ErrKind int

const (
	ErrNone ErrKind = iota
	ErrBadOperand
	ErrDivByZero
	ErrLexical
	ErrRuntime
)

func (e ErrKind) String() string {
	switch e {
	case ErrNone:
		return "none"
	case ErrBadOperand:
		return "bad_operand"
	case ErrDivByZero:
		return "div_by_zero"
	case ErrLexical:
		return "lexical"
	case ErrRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

// Value is the materialized payload of an ExprValueKind expression. Only the
// field(s) matching Expr.Typ.Kind are meaningful; integers of any
// signedness and any UTF code point are stored in Bits (raw bits, mod 2^64)
// so arithmetic wraps per spec.md §8 regardless of interpretation.
type Value struct {
	Bool  bool
	Bits  uint64
	Float float64
	Str   string
}

// Expr is the typed expression tree of spec.md §3. Evaluation (Eval, in
// eval.go) yields a freshly materialized ExprValueKind node by
// copy; expression nodes otherwise form a tree owned by their parent.
type Expr struct {
	Kind ExprKind
	Pos  Range

	ErrKind ErrKind // ExprErrorKind

	Typ *Type // ExprValueKind, ExprCastKind (cast target)
	Val Value // ExprValueKind

	Op Op // ExprUnaryKind, ExprBinaryKind

	A *Expr // unary operand; binary lhs; ternary cond; cast operand
	B *Expr // binary rhs; ternary then-branch
	C *Expr // ternary else-branch

	Name string // ExprIdentKind: the referenced field's name, resolved against
	// the live scope table by internal/format/runner at evaluation time
	// rather than by Eval, which only ever sees closed expressions.
}

func NewErrorExpr(kind ErrKind, pos Range) *Expr {
	return &Expr{Kind: ExprErrorKind, ErrKind: kind, Pos: pos}
}

func NewValueExpr(typ *Type, val Value, pos Range) *Expr {
	return &Expr{Kind: ExprValueKind, Typ: typ, Val: val, Pos: pos}
}

func NewUnaryExpr(op Op, child *Expr, pos Range) *Expr {
	return &Expr{Kind: ExprUnaryKind, Op: op, A: child, Pos: pos}
}

func NewBinaryExpr(op Op, lhs, rhs *Expr, pos Range) *Expr {
	return &Expr{Kind: ExprBinaryKind, Op: op, A: lhs, B: rhs, Pos: pos}
}

func NewTernaryExpr(cond, then, els *Expr, pos Range) *Expr {
	return &Expr{Kind: ExprTernaryKind, A: cond, B: then, C: els, Pos: pos}
}

func NewCastExpr(child *Expr, target *Type, pos Range) *Expr {
	return &Expr{Kind: ExprCastKind, Op: OpNone, A: child, Typ: target, Pos: pos}
}

// NewIdentExpr builds a reference to a previously-bound field, resolved by
// internal/format/runner against its scope.Table during interpretation.
func NewIdentExpr(name string, pos Range) *Expr {
	return &Expr{Kind: ExprIdentKind, Name: name, Pos: pos}
}

// IsError reports whether e is (or, for a value node, never is) an error
// expression.
func (e *Expr) IsError() bool {
	return e != nil && e.Kind == ExprErrorKind
}
