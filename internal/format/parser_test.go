package format

import (
	"testing"

	"github.com/ad-tool/ad/internal/format/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, src string) ([]Stmt, *TypedefRegistry) {
	t.Helper()
	typedefs := NewTypedefRegistry()
	p := NewParser("test.ad", src, typedefs)
	stmts, bag := p.Parse()
	require.False(t, bag.HasErrors(), "unexpected parse errors: %v", bag.Items())
	return stmts, typedefs
}

func TestParser_SimpleDeclaration(t *testing.T) {
	stmts, _ := parseSource(t, `int<32> le count;`)
	require.Len(t, stmts, 1)
	assert.Equal(t, StmtDecl, stmts[0].Kind)
	assert.Equal(t, "count", stmts[0].DeclName)
	assert.Equal(t, KindInt, stmts[0].DeclType.Kind)
	assert.Equal(t, 32, stmts[0].DeclType.BitSize)
	assert.Equal(t, EndianLittle, stmts[0].DeclType.Endian)
}

func TestParser_DeclarationWithInitializer(t *testing.T) {
	stmts, _ := parseSource(t, `int<8> flag = 1 + 2 * 3;`)
	require.Len(t, stmts, 1)
	require.NotNil(t, stmts[0].DeclInit)
	result := Eval(stmts[0].DeclInit)
	require.False(t, result.IsError())
	assert.Equal(t, uint64(7), result.Val.Bits)
}

func TestParser_TypedefThenReference(t *testing.T) {
	stmts, typedefs := parseSource(t, `
		typedef uint<16> be word;
		word first;
	`)
	require.Len(t, stmts, 2)
	assert.Equal(t, StmtLet, stmts[0].Kind)
	assert.Equal(t, StmtDecl, stmts[1].Kind)
	assert.Equal(t, KindInt, stmts[1].DeclType.Kind)
	assert.Equal(t, 16, stmts[1].DeclType.BitSize)
	assert.False(t, stmts[1].DeclType.Signed)

	typ, ok := typedefs.LookupFlat("word")
	require.True(t, ok)
	assert.Equal(t, EndianBig, typ.Endian)
}

func TestParser_UndefinedTypeSuggestsClosestTypedef(t *testing.T) {
	typedefs := NewTypedefRegistry()
	typedefs.Define(scope.NewName("word"), NewIntType(16, false, EndianHost))
	p := NewParser("test.ad", `wrod x;`, typedefs)
	_, bag := p.Parse()
	require.True(t, bag.HasErrors())
	assert.Equal(t, "word", bag.Items()[0].Suggest)
}

func TestParser_IfElseChain(t *testing.T) {
	stmts, _ := parseSource(t, `
		if (1 == 1) {
			int<8> a;
		} else if (2 == 2) {
			int<8> b;
		} else {
			int<8> c;
		}
	`)
	require.Len(t, stmts, 1)
	require.Equal(t, StmtIf, stmts[0].Kind)
	require.Len(t, stmts[0].Else, 1)
	assert.Equal(t, StmtIf, stmts[0].Else[0].Kind)
}

func TestParser_SwitchWithDefault(t *testing.T) {
	stmts, _ := parseSource(t, `
		switch (1) {
		case 1, 2:
			int<8> a;
		default:
			int<8> b;
		}
	`)
	require.Len(t, stmts, 1)
	require.Equal(t, StmtSwitch, stmts[0].Kind)
	require.Len(t, stmts[0].Switch.Cases, 1)
	assert.Len(t, stmts[0].Switch.Cases[0].Values, 2)
	assert.Len(t, stmts[0].Switch.Default, 1)
}

func TestParser_StructBody(t *testing.T) {
	stmts, _ := parseSource(t, `
		struct { int<8> a; int<8> b; } pair;
	`)
	require.Len(t, stmts, 1)
	assert.Equal(t, KindStruct, stmts[0].DeclType.Kind)
	assert.Len(t, stmts[0].DeclType.StructBody, 2)
}

func TestParser_CastExpression(t *testing.T) {
	stmts, _ := parseSource(t, `float<64> f = (float<64>) 3;`)
	require.Len(t, stmts, 1)
	result := Eval(stmts[0].DeclInit)
	require.False(t, result.IsError())
	assert.InDelta(t, 3.0, result.Val.Float, 1e-9)
}

func TestParser_IdentifierReferenceProducesIdentExpr(t *testing.T) {
	stmts, _ := parseSource(t, `int<8> a = len;`)
	require.Len(t, stmts, 1)
	assert.Equal(t, ExprIdentKind, stmts[0].DeclInit.Kind)
	assert.Equal(t, "len", stmts[0].DeclInit.Name)
}

func TestParser_BreakInsideSwitchCase(t *testing.T) {
	stmts, _ := parseSource(t, `
		switch (1) {
		case 1:
			break;
		}
	`)
	require.Len(t, stmts, 1)
	require.Len(t, stmts[0].Switch.Cases[0].Body, 1)
	assert.Equal(t, StmtBreak, stmts[0].Switch.Cases[0].Body[0].Kind)
}
