package compile

import (
	"testing"

	"github.com/ad-tool/ad/internal/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseProgram(t *testing.T, src string) []format.Stmt {
	t.Helper()
	p := format.NewParser("test.ad", src, format.NewTypedefRegistry())
	stmts, bag := p.Parse()
	require.False(t, bag.HasErrors(), "unexpected parse errors: %v", bag.Items())
	return stmts
}

func TestCompile_FlatDeclarations(t *testing.T) {
	stmts := parseProgram(t, `int<8> a; int<8> b;`)
	prog := NewCompiler().Compile(stmts)
	require.Len(t, prog, 2)
	assert.Equal(t, OpField, prog[0].Op)
	assert.Equal(t, OpField, prog[1].Op)
}

func TestCompile_IfWithoutElseJumpsPastThenBranch(t *testing.T) {
	stmts := parseProgram(t, `if (1 == 1) { int<8> a; }`)
	prog := NewCompiler().Compile(stmts)
	require.Equal(t, OpJumpIfFalse, prog[0].Op)
	assert.Equal(t, len(prog), prog[0].Target)
}

func TestCompile_IfElseBothBranchesTerminateAtSameIndex(t *testing.T) {
	stmts := parseProgram(t, `if (1 == 1) { int<8> a; } else { int<8> b; }`)
	prog := NewCompiler().Compile(stmts)
	jumpIdx := -1
	for i, instr := range prog {
		if instr.Op == OpJump {
			jumpIdx = i
		}
	}
	require.GreaterOrEqual(t, jumpIdx, 0)
	assert.Equal(t, len(prog), prog[jumpIdx].Target)
}

func TestCompile_BreakInsideSwitchPatchedToDispatchEnd(t *testing.T) {
	stmts := parseProgram(t, `
		switch (1) {
		case 1:
			break;
		}
	`)
	prog := NewCompiler().Compile(stmts)
	require.Equal(t, OpSwitchDispatch, prog[0].Op)
	disp := prog[0].Switch
	require.Len(t, disp.Cases, 1)

	var breakIdx int
	found := false
	for i, instr := range prog {
		if instr.Op == OpJump {
			breakIdx = i
			found = true
		}
	}
	require.True(t, found)
	assert.Equal(t, disp.End, prog[breakIdx].Target)
	assert.Equal(t, len(prog), disp.End)
}

func TestCompile_SwitchCaseTargetsPointIntoProgram(t *testing.T) {
	stmts := parseProgram(t, `
		switch (1) {
		case 1:
			int<8> a;
		case 2:
			int<8> b;
		default:
			int<8> c;
		}
	`)
	prog := NewCompiler().Compile(stmts)
	disp := prog[0].Switch
	require.Len(t, disp.Cases, 2)
	assert.NotEqual(t, disp.Cases[0].Target, disp.Cases[1].Target)
	assert.GreaterOrEqual(t, disp.Default, 0)
	assert.Less(t, disp.Cases[0].Target, disp.Default)
}
