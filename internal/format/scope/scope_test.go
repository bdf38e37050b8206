package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isKeyword(s string) bool {
	switch s {
	case "struct", "switch", "break":
		return true
	}
	return false
}

func TestParseThenFullNameRoundTrips(t *testing.T) {
	n, consumed := Parse("S::T::x rest", isKeyword)
	assert.Equal(t, 7, consumed)
	assert.Equal(t, "S::T::x", n.FullName())
	assert.Equal(t, "x", n.LocalName())
	assert.Equal(t, "S::T", n.ScopeName().FullName())

	n2, consumed2 := Parse(n.FullName(), isKeyword)
	assert.Equal(t, len(n.FullName()), consumed2)
	assert.True(t, n.Equal(n2))
}

func TestParseStopsOnLeadingKeyword(t *testing.T) {
	_, consumed := Parse("switch (x)", isKeyword)
	assert.Equal(t, 0, consumed)
}

func TestParseStopsOnNonIdentifier(t *testing.T) {
	_, consumed := Parse("123abc", isKeyword)
	assert.Equal(t, 0, consumed)
}

func TestCompareIsLexicographic(t *testing.T) {
	a := NewName("a", "b")
	b := NewName("a", "c")
	assert.Negative(t, Compare(a, b))
	assert.Positive(t, Compare(b, a))
	assert.Zero(t, Compare(a, a.Clone()))
}

func TestTable_ScopeRestoredAfterClose(t *testing.T) {
	tbl := NewTable()
	name := NewName("x")

	tbl.Add("outer", name, KindDecl, 0, Location{})

	tbl.OpenScope()
	tbl.Add("inner", name, KindDecl, tbl.Depth(), Location{})
	info, ok := tbl.Find(name)
	require.True(t, ok)
	assert.Equal(t, "inner", info.Payload)

	tbl.CloseScope()
	info, ok = tbl.Find(name)
	require.True(t, ok)
	assert.Equal(t, "outer", info.Payload, "lookup after close_scope must return pre-open state")
}

func TestTable_AddDoesNotShadowAtSameOrDeeperDepth(t *testing.T) {
	tbl := NewTable()
	name := NewName("x")

	first := tbl.Add("first", name, KindDecl, 1, Location{})
	second := tbl.Add("second", name, KindDecl, 1, Location{})
	assert.Equal(t, first, second, "re-adding at the same depth must return the existing record unchanged")
}

func TestTable_VisitOrderMatchesScopedNameCompare(t *testing.T) {
	tbl := NewTable()
	tbl.Add(1, NewName("b"), KindDecl, 0, Location{})
	tbl.Add(2, NewName("a"), KindDecl, 0, Location{})
	tbl.Add(3, NewName("c"), KindDecl, 0, Location{})

	var order []string
	tbl.Visit(func(n Name, i Info) {
		order = append(order, n.FullName())
	})
	assert.Equal(t, []string{"a", "b", "c"}, order)
}
