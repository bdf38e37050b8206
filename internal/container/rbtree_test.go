package container

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRBTree_UpsertAndFind(t *testing.T) {
	tree := NewRBTree[string, int](strings.Compare)

	assert.True(t, tree.Upsert("b", 2))
	assert.True(t, tree.Upsert("a", 1))
	assert.True(t, tree.Upsert("c", 3))
	assert.False(t, tree.Upsert("b", 20), "re-inserting an existing key should replace, not add")

	v, ok := tree.Find("b")
	require.True(t, ok)
	assert.Equal(t, 20, v)

	_, ok = tree.Find("missing")
	assert.False(t, ok)

	assert.Equal(t, 3, tree.Len())
}

func TestRBTree_VisitInOrder(t *testing.T) {
	tree := NewRBTree[string, int](strings.Compare)
	for _, k := range []string{"delta", "alpha", "charlie", "bravo"} {
		tree.Upsert(k, len(k))
	}

	var seen []string
	tree.VisitInOrder(func(k string, v int) {
		seen = append(seen, k)
	})

	assert.Equal(t, []string{"alpha", "bravo", "charlie", "delta"}, seen)
}

func TestList_FIFOAndLIFO(t *testing.T) {
	var l List[int]
	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)

	v, ok := l.PopFront()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, l.Len())

	var l2 List[int]
	l2.PushFront(1)
	l2.PushFront(2)
	v, ok = l2.PopFront()
	require.True(t, ok)
	assert.Equal(t, 2, v)
}
