package dex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_FIFO(t *testing.T) {
	var q queue
	assert.True(t, q.empty())
	assert.Nil(t, q.pop())

	a, b, c := NewNode(testSpecies(1)), NewNode(testSpecies(2)), NewNode(testSpecies(3))
	q.push(a)
	q.push(b)
	assert.Same(t, a, q.pop())
	q.push(c)
	assert.Same(t, b, q.pop())
	assert.Same(t, c, q.pop())
	assert.True(t, q.empty())
	assert.Nil(t, q.pop())

	// Reusable after draining.
	q.push(a)
	assert.False(t, q.empty())
	assert.Same(t, a, q.pop())
}

func TestMergeInto(t *testing.T) {
	src := buildTree(t, 5, 3, 8, 1)
	dst := buildTree(t, 4, 3, 10)

	added := MergeInto(src, dst)
	assert.Equal(t, 3, added)
	assert.Equal(t, []int{1, 3, 4, 5, 8, 10}, dst.IDs())
	require.NoError(t, dst.Check())

	// Source is untouched.
	assert.Equal(t, []int{1, 3, 5, 8}, src.IDs())
	assert.Equal(t, 4, src.Len())

	// Merged entries share the source's species records but not its nodes.
	assert.Same(t, src.Search(5).Species(), dst.Search(5).Species())
	assert.NotSame(t, src.Search(5), dst.Search(5))
}

func TestMergeInto_Idempotent(t *testing.T) {
	src := buildTree(t, 7, 2, 9, 1, 6)
	dst := buildTree(t, 6, 20)

	MergeInto(src, dst)
	once := collect(dst.PreOrder())

	assert.Equal(t, 0, MergeInto(src, dst))
	assert.Equal(t, once, collect(dst.PreOrder()))
}

func TestMergeInto_InsertsInBreadthFirstOrder(t *testing.T) {
	src := buildTree(t, 5, 3, 8, 1, 4)
	dst := &Tree{}

	MergeInto(src, dst)
	// BFS insertion into an empty tree reproduces the source shape.
	assert.Equal(t, collect(src.PreOrder()), collect(dst.PreOrder()))
}

func TestMergeInto_EmptySource(t *testing.T) {
	dst := buildTree(t, 1, 2)
	assert.Equal(t, 0, MergeInto(&Tree{}, dst))
	assert.Equal(t, []int{1, 2}, dst.IDs())
}

func TestMergeInto_KeepsDestinationOnlyEntries(t *testing.T) {
	src := buildTree(t, 2, 4)
	dst := buildTree(t, 3, 1, 5)
	MergeInto(src, dst)
	for _, id := range []int{1, 3, 5} {
		assert.NotNil(t, dst.Search(id))
	}
	for _, id := range []int{2, 4} {
		assert.NotNil(t, dst.Search(id))
	}
}
