package dex

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/pokedexgo/pokedex/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSpecies returns a stable record per ID so identity comparisons work
// across helpers within one test.
func testSpecies(id int) *data.Species {
	return &data.Species{ID: id, Name: fmt.Sprintf("mon-%03d", id), HP: id, Attack: id}
}

func buildTree(t *testing.T, ids ...int) *Tree {
	t.Helper()
	tree := &Tree{}
	for _, id := range ids {
		require.True(t, tree.Insert(NewNode(testSpecies(id))), "insert %d", id)
	}
	require.NoError(t, tree.Check())
	return tree
}

func collect(seq func(func(*Node) bool)) []int {
	var ids []int
	for n := range seq {
		ids = append(ids, n.ID())
	}
	return ids
}

func TestTree_InsertInOrder(t *testing.T) {
	tree := buildTree(t, 5, 3, 8, 1, 4)
	assert.Equal(t, []int{1, 3, 4, 5, 8}, tree.IDs())
	assert.Equal(t, 5, tree.Len())
	assert.Equal(t, 5, tree.Root().ID())
}

func TestTree_InOrderAscendingForRandomInserts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 20; round++ {
		ids := rng.Perm(60)
		tree := &Tree{}
		for _, id := range ids {
			tree.Insert(NewNode(testSpecies(id + 1)))
		}
		got := tree.IDs()
		require.Len(t, got, 60)
		assert.True(t, slices.IsSorted(got))
		for i := 1; i < len(got); i++ {
			assert.Less(t, got[i-1], got[i])
		}
	}
}

func TestTree_Search(t *testing.T) {
	tree := buildTree(t, 10, 5, 15, 12)
	for _, id := range []int{10, 5, 15, 12} {
		n := tree.Search(id)
		require.NotNil(t, n)
		assert.Equal(t, id, n.ID())
	}
	for _, id := range []int{0, 1, 11, 16, 100} {
		assert.Nil(t, tree.Search(id))
	}

	var empty Tree
	assert.Nil(t, empty.Search(1))
	assert.True(t, empty.Empty())
}

func TestTree_InsertDuplicateIsNoop(t *testing.T) {
	tree := buildTree(t, 5, 3, 8)
	original := tree.Search(3).Species()

	dup := NewNode(&data.Species{ID: 3, Name: "other"})
	assert.False(t, tree.Insert(dup))
	assert.Equal(t, 3, tree.Len())
	assert.Same(t, original, tree.Search(3).Species())
}

func TestTree_DeleteCases(t *testing.T) {
	tests := []struct {
		name   string
		insert []int
		del    int
		want   []int
	}{
		{"leaf", []int{5, 3, 8, 1, 4}, 1, []int{3, 4, 5, 8}},
		{"one child left", []int{5, 3, 8, 1}, 3, []int{1, 5, 8}},
		{"one child right", []int{5, 3, 8, 9}, 8, []int{3, 5, 9}},
		{"two children", []int{5, 3, 8, 1, 4}, 3, []int{1, 4, 5, 8}},
		{"two children successor has right child", []int{10, 5, 20, 15, 25, 17}, 10, []int{5, 15, 17, 20, 25}},
		{"root leaf", []int{7}, 7, []int{}},
		{"root one child", []int{7, 9}, 7, []int{9}},
		{"root two children", []int{7, 3, 9}, 7, []int{3, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := buildTree(t, tt.insert...)
			before := tree.Len()
			require.True(t, tree.Delete(tt.del))
			assert.Equal(t, before-1, tree.Len())
			assert.Equal(t, tt.want, tree.IDs())
			assert.Nil(t, tree.Search(tt.del))
			assert.NoError(t, tree.Check())
		})
	}
}

func TestTree_DeleteTwoChildrenPromotesSuccessor(t *testing.T) {
	tree := buildTree(t, 5, 3, 8, 1, 4)
	node3 := tree.Search(3)
	require.True(t, tree.Delete(3))

	// The node that held 3 stays in place and now carries its successor.
	assert.Same(t, node3, tree.Root().Left())
	assert.Equal(t, 4, node3.ID())
	assert.Equal(t, 1, node3.Left().ID())
	assert.Nil(t, node3.Right())
}

func TestTree_DeleteMissingIsNoop(t *testing.T) {
	tree := buildTree(t, 5, 3, 8, 1, 4)
	pre := collect(tree.PreOrder())

	assert.False(t, tree.Delete(42))
	assert.Equal(t, []int{1, 3, 4, 5, 8}, tree.IDs())
	assert.Equal(t, pre, collect(tree.PreOrder()))
	assert.Equal(t, 5, tree.Len())

	var empty Tree
	assert.False(t, empty.Delete(1))
}

func TestTree_DeleteEverything(t *testing.T) {
	ids := []int{50, 25, 75, 10, 30, 60, 90, 5, 27, 35, 65}
	tree := buildTree(t, ids...)
	for i, id := range ids {
		require.True(t, tree.Delete(id))
		require.NoError(t, tree.Check())
		assert.Equal(t, len(ids)-i-1, tree.Len())
	}
	assert.True(t, tree.Empty())
}

func TestTree_Traversals(t *testing.T) {
	//        5
	//      /   \
	//     3     8
	//    / \     \
	//   1   4     9
	tree := buildTree(t, 5, 3, 8, 1, 4, 9)

	assert.Equal(t, []int{5, 3, 1, 4, 8, 9}, collect(tree.PreOrder()))
	assert.Equal(t, []int{1, 3, 4, 5, 8, 9}, collect(tree.InOrder()))
	assert.Equal(t, []int{1, 4, 3, 9, 8, 5}, collect(tree.PostOrder()))
	assert.Equal(t, []int{5, 3, 8, 1, 4, 9}, collect(tree.LevelOrder()))

	// Sequences are repeatable.
	assert.Equal(t, collect(tree.LevelOrder()), collect(tree.LevelOrder()))
}

func TestTree_TraversalsStopEarly(t *testing.T) {
	tree := buildTree(t, 5, 3, 8, 1, 4, 9)
	for name, seq := range map[string]func(func(*Node) bool){
		"pre":   tree.PreOrder(),
		"in":    tree.InOrder(),
		"post":  tree.PostOrder(),
		"level": tree.LevelOrder(),
	} {
		t.Run(name, func(t *testing.T) {
			seen := 0
			for range seq {
				seen++
				if seen == 2 {
					break
				}
			}
			assert.Equal(t, 2, seen)
		})
	}
}

func TestTree_TraversalsOnEmptyTree(t *testing.T) {
	var tree Tree
	assert.Empty(t, collect(tree.PreOrder()))
	assert.Empty(t, collect(tree.InOrder()))
	assert.Empty(t, collect(tree.PostOrder()))
	assert.Empty(t, collect(tree.LevelOrder()))
	assert.Empty(t, tree.SortedByName())
}

func TestTree_SortedByName(t *testing.T) {
	tree := &Tree{}
	names := map[int]string{5: "Pikachu", 3: "Charmander", 8: "Bulbasaur", 1: "Squirtle", 4: "Abra"}
	for _, id := range []int{5, 3, 8, 1, 4} {
		tree.Insert(NewNode(&data.Species{ID: id, Name: names[id]}))
	}

	var got []string
	for _, n := range tree.SortedByName() {
		got = append(got, n.Species().Name)
	}
	assert.Equal(t, []string{"Abra", "Bulbasaur", "Charmander", "Pikachu", "Squirtle"}, got)
}

func TestTree_SortedByNameIsByteWise(t *testing.T) {
	tree := &Tree{}
	tree.Insert(NewNode(&data.Species{ID: 2, Name: "abra"}))
	tree.Insert(NewNode(&data.Species{ID: 1, Name: "Zubat"}))

	sorted := tree.SortedByName()
	require.Len(t, sorted, 2)
	assert.Equal(t, "Zubat", sorted[0].Species().Name)
}

func TestTree_Release(t *testing.T) {
	tree := buildTree(t, 5, 3, 8, 1, 4)
	root := tree.Root()
	tree.Release()

	assert.True(t, tree.Empty())
	assert.Equal(t, 0, tree.Len())
	assert.Nil(t, root.Left())
	assert.Nil(t, root.Right())

	// An empty tree accepts new entries again.
	assert.True(t, tree.Insert(NewNode(testSpecies(2))))
	assert.Equal(t, 1, tree.Len())
}

func TestTree_CheckDetectsMisplacedKey(t *testing.T) {
	tree := buildTree(t, 5, 3, 8)
	tree.Search(3).Replace(testSpecies(6))
	assert.Error(t, tree.Check())
}

func TestNewTree(t *testing.T) {
	tree := NewTree(testSpecies(4))
	assert.Equal(t, 1, tree.Len())
	assert.Equal(t, 4, tree.Root().ID())
}
