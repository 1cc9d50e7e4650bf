// Package dex implements an owner's catalog: an unbalanced binary search tree
// of species entries keyed by species ID.
package dex

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/pokedexgo/pokedex/internal/data"
)

// Node is one catalog entry. It references a shared species record and owns
// its two child links exclusively.
type Node struct {
	species     *data.Species
	left, right *Node
}

// NewNode returns a detached node referencing s.
func NewNode(s *data.Species) *Node {
	return &Node{species: s}
}

func (n *Node) Species() *data.Species { return n.species }
func (n *Node) ID() int                { return n.species.ID }
func (n *Node) Left() *Node            { return n.left }
func (n *Node) Right() *Node           { return n.right }

// Replace swaps the species record in place. The node keeps its position in
// the tree even though its key changes.
func (n *Node) Replace(s *data.Species) {
	n.species = s
}

// Tree is a catalog index. The zero value is an empty tree.
type Tree struct {
	root *Node
	size int
}

// NewTree returns a tree holding a single entry for s.
func NewTree(s *data.Species) *Tree {
	return &Tree{root: NewNode(s), size: 1}
}

func (t *Tree) Root() *Node { return t.root }
func (t *Tree) Len() int    { return t.size }
func (t *Tree) Empty() bool { return t.root == nil }

// Search returns the node with the given ID, or nil.
func (t *Tree) Search(id int) *Node {
	n := t.root
	for n != nil {
		switch {
		case id < n.ID():
			n = n.left
		case id > n.ID():
			n = n.right
		default:
			return n
		}
	}
	return nil
}

// Insert attaches n as a leaf on its comparison path. When an entry with the
// same ID is reached the tree is left unchanged and Insert returns false;
// callers check with Search first.
func (t *Tree) Insert(n *Node) bool {
	if t.root == nil {
		t.root = n
		t.size++
		return true
	}
	cur := t.root
	for {
		switch {
		case n.ID() < cur.ID():
			if cur.left == nil {
				cur.left = n
				t.size++
				return true
			}
			cur = cur.left
		case n.ID() > cur.ID():
			if cur.right == nil {
				cur.right = n
				t.size++
				return true
			}
			cur = cur.right
		default:
			return false
		}
	}
}

// Delete removes the entry with the given ID. A missing ID leaves the tree
// unchanged and returns false.
func (t *Tree) Delete(id int) bool {
	var ok bool
	t.root, ok = deleteNode(t.root, id)
	if ok {
		t.size--
	}
	return ok
}

func deleteNode(n *Node, id int) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	var ok bool
	switch {
	case id < n.ID():
		n.left, ok = deleteNode(n.left, id)
		return n, ok
	case id > n.ID():
		n.right, ok = deleteNode(n.right, id)
		return n, ok
	}

	switch {
	case n.left == nil && n.right == nil:
		return nil, true
	case n.right == nil:
		child := n.left
		n.left = nil
		return child, true
	case n.left == nil:
		child := n.right
		n.right = nil
		return child, true
	}

	// Two children: promote the in-order successor's record, then unlink the
	// successor from its original position.
	succ := n.right
	for succ.left != nil {
		succ = succ.left
	}
	n.species = succ.species
	n.right = removeMin(n.right)
	return n, true
}

// removeMin unlinks the leftmost node of the subtree rooted at n.
func removeMin(n *Node) *Node {
	if n.left == nil {
		child := n.right
		n.right = nil
		return child
	}
	n.left = removeMin(n.left)
	return n
}

// PreOrder yields nodes root, left, right.
func (t *Tree) PreOrder() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		preOrder(t.root, yield)
	}
}

func preOrder(n *Node, yield func(*Node) bool) bool {
	if n == nil {
		return true
	}
	return yield(n) && preOrder(n.left, yield) && preOrder(n.right, yield)
}

// InOrder yields nodes left, root, right: ascending ID order while the
// ordering invariant holds.
func (t *Tree) InOrder() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		inOrder(t.root, yield)
	}
}

func inOrder(n *Node, yield func(*Node) bool) bool {
	if n == nil {
		return true
	}
	return inOrder(n.left, yield) && yield(n) && inOrder(n.right, yield)
}

// PostOrder yields nodes left, right, root.
func (t *Tree) PostOrder() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		postOrder(t.root, yield)
	}
}

func postOrder(n *Node, yield func(*Node) bool) bool {
	if n == nil {
		return true
	}
	return postOrder(n.left, yield) && postOrder(n.right, yield) && yield(n)
}

// LevelOrder yields nodes breadth-first, left to right within a depth.
func (t *Tree) LevelOrder() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		bfs(t.root, yield)
	}
}

// SortedByName returns every node ordered by species name (byte-wise). Equal
// names keep their pre-order position.
func (t *Tree) SortedByName() []*Node {
	nodes := make([]*Node, 0, t.size)
	for n := range t.PreOrder() {
		nodes = append(nodes, n)
	}
	slices.SortStableFunc(nodes, func(a, b *Node) int {
		return strings.Compare(a.species.Name, b.species.Name)
	})
	return nodes
}

// IDs returns the in-order ID sequence.
func (t *Tree) IDs() []int {
	ids := make([]int, 0, t.size)
	for n := range t.InOrder() {
		ids = append(ids, n.ID())
	}
	return ids
}

// Release unlinks every node in post-order and empties the tree. The tree is
// usable (empty) afterwards.
func (t *Tree) Release() {
	releaseNode(t.root)
	t.root = nil
	t.size = 0
}

func releaseNode(n *Node) {
	if n == nil {
		return
	}
	releaseNode(n.left)
	releaseNode(n.right)
	n.left, n.right = nil, nil
}

// Check verifies the ordering invariant and the cached size.
func (t *Tree) Check() error {
	count := 0
	if err := checkNode(t.root, nil, nil, &count); err != nil {
		return err
	}
	if count != t.size {
		return fmt.Errorf("dex: size %d, counted %d nodes", t.size, count)
	}
	return nil
}

func checkNode(n *Node, lo, hi *int, count *int) error {
	if n == nil {
		return nil
	}
	*count++
	id := n.ID()
	if lo != nil && id <= *lo {
		return fmt.Errorf("dex: node %d not greater than ancestor %d", id, *lo)
	}
	if hi != nil && id >= *hi {
		return fmt.Errorf("dex: node %d not less than ancestor %d", id, *hi)
	}
	if err := checkNode(n.left, lo, &id, count); err != nil {
		return err
	}
	return checkNode(n.right, &id, hi, count)
}
