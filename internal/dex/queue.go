package dex

// queue is a FIFO of node references used as scratch space for one
// breadth-first walk.
type queue struct {
	head, tail *queueItem
}

type queueItem struct {
	node *Node
	next *queueItem
}

func (q *queue) empty() bool { return q.head == nil }

func (q *queue) push(n *Node) {
	item := &queueItem{node: n}
	if q.tail == nil {
		q.head, q.tail = item, item
		return
	}
	q.tail.next = item
	q.tail = item
}

func (q *queue) pop() *Node {
	if q.head == nil {
		return nil
	}
	item := q.head
	q.head = item.next
	if q.head == nil {
		q.tail = nil
	}
	return item.node
}

// bfs visits the subtree at root breadth-first. visit returns false to stop.
func bfs(root *Node, visit func(*Node) bool) {
	if root == nil {
		return
	}
	var q queue
	q.push(root)
	for !q.empty() {
		n := q.pop()
		if !visit(n) {
			return
		}
		if n.left != nil {
			q.push(n.left)
		}
		if n.right != nil {
			q.push(n.right)
		}
	}
}

// MergeInto copies every entry of src whose ID is missing from dst into dst,
// visiting src breadth-first. New nodes reference the same species records;
// src is not modified. It returns the number of entries added, so running it
// a second time returns 0.
func MergeInto(src, dst *Tree) int {
	added := 0
	bfs(src.root, func(n *Node) bool {
		if dst.Search(n.ID()) == nil && dst.Insert(NewNode(n.species)) {
			added++
		}
		return true
	})
	return added
}
