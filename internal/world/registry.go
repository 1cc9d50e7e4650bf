// Package world holds the owner registry: a circular doubly-linked ring of
// owners, each owning one catalog tree.
package world

import (
	"errors"
	"fmt"
	"iter"

	"github.com/pokedexgo/pokedex/internal/data"
	"github.com/pokedexgo/pokedex/internal/dex"
)

var (
	ErrDuplicateName = errors.New("owner name already registered")
	ErrUnknownOwner  = errors.New("unknown owner")
)

// Direction selects which ring link a walk follows.
type Direction int

const (
	Forward  Direction = iota // follow next
	Backward                  // follow prev
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Owner is one registry member. Name and catalog travel together: sorting
// swaps them between ring members without relinking the ring.
type Owner struct {
	id         OwnerID
	name       string
	dex        *dex.Tree
	next, prev *Owner
}

func (o *Owner) ID() OwnerID    { return o.id }
func (o *Owner) Name() string   { return o.name }
func (o *Owner) Dex() *dex.Tree { return o.dex }
func (o *Owner) Next() *Owner   { return o.next }
func (o *Owner) Prev() *Owner   { return o.prev }

// Registry is the ring of owners. Accessed from a single goroutine; no locks.
type Registry struct {
	head    *Owner
	count   int
	handles handleTable
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Len() int     { return r.count }
func (r *Registry) Head() *Owner { return r.head }
func (r *Registry) Empty() bool  { return r.head == nil }

// Get resolves an OwnerID, returning nil for unknown or removed owners.
func (r *Registry) Get(id OwnerID) *Owner {
	return r.handles.get(id)
}

// Create registers a new owner whose catalog starts with a single entry for
// starter, linking it at the tail of the ring.
func (r *Registry) Create(name string, starter *data.Species) (*Owner, error) {
	if r.FindByName(name) != nil {
		return nil, fmt.Errorf("create %q: %w", name, ErrDuplicateName)
	}
	o := &Owner{name: name, dex: dex.NewTree(starter)}
	o.id = r.handles.alloc(o)
	r.link(o)
	return o, nil
}

func (r *Registry) link(o *Owner) {
	r.count++
	if r.head == nil {
		r.head = o
		o.next, o.prev = o, o
		return
	}
	tail := r.head.prev
	o.next = r.head
	o.prev = tail
	tail.next = o
	r.head.prev = o
}

// Remove unlinks the owner from the ring, then releases its catalog and
// invalidates its ID.
func (r *Registry) Remove(id OwnerID) error {
	o := r.handles.get(id)
	if o == nil {
		return fmt.Errorf("remove owner %d: %w", id, ErrUnknownOwner)
	}
	r.unlink(o)
	o.dex.Release()
	r.handles.free(id)
	return nil
}

func (r *Registry) unlink(o *Owner) {
	r.count--
	if o.next == o {
		r.head = nil
	} else {
		o.prev.next = o.next
		o.next.prev = o.prev
		if r.head == o {
			r.head = o.next
		}
	}
	o.next, o.prev = nil, nil
}

// FindByName scans one revolution from the head for an exact name match.
func (r *Registry) FindByName(name string) *Owner {
	for o := range r.Members() {
		if o.name == name {
			return o
		}
	}
	return nil
}

// At returns the owner at 1-based position pos walking forward from the
// head, or nil when pos is out of range.
func (r *Registry) At(pos int) *Owner {
	if pos < 1 || pos > r.count {
		return nil
	}
	o := r.head
	for i := 1; i < pos; i++ {
		o = o.next
	}
	return o
}

// Members yields every owner once, in ring order from the head.
func (r *Registry) Members() iter.Seq[*Owner] {
	return func(yield func(*Owner) bool) {
		if r.head == nil {
			return
		}
		o := r.head
		for {
			if !yield(o) {
				return
			}
			o = o.next
			if o == r.head {
				return
			}
		}
	}
}

// Walk yields count owners starting at the head and stepping in dir. The
// walk wraps around the ring and may revisit members.
func (r *Registry) Walk(dir Direction, count int) iter.Seq[*Owner] {
	return func(yield func(*Owner) bool) {
		o := r.head
		for i := 0; i < count && o != nil; i++ {
			if !yield(o) {
				return
			}
			if dir == Backward {
				o = o.prev
			} else {
				o = o.next
			}
		}
	}
}

// SortByName orders the ring by name with a bubble sort that swaps the
// name/catalog payload of adjacent members. Ring links and OwnerIDs stay
// attached to their members. Returns false when there is nothing to sort.
func (r *Registry) SortByName() bool {
	if r.count < 2 {
		return false
	}
	for pass := 0; pass < r.count-1; pass++ {
		o := r.head
		for j := 0; j < r.count-1-pass; j++ {
			next := o.next
			if o.name > next.name {
				o.name, next.name = next.name, o.name
				o.dex, next.dex = next.dex, o.dex
			}
			o = next
		}
	}
	return true
}

// Close releases every catalog and unlinks every owner. The registry is
// empty afterwards.
func (r *Registry) Close() {
	for r.head != nil {
		o := r.head
		r.unlink(o)
		o.dex.Release()
		r.handles.free(o.id)
	}
}

// Check verifies ring closure, link symmetry and the member count.
func (r *Registry) Check() error {
	if r.head == nil {
		if r.count != 0 {
			return fmt.Errorf("world: empty ring with count %d", r.count)
		}
		return nil
	}
	o := r.head
	for i := 0; i < r.count; i++ {
		if o.next == nil || o.prev == nil {
			return fmt.Errorf("world: owner %q has a nil link", o.name)
		}
		if o.next.prev != o {
			return fmt.Errorf("world: %q.next.prev is not %q", o.name, o.name)
		}
		if r.handles.get(o.id) != o {
			return fmt.Errorf("world: owner %q has a stale id", o.name)
		}
		o = o.next
	}
	if o != r.head {
		return fmt.Errorf("world: ring does not close after %d steps", r.count)
	}
	return nil
}
