package system

import (
	"fmt"

	"github.com/pokedexgo/pokedex/internal/core/event"
	"github.com/pokedexgo/pokedex/internal/data"
	"github.com/pokedexgo/pokedex/internal/dex"
	"github.com/pokedexgo/pokedex/internal/world"
)

// Order selects how Traverse walks a catalog.
type Order int

const (
	LevelOrder Order = iota
	PreOrder
	InOrder
	PostOrder
	ByName
)

func (o Order) String() string {
	switch o {
	case LevelOrder:
		return "level-order"
	case PreOrder:
		return "pre-order"
	case InOrder:
		return "in-order"
	case PostOrder:
		return "post-order"
	case ByName:
		return "by-name"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// EntryView is a flat copy of one catalog entry for display.
type EntryView struct {
	ID        int
	Name      string
	Type      data.ElementType
	HP        int
	Attack    int
	CanEvolve bool
}

func viewOf(s *data.Species) EntryView {
	return EntryView{
		ID:        s.ID,
		Name:      s.Name,
		Type:      s.Type,
		HP:        s.HP,
		Attack:    s.Attack,
		CanEvolve: s.CanEvolve,
	}
}

// AddEntry adds species id to the owner's catalog.
func (p *Pokedex) AddEntry(id world.OwnerID, speciesID int) (*data.Species, error) {
	o, err := p.owner(id)
	if err != nil {
		return nil, err
	}
	t := o.Dex()
	if t.Search(speciesID) != nil {
		return nil, fmt.Errorf("add %d to %q: %w", speciesID, o.Name(), ErrAlreadyExists)
	}
	s := p.species.Get(speciesID)
	if s == nil {
		return nil, fmt.Errorf("add %d to %q: %w", speciesID, o.Name(), ErrInvalidID)
	}
	t.Insert(dex.NewNode(s))

	event.Emit(p.bus, event.EntryAdded{Owner: o.Name(), SpeciesID: s.ID, Name: s.Name})
	p.verify("add entry")
	return s, nil
}

// ReleaseEntry removes species id from the owner's catalog and returns the
// released entry's name.
func (p *Pokedex) ReleaseEntry(id world.OwnerID, speciesID int) (string, error) {
	o, err := p.owner(id)
	if err != nil {
		return "", err
	}
	t := o.Dex()
	if t.Empty() {
		return "", fmt.Errorf("release %d from %q: %w", speciesID, o.Name(), ErrEmpty)
	}
	n := t.Search(speciesID)
	if n == nil {
		return "", fmt.Errorf("release %d from %q: %w", speciesID, o.Name(), ErrNotFound)
	}
	name := n.Species().Name
	t.Delete(speciesID)

	event.Emit(p.bus, event.EntryReleased{Owner: o.Name(), SpeciesID: speciesID, Name: name})
	p.verify("release entry")
	return name, nil
}

// SearchEntry looks up species id in the owner's catalog.
func (p *Pokedex) SearchEntry(id world.OwnerID, speciesID int) (*dex.Node, error) {
	o, err := p.owner(id)
	if err != nil {
		return nil, err
	}
	n := o.Dex().Search(speciesID)
	if n == nil {
		return nil, fmt.Errorf("search %d in %q: %w", speciesID, o.Name(), ErrNotFound)
	}
	return n, nil
}

// Traverse lists the owner's catalog in the requested order.
func (p *Pokedex) Traverse(id world.OwnerID, order Order) ([]EntryView, error) {
	o, err := p.owner(id)
	if err != nil {
		return nil, err
	}
	t := o.Dex()
	if t.Empty() {
		return nil, fmt.Errorf("traverse %q: %w", o.Name(), ErrEmpty)
	}

	out := make([]EntryView, 0, t.Len())
	if order == ByName {
		for _, n := range t.SortedByName() {
			out = append(out, viewOf(n.Species()))
		}
		return out, nil
	}

	seq := t.LevelOrder()
	switch order {
	case LevelOrder:
	case PreOrder:
		seq = t.PreOrder()
	case InOrder:
		seq = t.InOrder()
	case PostOrder:
		seq = t.PostOrder()
	default:
		return nil, fmt.Errorf("traverse %q: unknown order %v", o.Name(), order)
	}
	for n := range seq {
		out = append(out, viewOf(n.Species()))
	}
	return out, nil
}
