package system

import (
	"fmt"

	"github.com/pokedexgo/pokedex/internal/core/event"
	"github.com/pokedexgo/pokedex/internal/data"
	"github.com/pokedexgo/pokedex/internal/dex"
	"github.com/pokedexgo/pokedex/internal/world"
)

// Evolution reports what Evolve did. Released is true when To was already
// in the catalog and From was removed instead of transformed.
type Evolution struct {
	From     *data.Species
	To       *data.Species
	Released bool
}

// Evolve turns entry speciesID into the next species in the table.
//
// When the evolved form is already present the original entry is released
// and the existing one is left untouched. Otherwise the entry is transformed
// in place, keeping its tree position even though its key grows by one;
// with rules.reposition_on_evolve it is reinserted at its ordered position
// instead.
func (p *Pokedex) Evolve(id world.OwnerID, speciesID int) (Evolution, error) {
	o, err := p.owner(id)
	if err != nil {
		return Evolution{}, err
	}
	t := o.Dex()
	if t.Empty() {
		return Evolution{}, fmt.Errorf("evolve %d in %q: %w", speciesID, o.Name(), ErrEmpty)
	}
	n := t.Search(speciesID)
	if n == nil {
		return Evolution{}, fmt.Errorf("evolve %d in %q: %w", speciesID, o.Name(), ErrNotFound)
	}
	from := n.Species()
	to := p.species.Get(from.ID + 1)
	if !from.CanEvolve || to == nil {
		return Evolution{From: from}, fmt.Errorf("evolve %s (ID %d): %w", from.Name, from.ID, ErrCannotEvolve)
	}

	ev := Evolution{From: from, To: to}
	switch {
	case t.Search(to.ID) != nil:
		t.Delete(from.ID)
		ev.Released = true
	case p.rules.RepositionOnEvolve:
		t.Delete(from.ID)
		t.Insert(dex.NewNode(to))
	default:
		n.Replace(to)
	}

	event.Emit(p.bus, event.EntryEvolved{Owner: o.Name(), FromID: from.ID, ToID: to.ID, Released: ev.Released})
	p.verify("evolve")
	return ev, nil
}
