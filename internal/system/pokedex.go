// Package system runs the catalog operations: entry management, evolution,
// battles and the owner registry, emitting a domain event for every change.
package system

import (
	"errors"
	"fmt"
	"iter"

	"github.com/pokedexgo/pokedex/internal/config"
	"github.com/pokedexgo/pokedex/internal/core/event"
	"github.com/pokedexgo/pokedex/internal/data"
	"github.com/pokedexgo/pokedex/internal/dex"
	"github.com/pokedexgo/pokedex/internal/scripting"
	"github.com/pokedexgo/pokedex/internal/world"
	"go.uber.org/zap"
)

// Scorer computes a species' battle score. *scripting.Engine and
// scripting.Builtin both satisfy it.
type Scorer interface {
	BattleScore(s *data.Species) float64
}

// Deps holds what a Pokedex needs. Species is required; the rest default.
type Deps struct {
	Species         *data.SpeciesTable
	Registry        *world.Registry
	Scorer          Scorer
	Bus             *event.Bus
	Log             *zap.Logger
	Rules           config.RulesConfig
	CheckInvariants bool
}

// Pokedex is the catalog service. Not safe for concurrent use.
type Pokedex struct {
	species *data.SpeciesTable
	owners  *world.Registry
	scorer  Scorer
	bus     *event.Bus
	log     *zap.Logger
	rules   config.RulesConfig
	check   bool
}

func New(d Deps) *Pokedex {
	p := &Pokedex{
		species: d.Species,
		owners:  d.Registry,
		scorer:  d.Scorer,
		bus:     d.Bus,
		log:     d.Log,
		rules:   d.Rules,
		check:   d.CheckInvariants,
	}
	if p.owners == nil {
		p.owners = world.NewRegistry()
	}
	if p.scorer == nil {
		p.scorer = scripting.Builtin{}
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	if len(p.rules.Starters) == 0 {
		p.rules.Starters = config.Default().Rules.Starters
	}
	return p
}

// Species returns the shared species table.
func (p *Pokedex) Species() *data.SpeciesTable { return p.species }

// OwnerSummary is a read-only view of one registry member.
type OwnerSummary struct {
	ID      world.OwnerID
	Name    string
	Entries int
}

func summarize(o *world.Owner) OwnerSummary {
	return OwnerSummary{ID: o.ID(), Name: o.Name(), Entries: o.Dex().Len()}
}

// Starters returns the starter species in menu order.
func (p *Pokedex) Starters() []*data.Species {
	out := make([]*data.Species, 0, len(p.rules.Starters))
	for _, id := range p.rules.Starters {
		if s := p.species.Get(id); s != nil {
			out = append(out, s)
		}
	}
	return out
}

// CreateOwner registers name with a catalog holding starterID.
func (p *Pokedex) CreateOwner(name string, starterID int) (world.OwnerID, error) {
	starter := p.species.Get(starterID)
	if starter == nil {
		return 0, fmt.Errorf("create owner %q: starter %d: %w", name, starterID, ErrInvalidID)
	}
	o, err := p.owners.Create(name, starter)
	if err != nil {
		if errors.Is(err, world.ErrDuplicateName) {
			return 0, fmt.Errorf("create owner %q: %w", name, ErrAlreadyExists)
		}
		return 0, err
	}
	p.log.Info("owner created", zap.String("owner", name), zap.String("starter", starter.Name))
	event.Emit(p.bus, event.OwnerCreated{Owner: name, StarterID: starter.ID})
	p.verify("create owner")
	return o.ID(), nil
}

// DeleteOwner removes the owner and releases its whole catalog.
func (p *Pokedex) DeleteOwner(id world.OwnerID) error {
	o, err := p.owner(id)
	if err != nil {
		return err
	}
	name, entries := o.Name(), o.Dex().Len()
	if err := p.owners.Remove(id); err != nil {
		return fmt.Errorf("delete owner %q: %w", name, ErrNotFound)
	}
	p.log.Info("owner deleted", zap.String("owner", name), zap.Int("entries", entries))
	event.Emit(p.bus, event.OwnerDeleted{Owner: name, Entries: entries})
	p.verify("delete owner")
	return nil
}

// MergeOwners copies every entry of donor missing from receiver into
// receiver, breadth-first, then deletes donor. It returns the number of
// entries added.
func (p *Pokedex) MergeOwners(donor, receiver string) (int, error) {
	if p.owners.Len() < 2 {
		return 0, fmt.Errorf("merge: %w", ErrEmpty)
	}
	d := p.owners.FindByName(donor)
	if d == nil {
		return 0, fmt.Errorf("merge: owner %q: %w", donor, ErrNotFound)
	}
	r := p.owners.FindByName(receiver)
	if r == nil {
		return 0, fmt.Errorf("merge: owner %q: %w", receiver, ErrNotFound)
	}
	if d == r {
		return 0, fmt.Errorf("merge %q into itself: %w", donor, ErrSameOwner)
	}

	added := dex.MergeInto(d.Dex(), r.Dex())
	entries := d.Dex().Len()
	if err := p.owners.Remove(d.ID()); err != nil {
		return added, fmt.Errorf("merge: remove donor %q: %w", donor, err)
	}
	p.log.Info("owners merged",
		zap.String("donor", donor),
		zap.String("receiver", receiver),
		zap.Int("added", added),
	)
	event.Emit(p.bus, event.OwnersMerged{Donor: donor, Receiver: receiver, Added: added})
	event.Emit(p.bus, event.OwnerDeleted{Owner: donor, Entries: entries})
	p.verify("merge owners")
	return added, nil
}

// SortOwners orders the registry by name. It returns false when there are
// fewer than two owners and nothing changed.
func (p *Pokedex) SortOwners() bool {
	if !p.owners.SortByName() {
		return false
	}
	event.Emit(p.bus, event.OwnersSorted{Count: p.owners.Len()})
	p.verify("sort owners")
	return true
}

// EnumerateOwners yields count names walking from the head in dir,
// wrapping around the ring. The walk is lazy, so count has no upper bound.
func (p *Pokedex) EnumerateOwners(dir world.Direction, count int) (iter.Seq[string], error) {
	if p.owners.Empty() {
		return nil, fmt.Errorf("enumerate owners: %w", ErrEmpty)
	}
	walk := p.owners.Walk(dir, count)
	return func(yield func(string) bool) {
		for o := range walk {
			if !yield(o.Name()) {
				return
			}
		}
	}, nil
}

// Owners lists every owner in ring order from the head.
func (p *Pokedex) Owners() []OwnerSummary {
	out := make([]OwnerSummary, 0, p.owners.Len())
	for o := range p.owners.Members() {
		out = append(out, summarize(o))
	}
	return out
}

// Owner describes the owner behind id.
func (p *Pokedex) Owner(id world.OwnerID) (OwnerSummary, error) {
	o, err := p.owner(id)
	if err != nil {
		return OwnerSummary{}, err
	}
	return summarize(o), nil
}

// OwnerAt resolves a 1-based position in the owner list.
func (p *Pokedex) OwnerAt(pos int) (world.OwnerID, error) {
	o := p.owners.At(pos)
	if o == nil {
		return 0, fmt.Errorf("owner #%d: %w", pos, ErrNotFound)
	}
	return o.ID(), nil
}

// FindOwner resolves an owner by exact name.
func (p *Pokedex) FindOwner(name string) (world.OwnerID, error) {
	o := p.owners.FindByName(name)
	if o == nil {
		return 0, fmt.Errorf("owner %q: %w", name, ErrNotFound)
	}
	return o.ID(), nil
}

// Close tears down every owner and catalog.
func (p *Pokedex) Close() {
	n := p.owners.Len()
	p.owners.Close()
	p.log.Debug("registry closed", zap.Int("owners", n))
}

func (p *Pokedex) owner(id world.OwnerID) (*world.Owner, error) {
	o := p.owners.Get(id)
	if o == nil {
		return nil, fmt.Errorf("owner %d: %w", id, ErrNotFound)
	}
	return o, nil
}

// verify runs the structural checks when invariant checking is enabled.
// Failures are only logged; in-place evolution may leave a catalog out of
// order.
func (p *Pokedex) verify(op string) {
	if !p.check {
		return
	}
	if err := p.owners.Check(); err != nil {
		p.log.Warn("registry invariant violated", zap.String("op", op), zap.Error(err))
	}
	for o := range p.owners.Members() {
		if err := o.Dex().Check(); err != nil {
			p.log.Warn("catalog invariant violated",
				zap.String("op", op),
				zap.String("owner", o.Name()),
				zap.Error(err),
			)
		}
	}
}
