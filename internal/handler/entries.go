package handler

import (
	"errors"

	"github.com/pokedexgo/pokedex/internal/menu"
	"github.com/pokedexgo/pokedex/internal/system"
	"go.uber.org/zap"
)

var displayOrders = []struct {
	label string
	order system.Order
}{
	{"BFS (Level-Order)", system.LevelOrder},
	{"Pre-Order", system.PreOrder},
	{"In-Order", system.InOrder},
	{"Post-Order", system.PostOrder},
	{"Alphabetical (by name)", system.ByName},
}

func (d *Deps) printEntry(e system.EntryView) {
	canEvolve := "No"
	if e.CanEvolve {
		canEvolve = "Yes"
	}
	d.printf("ID: %d, Name: %s, Type: %s, HP: %d, Attack: %d, Can Evolve: %s\n",
		e.ID, e.Name, e.Type, e.HP, e.Attack, canEvolve)
}

func (d *Deps) catalogEmpty(sess *menu.Session) bool {
	o, err := d.Dex.Owner(sess.Owner)
	return err != nil || o.Entries == 0
}

// HandleAddEntry adds a species by ID.
func HandleAddEntry(sess *menu.Session, deps *Deps) error {
	id, err := deps.In.ReadInt("Enter ID to add: ")
	if err != nil {
		return err
	}
	s, err := deps.Dex.AddEntry(sess.Owner, id)
	switch {
	case err == nil:
		deps.printf("Pokemon %s (ID %d) added.\n", s.Name, s.ID)
	case errors.Is(err, system.ErrAlreadyExists):
		deps.printf("Pokemon with ID %d is already in the Pokedex. No changes made.\n", id)
	case errors.Is(err, system.ErrInvalidID):
		deps.printf("Invalid ID.\n")
	default:
		deps.Log.Warn("add entry failed", zap.Int("species", id), zap.Error(err))
	}
	return nil
}

// HandleDisplay prints the catalog in a chosen traversal order.
func HandleDisplay(sess *menu.Session, deps *Deps) error {
	if deps.catalogEmpty(sess) {
		deps.printf("Pokedex is empty.\n")
		return nil
	}
	deps.printf("Display:\n")
	for i, o := range displayOrders {
		deps.printf("%d. %s\n", i+1, o.label)
	}
	choice, err := deps.In.ReadInt("Your choice: ")
	if err != nil {
		return err
	}
	if choice < 1 || choice > len(displayOrders) {
		deps.printf("Invalid choice.\n")
		return nil
	}
	entries, err := deps.Dex.Traverse(sess.Owner, displayOrders[choice-1].order)
	if err != nil {
		deps.printf("Pokedex is empty.\n")
		return nil
	}
	for _, e := range entries {
		deps.printEntry(e)
	}
	return nil
}

// HandleReleaseEntry removes a species by ID.
func HandleReleaseEntry(sess *menu.Session, deps *Deps) error {
	if deps.catalogEmpty(sess) {
		deps.printf("No Pokemon to release.\n")
		return nil
	}
	id, err := deps.In.ReadInt("Enter Pokemon ID to release: ")
	if err != nil {
		return err
	}
	name, err := deps.Dex.ReleaseEntry(sess.Owner, id)
	if err != nil {
		deps.printf("No Pokemon with ID %d found.\n", id)
		return nil
	}
	deps.printf("Removing Pokemon %s (ID %d).\n", name, id)
	return nil
}

// HandleFight scores two entries against each other.
func HandleFight(sess *menu.Session, deps *Deps) error {
	if deps.catalogEmpty(sess) {
		deps.printf("Pokedex is empty.\n")
		return nil
	}
	first, err := deps.In.ReadInt("Enter ID of the first Pokemon: ")
	if err != nil {
		return err
	}
	second, err := deps.In.ReadInt("Enter ID of the second Pokemon: ")
	if err != nil {
		return err
	}
	b, err := deps.Dex.Fight(sess.Owner, first, second)
	if err != nil {
		deps.printf("One or both Pokemon IDs not found.\n")
		return nil
	}
	deps.printf("Pokemon 1: %s (Score = %.2f)\n", b.First.Name, b.FirstScore)
	deps.printf("Pokemon 2: %s (Score = %.2f)\n", b.Second.Name, b.SecondScore)
	if b.Winner == nil {
		deps.printf("It's a tie!\n")
		return nil
	}
	deps.printf("%s wins!\n", b.Winner.Name)
	return nil
}

// HandleEvolve evolves an entry into the next species.
func HandleEvolve(sess *menu.Session, deps *Deps) error {
	if deps.catalogEmpty(sess) {
		deps.printf("Cannot evolve. Pokedex empty.\n")
		return nil
	}
	id, err := deps.In.ReadInt("Enter ID of Pokemon to evolve: ")
	if err != nil {
		return err
	}
	ev, err := deps.Dex.Evolve(sess.Owner, id)
	switch {
	case err == nil:
	case errors.Is(err, system.ErrCannotEvolve):
		deps.printf("%s (ID %d) cannot evolve.\n", ev.From.Name, id)
		return nil
	default:
		deps.printf("No Pokemon with ID %d found.\n", id)
		return nil
	}

	if ev.Released {
		deps.printf("Evolution ID %d (%s) already in the Pokedex. Releasing %s (ID %d).\n",
			ev.To.ID, ev.To.Name, ev.From.Name, ev.From.ID)
		return nil
	}
	deps.printf("Removing Pokemon %s (ID %d).\n", ev.From.Name, ev.From.ID)
	deps.printf("Pokemon evolved from %s (ID %d) to %s (ID %d).\n",
		ev.From.Name, ev.From.ID, ev.To.Name, ev.To.ID)
	return nil
}
