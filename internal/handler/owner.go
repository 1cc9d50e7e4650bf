package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pokedexgo/pokedex/internal/menu"
	"github.com/pokedexgo/pokedex/internal/system"
	"github.com/pokedexgo/pokedex/internal/world"
	"go.uber.org/zap"
)

// HandleNewOwner asks for a name and a starter and registers the owner.
func HandleNewOwner(_ *menu.Session, deps *Deps) error {
	name, err := deps.In.ReadLine("Your name: ")
	if err != nil {
		return err
	}
	if _, err := deps.Dex.FindOwner(name); err == nil {
		deps.printf("Owner '%s' already exists. Not creating a new Pokedex.\n", name)
		return nil
	}

	starters := deps.Dex.Starters()
	var b strings.Builder
	b.WriteString("Choose Starter:\n")
	for i, s := range starters {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s.Name)
	}
	b.WriteString("Your choice: ")
	choice, err := deps.In.ReadInt(b.String())
	if err != nil {
		return err
	}
	if choice < 1 || choice > len(starters) {
		deps.printf("Invalid choice.\n")
		return nil
	}

	starter := starters[choice-1]
	if _, err := deps.Dex.CreateOwner(name, starter.ID); err != nil {
		deps.Log.Warn("create owner failed", zap.String("owner", name), zap.Error(err))
		deps.printf("Could not create Pokedex for %s.\n", name)
		return nil
	}
	deps.printf("New Pokedex created for %s with starter %s.\n", name, starter.Name)
	return nil
}

// HandleEnterOwner lists owners and switches the session to the chosen one.
func HandleEnterOwner(sess *menu.Session, deps *Deps) error {
	owners := deps.Dex.Owners()
	if len(owners) == 0 {
		deps.printf("No existing Pokedexes.\n")
		return nil
	}
	deps.printf("\nExisting Pokedexes:\n")
	id, ok, err := chooseOwner(deps, owners, "Choose a Pokedex by number: ")
	if err != nil || !ok {
		return err
	}
	o, err := deps.Dex.Owner(id)
	if err != nil {
		return nil
	}
	deps.printf("\nEntering %s's Pokedex...\n", o.Name)
	sess.Enter(id)
	return nil
}

// HandleDeleteOwner lists owners and deletes the chosen one.
func HandleDeleteOwner(_ *menu.Session, deps *Deps) error {
	owners := deps.Dex.Owners()
	if len(owners) == 0 {
		deps.printf("No existing Pokedexes to delete.\n")
		return nil
	}
	deps.printf("\n=== Delete a Pokedex ===\n")
	id, ok, err := chooseOwner(deps, owners, "Choose a Pokedex to delete by number: ")
	if err != nil || !ok {
		return err
	}
	o, err := deps.Dex.Owner(id)
	if err != nil {
		return nil
	}
	deps.printf("Deleting %s's entire Pokedex...\n", o.Name)
	if err := deps.Dex.DeleteOwner(id); err != nil {
		deps.Log.Warn("delete owner failed", zap.String("owner", o.Name), zap.Error(err))
		return nil
	}
	deps.printf("Pokedex deleted.\n")
	return nil
}

// HandleMergeOwners reads two names and merges the second owner into the
// first.
func HandleMergeOwners(_ *menu.Session, deps *Deps) error {
	if len(deps.Dex.Owners()) < 2 {
		deps.printf("Not enough owners to merge.\n")
		return nil
	}
	deps.printf("\n=== Merge Pokedexes ===\n")
	first, err := deps.In.ReadLine("Enter name of first owner: ")
	if err != nil {
		return err
	}
	second, err := deps.In.ReadLine("Enter name of second owner: ")
	if err != nil {
		return err
	}

	_, err = deps.Dex.MergeOwners(second, first)
	switch {
	case err == nil:
	case errors.Is(err, system.ErrSameOwner):
		deps.printf("Cannot merge a Pokedex with itself.\n")
		return nil
	case errors.Is(err, system.ErrNotFound):
		deps.printf("One or both owners not found.\n")
		return nil
	case errors.Is(err, system.ErrEmpty):
		deps.printf("Not enough owners to merge.\n")
		return nil
	default:
		deps.Log.Warn("merge failed", zap.Error(err))
		return nil
	}
	deps.printf("Merging %s and %s...\n", first, second)
	deps.printf("Merge completed.\n")
	deps.printf("Owner '%s' has been removed after merging.\n", second)
	return nil
}

// HandleSortOwners sorts the owner list by name.
func HandleSortOwners(_ *menu.Session, deps *Deps) error {
	if !deps.Dex.SortOwners() {
		deps.printf("0 or 1 owners only => no need to sort.\n")
		return nil
	}
	deps.printf("Owners sorted by name.\n")
	return nil
}

// HandlePrintOwners walks the owner ring in a chosen direction.
func HandlePrintOwners(_ *menu.Session, deps *Deps) error {
	if len(deps.Dex.Owners()) == 0 {
		deps.printf("No owners.\n")
		return nil
	}
	dir, err := readDirection(deps)
	if err != nil {
		return err
	}
	count, err := deps.In.ReadInt("How many prints? ")
	if err != nil {
		return err
	}
	names, err := deps.Dex.EnumerateOwners(dir, count)
	if err != nil {
		deps.printf("No owners.\n")
		return nil
	}
	i := 0
	for name := range names {
		i++
		deps.printf("[%d] %s\n", i, name)
	}
	return nil
}

// readDirection prompts until the answer is F, f, B or b.
func readDirection(deps *Deps) (world.Direction, error) {
	prompt := "Enter direction (F or B): "
	for {
		answer, err := deps.In.ReadLine(prompt)
		if err != nil {
			return world.Forward, err
		}
		switch answer {
		case "F", "f":
			return world.Forward, nil
		case "B", "b":
			return world.Backward, nil
		}
		deps.printf("Invalid direction, must be F or B.\n")
	}
}

// chooseOwner prints a numbered owner list and resolves the answer. ok is
// false when the number is out of range.
func chooseOwner(deps *Deps, owners []system.OwnerSummary, prompt string) (world.OwnerID, bool, error) {
	for i, o := range owners {
		deps.printf("%d. %s\n", i+1, o.Name)
	}
	n, err := deps.In.ReadInt(prompt)
	if err != nil {
		return 0, false, err
	}
	id, err := deps.Dex.OwnerAt(n)
	if err != nil {
		deps.printf("Invalid choice.\n")
		return 0, false, nil
	}
	return id, true, nil
}
