package handler

import (
	"fmt"
	"io"

	"github.com/pokedexgo/pokedex/internal/console"
	"github.com/pokedexgo/pokedex/internal/menu"
	"github.com/pokedexgo/pokedex/internal/system"
	"go.uber.org/zap"
)

// Deps holds shared dependencies injected into all menu handlers.
type Deps struct {
	Dex *system.Pokedex
	In  *console.Prompter
	Out io.Writer
	Log *zap.Logger
}

func (d *Deps) printf(format string, args ...any) {
	fmt.Fprintf(d.Out, format, args...)
}

// RegisterAll registers every menu screen and choice into the registry.
func RegisterAll(reg *menu.Registry, deps *Deps) {
	// Main menu
	reg.Screen(menu.StateMain,
		func(*menu.Session) string { return "\n=== Main Menu ===\n" },
		"Invalid.\n",
	)
	reg.Register(menu.StateMain, 1, "New Pokedex", func(s *menu.Session) error {
		return HandleNewOwner(s, deps)
	})
	reg.Register(menu.StateMain, 2, "Existing Pokedex", func(s *menu.Session) error {
		return HandleEnterOwner(s, deps)
	})
	reg.Register(menu.StateMain, 3, "Delete a Pokedex", func(s *menu.Session) error {
		return HandleDeleteOwner(s, deps)
	})
	reg.Register(menu.StateMain, 4, "Merge Pokedexes", func(s *menu.Session) error {
		return HandleMergeOwners(s, deps)
	})
	reg.Register(menu.StateMain, 5, "Sort Owners by Name", func(s *menu.Session) error {
		return HandleSortOwners(s, deps)
	})
	reg.Register(menu.StateMain, 6, "Print Owners in a direction X times", func(s *menu.Session) error {
		return HandlePrintOwners(s, deps)
	})
	reg.Register(menu.StateMain, 7, "Exit", func(s *menu.Session) error {
		deps.printf("Goodbye!\n")
		s.Done = true
		return nil
	})

	// Owner sub-menu
	reg.Screen(menu.StateOwner,
		func(s *menu.Session) string {
			name := "?"
			if o, err := deps.Dex.Owner(s.Owner); err == nil {
				name = o.Name
			}
			return fmt.Sprintf("\n-- %s's Pokedex Menu --\n", name)
		},
		"Invalid choice.\n",
	)
	reg.Register(menu.StateOwner, 1, "Add Pokemon", func(s *menu.Session) error {
		return HandleAddEntry(s, deps)
	})
	reg.Register(menu.StateOwner, 2, "Display Pokedex", func(s *menu.Session) error {
		return HandleDisplay(s, deps)
	})
	reg.Register(menu.StateOwner, 3, "Release Pokemon (by ID)", func(s *menu.Session) error {
		return HandleReleaseEntry(s, deps)
	})
	reg.Register(menu.StateOwner, 4, "Pokemon Fight!", func(s *menu.Session) error {
		return HandleFight(s, deps)
	})
	reg.Register(menu.StateOwner, 5, "Evolve Pokemon", func(s *menu.Session) error {
		return HandleEvolve(s, deps)
	})
	reg.Register(menu.StateOwner, 6, "Back to Main", func(s *menu.Session) error {
		deps.printf("Back to Main Menu.\n")
		s.Leave()
		return nil
	})
}
