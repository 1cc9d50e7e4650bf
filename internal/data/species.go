package data

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed yaml/species_list.yaml
var defaultSpeciesYAML []byte

// ElementType is the elemental type of a species. The set is closed.
type ElementType int

const (
	TypeGrass ElementType = iota
	TypeFire
	TypeWater
	TypeBug
	TypeNormal
	TypePoison
	TypeElectric
	TypeGround
	TypeFairy
	TypeFighting
	TypePsychic
	TypeRock
	TypeGhost
	TypeDragon
	TypeIce
)

var elementNames = [...]string{
	TypeGrass:    "GRASS",
	TypeFire:     "FIRE",
	TypeWater:    "WATER",
	TypeBug:      "BUG",
	TypeNormal:   "NORMAL",
	TypePoison:   "POISON",
	TypeElectric: "ELECTRIC",
	TypeGround:   "GROUND",
	TypeFairy:    "FAIRY",
	TypeFighting: "FIGHTING",
	TypePsychic:  "PSYCHIC",
	TypeRock:     "ROCK",
	TypeGhost:    "GHOST",
	TypeDragon:   "DRAGON",
	TypeIce:      "ICE",
}

func (t ElementType) String() string {
	if t < 0 || int(t) >= len(elementNames) {
		return "UNKNOWN"
	}
	return elementNames[t]
}

// ParseElementType maps an upper-case type name to its ElementType.
func ParseElementType(s string) (ElementType, error) {
	for i, name := range elementNames {
		if name == s {
			return ElementType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown element type %q", s)
}

// UnmarshalYAML decodes a type name such as "FIRE".
func (t *ElementType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseElementType(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*t = parsed
	return nil
}

// Species is one immutable record of the species table. Records are shared by
// pointer between every catalog that references them and are never mutated
// after loading.
type Species struct {
	ID        int         `yaml:"id"`
	Name      string      `yaml:"name"`
	Type      ElementType `yaml:"type"`
	HP        int         `yaml:"hp"`
	Attack    int         `yaml:"attack"`
	CanEvolve bool        `yaml:"can_evolve"`
}

type speciesListFile struct {
	Species []Species `yaml:"species"`
}

// SpeciesTable holds every species indexed by its 1-based ID.
type SpeciesTable struct {
	species []Species // species[i] has ID i+1
}

// Get returns the species with the given ID, or nil if the ID is outside the table.
func (t *SpeciesTable) Get(id int) *Species {
	if id < 1 || id > len(t.species) {
		return nil
	}
	return &t.species[id-1]
}

// Count returns the number of loaded species.
func (t *SpeciesTable) Count() int {
	return len(t.species)
}

// All returns the species in ID order. The slice must not be modified.
func (t *SpeciesTable) All() []Species {
	return t.species
}

// LoadSpeciesTable loads the species table from a YAML file.
func LoadSpeciesTable(path string) (*SpeciesTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read species_list: %w", err)
	}
	t, err := ParseSpeciesTable(raw)
	if err != nil {
		return nil, fmt.Errorf("species_list %s: %w", path, err)
	}
	return t, nil
}

// LoadDefaultSpeciesTable returns the first-generation table compiled into the binary.
func LoadDefaultSpeciesTable() (*SpeciesTable, error) {
	t, err := ParseSpeciesTable(defaultSpeciesYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded species_list: %w", err)
	}
	return t, nil
}

// ParseSpeciesTable decodes and validates a species list. IDs must be dense
// and start at 1 in file order, since the ID doubles as the table index.
func ParseSpeciesTable(raw []byte) (*SpeciesTable, error) {
	var f speciesListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(f.Species) == 0 {
		return nil, fmt.Errorf("no species defined")
	}
	for i := range f.Species {
		s := &f.Species[i]
		if s.ID != i+1 {
			return nil, fmt.Errorf("species at position %d has id %d, want %d", i+1, s.ID, i+1)
		}
		if s.Name == "" {
			return nil, fmt.Errorf("species %d has no name", s.ID)
		}
	}
	return &SpeciesTable{species: f.Species}, nil
}
