package event

// Catalog events. IDs are species IDs; Owner is the owner's display name at
// the time of the event.

type EntryAdded struct {
	Owner     string
	SpeciesID int
	Name      string
}

type EntryReleased struct {
	Owner     string
	SpeciesID int
	Name      string
}

// EntryEvolved is emitted for every successful evolution. Released is true
// when the evolved form was already present and the original entry was
// removed instead of transformed.
type EntryEvolved struct {
	Owner    string
	FromID   int
	ToID     int
	Released bool
}

// BattleResolved carries both scores; Winner is empty on a tie.
type BattleResolved struct {
	Owner       string
	First       string
	Second      string
	FirstScore  float64
	SecondScore float64
	Winner      string
}

// Registry events.

type OwnerCreated struct {
	Owner     string
	StarterID int
}

type OwnerDeleted struct {
	Owner   string
	Entries int
}

type OwnersMerged struct {
	Donor    string
	Receiver string
	Added    int
}

type OwnersSorted struct {
	Count int
}
