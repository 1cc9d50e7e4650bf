package system

import (
	"fmt"

	"github.com/pokedexgo/pokedex/internal/core/event"
	"github.com/pokedexgo/pokedex/internal/data"
	"github.com/pokedexgo/pokedex/internal/world"
)

// Battle is the outcome of Fight. Winner is nil on a tie.
type Battle struct {
	First       *data.Species
	Second      *data.Species
	FirstScore  float64
	SecondScore float64
	Winner      *data.Species
}

// Fight scores two entries of the same catalog against each other. Scores
// must match exactly to tie.
func (p *Pokedex) Fight(id world.OwnerID, firstID, secondID int) (Battle, error) {
	o, err := p.owner(id)
	if err != nil {
		return Battle{}, err
	}
	t := o.Dex()
	if t.Empty() {
		return Battle{}, fmt.Errorf("fight in %q: %w", o.Name(), ErrEmpty)
	}
	a, b := t.Search(firstID), t.Search(secondID)
	if a == nil || b == nil {
		return Battle{}, fmt.Errorf("fight %d vs %d in %q: %w", firstID, secondID, o.Name(), ErrNotFound)
	}

	res := Battle{
		First:       a.Species(),
		Second:      b.Species(),
		FirstScore:  p.scorer.BattleScore(a.Species()),
		SecondScore: p.scorer.BattleScore(b.Species()),
	}
	switch {
	case res.FirstScore > res.SecondScore:
		res.Winner = res.First
	case res.SecondScore > res.FirstScore:
		res.Winner = res.Second
	}

	winner := ""
	if res.Winner != nil {
		winner = res.Winner.Name
	}
	event.Emit(p.bus, event.BattleResolved{
		Owner:       o.Name(),
		First:       res.First.Name,
		Second:      res.Second.Name,
		FirstScore:  res.FirstScore,
		SecondScore: res.SecondScore,
		Winner:      winner,
	})
	return res, nil
}
