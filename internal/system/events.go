package system

import (
	"github.com/pokedexgo/pokedex/internal/core/event"
	"go.uber.org/zap"
)

// LogEvents writes every domain event to log at debug level.
func LogEvents(b *event.Bus, log *zap.Logger) {
	event.Subscribe(b, func(e event.EntryAdded) {
		log.Debug("event", zap.String("kind", "entry_added"), zap.String("owner", e.Owner), zap.Int("species", e.SpeciesID))
	})
	event.Subscribe(b, func(e event.EntryReleased) {
		log.Debug("event", zap.String("kind", "entry_released"), zap.String("owner", e.Owner), zap.Int("species", e.SpeciesID))
	})
	event.Subscribe(b, func(e event.EntryEvolved) {
		log.Debug("event", zap.String("kind", "entry_evolved"), zap.String("owner", e.Owner),
			zap.Int("from", e.FromID), zap.Int("to", e.ToID), zap.Bool("released", e.Released))
	})
	event.Subscribe(b, func(e event.BattleResolved) {
		log.Debug("event", zap.String("kind", "battle_resolved"), zap.String("owner", e.Owner), zap.String("winner", e.Winner))
	})
	event.Subscribe(b, func(e event.OwnerCreated) {
		log.Debug("event", zap.String("kind", "owner_created"), zap.String("owner", e.Owner), zap.Int("starter", e.StarterID))
	})
	event.Subscribe(b, func(e event.OwnerDeleted) {
		log.Debug("event", zap.String("kind", "owner_deleted"), zap.String("owner", e.Owner), zap.Int("entries", e.Entries))
	})
	event.Subscribe(b, func(e event.OwnersMerged) {
		log.Debug("event", zap.String("kind", "owners_merged"), zap.String("donor", e.Donor),
			zap.String("receiver", e.Receiver), zap.Int("added", e.Added))
	})
	event.Subscribe(b, func(e event.OwnersSorted) {
		log.Debug("event", zap.String("kind", "owners_sorted"), zap.Int("count", e.Count))
	})
}
