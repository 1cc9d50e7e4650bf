// Package metrics counts catalog activity from domain events.
package metrics

import (
	"fmt"
	"io"

	"github.com/pokedexgo/pokedex/internal/core/event"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Recorder owns a private prometheus registry so several recorders (one per
// test, say) never collide on metric names.
type Recorder struct {
	reg *prometheus.Registry

	EntriesAdded    prometheus.Counter
	EntriesReleased prometheus.Counter
	Evolutions      *prometheus.CounterVec
	Battles         *prometheus.CounterVec
	OwnersCreated   prometheus.Counter
	OwnersDeleted   prometheus.Counter
	Merges          prometheus.Counter
	MergedEntries   prometheus.Counter
	Sorts           prometheus.Counter
	Owners          prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		EntriesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pokedex_entries_added_total",
			Help: "Entries added to any catalog.",
		}),
		EntriesReleased: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pokedex_entries_released_total",
			Help: "Entries released from any catalog.",
		}),
		Evolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pokedex_evolutions_total",
			Help: "Successful evolutions by outcome.",
		}, []string{"outcome"}),
		Battles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pokedex_battles_total",
			Help: "Resolved battles by result.",
		}, []string{"result"}),
		OwnersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pokedex_owners_created_total",
			Help: "Owners registered.",
		}),
		OwnersDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pokedex_owners_deleted_total",
			Help: "Owners removed, including merge donors.",
		}),
		Merges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pokedex_merges_total",
			Help: "Completed owner merges.",
		}),
		MergedEntries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pokedex_merged_entries_total",
			Help: "Entries copied into a receiver by merges.",
		}),
		Sorts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pokedex_owner_sorts_total",
			Help: "Owner sorts performed.",
		}),
		Owners: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pokedex_owners",
			Help: "Owners currently registered.",
		}),
	}
	r.reg.MustRegister(
		r.EntriesAdded, r.EntriesReleased, r.Evolutions, r.Battles,
		r.OwnersCreated, r.OwnersDeleted, r.Merges, r.MergedEntries,
		r.Sorts, r.Owners,
	)
	return r
}

// Registry exposes the underlying registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// Attach subscribes the recorder to every domain event it counts.
func (r *Recorder) Attach(b *event.Bus) {
	event.Subscribe(b, func(event.EntryAdded) { r.EntriesAdded.Inc() })
	event.Subscribe(b, func(event.EntryReleased) { r.EntriesReleased.Inc() })
	event.Subscribe(b, func(e event.EntryEvolved) {
		outcome := "transformed"
		if e.Released {
			outcome = "released"
		}
		r.Evolutions.WithLabelValues(outcome).Inc()
	})
	event.Subscribe(b, func(e event.BattleResolved) {
		result := "win"
		if e.Winner == "" {
			result = "tie"
		}
		r.Battles.WithLabelValues(result).Inc()
	})
	event.Subscribe(b, func(event.OwnerCreated) {
		r.OwnersCreated.Inc()
		r.Owners.Inc()
	})
	event.Subscribe(b, func(event.OwnerDeleted) {
		r.OwnersDeleted.Inc()
		r.Owners.Dec()
	})
	event.Subscribe(b, func(e event.OwnersMerged) {
		r.Merges.Inc()
		r.MergedEntries.Add(float64(e.Added))
	})
	event.Subscribe(b, func(event.OwnersSorted) { r.Sorts.Inc() })
}

// Dump writes every gathered family in the Prometheus text exposition format.
func (r *Recorder) Dump(w io.Writer) error {
	families, err := r.reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
