package metrics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pokedexgo/pokedex/internal/core/event"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_CountsEvents(t *testing.T) {
	r := NewRecorder()
	b := event.NewBus()
	r.Attach(b)

	event.Emit(b, event.OwnerCreated{Owner: "Ash", StarterID: 1})
	event.Emit(b, event.OwnerCreated{Owner: "Misty", StarterID: 7})
	event.Emit(b, event.EntryAdded{Owner: "Ash", SpeciesID: 25})
	event.Emit(b, event.EntryAdded{Owner: "Ash", SpeciesID: 26})
	event.Emit(b, event.EntryReleased{Owner: "Ash", SpeciesID: 26})
	event.Emit(b, event.EntryEvolved{Owner: "Ash", FromID: 1, ToID: 2})
	event.Emit(b, event.EntryEvolved{Owner: "Ash", FromID: 25, ToID: 26, Released: true})
	event.Emit(b, event.BattleResolved{Owner: "Ash", Winner: "Pikachu"})
	event.Emit(b, event.BattleResolved{Owner: "Ash"})
	event.Emit(b, event.BattleResolved{Owner: "Ash"})
	event.Emit(b, event.OwnersMerged{Donor: "Misty", Receiver: "Ash", Added: 4})
	event.Emit(b, event.OwnerDeleted{Owner: "Misty", Entries: 1})
	event.Emit(b, event.OwnersSorted{Count: 1})

	assert.Equal(t, 2.0, testutil.ToFloat64(r.OwnersCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.OwnersDeleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Owners))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.EntriesAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.EntriesReleased))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Evolutions.WithLabelValues("transformed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Evolutions.WithLabelValues("released")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Battles.WithLabelValues("win")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.Battles.WithLabelValues("tie")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Merges))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.MergedEntries))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Sorts))
}

func TestRecorder_Dump(t *testing.T) {
	r := NewRecorder()
	b := event.NewBus()
	r.Attach(b)
	event.Emit(b, event.EntryAdded{Owner: "Ash", SpeciesID: 25})
	event.Emit(b, event.BattleResolved{Owner: "Ash"})

	var buf bytes.Buffer
	require.NoError(t, r.Dump(&buf))
	out := buf.String()
	assert.Contains(t, out, "# HELP pokedex_entries_added_total Entries added to any catalog.\n")
	assert.Contains(t, out, "# TYPE pokedex_entries_added_total counter\n")
	assert.Contains(t, out, "pokedex_entries_added_total 1\n")
	assert.Contains(t, out, "# TYPE pokedex_battles_total counter\n")
	assert.Contains(t, out, "pokedex_battles_total{result=\"tie\"} 1\n")
	assert.Contains(t, out, "# TYPE pokedex_owners gauge\n")
	assert.Contains(t, out, "pokedex_owners 0\n")
	assert.NotContains(t, out, "pokedex_evolutions_total")
}

func TestRecorder_DumpMatchesGather(t *testing.T) {
	r := NewRecorder()
	r.Battles.WithLabelValues("win").Add(3)

	families, err := r.Registry().Gather()
	require.NoError(t, err)
	types := map[string]dto.MetricType{}
	for _, mf := range families {
		types[mf.GetName()] = mf.GetType()
	}
	assert.Equal(t, dto.MetricType_COUNTER, types["pokedex_battles_total"])
	assert.Equal(t, dto.MetricType_GAUGE, types["pokedex_owners"])

	var buf bytes.Buffer
	require.NoError(t, r.Dump(&buf))
	assert.Equal(t, len(families), strings.Count(buf.String(), "# TYPE "))
	assert.Contains(t, buf.String(), "pokedex_battles_total{result=\"win\"} 3\n")
}

func TestRecorder_IndependentRegistries(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	a.EntriesAdded.Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.EntriesAdded))
	assert.NotSame(t, a.Registry(), b.Registry())
}
