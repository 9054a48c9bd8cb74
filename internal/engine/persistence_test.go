package engine

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

// TestReopen_RoundTrip covers the property: open -> add(x1..xn) ->
// close -> open yields the same count, DocID set, and search results
// for a fixed query as the pre-close engine.
func TestReopen_RoundTrip(t *testing.T) {
	dir, err := os.MkdirTemp("", "annstore_persist_test")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "store.db")

	cfg := Config{Path: path, Dim: 6, MaxCount: 32, M: 8, L: 3, Metric: MetricDot}

	e1, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	ids := make([]DocID, 0, 10)
	for i := 0; i < 10; i++ {
		v := make([]float32, 6)
		v[i%6] = float32(i + 1)
		id, err := e1.Add(v, []byte("meta"), nil)
		if err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
		ids = append(ids, id)
	}

	query := []float32{1, 0, 0, 0, 0, 0}
	before, err := e1.Search(query, 5, 20, nil)
	if err != nil {
		t.Fatalf("Search before close: %v", err)
	}
	countBefore := e1.Count()

	if err := e1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	e2, err := Open(cfg)
	if err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	defer e2.Close()

	if e2.Count() != countBefore {
		t.Fatalf("count mismatch after reopen: got %d want %d", e2.Count(), countBefore)
	}

	for _, id := range ids {
		if _, _, ok, err := e2.GetByID(id); err != nil || !ok {
			t.Fatalf("GetByID(%v) after reopen: ok=%v err=%v", id, ok, err)
		}
	}

	after, err := e2.Search(query, 5, 20, nil)
	if err != nil {
		t.Fatalf("Search after reopen: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("result length mismatch: before=%d after=%d", len(before), len(after))
	}
	for i := range before {
		if before[i].DocID != after[i].DocID {
			t.Fatalf("result %d DocID mismatch: before=%v after=%v", i, before[i].DocID, after[i].DocID)
		}
	}
}

// TestReopen_TombstonesSurvive matches spec scenario 5: insert 500,
// delete 250 at random, reopen; every tombstoned slot is in the
// deleted set after reopen and no live neighbor list references one.
func TestReopen_TombstonesSurvive(t *testing.T) {
	dir, err := os.MkdirTemp("", "annstore_persist_test2")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "store.db")

	cfg := Config{Path: path, Dim: 16, MaxCount: 600, M: 16, L: 4, Metric: MetricDot}

	e1, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	rng := rand.New(rand.NewSource(7))
	ids := make([]DocID, 0, 500)
	for i := 0; i < 500; i++ {
		v := make([]float32, 16)
		for j := range v {
			v[j] = rng.Float32()
		}
		id, err := e1.Add(v, nil, nil)
		if err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
		ids = append(ids, id)
	}

	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	deletedIDs := ids[:250]
	for _, id := range deletedIDs {
		if _, err := e1.Delete(id); err != nil {
			t.Fatalf("Delete: %v", err)
		}
	}

	if err := e1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	e2, err := Open(cfg)
	if err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	defer e2.Close()

	for slot := int32(0); slot < e2.f.h.currentCount; slot++ {
		if e2.f.isTombstoned(slot) {
			if !e2.isDeleted(slot) {
				t.Fatalf("tombstoned slot %d missing from in-memory deleted set after reopen", slot)
			}
		}
	}

	for slot := int32(0); slot < e2.f.h.currentCount; slot++ {
		for layer := int32(0); layer < e2.f.h.maxLayers; layer++ {
			for _, n := range liveSlots(e2.f.readNeighbors(slot, layer)) {
				if e2.f.isTombstoned(n) {
					t.Fatalf("after reopen, slot %d layer %d references tombstoned slot %d", slot, layer, n)
				}
			}
		}
	}
}

// TestUpdate_Scenario6 matches spec scenario 6: update(g, v', m')
// followed by search(v') returns g as top-1 with a score close to
// score(v', v'); get_by_id(g) returns (v', m').
func TestUpdate_Scenario6(t *testing.T) {
	e := newTestEngine(t, 4, 32, 8, 3, MetricDot)

	g, err := e.Add([]float32{1, 0, 0, 0}, []byte("old"), nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	for i := 0; i < 5; i++ {
		v := make([]float32, 4)
		v[i%4] = 0.1
		if _, err := e.Add(v, nil, nil); err != nil {
			t.Fatalf("Add filler %d: %v", i, err)
		}
	}

	newVec := []float32{0, 2, 0, 0}
	newMeta := []byte("new")
	ok, err := e.Update(g, newVec, newMeta)
	if err != nil || !ok {
		t.Fatalf("Update: ok=%v err=%v", ok, err)
	}

	results, err := e.Search(newVec, 1, 20, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].DocID != g {
		t.Fatalf("expected top-1 to be %v, got %+v", g, results)
	}
	if want := score(MetricDot, newVec, newVec); results[0].Score != want {
		t.Fatalf("expected top-1 score %v, got %v", want, results[0].Score)
	}

	vec, meta, ok, err := e.GetByID(g)
	if err != nil || !ok {
		t.Fatalf("GetByID: ok=%v err=%v", ok, err)
	}
	if string(meta) != "new" {
		t.Fatalf("expected metadata %q, got %q", "new", meta)
	}
	if len(vec) != len(newVec) {
		t.Fatalf("expected vector length %d, got %d", len(newVec), len(vec))
	}
	for i := range newVec {
		if vec[i] != newVec[i] {
			t.Fatalf("expected vector %v, got %v", newVec, vec)
		}
	}
}
