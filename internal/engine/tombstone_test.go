package engine

import "testing"

// TestDelete_Scenario2 matches spec scenario 2: after deleting one of
// four orthogonal vectors, a search for it returns the remaining three
// and never the deleted DocID.
func TestDelete_Scenario2(t *testing.T) {
	e := newTestEngine(t, 4, 8, 4, 3, MetricDot)

	_, err := e.Add([]float32{1, 0, 0, 0}, nil, nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	second, err := e.Add([]float32{0, 1, 0, 0}, nil, nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := e.Add([]float32{0, 0, 1, 0}, nil, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := e.Add([]float32{0, 0, 0, 1}, nil, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}

	ok, err := e.Delete(second)
	if err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}

	results, err := e.Search([]float32{0, 1, 0, 0}, 4, 0, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results after delete, got %d", len(results))
	}
	for _, r := range results {
		if r.DocID == second {
			t.Fatalf("deleted DocID %v reappeared in search results", second)
		}
	}
}

func TestDelete_UnknownDocID(t *testing.T) {
	e := newTestEngine(t, 4, 8, 4, 3, MetricDot)
	ok, err := e.Delete(NewDocID())
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ok {
		t.Fatal("expected Delete of unknown DocID to return false")
	}
	if e.Count() != 0 {
		t.Fatalf("expected delete of unknown id to leave state unchanged, count=%d", e.Count())
	}
}

func TestDelete_NoLiveNeighborReferencesDeletedSlot(t *testing.T) {
	e := newTestEngine(t, 4, 64, 8, 4, MetricDot)

	ids := make([]DocID, 0, 20)
	for i := 0; i < 20; i++ {
		v := make([]float32, 4)
		v[i%4] = float32(i + 1)
		id, err := e.Add(v, nil, nil)
		if err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
		ids = append(ids, id)
	}

	for i := 0; i < 10; i++ {
		if _, err := e.Delete(ids[i]); err != nil {
			t.Fatalf("Delete %d: %v", i, err)
		}
	}

	for slot := int32(0); slot < e.f.h.currentCount; slot++ {
		for layer := int32(0); layer < e.f.h.maxLayers; layer++ {
			for _, n := range liveSlots(e.f.readNeighbors(slot, layer)) {
				if e.f.isTombstoned(n) {
					t.Fatalf("slot %d layer %d still references tombstoned slot %d", slot, layer, n)
				}
			}
		}
	}
}

func TestDelete_EntryPointMigration(t *testing.T) {
	// One layer, so every level is 0 and the first add stays the entry point.
	e := newTestEngine(t, 2, 8, 4, 1, MetricDot)

	first, err := e.Add([]float32{1, 0}, nil, nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := e.Add([]float32{0, 1}, nil, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if e.EntryPoint() != 0 {
		t.Fatalf("expected initial entry point 0, got %d", e.EntryPoint())
	}

	if _, err := e.Delete(first); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	ep := e.EntryPoint()
	if ep == neighborSentinel {
		t.Fatal("expected a migrated entry point, got sentinel")
	}
	if e.f.isTombstoned(ep) {
		t.Fatalf("migrated entry point %d is tombstoned", ep)
	}
}
