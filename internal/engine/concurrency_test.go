package engine

import (
	"sync"
	"testing"
)

// TestConcurrent_ReadersDuringWrites exercises the single-writer,
// multi-reader discipline from spec.md §5: many goroutines search
// while one goroutine adds, and nothing races or panics under -race.
func TestConcurrent_ReadersDuringWrites(t *testing.T) {
	e := newTestEngine(t, 8, 2000, 16, 4, MetricDot)

	seed := make([]float32, 8)
	seed[0] = 1
	if _, err := e.Add(seed, nil, nil); err != nil {
		t.Fatalf("seed Add: %v", err)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q := make([]float32, 8)
			q[0] = 1
			for {
				select {
				case <-stop:
					return
				default:
				}
				if _, err := e.Search(q, 5, 20, nil); err != nil {
					t.Errorf("Search: %v", err)
					return
				}
				e.Count()
				e.Stats()
			}
		}()
	}

	for i := 0; i < 200; i++ {
		v := make([]float32, 8)
		v[i%8] = float32(i%5) + 1
		if _, err := e.Add(v, nil, nil); err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
	}

	close(stop)
	wg.Wait()
}

func TestConcurrent_DeleteAndSearch(t *testing.T) {
	e := newTestEngine(t, 4, 500, 8, 3, MetricDot)

	ids := make([]DocID, 0, 100)
	for i := 0; i < 100; i++ {
		v := make([]float32, 4)
		v[i%4] = float32(i + 1)
		id, err := e.Add(v, nil, nil)
		if err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
		ids = append(ids, id)
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for _, id := range ids[:50] {
			if _, err := e.Delete(id); err != nil {
				t.Errorf("Delete: %v", err)
				return
			}
		}
	}()

	go func() {
		defer wg.Done()
		q := []float32{1, 0, 0, 0}
		for i := 0; i < 50; i++ {
			if _, err := e.Search(q, 5, 10, nil); err != nil {
				t.Errorf("Search: %v", err)
				return
			}
		}
	}()

	wg.Wait()
}
