package parallel

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := Config{NumWorkers: 4, MinChunkSize: 8}

	var counter int64
	n := 1000

	err := For(n, func(_ int) error {
		atomic.AddInt64(&counter, 1)
		return nil
	}, cfg)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{NumWorkers: 1}

	var order []int
	err := For(10, func(i int) error {
		order = append(order, i)
		return nil
	}, cfg)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("Expected in-order execution, got %v", order)
		}
	}
}

func TestFor_SmallChunk(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := cfg.MinChunkSize - 1

	_ = For(n, func(_ int) error {
		atomic.AddInt64(&counter, 1)
		return nil
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

// TestFor_LowestError tests that the error of the lowest failing index wins
// regardless of scheduling.
func TestFor_LowestError(t *testing.T) {
	cfg := Config{NumWorkers: 8, MinChunkSize: 4}
	failing := map[int]bool{37: true, 90: true, 150: true}

	for run := 0; run < 20; run++ {
		err := For(200, func(i int) error {
			if failing[i] {
				return fmt.Errorf("item %d", i)
			}
			return nil
		}, cfg)
		if err == nil || err.Error() != "item 37" {
			t.Fatalf("run %d: expected error for item 37, got %v", run, err)
		}
	}

	sentinel := errors.New("first")
	err := For(3, func(i int) error {
		if i == 0 {
			return sentinel
		}
		return nil
	}, Config{NumWorkers: 1})
	if !errors.Is(err, sentinel) {
		t.Errorf("Expected sentinel, got %v", err)
	}
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			_ = For(n, func(i int) error {
				atomic.AddInt64(&sum, int64(i))
				return nil
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfgSeq := cfg
		cfgSeq.NumWorkers = 1
		for i := 0; i < b.N; i++ {
			var sum int64
			_ = For(n, func(i int) error {
				atomic.AddInt64(&sum, int64(i))
				return nil
			}, cfgSeq)
		}
	})
}
