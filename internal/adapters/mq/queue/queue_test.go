package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	if err := q.Enqueue(ctx, Job{Seq: 0, GameID: "401772790"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	job := <-q.Dequeue(ctx)
	if job.GameID != "401772790" {
		t.Errorf("expected 401772790, got %s", job.GameID)
	}
	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := q.Enqueue(ctx, Job{Seq: i, GameID: fmt.Sprintf("G%d", i)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := q.Enqueue(ctx, Job{Seq: 2, GameID: "G2"}); !errors.Is(err, ErrFull) {
		t.Errorf("expected ErrFull, got %v", err)
	}
	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_CloseDrains(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(4))
	ctx := context.Background()

	_ = q.Enqueue(ctx, Job{Seq: 0, GameID: "G1"})
	_ = q.Enqueue(ctx, Job{Seq: 1, GameID: "G2"})

	if err := q.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to be closed")
	}
	if err := q.Enqueue(ctx, Job{GameID: "G3"}); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}

	var got []string
	for job := range q.Dequeue(ctx) {
		got = append(got, job.GameID)
	}
	if len(got) != 2 || got[0] != "G1" || got[1] != "G2" {
		t.Errorf("expected queued jobs in order, got %v", got)
	}
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1000))
	ctx := context.Background()

	var wg sync.WaitGroup
	for p := 0; p < 10; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if err := q.Enqueue(ctx, Job{Seq: p*100 + i, GameID: fmt.Sprintf("G%d-%d", p, i)}); err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		}(p)
	}
	wg.Wait()
	_ = q.Close()

	seen := make(map[int]bool)
	for job := range q.Dequeue(ctx) {
		if seen[job.Seq] {
			t.Errorf("job %d delivered twice", job.Seq)
		}
		seen[job.Seq] = true
	}
	if len(seen) != 1000 {
		t.Errorf("expected 1000 jobs, got %d", len(seen))
	}
}

func TestInMemoryQueue_CanceledContext(t *testing.T) {
	q := NewInMemoryQueue()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := q.Enqueue(ctx, Job{GameID: "G1"}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
