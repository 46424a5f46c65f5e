package events

import (
	"sync"
	"testing"

	"slotaire/constants"
)

// TestQueueFIFO verifies single-producer ordering
func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 10; i++ {
		q.Push(GameEvent{Type: EventCellTap, Payload: &CellTapPayload{Index: i}})
	}

	got := q.Consume()
	if len(got) != 10 {
		t.Fatalf("Expected 10 events, got %d", len(got))
	}
	for i, ev := range got {
		p := ev.Payload.(*CellTapPayload)
		if p.Index != i {
			t.Errorf("Event %d carries index %d", i, p.Index)
		}
	}

	if q.Consume() != nil {
		t.Error("Second consume returned events")
	}
}

// TestQueueOverflowDropsOldest verifies ring overwrite semantics
func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewQueue()
	total := constants.EventQueueSize + 16
	for i := 0; i < total; i++ {
		q.Push(GameEvent{Type: EventCellTap, Payload: &CellTapPayload{Index: i}})
	}

	got := q.Consume()
	if len(got) != constants.EventQueueSize {
		t.Fatalf("Expected %d events, got %d", constants.EventQueueSize, len(got))
	}
	first := got[0].Payload.(*CellTapPayload)
	if first.Index != 16 {
		t.Errorf("Oldest surviving event has index %d, want 16", first.Index)
	}
}

// TestQueueConcurrentProducers verifies MPSC safety under contention
func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	producers := 8
	perProducer := 16

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(GameEvent{Type: EventDraw})
			}
		}()
	}
	wg.Wait()

	got := q.Consume()
	if len(got) != producers*perProducer {
		t.Errorf("Expected %d events, got %d", producers*perProducer, len(got))
	}
}
