package world

import (
	"testing"
)

type fakeBuilder struct {
	created   []ChunkCoord
	refreshed []ChunkCoord
}

func (b *fakeBuilder) create(coord ChunkCoord) *Chunk {
	b.created = append(b.created, coord)
	return NewChunk(coord, 1, 1)
}

func (b *fakeBuilder) refresh(c *Chunk) {
	b.refreshed = append(b.refreshed, c.Coord)
}

func TestEnqueueRefreshIdempotent(t *testing.T) {
	cs := NewChunkStreamer(NewChunkStore(), &fakeBuilder{})
	a := ChunkCoord{X: 1}
	if !cs.EnqueueRefresh(a) {
		t.Fatalf("first enqueue should succeed")
	}
	if cs.EnqueueRefresh(a) {
		t.Fatalf("second enqueue of a pending coord should be rejected")
	}
	if got := cs.Pending(); got != 1 {
		t.Fatalf("got %d pending, want 1", got)
	}
	cs.ProcessOne()
	if cs.IsPending(a) {
		t.Fatalf("coord still pending after processing")
	}
	if !cs.EnqueueRefresh(a) {
		t.Fatalf("enqueue after processing should succeed")
	}
}

func TestProcessOneFIFO(t *testing.T) {
	b := &fakeBuilder{}
	cs := NewChunkStreamer(NewChunkStore(), b)
	order := []ChunkCoord{{X: 2}, {Y: 1}, {Z: 3}, {X: 1, Y: 1}}
	for _, c := range order {
		cs.EnqueueRefresh(c)
	}
	cs.EnqueueRefresh(order[0])
	for i, want := range order {
		got, ok := cs.ProcessOne()
		if !ok || got != want {
			t.Fatalf("item %d: got %v (ok=%v), want %v", i, got, ok, want)
		}
	}
	if _, ok := cs.ProcessOne(); ok {
		t.Fatalf("empty queue should report nothing processed")
	}
}

func TestProcessOneCreateThenRefresh(t *testing.T) {
	store := NewChunkStore()
	b := &fakeBuilder{}
	cs := NewChunkStreamer(store, b)
	coord := ChunkCoord{X: 1, Z: 1}

	cs.EnqueueRefresh(coord)
	cs.ProcessOne()
	if len(b.created) != 1 || len(b.refreshed) != 0 {
		t.Fatalf("first pass: created %v refreshed %v", b.created, b.refreshed)
	}
	first, ok := store.Get(coord)
	if !ok {
		t.Fatalf("chunk not added to store")
	}

	cs.EnqueueRefresh(coord)
	cs.ProcessOne()
	if len(b.created) != 1 || len(b.refreshed) != 1 {
		t.Fatalf("second pass: created %v refreshed %v", b.created, b.refreshed)
	}
	if again, _ := store.Get(coord); again != first {
		t.Fatalf("refresh replaced the chunk")
	}
}

func TestChunkStoreAddKeepsExisting(t *testing.T) {
	s := NewChunkStore()
	coord := ChunkCoord{Y: 2}
	a := NewChunk(coord, 1, 1)
	if !s.Add(coord, a) {
		t.Fatalf("first add should succeed")
	}
	if s.Add(coord, NewChunk(coord, 1, 1)) {
		t.Fatalf("second add at the same coord should be rejected")
	}
	if got, _ := s.Get(coord); got != a || s.Len() != 1 {
		t.Fatalf("store replaced the existing chunk")
	}
}

func TestForEachCoordinateOrder(t *testing.T) {
	var got []ChunkCoord
	ForEachCoordinate([3]int{2, 1, 2}, func(c ChunkCoord) { got = append(got, c) })
	want := []ChunkCoord{{0, 0, 0}, {0, 0, 1}, {1, 0, 0}, {1, 0, 1}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
