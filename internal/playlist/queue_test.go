package playlist

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func queueOf(ids ...string) *PlayingQueue {
	q := NewQueue()
	for _, id := range ids {
		q.Add(Track{ID: id, Path: "/songs/" + id + ".mp3"})
	}
	return q
}

func TestNewQueue(t *testing.T) {
	q := NewQueue()

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
	if q.Current() != nil {
		t.Error("Current() should be nil for empty queue")
	}
	if !q.Valid() {
		t.Error("empty queue should be valid")
	}
}

func TestQueue_AddStartsOnFirstTrack(t *testing.T) {
	q := NewQueue()

	if !q.Add(Track{ID: "a"}) {
		t.Error("first Add should report start")
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}
	if q.Add(Track{ID: "b"}) {
		t.Error("second Add should not report start")
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0 (unchanged)", q.CurrentIndex())
	}
}

func TestQueue_NextWraps(t *testing.T) {
	q := queueOf("a", "b", "c")
	q.JumpTo(2)

	track := q.Next()
	if track == nil || track.ID != "a" {
		t.Fatalf("Next() = %v, want a", track)
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}
}

func TestQueue_PreviousWraps(t *testing.T) {
	q := queueOf("a", "b", "c")

	track := q.Previous()
	if track == nil || track.ID != "c" {
		t.Fatalf("Previous() = %v, want c", track)
	}
	if q.CurrentIndex() != 2 {
		t.Errorf("CurrentIndex() = %d, want 2", q.CurrentIndex())
	}
}

func TestQueue_NextEmpty(t *testing.T) {
	q := NewQueue()
	if q.Next() != nil || q.Previous() != nil {
		t.Error("Next/Previous on empty queue should return nil")
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
}

func TestQueue_AdvanceStopsAtEnd(t *testing.T) {
	q := queueOf("a", "b")

	if track := q.Advance(); track == nil || track.ID != "b" {
		t.Fatalf("Advance() = %v, want b", track)
	}
	if track := q.Advance(); track != nil {
		t.Errorf("Advance() at end = %v, want nil", track)
	}
	if q.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1 (retained)", q.CurrentIndex())
	}
}

func TestQueue_JumpTo(t *testing.T) {
	q := queueOf("a", "b", "c")

	if track := q.JumpTo(1); track == nil || track.ID != "b" {
		t.Errorf("JumpTo(1) = %v, want b", track)
	}
	if track := q.JumpTo(5); track != nil {
		t.Errorf("JumpTo(5) = %v, want nil", track)
	}
	if q.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1 (unchanged)", q.CurrentIndex())
	}
}

func TestQueue_Clear(t *testing.T) {
	q := queueOf("a", "b")
	q.Clear()

	if !q.IsEmpty() {
		t.Error("queue should be empty after Clear")
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
}

func TestQueue_ShuffleKeepsTracks(t *testing.T) {
	q := queueOf("a", "b", "c", "d", "e")
	q.JumpTo(3)

	track := q.Shuffle(rand.New(rand.NewPCG(1, 2)))
	if track == nil {
		t.Fatal("Shuffle() returned nil")
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}

	ids := IDs(q.Tracks())
	slices.Sort(ids)
	if !slices.Equal(ids, []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("shuffled ids = %v, want permutation of a..e", ids)
	}
	if track.ID != q.Tracks()[0].ID {
		t.Errorf("Shuffle() returned %s, want first entry %s", track.ID, q.Tracks()[0].ID)
	}
}

func TestQueue_ShuffleEmpty(t *testing.T) {
	q := NewQueue()
	if q.Shuffle(nil) != nil {
		t.Error("Shuffle on empty queue should return nil")
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
}

func TestQueue_TracksReturnsCopy(t *testing.T) {
	q := queueOf("a")
	tracks := q.Tracks()
	tracks[0].ID = "changed"

	if q.Current().ID != "a" {
		t.Error("Tracks() should return a copy")
	}
}
