package bag

import "testing"

func TestBagCountsVotes(t *testing.T) {
	b := New[[32]byte]()
	var h1, h2 [32]byte
	h1[0] = 1
	h2[0] = 2

	b.Add(h1)
	b.Add(h1)
	b.Add(h2)

	if got := b.Count(h1); got != 2 {
		t.Fatalf("Count(h1) = %d, want 2", got)
	}
	if got := b.Count(h2); got != 1 {
		t.Fatalf("Count(h2) = %d, want 1", got)
	}
	if b.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", b.Len())
	}
}

func TestBagMode(t *testing.T) {
	b := Of(1, 1, 1, 2, 2, 3)
	mode, count := b.Mode()
	if mode != 1 || count != 3 {
		t.Fatalf("Mode() = (%d, %d), want (1, 3)", mode, count)
	}
}
