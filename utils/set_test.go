package utils

import "testing"

func TestSetNoDuplicates(t *testing.T) {
	s := NewSet[string]()

	added := s.Add("The Hunger Games")
	if !added {
		t.Error("first Add should return true")
	}

	added = s.Add("The Hunger Games")
	if added {
		t.Error("second Add of same key should return false")
	}

	if s.Size() != 1 {
		t.Errorf("size: got %d, want 1", s.Size())
	}
}

func TestSetKeepsInsertionOrder(t *testing.T) {
	s := NewSet(2019, 2009, 2019, 2012)

	got := s.Keys()
	want := []int{2019, 2009, 2012}
	if len(got) != len(want) {
		t.Fatalf("keys len: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keys[%d]: got %d, want %d", i, got[i], want[i])
		}
	}
	if !s.Contains(2012) || s.Contains(2020) {
		t.Error("Contains mismatch")
	}
}
