package search

import "testing"

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		max  int
		want int
	}{
		{"", "", 2, 0},
		{"curtin", "curtin", 2, 0},
		{"curtin", "curtain", 2, 1},
		{"harvard", "harvord", 2, 1},
		{"oxford", "oxfrod", 2, 2},
		{"abc", "", 3, 3},
		{"", "ab", 3, 2},
		{"kitten", "sitting", 3, 3},
		{"résumé", "resume", 3, 2},
	}

	for _, tc := range tests {
		if got := editDistance(tc.a, tc.b, tc.max); got != tc.want {
			t.Errorf("editDistance(%q, %q, %d) = %d, want %d", tc.a, tc.b, tc.max, got, tc.want)
		}
	}
}

// Once the distance provably exceeds max, the exact value is irrelevant and
// the function returns max+1.
func TestEditDistanceEarlyExit(t *testing.T) {
	got := editDistance("completely", "different", 1)
	if got != 2 {
		t.Errorf("expected max+1 = 2 on early exit, got %d", got)
	}

	got = editDistance("aaaaaaaaaa", "bbbbbbbbbb", 3)
	if got != 4 {
		t.Errorf("expected max+1 = 4 on early exit, got %d", got)
	}
}

func TestEditDistanceSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"monash", "monsah"},
		{"auckland", "aukland"},
		{"a", "abcd"},
	}
	for _, p := range pairs {
		d1 := editDistance(p[0], p[1], 5)
		d2 := editDistance(p[1], p[0], 5)
		if d1 != d2 {
			t.Errorf("distance not symmetric for %q/%q: %d vs %d", p[0], p[1], d1, d2)
		}
	}
}
