package sema

import "testing"

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"ages", "age", 1},
		{"kitten", "sitting", 3},
		{"Dogy", "Doggy", 1},
	}
	for _, tc := range cases {
		if got := levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestClosestName(t *testing.T) {
	got, ok := closestName("countr", []string{"counter", "total", "flag"})
	if !ok || got != "counter" {
		t.Errorf("closestName = %q, %v", got, ok)
	}

	// слишком далёкие кандидаты отбрасываются
	if _, ok := closestName("x", []string{"completely", "different"}); ok {
		t.Error("distant candidates must not be suggested")
	}

	// точное совпадение не подсказывается
	if _, ok := closestName("total", []string{"total"}); ok {
		t.Error("the name itself is not a suggestion")
	}
}
