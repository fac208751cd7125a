package scoring

import "testing"

func TestTokenSetRatio(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b string
		min  int
		max  int
	}{
		{a: "python", b: "python", min: 100, max: 100},
		{a: "python developer", b: "developer python", min: 100, max: 100},
		{a: "python", b: "python developer", min: 100, max: 100},
		{a: "aws certified solutions architect", b: "solutions architect", min: 100, max: 100},
		{a: "python python", b: "python", min: 100, max: 100},
		{a: "experience", b: "experienced", min: 91, max: 91},
		{a: "java", b: "lava", min: 75, max: 75},
		{a: "kubernetes", b: "docker", min: 0, max: 40},
		{a: "", b: "python", min: 0, max: 0},
		{a: "python", b: "", min: 0, max: 0},
	}

	for _, tc := range cases {
		got := TokenSetRatio(tc.a, tc.b)
		if got < tc.min || got > tc.max {
			t.Fatalf("TokenSetRatio(%q, %q) = %d, want [%d, %d]", tc.a, tc.b, got, tc.min, tc.max)
		}
		if rev := TokenSetRatio(tc.b, tc.a); rev != got {
			t.Fatalf("TokenSetRatio is not symmetric for %q/%q: %d vs %d", tc.a, tc.b, got, rev)
		}
	}
}

func TestRatio(t *testing.T) {
	t.Parallel()

	if got := ratio("", ""); got != 100 {
		t.Fatalf("expected empty strings to be identical, got %d", got)
	}
	if got := ratio("abc", ""); got != 0 {
		t.Fatalf("expected 0 against empty string, got %d", got)
	}
	if got := ratio("zürich", "zurich"); got != 83 {
		t.Fatalf("expected rune based ratio 83, got %d", got)
	}
}
