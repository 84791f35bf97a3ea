package intent

import "testing"

func TestTokenSetRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		min  int
		max  int
	}{
		{"identical", "chill vibes", "chill vibes", 100, 100},
		{"word order ignored", "vibes chill", "chill vibes", 100, 100},
		{"duplicate words ignored", "chill chill vibes", "chill vibes", 100, 100},
		{"minor misspelling", "chil vibs", "chill vibes", 78, 99},
		{"shared word subset", "workout", "workout mix", 60, 100},
		{"disjoint", "xyzzy", "chill vibes", 0, 50},
		{"both empty", "", "", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := TokenSetRatio(tt.a, tt.b)
			if got < tt.min || got > tt.max {
				t.Errorf("TokenSetRatio(%q, %q) = %d, want within [%d, %d]", tt.a, tt.b, got, tt.min, tt.max)
			}
		})
	}
}

func TestTokenSetRatio_IndelScale(t *testing.T) {
	t.Parallel()

	// Single-token pairs bypass the token-set reshuffling and exercise the
	// raw edit ratio. Replacing one letter costs a deletion plus an
	// insertion, so a four-letter word with one wrong letter scores 75 —
	// below the 78 cutoff. A substitution-cost-1 distance would report 88
	// and wrongly accept such pairs.
	tests := []struct {
		a, b string
		want int
	}{
		{"rock", "rack", 75},
		{"rock", "rocks", 89},
		{"rock", "rock", 100},
		{"ab", "cd", 0},
	}

	for _, tt := range tests {
		got := TokenSetRatio(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("TokenSetRatio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLCSLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"rock", "rack", 3},
		{"", "anything", 0},
		{"abc", "abc", 3},
		{"abcdef", "ace", 3},
		{"xyzzy", "chill vibes", 0},
	}

	for _, tt := range tests {
		if got := lcsLength(tt.a, tt.b); got != tt.want {
			t.Errorf("lcsLength(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestBestMatch(t *testing.T) {
	t.Parallel()

	labels := []string{"Chill Vibes", "Road Trip", "Deep Focus"}

	t.Run("exact label", func(t *testing.T) {
		t.Parallel()
		hit, ok := BestMatch("chill vibes", labels, DefaultCutoff)
		if !ok {
			t.Fatal("expected a match")
		}
		if hit.Label != "Chill Vibes" {
			t.Errorf("Label = %q, want original-cased %q", hit.Label, "Chill Vibes")
		}
		if hit.Score != 100 {
			t.Errorf("Score = %d, want 100", hit.Score)
		}
	})

	t.Run("misspelled query", func(t *testing.T) {
		t.Parallel()
		hit, ok := BestMatch("chil vibs", labels, DefaultCutoff)
		if !ok {
			t.Fatal("expected a fuzzy match above cutoff")
		}
		if hit.Label != "Chill Vibes" {
			t.Errorf("Label = %q, want %q", hit.Label, "Chill Vibes")
		}
	})

	t.Run("below cutoff", func(t *testing.T) {
		t.Parallel()
		if hit, ok := BestMatch("xyzzy", labels, DefaultCutoff); ok {
			t.Errorf("expected no match, got %+v", hit)
		}
	})

	t.Run("empty labels", func(t *testing.T) {
		t.Parallel()
		if _, ok := BestMatch("chill vibes", nil, DefaultCutoff); ok {
			t.Error("expected no match against empty label set")
		}
	})

	t.Run("tie-break keeps first label", func(t *testing.T) {
		t.Parallel()
		// Both labels normalize to the same form, so both score 100; the
		// first in the sequence must win.
		dup := []string{"Road Trip", "road trip!"}
		hit, ok := BestMatch("road trip", dup, DefaultCutoff)
		if !ok {
			t.Fatal("expected a match")
		}
		if hit.Label != "Road Trip" {
			t.Errorf("tie-break returned %q, want first label %q", hit.Label, "Road Trip")
		}
	})
}
