package game

import "testing"

// All Matches inputs are pre-normalized, mirroring how Resolve calls it.

func TestMatchesExact(t *testing.T) {
	if !Matches("lebron james", "lebron james") {
		t.Error("exact match rejected")
	}
	if Matches("", "") {
		t.Error("empty strings must not match")
	}
}

func TestMatchesShortGuards(t *testing.T) {
	// Candidates shorter than four characters match only exactly.
	if !Matches("yao", "yao") {
		t.Error("exact short candidate rejected")
	}
	if Matches("ya", "yao") {
		t.Error("fuzzy match against short candidate accepted")
	}
	// Guesses shorter than two characters are rejected outright.
	if Matches("l", "lebron james") {
		t.Error("one-character guess accepted")
	}
}

func TestMatchesTokenSubset(t *testing.T) {
	cases := []struct {
		guess     string
		candidate string
		want      bool
	}{
		{"lebron", "lebron james", true},
		{"james", "lebron james", true},
		{"lebron j", "lebron james", true}, // One-char fragment dropped.
		{"shaq", "shaquille oneal", true},  // Prefix alignment, >= 3 chars.
		{"kobe james", "lebron james", false},
		{"le", "lebron james", false}, // Too short to align as a prefix.
	}

	for _, tc := range cases {
		if got := Matches(tc.guess, tc.candidate); got != tc.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tc.guess, tc.candidate, got, tc.want)
		}
	}
}

func TestMatchesSubstring(t *testing.T) {
	// Guess extending past the full candidate still counts.
	if !Matches("westbrook jr", "westbrook") {
		t.Error("guess with candidate as prefix rejected")
	}
	// Containment not on a word boundary does not count.
	if Matches("urry", "stephen curry") {
		t.Error("mid-word containment accepted")
	}
}

func TestMatchesPhonetic(t *testing.T) {
	cases := []struct {
		guess     string
		candidate string
		want      bool
	}{
		{"stefen curry", "stephen curry", true}, // f vs ph
		{"kurry", "curry", true},                // k vs c
		{"nowitski", "nowitzki", true},          // s vs z
		{"hzq", "harden", false},
	}

	for _, tc := range cases {
		if got := Matches(tc.guess, tc.candidate); got != tc.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tc.guess, tc.candidate, got, tc.want)
		}
	}
}

func TestMatchesEditDistance(t *testing.T) {
	// One typo against a six-character name is within the budget.
	if !Matches("hardin", "harden") {
		t.Error("single-typo guess rejected")
	}
	// Budget scales with candidate length: two edits on a long name pass.
	if !Matches("antetokonmpo", "antetokounmpo") {
		t.Error("long-name typo rejected")
	}
	// Far-off guesses stay rejected.
	if Matches("durant", "harden") {
		t.Error("unrelated name accepted")
	}
}

func TestSoundex(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"robert", "R163"},
		{"harden", "H635"},
		{"hardin", "H635"},
		{"lee", "L000"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := soundex(tc.in); got != tc.want {
			t.Errorf("soundex(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSoundexVowelsBreakRuns(t *testing.T) {
	// Same-class consonants separated by a vowel both emit a digit; the
	// vowel resets the previous code instead of merging the run.
	if got := soundex("tatum"); got != "T350" {
		t.Errorf("soundex(tatum) = %q, want T350", got)
	}
}
