package game

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"LeBron James", "lebron james"},
		{"  Shaquille   O'Neal  ", "shaquille oneal"},
		{"Stephen Curry #30", "stephen curry"},
		{"KAREEM\tABDUL-JABBAR", "kareem abduljabbar"},
		{"...", ""},
		{"42", ""},
		{"", ""},
		{"a  b\nc", "a b c"},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"LeBron James!", "  mixed   CASE 99 ", "shaq"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent on %q: %q -> %q", in, once, twice)
		}
	}
}
