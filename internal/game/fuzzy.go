package game

import (
	"math"
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

// matchRule is one predicate in the cascade. Both inputs are already
// normalized. Rules must be pure and side-effect free.
type matchRule func(guess, candidate string) bool

// cascade is evaluated in order, short-circuiting on the first accepting
// rule. Cheap/strict checks run before expensive/loose ones so that short
// names stay collision-proof while long names tolerate typos and phonetic
// spelling. The thresholds are tuned for short personal names in a bounded
// answer set; changing any of them changes which guesses score, so they are
// load-bearing, not cosmetic.
var cascade = []matchRule{
	tokenSubsetMatch,
	substringMatch,
	phoneticMatch,
	soundexMatch,
	editDistanceMatch,
	prefixMatch,
}

// Matches reports whether a normalized guess identifies a normalized
// candidate name. Exact equality always matches; candidates shorter than
// four characters match nothing else (short names are ambiguous), and
// guesses shorter than two characters are rejected outright.
func Matches(guess, candidate string) bool {
	if guess == candidate {
		return guess != ""
	}
	if len(candidate) < 4 || len(guess) < 2 {
		return false
	}

	for _, rule := range cascade {
		if rule(guess, candidate) {
			return true
		}
	}
	return false
}

// tokenSubsetMatch accepts when every guess token identifies some candidate
// token. A token pair matches on equality, or on a prefix relation in either
// direction when the shorter side carries at least three characters. This is
// what lets a bare first name, last name, or abbreviation match a full
// multi-word name ("lebron" vs "lebron james").
func tokenSubsetMatch(guess, candidate string) bool {
	guessToks := tokens(guess)
	candToks := tokens(candidate)
	if len(guessToks) == 0 || len(candToks) == 0 {
		return false
	}

	for _, gt := range guessToks {
		matched := false
		for _, ct := range candToks {
			if tokensAlign(gt, ct) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func tokensAlign(guessTok, candTok string) bool {
	if guessTok == candTok {
		return true
	}
	if len(guessTok) >= 3 && strings.HasPrefix(candTok, guessTok) {
		return true
	}
	if len(candTok) >= 3 && strings.HasPrefix(guessTok, candTok) {
		return true
	}
	return false
}

// tokens splits a normalized string on spaces, dropping one-character
// fragments (initials and noise).
func tokens(s string) []string {
	fields := strings.Fields(s)
	out := fields[:0]
	for _, f := range fields {
		if len(f) >= 2 {
			out = append(out, f)
		}
	}
	return out
}

// substringMatch accepts substantial containment: the candidate starts with
// the guess, the guess starts with the whole candidate, or the guess appears
// inside the candidate at a word boundary.
func substringMatch(guess, candidate string) bool {
	if len(guess) < 3 {
		return false
	}
	if strings.HasPrefix(candidate, guess) {
		return true
	}
	if len(candidate) >= 3 && strings.HasPrefix(guess, candidate) {
		return true
	}

	boundary, err := regexp.Compile(`\b` + regexp.QuoteMeta(guess) + `\b`)
	if err != nil {
		return false
	}
	return boundary.MatchString(candidate)
}

// phoneticSubs is the fixed sound-alike substitution table. Each entry is
// applied on its own to generate one variant per side.
var phoneticSubs = [][2]string{
	{"ph", "f"},
	{"f", "ph"},
	{"c", "k"},
	{"k", "c"},
	{"s", "z"},
	{"z", "s"},
	{"ck", "k"},
	{"qu", "kw"},
	{"x", "ks"},
	{"ie", "y"},
	{"y", "ie"},
	{"tion", "shun"},
	{"sion", "shun"},
}

// phoneticMatch accepts when any single-substitution variant of the guess
// equals any single-substitution variant of the candidate ("stefen" vs
// "stephen", "kurry" vs "curry").
func phoneticMatch(guess, candidate string) bool {
	if len(guess) < 3 {
		return false
	}

	guessVariants := phoneticVariants(guess)
	for _, cv := range phoneticVariants(candidate) {
		for _, gv := range guessVariants {
			if gv == cv {
				return true
			}
		}
	}
	return false
}

func phoneticVariants(s string) []string {
	variants := []string{s}
	for _, sub := range phoneticSubs {
		if v := strings.ReplaceAll(s, sub[0], sub[1]); v != s {
			variants = append(variants, v)
		}
	}
	return variants
}

// soundexMatch compares 4-character Soundex codes. Gated to longer strings
// because short codes collide far too easily.
func soundexMatch(guess, candidate string) bool {
	if len(guess) < 4 || len(candidate) < 5 {
		return false
	}
	g := soundex(guess)
	return g != "" && g == soundex(candidate)
}

// soundexDigit maps a letter to its Soundex class, or 0 for vowels, h, w, y
// and anything else. Unlike textbook American Soundex, h and w act as
// separators here just like vowels.
func soundexDigit(r byte) byte {
	switch r {
	case 'b', 'f', 'p', 'v':
		return '1'
	case 'c', 'g', 'j', 'k', 'q', 's', 'x', 'z':
		return '2'
	case 'd', 't':
		return '3'
	case 'l':
		return '4'
	case 'm', 'n':
		return '5'
	case 'r':
		return '6'
	}
	return 0
}

// soundex computes the code: uppercased first letter plus up to three class
// digits, skipping adjacent duplicates, zero-padded to four characters.
func soundex(s string) string {
	if s == "" {
		return ""
	}

	code := make([]byte, 0, 4)
	code = append(code, s[0]&^0x20) // Uppercase ASCII letter.

	prev := soundexDigit(s[0])
	for i := 1; i < len(s) && len(code) < 4; i++ {
		d := soundexDigit(s[i])
		if d != 0 && d != prev {
			code = append(code, d)
		}
		prev = d
	}
	for len(code) < 4 {
		code = append(code, '0')
	}
	return string(code)
}

// editDistanceMatch accepts guesses within a Levenshtein budget of 20% of
// the candidate length (at least 1), for guesses of three or more characters.
func editDistanceMatch(guess, candidate string) bool {
	if len(guess) < 3 {
		return false
	}
	budget := int(math.Ceil(0.2 * float64(len(candidate))))
	if budget < 1 {
		budget = 1
	}
	return matchr.Levenshtein(guess, candidate) <= budget
}

// prefixMatch is the last resort: a five-character prefix of a long guess
// against a long candidate. Both gates keep this from firing on anything
// ambiguous.
func prefixMatch(guess, candidate string) bool {
	if len(candidate) < 8 || len(guess) < 5 {
		return false
	}
	n := len(candidate) / 2
	if n > 5 {
		n = 5
	}
	return strings.HasPrefix(candidate, guess[:n])
}
