package tagcollate

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// CollatedTextSet is an append-only ordered multiset that behaves as a
// set under a canonicalization relation: trim -> optional Windows-1251
// recovery -> Unicode case fold -> NFC normalize. Put is idempotent
// under that relation; Values preserves first-seen order.
type CollatedTextSet struct {
	values []string
	index  map[string]int
}

// NewCollatedTextSet returns an empty CollatedTextSet.
func NewCollatedTextSet() *CollatedTextSet {
	return &CollatedTextSet{index: make(map[string]int)}
}

var foldCaser = cases.Fold()

// Put trims ASCII space and NUL from both ends of value; a value made
// only of spaces and NULs is ignored. The trimmed form is then passed
// through the Windows-1251 recovery heuristic, case-folded and
// NFC-normalized; the normalized form is the canonical key used for
// deduplication. The first representative seen for a canonical key is
// the one retained for display — later puts that canonicalize to the
// same key do not overwrite it.
func (s *CollatedTextSet) Put(value string) error {
	trimmed := trimSpaceAndNUL(value)
	if trimmed == "" {
		return nil
	}

	representative := trimmed
	if isAllLatin1(trimmed) {
		latin1 := utf8ToLatin1Alloc(trimmed)
		if couldBeWindows1251(latin1) {
			recovered, err := windows1251ToUtf8Alloc(latin1)
			if err != nil {
				return wrapErr(EncodingFailure, err, "windows-1251 recovery failed")
			}
			representative = recovered
		}
	}

	folded := foldCaser.String(representative)
	canonical := norm.NFC.String(folded)

	if _, ok := s.index[canonical]; ok {
		return nil
	}
	s.index[canonical] = len(s.values)
	s.values = append(s.values, representative)
	return nil
}

// Values returns the deduplicated representatives in first-seen order.
func (s *CollatedTextSet) Values() []string {
	return s.values
}

// Count returns len(Values()).
func (s *CollatedTextSet) Count() int {
	return len(s.values)
}

// trimSpaceAndNUL trims ASCII space (0x20) and NUL (0x00) from both
// ends, matching the FLAC/ID3/APE convention of padding short fixed
// fields with NUL bytes.
func trimSpaceAndNUL(s string) string {
	isCut := func(r rune) bool { return r == ' ' || r == 0 }
	start := 0
	for start < len(s) && isCut(rune(s[start])) {
		start++
	}
	end := len(s)
	for end > start && isCut(rune(s[end-1])) {
		end--
	}
	return s[start:end]
}

// isAllLatin1 reports whether every code point in s is <= U+00FF.
func isAllLatin1(s string) bool {
	for _, r := range s {
		if r > 0x00FF {
			return false
		}
	}
	return true
}

// utf8ToLatin1Alloc reduces each <= U+00FF code point in s to a single
// byte, the inverse of decoding a byte slice as Latin-1.
func utf8ToLatin1Alloc(s string) []byte {
	runes := []rune(s)
	out := make([]byte, len(runes))
	for i, r := range runes {
		out[i] = byte(r)
	}
	return out
}

// windows1251ToUtf8Alloc decodes b as Windows-1251 and returns the
// resulting UTF-8 string.
func windows1251ToUtf8Alloc(b []byte) (string, error) {
	out, err := charmap.Windows1251.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// couldBeWindows1251 is the heuristic predicate from spec §6: it
// indicates that latin1Bytes, interpreted as Windows-1251, decodes to
// text more plausible than the Latin-1 reading already in hand. False
// positives are acceptable only for strings containing at least one
// byte in 0x80-0xFF assigned in Windows-1251; a string of plain ASCII
// never triggers recovery, since there is nothing to recover.
//
// The heuristic: Windows-1251 must decode the bytes without error (a
// handful of codepoints, e.g. 0x98, are unassigned), at least 40% of
// all bytes must be in the 0x80-0xFF range, and at least 60% of the
// bytes in the 0xC0-0xFF range -- where Windows-1251 places the
// Cyrillic alphabet -- must decode to Cyrillic letters.
func couldBeWindows1251(latin1Bytes []byte) bool {
	var highBytes int
	for _, b := range latin1Bytes {
		if b >= 0x80 {
			highBytes++
		}
	}
	// A single accented Latin-1 character (e.g. "café") must not trigger
	// recovery: genuine Windows-1251 mojibake is dominated by high bytes,
	// since Cyrillic text has no ASCII-range letters of its own.
	if highBytes == 0 || highBytes*5 < len(latin1Bytes)*2 {
		return false
	}

	decoded, err := charmap.Windows1251.NewDecoder().Bytes(latin1Bytes)
	if err != nil {
		return false
	}

	var cyrillicLetters, cyrillicEligible int
	decodedRunes := []rune(string(decoded))
	for i, b := range latin1Bytes {
		if b < 0xC0 {
			continue
		}
		cyrillicEligible++
		if i < len(decodedRunes) && unicode.Is(unicode.Cyrillic, decodedRunes[i]) {
			cyrillicLetters++
		}
	}
	if cyrillicEligible == 0 {
		return false
	}
	return cyrillicLetters*5 >= cyrillicEligible*3
}
