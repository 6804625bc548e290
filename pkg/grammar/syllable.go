package grammar

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// Syllabify splits a proper name into syllables by maximal munch, left to
// right, without backtracking:
//
//   - consonant, any, 'n', non-vowel: three characters ("MONsi")
//   - other consonant starts: two characters ("POki")
//   - vowel with exactly two characters left: both
//   - vowel, 'n', non-vowel: two characters ("UNpa")
//   - lone vowel: one character
//
// Every chunk must be in the syllable table, otherwise the whole name fails
// with IllegalSyllable. A trailing consonant that cannot form a chunk also
// fails.
func (a *Analyzer) Syllabify(name string) ([]string, error) {
	chars := []rune(cases.Lower(language.Und).String(name))
	at := func(i int) rune {
		if i < len(chars) {
			return chars[i]
		}
		return ' '
	}

	var syllables []string
	for i := 0; i < len(chars); {
		first, second, third, fourth := at(i), at(i+1), at(i+2), at(i+3)

		var size int
		switch {
		case !isVowel(first) && third == 'n' && !isVowel(fourth):
			size = 3
		case !isVowel(first):
			size = 2
		case len(chars)-i == 2:
			size = 2
		case second == 'n' && !isVowel(third):
			size = 2
		default:
			size = 1
		}

		if i+size > len(chars) {
			return nil, IllegalSyllable(string(chars[i:]))
		}
		chunk := string(chars[i : i+size])
		if !a.vocab.Syllables.Has(chunk) {
			return nil, IllegalSyllable(chunk)
		}
		syllables = append(syllables, chunk)
		i += size
	}
	return syllables, nil
}
