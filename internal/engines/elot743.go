package engines

import "strings"

// ELOT743Name is the modern Greek engine's name.
const ELOT743Name = "elot743"

var elotLetters = map[rune]string{
	'α': "a", 'β': "v", 'γ': "g", 'δ': "d", 'ε': "e", 'ζ': "z",
	'η': "i", 'θ': "th", 'ι': "i", 'κ': "k", 'λ': "l", 'μ': "m",
	'ν': "n", 'ξ': "x", 'ο': "o", 'π': "p", 'ρ': "r", 'σ': "s",
	'ς': "s", 'τ': "t", 'υ': "y", 'φ': "f", 'χ': "ch", 'ψ': "ps",
	'ω': "o",
}

// Letters after which αυ, ευ and ηυ are voiced (v rather than f).
const elotVoiced = "αεηιουωβγδζλμνρ"

// ELOT743 transcribes modern monotonic Greek following ELOT 743.
func ELOT743() Engine {
	return Engine{
		Name:       ELOT743Name,
		Capability: NewPairs(Pair{Lang: "el", Script: "Grek"}),
		Select:     single(elot743),
		Cleanup:    greekCleanup(map[rune]string{'ϐ': "v", 'ϕ': "f", 'ϒ': "Y"}),
	}
}

func elot743(text string) string {
	return greekWords(text, elotWord)
}

func elotWord(word []glyph) []piece {
	pieces := make([]piece, 0, len(word))
	for i := 0; i < len(word); {
		g := word[i]
		var n, after rune
		if i+1 < len(word) {
			n = word[i+1].base
		}
		if i+2 < len(word) {
			after = word[i+2].base
		}
		diphthong := n == 'υ' && !word[i+1].has(markDiaeresis)

		out, width := elotLetters[g.base], 1
		switch {
		case diphthong && (g.base == 'α' || g.base == 'ε' || g.base == 'η'):
			if after != 0 && strings.ContainsRune(elotVoiced, after) {
				out, width = elotLetters[g.base]+"v", 2
			} else {
				out, width = elotLetters[g.base]+"f", 2
			}
		case diphthong && g.base == 'ο':
			out, width = "ou", 2
		case g.base == 'μ' && n == 'π':
			out, width = initialOr(i, "b", "mb"), 2
		case g.base == 'ν' && n == 'τ':
			out, width = initialOr(i, "d", "nt"), 2
		case g.base == 'γ' && n == 'κ':
			out, width = initialOr(i, "g", "nk"), 2
		case g.base == 'γ' && n == 'γ':
			out, width = "ng", 2
		case g.base == 'γ' && n == 'ξ':
			out, width = "nx", 2
		case g.base == 'γ' && n == 'χ':
			out, width = "nch", 2
		}
		pieces = append(pieces, piece{text: out, upper: g.upper, letter: true})
		i += width
	}
	return pieces
}

func initialOr(i int, initial, medial string) string {
	if i == 0 {
		return initial
	}
	return medial
}
