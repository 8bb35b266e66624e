package engines

import "strings"

// GreekScholarlyName is the ancient Greek engine's name.
const GreekScholarlyName = "greek-scholarly"

var scholarlyLetters = map[rune]string{
	'α': "a", 'β': "b", 'γ': "g", 'δ': "d", 'ε': "e", 'ζ': "z",
	'θ': "th", 'ι': "i", 'κ': "k", 'λ': "l", 'μ': "m", 'ν': "n",
	'ξ': "x", 'ο': "o", 'π': "p", 'ρ': "r", 'σ': "s", 'ς': "s",
	'τ': "t", 'υ': "y", 'φ': "ph", 'χ': "ch", 'ψ': "ps",
}

// scholarlySchema differs only in how the long vowels are written.
type scholarlySchema struct {
	eta   string
	omega string
}

var (
	schemaALALC = scholarlySchema{eta: "ē", omega: "ō"}
	schemaASCII = scholarlySchema{eta: "e", omega: "o"}
)

// GreekScholarly romanizes polytonic ancient Greek the way classical
// scholarship does: rough breathing becomes h, initial rho rh, gamma before a
// velar n. It emits an ALA-LC candidate with macrons and a plain ASCII one.
func GreekScholarly() Engine {
	return Engine{
		Name:       GreekScholarlyName,
		Capability: NewPairs(Pair{Lang: "grc", Script: "Grek"}),
		Select: func(string) []Transliterator {
			return []Transliterator{
				scholarlySchemaFunc(schemaALALC),
				scholarlySchemaFunc(schemaASCII),
			}
		},
		Cleanup: greekCleanup(map[rune]string{'ϐ': "b", 'ϕ': "ph", 'ϒ': "Y"}),
	}
}

func scholarlySchemaFunc(schema scholarlySchema) Transliterator {
	return func(text string) string {
		return greekWords(text, schema.word)
	}
}

func (s scholarlySchema) word(word []glyph) []piece {
	rough := initialRough(word)
	pieces := make([]piece, 0, len(word))
	for i, g := range word {
		var out string
		switch g.base {
		case 'η':
			out = s.eta
		case 'ω':
			out = s.omega
		case 'γ':
			out = "g"
			if i+1 < len(word) && strings.ContainsRune("γκξχ", word[i+1].base) {
				out = "n"
			}
		case 'υ':
			out = "y"
			if i > 0 && strings.ContainsRune("αεηοω", word[i-1].base) && !g.has(markDiaeresis) {
				out = "u"
			}
		case 'ρ':
			out = "r"
			if i == 0 || g.has(markRough) {
				out = "rh"
			}
		default:
			out = scholarlyLetters[g.base]
		}
		if i == 0 && rough && g.base != 'ρ' {
			out = "h" + out
		}
		pieces = append(pieces, piece{text: out, upper: g.upper, letter: true})
	}
	return pieces
}

// initialRough reports a rough breathing on the word's leading vowels; in a
// diphthong it sits on the second vowel.
func initialRough(word []glyph) bool {
	for _, g := range word {
		if !isGreekVowel(g.base) {
			return false
		}
		if g.has(markRough) {
			return true
		}
	}
	return false
}
