package engines

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Combining marks that carry meaning for romanization.
const (
	markRough     = '\u0314'
	markDiaeresis = '\u0308'
)

// glyph is a base rune with the combining marks that follow it in NFD.
type glyph struct {
	base  rune
	upper bool
	marks []rune
}

func (g glyph) has(mark rune) bool {
	for _, m := range g.marks {
		if m == mark {
			return true
		}
	}
	return false
}

func (g glyph) original() string {
	var b strings.Builder
	if g.upper {
		b.WriteRune(unicode.ToUpper(g.base))
	} else {
		b.WriteRune(g.base)
	}
	for _, m := range g.marks {
		b.WriteRune(m)
	}
	return b.String()
}

func decompose(text string) []glyph {
	var glyphs []glyph
	for _, r := range norm.NFD.String(text) {
		if unicode.Is(unicode.Mn, r) && len(glyphs) > 0 {
			last := &glyphs[len(glyphs)-1]
			last.marks = append(last.marks, r)
			continue
		}
		glyphs = append(glyphs, glyph{base: unicode.ToLower(r), upper: unicode.IsUpper(r)})
	}
	return glyphs
}

func isGreekLetter(r rune) bool {
	return (r >= 'α' && r <= 'ω') || r == 'ς'
}

func isGreekVowel(r rune) bool {
	return strings.ContainsRune("αεηιουω", r)
}

// piece is one transliterated unit. Letter pieces carry the case of their
// source glyph so that capitals can be rendered as "Th" or "TH" depending on
// their neighbours.
type piece struct {
	text   string
	upper  bool
	letter bool
}

func renderPieces(pieces []piece) string {
	var b strings.Builder
	for i, p := range pieces {
		if !p.letter || !p.upper {
			b.WriteString(p.text)
			continue
		}
		if wordIsUpper(pieces, i) {
			b.WriteString(strings.ToUpper(p.text))
		} else {
			b.WriteString(capitalize(p.text))
		}
	}
	return norm.NFC.String(b.String())
}

// wordIsUpper looks at the next letter in the same word, or the previous one
// when the piece ends the word.
func wordIsUpper(pieces []piece, i int) bool {
	if i+1 < len(pieces) && pieces[i+1].letter {
		return pieces[i+1].upper
	}
	if i > 0 && pieces[i-1].letter {
		return pieces[i-1].upper
	}
	return false
}

func capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}

// greekWords walks the glyphs, handing each run of Greek letters to word and
// passing every other glyph through unchanged.
func greekWords(text string, word func([]glyph) []piece) string {
	glyphs := decompose(greekPunctuation.Replace(text))
	var pieces []piece
	for i := 0; i < len(glyphs); {
		if !isGreekLetter(glyphs[i].base) {
			pieces = append(pieces, piece{text: glyphs[i].original()})
			i++
			continue
		}
		j := i
		for j < len(glyphs) && isGreekLetter(glyphs[j].base) {
			j++
		}
		pieces = append(pieces, word(glyphs[i:j])...)
		i = j
	}
	return renderPieces(pieces)
}

// NFD folds the Greek question mark and ano teleia into ';' and '·', so they
// are rewritten first.
var greekPunctuation = strings.NewReplacer("\u037e", "?", "\u0387", ";")

var greekVariantsCommon = map[rune]string{
	'ϑ': "th", 'ϴ': "Th",
	'ϖ': "p",
	'ϰ': "k",
	'ϱ': "r",
	'ϲ': "s", 'Ϲ': "S",
	'ϵ': "e",
	'ϝ': "w", 'Ϝ': "W",
	'ϙ': "q", 'Ϙ': "Q", 'ϟ': "q", 'Ϟ': "Q",
	'ϛ': "st", 'Ϛ': "St",
	'ϡ': "ss", 'Ϡ': "Ss",
	'ϳ': "j", 'Ϳ': "J",
	'ͱ': "h", 'Ͱ': "H",
	'ͻ': "s", 'ͼ': "s", 'ͽ': "s",
}

// greekCleanup replaces variant and archaic glyphs the transliterators leave
// untouched.
func greekCleanup(overrides map[rune]string) func(string) string {
	table := make(map[rune]string, len(greekVariantsCommon)+len(overrides))
	for r, s := range greekVariantsCommon {
		table[r] = s
	}
	for r, s := range overrides {
		table[r] = s
	}
	return func(s string) string {
		var b strings.Builder
		for _, r := range norm.NFC.String(s) {
			if repl, ok := table[r]; ok {
				b.WriteString(repl)
				continue
			}
			b.WriteRune(r)
		}
		return strings.TrimSpace(norm.NFC.String(b.String()))
	}
}
