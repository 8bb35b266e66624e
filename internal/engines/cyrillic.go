package engines

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/essentialkaos/translit/v2"
	"golang.org/x/text/unicode/norm"
)

// CyrillicName is the Cyrillic engine's name.
const CyrillicName = "cyrillic"

// commonCyrillic covers the letters shared by the national tables below.
var commonCyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e",
	'ё': "yo", 'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k",
	'л': "l", 'м': "m", 'н': "n", 'о': "o", 'п': "p", 'р': "r",
	'с': "s", 'т': "t", 'у': "u", 'ф': "f", 'х': "kh", 'ц': "ts",
	'ч': "ch", 'ш': "sh", 'щ': "shch", 'ъ': "\"", 'ы': "y", 'ь': "'",
	'э': "e", 'ю': "yu", 'я': "ya",
}

// Russian has published schemes in translit: ICAO Doc 9303, BGN/PCGN,
// GOST 7.79 system B and the scientific transliteration.
var russianSchemes = []Transliterator{
	composedInput(translit.EncodeToICAO),
	composedInput(translit.EncodeToBGN),
	composedInput(translit.EncodeToISO9B),
	composedInput(translit.EncodeToScientific),
}

// cyrillicTables holds the transliterators of each table id. National tables
// without a scheme in translit are the common table with their own letters
// overridden.
var cyrillicTables = map[string][]Transliterator{
	"russian": russianSchemes,
	"ukrainian": tableSchema(derive(commonCyrillic, map[rune]string{
		'г': "h", 'ґ': "g", 'е': "e", 'є': "ye", 'и': "y", 'і': "i",
		'ї': "yi", 'й': "y", 'щ': "shch", 'ь': "'",
	})),
	"belarusian": tableSchema(derive(commonCyrillic, map[rune]string{
		'г': "h", 'і': "i", 'ў': "w", 'ы': "y", 'э': "e", 'х': "kh",
	})),
	"bulgarian": tableSchema(derive(commonCyrillic, map[rune]string{
		'х': "h", 'щ': "sht", 'ъ': "a", 'ь': "y", 'ю': "yu", 'я': "ya",
	})),
	"serbian": tableSchema(derive(commonCyrillic, map[rune]string{
		'ђ': "đ", 'ж': "ž", 'ј': "j", 'љ': "lj", 'њ': "nj", 'ћ': "ć",
		'ц': "c", 'ч': "č", 'џ': "dž", 'ш': "š", 'х': "h",
	})),
	"macedonian": tableSchema(derive(commonCyrillic, map[rune]string{
		'ѓ': "gj", 'ѕ': "dz", 'ј': "j", 'љ': "lj", 'њ': "nj", 'ќ': "kj",
		'џ': "dž", 'ц': "c", 'х': "h",
	})),
}

// DefaultCyrillicTables maps language subtags to table ids.
var DefaultCyrillicTables = map[string]string{
	"ru": "russian",
	"uk": "ukrainian",
	"be": "belarusian",
	"bg": "bulgarian",
	"sr": "serbian",
	"mk": "macedonian",
}

// Letters retired by spelling reforms, left untouched by the tables.
var historicCyrillic = map[rune]string{
	'ѣ': "e", 'Ѣ': "E",
	'ѳ': "f", 'Ѳ': "F",
	'ѵ': "i", 'Ѵ': "I",
	'і': "i", 'І': "I",
	'ѕ': "z", 'Ѕ': "Z",
	'ѡ': "o", 'Ѡ': "O",
	'ѧ': "ya", 'Ѧ': "Ya",
	'ѫ': "u", 'Ѫ': "U",
	'ѩ': "ye", 'Ѩ': "Ye",
	'ѭ': "yu", 'Ѭ': "Yu",
	'ѯ': "ks", 'Ѯ': "Ks",
	'ѱ': "ps", 'Ѱ': "Ps",
	'ꙋ': "u", 'Ꙋ': "U",
}

func derive(base, overrides map[rune]string) map[rune]string {
	table := maps.Clone(base)
	maps.Copy(table, overrides)
	return table
}

// NewCyrillic builds the Cyrillic engine for the given language to table-id
// map. Every referenced table must exist.
func NewCyrillic(languageTables map[string]string) (Engine, error) {
	selected := make(map[string][]Transliterator, len(languageTables))
	langs := slices.Sorted(maps.Keys(languageTables))
	for _, lang := range langs {
		id := languageTables[lang]
		schemas, ok := cyrillicTables[id]
		if !ok {
			return Engine{}, fmt.Errorf("%w: %s -> %q", ErrUnknownTable, lang, id)
		}
		selected[lang] = schemas
	}
	return Engine{
		Name:       CyrillicName,
		Capability: ScriptPairs("Cyrl", langs...),
		Select: func(lang string) []Transliterator {
			return selected[lang]
		},
		Cleanup: cyrillicCleanup,
	}, nil
}

func composedInput(fn func(string) string) Transliterator {
	return func(text string) string {
		return fn(norm.NFC.String(text))
	}
}

func tableSchema(table map[rune]string) []Transliterator {
	return []Transliterator{cyrillicFunc(table)}
}

func cyrillicFunc(table map[rune]string) Transliterator {
	return func(text string) string {
		runes := []rune(norm.NFC.String(text))
		pieces := make([]piece, 0, len(runes))
		for _, r := range runes {
			lower := unicode.ToLower(r)
			if out, ok := table[lower]; ok {
				pieces = append(pieces, piece{text: out, upper: unicode.IsUpper(r), letter: true})
				continue
			}
			pieces = append(pieces, piece{text: string(r)})
		}
		return renderPieces(pieces)
	}
}

func cyrillicCleanup(s string) string {
	var b strings.Builder
	for _, r := range s {
		if repl, ok := historicCyrillic[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
