package engines

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// RevisedRomanizationName is the Korean engine's name.
const RevisedRomanizationName = "revised-romanization"

const (
	hangulBase = 0xAC00
	hangulEnd  = 0xD7A3
	jongN      = 28
	jungN      = 21
)

var (
	choseong = []string{
		"g", "kk", "n", "d", "tt", "r", "m", "b", "pp",
		"s", "ss", "", "j", "jj", "ch", "k", "t", "p", "h",
	}
	jungseong = []string{
		"a", "ae", "ya", "yae", "eo", "e", "yeo", "ye", "o",
		"wa", "wae", "oe", "yo", "u", "wo", "we", "wi", "yu",
		"eu", "ui", "i",
	}
	// Final consonants as pronounced at the end of a syllable.
	jongseong = []string{
		"", "k", "k", "k", "n", "n", "n", "t", "l", "k",
		"m", "l", "l", "l", "p", "l", "m", "p", "p",
		"t", "t", "ng", "t", "t", "k", "t", "p", "t",
	}
)

// Compatibility jamo (U+3131..U+3163) written on their own.
var compatibilityJamo = map[rune]string{
	'ㄱ': "g", 'ㄲ': "kk", 'ㄳ': "gs", 'ㄴ': "n", 'ㄵ': "nj", 'ㄶ': "nh",
	'ㄷ': "d", 'ㄸ': "tt", 'ㄹ': "r", 'ㄺ': "lg", 'ㄻ': "lm", 'ㄼ': "lb",
	'ㄽ': "ls", 'ㄾ': "lt", 'ㄿ': "lp", 'ㅀ': "lh", 'ㅁ': "m", 'ㅂ': "b",
	'ㅃ': "pp", 'ㅄ': "bs", 'ㅅ': "s", 'ㅆ': "ss", 'ㅇ': "ng", 'ㅈ': "j",
	'ㅉ': "jj", 'ㅊ': "ch", 'ㅋ': "k", 'ㅌ': "t", 'ㅍ': "p", 'ㅎ': "h",
	'ㅏ': "a", 'ㅐ': "ae", 'ㅑ': "ya", 'ㅒ': "yae", 'ㅓ': "eo", 'ㅔ': "e",
	'ㅕ': "yeo", 'ㅖ': "ye", 'ㅗ': "o", 'ㅘ': "wa", 'ㅙ': "wae", 'ㅚ': "oe",
	'ㅛ': "yo", 'ㅜ': "u", 'ㅝ': "wo", 'ㅞ': "we", 'ㅟ': "wi", 'ㅠ': "yu",
	'ㅡ': "eu", 'ㅢ': "ui", 'ㅣ': "i",
}

// RevisedRomanization converts Hangul syllables following the Revised
// Romanization of Korean. Syllables are converted one at a time; sound
// changes across syllable boundaries are not applied.
func RevisedRomanization() Engine {
	return Engine{
		Name: RevisedRomanizationName,
		Capability: NewPairs(
			Pair{Lang: "ko", Script: "Hang"},
			Pair{Lang: "ko", Script: "Kore"},
		),
		Select:  single(romanizeHangul),
		Cleanup: hangulCleanup,
	}
}

// Conjoining jamo are composed into syllables first.
func romanizeHangul(text string) string {
	var b strings.Builder
	for _, r := range norm.NFC.String(text) {
		if r < hangulBase || r > hangulEnd {
			b.WriteRune(r)
			continue
		}
		code := int(r) - hangulBase
		jong := code % jongN
		jung := (code / jongN) % jungN
		cho := code / (jongN * jungN)
		b.WriteString(choseong[cho])
		b.WriteString(jungseong[jung])
		b.WriteString(jongseong[jong])
	}
	return b.String()
}

func hangulCleanup(s string) string {
	var b strings.Builder
	for _, r := range s {
		if repl, ok := compatibilityJamo[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
