package engines

import (
	"strings"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/unicode/norm"
)

// UnidecodeName is the generic engine's name.
const UnidecodeName = "unidecode"

// Unidecode is the script-agnostic engine: a character-by-character ASCII
// approximation that needs no language knowledge.
func Unidecode() Engine {
	return Engine{
		Name:       UnidecodeName,
		Capability: AnyPair{},
		Select:     single(composed),
		Cleanup:    strings.TrimSpace,
	}
}

// The unidecode tables are keyed by composed code points.
func composed(text string) string {
	return unidecode.Unidecode(norm.NFC.String(text))
}
