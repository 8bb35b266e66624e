// Package langtag validates and canonicalizes BCP-47 language tags and
// reports the script a tag implies.
package langtag

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Undetermined is the tag for text whose language is unknown.
const Undetermined = "und"

// ErrInvalid marks tags that are empty or not well-formed.
var ErrInvalid = errors.New("invalid language tag")

// Resolution describes the parts of a tag needed for dispatch.
// Script is empty when the tag implies no script with confidence.
type Resolution struct {
	Language string
	Script   string
}

// Service is the tag service consumed by the romanization pipeline.
type Service interface {
	IsValid(tag string) bool
	Standardize(tag string) (string, error)
	Resolve(tag string) (Resolution, error)
}

// Tags implements Service on golang.org/x/text/language.
type Tags struct{}

// New returns the default tag service.
func New() Tags {
	return Tags{}
}

func parse(tag string) (language.Tag, error) {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return language.Und, fmt.Errorf("%w: empty", ErrInvalid)
	}
	// language.Parse also splits on '_', which BCP 47 does not allow.
	if strings.ContainsRune(trimmed, '_') {
		return language.Und, fmt.Errorf("%w: %q: subtags are separated by '-'", ErrInvalid, tag)
	}
	parsed, err := language.Parse(trimmed)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q: %v", ErrInvalid, tag, err)
	}
	return parsed, nil
}

// IsValid reports whether tag is a well-formed language tag.
func (Tags) IsValid(tag string) bool {
	_, err := parse(tag)
	return err == nil
}

// Standardize returns the canonical form of tag, replacing deprecated and
// legacy subtags with their preferred values (iw becomes he).
func (Tags) Standardize(tag string) (string, error) {
	parsed, err := parse(tag)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// Resolve splits tag into its language and expected script. An explicit
// script subtag wins; otherwise the likely script is used only when the
// registry would suppress it for the language, so "und" alone has none.
func (Tags) Resolve(tag string) (Resolution, error) {
	parsed, err := parse(tag)
	if err != nil {
		return Resolution{}, err
	}
	base, _ := parsed.Base()
	res := Resolution{Language: base.String()}
	script, confidence := parsed.Script()
	if confidence >= language.High {
		res.Script = script.String()
	}
	return res, nil
}

var umbrellaScripts = map[string][]string{
	"Kore": {"Hang", "Hani"},
	"Jpan": {"Hira", "Kana", "Hani"},
	"Hans": {"Hani"},
	"Hant": {"Hani"},
	"Hanb": {"Hani", "Bopo"},
}

// ScriptCompatible reports whether text written in detected satisfies a tag
// whose expected script is expected. Combination scripts such as Kore accept
// each of their member scripts.
func ScriptCompatible(expected, detected string) bool {
	if expected == detected {
		return true
	}
	for _, member := range umbrellaScripts[expected] {
		if member == detected {
			return true
		}
	}
	return false
}
