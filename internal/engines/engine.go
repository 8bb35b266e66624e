package engines

import (
	"errors"
	"fmt"
	"strings"
)

// IdentityEngine marks results that are the input text itself, emitted for
// text already written in Latin script.
const IdentityEngine = "identity"

var (
	// ErrUnsupported reports that an engine does not handle a language/script pair.
	ErrUnsupported = errors.New("unsupported language/script pair")
	// ErrInconsistentOutput reports that an engine still produced non-Latin
	// text after cleanup.
	ErrInconsistentOutput = errors.New("engine output is not Latin script")
	// ErrUnknownTable reports a language mapped to a conversion table that does not exist.
	ErrUnknownTable = errors.New("unknown conversion table")
	// ErrInvalidEngine reports a malformed engine record.
	ErrInvalidEngine = errors.New("invalid engine")
)

// RomanString is one romanized candidate for a piece of text.
type RomanString struct {
	Original        string `json:"original"`
	OriginalLangTag string `json:"original_lang_tag"`
	Romanized       string `json:"romanized"`
	Engine          string `json:"engine"`
}

// Transliterator converts text to Latin script.
type Transliterator func(text string) string

// Capability declares which language/script pairs an engine accepts.
type Capability interface {
	Supports(lang, script string) bool
}

// Pair is a language subtag combined with a script subtag.
type Pair struct {
	Lang   string
	Script string
}

func (p Pair) String() string {
	return p.Lang + "-" + p.Script
}

// Pairs is a fixed support set.
type Pairs map[Pair]struct{}

// NewPairs builds a support set from the given pairs.
func NewPairs(pairs ...Pair) Pairs {
	set := make(Pairs, len(pairs))
	for _, p := range pairs {
		set[p] = struct{}{}
	}
	return set
}

// ScriptPairs pairs every language with one script.
func ScriptPairs(script string, langs ...string) Pairs {
	set := make(Pairs, len(langs))
	for _, lang := range langs {
		set[Pair{Lang: lang, Script: script}] = struct{}{}
	}
	return set
}

func (p Pairs) Supports(lang, script string) bool {
	_, ok := p[Pair{Lang: lang, Script: script}]
	return ok
}

// AnyPair accepts every pair, including the undetermined language.
type AnyPair struct{}

func (AnyPair) Supports(string, string) bool { return true }

// Engine is a registered transliteration backend.
type Engine struct {
	Name       string
	Capability Capability
	// Select returns the transliteration functions to run for lang, in
	// output order. Engines with several schemas return one per schema.
	Select  func(lang string) []Transliterator
	Cleanup func(string) string
}

func (e Engine) validate() error {
	switch {
	case strings.TrimSpace(e.Name) == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidEngine)
	case e.Name == IdentityEngine:
		return fmt.Errorf("%w: name %q is reserved", ErrInvalidEngine, IdentityEngine)
	case e.Capability == nil:
		return fmt.Errorf("%w: %s: capability is nil", ErrInvalidEngine, e.Name)
	case e.Select == nil:
		return fmt.Errorf("%w: %s: select is nil", ErrInvalidEngine, e.Name)
	}
	return nil
}

// single wraps one transliterator as a selector that ignores the language.
func single(fn Transliterator) func(string) []Transliterator {
	return func(string) []Transliterator { return []Transliterator{fn} }
}
