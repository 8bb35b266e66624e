package engines

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"writingsystems/internal/script"
)

// ScriptDetector reports the scripts present in a text.
type ScriptDetector interface {
	Detect(text string) []string
	Only(text, subtag string) bool
}

// Registry is the ordered set of engines used for dispatch. The generic
// engine is always first and is the only one consulted for text whose
// language is undetermined.
type Registry struct {
	detector ScriptDetector
	engines  []Engine
}

// NewRegistry validates the engine records and fixes the dispatch order.
func NewRegistry(detector ScriptDetector, generic Engine, others ...Engine) (*Registry, error) {
	if detector == nil {
		return nil, fmt.Errorf("engine registry: script detector is required")
	}
	all := append([]Engine{generic}, others...)
	seen := make(map[string]struct{}, len(all))
	for _, e := range all {
		if err := e.validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[e.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidEngine, e.Name)
		}
		seen[e.Name] = struct{}{}
	}
	return &Registry{detector: detector, engines: all}, nil
}

// Names lists engine names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.engines))
	for i, e := range r.engines {
		names[i] = e.Name
	}
	return names
}

// Engines returns the registered engines in registration order.
func (r *Registry) Engines() []Engine {
	return slices.Clone(r.engines)
}

// Generic returns the script-agnostic engine.
func (r *Registry) Generic() Engine {
	return r.engines[0]
}

// Filter returns a registry without the named engines. The generic engine is
// never removed.
func (r *Registry) Filter(disabled ...string) *Registry {
	kept := []Engine{r.engines[0]}
	for _, e := range r.engines[1:] {
		if !slices.Contains(disabled, e.Name) {
			kept = append(kept, e)
		}
	}
	return &Registry{detector: r.detector, engines: kept}
}

// Invoke runs one engine on text that was detected as script and attributed
// to lang. Results carry the tag lang-script. Identical candidates from the
// engine's schemas are collapsed.
func (r *Registry) Invoke(e Engine, text, lang, scriptTag string) ([]RomanString, error) {
	if !e.Capability.Supports(lang, scriptTag) {
		return nil, fmt.Errorf("%w: %s does not handle %s-%s", ErrUnsupported, e.Name, lang, scriptTag)
	}
	fns := e.Select(lang)
	if len(fns) == 0 {
		return nil, fmt.Errorf("%w: %s has no table for %s", ErrUnsupported, e.Name, lang)
	}

	tag := lang + "-" + scriptTag
	results := make([]RomanString, 0, len(fns))
	for _, fn := range fns {
		out := fn(text)
		if e.Cleanup != nil {
			out = e.Cleanup(out)
		}
		if err := r.verifyLatin(text, out); err != nil {
			return nil, fmt.Errorf("%s: %q -> %q: %w", e.Name, text, out, err)
		}
		if slices.ContainsFunc(results, func(rs RomanString) bool { return rs.Romanized == out }) {
			continue
		}
		results = append(results, RomanString{
			Original:        text,
			OriginalLangTag: tag,
			Romanized:       out,
			Engine:          e.Name,
		})
	}
	return results, nil
}

// verifyLatin accepts output written only in Latin script. Letterless output
// passes only when the input had no letters either.
func (r *Registry) verifyLatin(text, out string) error {
	if r.detector.Only(out, script.Latin) {
		return nil
	}
	if scripts := r.detector.Detect(out); len(scripts) > 0 {
		return fmt.Errorf("%w: detected %v", ErrInconsistentOutput, scripts)
	}
	switch {
	case hasLetter(out):
		return fmt.Errorf("%w: letters of unknown script", ErrInconsistentOutput)
	case hasLetter(text):
		return fmt.Errorf("%w: letters were dropped", ErrInconsistentOutput)
	}
	return nil
}

func hasLetter(s string) bool {
	return strings.ContainsFunc(s, unicode.IsLetter)
}

// Default builds the built-in engine registry.
func Default(detector ScriptDetector) (*Registry, error) {
	cyrillic, err := NewCyrillic(DefaultCyrillicTables)
	if err != nil {
		return nil, err
	}
	return NewRegistry(detector,
		Unidecode(),
		GreekScholarly(),
		ELOT743(),
		cyrillic,
		RevisedRomanization(),
	)
}
