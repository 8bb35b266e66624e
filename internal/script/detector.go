package script

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/runenames"

	"writingsystems/internal/logging"
)

// DefaultCacheSize bounds the number of memoized Detect results.
const DefaultCacheSize = 5000

// Latin is the script subtag of already-romanized text.
const Latin = "Latn"

// Lookup resolves Unicode script descriptions to subtags. *registry.Index
// satisfies it.
type Lookup interface {
	ScriptByDescription(description string) (string, bool)
}

// Option customises a Detector.
type Option func(*Detector)

// WithCacheSize overrides the memoization capacity.
func WithCacheSize(size int) Option {
	return func(d *Detector) {
		d.cacheSize = size
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) {
		d.logger = logger
	}
}

// Detector reports which registry scripts the letters of a text belong to.
// It is safe for concurrent use.
type Detector struct {
	lookup    Lookup
	logger    *slog.Logger
	cacheSize int
	cache     *lru.Cache[string, []string]
	group     singleflight.Group
}

// NewDetector builds a detector over a parsed registry index.
func NewDetector(lookup Lookup, opts ...Option) (*Detector, error) {
	if lookup == nil {
		return nil, fmt.Errorf("script detector: registry index is required")
	}
	d := &Detector{
		lookup:    lookup,
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.cacheSize <= 0 {
		return nil, fmt.Errorf("script detector: cache size must be greater than zero")
	}
	cache, err := lru.New[string, []string](d.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("script detector: init cache: %w", err)
	}
	d.cache = cache
	d.logger = logging.NewComponentLogger(d.logger, "script")
	return d, nil
}

// Detect returns the sorted, distinct script subtags of the letters in text.
// Digits, punctuation, marks and spaces do not participate, and letters whose
// script has no registry description are dropped.
func (d *Detector) Detect(text string) []string {
	if cached, ok := d.cache.Get(text); ok {
		return clone(cached)
	}
	v, _, _ := d.group.Do(text, func() (any, error) {
		if cached, ok := d.cache.Get(text); ok {
			return cached, nil
		}
		scripts := d.detect(text)
		d.cache.Add(text, scripts)
		return scripts, nil
	})
	scripts, _ := v.([]string)
	return clone(scripts)
}

// Only reports whether text is written entirely in the given script.
func (d *Detector) Only(text, subtag string) bool {
	scripts := d.Detect(text)
	return len(scripts) == 1 && scripts[0] == subtag
}

func (d *Detector) detect(text string) []string {
	caser := cases.Title(language.Und)
	seenRunes := make(map[rune]struct{})
	found := make(map[string]struct{})

	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		if _, ok := seenRunes[r]; ok {
			continue
		}
		seenRunes[r] = struct{}{}

		description := scriptWord(runenames.Name(r))
		if description == "" {
			continue
		}
		subtag, ok := d.lookup.ScriptByDescription(caser.String(description))
		if !ok {
			d.logger.Debug("letter script not in registry",
				logging.String("rune", string(r)),
				logging.String("description", description))
			continue
		}
		found[subtag] = struct{}{}
	}

	scripts := make([]string, 0, len(found))
	for subtag := range found {
		scripts = append(scripts, subtag)
	}
	sort.Strings(scripts)
	return scripts
}

func scriptWord(name string) string {
	// Ranged entries such as Hangul syllables come back as "<Hangul Syllable>".
	name = strings.Trim(strings.TrimSpace(name), "<>")
	word, _, _ := strings.Cut(name, " ")
	word = strings.TrimSuffix(word, ",")
	return word
}

func clone(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string{}, values...)
}
