package romanize

import (
	"fmt"
	"log/slog"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"writingsystems/internal/engines"
	"writingsystems/internal/langtag"
	"writingsystems/internal/logging"
)

// DefaultCacheSize bounds the number of memoized Romanize results.
const DefaultCacheSize = 5000

// Index is the part of the registry index used for language inference.
type Index interface {
	LanguagesForScript(subtag string) []string
}

// Detector reports the scripts present in a text.
type Detector interface {
	Detect(text string) []string
}

// Option customises a Romanizer.
type Option func(*Romanizer)

// WithCacheSize overrides the memoization capacity.
func WithCacheSize(size int) Option {
	return func(r *Romanizer) {
		r.cacheSize = size
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Romanizer) {
		r.logger = logger
	}
}

// WithTagService replaces the golang.org/x/text backed tag service.
func WithTagService(tags langtag.Service) Option {
	return func(r *Romanizer) {
		r.tags = tags
	}
}

// Romanizer produces romanized candidates for text. It is safe for
// concurrent use.
type Romanizer struct {
	index     Index
	detector  Detector
	registry  *engines.Registry
	tags      langtag.Service
	logger    *slog.Logger
	cacheSize int
	cache     *lru.Cache[string, []engines.RomanString]
	group     singleflight.Group
}

// New assembles a Romanizer from a parsed registry index, a script detector
// over the same index, and the engine registry to dispatch to.
func New(index Index, detector Detector, registry *engines.Registry, opts ...Option) (*Romanizer, error) {
	switch {
	case index == nil:
		return nil, fmt.Errorf("romanizer: registry index is required")
	case detector == nil:
		return nil, fmt.Errorf("romanizer: script detector is required")
	case registry == nil:
		return nil, fmt.Errorf("romanizer: engine registry is required")
	}
	r := &Romanizer{
		index:     index,
		detector:  detector,
		registry:  registry,
		tags:      langtag.New(),
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cacheSize <= 0 {
		return nil, fmt.Errorf("romanizer: cache size must be greater than zero")
	}
	cache, err := lru.New[string, []engines.RomanString](r.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("romanizer: init cache: %w", err)
	}
	r.cache = cache
	r.logger = logging.NewComponentLogger(r.logger, "romanizer")
	return r, nil
}

// Engines lists the registered engine names in dispatch order.
func (r *Romanizer) Engines() []string {
	return r.registry.Names()
}

// RomanizeDefault romanizes text whose language is undetermined.
func (r *Romanizer) RomanizeDefault(text string) ([]engines.RomanString, error) {
	return r.Romanize(text, langtag.Undetermined)
}

// Romanize returns every romanized candidate for text written in the language
// langTags names. Results are in engine registration order; an identity
// candidate follows when the text is already Latin. Successful results are
// memoized per (text, tag) pair and callers receive their own copy.
func (r *Romanizer) Romanize(text, langTags string) ([]engines.RomanString, error) {
	if !r.tags.IsValid(langTags) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTag, langTags)
	}

	key := langTags + "\x00" + text
	if cached, ok := r.cache.Get(key); ok {
		return slices.Clone(cached), nil
	}
	v, err, _ := r.group.Do(key, func() (any, error) {
		if cached, ok := r.cache.Get(key); ok {
			return cached, nil
		}
		results, err := r.romanize(text, langTags)
		if err != nil {
			return nil, err
		}
		r.cache.Add(key, results)
		return results, nil
	})
	if err != nil {
		return nil, err
	}
	results, _ := v.([]engines.RomanString)
	return slices.Clone(results), nil
}
