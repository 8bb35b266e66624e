package romanize

import (
	"errors"
	"fmt"
	"log/slog"

	"writingsystems/internal/engines"
	"writingsystems/internal/langtag"
	"writingsystems/internal/logging"
	"writingsystems/internal/script"
)

// Languages whose script the tag service cannot infer with confidence.
var expectedScriptOverrides = map[string]string{
	"grc": "Grek",
}

func (r *Romanizer) romanize(text, tag string) ([]engines.RomanString, error) {
	logger := r.logger.With(logging.String(logging.FieldLangTag, tag))

	canonical, err := r.tags.Standardize(tag)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTag, err)
	}
	if canonical != tag {
		logging.WarnWithContext(logger, "language tag canonicalized", "lang_tag_canonicalized",
			logging.String("canonical", canonical),
			logging.String(logging.FieldErrorHint, "pass the canonical tag"),
			logging.String(logging.FieldImpact, "results are tagged with the canonical form"),
		)
	}

	scripts := r.detector.Detect(text)
	if len(scripts) != 1 {
		logging.WarnWithContext(logger, "text is not written in exactly one script", "script_ambiguous",
			logging.Strings("scripts", scripts),
			logging.String(logging.FieldErrorHint, "split mixed-script text before romanizing"),
			logging.String(logging.FieldImpact, "no romanization returned"),
		)
		return []engines.RomanString{}, nil
	}
	detected := scripts[0]
	logger = logger.With(logging.String(logging.FieldScript, detected))

	resolution, err := r.tags.Resolve(canonical)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTag, err)
	}
	if expected := expectedScript(resolution); expected != "" && !langtag.ScriptCompatible(expected, detected) {
		logging.WarnWithContext(logger, "text script does not match language tag", "script_mismatch",
			logging.String("expected_script", expected),
			logging.String(logging.FieldErrorHint, "check the language tag supplied for this text"),
			logging.String(logging.FieldImpact, "no romanization returned"),
		)
		return []engines.RomanString{}, nil
	}

	undetermined := resolution.Language == langtag.Undetermined
	working := resolution.Language
	if undetermined {
		working = r.inferLanguage(detected, logger)
	}

	results, err := r.dispatch(text, working, detected, logger)
	if err != nil {
		return nil, err
	}
	if undetermined {
		for i := range results {
			results[i].OriginalLangTag = langtag.Undetermined + "-" + detected
		}
	}
	if detected == script.Latin {
		lang := working
		if undetermined {
			lang = langtag.Undetermined
		}
		results = append(results, engines.RomanString{
			Original:        text,
			OriginalLangTag: lang + "-" + detected,
			Romanized:       text,
			Engine:          engines.IdentityEngine,
		})
	}
	return results, nil
}

func expectedScript(res langtag.Resolution) string {
	if res.Script != "" {
		return res.Script
	}
	return expectedScriptOverrides[res.Language]
}

// inferLanguage adopts the one language whose registry entry suppresses the
// detected script. Anything else leaves the language undetermined.
func (r *Romanizer) inferLanguage(detected string, logger *slog.Logger) string {
	candidates := r.index.LanguagesForScript(detected)
	if len(candidates) != 1 {
		logger.Debug("language left undetermined", logging.Int("candidates", len(candidates)))
		return langtag.Undetermined
	}
	logger.Debug("language inferred from script", logging.String("language", candidates[0]))
	return candidates[0]
}

// dispatch runs the generic engine alone for undetermined languages and every
// engine otherwise, skipping engines that do not handle the pair.
func (r *Romanizer) dispatch(text, lang, detected string, logger *slog.Logger) ([]engines.RomanString, error) {
	results := []engines.RomanString{}
	if lang == langtag.Undetermined {
		out, err := r.registry.Invoke(r.registry.Generic(), text, lang, detected)
		if err != nil {
			return nil, err
		}
		return append(results, out...), nil
	}

	for _, engine := range r.registry.Engines() {
		out, err := r.registry.Invoke(engine, text, lang, detected)
		if errors.Is(err, engines.ErrUnsupported) {
			logger.Debug("engine skipped", logging.String(logging.FieldEngine, engine.Name), logging.Error(err))
			continue
		}
		if err != nil {
			return nil, err
		}
		results = append(results, out...)
	}
	return results, nil
}
