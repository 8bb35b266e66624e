// Package engines holds the transliteration backends and the registry that
// dispatches to them.
//
// An Engine is a table record: a unique name, a capability declaring the
// (language, script) pairs it accepts, a selector returning one or more
// transliteration functions for a language, and an output cleanup. Engines
// only ever see the text; language and script are used solely to pick the
// engine and its tables. Registry.Invoke applies the adapter contract around
// an engine: capability check, transliteration, cleanup, verification that the
// result is Latin script, and wrapping into RomanString values.
//
// Default registers the built-in engines in dispatch order: the generic
// unidecode engine first, then the Greek, Cyrillic and Korean engines.
package engines
