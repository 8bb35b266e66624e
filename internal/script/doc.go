// Package script detects which writing systems a text is written in.
//
// Detection is driven by Unicode character names: the first word of a
// letter's name ("GREEK" in "GREEK SMALL LETTER ALPHA") is title-cased and
// resolved against the registry's script descriptions. Results are memoized
// per text in a bounded LRU cache.
package script
