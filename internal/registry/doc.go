// Package registry parses the IANA Language Subtag Registry into the lookup
// tables the script detector and language resolver need.
//
// Only language and script records contribute: scripts are indexed by their
// human-readable descriptions (the form Unicode character names use) and by
// subtag, and each language's Suppress-Script value is inverted into a
// script → languages table. Other record types are skipped.
//
// A malformed or self-contradictory document is a construction-time error;
// an Index is immutable once Parse returns.
package registry
