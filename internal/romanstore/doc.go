// Package romanstore persists romanizations in SQLite so indexed text can be
// searched by its Latin rendering.
//
// Rows are unique on (original, original_lang_tag, engine, romanized); saving
// the same result again refreshes its batch and timestamps instead of adding a
// duplicate. Every row carries a search key derived from the romanized text
// with gosimple/slug, and Search matches on that key's prefix.
//
// Schema changes bump schemaVersion in schema.go. Existing databases with a
// different version are rejected; users clear or delete the file to adopt the
// new schema.
package romanstore
