// Package registrycache supplies the IANA Language Subtag Registry document.
//
// The document is read from a configured local file when one is set.
// Otherwise a copy is kept in the cache directory and refetched once it is
// older than registry.max_age_days. Fetches retry transient failures, and a
// failed refresh falls back to the stale copy with a warning. A lock file
// keeps concurrent processes from fetching and writing at the same time.
package registrycache
