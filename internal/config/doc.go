// Package config loads, normalizes, and validates romanize configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the ROMANIZE_REGISTRY_FILE
// environment override. The Config type centralizes the knobs the CLI and the
// romanization pipeline need: where the result store and registry cache live,
// how stale the cached registry may become, memoization capacities, and which
// transliteration engines take part in dispatch.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
