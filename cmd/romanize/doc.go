// Package main hosts the romanize CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, assembles the
// romanization pipeline from the cached language subtag registry, and exposes
// it for single strings (text), bulk indexing into the result store (index),
// lookups against that store (search), and registry maintenance.
//
// Keep this package lean: new behaviour belongs in the internal packages and
// is surfaced here through dedicated commands or flags.
package main
