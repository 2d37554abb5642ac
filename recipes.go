// Package recipes provides a catalog-driven content-extraction engine.
// A Recipe declares how to pull a typed set of fields out of one class
// of URL; a Registry dispatches URLs to the first Recipe claiming them,
// falling back to a catalog-wide generic Recipe.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their concern or primary dependency (e.g., extract/, http/, rod/).
// The engine is pure: it never fetches, renders, or persists anything;
// those concerns belong to the Fetcher collaborators.
package recipes
