// Package pokedex provides an offline-first catalog synchronization engine
// for the PokeAPI Pokemon listing. It pages through the remote catalog,
// mirrors every fetched page into a local cache, and resolves free-text or
// numeric-id searches by merging instant local matches with authoritative
// remote lookups.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, http/).
package pokedex
