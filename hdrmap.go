// Package hdrmap builds a mapping from declaring header to the identifiers it
// declares by crawling a reference-documentation site's symbol index and its
// detail pages.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, sqlite/).
package hdrmap
