// Package tables post-processes raw string-grid tables produced by an
// external lattice detector: it segments a detected block into logical
// sub-tables, cleans artifact rows, and fuses tables that continue across
// a page boundary.
//
// Every operation rebuilds Table values rather than mutating rows in place.
package tables
