// Package layout reconstructs page layout from positioned tokens: it groups
// tokens into text lines, merges horizontally adjacent tokens into value
// groups, calibrates per-page column bands, assigns value groups to columns,
// and classifies rows by indentation.
//
// Every stage is deterministic and purely local to one page; calibrated
// column bands are explicit values recomputed per page, never cached across
// pages.
package layout
