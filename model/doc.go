// Package model defines the core data types shared across the extraction
// pipeline: positioned tokens, bounding boxes, reconstructed rows and
// tables, and the recap summary record.
//
// All coordinates use a top-left origin with Y increasing downward, in
// page-local units, matching the coordinates reported by upstream text
// extraction.
package model
