// Package export serializes extraction results to the supported output
// formats: JSON for the full result, CSV and XLSX for the flat table grids.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sgoncalves/quadrille/model"
)

// WriteJSON writes the full extraction result as indented JSON. HTML
// escaping is disabled so French text and the currency glyph stay readable.
func WriteJSON(w io.Writer, result *model.ExtractionResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}
