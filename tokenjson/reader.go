// Package tokenjson reads positioned word tokens from the JSON interchange
// format, the archival alternative to hOCR: an array of pages, each page an
// array of words with their box edges.
package tokenjson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/sgoncalves/quadrille/model"
)

// pagesSchema describes the interchange document. Validation runs before
// decoding so malformed input fails with a schema path instead of a partial
// decode.
const pagesSchema = `{
	"type": "object",
	"required": ["pages"],
	"properties": {
		"pages": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["tokens"],
				"properties": {
					"tokens": {
						"type": "array",
						"items": {
							"type": "object",
							"required": ["text", "left", "right", "top"],
							"properties": {
								"text": {"type": "string"},
								"left": {"type": "number"},
								"right": {"type": "number"},
								"top": {"type": "number"}
							}
						}
					}
				}
			}
		}
	}
}`

var schema = jsonschema.MustCompileString("pages.schema.json", pagesSchema)

type pagesDoc struct {
	Pages []struct {
		Tokens []model.Token `json:"tokens"`
	} `json:"pages"`
}

// Open reads a token interchange file and returns one token slice per page.
func Open(filename string) ([][]model.Token, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return ReadPages(f)
}

// ReadPages validates and decodes a token interchange document. Pages come
// back in document order; a page without tokens stays in place as an empty
// slice so indices remain aligned.
func ReadPages(r io.Reader) ([][]model.Token, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return nil, fmt.Errorf("invalid token document: %w", err)
	}

	var doc pagesDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding token document: %w", err)
	}

	pages := make([][]model.Token, len(doc.Pages))
	for i, p := range doc.Pages {
		pages[i] = p.Tokens
	}
	return pages, nil
}

// WritePages writes pages of tokens in the interchange format.
func WritePages(w io.Writer, pages [][]model.Token) error {
	doc := pagesDoc{}
	for _, tokens := range pages {
		doc.Pages = append(doc.Pages, struct {
			Tokens []model.Token `json:"tokens"`
		}{Tokens: tokens})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding token document: %w", err)
	}
	return nil
}
