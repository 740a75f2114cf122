// Package hocr reads positioned word tokens out of hOCR documents, the
// HTML-based format OCR engines emit. Only the page and word layers are
// read; paragraph and line grouping is recomputed downstream from the word
// geometry.
package hocr

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/sgoncalves/quadrille/model"
)

// Open reads an hOCR file and returns one token slice per page.
func Open(filename string) ([][]model.Token, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return ReadPages(f)
}

// ReadPages parses hOCR from an io.Reader. Pages come back in document
// order; a page without recognized words is an empty slice, not a missing
// entry, so page indices stay aligned with the source document.
func ReadPages(r io.Reader) ([][]model.Token, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR: %w", err)
	}

	var pages [][]model.Token
	collectPages(doc, &pages)

	if len(pages) == 0 {
		return nil, fmt.Errorf("no ocr_page elements found")
	}
	return pages, nil
}

// collectPages walks the DOM for ocr_page elements and gathers each page's
// words.
func collectPages(n *html.Node, pages *[][]model.Token) {
	if n.Type == html.ElementNode && hasClass(n, "ocr_page") {
		tokens := []model.Token{}
		collectWords(n, &tokens)
		*pages = append(*pages, tokens)
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectPages(c, pages)
	}
}

// collectWords walks a page subtree for ocrx_word elements.
func collectWords(n *html.Node, tokens *[]model.Token) {
	if n.Type == html.ElementNode && hasClass(n, "ocrx_word") {
		if tok, ok := wordToken(n); ok {
			*tokens = append(*tokens, tok)
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectWords(c, tokens)
	}
}

// wordToken builds a token from an ocrx_word element. Words with empty text
// or a malformed bbox are skipped.
func wordToken(n *html.Node) (model.Token, bool) {
	text := strings.TrimSpace(textContent(n))
	if text == "" {
		return model.Token{}, false
	}

	left, top, right, ok := parseBBox(attr(n, "title"))
	if !ok {
		return model.Token{}, false
	}

	return model.Token{Text: text, Left: left, Right: right, Top: top}, true
}

// parseBBox reads the bbox property out of an hOCR title attribute, e.g.
// "bbox 349 31 384 59; x_wconf 94".
func parseBBox(title string) (left, top, right float64, ok bool) {
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(prop))
		if len(fields) != 5 || fields[0] != "bbox" {
			continue
		}

		vals := make([]float64, 4)
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return 0, 0, 0, false
			}
			vals[i] = v
		}
		return vals[0], vals[1], vals[2], true
	}
	return 0, 0, 0, false
}

// hasClass reports whether the element carries the class.
func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attr(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textContent extracts all text content from a node and its descendants.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
