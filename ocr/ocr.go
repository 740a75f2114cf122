//go:build ocr

// Package ocr provides OCR (Optical Character Recognition) capabilities
// for extracting positioned word tokens from scanned page images.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-fra
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/sgoncalves/quadrille/model"
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	return &Client{client: client}, nil
}

// NewWithConfig creates a new OCR client and applies the configuration.
func NewWithConfig(cfg Config) (*Client, error) {
	c, err := New()
	if err != nil {
		return nil, err
	}
	if cfg.Language != "" {
		if err := c.SetLanguage(cfg.Language); err != nil {
			c.Close()
			return nil, fmt.Errorf("setting language %q: %w", cfg.Language, err)
		}
	}
	return c, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string
// (e.g., "fra+eng"). Scanned pricing documents are French; "fra" is the
// sensible choice.
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// RecognizeTokens performs OCR on page image data (PNG, TIFF, JPEG, etc.)
// and returns one token per recognized word, with the word's box edges in
// image pixel coordinates (origin top-left, Y growing downward).
func (c *Client) RecognizeTokens(imageData []byte) ([]model.Token, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	tokens := make([]model.Token, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		tokens = append(tokens, model.Token{
			Text:  text,
			Left:  float64(box.Box.Min.X),
			Right: float64(box.Box.Max.X),
			Top:   float64(box.Box.Min.Y),
		})
	}

	return tokens, nil
}

// HOCR performs OCR on page image data and returns the raw hOCR markup, so
// recognition output can be archived and re-read without rerunning the
// engine.
func (c *Client) HOCR(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	markup, err := c.client.HOCRText()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return markup, nil
}
