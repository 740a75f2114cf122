//go:build !ocr

package ocr

import (
	"errors"
	"testing"
)

func TestNewReturnsError(t *testing.T) {
	client, err := New()
	if err == nil {
		t.Error("Expected error from New() when OCR is disabled")
	}
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Expected ErrOCRNotEnabled, got: %v", err)
	}
	if client != nil {
		t.Error("Expected nil client when OCR is disabled")
	}
}

func TestNewWithConfigReturnsError(t *testing.T) {
	client, err := NewWithConfig(DefaultConfig())
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Expected ErrOCRNotEnabled, got: %v", err)
	}
	if client != nil {
		t.Error("Expected nil client when OCR is disabled")
	}
}

func TestDefaultConfigLanguage(t *testing.T) {
	if got := DefaultConfig().Language; got != "fra" {
		t.Errorf("Language = %q, want fra", got)
	}
}

func TestCloseOnNilClient(t *testing.T) {
	var client *Client
	if err := client.Close(); err != nil {
		t.Errorf("Close on nil client should not error: %v", err)
	}
}

func TestStubOperationsReturnError(t *testing.T) {
	client := &Client{}

	if _, err := client.RecognizeTokens(nil); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("RecognizeTokens error = %v, want ErrOCRNotEnabled", err)
	}
	if _, err := client.HOCR(nil); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("HOCR error = %v, want ErrOCRNotEnabled", err)
	}
	if err := client.SetLanguage("fra"); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetLanguage error = %v, want ErrOCRNotEnabled", err)
	}
}
