package ocr

// Config holds settings for the recognition client.
type Config struct {
	// Language is the Tesseract language string; multiple languages are
	// "+" separated (e.g. "fra+eng").
	Language string
}

// DefaultConfig returns the default recognition configuration. The document
// family is French, so "fra" is the default language.
func DefaultConfig() Config {
	return Config{Language: "fra"}
}
