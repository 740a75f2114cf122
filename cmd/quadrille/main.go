// Command quadrille reconstructs structured tables from the positioned
// word tokens of scanned French construction pricing documents and exports
// them as JSON, CSV, or XLSX.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sgoncalves/quadrille"
	"github.com/sgoncalves/quadrille/config"
	"github.com/sgoncalves/quadrille/export"
	"github.com/sgoncalves/quadrille/hocr"
	"github.com/sgoncalves/quadrille/model"
	"github.com/sgoncalves/quadrille/ocr"
	"github.com/sgoncalves/quadrille/tokenjson"
)

// version is set at build time using ldflags.
var version = "dev"

var (
	cfgFile string
	verbose bool
	jsonOut string
	csvDir  string
	xlsxOut string
	mdOut   string
)

func main() {
	root := &cobra.Command{
		Use:   "quadrille",
		Short: "Reconstruct tables from scanned pricing documents",
		Long: `Quadrille reconstructs the priced-works table and the trailing recap
record of "sous-détail de prix" pages from positioned OCR word tokens,
then cleans, segments, and merges the resulting grids across pages.

Input is an hOCR file (.hocr, .html), a token interchange JSON file,
or a scanned page image (.png, .jpg, .tif; requires a binary built
with -tags ocr); output goes to JSON, per-table CSV files, an XLSX
workbook, or markdown.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML configuration file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	extract := &cobra.Command{
		Use:   "extract <input>",
		Short: "Extract tables from an hOCR or token JSON file",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtract,
	}
	extract.Flags().StringVar(&jsonOut, "json", "", "write the full result as JSON to this file (\"-\" for stdout)")
	extract.Flags().StringVar(&csvDir, "csv-dir", "", "write one CSV per table into this directory")
	extract.Flags().StringVar(&xlsxOut, "xlsx", "", "write all tables as an XLSX workbook to this file")
	extract.Flags().StringVar(&mdOut, "md", "", "write all tables as markdown to this file")

	root.AddCommand(extract)
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Display the application version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("quadrille %s (%s)\n", version, runtime.Version())
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	input := args[0]

	cfg := config.Default()
	if cfgFile != "" {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		logger.Debug("configuration loaded", "path", cfgFile)
	}

	pages, err := readPages(input, cfg)
	if err != nil {
		return err
	}
	logger.Info("input read", "source", input, "pages", len(pages))

	result := quadrille.NewWithConfig(cfg).ExtractTokenPages(input, pages)
	for _, w := range result.Warnings {
		logger.Warn("page skipped", "page", w.PageIndex+1, "reason", w.Message)
	}
	logger.Info("extraction complete", "run_id", result.RunID, "tables", len(result.Tables))

	if jsonOut == "" && csvDir == "" && xlsxOut == "" && mdOut == "" {
		jsonOut = "-"
	}

	if jsonOut != "" {
		if err := writeJSON(jsonOut, result); err != nil {
			return err
		}
	}
	if csvDir != "" {
		if err := export.SaveAllCSV(csvDir, result.Tables); err != nil {
			return err
		}
		logger.Info("CSV written", "dir", csvDir)
	}
	if xlsxOut != "" {
		if err := export.SaveXLSX(xlsxOut, result.Tables); err != nil {
			return err
		}
		logger.Info("workbook written", "path", xlsxOut)
	}
	if mdOut != "" {
		if err := export.SaveMarkdown(mdOut, result.Tables); err != nil {
			return err
		}
		logger.Info("markdown written", "path", mdOut)
	}

	return nil
}

// readPages picks the input decoder from the file extension: hOCR for
// .hocr/.html/.htm, recognition for page images, the token interchange
// format otherwise.
func readPages(path string, cfg config.Config) ([][]model.Token, error) {
	switch {
	case strings.HasSuffix(path, ".hocr"),
		strings.HasSuffix(path, ".html"),
		strings.HasSuffix(path, ".htm"):
		return hocr.Open(path)
	case strings.HasSuffix(path, ".png"),
		strings.HasSuffix(path, ".jpg"),
		strings.HasSuffix(path, ".jpeg"),
		strings.HasSuffix(path, ".tif"),
		strings.HasSuffix(path, ".tiff"):
		return recognizePage(path, cfg)
	default:
		return tokenjson.Open(path)
	}
}

// recognizePage runs the OCR client over a single page image. It fails with
// ocr.ErrOCRNotEnabled unless the binary was built with -tags ocr.
func recognizePage(path string, cfg config.Config) ([][]model.Token, error) {
	client, err := ocr.NewWithConfig(cfg.OCRClientConfig())
	if err != nil {
		return nil, err
	}
	defer client.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	tokens, err := client.RecognizeTokens(data)
	if err != nil {
		return nil, err
	}
	return [][]model.Token{tokens}, nil
}

func writeJSON(path string, result *model.ExtractionResult) error {
	if path == "-" {
		return export.WriteJSON(os.Stdout, result)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return export.WriteJSON(f, result)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
