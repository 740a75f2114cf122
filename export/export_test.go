package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/sgoncalves/quadrille/model"
)

func sampleTables() []*model.Table {
	return []*model.Table{
		model.NewTable(0, 0, model.NewBBox(0, 0, 800, 600), [][]string{
			{"Semaine", "Lundi"},
			{"S1", "2 x Grutier"},
		}),
		model.NewTable(1, 0, model.NewBBox(0, 0, 800, 600), [][]string{
			{"Semaine", "Mardi"},
			{"S2", "1 x Chef"},
		}),
	}
}

func TestWriteJSON(t *testing.T) {
	result := &model.ExtractionResult{
		RunID:      "test-run",
		Source:     "doc.hocr",
		TotalPages: 2,
		Tables:     sampleTables(),
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, result); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	var decoded model.ExtractionResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.RunID != "test-run" || len(decoded.Tables) != 2 {
		t.Errorf("decoded = %+v, want round-tripped result", decoded)
	}
}

func TestWriteJSONKeepsCurrencyGlyph(t *testing.T) {
	result := &model.ExtractionResult{
		Tables: []*model.Table{
			model.NewTable(0, 0, model.BBox{}, [][]string{{"4011,71 €"}}),
		},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, result); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	if !strings.Contains(buf.String(), "€") {
		t.Error("currency glyph was escaped in JSON output")
	}
}

func TestWriteTableCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTableCSV(&buf, sampleTables()[0]); err != nil {
		t.Fatalf("WriteTableCSV() error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 2 || records[1][1] != "2 x Grutier" {
		t.Errorf("records = %v, want table rows", records)
	}
}

func TestSaveAllCSV(t *testing.T) {
	dir := t.TempDir()

	if err := SaveAllCSV(dir, sampleTables()); err != nil {
		t.Fatalf("SaveAllCSV() error: %v", err)
	}

	for _, name := range []string{"page1_table1.csv", "page2_table1.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output file %s: %v", name, err)
		}
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, sampleTables()); err != nil {
		t.Fatalf("WriteMarkdown() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"## Page 1 / Table 1",
		"## Page 2 / Table 1",
		"| Semaine | Lundi |",
		"|---|---|",
		"| S1 | 2 x Grutier |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
}

func TestSaveMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.md")

	if err := SaveMarkdown(path, sampleTables()); err != nil {
		t.Fatalf("SaveMarkdown() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "| S2 | 1 x Chef |") {
		t.Errorf("markdown file missing table rows:\n%s", data)
	}
}

func TestWorkbookBytes(t *testing.T) {
	data, err := WorkbookBytes(sampleTables())
	if err != nil {
		t.Fatalf("WorkbookBytes() error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("workbook sheets = %v, want 2", sheets)
	}

	val, err := f.GetCellValue(sheets[0], "B2")
	if err != nil {
		t.Fatalf("GetCellValue() error: %v", err)
	}
	if val != "2 x Grutier" {
		t.Errorf("B2 = %q, want %q", val, "2 x Grutier")
	}
}

func TestWorkbookBytesEmpty(t *testing.T) {
	if _, err := WorkbookBytes(nil); err == nil {
		t.Error("WorkbookBytes(nil) should fail")
	}
}
