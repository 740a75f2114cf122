package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sgoncalves/quadrille/model"
)

// WriteTableCSV writes one table as CSV.
func WriteTableCSV(w io.Writer, t *model.Table) error {
	cw := csv.NewWriter(w)
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveAllCSV writes every table to dir, one file per table, named
// page<N>_table<M>.csv from the table's page and table indices (both
// 1-based in file names). The directory is created if missing.
func SaveAllCSV(dir string, tables []*model.Table) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	for _, t := range tables {
		name := fmt.Sprintf("page%d_table%d.csv", t.PageIndex+1, t.TableIndex+1)
		path := filepath.Join(dir, name)

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
		if err := WriteTableCSV(f, t); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", name, err)
		}
	}

	return nil
}
