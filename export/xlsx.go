package export

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/sgoncalves/quadrille/model"
)

// WorkbookBytes builds an XLSX workbook with one sheet per table, named
// from the table's page and table indices, and returns the serialized file.
func WorkbookBytes(tables []*model.Table) ([]byte, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		sheet := fmt.Sprintf("Page%d Table%d", t.PageIndex+1, t.TableIndex+1)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("naming sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("adding sheet %s: %w", sheet, err)
		}

		for ri, row := range t.Rows {
			for ci, cell := range row {
				if cell == "" {
					continue
				}
				name, err := excelize.CoordinatesToCellName(ci+1, ri+1)
				if err != nil {
					return nil, fmt.Errorf("cell %d,%d: %w", ri, ci, err)
				}
				if err := f.SetCellValue(sheet, name, cell); err != nil {
					return nil, fmt.Errorf("setting %s!%s: %w", sheet, name, err)
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveXLSX writes the workbook for tables to path.
func SaveXLSX(path string, tables []*model.Table) error {
	data, err := WorkbookBytes(tables)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
