package export

import (
	"fmt"
	"io"
	"os"

	"github.com/sgoncalves/quadrille/model"
)

// WriteMarkdown writes every table as a markdown section, one pipe table
// per extracted table, headed by its page and table position.
func WriteMarkdown(w io.Writer, tables []*model.Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return fmt.Errorf("writing markdown: %w", err)
			}
		}
		heading := fmt.Sprintf("## Page %d / Table %d\n\n", t.PageIndex+1, t.TableIndex+1)
		if _, err := io.WriteString(w, heading+t.ToMarkdown()); err != nil {
			return fmt.Errorf("writing markdown: %w", err)
		}
	}
	return nil
}

// SaveMarkdown writes the markdown rendering of all tables to a file.
func SaveMarkdown(filename string, tables []*model.Table) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	if err := WriteMarkdown(f, tables); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
