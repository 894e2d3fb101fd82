package export

import (
	"fmt"
	"io"
	"strings"
)

func quoteAll(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteCSV emits the legacy table format: UTF-8 BOM, quoted fields, CRLF line
// endings, header first. The full column set is always written even when a
// value is empty.
func WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}
	if err := writeLine(w, headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeLine(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeLine(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = quoteAll(f)
	}
	if _, err := io.WriteString(w, strings.Join(quoted, ",")+"\r\n"); err != nil {
		return fmt.Errorf("failed to write csv line: %w", err)
	}
	return nil
}
