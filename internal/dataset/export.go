package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fabiospaccavento00/arepas/internal/table"
)

// timestampLayout is the render format for timestamp cells in the output.
const timestampLayout = "2006-01-02 15:04:05"

// WriteCSV persists a table to a delimited file, header first, columns in
// declaration order. Nil cells render as empty fields. Directory creation or
// file creation failure wraps ErrSinkUnwritable.
func WriteCSV(t *table.Table, path string, delimiter rune) error {
	if delimiter == 0 {
		delimiter = ','
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: %v", ErrSinkUnwritable, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSinkUnwritable, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = delimiter

	columns := t.Columns()
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.Rows() {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = formatCell(row[col])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrSinkUnwritable, err)
	}
	return nil
}

func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.Format(timestampLayout)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case int:
		return strconv.Itoa(val)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
