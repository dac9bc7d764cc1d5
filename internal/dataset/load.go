package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fabiospaccavento00/arepas/internal/table"
	"github.com/fabiospaccavento00/arepas/pkg/utils"
)

// LoadOptions controls how a delimited source file is parsed.
type LoadOptions struct {
	Delimiter        rune     // field separator, ';' by default
	DecimalSeparator rune     // decimal mark inside numeric cells, ',' by default
	DateColumns      []string // columns coerced to timestamps when present in the header
}

func (o LoadOptions) withDefaults() LoadOptions {
	if o.Delimiter == 0 {
		o.Delimiter = ';'
	}
	if o.DecimalSeparator == 0 {
		o.DecimalSeparator = ','
	}
	return o
}

// Load parses a delimited file into a table. Cells in declared date columns
// are coerced to timestamps best-effort: an unparsable value becomes a nil
// cell, never a load error. All other cells go through numeric coercion and
// fall back to string. A missing or unreadable file wraps ErrSourceNotFound.
func Load(path string, opts LoadOptions) (*table.Table, error) {
	opts = opts.withDefaults()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceNotFound, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = opts.Delimiter
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		// Clean header names: trim whitespace and remove stray quotes.
		columns[i] = strings.ReplaceAll(strings.TrimSpace(h), `"`, "")
	}

	dateCols := make(map[string]bool, len(opts.DateColumns))
	for _, c := range opts.DateColumns {
		dateCols[c] = true
	}

	out := table.New(columns)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		row := make(table.Row, len(columns))
		for i, col := range columns {
			cell := strings.TrimSpace(record[i])
			if dateCols[col] {
				if ts, ok := utils.ParseInstant(cell); ok {
					row[col] = ts
				} else {
					row[col] = nil
				}
				continue
			}
			row[col] = parseCell(cell, opts.DecimalSeparator)
		}
		out.Append(row)
	}

	return out, nil
}

// parseCell coerces a raw cell to int, float64, or string, honoring the
// configured decimal separator. Empty cells become nil.
func parseCell(s string, decimal rune) interface{} {
	if s == "" {
		return nil
	}
	return utils.ParseValue(s, decimal)
}
