package dataset

import (
	"github.com/fabiospaccavento00/arepas/internal/table"
)

// registrySuffix disambiguates registry columns that collide with a metric
// column name. The join key itself is never duplicated.
const registrySuffix = "_registry"

// JoinBatches inner-joins the filtered metrics with the batch registry on
// batch_id. Metric rows without a matching registry entry are dropped. A
// batch_id matching multiple registry entries fans out one output row per
// match; the returned count reports how many registry keys were duplicated so
// the caller can surface the input-contract violation.
func JoinBatches(metrics, registry *table.Table) (*table.Table, int) {
	index := make(map[string][]table.Row)
	duplicates := 0
	for _, entry := range registry.Rows() {
		key, ok := joinKey(entry)
		if !ok {
			continue
		}
		if len(index[key]) == 1 {
			duplicates++
		}
		index[key] = append(index[key], entry)
	}

	columns := metrics.Columns()
	metricCols := make(map[string]bool, len(columns))
	for _, c := range columns {
		metricCols[c] = true
	}
	// Registry columns come after the metric columns, suffixed on collision.
	registryCols := make(map[string]string)
	for _, c := range registry.Columns() {
		if c == "batch_id" {
			continue
		}
		name := c
		if metricCols[c] {
			name = c + registrySuffix
		}
		registryCols[c] = name
		columns = append(columns, name)
	}

	out := table.New(columns)
	for _, row := range metrics.Rows() {
		key, ok := joinKey(row)
		if !ok {
			continue
		}
		for _, entry := range index[key] {
			joined := row.Clone()
			for col, name := range registryCols {
				joined[name] = entry[col]
			}
			out.Append(joined)
		}
	}
	return out, duplicates
}

func joinKey(row table.Row) (string, bool) {
	v, ok := row["batch_id"]
	if !ok || v == nil {
		return "", false
	}
	return table.AsString(v), true
}
