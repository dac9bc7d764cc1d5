package dataset

import (
	"time"

	"github.com/fabiospaccavento00/arepas/internal/table"
)

// FilterWindow keeps the metric rows for one machine whose timestamp lies in
// the closed range [start, end]. Rows with a nil timestamp (failed coercion at
// load time) cannot satisfy a range comparison and are dropped. Input order is
// preserved; the input table is not touched.
func FilterWindow(metrics *table.Table, machineID string, start, end time.Time) *table.Table {
	out := table.New(metrics.Columns())
	for _, row := range metrics.Rows() {
		if table.AsString(row["machine_id"]) != machineID {
			continue
		}
		ts, ok := table.AsTime(row["timestamp"])
		if !ok {
			continue
		}
		if ts.Before(start) || ts.After(end) {
			continue
		}
		out.Append(row)
	}
	return out
}

// FilterType keeps the aggregate rows whose arepa_type matches exactly. No
// normalization: matching is byte-exact, and an empty result is valid.
func FilterType(aggregates *table.Table, arepaType string) *table.Table {
	out := table.New(aggregates.Columns())
	for _, row := range aggregates.Rows() {
		if table.AsString(row["arepa_type"]) == arepaType {
			out.Append(row)
		}
	}
	return out
}
