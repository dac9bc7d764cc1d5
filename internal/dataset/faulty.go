package dataset

import (
	"time"

	"github.com/fabiospaccavento00/arepas/internal/table"
)

// ExcludeFaulty removes every metric row whose timestamp falls inside the
// closed range [start_time, end_time] of any faulty interval belonging to the
// target machine. Intervals of other machines are ignored, intervals may
// overlap (exclusion is a set difference, so overlap is harmless), and an
// empty interval table leaves the metrics unchanged. Intervals with an
// unparsable bound cannot be range-checked and exclude nothing.
func ExcludeFaulty(metrics, intervals *table.Table, machineID string) *table.Table {
	out := table.New(metrics.Columns())
	for _, row := range metrics.Rows() {
		ts, ok := table.AsTime(row["timestamp"])
		if ok && insideAnyInterval(ts, intervals, machineID) {
			continue
		}
		out.Append(row)
	}
	return out
}

func insideAnyInterval(ts time.Time, intervals *table.Table, machineID string) bool {
	for _, iv := range intervals.Rows() {
		if table.AsString(iv["machine_id"]) != machineID {
			continue
		}
		start, okStart := table.AsTime(iv["start_time"])
		end, okEnd := table.AsTime(iv["end_time"])
		if !okStart || !okEnd {
			continue
		}
		// Bounds are inclusive on both ends, matching the time-window filter.
		if !ts.Before(start) && !ts.After(end) {
			return true
		}
	}
	return false
}
