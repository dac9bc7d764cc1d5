package dataset

import (
	"sort"
	"time"

	"github.com/fabiospaccavento00/arepas/internal/table"
)

// DefaultBucket is the aggregation frequency when none is configured.
const DefaultBucket = time.Hour

type bucketKey struct {
	bucket int64 // bucket start, unix nanoseconds
	arepa  string
}

// meanAccumulator tracks sum and count per metric so missing values are
// excluded from both, giving standard mean-with-missing-data semantics.
type meanAccumulator struct {
	bucket     time.Time
	arepa      string
	sum1, sum2 float64
	n1, n2     int
}

// AggregateHourly buckets the joined rows by (bucket-aligned timestamp,
// arepa_type) and computes the arithmetic mean of metric_1 and metric_2 per
// group. The bucket duration defaults to one hour; a timestamp is aligned by
// truncating it down to the start of its containing bucket. A group whose
// metric column is entirely missing yields a nil mean for that column. Output
// rows are ordered by (bucket, arepa_type) ascending.
func AggregateHourly(joined *table.Table, bucket time.Duration) *table.Table {
	if bucket <= 0 {
		bucket = DefaultBucket
	}

	groups := make(map[bucketKey]*meanAccumulator)
	for _, row := range joined.Rows() {
		ts, ok := table.AsTime(row["timestamp"])
		if !ok {
			// Upstream filtering guarantees a timestamp; a row without one
			// has no defined bucket.
			continue
		}
		aligned := ts.Truncate(bucket)
		arepa := table.AsString(row["arepa_type"])

		key := bucketKey{bucket: aligned.UnixNano(), arepa: arepa}
		acc, ok := groups[key]
		if !ok {
			acc = &meanAccumulator{bucket: aligned, arepa: arepa}
			groups[key] = acc
		}
		if v, ok := table.AsFloat(row["metric_1"]); ok {
			acc.sum1 += v
			acc.n1++
		}
		if v, ok := table.AsFloat(row["metric_2"]); ok {
			acc.sum2 += v
			acc.n2++
		}
	}

	accs := make([]*meanAccumulator, 0, len(groups))
	for _, acc := range groups {
		accs = append(accs, acc)
	}
	sort.Slice(accs, func(i, j int) bool {
		if !accs[i].bucket.Equal(accs[j].bucket) {
			return accs[i].bucket.Before(accs[j].bucket)
		}
		return accs[i].arepa < accs[j].arepa
	})

	out := table.New([]string{"timestamp", "arepa_type", "metric_1", "metric_2"})
	for _, acc := range accs {
		out.Append(table.Row{
			"timestamp":  acc.bucket,
			"arepa_type": acc.arepa,
			"metric_1":   mean(acc.sum1, acc.n1),
			"metric_2":   mean(acc.sum2, acc.n2),
		})
	}
	return out
}

func mean(sum float64, n int) interface{} {
	if n == 0 {
		return nil
	}
	return sum / float64(n)
}
