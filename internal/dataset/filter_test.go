package dataset_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/fabiospaccavento00/arepas/internal/dataset"
	"github.com/fabiospaccavento00/arepas/internal/table"
)

func metricsTable(rows ...table.Row) *table.Table {
	t := table.New([]string{"machine_id", "timestamp", "batch_id", "metric_1", "metric_2"})
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

func at(hour, min int) time.Time {
	return time.Date(2023, 1, 1, hour, min, 0, 0, time.UTC)
}

func TestFilterWindow(t *testing.T) {
	Convey("Given metric rows for two machines", t, func() {
		metrics := metricsTable(
			table.Row{"machine_id": "M1", "timestamp": at(9, 59), "batch_id": "B1"},
			table.Row{"machine_id": "M1", "timestamp": at(10, 0), "batch_id": "B1"},
			table.Row{"machine_id": "M1", "timestamp": at(11, 30), "batch_id": "B2"},
			table.Row{"machine_id": "M2", "timestamp": at(11, 0), "batch_id": "B1"},
			table.Row{"machine_id": "M1", "timestamp": at(12, 0), "batch_id": "B1"},
			table.Row{"machine_id": "M1", "timestamp": at(12, 1), "batch_id": "B1"},
			table.Row{"machine_id": "M1", "timestamp": nil, "batch_id": "B1"},
		)

		Convey("When filtering M1 rows in [10:00, 12:00]", func() {
			got := dataset.FilterWindow(metrics, "M1", at(10, 0), at(12, 0))

			Convey("Then both boundaries are inclusive", func() {
				So(got.Len(), ShouldEqual, 3)
				ts0, _ := table.AsTime(got.Row(0)["timestamp"])
				tsLast, _ := table.AsTime(got.Row(got.Len() - 1)["timestamp"])
				So(ts0.Equal(at(10, 0)), ShouldBeTrue)
				So(tsLast.Equal(at(12, 0)), ShouldBeTrue)
			})

			Convey("Then other machines and nil timestamps are dropped", func() {
				for _, row := range got.Rows() {
					So(row["machine_id"], ShouldEqual, "M1")
					_, ok := table.AsTime(row["timestamp"])
					So(ok, ShouldBeTrue)
				}
			})

			Convey("Then input order is preserved", func() {
				ts1, _ := table.AsTime(got.Row(1)["timestamp"])
				So(ts1.Equal(at(11, 30)), ShouldBeTrue)
			})

			Convey("Then the input table is untouched", func() {
				So(metrics.Len(), ShouldEqual, 7)
			})
		})
	})
}

func TestFilterType(t *testing.T) {
	Convey("Given aggregated rows of mixed types", t, func() {
		agg := table.New([]string{"timestamp", "arepa_type", "metric_1", "metric_2"})
		agg.Append(table.Row{"timestamp": at(10, 0), "arepa_type": "classic", "metric_1": 2.5})
		agg.Append(table.Row{"timestamp": at(10, 0), "arepa_type": "sweet", "metric_1": 7.0})
		agg.Append(table.Row{"timestamp": at(11, 0), "arepa_type": "classic", "metric_1": 3.0})

		Convey("When filtering for classic", func() {
			got := dataset.FilterType(agg, "classic")

			Convey("Then only exact matches survive", func() {
				So(got.Len(), ShouldEqual, 2)
			})

			Convey("And filtering again by the same type is a no-op", func() {
				again := dataset.FilterType(got, "classic")
				So(again.Len(), ShouldEqual, got.Len())
			})
		})

		Convey("When filtering is byte-exact", func() {
			So(dataset.FilterType(agg, "Classic").Len(), ShouldEqual, 0)
			So(dataset.FilterType(agg, "classic ").Len(), ShouldEqual, 0)
		})

		Convey("When no bucket matches, the empty result is valid", func() {
			So(dataset.FilterType(agg, "savory").Len(), ShouldEqual, 0)
		})
	})
}
