package dataset_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/fabiospaccavento00/arepas/internal/dataset"
	"github.com/fabiospaccavento00/arepas/internal/table"
)

func joinedTable(rows ...table.Row) *table.Table {
	t := table.New([]string{"machine_id", "timestamp", "batch_id", "metric_1", "metric_2", "arepa_type"})
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

func TestAggregateHourly(t *testing.T) {
	Convey("Given joined rows spanning two hours and two types", t, func() {
		joined := joinedTable(
			table.Row{"timestamp": at(10, 15), "arepa_type": "classic", "metric_1": 2.0, "metric_2": 4.0},
			table.Row{"timestamp": at(10, 45), "arepa_type": "classic", "metric_1": 3.0, "metric_2": 5.0},
			table.Row{"timestamp": at(10, 30), "arepa_type": "sweet", "metric_1": 8.0, "metric_2": 1.0},
			table.Row{"timestamp": at(11, 5), "arepa_type": "classic", "metric_1": 10.0, "metric_2": 10.0},
		)

		Convey("When aggregated with the default bucket", func() {
			agg := dataset.AggregateHourly(joined, 0)

			Convey("Then there is one row per non-empty (bucket, type) pair", func() {
				So(agg.Len(), ShouldEqual, 3)
			})

			Convey("Then rows are ordered by bucket then type", func() {
				ts0, _ := table.AsTime(agg.Row(0)["timestamp"])
				So(ts0.Equal(at(10, 0)), ShouldBeTrue)
				So(agg.Row(0)["arepa_type"], ShouldEqual, "classic")
				So(agg.Row(1)["arepa_type"], ShouldEqual, "sweet")
				ts2, _ := table.AsTime(agg.Row(2)["timestamp"])
				So(ts2.Equal(at(11, 0)), ShouldBeTrue)
			})

			Convey("Then means are arithmetic means per group", func() {
				So(agg.Row(0)["metric_1"], ShouldEqual, 2.5)
				So(agg.Row(0)["metric_2"], ShouldEqual, 4.5)
				So(agg.Row(2)["metric_1"], ShouldEqual, 10.0)
			})

			Convey("Then the output carries exactly the aggregate columns", func() {
				So(agg.Columns(), ShouldResemble, []string{"timestamp", "arepa_type", "metric_1", "metric_2"})
			})
		})

		Convey("When aggregated with a 30 minute bucket", func() {
			agg := dataset.AggregateHourly(joined, 30*time.Minute)

			Convey("Then bucketing follows the configured frequency", func() {
				// classic 10:15 and 10:45 now land in different buckets.
				So(agg.Len(), ShouldEqual, 4)
				ts0, _ := table.AsTime(agg.Row(0)["timestamp"])
				So(ts0.Equal(at(10, 0)), ShouldBeTrue)
			})
		})
	})

	Convey("Given a group with missing metric values", t, func() {
		joined := joinedTable(
			table.Row{"timestamp": at(10, 15), "arepa_type": "classic", "metric_1": 2.0, "metric_2": nil},
			table.Row{"timestamp": at(10, 45), "arepa_type": "classic", "metric_1": nil, "metric_2": nil},
		)

		Convey("When aggregated", func() {
			agg := dataset.AggregateHourly(joined, time.Hour)

			Convey("Then missing values are excluded from both sum and count", func() {
				So(agg.Len(), ShouldEqual, 1)
				So(agg.Row(0)["metric_1"], ShouldEqual, 2.0)
			})

			Convey("Then an entirely missing column yields a nil mean", func() {
				So(agg.Row(0)["metric_2"], ShouldBeNil)
			})
		})
	})

	Convey("Given an empty joined table", t, func() {
		agg := dataset.AggregateHourly(joinedTable(), time.Hour)

		Convey("Then the aggregate is empty but well-formed", func() {
			So(agg.Len(), ShouldEqual, 0)
			So(agg.Columns(), ShouldResemble, []string{"timestamp", "arepa_type", "metric_1", "metric_2"})
		})
	})
}
