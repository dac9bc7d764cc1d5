package utils_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/fabiospaccavento00/arepas/pkg/utils"
)

func TestParseInstant(t *testing.T) {
	Convey("Given the timestamp shapes the sources use", t, func() {
		cases := map[string]time.Time{
			"2023-01-01T10:15:00Z":  time.Date(2023, 1, 1, 10, 15, 0, 0, time.UTC),
			"2023-01-01T10:15:00":   time.Date(2023, 1, 1, 10, 15, 0, 0, time.UTC),
			"2023-01-01 10:15:00":   time.Date(2023, 1, 1, 10, 15, 0, 0, time.UTC),
			"2023-01-01 10:15":      time.Date(2023, 1, 1, 10, 15, 0, 0, time.UTC),
			"2023-01-01":            time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			"  2023-01-01 10:15:00": time.Date(2023, 1, 1, 10, 15, 0, 0, time.UTC),
		}
		for input, want := range cases {
			got, ok := utils.ParseInstant(input)
			So(ok, ShouldBeTrue)
			So(got.Equal(want), ShouldBeTrue)
		}

		Convey("And garbage reports false instead of erroring", func() {
			for _, input := range []string{"", "not-a-date", "10:15:00", "01/02/2023"} {
				_, ok := utils.ParseInstant(input)
				So(ok, ShouldBeFalse)
			}
		})
	})
}

func TestParseValue(t *testing.T) {
	Convey("Given cells with a comma decimal separator", t, func() {
		So(utils.ParseValue("42", ','), ShouldEqual, 42)
		So(utils.ParseValue("2,5", ','), ShouldEqual, 2.5)
		So(utils.ParseValue(" 2,5 ", ','), ShouldEqual, 2.5)
		So(utils.ParseValue("classic", ','), ShouldEqual, "classic")

		Convey("And a dot separator leaves commas alone", func() {
			So(utils.ParseValue("2.5", '.'), ShouldEqual, 2.5)
			So(utils.ParseValue("2,5", '.'), ShouldEqual, "2,5")
		})
	})
}

func TestParseDuration(t *testing.T) {
	Convey("Given duration strings", t, func() {
		So(utils.ParseDuration("30m", time.Hour), ShouldEqual, 30*time.Minute)
		So(utils.ParseDuration("", time.Hour), ShouldEqual, time.Hour)
		So(utils.ParseDuration("bogus", time.Hour), ShouldEqual, time.Hour)
	})
}

func TestNumeric(t *testing.T) {
	Convey("Given mixed values", t, func() {
		So(utils.Numeric(3), ShouldEqual, 3.0)
		So(utils.Numeric(int64(4)), ShouldEqual, 4.0)
		So(utils.Numeric(2.5), ShouldEqual, 2.5)
		So(utils.Numeric("2.5"), ShouldEqual, 0.0)
		So(utils.Numeric(nil), ShouldEqual, 0.0)
	})
}
