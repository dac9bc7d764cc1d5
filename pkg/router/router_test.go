package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/fabiospaccavento00/arepas/pkg/logger"
	"github.com/fabiospaccavento00/arepas/pkg/router"
)

func TestRouter(t *testing.T) {
	Convey("Given routes registered specific-first", t, func() {
		r := router.New(logger.Nop())
		record := func(name string) http.HandlerFunc {
			return func(w http.ResponseWriter, req *http.Request) {
				w.Write([]byte(name))
			}
		}
		r.POST("/api/v1/datasets", record("create"))
		r.GET("/api/v1/datasets", record("list"))
		r.GET("/api/v1/datasets/*/errors", record("errors"))
		r.GET("/api/v1/datasets/*/download", record("download"))
		r.GET("/api/v1/datasets/*", record("get"))
		r.GET("/healthz", record("health"))

		do := func(method, path string) *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
			return rec
		}

		Convey("Exact paths dispatch by method", func() {
			So(do(http.MethodGet, "/api/v1/datasets").Body.String(), ShouldEqual, "list")
			So(do(http.MethodPost, "/api/v1/datasets").Body.String(), ShouldEqual, "create")
			So(do(http.MethodGet, "/healthz").Body.String(), ShouldEqual, "health")
		})

		Convey("Wildcard segments match a single segment", func() {
			So(do(http.MethodGet, "/api/v1/datasets/job-1/errors").Body.String(), ShouldEqual, "errors")
			So(do(http.MethodGet, "/api/v1/datasets/job-1/download").Body.String(), ShouldEqual, "download")
		})

		Convey("Earlier registrations win over the catch-all detail route", func() {
			So(do(http.MethodGet, "/api/v1/datasets/job-1").Body.String(), ShouldEqual, "get")
			So(do(http.MethodGet, "/api/v1/datasets/job-1/errors").Body.String(), ShouldNotEqual, "get")
		})

		Convey("A known path with the wrong method is 405", func() {
			So(do(http.MethodDelete, "/api/v1/datasets").Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("An unknown path is 404", func() {
			So(do(http.MethodGet, "/api/v1/unknown").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}
