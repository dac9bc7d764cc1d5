package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/fabiospaccavento00/arepas/internal/api"
	"github.com/fabiospaccavento00/arepas/internal/api/handler"
	"github.com/fabiospaccavento00/arepas/internal/config"
	"github.com/fabiospaccavento00/arepas/internal/store"
	"github.com/fabiospaccavento00/arepas/pkg/logger"
	"github.com/fabiospaccavento00/arepas/pkg/router"
)

func newServer(t *testing.T) (*router.Router, string) {
	t.Helper()
	dir := t.TempDir()
	So(store.InitDB(filepath.Join(dir, "arepas.db")), ShouldBeNil)
	t.Cleanup(func() { store.Close() })

	cfg := config.New()
	cfg.OutputDir = filepath.Join(dir, "exports")

	r := router.New(logger.Nop())
	api.RegisterRoutes(r, handler.New(cfg, logger.Nop()))
	return r, dir
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	So(os.WriteFile(path, []byte(content), 0o644), ShouldBeNil)
	return path
}

// waitForJob polls until the job leaves its running states so that the
// background goroutine is done before the store is closed.
func waitForJob(r *router.Router, jobID string) string {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/datasets/"+jobID, nil))
		var job map[string]interface{}
		if json.Unmarshal(rec.Body.Bytes(), &job) == nil {
			if s, _ := job["status"].(string); s == "completed" || s == "failed" {
				return s
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	return "timeout"
}

func TestCreateDataset(t *testing.T) {
	Convey("Given the dataset API", t, func() {
		r, dir := newServer(t)

		post := func(body string) *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/datasets", strings.NewReader(body))
			r.ServeHTTP(rec, req)
			return rec
		}

		Convey("When the payload is not JSON", func() {
			So(post("{not json").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When required fields are missing", func() {
			So(post(`{"machine_id": "M1"}`).Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the window bounds are not instants", func() {
			rec := post(`{"machine_id": "M1", "arepa_type": "classic", "start_time": "soon", "end_time": "later"}`)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the spec is valid", func() {
			metrics := writeSource(t, dir, "cooking_metrics.csv",
				"timestamp;machine_id;batch_id;metric_1;metric_2\n"+
					"2023-01-01 10:15:00;M1;B1;2,0;4,0\n"+
					"2023-01-01 10:45:00;M1;B1;3,0;5,0\n")
			faulty := writeSource(t, dir, "faulty_intervals.csv",
				"machine_id;start_time;end_time\n"+
					"M1;2023-01-01 08:00:00;2023-01-01 09:00:00\n")
			registry := writeSource(t, dir, "batch_registry.csv",
				"batch_id;arepa_type\nB1;classic\n")

			rec := post(fmt.Sprintf(`{
				"cooking_metrics": %q,
				"faulty_intervals": %q,
				"batch_registry": %q,
				"machine_id": "M1",
				"arepa_type": "classic",
				"start_time": "2023-01-01 10:00:00",
				"end_time": "2023-01-01 12:00:00"
			}`, metrics, faulty, registry))

			Convey("Then the job is accepted and runs to completion", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)

				var resp map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				jobID, _ := resp["jobID"].(string)
				So(jobID, ShouldNotBeEmpty)

				So(waitForJob(r, jobID), ShouldEqual, "completed")

				download := httptest.NewRecorder()
				r.ServeHTTP(download, httptest.NewRequest(http.MethodGet, "/api/v1/datasets/"+jobID+"/download", nil))
				So(download.Code, ShouldEqual, http.StatusOK)
				So(download.Body.String(), ShouldContainSubstring, "2023-01-01 10:00:00,classic,2.5,4.5")
			})
		})

		Convey("When the sources are unreadable the job fails but is tracked", func() {
			rec := post(`{
				"cooking_metrics": "/no/such/metrics.csv",
				"machine_id": "M1",
				"arepa_type": "classic",
				"start_time": "2023-01-01 10:00:00",
				"end_time": "2023-01-01 12:00:00"
			}`)
			So(rec.Code, ShouldEqual, http.StatusAccepted)

			var resp map[string]interface{}
			So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
			jobID, _ := resp["jobID"].(string)

			So(waitForJob(r, jobID), ShouldEqual, "failed")

			errs := httptest.NewRecorder()
			r.ServeHTTP(errs, httptest.NewRequest(http.MethodGet, "/api/v1/datasets/"+jobID+"/errors", nil))
			So(errs.Code, ShouldEqual, http.StatusOK)
			So(errs.Body.String(), ShouldContainSubstring, "source not found")
		})
	})
}

func TestJobLookups(t *testing.T) {
	Convey("Given the dataset API", t, func() {
		r, _ := newServer(t)

		get := func(path string) *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			return rec
		}

		Convey("An unknown job is 404", func() {
			So(get("/api/v1/datasets/no-such-job").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Errors, logs, and progress of an unknown job are empty lists", func() {
			So(get("/api/v1/datasets/no-such-job/errors").Body.String(), ShouldEqual, "[]\n")
			So(get("/api/v1/datasets/no-such-job/logs").Body.String(), ShouldEqual, "[]\n")
			So(get("/api/v1/datasets/no-such-job/progress").Body.String(), ShouldEqual, "[]\n")
		})

		Convey("A job without output has nothing to download", func() {
			So(get("/api/v1/datasets/no-such-job/download").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("The health endpoint answers", func() {
			So(get("/healthz").Code, ShouldEqual, http.StatusOK)
		})
	})
}
