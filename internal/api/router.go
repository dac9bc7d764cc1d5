// Package api wires the dataset-job endpoints onto the router.
package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/fabiospaccavento00/arepas/docs"
	"github.com/fabiospaccavento00/arepas/internal/api/handler"
	"github.com/fabiospaccavento00/arepas/pkg/metrics"
	"github.com/fabiospaccavento00/arepas/pkg/router"
)

// RegisterRoutes mounts all routes. More specific routes come first: the
// router matches in registration order.
func RegisterRoutes(r *router.Router, h *handler.Handler) {
	r.POST("/api/v1/datasets", h.CreateDataset)
	r.GET("/api/v1/datasets", h.ListDatasets)
	r.GET("/api/v1/datasets/*/errors", h.GetDatasetErrors)
	r.GET("/api/v1/datasets/*/logs", h.GetDatasetLogs)
	r.GET("/api/v1/datasets/*/progress", h.GetDatasetProgress)
	r.GET("/api/v1/datasets/*/download", h.DownloadDataset)
	r.GET("/api/v1/datasets/*", h.GetDataset)

	r.GET("/healthz", handler.Health)
	r.Handle("/metrics", metrics.Handler())
	r.GET("/swagger/*", httpSwagger.WrapHandler)
}
