// Package handler implements the dataset-job HTTP endpoints.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fabiospaccavento00/arepas/internal/config"
	"github.com/fabiospaccavento00/arepas/internal/dataset"
	"github.com/fabiospaccavento00/arepas/internal/model"
	"github.com/fabiospaccavento00/arepas/internal/store"
	"github.com/fabiospaccavento00/arepas/pkg/logger"
	"github.com/fabiospaccavento00/arepas/pkg/utils"
)

const defaultOutputName = "training_dataset.csv"

// Handler serves dataset-job requests. Each accepted job runs the pipeline
// asynchronously; state is read back from the store.
type Handler struct {
	cfg *config.Config
	log logger.Logger
}

// New creates a handler bound to the given configuration and logger.
func New(cfg *config.Config, log logger.Logger) *Handler {
	return &Handler{cfg: cfg, log: log.Named("api")}
}

// CreateDataset accepts a new dataset build job
// @Summary Create a dataset build job
// @Description Validates the job spec, persists it, and starts the build asynchronously
// @Tags datasets
// @Accept json
// @Produce json
// @Param job body model.DatasetJobSpec true "Dataset job specification"
// @Success 202 {object} map[string]interface{} "Job accepted"
// @Failure 400 {object} map[string]interface{} "Invalid job specification"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /datasets [post]
func (h *Handler) CreateDataset(w http.ResponseWriter, r *http.Request) {
	var spec model.DatasetJobSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if spec.MachineID == "" || spec.ArepaType == "" {
		http.Error(w, "machine_id and arepa_type are required", http.StatusBadRequest)
		return
	}
	startTime, okStart := utils.ParseInstant(spec.StartTime)
	endTime, okEnd := utils.ParseInstant(spec.EndTime)
	if !okStart || !okEnd {
		http.Error(w, "start_time and end_time must be ISO-8601 instants", http.StatusBadRequest)
		return
	}

	jobID := uuid.New().String()
	if err := store.SaveJob(jobID, spec); err != nil {
		http.Error(w, "Failed to save job", http.StatusInternalServerError)
		return
	}

	params := h.cfg.PipelineParams()
	if spec.CookingMetrics != "" {
		params.CookingMetricsPath = spec.CookingMetrics
	}
	if spec.FaultyIntervals != "" {
		params.FaultyIntervalsPath = spec.FaultyIntervals
	}
	if spec.BatchRegistry != "" {
		params.BatchRegistryPath = spec.BatchRegistry
	}
	params.MachineID = spec.MachineID
	params.ArepaType = spec.ArepaType
	params.StartTime = startTime
	params.EndTime = endTime

	name := spec.Output
	if name == "" {
		name = defaultOutputName
	}
	// Outputs are confined to the job's own directory.
	params.OutputPath = filepath.Join(h.cfg.OutputDir, jobID, filepath.Base(name))

	go func() {
		if _, err := dataset.Run(context.Background(), h.log, jobID, params); err != nil {
			h.log.Error(context.Background(), "dataset build failed",
				logger.String("job_id", jobID), logger.Error(err))
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jobID":     jobID,
		"status":    "pending",
		"createdAt": time.Now().UTC(),
	})
}

// ListDatasets lists all dataset jobs
// @Summary List dataset jobs
// @Tags datasets
// @Produce json
// @Success 200 {array} map[string]interface{} "Jobs with status"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /datasets [get]
func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	jobs, err := store.ListJobs()
	if err != nil {
		http.Error(w, "Failed to fetch jobs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, jobs)
}

// GetDataset returns one dataset job
// @Summary Get a dataset job
// @Tags datasets
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} map[string]interface{} "Job detail"
// @Failure 404 {object} map[string]interface{} "Job not found"
// @Router /datasets/{id} [get]
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(r.URL.Path)
	if !ok {
		http.Error(w, "Job ID is required", http.StatusBadRequest)
		return
	}
	job, err := store.GetJob(jobID)
	if err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, job)
}

// GetDatasetErrors returns errors recorded for a job
// @Summary Get job errors
// @Tags datasets
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {array} string "Error messages"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /datasets/{id}/errors [get]
func (h *Handler) GetDatasetErrors(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(r.URL.Path)
	if !ok {
		http.Error(w, "Job ID is required", http.StatusBadRequest)
		return
	}
	msgs, err := store.GetJobErrors(jobID)
	if err != nil {
		http.Error(w, "Failed to fetch errors", http.StatusInternalServerError)
		return
	}
	if msgs == nil {
		msgs = []string{}
	}
	writeJSON(w, msgs)
}

// GetDatasetLogs returns stage logs recorded for a job
// @Summary Get job logs
// @Tags datasets
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {array} model.LogEntry "Log entries"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /datasets/{id}/logs [get]
func (h *Handler) GetDatasetLogs(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(r.URL.Path)
	if !ok {
		http.Error(w, "Job ID is required", http.StatusBadRequest)
		return
	}
	logs, err := store.GetJobLogs(jobID)
	if err != nil {
		http.Error(w, "Failed to fetch logs", http.StatusInternalServerError)
		return
	}
	if logs == nil {
		logs = []model.LogEntry{}
	}
	writeJSON(w, logs)
}

// GetDatasetProgress returns per-stage progress for a job
// @Summary Get job progress
// @Tags datasets
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {array} model.StageProgress "Stage progress"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /datasets/{id}/progress [get]
func (h *Handler) GetDatasetProgress(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(r.URL.Path)
	if !ok {
		http.Error(w, "Job ID is required", http.StatusBadRequest)
		return
	}
	progress, err := store.GetJobProgress(jobID)
	if err != nil {
		http.Error(w, "Failed to fetch progress", http.StatusInternalServerError)
		return
	}
	if progress == nil {
		progress = []model.StageProgress{}
	}
	writeJSON(w, progress)
}

// DownloadDataset streams the produced CSV for a completed job
// @Summary Download the produced dataset
// @Tags datasets
// @Produce text/csv
// @Param id path string true "Job ID"
// @Success 200 {file} file "The dataset CSV"
// @Failure 404 {object} map[string]interface{} "No output for this job"
// @Router /datasets/{id}/download [get]
func (h *Handler) DownloadDataset(w http.ResponseWriter, r *http.Request) {
	jobID, ok := jobIDFromPath(r.URL.Path)
	if !ok {
		http.Error(w, "Job ID is required", http.StatusBadRequest)
		return
	}
	path, err := store.GetJobOutputPath(jobID)
	if err != nil || path == "" {
		http.Error(w, "No output for this job", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
	http.ServeFile(w, r, path)
}

// Health reports liveness
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string "OK"
// @Router /healthz [get]
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

const datasetsPrefix = "/api/v1/datasets/"

// jobIDFromPath extracts the job ID segment from /api/v1/datasets/{id}[/...].
func jobIDFromPath(path string) (string, bool) {
	if !strings.HasPrefix(path, datasetsPrefix) {
		return "", false
	}
	rest := strings.Trim(strings.TrimPrefix(path, datasetsPrefix), "/")
	if rest == "" {
		return "", false
	}
	if i := strings.Index(rest, "/"); i >= 0 {
		rest = rest[:i]
	}
	return rest, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
