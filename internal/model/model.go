// Package model holds the dataset-job types shared by the CLI, the API, and
// the run-tracking store.
package model

// DatasetJobSpec describes one training-dataset build. It is the POST body of
// the API and the persisted job spec. Source paths are optional and fall back
// to the configured defaults; the rest is required.
type DatasetJobSpec struct {
	CookingMetrics  string `json:"cooking_metrics,omitempty"`
	FaultyIntervals string `json:"faulty_intervals,omitempty"`
	BatchRegistry   string `json:"batch_registry,omitempty"`

	MachineID string `json:"machine_id"`
	ArepaType string `json:"arepa_type"`
	StartTime string `json:"start_time"` // ISO-8601 text
	EndTime   string `json:"end_time"`   // ISO-8601 text

	// Output is the produced file name; API jobs place it under the job's
	// output directory.
	Output string `json:"output,omitempty"`
}

// StageProgress is one stage-progress row as reported by the job endpoints.
type StageProgress struct {
	Stage     string  `json:"stage"`
	Status    string  `json:"status"`
	StartedAt string  `json:"started_at"`
	EndedAt   *string `json:"ended_at,omitempty"`
	RowsIn    int     `json:"rows_in"`
	RowsOut   int     `json:"rows_out"`
}

// LogEntry is one recorded pipeline log line.
type LogEntry struct {
	Stage     string                 `json:"stage"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	CreatedAt string                 `json:"created_at"`
}
