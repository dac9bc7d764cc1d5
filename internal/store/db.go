// Package store persists dataset-job state in sqlite: the job itself, its
// errors, per-stage progress, and stage logs. All writers are safe to call
// before InitDB; they become no-ops so the pipeline can run untracked.
package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/fabiospaccavento00/arepas/internal/model"
	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

// InitDB opens (or creates) the sqlite database and ensures the schema.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			spec TEXT,
			status TEXT,
			output_path TEXT,
			row_count INTEGER,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS job_errors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id TEXT,
			error_message TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS stage_progress (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id TEXT,
			stage TEXT,
			status TEXT,
			started_at DATETIME,
			ended_at DATETIME,
			rows_in INTEGER,
			rows_out INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS pipeline_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id TEXT,
			stage TEXT,
			level TEXT,
			message TEXT,
			details TEXT,
			created_at DATETIME
		);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the database handle.
func Close() error {
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	return err
}

// SaveJob stores a new dataset job in pending state.
func SaveJob(jobID string, spec model.DatasetJobSpec) error {
	if db == nil {
		return nil
	}
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO jobs (id, spec, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		jobID, specJSON, "pending", now, now)
	return err
}

// UpdateJobStatus updates a job's status.
func UpdateJobStatus(jobID, status string) error {
	if db == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE jobs SET status = ?, updated_at = ? WHERE id = ?`, status, now, jobID)
	return err
}

// SaveJobResult records the produced output file and its row count.
func SaveJobResult(jobID, outputPath string, rowCount int) error {
	if db == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE jobs SET output_path = ?, row_count = ?, updated_at = ? WHERE id = ?`,
		outputPath, rowCount, now, jobID)
	return err
}

// SaveJobError records an error for a job.
func SaveJobError(jobID string, jobErr error) error {
	if db == nil || jobErr == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO job_errors (job_id, error_message, created_at) VALUES (?, ?, ?)`,
		jobID, jobErr.Error(), now)
	return err
}

// SaveStageProgress records a stage transition with its row accounting.
func SaveStageProgress(jobID, stage, status string, startedAt time.Time, endedAt *time.Time, rowsIn, rowsOut int) error {
	if db == nil {
		return nil
	}
	_, err := db.Exec(`INSERT INTO stage_progress (job_id, stage, status, started_at, ended_at, rows_in, rows_out)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		jobID, stage, status, startedAt, endedAt, rowsIn, rowsOut)
	return err
}

// SavePipelineLog records one structured log line for a job stage.
func SavePipelineLog(jobID, stage, level, message string, details map[string]interface{}) error {
	if db == nil {
		return nil
	}
	var detailsJSON []byte
	if details != nil {
		var err error
		detailsJSON, err = json.Marshal(details)
		if err != nil {
			return err
		}
	}
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO pipeline_logs (job_id, stage, level, message, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		jobID, stage, level, message, string(detailsJSON), now)
	return err
}

// ListJobs returns all jobs with basic info, newest first.
func ListJobs() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, status, created_at, updated_at FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []map[string]interface{}
	for rows.Next() {
		var id, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, map[string]interface{}{
			"id":        id,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return jobs, rows.Err()
}

// GetJob fetches full job spec, status, and result info.
func GetJob(jobID string) (map[string]interface{}, error) {
	var specJSON, status string
	var outputPath sql.NullString
	var rowCount sql.NullInt64
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT spec, status, output_path, row_count, created_at, updated_at FROM jobs WHERE id = ?`, jobID).
		Scan(&specJSON, &status, &outputPath, &rowCount, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var spec model.DatasetJobSpec
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return nil, err
	}

	job := map[string]interface{}{
		"id":        jobID,
		"spec":      spec,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}
	if outputPath.Valid {
		job["outputPath"] = outputPath.String
	}
	if rowCount.Valid {
		job["rowCount"] = rowCount.Int64
	}
	return job, nil
}

// GetJobOutputPath returns the recorded output file for a completed job.
func GetJobOutputPath(jobID string) (string, error) {
	var outputPath sql.NullString
	err := db.QueryRow(`SELECT output_path FROM jobs WHERE id = ?`, jobID).Scan(&outputPath)
	if err != nil {
		return "", err
	}
	return outputPath.String, nil
}

// GetJobErrors returns recorded error messages for a job, oldest first.
func GetJobErrors(jobID string) ([]string, error) {
	rows, err := db.Query(`SELECT error_message FROM job_errors WHERE job_id = ? ORDER BY id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []string
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

// GetJobProgress returns stage-progress rows for a job in recorded order.
func GetJobProgress(jobID string) ([]model.StageProgress, error) {
	rows, err := db.Query(`SELECT stage, status, started_at, ended_at, rows_in, rows_out
		FROM stage_progress WHERE job_id = ? ORDER BY id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.StageProgress
	for rows.Next() {
		var p model.StageProgress
		var startedAt time.Time
		var endedAt sql.NullTime
		if err := rows.Scan(&p.Stage, &p.Status, &startedAt, &endedAt, &p.RowsIn, &p.RowsOut); err != nil {
			return nil, err
		}
		p.StartedAt = startedAt.UTC().Format(time.RFC3339)
		if endedAt.Valid {
			s := endedAt.Time.UTC().Format(time.RFC3339)
			p.EndedAt = &s
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetJobLogs returns recorded log lines for a job, oldest first.
func GetJobLogs(jobID string) ([]model.LogEntry, error) {
	rows, err := db.Query(`SELECT stage, level, message, details, created_at
		FROM pipeline_logs WHERE job_id = ? ORDER BY id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.LogEntry
	for rows.Next() {
		var e model.LogEntry
		var details string
		var createdAt time.Time
		if err := rows.Scan(&e.Stage, &e.Level, &e.Message, &details, &createdAt); err != nil {
			return nil, err
		}
		if details != "" {
			_ = json.Unmarshal([]byte(details), &e.Details)
		}
		e.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		out = append(out, e)
	}
	return out, rows.Err()
}
