package dataset

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fabiospaccavento00/arepas/internal/store"
	"github.com/fabiospaccavento00/arepas/internal/table"
	"github.com/fabiospaccavento00/arepas/pkg/logger"
	"github.com/fabiospaccavento00/arepas/pkg/metrics"
)

// defaultDateColumns are coerced to timestamps in every source where present.
var defaultDateColumns = []string{"timestamp", "start_time", "end_time"}

// Params is the full configuration of one dataset build, passed explicitly
// into Run. There is no ambient state: each run is a pure function of its
// params and input files.
type Params struct {
	CookingMetricsPath  string
	FaultyIntervalsPath string
	BatchRegistryPath   string

	MachineID string
	ArepaType string
	StartTime time.Time
	EndTime   time.Time

	OutputPath string

	InputDelimiter   rune          // default ';'
	DecimalSeparator rune          // default ','
	OutputDelimiter  rune          // default ','
	Bucket           time.Duration // default one hour
	DateColumns      []string      // default timestamp, start_time, end_time
}

func (p Params) withDefaults() Params {
	if p.InputDelimiter == 0 {
		p.InputDelimiter = ';'
	}
	if p.DecimalSeparator == 0 {
		p.DecimalSeparator = ','
	}
	if p.OutputDelimiter == 0 {
		p.OutputDelimiter = ','
	}
	if p.Bucket <= 0 {
		p.Bucket = DefaultBucket
	}
	if len(p.DateColumns) == 0 {
		p.DateColumns = defaultDateColumns
	}
	return p
}

// Run executes the full build: load the three sources, filter to the machine
// and time window, exclude faulty intervals, join the batch registry,
// aggregate hourly means, filter the product type, and persist the result.
// Stages run strictly sequentially; any load failure aborts the run before
// any output is written. It returns the number of rows written.
func Run(ctx context.Context, log logger.Logger, jobID string, p Params) (rows int, err error) {
	p = p.withDefaults()
	start := time.Now()

	store.UpdateJobStatus(jobID, "running")
	defer func() {
		metrics.RunDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.RunsTotal.WithLabelValues("failed").Inc()
			store.UpdateJobStatus(jobID, "failed")
			store.SaveJobError(jobID, err)
			return
		}
		metrics.RunsTotal.WithLabelValues("completed").Inc()
		store.UpdateJobStatus(jobID, "completed")
	}()

	// The three sources are independent, so they load concurrently. Every
	// stage after this point is a strict sequential data dependency.
	opts := LoadOptions{
		Delimiter:        p.InputDelimiter,
		DecimalSeparator: p.DecimalSeparator,
		DateColumns:      p.DateColumns,
	}
	var cookingMetrics, faultyIntervals, batchRegistry *table.Table
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cookingMetrics, err = Load(p.CookingMetricsPath, opts)
		return err
	})
	g.Go(func() error {
		var err error
		faultyIntervals, err = Load(p.FaultyIntervalsPath, opts)
		return err
	})
	g.Go(func() error {
		var err error
		batchRegistry, err = Load(p.BatchRegistryPath, opts)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	metrics.RowsLoaded.WithLabelValues("cooking_metrics").Add(float64(cookingMetrics.Len()))
	metrics.RowsLoaded.WithLabelValues("faulty_intervals").Add(float64(faultyIntervals.Len()))
	metrics.RowsLoaded.WithLabelValues("batch_registry").Add(float64(batchRegistry.Len()))
	log.Info(ctx, "sources loaded",
		logger.Int("cooking_metrics", cookingMetrics.Len()),
		logger.Int("faulty_intervals", faultyIntervals.Len()),
		logger.Int("batch_registry", batchRegistry.Len()))

	run := stageRunner{ctx: ctx, log: log, jobID: jobID}

	filtered := run.stage("time_window", cookingMetrics.Len(), func() *table.Table {
		return FilterWindow(cookingMetrics, p.MachineID, p.StartTime, p.EndTime)
	})

	cleaned := run.stage("faulty_exclusion", filtered.Len(), func() *table.Table {
		return ExcludeFaulty(filtered, faultyIntervals, p.MachineID)
	})

	var duplicates int
	joined := run.stage("batch_join", cleaned.Len(), func() *table.Table {
		t, dups := JoinBatches(cleaned, batchRegistry)
		duplicates = dups
		return t
	})
	if duplicates > 0 {
		// The registry is expected to have unique batch_id values; fan-out is
		// preserved but worth flagging.
		log.Warn(ctx, "batch registry has duplicate batch_id values",
			logger.Int("duplicate_keys", duplicates))
		store.SavePipelineLog(jobID, "batch_join", "warning",
			"duplicate batch_id values in registry, join fans out",
			map[string]interface{}{"duplicate_keys": duplicates})
	}

	aggregated := run.stage("hourly_aggregation", joined.Len(), func() *table.Table {
		return AggregateHourly(joined, p.Bucket)
	})

	result := run.stage("type_filter", aggregated.Len(), func() *table.Table {
		return FilterType(aggregated, p.ArepaType)
	})

	store.UpdateJobStatus(jobID, "exporting")
	if err := WriteCSV(result, p.OutputPath, p.OutputDelimiter); err != nil {
		return 0, err
	}
	store.SaveJobResult(jobID, p.OutputPath, result.Len())

	log.Info(ctx, "dataset written",
		logger.String("output", p.OutputPath),
		logger.Int("rows", result.Len()),
		logger.Duration("took", time.Since(start)))
	return result.Len(), nil
}

// stageRunner threads logging, store progress, and metrics through each
// stage without the stages themselves knowing about any of it.
type stageRunner struct {
	ctx   context.Context
	log   logger.Logger
	jobID string
}

func (r stageRunner) stage(name string, rowsIn int, fn func() *table.Table) *table.Table {
	startedAt := time.Now().UTC()
	store.SaveStageProgress(r.jobID, name, "started", startedAt, nil, rowsIn, 0)

	out := fn()

	endedAt := time.Now().UTC()
	store.SaveStageProgress(r.jobID, name, "completed", startedAt, &endedAt, rowsIn, out.Len())
	store.SavePipelineLog(r.jobID, name, "info", "stage completed", map[string]interface{}{
		"rows_in":  rowsIn,
		"rows_out": out.Len(),
	})
	metrics.StageRows.WithLabelValues(name).Add(float64(out.Len()))
	r.log.Debug(r.ctx, "stage completed",
		logger.String("stage", name),
		logger.Int("rows_in", rowsIn),
		logger.Int("rows_out", out.Len()))
	return out
}
