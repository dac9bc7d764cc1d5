// Command arepas builds a labeled training dataset from the three cooking
// sources in one batch run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/fabiospaccavento00/arepas/internal/config"
	"github.com/fabiospaccavento00/arepas/internal/dataset"
	"github.com/fabiospaccavento00/arepas/internal/model"
	"github.com/fabiospaccavento00/arepas/internal/store"
	"github.com/fabiospaccavento00/arepas/pkg/logger"
	"github.com/fabiospaccavento00/arepas/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatalf("load config: %v", err)
	}

	var (
		cookingPath = flag.String("cooking-metrics", cfg.CookingMetrics, "cooking metrics file path")
		faultyPath  = flag.String("faulty-intervals", cfg.FaultyIntervals, "faulty intervals file path")
		batchPath   = flag.String("batch-registry", cfg.BatchRegistry, "batch registry file path")
		machineID   = flag.String("machine", "", "machine id (required)")
		arepaType   = flag.String("arepa-type", "", "arepa type (required)")
		startTime   = flag.String("start-time", "", "window start, ISO-8601 (required)")
		endTime     = flag.String("end-time", "", "window end, ISO-8601 (required)")
		output      = flag.String("output", "", "output file path (required)")
		verbose     = flag.Bool("v", false, "enable verbose logs")
	)
	flag.Parse()

	for name, val := range map[string]string{
		"machine":    *machineID,
		"arepa-type": *arepaType,
		"start-time": *startTime,
		"end-time":   *endTime,
		"output":     *output,
	} {
		if val == "" {
			usagef("-%s is required", name)
		}
	}
	start, ok := utils.ParseInstant(*startTime)
	if !ok {
		usagef("-start-time: cannot parse %q as an instant", *startTime)
	}
	end, ok := utils.ParseInstant(*endTime)
	if !ok {
		usagef("-end-time: cannot parse %q as an instant", *endTime)
	}

	log := logger.New(*verbose)
	ctx := context.Background()

	// CLI runs are tracked in the same sqlite store as API jobs.
	jobID := ""
	if cfg.DBPath != "" {
		if err := store.InitDB(cfg.DBPath); err != nil {
			fatalf("init store: %v", err)
		}
		defer store.Close()

		jobID = uuid.New().String()
		store.SaveJob(jobID, model.DatasetJobSpec{
			CookingMetrics:  *cookingPath,
			FaultyIntervals: *faultyPath,
			BatchRegistry:   *batchPath,
			MachineID:       *machineID,
			ArepaType:       *arepaType,
			StartTime:       *startTime,
			EndTime:         *endTime,
			Output:          *output,
		})
	}

	params := cfg.PipelineParams()
	params.CookingMetricsPath = *cookingPath
	params.FaultyIntervalsPath = *faultyPath
	params.BatchRegistryPath = *batchPath
	params.MachineID = *machineID
	params.ArepaType = *arepaType
	params.StartTime = start
	params.EndTime = end
	params.OutputPath = *output

	rows, err := dataset.Run(ctx, log, jobID, params)
	if err != nil {
		log.Error(ctx, "dataset build failed", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "training dataset saved",
		logger.String("output", *output), logger.Int("rows", rows))
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func usagef(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	flag.Usage()
	os.Exit(2)
}
