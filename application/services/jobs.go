package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"outreach-backend/application/ports"
	"outreach-backend/pkg/observability"
)

// Job names recorded in automation_logs.
const (
	JobSheetsSync    = "sheets_sync"
	JobFollowupCheck = "followup_check"
	JobDailyBriefing = "daily_briefing"
	JobEmailScan     = "email_scan"
	JobCalendarSync  = "calendar_sync"
	JobQueueGenerate = "queue_generate"
)

// JobRunner wraps scheduled work in an automation log envelope: a running
// row up front, then a success or failed row with the execution time.
type JobRunner struct {
	logs    ports.AutomationLogRepository
	metrics *observability.Collector
	logger  *zap.Logger
}

func NewJobRunner(logs ports.AutomationLogRepository, metrics *observability.Collector, logger *zap.Logger) *JobRunner {
	return &JobRunner{logs: logs, metrics: metrics, logger: logger}
}

// Run executes the job and records the outcome. The job's message is stored
// on success, the error text on failure. Logging failures never mask the
// job's own result.
func (r *JobRunner) Run(ctx context.Context, name string, job func(ctx context.Context) (string, error)) (string, error) {
	r.record(ctx, ports.AutomationLog{JobName: name, Status: "running"})

	start := time.Now()
	message, err := job(ctx)
	elapsed := time.Since(start)
	elapsedMS := elapsed.Milliseconds()

	if r.metrics != nil {
		r.metrics.JobDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	}

	if err != nil {
		r.record(ctx, ports.AutomationLog{
			JobName:         name,
			Status:          "failed",
			Message:         err.Error(),
			ExecutionTimeMS: &elapsedMS,
		})
		if r.metrics != nil {
			r.metrics.JobRuns.WithLabelValues(name, "failed").Inc()
		}
		r.logger.Error("Automation job failed",
			zap.String("job", name),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return "", err
	}

	r.record(ctx, ports.AutomationLog{
		JobName:         name,
		Status:          "success",
		Message:         message,
		ExecutionTimeMS: &elapsedMS,
	})
	if r.metrics != nil {
		r.metrics.JobRuns.WithLabelValues(name, "success").Inc()
	}
	r.logger.Info("Automation job finished",
		zap.String("job", name),
		zap.Duration("elapsed", elapsed),
		zap.String("result", message),
	)
	return message, nil
}

func (r *JobRunner) record(ctx context.Context, log ports.AutomationLog) {
	if err := r.logs.Insert(ctx, log); err != nil {
		r.logger.Warn("Failed to write automation log",
			zap.String("job", log.JobName),
			zap.String("status", log.Status),
			zap.Error(err),
		)
	}
}

// History lists the most recent automation log rows.
func (r *JobRunner) History(ctx context.Context, limit int) ([]ports.AutomationLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return r.logs.ListRecent(ctx, limit)
}
