package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"outreach-backend/application/services"
	"outreach-backend/pkg/observability"
)

// CronHandler exposes the scheduled jobs to the cron trigger. Every job
// runs through the JobRunner so its outcome lands in automation_logs.
type CronHandler struct {
	runner    *services.JobRunner
	importer  *services.ImportService
	followup  *services.FollowupService
	briefing  *services.BriefingService
	emails    *services.EmailService
	calendar  *services.CalendarService
	queue     *services.QueueService
	queueSize int
	metrics   *observability.Collector
	logger    *zap.Logger
}

func NewCronHandler(
	runner *services.JobRunner,
	importer *services.ImportService,
	followup *services.FollowupService,
	briefing *services.BriefingService,
	emails *services.EmailService,
	calendar *services.CalendarService,
	queue *services.QueueService,
	queueSize int,
	metrics *observability.Collector,
	logger *zap.Logger,
) *CronHandler {
	return &CronHandler{
		runner:    runner,
		importer:  importer,
		followup:  followup,
		briefing:  briefing,
		emails:    emails,
		calendar:  calendar,
		queue:     queue,
		queueSize: queueSize,
		metrics:   metrics,
		logger:    logger,
	}
}

// SyncSheets handles POST /cron/sync-sheets
func (h *CronHandler) SyncSheets(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, services.JobSheetsSync, func(ctx context.Context) (string, error) {
		result, err := h.importer.AutoSync(ctx)
		if err != nil {
			return "", err
		}
		if result == nil {
			return "Sheet sync skipped: no sheet configured", nil
		}
		h.metrics.ContactsImported.Add(float64(result.Imported))
		h.metrics.ContactsMerged.Add(float64(result.Updated))
		h.metrics.DuplicatesFlagged.Add(float64(result.DuplicatesFound))
		return fmt.Sprintf("Processed %d rows: %d imported, %d merged, %d held as duplicates",
			result.TotalProcessed, result.Imported, result.Updated, result.DuplicatesFound), nil
	})
}

// CheckFollowups handles POST /cron/check-followups
func (h *CronHandler) CheckFollowups(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, services.JobFollowupCheck, func(ctx context.Context) (string, error) {
		snapshot, err := h.followup.Check(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d follow-up(s) due", snapshot.Count), nil
	})
}

// DailyBriefing handles POST /cron/daily-briefing
func (h *CronHandler) DailyBriefing(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, services.JobDailyBriefing, func(ctx context.Context) (string, error) {
		briefing, err := h.briefing.Generate(ctx)
		if err != nil {
			return "", err
		}
		return briefing.Summary, nil
	})
}

// ScanEmails handles POST /cron/scan-emails
func (h *CronHandler) ScanEmails(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, services.JobEmailScan, func(ctx context.Context) (string, error) {
		result, err := h.emails.Scan(ctx)
		if err != nil {
			return "", err
		}
		h.metrics.EmailsFlagged.Add(float64(result.Flagged))
		return fmt.Sprintf("Scanned %d messages, flagged %d", result.Scanned, result.Flagged), nil
	})
}

// SyncCalendar handles POST /cron/sync-calendar
func (h *CronHandler) SyncCalendar(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, services.JobCalendarSync, func(ctx context.Context) (string, error) {
		result, err := h.calendar.Sync(ctx)
		if err != nil {
			return "", err
		}
		h.metrics.EventsSynced.Add(float64(result.Synced))
		return fmt.Sprintf("Synced %d events, %d linked to contacts", result.Synced, result.Linked), nil
	})
}

// GenerateQueue handles POST /cron/generate-queue
func (h *CronHandler) GenerateQueue(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, services.JobQueueGenerate, func(ctx context.Context) (string, error) {
		result, err := h.queue.Generate(ctx, h.queueSize)
		if err != nil {
			return "", err
		}
		h.metrics.QueueEntriesCreated.Add(float64(result.Generated))
		return fmt.Sprintf("Queued %d prospects for %s", result.Generated, result.Date), nil
	})
}

// Logs handles GET /cron/logs
func (h *CronHandler) Logs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := h.runner.History(r.Context(), limit)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"logs":  logs,
		"total": len(logs),
	})
}

func (h *CronHandler) run(w http.ResponseWriter, r *http.Request, name string, job func(ctx context.Context) (string, error)) {
	message, err := h.runner.Run(r.Context(), name, job)
	if err != nil {
		respondAppError(h.logger, w, err)
		return
	}
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"job":     name,
		"message": message,
	})
}
