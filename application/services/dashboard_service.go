package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"outreach-backend/application/ports"
	"outreach-backend/domain/contact"
	"outreach-backend/domain/prospect"
	"outreach-backend/pkg/utils"
)

// DashboardStats is the aggregate view the dashboard renders.
type DashboardStats struct {
	Contacts struct {
		Total         int                    `json:"total"`
		ByStatus      map[contact.Status]int `json:"byStatus"`
		AddedThisWeek int                    `json:"addedThisWeek"`
	} `json:"contacts"`
	Outreach struct {
		Contacted      int     `json:"contacted"`
		ContactedToday int     `json:"contactedToday"`
		ResponseRate   float64 `json:"responseRate"`
	} `json:"outreach"`
	Followups struct {
		DueNow int `json:"dueNow"`
	} `json:"followups"`
	Emails struct {
		Unread         int `json:"unread"`
		ActionRequired int `json:"actionRequired"`
		FlaggedToday   int `json:"flaggedToday"`
	} `json:"emails"`
	Events struct {
		Today    int `json:"today"`
		Upcoming int `json:"upcoming"`
	} `json:"events"`
	Queue QueueCounts `json:"queue"`
}

// DashboardService aggregates counters across the stores.
type DashboardService struct {
	contacts ports.ContactRepository
	flagged  ports.FlaggedEmailRepository
	events   ports.CalendarEventRepository
	queue    ports.QueueRepository
	logger   *zap.Logger
}

func NewDashboardService(
	contacts ports.ContactRepository,
	flagged ports.FlaggedEmailRepository,
	events ports.CalendarEventRepository,
	queue ports.QueueRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		contacts: contacts,
		flagged:  flagged,
		events:   events,
		queue:    queue,
		logger:   logger,
	}
}

// Stats computes the dashboard aggregate. Individual counter failures are
// logged and zeroed rather than failing the whole response.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()
	startToday := utils.StartOfDay(now)
	endToday := startToday.AddDate(0, 0, 1)
	weekAgo := now.AddDate(0, 0, -7)

	stats := &DashboardStats{}

	byStatus, err := s.contacts.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats.Contacts.ByStatus = byStatus
	for _, n := range byStatus {
		stats.Contacts.Total += n
	}

	stats.Contacts.AddedThisWeek = s.count(ctx, "contacts added this week", func() (int, error) {
		return s.contacts.CountCreatedSince(ctx, weekAgo)
	})
	stats.Outreach.Contacted = s.count(ctx, "contacted total", func() (int, error) {
		return s.contacts.CountContacted(ctx)
	})
	stats.Outreach.ContactedToday = s.count(ctx, "contacted today", func() (int, error) {
		return s.contacts.CountContactedBetween(ctx, startToday, endToday)
	})
	stats.Followups.DueNow = s.count(ctx, "follow-ups due", func() (int, error) {
		return s.contacts.CountFollowupsDue(ctx, now)
	})
	stats.Emails.Unread = s.count(ctx, "unread emails", func() (int, error) {
		return s.flagged.CountUnread(ctx)
	})
	stats.Emails.ActionRequired = s.count(ctx, "action-required emails", func() (int, error) {
		return s.flagged.CountActionRequired(ctx)
	})
	stats.Emails.FlaggedToday = s.count(ctx, "emails flagged today", func() (int, error) {
		return s.flagged.CountReceivedSince(ctx, startToday)
	})
	stats.Events.Today = s.count(ctx, "events today", func() (int, error) {
		return s.events.CountBetween(ctx, startToday, endToday)
	})
	stats.Events.Upcoming = s.count(ctx, "upcoming events", func() (int, error) {
		return s.events.CountBetween(ctx, endToday, endToday.AddDate(0, 0, 7))
	})

	date := utils.Today()
	stats.Queue.Pending = s.count(ctx, "queue pending", func() (int, error) {
		return s.queue.CountForDate(ctx, date, prospect.QueueStatePending)
	})
	stats.Queue.Contacted = s.count(ctx, "queue contacted", func() (int, error) {
		return s.queue.CountForDate(ctx, date, prospect.QueueStateContacted)
	})
	stats.Queue.Skipped = s.count(ctx, "queue skipped", func() (int, error) {
		return s.queue.CountForDate(ctx, date, prospect.QueueStateSkipped)
	})
	stats.Queue.Total = stats.Queue.Pending + stats.Queue.Contacted + stats.Queue.Skipped

	// Response rate: of everyone contacted, who moved past the contacted
	// stage into a reply-driven status.
	responded := byStatus[contact.StatusResponded] + byStatus[contact.StatusInterested] +
		byStatus[contact.StatusAccepted] + byStatus[contact.StatusDeclined]
	if stats.Outreach.Contacted > 0 {
		stats.Outreach.ResponseRate = float64(responded) / float64(stats.Outreach.Contacted)
	}

	return stats, nil
}

// FollowerTiers buckets contacts with a recorded audience size and reports
// how each tier converts through the pipeline.
func (s *DashboardService) FollowerTiers(ctx context.Context) ([]contact.FollowerTierStat, error) {
	contacts, err := s.contacts.WithFollowerCounts(ctx)
	if err != nil {
		return nil, err
	}
	return contact.FollowerTierStats(contacts), nil
}

func (s *DashboardService) count(ctx context.Context, what string, fn func() (int, error)) int {
	n, err := fn()
	if err != nil {
		s.logger.Warn("Dashboard counter failed", zap.String("counter", what), zap.Error(err))
		return 0
	}
	return n
}
