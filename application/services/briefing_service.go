package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"outreach-backend/application/ports"
	"outreach-backend/domain/calendar"
	"outreach-backend/domain/contact"
	"outreach-backend/domain/email"
	"outreach-backend/pkg/errors"
	"outreach-backend/pkg/utils"
)

// SettingLastBriefing holds the most recent daily briefing.
const SettingLastBriefing = "last_daily_briefing"

// Briefing is the morning digest the cron job assembles.
type Briefing struct {
	Date           string               `json:"date"`
	GeneratedAt    time.Time            `json:"generatedAt"`
	NewContacts    []contact.Contact    `json:"newContacts,omitempty"`
	FollowupsDue   []contact.Contact    `json:"followupsDue,omitempty"`
	FlaggedEmails  []email.FlaggedEmail `json:"flaggedEmails,omitempty"`
	EventsToday    []calendar.Event     `json:"eventsToday,omitempty"`
	UpcomingEvents []calendar.Event     `json:"upcomingEvents,omitempty"`
	Summary        string               `json:"summary"`
}

// BriefingService assembles the daily digest from the last day's activity.
type BriefingService struct {
	contacts ports.ContactRepository
	flagged  ports.FlaggedEmailRepository
	events   ports.CalendarEventRepository
	settings ports.SettingsRepository
	logger   *zap.Logger
}

func NewBriefingService(
	contacts ports.ContactRepository,
	flagged ports.FlaggedEmailRepository,
	events ports.CalendarEventRepository,
	settings ports.SettingsRepository,
	logger *zap.Logger,
) *BriefingService {
	return &BriefingService{
		contacts: contacts,
		flagged:  flagged,
		events:   events,
		settings: settings,
		logger:   logger,
	}
}

// Generate builds the briefing for today and stores it under the settings
// key so the dashboard can re-read it without regenerating.
func (s *BriefingService) Generate(ctx context.Context) (*Briefing, error) {
	now := time.Now()
	startToday := utils.StartOfDay(now)
	startYesterday := startToday.AddDate(0, 0, -1)
	endToday := startToday.AddDate(0, 0, 1)

	b := &Briefing{
		Date:        now.Format(utils.DateLayout),
		GeneratedAt: now.UTC(),
	}

	newContacts, err := s.contacts.CreatedBetween(ctx, startYesterday, startToday)
	if err != nil {
		s.logger.Warn("Briefing: failed to load new contacts", zap.Error(err))
	} else {
		b.NewContacts = newContacts
	}

	followups, err := s.contacts.DueForFollowup(ctx, endToday)
	if err != nil {
		s.logger.Warn("Briefing: failed to load follow-ups", zap.Error(err))
	} else {
		b.FollowupsDue = followups
	}

	flagged, err := s.flagged.ReceivedSince(ctx, now.Add(-24*time.Hour), 10)
	if err != nil {
		s.logger.Warn("Briefing: failed to load flagged emails", zap.Error(err))
	} else {
		b.FlaggedEmails = flagged
	}

	today, err := s.events.ListBetween(ctx, startToday, endToday, 0)
	if err != nil {
		s.logger.Warn("Briefing: failed to load today's events", zap.Error(err))
	} else {
		b.EventsToday = today
	}

	upcoming, err := s.events.ListBetween(ctx, endToday, endToday.AddDate(0, 0, 7), 5)
	if err != nil {
		s.logger.Warn("Briefing: failed to load upcoming events", zap.Error(err))
	} else {
		b.UpcomingEvents = upcoming
	}

	b.Summary = composeSummary(b)

	if raw, err := json.Marshal(b); err == nil {
		if err := s.settings.Set(ctx, SettingLastBriefing, string(raw)); err != nil {
			s.logger.Warn("Failed to store briefing", zap.Error(err))
		}
	}

	return b, nil
}

// Last returns the most recently generated briefing, or nil when none has
// been stored yet.
func (s *BriefingService) Last(ctx context.Context) (*Briefing, error) {
	raw, err := s.settings.Get(ctx, SettingLastBriefing)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var b Briefing
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return nil, errors.NewInternalError("corrupt stored briefing").WithCause(err)
	}
	return &b, nil
}

func composeSummary(b *Briefing) string {
	var parts []string
	if n := len(b.NewContacts); n > 0 {
		parts = append(parts, fmt.Sprintf("%d new contact%s", n, plural(n)))
	}
	if n := len(b.FollowupsDue); n > 0 {
		parts = append(parts, fmt.Sprintf("%d follow-up%s due", n, plural(n)))
	}
	if n := len(b.FlaggedEmails); n > 0 {
		parts = append(parts, fmt.Sprintf("%d flagged email%s", n, plural(n)))
	}
	if n := len(b.EventsToday); n > 0 {
		parts = append(parts, fmt.Sprintf("%d meeting%s today", n, plural(n)))
	}
	if len(parts) == 0 {
		return "Nothing needs attention today."
	}
	return strings.Join(parts, ", ")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
