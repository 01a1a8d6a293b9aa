package google

import (
	"context"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"outreach-backend/application/ports"
	"outreach-backend/pkg/errors"
	"outreach-backend/pkg/observability"
)

// CalendarAdapter implements ports.CalendarGateway on the Calendar API.
type CalendarAdapter struct {
	auth    *Auth
	metrics *observability.Collector
}

func NewCalendarAdapter(auth *Auth, metrics *observability.Collector) *CalendarAdapter {
	return &CalendarAdapter{auth: auth, metrics: metrics}
}

var _ ports.CalendarGateway = (*CalendarAdapter)(nil)

func (c *CalendarAdapter) Upcoming(ctx context.Context, days int, max int64) ([]ports.RemoteEvent, error) {
	ts, err := c.auth.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	srv, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, errors.NewExternalError("calendar", err)
	}

	now := time.Now()
	list, err := srv.Events.List("primary").
		TimeMin(now.Format(time.RFC3339)).
		TimeMax(now.AddDate(0, 0, days).Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(max).
		Context(ctx).
		Do()
	if err != nil {
		c.observe("error")
		return nil, errors.NewExternalError("calendar", err)
	}
	c.observe("ok")

	out := make([]ports.RemoteEvent, 0, len(list.Items))
	for _, item := range list.Items {
		if item.Status == "cancelled" {
			continue
		}
		ev := ports.RemoteEvent{
			ID:          item.Id,
			Summary:     item.Summary,
			Description: item.Description,
			Location:    item.Location,
			Status:      item.Status,
			HTMLLink:    item.HtmlLink,
		}
		ev.Start, ev.IsAllDay = eventTime(item.Start)
		ev.End, _ = eventTime(item.End)
		for _, att := range item.Attendees {
			if att.Email == "" {
				continue
			}
			ev.AttendeeEmails = append(ev.AttendeeEmails, att.Email)
			if att.Organizer {
				ev.Organizer = att.Email
			}
		}
		out = append(out, ev)
	}
	return out, nil
}

// eventTime resolves dateTime vs all-day date fields.
func eventTime(t *calendar.EventDateTime) (time.Time, bool) {
	if t == nil {
		return time.Time{}, false
	}
	if t.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, t.DateTime)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, false
	}
	if t.Date != "" {
		parsed, err := time.Parse("2006-01-02", t.Date)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Time{}, false
}

func (c *CalendarAdapter) observe(status string) {
	if c.metrics != nil {
		c.metrics.GoogleCalls.WithLabelValues("calendar", status).Inc()
	}
}
