package supabase

import (
	"context"
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"outreach-backend/application/ports"
	"outreach-backend/domain/calendar"
	"outreach-backend/pkg/errors"
)

// CalendarEventRepository mirrors Google Calendar events in the
// calendar_events table, keyed by google_event_id.
type CalendarEventRepository struct {
	client *supabase.Client
}

func NewCalendarEventRepository(client *supabase.Client) *CalendarEventRepository {
	return &CalendarEventRepository{client: client}
}

var _ ports.CalendarEventRepository = (*CalendarEventRepository)(nil)

func (r *CalendarEventRepository) GetByGoogleID(ctx context.Context, googleEventID string) (*calendar.Event, error) {
	var rows []calendar.Event
	_, err := r.client.From(tableCalendarEvents).
		Select("*", "", false).
		Eq("google_event_id", googleEventID).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, errors.NewDatabaseError("get calendar event", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *CalendarEventRepository) Upsert(ctx context.Context, ev calendar.Event) (*calendar.Event, error) {
	payload, err := writePayload(ev)
	if err != nil {
		return nil, errors.NewDatabaseError("upsert calendar event", err)
	}
	payload["updated_at"] = ts(time.Now())

	var rows []calendar.Event
	_, err = r.client.From(tableCalendarEvents).
		Insert(payload, true, "google_event_id", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, errors.NewDatabaseError("upsert calendar event", err)
	}
	if len(rows) == 0 {
		return nil, errors.NewDatabaseError("upsert calendar event", fmt.Errorf("no row returned"))
	}
	return &rows[0], nil
}

func (r *CalendarEventRepository) ListBetween(ctx context.Context, from, to time.Time, limit int) ([]calendar.Event, error) {
	q := r.client.From(tableCalendarEvents).
		Select("*", "", false).
		Gte("start_time", ts(from)).
		Lt("start_time", ts(to))
	if limit > 0 {
		q = q.Limit(limit, "")
	}

	var out []calendar.Event
	if _, err := q.Order("start_time", &postgrest.OrderOpts{Ascending: true}).ExecuteTo(&out); err != nil {
		return nil, errors.NewDatabaseError("list calendar events", err)
	}
	return out, nil
}

func (r *CalendarEventRepository) CountBetween(ctx context.Context, from, to time.Time) (int, error) {
	_, count, err := r.client.From(tableCalendarEvents).
		Select("id", "exact", true).
		Gte("start_time", ts(from)).
		Lt("start_time", ts(to)).
		Execute()
	if err != nil {
		return 0, errors.NewDatabaseError("count calendar events", err)
	}
	return int(count), nil
}
