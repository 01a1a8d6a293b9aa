package supabase

import (
	"context"
	"time"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"outreach-backend/application/ports"
	"outreach-backend/domain/prospect"
	"outreach-backend/pkg/errors"
)

// QueueRepository stores the daily outreach queue in the daily_queue table.
type QueueRepository struct {
	client *supabase.Client
}

func NewQueueRepository(client *supabase.Client) *QueueRepository {
	return &QueueRepository{client: client}
}

var _ ports.QueueRepository = (*QueueRepository)(nil)

func (r *QueueRepository) ExistsForDate(ctx context.Context, date string) (bool, error) {
	_, count, err := r.client.From(tableDailyQueue).
		Select("id", "exact", true).
		Eq("queue_date", date).
		Execute()
	if err != nil {
		return false, errors.NewDatabaseError("check queue", err)
	}
	return count > 0, nil
}

func (r *QueueRepository) DeleteForDate(ctx context.Context, date string) error {
	_, _, err := r.client.From(tableDailyQueue).
		Delete("", "").
		Eq("queue_date", date).
		Execute()
	if err != nil {
		return errors.NewDatabaseError("delete queue", err)
	}
	return nil
}

func (r *QueueRepository) Insert(ctx context.Context, entries []prospect.QueueEntry) error {
	if len(entries) == 0 {
		return nil
	}
	payloads := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		p, err := writePayload(e)
		if err != nil {
			return errors.NewDatabaseError("insert queue entries", err)
		}
		delete(p, "added_at")
		payloads = append(payloads, p)
	}

	_, _, err := r.client.From(tableDailyQueue).
		Insert(payloads, false, "", "minimal", "").
		Execute()
	if err != nil {
		return errors.NewDatabaseError("insert queue entries", err)
	}
	return nil
}

func (r *QueueRepository) ListForDate(ctx context.Context, date, state string) ([]prospect.QueueEntry, error) {
	q := r.client.From(tableDailyQueue).
		Select("*", "", false).
		Eq("queue_date", date)
	if state != "" {
		q = q.Eq("state", state)
	}

	var out []prospect.QueueEntry
	if _, err := q.Order("added_at", &postgrest.OrderOpts{Ascending: true}).ExecuteTo(&out); err != nil {
		return nil, errors.NewDatabaseError("list queue", err)
	}
	return out, nil
}

func (r *QueueRepository) SetState(ctx context.Context, id, state string) (*prospect.QueueEntry, error) {
	payload := map[string]interface{}{
		"state":      state,
		"updated_at": ts(time.Now()),
	}

	var rows []prospect.QueueEntry
	_, err := r.client.From(tableDailyQueue).
		Update(payload, "representation", "").
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, errors.NewDatabaseError("update queue entry", err)
	}
	if len(rows) == 0 {
		return nil, errors.NewNotFoundError("queue entry")
	}
	return &rows[0], nil
}

func (r *QueueRepository) CountForDate(ctx context.Context, date, state string) (int, error) {
	q := r.client.From(tableDailyQueue).
		Select("id", "exact", true).
		Eq("queue_date", date)
	if state != "" {
		q = q.Eq("state", state)
	}
	_, count, err := q.Execute()
	if err != nil {
		return 0, errors.NewDatabaseError("count queue", err)
	}
	return int(count), nil
}
