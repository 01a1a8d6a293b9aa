package supabase

import (
	"context"
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"outreach-backend/application/ports"
	"outreach-backend/domain/email"
	"outreach-backend/pkg/errors"
)

// FlaggedEmailRepository stores scanner results in the flagged_emails table.
type FlaggedEmailRepository struct {
	client *supabase.Client
}

func NewFlaggedEmailRepository(client *supabase.Client) *FlaggedEmailRepository {
	return &FlaggedEmailRepository{client: client}
}

var _ ports.FlaggedEmailRepository = (*FlaggedEmailRepository)(nil)

func (r *FlaggedEmailRepository) Create(ctx context.Context, fe email.FlaggedEmail) (*email.FlaggedEmail, error) {
	payload, err := writePayload(fe)
	if err != nil {
		return nil, errors.NewDatabaseError("create flagged email", err)
	}

	var rows []email.FlaggedEmail
	_, err = r.client.From(tableFlaggedEmails).
		Insert(payload, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, errors.NewDatabaseError("create flagged email", err)
	}
	if len(rows) == 0 {
		return nil, errors.NewDatabaseError("create flagged email", fmt.Errorf("no row returned"))
	}
	return &rows[0], nil
}

func (r *FlaggedEmailRepository) List(ctx context.Context, unreadOnly bool, limit int) ([]email.FlaggedEmail, error) {
	q := r.client.From(tableFlaggedEmails).Select("*", "", false)
	if unreadOnly {
		q = q.Eq("is_read", "false")
	}
	if limit > 0 {
		q = q.Limit(limit, "")
	}

	var out []email.FlaggedEmail
	if _, err := q.Order("received_at", &postgrest.OrderOpts{Ascending: false}).ExecuteTo(&out); err != nil {
		return nil, errors.NewDatabaseError("list flagged emails", err)
	}
	return out, nil
}

func (r *FlaggedEmailRepository) GetByGmailID(ctx context.Context, gmailMessageID string) (*email.FlaggedEmail, error) {
	var rows []email.FlaggedEmail
	_, err := r.client.From(tableFlaggedEmails).
		Select("*", "", false).
		Eq("gmail_message_id", gmailMessageID).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, errors.NewDatabaseError("get flagged email", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *FlaggedEmailRepository) MarkRead(ctx context.Context, id string, read bool) (*email.FlaggedEmail, error) {
	var rows []email.FlaggedEmail
	_, err := r.client.From(tableFlaggedEmails).
		Update(map[string]interface{}{"is_read": read}, "representation", "").
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, errors.NewDatabaseError("mark flagged email read", err)
	}
	if len(rows) == 0 {
		return nil, errors.NewNotFoundError("flagged email")
	}
	return &rows[0], nil
}

func (r *FlaggedEmailRepository) Delete(ctx context.Context, id string) error {
	_, _, err := r.client.From(tableFlaggedEmails).
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return errors.NewDatabaseError("delete flagged email", err)
	}
	return nil
}

func (r *FlaggedEmailRepository) ReceivedSince(ctx context.Context, t time.Time, limit int) ([]email.FlaggedEmail, error) {
	q := r.client.From(tableFlaggedEmails).
		Select("*", "", false).
		Gte("received_at", ts(t))
	if limit > 0 {
		q = q.Limit(limit, "")
	}

	var out []email.FlaggedEmail
	if _, err := q.Order("received_at", &postgrest.OrderOpts{Ascending: false}).ExecuteTo(&out); err != nil {
		return nil, errors.NewDatabaseError("list recent flagged emails", err)
	}
	return out, nil
}

func (r *FlaggedEmailRepository) CountUnread(ctx context.Context) (int, error) {
	return r.count(func(q *postgrest.FilterBuilder) *postgrest.FilterBuilder {
		return q.Eq("is_read", "false")
	})
}

func (r *FlaggedEmailRepository) CountActionRequired(ctx context.Context) (int, error) {
	return r.count(func(q *postgrest.FilterBuilder) *postgrest.FilterBuilder {
		return q.Eq("action_required", "true").Eq("is_read", "false")
	})
}

func (r *FlaggedEmailRepository) CountReceivedSince(ctx context.Context, t time.Time) (int, error) {
	return r.count(func(q *postgrest.FilterBuilder) *postgrest.FilterBuilder {
		return q.Gte("received_at", ts(t))
	})
}

func (r *FlaggedEmailRepository) count(narrow func(*postgrest.FilterBuilder) *postgrest.FilterBuilder) (int, error) {
	q := r.client.From(tableFlaggedEmails).Select("id", "exact", true)
	_, count, err := narrow(q).Execute()
	if err != nil {
		return 0, errors.NewDatabaseError("count flagged emails", err)
	}
	return int(count), nil
}
