package supabase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"outreach-backend/application/ports"
	"outreach-backend/domain/contact"
	"outreach-backend/pkg/errors"
)

// ContactRepository stores contacts in the contacts table.
type ContactRepository struct {
	client *supabase.Client
}

func NewContactRepository(client *supabase.Client) *ContactRepository {
	return &ContactRepository{client: client}
}

var _ ports.ContactRepository = (*ContactRepository)(nil)

func (r *ContactRepository) List(ctx context.Context, filter ports.ContactFilter) ([]contact.Contact, error) {
	q := r.client.From(tableContacts).Select("*", "", false)
	if filter.Status != "" {
		q = q.Eq("status", string(filter.Status))
	}
	if filter.Priority != "" {
		q = q.Eq("priority", string(filter.Priority))
	}
	if filter.Search != "" {
		pattern := "*" + escapeSearch(filter.Search) + "*"
		q = q.Or(fmt.Sprintf(
			"name.ilike.%s,email.ilike.%s,company.ilike.%s,twitter_handle.ilike.%s",
			pattern, pattern, pattern, pattern,
		), "")
	}

	var out []contact.Contact
	if _, err := q.Order("created_at", &postgrest.OrderOpts{Ascending: false}).ExecuteTo(&out); err != nil {
		return nil, errors.NewDatabaseError("list contacts", err)
	}
	return out, nil
}

func (r *ContactRepository) GetByID(ctx context.Context, id string) (*contact.Contact, error) {
	var rows []contact.Contact
	_, err := r.client.From(tableContacts).
		Select("*", "", false).
		Eq("id", id).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, errors.NewDatabaseError("get contact", err)
	}
	if len(rows) == 0 {
		return nil, errors.NewNotFoundError("contact")
	}
	return &rows[0], nil
}

func (r *ContactRepository) Create(ctx context.Context, c contact.Contact) (*contact.Contact, error) {
	payload, err := writePayload(c)
	if err != nil {
		return nil, errors.NewDatabaseError("create contact", err)
	}

	var rows []contact.Contact
	_, err = r.client.From(tableContacts).
		Insert(payload, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, errors.NewDatabaseError("create contact", err)
	}
	if len(rows) == 0 {
		return nil, errors.NewDatabaseError("create contact", fmt.Errorf("no row returned"))
	}
	return &rows[0], nil
}

func (r *ContactRepository) Update(ctx context.Context, id string, c contact.Contact) (*contact.Contact, error) {
	payload, err := writePayload(c)
	if err != nil {
		return nil, errors.NewDatabaseError("update contact", err)
	}
	payload["updated_at"] = ts(time.Now())

	var rows []contact.Contact
	_, err = r.client.From(tableContacts).
		Update(payload, "representation", "").
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, errors.NewDatabaseError("update contact", err)
	}
	if len(rows) == 0 {
		return nil, errors.NewNotFoundError("contact")
	}
	return &rows[0], nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	_, _, err := r.client.From(tableContacts).
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return errors.NewDatabaseError("delete contact", err)
	}
	return nil
}

func (r *ContactRepository) BulkInsert(ctx context.Context, contacts []contact.Contact) (int, error) {
	if len(contacts) == 0 {
		return 0, nil
	}
	payloads := make([]map[string]interface{}, 0, len(contacts))
	for _, c := range contacts {
		p, err := writePayload(c)
		if err != nil {
			return 0, errors.NewDatabaseError("bulk insert contacts", err)
		}
		payloads = append(payloads, p)
	}

	var rows []contact.Contact
	_, err := r.client.From(tableContacts).
		Insert(payloads, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return 0, errors.NewDatabaseError("bulk insert contacts", err)
	}
	return len(rows), nil
}

func (r *ContactRepository) DueForFollowup(ctx context.Context, before time.Time) ([]contact.Contact, error) {
	var out []contact.Contact
	_, err := r.client.From(tableContacts).
		Select("*", "", false).
		Not("next_followup_date", "is", "null").
		Lte("next_followup_date", ts(before)).
		Neq("status", string(contact.StatusDeclined)).
		Order("next_followup_date", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&out)
	if err != nil {
		return nil, errors.NewDatabaseError("list followups", err)
	}
	return out, nil
}

func (r *ContactRepository) CreatedBetween(ctx context.Context, from, to time.Time) ([]contact.Contact, error) {
	var out []contact.Contact
	_, err := r.client.From(tableContacts).
		Select("*", "", false).
		Gte("created_at", ts(from)).
		Lt("created_at", ts(to)).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&out)
	if err != nil {
		return nil, errors.NewDatabaseError("list contacts by creation", err)
	}
	return out, nil
}

func (r *ContactRepository) CountByStatus(ctx context.Context) (map[contact.Status]int, error) {
	var rows []struct {
		Status contact.Status `json:"status"`
	}
	_, err := r.client.From(tableContacts).
		Select("status", "", false).
		ExecuteTo(&rows)
	if err != nil {
		return nil, errors.NewDatabaseError("count contacts by status", err)
	}

	out := make(map[contact.Status]int)
	for _, row := range rows {
		out[row.Status]++
	}
	return out, nil
}

func (r *ContactRepository) CountFollowupsDue(ctx context.Context, t time.Time) (int, error) {
	return r.count(func(q *postgrest.FilterBuilder) *postgrest.FilterBuilder {
		return q.Not("next_followup_date", "is", "null").
			Lte("next_followup_date", ts(t)).
			Neq("status", string(contact.StatusDeclined))
	})
}

func (r *ContactRepository) CountContactedBetween(ctx context.Context, from, to time.Time) (int, error) {
	return r.count(func(q *postgrest.FilterBuilder) *postgrest.FilterBuilder {
		return q.Gte("last_contact_date", ts(from)).Lt("last_contact_date", ts(to))
	})
}

func (r *ContactRepository) CountContacted(ctx context.Context) (int, error) {
	return r.count(func(q *postgrest.FilterBuilder) *postgrest.FilterBuilder {
		return q.Not("last_contact_date", "is", "null")
	})
}

func (r *ContactRepository) CountCreatedSince(ctx context.Context, t time.Time) (int, error) {
	return r.count(func(q *postgrest.FilterBuilder) *postgrest.FilterBuilder {
		return q.Gte("created_at", ts(t))
	})
}

func (r *ContactRepository) WithFollowerCounts(ctx context.Context) ([]contact.Contact, error) {
	var out []contact.Contact
	_, err := r.client.From(tableContacts).
		Select("*", "", false).
		Not("follower_count", "is", "null").
		ExecuteTo(&out)
	if err != nil {
		return nil, errors.NewDatabaseError("list contacts with followers", err)
	}
	return out, nil
}

func (r *ContactRepository) SetFollowerCountByName(ctx context.Context, name string, count int) (int, error) {
	payload := map[string]interface{}{
		"follower_count": count,
		"updated_at":     ts(time.Now()),
	}
	var rows []contact.Contact
	_, err := r.client.From(tableContacts).
		Update(payload, "representation", "").
		Ilike("name", name).
		ExecuteTo(&rows)
	if err != nil {
		return 0, errors.NewDatabaseError("update follower count", err)
	}
	return len(rows), nil
}

func (r *ContactRepository) count(narrow func(*postgrest.FilterBuilder) *postgrest.FilterBuilder) (int, error) {
	q := r.client.From(tableContacts).Select("id", "exact", true)
	_, count, err := narrow(q).Execute()
	if err != nil {
		return 0, errors.NewDatabaseError("count contacts", err)
	}
	return int(count), nil
}

// escapeSearch strips the characters that would break a PostgREST or()
// filter expression.
func escapeSearch(s string) string {
	return strings.NewReplacer(",", " ", "(", " ", ")", " ", ".", " ").Replace(s)
}
