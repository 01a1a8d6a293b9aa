// Package ports declares the persistence and gateway interfaces the
// application services depend on. Implementations live under
// infrastructure; tests substitute in-memory fakes.
package ports

import (
	"context"
	"time"

	"outreach-backend/domain/calendar"
	"outreach-backend/domain/contact"
	"outreach-backend/domain/email"
	"outreach-backend/domain/prospect"
)

// ContactFilter narrows contact listings.
type ContactFilter struct {
	Status   contact.Status
	Priority contact.Priority
	Search   string // matches name, email, twitter handle or company
}

// ContactRepository persists CRM contacts.
type ContactRepository interface {
	// List returns contacts matching the filter, newest first.
	List(ctx context.Context, filter ContactFilter) ([]contact.Contact, error)

	// GetByID retrieves a single contact.
	GetByID(ctx context.Context, id string) (*contact.Contact, error)

	// Create inserts a new contact and returns the stored row.
	Create(ctx context.Context, c contact.Contact) (*contact.Contact, error)

	// Update applies the given fields to an existing contact.
	Update(ctx context.Context, id string, c contact.Contact) (*contact.Contact, error)

	// Delete removes a contact.
	Delete(ctx context.Context, id string) error

	// BulkInsert inserts many contacts at once and returns how many stuck.
	BulkInsert(ctx context.Context, contacts []contact.Contact) (int, error)

	// DueForFollowup returns non-declined contacts whose follow-up date is
	// at or before the given time.
	DueForFollowup(ctx context.Context, before time.Time) ([]contact.Contact, error)

	// CreatedBetween returns contacts created in [from, to).
	CreatedBetween(ctx context.Context, from, to time.Time) ([]contact.Contact, error)

	// CountByStatus returns how many contacts sit in each pipeline status.
	CountByStatus(ctx context.Context) (map[contact.Status]int, error)

	// CountFollowupsDue counts contacts with a follow-up at or before t.
	CountFollowupsDue(ctx context.Context, t time.Time) (int, error)

	// CountContactedBetween counts contacts whose last contact falls in [from, to].
	CountContactedBetween(ctx context.Context, from, to time.Time) (int, error)

	// CountContacted counts contacts that have ever been reached out to.
	CountContacted(ctx context.Context) (int, error)

	// CountCreatedSince counts contacts created at or after t.
	CountCreatedSince(ctx context.Context, t time.Time) (int, error)

	// WithFollowerCounts returns contacts that have a follower count recorded.
	WithFollowerCounts(ctx context.Context) ([]contact.Contact, error)

	// SetFollowerCountByName writes the follower count onto every contact
	// whose name matches case-insensitively and reports how many rows changed.
	SetFollowerCountByName(ctx context.Context, name string, count int) (int, error)
}

// CommunicationRepository records touch points with contacts.
type CommunicationRepository interface {
	Create(ctx context.Context, comm contact.Communication) error
	ListByContact(ctx context.Context, contactID string) ([]contact.Communication, error)
}

// FlaggedEmailRepository persists emails the scanner surfaced.
type FlaggedEmailRepository interface {
	Create(ctx context.Context, fe email.FlaggedEmail) (*email.FlaggedEmail, error)
	List(ctx context.Context, unreadOnly bool, limit int) ([]email.FlaggedEmail, error)
	GetByGmailID(ctx context.Context, gmailMessageID string) (*email.FlaggedEmail, error)
	MarkRead(ctx context.Context, id string, read bool) (*email.FlaggedEmail, error)
	Delete(ctx context.Context, id string) error
	ReceivedSince(ctx context.Context, t time.Time, limit int) ([]email.FlaggedEmail, error)
	CountUnread(ctx context.Context) (int, error)
	CountActionRequired(ctx context.Context) (int, error)
	CountReceivedSince(ctx context.Context, t time.Time) (int, error)
}

// CalendarEventRepository mirrors Google Calendar events.
type CalendarEventRepository interface {
	GetByGoogleID(ctx context.Context, googleEventID string) (*calendar.Event, error)
	Upsert(ctx context.Context, ev calendar.Event) (*calendar.Event, error)
	ListBetween(ctx context.Context, from, to time.Time, limit int) ([]calendar.Event, error)
	CountBetween(ctx context.Context, from, to time.Time) (int, error)
}

// ProspectRepository reads discovered leads.
type ProspectRepository interface {
	// ListFresh returns prospects in the new or queued state ordered by
	// confidence then discovery recency, up to limit.
	ListFresh(ctx context.Context, limit int) ([]prospect.Prospect, error)

	// UpdateStatus moves a prospect to a new lifecycle status.
	UpdateStatus(ctx context.Context, id, status string) error
}

// QueueRepository persists the daily outreach queue.
type QueueRepository interface {
	ExistsForDate(ctx context.Context, date string) (bool, error)
	DeleteForDate(ctx context.Context, date string) error
	Insert(ctx context.Context, entries []prospect.QueueEntry) error
	ListForDate(ctx context.Context, date, state string) ([]prospect.QueueEntry, error)
	SetState(ctx context.Context, id, state string) (*prospect.QueueEntry, error)
	CountForDate(ctx context.Context, date, state string) (int, error)
}

// BlocklistRepository persists do-not-contact entries.
type BlocklistRepository interface {
	List(ctx context.Context) ([]prospect.BlocklistEntry, error)
	Create(ctx context.Context, entry prospect.BlocklistEntry) (*prospect.BlocklistEntry, error)
	Delete(ctx context.Context, id string) error
}

// SettingsRepository is the key/value store used for OAuth tokens, sheet
// import configuration and job snapshots.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// AutomationLogRepository records scheduled job runs.
type AutomationLogRepository interface {
	Insert(ctx context.Context, log AutomationLog) error
	ListRecent(ctx context.Context, limit int) ([]AutomationLog, error)
}

// AutomationLog is one row in the job history.
type AutomationLog struct {
	ID              string    `json:"id,omitempty"`
	JobName         string    `json:"job_name"`
	Status          string    `json:"status"` // running, success, failed
	Message         string    `json:"message,omitempty"`
	ExecutionTimeMS *int64    `json:"execution_time_ms,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
}
