package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"outreach-backend/application/ports"
	"outreach-backend/domain/calendar"
	"outreach-backend/domain/contact"
	"outreach-backend/domain/email"
	"outreach-backend/domain/prospect"
	"outreach-backend/pkg/errors"
)

// In-memory fakes for the ports interfaces. They keep just enough behavior
// for the service tests: stable IDs, simple filtering, no concurrency.

type fakeContactRepo struct {
	contacts []contact.Contact
	nextID   int
}

func (r *fakeContactRepo) assignID() string {
	r.nextID++
	return fmt.Sprintf("c-%d", r.nextID)
}

func (r *fakeContactRepo) List(_ context.Context, filter ports.ContactFilter) ([]contact.Contact, error) {
	var out []contact.Contact
	for _, c := range r.contacts {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && c.Priority != filter.Priority {
			continue
		}
		if filter.Search != "" {
			q := strings.ToLower(filter.Search)
			hay := strings.ToLower(c.Name + " " + c.Email + " " + c.Company)
			if !strings.Contains(hay, q) {
				continue
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeContactRepo) GetByID(_ context.Context, id string) (*contact.Contact, error) {
	for i := range r.contacts {
		if r.contacts[i].ID == id {
			c := r.contacts[i]
			return &c, nil
		}
	}
	return nil, errors.NewNotFoundError("contact")
}

func (r *fakeContactRepo) Create(_ context.Context, c contact.Contact) (*contact.Contact, error) {
	if c.ID == "" {
		c.ID = r.assignID()
	}
	c.CreatedAt = time.Now()
	r.contacts = append(r.contacts, c)
	return &c, nil
}

func (r *fakeContactRepo) Update(_ context.Context, id string, patch contact.Contact) (*contact.Contact, error) {
	for i := range r.contacts {
		if r.contacts[i].ID != id {
			continue
		}
		patch.ID = id
		if patch.Name == "" {
			patch.Name = r.contacts[i].Name
		}
		if patch.LastContactDate == nil {
			patch.LastContactDate = r.contacts[i].LastContactDate
		}
		r.contacts[i] = patch
		out := patch
		return &out, nil
	}
	return nil, errors.NewNotFoundError("contact")
}

func (r *fakeContactRepo) Delete(_ context.Context, id string) error {
	for i := range r.contacts {
		if r.contacts[i].ID == id {
			r.contacts = append(r.contacts[:i], r.contacts[i+1:]...)
			return nil
		}
	}
	return errors.NewNotFoundError("contact")
}

func (r *fakeContactRepo) BulkInsert(ctx context.Context, contacts []contact.Contact) (int, error) {
	for _, c := range contacts {
		if _, err := r.Create(ctx, c); err != nil {
			return 0, err
		}
	}
	return len(contacts), nil
}

func (r *fakeContactRepo) DueForFollowup(_ context.Context, before time.Time) ([]contact.Contact, error) {
	var out []contact.Contact
	for _, c := range r.contacts {
		if c.Status == contact.StatusDeclined || c.NextFollowupDate == nil {
			continue
		}
		if !c.NextFollowupDate.After(before) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeContactRepo) CreatedBetween(_ context.Context, from, to time.Time) ([]contact.Contact, error) {
	var out []contact.Contact
	for _, c := range r.contacts {
		if !c.CreatedAt.Before(from) && c.CreatedAt.Before(to) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeContactRepo) CountByStatus(_ context.Context) (map[contact.Status]int, error) {
	out := make(map[contact.Status]int)
	for _, c := range r.contacts {
		out[c.Status]++
	}
	return out, nil
}

func (r *fakeContactRepo) CountFollowupsDue(ctx context.Context, t time.Time) (int, error) {
	due, _ := r.DueForFollowup(ctx, t)
	return len(due), nil
}

func (r *fakeContactRepo) CountContactedBetween(_ context.Context, from, to time.Time) (int, error) {
	n := 0
	for _, c := range r.contacts {
		if c.LastContactDate != nil && !c.LastContactDate.Before(from) && c.LastContactDate.Before(to) {
			n++
		}
	}
	return n, nil
}

func (r *fakeContactRepo) CountContacted(_ context.Context) (int, error) {
	n := 0
	for _, c := range r.contacts {
		if c.LastContactDate != nil {
			n++
		}
	}
	return n, nil
}

func (r *fakeContactRepo) CountCreatedSince(_ context.Context, t time.Time) (int, error) {
	n := 0
	for _, c := range r.contacts {
		if !c.CreatedAt.Before(t) {
			n++
		}
	}
	return n, nil
}

func (r *fakeContactRepo) WithFollowerCounts(_ context.Context) ([]contact.Contact, error) {
	var out []contact.Contact
	for _, c := range r.contacts {
		if c.FollowerCount != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeContactRepo) SetFollowerCountByName(_ context.Context, name string, count int) (int, error) {
	n := 0
	for i := range r.contacts {
		if strings.EqualFold(r.contacts[i].Name, name) {
			v := count
			r.contacts[i].FollowerCount = &v
			n++
		}
	}
	return n, nil
}

type fakeCommRepo struct {
	comms []contact.Communication
}

func (r *fakeCommRepo) Create(_ context.Context, comm contact.Communication) error {
	r.comms = append(r.comms, comm)
	return nil
}

func (r *fakeCommRepo) ListByContact(_ context.Context, contactID string) ([]contact.Communication, error) {
	var out []contact.Communication
	for _, c := range r.comms {
		if c.ContactID == contactID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeFlaggedRepo struct {
	flags  []email.FlaggedEmail
	nextID int
}

func (r *fakeFlaggedRepo) Create(_ context.Context, fe email.FlaggedEmail) (*email.FlaggedEmail, error) {
	r.nextID++
	fe.ID = fmt.Sprintf("f-%d", r.nextID)
	r.flags = append(r.flags, fe)
	return &fe, nil
}

func (r *fakeFlaggedRepo) List(_ context.Context, unreadOnly bool, limit int) ([]email.FlaggedEmail, error) {
	var out []email.FlaggedEmail
	for _, f := range r.flags {
		if unreadOnly && f.IsRead {
			continue
		}
		out = append(out, f)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeFlaggedRepo) GetByGmailID(_ context.Context, gmailMessageID string) (*email.FlaggedEmail, error) {
	for i := range r.flags {
		if r.flags[i].GmailMessageID == gmailMessageID {
			f := r.flags[i]
			return &f, nil
		}
	}
	return nil, nil
}

func (r *fakeFlaggedRepo) MarkRead(_ context.Context, id string, read bool) (*email.FlaggedEmail, error) {
	for i := range r.flags {
		if r.flags[i].ID == id {
			r.flags[i].IsRead = read
			f := r.flags[i]
			return &f, nil
		}
	}
	return nil, errors.NewNotFoundError("flagged email")
}

func (r *fakeFlaggedRepo) Delete(_ context.Context, id string) error {
	for i := range r.flags {
		if r.flags[i].ID == id {
			r.flags = append(r.flags[:i], r.flags[i+1:]...)
			return nil
		}
	}
	return errors.NewNotFoundError("flagged email")
}

func (r *fakeFlaggedRepo) ReceivedSince(_ context.Context, t time.Time, limit int) ([]email.FlaggedEmail, error) {
	var out []email.FlaggedEmail
	for _, f := range r.flags {
		if !f.ReceivedAt.Before(t) {
			out = append(out, f)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeFlaggedRepo) CountUnread(_ context.Context) (int, error) {
	n := 0
	for _, f := range r.flags {
		if !f.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *fakeFlaggedRepo) CountActionRequired(_ context.Context) (int, error) {
	n := 0
	for _, f := range r.flags {
		if f.ActionRequired && !f.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *fakeFlaggedRepo) CountReceivedSince(_ context.Context, t time.Time) (int, error) {
	out, _ := r.ReceivedSince(context.Background(), t, 0)
	return len(out), nil
}

type fakeEventRepo struct {
	events []calendar.Event
	nextID int
}

func (r *fakeEventRepo) GetByGoogleID(_ context.Context, googleEventID string) (*calendar.Event, error) {
	for i := range r.events {
		if r.events[i].GoogleEventID == googleEventID {
			ev := r.events[i]
			return &ev, nil
		}
	}
	return nil, nil
}

func (r *fakeEventRepo) Upsert(ctx context.Context, ev calendar.Event) (*calendar.Event, error) {
	for i := range r.events {
		if r.events[i].GoogleEventID == ev.GoogleEventID {
			ev.ID = r.events[i].ID
			r.events[i] = ev
			out := ev
			return &out, nil
		}
	}
	r.nextID++
	ev.ID = fmt.Sprintf("e-%d", r.nextID)
	r.events = append(r.events, ev)
	return &ev, nil
}

func (r *fakeEventRepo) ListBetween(_ context.Context, from, to time.Time, limit int) ([]calendar.Event, error) {
	var out []calendar.Event
	for _, ev := range r.events {
		if !ev.StartTime.Before(from) && ev.StartTime.Before(to) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeEventRepo) CountBetween(ctx context.Context, from, to time.Time) (int, error) {
	out, _ := r.ListBetween(ctx, from, to, 0)
	return len(out), nil
}

type fakeProspectRepo struct {
	prospects []prospect.Prospect
	statuses  map[string]string
}

func (r *fakeProspectRepo) ListFresh(_ context.Context, limit int) ([]prospect.Prospect, error) {
	out := r.prospects
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeProspectRepo) UpdateStatus(_ context.Context, id, status string) error {
	if r.statuses == nil {
		r.statuses = make(map[string]string)
	}
	r.statuses[id] = status
	return nil
}

type fakeQueueRepo struct {
	entries []prospect.QueueEntry
	nextID  int
}

func (r *fakeQueueRepo) ExistsForDate(_ context.Context, date string) (bool, error) {
	for _, e := range r.entries {
		if e.QueueDate == date {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeQueueRepo) DeleteForDate(_ context.Context, date string) error {
	var kept []prospect.QueueEntry
	for _, e := range r.entries {
		if e.QueueDate != date {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

func (r *fakeQueueRepo) Insert(_ context.Context, entries []prospect.QueueEntry) error {
	for _, e := range entries {
		r.nextID++
		e.ID = fmt.Sprintf("q-%d", r.nextID)
		r.entries = append(r.entries, e)
	}
	return nil
}

func (r *fakeQueueRepo) ListForDate(_ context.Context, date, state string) ([]prospect.QueueEntry, error) {
	var out []prospect.QueueEntry
	for _, e := range r.entries {
		if e.QueueDate != date {
			continue
		}
		if state != "" && e.State != state {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeQueueRepo) SetState(_ context.Context, id, state string) (*prospect.QueueEntry, error) {
	for i := range r.entries {
		if r.entries[i].ID == id {
			r.entries[i].State = state
			e := r.entries[i]
			return &e, nil
		}
	}
	return nil, errors.NewNotFoundError("queue entry")
}

func (r *fakeQueueRepo) CountForDate(ctx context.Context, date, state string) (int, error) {
	out, _ := r.ListForDate(ctx, date, state)
	return len(out), nil
}

type fakeBlocklistRepo struct {
	entries []prospect.BlocklistEntry
}

func (r *fakeBlocklistRepo) List(_ context.Context) ([]prospect.BlocklistEntry, error) {
	return r.entries, nil
}

func (r *fakeBlocklistRepo) Create(_ context.Context, e prospect.BlocklistEntry) (*prospect.BlocklistEntry, error) {
	r.entries = append(r.entries, e)
	return &e, nil
}

func (r *fakeBlocklistRepo) Delete(_ context.Context, id string) error {
	return nil
}

type fakeSettingsRepo struct {
	values map[string]string
}

func (r *fakeSettingsRepo) Get(_ context.Context, key string) (string, error) {
	if v, ok := r.values[key]; ok {
		return v, nil
	}
	return "", errors.NewNotFoundError("setting")
}

func (r *fakeSettingsRepo) Set(_ context.Context, key, value string) error {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	r.values[key] = value
	return nil
}

func (r *fakeSettingsRepo) Delete(_ context.Context, key string) error {
	delete(r.values, key)
	return nil
}

type fakeLogRepo struct {
	logs []ports.AutomationLog
}

func (r *fakeLogRepo) Insert(_ context.Context, log ports.AutomationLog) error {
	r.logs = append(r.logs, log)
	return nil
}

func (r *fakeLogRepo) ListRecent(_ context.Context, limit int) ([]ports.AutomationLog, error) {
	out := r.logs
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type fakeGmail struct {
	messages   []ports.InboxMessage
	markedRead []string
}

func (g *fakeGmail) RecentMessages(_ context.Context, max int64) ([]ports.InboxMessage, error) {
	out := g.messages
	if max > 0 && int64(len(out)) > max {
		out = out[:max]
	}
	return out, nil
}

func (g *fakeGmail) MarkRead(_ context.Context, messageID string) error {
	g.markedRead = append(g.markedRead, messageID)
	return nil
}

func (g *fakeGmail) Watch(_ context.Context, topicName string) error { return nil }
func (g *fakeGmail) StopWatch(_ context.Context) error               { return nil }

type fakeCalendarGateway struct {
	events []ports.RemoteEvent
}

func (g *fakeCalendarGateway) Upcoming(_ context.Context, days int, max int64) ([]ports.RemoteEvent, error) {
	return g.events, nil
}

type fakeSheets struct {
	rows     [][]string
	appended [][]string
}

func (g *fakeSheets) Read(_ context.Context, spreadsheetID, readRange string) ([][]string, error) {
	return g.rows, nil
}

func (g *fakeSheets) Metadata(_ context.Context, spreadsheetID string) (*ports.SheetMetadata, error) {
	return &ports.SheetMetadata{Title: "Test Sheet", Sheets: []ports.SheetTab{{Title: "Contacts"}}}, nil
}

func (g *fakeSheets) Append(_ context.Context, spreadsheetID, writeRange string, values [][]string) error {
	g.appended = append(g.appended, values...)
	return nil
}
