package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"outreach-backend/application/ports"
	"outreach-backend/domain/calendar"
	"outreach-backend/domain/contact"
)

// SyncWindowDays is how far ahead the calendar sync looks.
const SyncWindowDays = 30

// CalendarSyncResult summarizes one sync pass.
type CalendarSyncResult struct {
	Fetched int `json:"fetched"`
	Synced  int `json:"synced"`
	Linked  int `json:"linked"`
	Skipped int `json:"skipped"`
}

// EventWithContacts pairs a stored event with the contacts linked to it.
type EventWithContacts struct {
	calendar.Event
	Contacts   []ContactSummary `json:"contacts,omitempty"`
	StartsSoon bool             `json:"startsSoon,omitempty"`
	InProgress bool             `json:"inProgress,omitempty"`
}

// ContactSummary is the slice of a contact event listings embed.
type ContactSummary struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Email    string           `json:"email,omitempty"`
	Company  string           `json:"company,omitempty"`
	Priority contact.Priority `json:"priority,omitempty"`
}

// CalendarService mirrors upcoming Google Calendar events locally and links
// them to known contacts by attendee email.
type CalendarService struct {
	events   ports.CalendarEventRepository
	contacts ports.ContactRepository
	comms    ports.CommunicationRepository
	gateway  ports.CalendarGateway
	logger   *zap.Logger
}

func NewCalendarService(
	events ports.CalendarEventRepository,
	contacts ports.ContactRepository,
	comms ports.CommunicationRepository,
	gateway ports.CalendarGateway,
	logger *zap.Logger,
) *CalendarService {
	return &CalendarService{
		events:   events,
		contacts: contacts,
		comms:    comms,
		gateway:  gateway,
		logger:   logger,
	}
}

// Sync pulls the next SyncWindowDays of events and upserts them. A meeting
// communication is recorded for each contact the first time their event is
// seen.
func (s *CalendarService) Sync(ctx context.Context) (*CalendarSyncResult, error) {
	contacts, err := s.contacts.List(ctx, ports.ContactFilter{})
	if err != nil {
		return nil, err
	}

	remote, err := s.gateway.Upcoming(ctx, SyncWindowDays, 50)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := &CalendarSyncResult{Fetched: len(remote)}
	for _, ev := range remote {
		relevance := calendar.Relevant(ev.Summary, ev.Description, ev.AttendeeEmails, contacts)
		if !relevance.IsRelated {
			result.Skipped++
			continue
		}

		_, ids := calendar.LinkToContacts(ev.AttendeeEmails, contacts)

		existing, err := s.events.GetByGoogleID(ctx, ev.ID)
		if err != nil {
			s.logger.Warn("Failed to look up event",
				zap.String("googleEventID", ev.ID),
				zap.Error(err),
			)
			continue
		}

		stored := calendar.Event{
			GoogleEventID:     ev.ID,
			Summary:           ev.Summary,
			Description:       ev.Description,
			Location:          ev.Location,
			StartTime:         ev.Start,
			EndTime:           ev.End,
			IsAllDay:          ev.IsAllDay,
			MeetingURL:        calendar.MeetingURL(ev.Description),
			PriorityScore:     calendar.PriorityScore(ev.Summary, ev.Description, ev.AttendeeEmails, contacts, ev.Start, now),
			RelevanceReason:   relevance.Reason,
			RelatedContactIDs: ids,
		}
		if _, err := s.events.Upsert(ctx, stored); err != nil {
			s.logger.Warn("Failed to upsert event",
				zap.String("googleEventID", ev.ID),
				zap.Error(err),
			)
			continue
		}
		result.Synced++
		result.Linked += len(ids)

		// Record meeting communications only on first sight so reruns
		// stay idempotent.
		if existing == nil {
			for _, contactID := range ids {
				s.recordMeeting(ctx, contactID, ev)
			}
		}
	}

	return result, nil
}

func (s *CalendarService) recordMeeting(ctx context.Context, contactID string, ev ports.RemoteEvent) {
	comm := contact.Communication{
		ContactID:       contactID,
		Type:            "meeting",
		CalendarEventID: ev.ID,
		Subject:         ev.Summary,
		ScheduledFor:    &ev.Start,
	}
	if err := s.comms.Create(ctx, comm); err != nil {
		s.logger.Warn("Failed to record meeting communication",
			zap.String("contactID", contactID),
			zap.Error(err),
		)
	}
}

// Upcoming lists stored events starting within the next days, each with its
// linked contact summaries resolved.
func (s *CalendarService) Upcoming(ctx context.Context, days, limit int) ([]EventWithContacts, error) {
	now := time.Now()
	events, err := s.events.ListBetween(ctx, now, now.AddDate(0, 0, days), limit)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}

	contacts, err := s.contacts.List(ctx, ports.ContactFilter{})
	if err != nil {
		return nil, err
	}
	byID := make(map[string]contact.Contact, len(contacts))
	for _, c := range contacts {
		byID[c.ID] = c
	}

	out := make([]EventWithContacts, len(events))
	for i, ev := range events {
		item := EventWithContacts{
			Event:      ev,
			StartsSoon: calendar.StartsSoon(ev.StartTime, now, 24*time.Hour),
			InProgress: calendar.InProgress(ev.StartTime, ev.EndTime, now),
		}
		for _, id := range ev.RelatedContactIDs {
			c, ok := byID[id]
			if !ok {
				continue
			}
			item.Contacts = append(item.Contacts, ContactSummary{
				ID:       c.ID,
				Name:     c.Name,
				Email:    c.Email,
				Company:  c.Company,
				Priority: c.Priority,
			})
		}
		out[i] = item
	}
	return out, nil
}
