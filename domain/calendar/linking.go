// Package calendar links synced Google Calendar events to CRM contacts and
// scores how relevant an event is to the outreach effort.
package calendar

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"outreach-backend/domain/contact"
)

// Event is a calendar event mirrored from Google Calendar.
type Event struct {
	ID                string    `json:"id,omitempty"`
	GoogleEventID     string    `json:"google_event_id"`
	Summary           string    `json:"summary,omitempty"`
	Description       string    `json:"description,omitempty"`
	Location          string    `json:"location,omitempty"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	IsAllDay          bool      `json:"is_all_day,omitempty"`
	MeetingURL        string    `json:"meeting_url,omitempty"`
	PriorityScore     int       `json:"priority_score,omitempty"`
	RelevanceReason   string    `json:"relevance_reason,omitempty"`
	RelatedContactIDs []string  `json:"related_contact_ids,omitempty"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
	UpdatedAt         time.Time `json:"updated_at,omitempty"`
}

// Attendee is one participant on an event.
type Attendee struct {
	Email          string `json:"email"`
	DisplayName    string `json:"display_name,omitempty"`
	ResponseStatus string `json:"response_status,omitempty"`
	Organizer      bool   `json:"organizer,omitempty"`
}

// Relevance explains whether and why an event matters to the team.
type Relevance struct {
	IsRelated       bool
	Reason          string
	RelatedContacts []contact.Contact
}

// Keywords that mark an event as affiliate related even without known
// attendees.
var eventKeywords = []string{
	"partnership",
	"sponsor",
	"affiliate",
	"bitcoin conference",
	"btc conference",
	"booth",
	"exhibition",
	"speaking",
	"panel",
}

var importantEventKeywords = []string{"partnership", "sponsor", "bitcoin conference"}

// LinkToContacts matches attendee emails against the contact list,
// case-insensitively, deduplicating by contact ID. Attendee order decides
// result order.
func LinkToContacts(attendeeEmails []string, contacts []contact.Contact) ([]contact.Contact, []string) {
	var linked []contact.Contact
	var ids []string
	seen := make(map[string]struct{})

	for _, email := range attendeeEmails {
		for i := range contacts {
			c := &contacts[i]
			if c.Email == "" || !strings.EqualFold(c.Email, email) {
				continue
			}
			if _, dup := seen[c.ID]; dup {
				break
			}
			seen[c.ID] = struct{}{}
			linked = append(linked, *c)
			ids = append(ids, c.ID)
			break
		}
	}
	return linked, ids
}

// Relevant decides whether an event is affiliate related: known attendees
// first, keyword scan second.
func Relevant(summary, description string, attendeeEmails []string, contacts []contact.Contact) Relevance {
	linked, _ := LinkToContacts(attendeeEmails, contacts)
	if len(linked) > 0 {
		names := make([]string, len(linked))
		for i, c := range linked {
			names[i] = c.Name
		}
		plural := ""
		if len(linked) > 1 {
			plural = "s"
		}
		return Relevance{
			IsRelated:       true,
			Reason:          fmt.Sprintf("Meeting with %d contact%s: %s", len(linked), plural, strings.Join(names, ", ")),
			RelatedContacts: linked,
		}
	}

	summaryLower := strings.ToLower(summary)
	descriptionLower := strings.ToLower(description)
	var found []string
	for _, kw := range eventKeywords {
		if strings.Contains(summaryLower, kw) || strings.Contains(descriptionLower, kw) {
			found = append(found, kw)
		}
	}
	if len(found) > 0 {
		return Relevance{
			IsRelated: true,
			Reason:    "Contains keywords: " + strings.Join(found, ", "),
		}
	}

	return Relevance{Reason: "No matching criteria"}
}

// PriorityScore rates an event 0-100: linked contacts +40, any of them high
// priority +20, important keywords +20, starting within 24 hours +10, three
// or more attendees +10.
func PriorityScore(summary, description string, attendeeEmails []string, contacts []contact.Contact, start time.Time, now time.Time) int {
	score := 0

	linked, _ := LinkToContacts(attendeeEmails, contacts)
	if len(linked) > 0 {
		score += 40
		for _, c := range linked {
			if c.Priority == contact.PriorityHigh {
				score += 20
				break
			}
		}
	}

	text := strings.ToLower(summary + " " + description)
	for _, kw := range importantEventKeywords {
		if strings.Contains(text, kw) {
			score += 20
			break
		}
	}

	until := start.Sub(now)
	if until > 0 && until <= 24*time.Hour {
		score += 10
	}

	if len(attendeeEmails) >= 3 {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

// Patterns for meeting links commonly pasted into event descriptions.
var meetingURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)https://meet\.google\.com/[a-z-]+`),
	regexp.MustCompile(`(?i)https://zoom\.us/j/\d+`),
	regexp.MustCompile(`(?i)https://[^\s/]*\.zoom\.us/j/\d+`),
	regexp.MustCompile(`(?i)https://teams\.microsoft\.com/l/meetup-join`),
}

// MeetingURL extracts the first recognized meeting link from a description,
// or "" when none is present.
func MeetingURL(description string) string {
	for _, pattern := range meetingURLPatterns {
		if match := pattern.FindString(description); match != "" {
			return match
		}
	}
	return ""
}

// StartsSoon reports whether the event begins within the given window.
func StartsSoon(start, now time.Time, window time.Duration) bool {
	until := start.Sub(now)
	return until > 0 && until <= window
}

// InProgress reports whether now falls inside the event.
func InProgress(start, end, now time.Time) bool {
	return !now.Before(start) && !now.After(end)
}
