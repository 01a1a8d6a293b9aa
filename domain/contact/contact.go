// Package contact holds the CRM contact model and the duplicate detection
// and merge engine that guards imports against double entry.
package contact

import (
	"time"
)

// Status tracks where a contact sits in the outreach pipeline.
type Status string

const (
	StatusNew        Status = "new"
	StatusContacted  Status = "contacted"
	StatusResponded  Status = "responded"
	StatusInterested Status = "interested"
	StatusAccepted   Status = "accepted"
	StatusDeclined   Status = "declined"
)

// Priority is the manual triage level assigned to a contact.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Channel is the preferred way to reach a contact.
type Channel string

const (
	ChannelX         Channel = "x"
	ChannelInstagram Channel = "instagram"
	ChannelTelegram  Channel = "telegram"
	ChannelEmail     Channel = "email"
	ChannelWhatsApp  Channel = "whatsapp"
	ChannelMessages  Channel = "messages"
)

// Contact is an affiliate or partner being worked by the outreach team.
// Email is optional; when present the storage layer enforces uniqueness.
type Contact struct {
	ID               string     `json:"id,omitempty"`
	Name             string     `json:"name,omitempty"`
	Email            string     `json:"email,omitempty"`
	TwitterHandle    string     `json:"twitter_handle,omitempty"`
	Company          string     `json:"company,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	Website          string     `json:"website,omitempty"`
	Status           Status     `json:"status,omitempty"`
	Priority         Priority   `json:"priority,omitempty"`
	FollowerCount    *int       `json:"follower_count,omitempty"`
	Comms            Channel    `json:"comms,omitempty"`
	FirstContactDate *time.Time `json:"first_contact_date,omitempty"`
	LastContactDate  *time.Time `json:"last_contact_date,omitempty"`
	NextFollowupDate *time.Time `json:"next_followup_date,omitempty"`
	SheetsRowID      *int       `json:"sheets_row_id,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	Tags             []string   `json:"tags,omitempty"`
	CreatedAt        time.Time  `json:"created_at,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at,omitempty"`
}

// Communication is a single touch point with a contact, either direction.
type Communication struct {
	ID              string     `json:"id,omitempty"`
	ContactID       string     `json:"contact_id"`
	Type            string     `json:"type"`      // email, call, meeting
	Direction       string     `json:"direction,omitempty"` // inbound, outbound
	GmailMessageID  string     `json:"gmail_message_id,omitempty"`
	CalendarEventID string     `json:"calendar_event_id,omitempty"`
	Subject         string     `json:"subject,omitempty"`
	Body            string     `json:"body,omitempty"`
	ScheduledFor    *time.Time `json:"scheduled_for,omitempty"`
	CreatedAt       time.Time  `json:"created_at,omitempty"`
}

// ValidStatus reports whether s is one of the pipeline statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusNew, StatusContacted, StatusResponded, StatusInterested, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}

// ValidPriority reports whether p is a known triage level.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
