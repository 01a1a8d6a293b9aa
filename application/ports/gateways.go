package ports

import (
	"context"
	"time"
)

// InboxMessage is a parsed Gmail message as the scanner consumes it.
type InboxMessage struct {
	ID        string
	ThreadID  string
	From      string // raw header, possibly "Name <addr>"
	FromEmail string
	To        string
	Subject   string
	Date      time.Time
	Snippet   string
	Body      string
	IsUnread  bool
}

// GmailGateway exposes the slice of the Gmail API the scanner needs.
type GmailGateway interface {
	// RecentMessages fetches up to max inbox messages, newest first, with
	// headers and body already parsed.
	RecentMessages(ctx context.Context, max int64) ([]InboxMessage, error)

	// MarkRead clears the UNREAD label on a message.
	MarkRead(ctx context.Context, messageID string) error

	// Watch registers push notifications for the inbox on a Pub/Sub topic.
	Watch(ctx context.Context, topicName string) error

	// StopWatch cancels push notifications.
	StopWatch(ctx context.Context) error
}

// RemoteEvent is a calendar event as fetched from Google Calendar.
type RemoteEvent struct {
	ID             string
	Summary        string
	Description    string
	Location       string
	Start          time.Time
	End            time.Time
	IsAllDay       bool
	AttendeeEmails []string
	Organizer      string
	Status         string
	HTMLLink       string
}

// CalendarGateway exposes the slice of the Calendar API the sync needs.
type CalendarGateway interface {
	// Upcoming lists events on the primary calendar starting within the
	// next given number of days.
	Upcoming(ctx context.Context, days int, max int64) ([]RemoteEvent, error)
}

// SheetMetadata describes a spreadsheet and its tabs.
type SheetMetadata struct {
	Title  string
	Sheets []SheetTab
}

// SheetTab is one tab inside a spreadsheet.
type SheetTab struct {
	ID       int64
	Title    string
	Index    int64
	RowCount int64
	ColCount int64
}

// SheetsGateway exposes the slice of the Sheets API the importer needs.
type SheetsGateway interface {
	// Read returns the cell values for a range, row-major, as strings.
	Read(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)

	// Metadata describes the spreadsheet and its tabs.
	Metadata(ctx context.Context, spreadsheetID string) (*SheetMetadata, error)

	// Append adds rows to the end of a range.
	Append(ctx context.Context, spreadsheetID, writeRange string, values [][]string) error
}
