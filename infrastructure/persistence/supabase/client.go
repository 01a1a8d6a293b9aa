// Package supabase implements the repository ports on top of the Supabase
// PostgREST API.
package supabase

import (
	"encoding/json"
	"time"

	"github.com/supabase-community/supabase-go"

	"outreach-backend/pkg/errors"
)

// Table names.
const (
	tableContacts       = "contacts"
	tableCommunications = "communications"
	tableFlaggedEmails  = "flagged_emails"
	tableCalendarEvents = "calendar_events"
	tableProspects      = "prospects"
	tableDailyQueue     = "daily_queue"
	tableBlocklist      = "blocklist"
	tableSettings       = "settings"
	tableAutomationLogs = "automation_logs"
)

// NewClient connects to the Supabase project with the service role key.
func NewClient(url, serviceKey string) (*supabase.Client, error) {
	client, err := supabase.NewClient(url, serviceKey, nil)
	if err != nil {
		return nil, errors.NewDatabaseError("connect", err)
	}
	return client, nil
}

// writePayload marshals the value and strips the columns the database
// manages itself, so partial updates never overwrite them with zero values.
func writePayload(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	payload := make(map[string]interface{})
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	delete(payload, "id")
	delete(payload, "created_at")
	delete(payload, "updated_at")
	return payload, nil
}

// ts formats a time for PostgREST filter values.
func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
