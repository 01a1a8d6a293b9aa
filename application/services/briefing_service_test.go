package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"outreach-backend/domain/calendar"
	"outreach-backend/domain/contact"
	"outreach-backend/domain/email"
	"outreach-backend/pkg/utils"
)

func TestGenerateBriefing(t *testing.T) {
	now := time.Now()
	startToday := utils.StartOfDay(now)
	yesterdayNoon := startToday.Add(-12 * time.Hour)
	overdue := now.Add(-time.Hour)

	contacts := &fakeContactRepo{contacts: []contact.Contact{
		{ID: "c-1", Name: "Fresh", CreatedAt: yesterdayNoon},
		{ID: "c-2", Name: "Needs Followup", NextFollowupDate: &overdue},
		{ID: "c-3", Name: "Old", CreatedAt: now.AddDate(0, 0, -10)},
	}}
	flagged := &fakeFlaggedRepo{flags: []email.FlaggedEmail{
		{ID: "f-1", GmailMessageID: "m-1", ReceivedAt: now.Add(-2 * time.Hour)},
		{ID: "f-2", GmailMessageID: "m-2", ReceivedAt: now.Add(-48 * time.Hour)},
	}}
	events := &fakeEventRepo{events: []calendar.Event{
		{ID: "e-1", GoogleEventID: "g-1", Summary: "Today call", StartTime: startToday.Add(12 * time.Hour)},
		{ID: "e-2", GoogleEventID: "g-2", Summary: "Later this week", StartTime: startToday.Add(3*24*time.Hour + 12*time.Hour)},
	}}
	settings := &fakeSettingsRepo{}
	svc := NewBriefingService(contacts, flagged, events, settings, zap.NewNop())

	b, err := svc.Generate(context.Background())
	require.NoError(t, err)

	assert.Len(t, b.NewContacts, 1)
	assert.Len(t, b.FollowupsDue, 1)
	assert.Len(t, b.FlaggedEmails, 1, "only the last 24 hours")
	assert.Len(t, b.EventsToday, 1)
	assert.Len(t, b.UpcomingEvents, 1)
	assert.Contains(t, b.Summary, "1 new contact")
	assert.Contains(t, b.Summary, "1 follow-up due")
	assert.Contains(t, b.Summary, "1 flagged email")
	assert.Contains(t, b.Summary, "1 meeting today")

	// Stored for later reads.
	assert.Contains(t, settings.values, SettingLastBriefing)

	stored, err := svc.Last(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, b.Summary, stored.Summary)
}

func TestBriefingEmptySummary(t *testing.T) {
	svc := NewBriefingService(&fakeContactRepo{}, &fakeFlaggedRepo{}, &fakeEventRepo{}, &fakeSettingsRepo{}, zap.NewNop())
	b, err := svc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Nothing needs attention today.", b.Summary)
}

func TestLastWithoutStoredBriefing(t *testing.T) {
	svc := NewBriefingService(&fakeContactRepo{}, &fakeFlaggedRepo{}, &fakeEventRepo{}, &fakeSettingsRepo{}, zap.NewNop())
	b, err := svc.Last(context.Background())
	require.NoError(t, err)
	assert.Nil(t, b)
}
