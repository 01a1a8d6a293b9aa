package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"outreach-backend/domain/contact"
	"outreach-backend/domain/email"
	"outreach-backend/domain/prospect"
	"outreach-backend/pkg/utils"
)

func TestDashboardStats(t *testing.T) {
	now := time.Now()
	lastWeek := now.AddDate(0, 0, -10)
	contacted := now.Add(-time.Hour)

	contacts := &fakeContactRepo{contacts: []contact.Contact{
		{ID: "c-1", Status: contact.StatusNew, CreatedAt: now.Add(-time.Hour)},
		{ID: "c-2", Status: contact.StatusContacted, CreatedAt: lastWeek, LastContactDate: &contacted},
		{ID: "c-3", Status: contact.StatusResponded, CreatedAt: lastWeek, LastContactDate: &lastWeek},
	}}
	flagged := &fakeFlaggedRepo{flags: []email.FlaggedEmail{
		{ID: "f-1", ReceivedAt: now.Add(-time.Hour), ActionRequired: true},
		{ID: "f-2", ReceivedAt: now.AddDate(0, 0, -2), IsRead: true},
	}}
	events := &fakeEventRepo{}
	queue := &fakeQueueRepo{}
	require.NoError(t, queue.Insert(context.Background(), []prospect.QueueEntry{
		{QueueDate: utils.Today(), ProspectID: "p-1", State: prospect.QueueStatePending},
		{QueueDate: utils.Today(), ProspectID: "p-2", State: prospect.QueueStateContacted},
	}))

	svc := NewDashboardService(contacts, flagged, events, queue, zap.NewNop())
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Contacts.Total)
	assert.Equal(t, 1, stats.Contacts.ByStatus[contact.StatusNew])
	assert.Equal(t, 1, stats.Contacts.AddedThisWeek)

	assert.Equal(t, 2, stats.Outreach.Contacted)
	assert.InDelta(t, 0.5, stats.Outreach.ResponseRate, 0.001,
		"one responded out of two ever contacted")

	assert.Equal(t, 1, stats.Emails.Unread)
	assert.Equal(t, 1, stats.Emails.ActionRequired)

	assert.Equal(t, 2, stats.Queue.Total)
	assert.Equal(t, 1, stats.Queue.Pending)
	assert.Equal(t, 1, stats.Queue.Contacted)
}

func TestDashboardFollowerTiers(t *testing.T) {
	small := 5_000
	mid := 30_000
	big := 750_000

	contacts := &fakeContactRepo{contacts: []contact.Contact{
		{ID: "c-1", Name: "Small", Status: contact.StatusNew, FollowerCount: &small},
		{ID: "c-2", Name: "Mid A", Status: contact.StatusAccepted, FollowerCount: &mid},
		{ID: "c-3", Name: "Mid B", Status: contact.StatusContacted, FollowerCount: &mid},
		{ID: "c-4", Name: "Big", Status: contact.StatusAccepted, FollowerCount: &big},
		{ID: "c-5", Name: "Uncounted", Status: contact.StatusAccepted},
	}}

	svc := NewDashboardService(contacts, &fakeFlaggedRepo{}, &fakeEventRepo{}, &fakeQueueRepo{}, zap.NewNop())
	tiers, err := svc.FollowerTiers(context.Background())
	require.NoError(t, err)

	require.Len(t, tiers, 5)
	assert.Equal(t, 1, tiers[0].Total, "0-10K")
	assert.Equal(t, 2, tiers[1].Total, "10K-50K")
	assert.Equal(t, 50, tiers[1].ConversionRate)
	assert.Equal(t, 1, tiers[4].Total, "500K+")
	assert.Equal(t, 100, tiers[4].ConversionRate)
}

func TestDashboardStatsEmpty(t *testing.T) {
	svc := NewDashboardService(&fakeContactRepo{}, &fakeFlaggedRepo{}, &fakeEventRepo{}, &fakeQueueRepo{}, zap.NewNop())
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Contacts.Total)
	assert.Equal(t, float64(0), stats.Outreach.ResponseRate)
}
