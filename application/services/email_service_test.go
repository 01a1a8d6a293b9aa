package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"outreach-backend/application/ports"
	"outreach-backend/domain/contact"
	"outreach-backend/domain/email"
)

func TestScanFlagsAndRecordsCommunications(t *testing.T) {
	contacts := &fakeContactRepo{contacts: []contact.Contact{
		{ID: "c-1", Name: "Jon Smith", Email: "jon@example.com", Priority: contact.PriorityHigh},
	}}
	flagged := &fakeFlaggedRepo{}
	comms := &fakeCommRepo{}
	gmail := &fakeGmail{messages: []ports.InboxMessage{
		{
			ID:        "m-1",
			From:      "Jon Smith <jon@example.com>",
			FromEmail: "jon@example.com",
			Subject:   "Re: our call",
			Snippet:   "Sounds good",
			Date:      time.Now(),
			IsUnread:  true,
		},
		{
			ID:        "m-2",
			FromEmail: "unknown@nowhere.net",
			Subject:   "Weekly newsletter",
			Snippet:   "This week in widgets",
			Date:      time.Now(),
		},
		{
			ID:        "m-3",
			FromEmail: "someone@brands.co",
			Subject:   "Sponsorship opportunity",
			Snippet:   "We are interested in discussing a partnership",
			Date:      time.Now(),
		},
	}}
	svc := NewEmailService(flagged, contacts, comms, gmail, zap.NewNop())

	result, err := svc.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Scanned)
	assert.Equal(t, 2, result.Flagged, "known contact and keyword emails flag, newsletter does not")
	assert.Equal(t, 0, result.Skipped)

	// Known-contact message produced a communication and bumped the
	// last contact date.
	require.Len(t, comms.comms, 1)
	assert.Equal(t, "c-1", comms.comms[0].ContactID)
	assert.Equal(t, "inbound", comms.comms[0].Direction)
	updated, err := contacts.GetByID(context.Background(), "c-1")
	require.NoError(t, err)
	assert.NotNil(t, updated.LastContactDate)

	// The known-contact flag carries the contact link and priority.
	var known *email.FlaggedEmail
	for i := range flagged.flags {
		if flagged.flags[i].GmailMessageID == "m-1" {
			known = &flagged.flags[i]
		}
	}
	require.NotNil(t, known)
	assert.Equal(t, "c-1", known.ContactID)
	assert.Equal(t, contact.PriorityHigh, known.Priority)
	assert.Equal(t, 50, known.PriorityScore, "known high-priority sender scores 30+20")

	// The keyword flag captured suggested follow-ups.
	var keyword *email.FlaggedEmail
	for i := range flagged.flags {
		if flagged.flags[i].GmailMessageID == "m-3" {
			keyword = &flagged.flags[i]
		}
	}
	require.NotNil(t, keyword)
	assert.Contains(t, keyword.ActionItems, "Follow up with information")
}

func TestScanSkipsAlreadyFlagged(t *testing.T) {
	flagged := &fakeFlaggedRepo{}
	_, err := flagged.Create(context.Background(), email.FlaggedEmail{GmailMessageID: "m-1"})
	require.NoError(t, err)

	gmail := &fakeGmail{messages: []ports.InboxMessage{
		{ID: "m-1", FromEmail: "x@y.co", Subject: "partnership", Date: time.Now()},
	}}
	svc := NewEmailService(flagged, &fakeContactRepo{}, &fakeCommRepo{}, gmail, zap.NewNop())

	result, err := svc.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Flagged)
	assert.Len(t, flagged.flags, 1, "no duplicate flag rows")
}

func TestMarkReadSyncsGmail(t *testing.T) {
	flagged := &fakeFlaggedRepo{}
	created, err := flagged.Create(context.Background(), email.FlaggedEmail{GmailMessageID: "m-9"})
	require.NoError(t, err)

	gmail := &fakeGmail{}
	svc := NewEmailService(flagged, &fakeContactRepo{}, &fakeCommRepo{}, gmail, zap.NewNop())

	require.NoError(t, svc.MarkRead(context.Background(), created.ID))
	assert.True(t, flagged.flags[0].IsRead)
	assert.Equal(t, []string{"m-9"}, gmail.markedRead)
}

func TestDismiss(t *testing.T) {
	flagged := &fakeFlaggedRepo{}
	created, err := flagged.Create(context.Background(), email.FlaggedEmail{GmailMessageID: "m-1"})
	require.NoError(t, err)

	svc := NewEmailService(flagged, &fakeContactRepo{}, &fakeCommRepo{}, &fakeGmail{}, zap.NewNop())
	require.NoError(t, svc.Dismiss(context.Background(), created.ID))
	assert.Empty(t, flagged.flags)
}
