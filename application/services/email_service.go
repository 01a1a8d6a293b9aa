package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"outreach-backend/application/ports"
	"outreach-backend/domain/contact"
	"outreach-backend/domain/email"
)

// ScanResult summarizes one inbox scan.
type ScanResult struct {
	Scanned int `json:"scanned"`
	Flagged int `json:"flagged"`
	Skipped int `json:"skipped"`
}

// EmailService scans the Gmail inbox, flags messages the outreach rules
// care about, and records communications against known contacts.
type EmailService struct {
	flagged  ports.FlaggedEmailRepository
	contacts ports.ContactRepository
	comms    ports.CommunicationRepository
	gmail    ports.GmailGateway
	logger   *zap.Logger
}

func NewEmailService(
	flagged ports.FlaggedEmailRepository,
	contacts ports.ContactRepository,
	comms ports.CommunicationRepository,
	gmail ports.GmailGateway,
	logger *zap.Logger,
) *EmailService {
	return &EmailService{
		flagged:  flagged,
		contacts: contacts,
		comms:    comms,
		gmail:    gmail,
		logger:   logger,
	}
}

const scanBatchSize = 50

// Scan pulls recent inbox messages and flags the relevant ones. Messages
// already flagged in a previous scan are skipped by Gmail message ID.
func (s *EmailService) Scan(ctx context.Context) (*ScanResult, error) {
	contacts, err := s.contacts.List(ctx, ports.ContactFilter{})
	if err != nil {
		return nil, err
	}

	messages, err := s.gmail.RecentMessages(ctx, scanBatchSize)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{Scanned: len(messages)}
	for _, msg := range messages {
		existing, err := s.flagged.GetByGmailID(ctx, msg.ID)
		if err != nil {
			s.logger.Warn("Failed to check for existing flag",
				zap.String("gmailID", msg.ID),
				zap.Error(err),
			)
			continue
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		body := msg.Body
		if body == "" {
			body = msg.Snippet
		}

		decision := email.ShouldFlag(msg.FromEmail, msg.Subject, body, contacts)
		if !decision.ShouldFlag {
			continue
		}

		flag := email.FlaggedEmail{
			GmailMessageID: msg.ID,
			ThreadID:       msg.ThreadID,
			FromName:       msg.From,
			FromEmail:      msg.FromEmail,
			Subject:        msg.Subject,
			Snippet:        msg.Snippet,
			ReceivedAt:     msg.Date,
			FlagReason:     decision.Reason,
			ContactID:      decision.ContactID,
			Priority:       decision.Priority,
			ActionRequired: email.RequiresAction(msg.Subject, body),
			ActionItems:    email.ActionItems(msg.Subject, body),
			PriorityScore:  email.PriorityScore(msg.FromEmail, msg.Subject, body, contacts),
		}
		if _, err := s.flagged.Create(ctx, flag); err != nil {
			s.logger.Warn("Failed to flag email",
				zap.String("gmailID", msg.ID),
				zap.Error(err),
			)
			continue
		}
		result.Flagged++

		if decision.ContactID != "" {
			s.recordInbound(ctx, decision.ContactID, msg)
		}
	}

	return result, nil
}

// recordInbound logs a communication and bumps the contact's last contact
// date. Failures here never fail the scan.
func (s *EmailService) recordInbound(ctx context.Context, contactID string, msg ports.InboxMessage) {
	comm := contact.Communication{
		ContactID:      contactID,
		Type:           "email",
		Direction:      "inbound",
		GmailMessageID: msg.ID,
		Subject:        msg.Subject,
		Body:           msg.Snippet,
	}
	if err := s.comms.Create(ctx, comm); err != nil {
		s.logger.Warn("Failed to record communication",
			zap.String("contactID", contactID),
			zap.Error(err),
		)
	}

	now := time.Now()
	if _, err := s.contacts.Update(ctx, contactID, contact.Contact{LastContactDate: &now}); err != nil {
		s.logger.Warn("Failed to update last contact date",
			zap.String("contactID", contactID),
			zap.Error(err),
		)
	}
}

// List returns flagged emails, optionally only unread ones.
func (s *EmailService) List(ctx context.Context, unreadOnly bool, limit int) ([]email.FlaggedEmail, error) {
	return s.flagged.List(ctx, unreadOnly, limit)
}

// MarkRead marks a flagged email read locally and in Gmail. The Gmail side
// is best effort.
func (s *EmailService) MarkRead(ctx context.Context, id string) error {
	flag, err := s.flagged.MarkRead(ctx, id, true)
	if err != nil {
		return err
	}
	if flag != nil && flag.GmailMessageID != "" {
		if err := s.gmail.MarkRead(ctx, flag.GmailMessageID); err != nil {
			s.logger.Warn("Failed to mark Gmail message read",
				zap.String("gmailID", flag.GmailMessageID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// Dismiss removes a flagged email.
func (s *EmailService) Dismiss(ctx context.Context, id string) error {
	return s.flagged.Delete(ctx, id)
}
