package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"outreach-backend/application/ports"
	"outreach-backend/domain/contact"
)

// SettingPendingFollowups holds the latest follow-up check snapshot.
const SettingPendingFollowups = "pending_followups"

// FollowupSnapshot is what the follow-up check stores and returns.
type FollowupSnapshot struct {
	CheckedAt time.Time         `json:"checkedAt"`
	Count     int               `json:"count"`
	Contacts  []contact.Contact `json:"contacts,omitempty"`
}

// FollowupService finds contacts whose follow-up date has come due.
type FollowupService struct {
	contacts ports.ContactRepository
	settings ports.SettingsRepository
	logger   *zap.Logger
}

func NewFollowupService(
	contacts ports.ContactRepository,
	settings ports.SettingsRepository,
	logger *zap.Logger,
) *FollowupService {
	return &FollowupService{contacts: contacts, settings: settings, logger: logger}
}

// Check returns contacts with a follow-up at or before now, excluding
// declined ones, and stores the snapshot for the dashboard.
func (s *FollowupService) Check(ctx context.Context) (*FollowupSnapshot, error) {
	due, err := s.contacts.DueForFollowup(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	snapshot := &FollowupSnapshot{
		CheckedAt: time.Now().UTC(),
		Count:     len(due),
		Contacts:  due,
	}

	raw, err := json.Marshal(snapshot)
	if err == nil {
		if err := s.settings.Set(ctx, SettingPendingFollowups, string(raw)); err != nil {
			s.logger.Warn("Failed to store follow-up snapshot", zap.Error(err))
		}
	}

	return snapshot, nil
}
