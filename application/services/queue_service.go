package services

import (
	"context"

	"go.uber.org/zap"

	"outreach-backend/application/ports"
	"outreach-backend/domain/prospect"
	"outreach-backend/pkg/errors"
	"outreach-backend/pkg/utils"
)

// DefaultQueueSize caps how many prospects land in one day's queue.
const DefaultQueueSize = 150

// QueueCounts breaks a day's queue down by state.
type QueueCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Contacted int `json:"contacted"`
	Skipped   int `json:"skipped"`
}

// QueueDay is one day's queue with its state counts.
type QueueDay struct {
	Date    string                `json:"date"`
	Entries []prospect.QueueEntry `json:"entries"`
	Counts  QueueCounts           `json:"counts"`
}

// GenerateResult reports what a queue generation produced.
type GenerateResult struct {
	Date        string `json:"date"`
	Generated   int    `json:"generated"`
	Regenerated bool   `json:"regenerated"`
}

// QueueService builds and works the daily outreach queue.
type QueueService struct {
	queue     ports.QueueRepository
	prospects ports.ProspectRepository
	blocklist ports.BlocklistRepository
	logger    *zap.Logger
}

func NewQueueService(
	queue ports.QueueRepository,
	prospects ports.ProspectRepository,
	blocklist ports.BlocklistRepository,
	logger *zap.Logger,
) *QueueService {
	return &QueueService{
		queue:     queue,
		prospects: prospects,
		blocklist: blocklist,
		logger:    logger,
	}
}

// Generate builds today's queue. An existing queue for the date is replaced.
// Prospects are overfetched at twice the limit so blocklist and duplicate
// filtering can still fill the queue.
func (s *QueueService) Generate(ctx context.Context, limit int) (*GenerateResult, error) {
	if limit <= 0 || limit > DefaultQueueSize {
		limit = DefaultQueueSize
	}
	date := utils.Today()

	result := &GenerateResult{Date: date}

	exists, err := s.queue.ExistsForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if exists {
		if err := s.queue.DeleteForDate(ctx, date); err != nil {
			return nil, err
		}
		result.Regenerated = true
	}

	entries, err := s.blocklist.List(ctx)
	if err != nil {
		return nil, err
	}
	bl := prospect.NewBlocklist(entries)

	candidates, err := s.prospects.ListFresh(ctx, limit*2)
	if err != nil {
		return nil, err
	}

	selected := prospect.SelectForQueue(candidates, bl, limit)
	if len(selected) == 0 {
		return result, nil
	}

	queueEntries := make([]prospect.QueueEntry, len(selected))
	for i, p := range selected {
		queueEntries[i] = prospect.QueueEntry{
			QueueDate:  date,
			ProspectID: p.ID,
			State:      prospect.QueueStatePending,
		}
	}
	if err := s.queue.Insert(ctx, queueEntries); err != nil {
		return nil, err
	}

	for _, p := range selected {
		if err := s.prospects.UpdateStatus(ctx, p.ID, "queued"); err != nil {
			s.logger.Warn("Failed to mark prospect queued",
				zap.String("prospectID", p.ID),
				zap.Error(err),
			)
		}
	}

	result.Generated = len(queueEntries)
	return result, nil
}

// Day returns the queue for a date, filtered by state when given.
func (s *QueueService) Day(ctx context.Context, date, state string) (*QueueDay, error) {
	if date == "" {
		date = utils.Today()
	}
	entries, err := s.queue.ListForDate(ctx, date, state)
	if err != nil {
		return nil, err
	}
	counts, err := s.counts(ctx, date)
	if err != nil {
		return nil, err
	}
	return &QueueDay{Date: date, Entries: entries, Counts: *counts}, nil
}

// MarkContacted moves a queue entry to the contacted state and advances the
// underlying prospect.
func (s *QueueService) MarkContacted(ctx context.Context, id string) (*prospect.QueueEntry, error) {
	return s.transition(ctx, id, prospect.QueueStateContacted, "contacted")
}

// Skip moves a queue entry to the skipped state.
func (s *QueueService) Skip(ctx context.Context, id string) (*prospect.QueueEntry, error) {
	return s.transition(ctx, id, prospect.QueueStateSkipped, "")
}

func (s *QueueService) transition(ctx context.Context, id, state, prospectStatus string) (*prospect.QueueEntry, error) {
	entry, err := s.queue.SetState(ctx, id, state)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, errors.NewNotFoundError("queue entry")
	}
	if prospectStatus != "" && entry.ProspectID != "" {
		if err := s.prospects.UpdateStatus(ctx, entry.ProspectID, prospectStatus); err != nil {
			s.logger.Warn("Failed to update prospect status",
				zap.String("prospectID", entry.ProspectID),
				zap.Error(err),
			)
		}
	}
	return entry, nil
}

func (s *QueueService) counts(ctx context.Context, date string) (*QueueCounts, error) {
	out := &QueueCounts{}
	for _, st := range []string{prospect.QueueStatePending, prospect.QueueStateContacted, prospect.QueueStateSkipped} {
		n, err := s.queue.CountForDate(ctx, date, st)
		if err != nil {
			return nil, err
		}
		switch st {
		case prospect.QueueStatePending:
			out.Pending = n
		case prospect.QueueStateContacted:
			out.Contacted = n
		case prospect.QueueStateSkipped:
			out.Skipped = n
		}
	}
	out.Total = out.Pending + out.Contacted + out.Skipped
	return out, nil
}
