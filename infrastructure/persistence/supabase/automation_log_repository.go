package supabase

import (
	"context"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"outreach-backend/application/ports"
	"outreach-backend/pkg/errors"
)

// AutomationLogRepository records job runs in the automation_logs table.
type AutomationLogRepository struct {
	client *supabase.Client
}

func NewAutomationLogRepository(client *supabase.Client) *AutomationLogRepository {
	return &AutomationLogRepository{client: client}
}

var _ ports.AutomationLogRepository = (*AutomationLogRepository)(nil)

func (r *AutomationLogRepository) Insert(ctx context.Context, log ports.AutomationLog) error {
	payload, err := writePayload(log)
	if err != nil {
		return errors.NewDatabaseError("insert automation log", err)
	}
	_, _, err = r.client.From(tableAutomationLogs).
		Insert(payload, false, "", "minimal", "").
		Execute()
	if err != nil {
		return errors.NewDatabaseError("insert automation log", err)
	}
	return nil
}

func (r *AutomationLogRepository) ListRecent(ctx context.Context, limit int) ([]ports.AutomationLog, error) {
	q := r.client.From(tableAutomationLogs).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false})
	if limit > 0 {
		q = q.Limit(limit, "")
	}

	var out []ports.AutomationLog
	if _, err := q.ExecuteTo(&out); err != nil {
		return nil, errors.NewDatabaseError("list automation logs", err)
	}
	return out, nil
}
