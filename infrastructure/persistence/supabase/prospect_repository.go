package supabase

import (
	"context"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"outreach-backend/application/ports"
	"outreach-backend/domain/prospect"
	"outreach-backend/pkg/errors"
)

// ProspectRepository reads discovered leads from the prospects table.
type ProspectRepository struct {
	client *supabase.Client
}

func NewProspectRepository(client *supabase.Client) *ProspectRepository {
	return &ProspectRepository{client: client}
}

var _ ports.ProspectRepository = (*ProspectRepository)(nil)

func (r *ProspectRepository) ListFresh(ctx context.Context, limit int) ([]prospect.Prospect, error) {
	q := r.client.From(tableProspects).
		Select("*", "", false).
		In("status", []string{"new", "queued"}).
		Order("confidence", &postgrest.OrderOpts{Ascending: false}).
		Order("discovered_at", &postgrest.OrderOpts{Ascending: false})
	if limit > 0 {
		q = q.Limit(limit, "")
	}

	var out []prospect.Prospect
	if _, err := q.ExecuteTo(&out); err != nil {
		return nil, errors.NewDatabaseError("list prospects", err)
	}
	return out, nil
}

func (r *ProspectRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, _, err := r.client.From(tableProspects).
		Update(map[string]interface{}{"status": status}, "minimal", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return errors.NewDatabaseError("update prospect status", err)
	}
	return nil
}
