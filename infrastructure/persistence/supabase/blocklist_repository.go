package supabase

import (
	"context"
	"fmt"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"outreach-backend/application/ports"
	"outreach-backend/domain/prospect"
	"outreach-backend/pkg/errors"
)

// BlocklistRepository stores do-not-contact entries.
type BlocklistRepository struct {
	client *supabase.Client
}

func NewBlocklistRepository(client *supabase.Client) *BlocklistRepository {
	return &BlocklistRepository{client: client}
}

var _ ports.BlocklistRepository = (*BlocklistRepository)(nil)

func (r *BlocklistRepository) List(ctx context.Context) ([]prospect.BlocklistEntry, error) {
	var out []prospect.BlocklistEntry
	_, err := r.client.From(tableBlocklist).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&out)
	if err != nil {
		return nil, errors.NewDatabaseError("list blocklist", err)
	}
	return out, nil
}

func (r *BlocklistRepository) Create(ctx context.Context, entry prospect.BlocklistEntry) (*prospect.BlocklistEntry, error) {
	payload, err := writePayload(entry)
	if err != nil {
		return nil, errors.NewDatabaseError("create blocklist entry", err)
	}

	var rows []prospect.BlocklistEntry
	_, err = r.client.From(tableBlocklist).
		Insert(payload, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, errors.NewDatabaseError("create blocklist entry", err)
	}
	if len(rows) == 0 {
		return nil, errors.NewDatabaseError("create blocklist entry", fmt.Errorf("no row returned"))
	}
	return &rows[0], nil
}

func (r *BlocklistRepository) Delete(ctx context.Context, id string) error {
	_, _, err := r.client.From(tableBlocklist).
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return errors.NewDatabaseError("delete blocklist entry", err)
	}
	return nil
}
