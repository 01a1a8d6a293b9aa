package supabase

import (
	"context"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"outreach-backend/application/ports"
	"outreach-backend/domain/contact"
	"outreach-backend/pkg/errors"
)

// CommunicationRepository stores touch points in the communications table.
type CommunicationRepository struct {
	client *supabase.Client
}

func NewCommunicationRepository(client *supabase.Client) *CommunicationRepository {
	return &CommunicationRepository{client: client}
}

var _ ports.CommunicationRepository = (*CommunicationRepository)(nil)

func (r *CommunicationRepository) Create(ctx context.Context, comm contact.Communication) error {
	payload, err := writePayload(comm)
	if err != nil {
		return errors.NewDatabaseError("create communication", err)
	}
	_, _, err = r.client.From(tableCommunications).
		Insert(payload, false, "", "minimal", "").
		Execute()
	if err != nil {
		return errors.NewDatabaseError("create communication", err)
	}
	return nil
}

func (r *CommunicationRepository) ListByContact(ctx context.Context, contactID string) ([]contact.Communication, error) {
	var out []contact.Communication
	_, err := r.client.From(tableCommunications).
		Select("*", "", false).
		Eq("contact_id", contactID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&out)
	if err != nil {
		return nil, errors.NewDatabaseError("list communications", err)
	}
	return out, nil
}
