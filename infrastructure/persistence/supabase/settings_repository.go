package supabase

import (
	"context"

	"github.com/supabase-community/supabase-go"

	"outreach-backend/application/ports"
	"outreach-backend/pkg/errors"
)

// SettingsRepository is a key/value store over the settings table. Values
// are opaque strings; callers marshal their own JSON.
type SettingsRepository struct {
	client *supabase.Client
}

func NewSettingsRepository(client *supabase.Client) *SettingsRepository {
	return &SettingsRepository{client: client}
}

var _ ports.SettingsRepository = (*SettingsRepository)(nil)

type settingRow struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (r *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var rows []settingRow
	_, err := r.client.From(tableSettings).
		Select("key,value", "", false).
		Eq("key", key).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return "", errors.NewDatabaseError("get setting", err)
	}
	if len(rows) == 0 {
		return "", errors.NewNotFoundError("setting")
	}
	return rows[0].Value, nil
}

func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	_, _, err := r.client.From(tableSettings).
		Insert(settingRow{Key: key, Value: value}, true, "key", "minimal", "").
		Execute()
	if err != nil {
		return errors.NewDatabaseError("set setting", err)
	}
	return nil
}

func (r *SettingsRepository) Delete(ctx context.Context, key string) error {
	_, _, err := r.client.From(tableSettings).
		Delete("", "").
		Eq("key", key).
		Execute()
	if err != nil {
		return errors.NewDatabaseError("delete setting", err)
	}
	return nil
}
