package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsService manages the single notification-settings row. The table
// holds exactly one row (id = 1); Update upserts it.
type SettingsService interface {
	Get(ctx context.Context) (*NotificationSetting, error)
	Update(ctx context.Context, email, phoneNumber string) (*NotificationSetting, error)
}

type settingsService struct {
	pool *pgxpool.Pool
}

func NewSettingsService(pool *pgxpool.Pool) SettingsService {
	return &settingsService{pool: pool}
}

func (s *settingsService) Get(ctx context.Context) (*NotificationSetting, error) {
	var set NotificationSetting
	err := s.pool.QueryRow(ctx,
		"SELECT id, email, phone_number FROM notification_settings WHERE id = 1",
	).Scan(&set.ID, &set.Email, &set.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to load notification settings: %w", err)
	}
	return &set, nil
}

func (s *settingsService) Update(ctx context.Context, email, phoneNumber string) (*NotificationSetting, error) {
	var set NotificationSetting
	err := s.pool.QueryRow(ctx, `
		INSERT INTO notification_settings (id, email, phone_number)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET email = $1, phone_number = $2
		RETURNING id, email, phone_number
	`, strings.TrimSpace(email), strings.TrimSpace(phoneNumber)).
		Scan(&set.ID, &set.Email, &set.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to update notification settings: %w", err)
	}
	return &set, nil
}
