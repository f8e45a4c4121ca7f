package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/research-editing-site/internal/database"
	"github.com/research-editing-site/internal/models"
)

// settingRepo is the concrete implementation of SettingRepository
type settingRepo struct {
	db *database.DB
}

// NewSettingRepo creates a new setting repository
func NewSettingRepo(db *database.DB) SettingRepository {
	return &settingRepo{db: db}
}

// Upsert inserts or replaces a setting by key.
func (r *settingRepo) Upsert(ctx context.Context, setting *models.Setting) error {
	query := `
		INSERT INTO settings (key, value, description, category, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    description = EXCLUDED.description,
		    category = EXCLUDED.category,
		    updated_at = now()
	`
	_, err := r.db.ExecContext(ctx, query, setting.Key, setting.Value, setting.Description, setting.Category)
	if err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}

// Get retrieves a setting by key, (nil, nil) when absent.
func (r *settingRepo) Get(ctx context.Context, key string) (*models.Setting, error) {
	var s models.Setting
	err := r.db.QueryRowContext(ctx,
		"SELECT key, value, description, category, updated_at FROM settings WHERE key = $1", key,
	).Scan(&s.Key, &s.Value, &s.Description, &s.Category, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return &s, nil
}

// List retrieves all settings grouped by category then key.
func (r *settingRepo) List(ctx context.Context) ([]models.Setting, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT key, value, description, category, updated_at FROM settings ORDER BY category, key")
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []models.Setting
	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.Description, &s.Category, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// Count returns the total number of settings
func (r *settingRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM settings").Scan(&count)
	return count, err
}
