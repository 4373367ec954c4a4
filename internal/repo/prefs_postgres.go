package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PostgresPreferenceRepository stores one JSON document per user in the
// dashboard_preferences table.
type PostgresPreferenceRepository struct {
	db *sql.DB
}

func NewPostgresPreferenceRepository(db *sql.DB) *PostgresPreferenceRepository {
	return &PostgresPreferenceRepository{db: db}
}

func (r *PostgresPreferenceRepository) Get(userID int) (Preferences, error) {
	query := `SELECT prefs FROM dashboard_preferences WHERE user_id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return Preferences{}, ErrPreferencesNotFound
	}
	if err != nil {
		return Preferences{}, err
	}

	var prefs Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		_ = r.Reset(userID)
		return Preferences{}, ErrPreferencesNotFound
	}
	return prefs, nil
}

func (r *PostgresPreferenceRepository) Save(userID int, prefs Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	query := `INSERT INTO dashboard_preferences (user_id, prefs, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET prefs = $2, updated_at = $3`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err = r.db.ExecContext(ctx, query, userID, raw, time.Now())
	return err
}

func (r *PostgresPreferenceRepository) Reset(userID int) error {
	query := `DELETE FROM dashboard_preferences WHERE user_id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
