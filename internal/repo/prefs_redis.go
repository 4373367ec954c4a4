package repo

import (
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/asset-dashboard/internal/redissvc"
)

// RedisPreferenceRepository stores preferences as JSON values keyed by user.
type RedisPreferenceRepository struct {
	rdb *redis.Client
	svc *redissvc.RedisService
}

func NewRedisPreferenceRepository(rs *redissvc.RedisService) *RedisPreferenceRepository {
	return &RedisPreferenceRepository{rdb: rs.Rdb(), svc: rs}
}

func prefsKey(userID int) string {
	return fmt.Sprintf("dashboard:prefs:%d", userID)
}

func (r *RedisPreferenceRepository) Get(userID int) (Preferences, error) {
	raw, err := r.rdb.Get(r.svc.Ctx(), prefsKey(userID)).Bytes()
	if err == redis.Nil {
		return Preferences{}, ErrPreferencesNotFound
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("failed to read preferences: %w", err)
	}

	var prefs Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		// Corrupt entry: drop it rather than fail every load.
		_ = r.rdb.Del(r.svc.Ctx(), prefsKey(userID)).Err()
		return Preferences{}, ErrPreferencesNotFound
	}
	return prefs, nil
}

func (r *RedisPreferenceRepository) Save(userID int, prefs Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(r.svc.Ctx(), prefsKey(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

func (r *RedisPreferenceRepository) Reset(userID int) error {
	if err := r.rdb.Del(r.svc.Ctx(), prefsKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to reset preferences: %w", err)
	}
	return nil
}
