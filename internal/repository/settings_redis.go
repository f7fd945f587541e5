package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"comicdash/internal/models"

	"github.com/redis/go-redis/v9"
)

// SettingsRepository stores per-user dashboard settings.
type SettingsRepository interface {
	Get(ctx context.Context, userID string) (*models.Settings, error)
	Save(ctx context.Context, userID string, s *models.Settings) error
}

// settingsRedisRepo keeps each user's settings in a redis hash with a TTL, so
// stale accounts age out on their own.
type settingsRedisRepo struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSettingsRedisRepo connects to redis and verifies the connection.
func NewSettingsRedisRepo(addr, password string, ttl time.Duration) (SettingsRepository, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &settingsRedisRepo{client: rdb, ttl: ttl}, nil
}

func settingsKey(userID string) string {
	return fmt.Sprintf("settings:user:%s", userID)
}

// Get returns the stored settings, or the defaults when the user never saved.
func (r *settingsRedisRepo) Get(ctx context.Context, userID string) (*models.Settings, error) {
	fields, err := r.client.HGetAll(ctx, settingsKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	if len(fields) == 0 {
		return models.DefaultSettings(), nil
	}

	s := &models.Settings{
		AppName:        fields["app_name"],
		AppDescription: fields["app_description"],
		SupportEmail:   fields["support_email"],
	}
	if v, ok := fields["dark_mode"]; ok {
		s.DarkMode, _ = strconv.ParseBool(v)
	}
	if v, ok := fields["notifications_enabled"]; ok {
		s.NotificationsEnabled, _ = strconv.ParseBool(v)
	}
	return s, nil
}

// Save upserts the whole hash and refreshes the TTL.
func (r *settingsRedisRepo) Save(ctx context.Context, userID string, s *models.Settings) error {
	key := settingsKey(userID)

	fields := map[string]any{
		"app_name":              s.AppName,
		"app_description":       s.AppDescription,
		"support_email":         s.SupportEmail,
		"dark_mode":             strconv.FormatBool(s.DarkMode),
		"notifications_enabled": strconv.FormatBool(s.NotificationsEnabled),
	}

	if err := r.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return r.client.Expire(ctx, key, r.ttl).Err()
}
