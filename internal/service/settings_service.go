package service

import (
	"context"
	"errors"
	"strings"

	"comicdash/internal/models"
	"comicdash/internal/repository"
)

var ErrInvalidSupportEmail = errors.New("support email is not a valid address")

// SettingsService reads and writes a user's superficial dashboard settings.
type SettingsService interface {
	Get(ctx context.Context, userID string) (*models.Settings, error)
	Update(ctx context.Context, userID string, s *models.Settings) error
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context, userID string) (*models.Settings, error) {
	return s.repo.Get(ctx, userID)
}

func (s *settingsService) Update(ctx context.Context, userID string, settings *models.Settings) error {
	if settings.SupportEmail != "" && !strings.Contains(settings.SupportEmail, "@") {
		return ErrInvalidSupportEmail
	}
	return s.repo.Save(ctx, userID, settings)
}
