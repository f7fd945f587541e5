package dto

import "comicdash/internal/models"

// UpdateSettingsDTO used for PUT /settings. All fields required: the form
// always submits the full tab, never a partial patch.
type UpdateSettingsDTO struct {
	AppName              string `json:"app_name" binding:"required,max=255"`
	AppDescription       string `json:"app_description" binding:"max=1000"`
	SupportEmail         string `json:"support_email" binding:"omitempty,email"`
	DarkMode             bool   `json:"dark_mode"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}

func (d UpdateSettingsDTO) ToModel() *models.Settings {
	return &models.Settings{
		AppName:              d.AppName,
		AppDescription:       d.AppDescription,
		SupportEmail:         d.SupportEmail,
		DarkMode:             d.DarkMode,
		NotificationsEnabled: d.NotificationsEnabled,
	}
}
