package models

// Settings holds the superficial per-staff dashboard preferences. These never
// touch the table store; they live in a redis hash keyed by user id.
type Settings struct {
	AppName              string `json:"app_name"`
	AppDescription       string `json:"app_description"`
	SupportEmail         string `json:"support_email"`
	DarkMode             bool   `json:"dark_mode"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}

// DefaultSettings returns the values shown before a user ever saves.
func DefaultSettings() *Settings {
	return &Settings{
		AppName:              "Comic Book Admin",
		AppDescription:       "Admin dashboard for managing comic books in the mobile app",
		SupportEmail:         "support@example.com",
		DarkMode:             false,
		NotificationsEnabled: true,
	}
}
