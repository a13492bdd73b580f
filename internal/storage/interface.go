package storage

import "github.com/jstrand/remind/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// School classes (stored as a serialized list; malformed data falls
	// back to the built-in defaults)
	GetClasses() ([]models.SchoolClass, error)
	SaveClasses([]models.SchoolClass) error

	// Notification rules (same fallback behavior as classes)
	GetNotificationRules() ([]models.NotificationRule, error)
	SaveNotificationRules([]models.NotificationRule) error

	// Reminders
	AddReminder(models.Reminder) error
	GetReminder(id string) (models.Reminder, error)
	GetAllReminders() ([]models.Reminder, error)
	GetRemindersByDate(date string) ([]models.Reminder, error)
	UpdateReminder(models.Reminder) error
	DeleteReminder(id string) error
	DeleteAllReminders() error

	// Utils
	GetConfigPath() string
}
