package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jstrand/remind/internal/logger"
	"github.com/jstrand/remind/internal/models"
)

const (
	keyDarkMode     = "dark_mode"
	keySelectedDate = "selected_date"
	keyClasses      = "school_classes"
	keyRules        = "notification_rules"
)

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings WHERE key IN ($1, $2)", keyDarkMode, keySelectedDate)
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case keyDarkMode:
			settings.DarkMode = value == "true"
		case keySelectedDate:
			settings.SelectedDate = value
		}
	}

	return settings, rows.Err()
}

func (s *Store) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(keyDarkMode, fmt.Sprintf("%v", settings.DarkMode)); err != nil {
		return err
	}
	if _, err := stmt.Exec(keySelectedDate, settings.SelectedDate); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) GetClasses() ([]models.SchoolClass, error) {
	var classes []models.SchoolClass
	ok, err := s.getJSONSetting(keyClasses, &classes)
	if err != nil {
		return nil, err
	}
	if !ok {
		return models.DefaultClasses(), nil
	}
	return classes, nil
}

func (s *Store) SaveClasses(classes []models.SchoolClass) error {
	return s.saveJSONSetting(keyClasses, classes)
}

func (s *Store) GetNotificationRules() ([]models.NotificationRule, error) {
	var rules []models.NotificationRule
	ok, err := s.getJSONSetting(keyRules, &rules)
	if err != nil {
		return nil, err
	}
	if !ok {
		return models.DefaultNotificationRules(), nil
	}
	return rules, nil
}

func (s *Store) SaveNotificationRules(rules []models.NotificationRule) error {
	return s.saveJSONSetting(keyRules, rules)
}

func (s *Store) getJSONSetting(key string, dest any) (bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = $1", key).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(value), dest); err != nil {
		logger.Warn("Malformed settings value, falling back to defaults", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (s *Store) saveJSONSetting(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, key, string(data))
	return err
}
