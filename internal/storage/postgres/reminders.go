package postgres

import (
	"database/sql"
	"fmt"

	"github.com/jstrand/remind/internal/models"
)

func (s *Store) AddReminder(r models.Reminder) error {
	return s.UpdateReminder(r)
}

func (s *Store) GetReminder(id string) (models.Reminder, error) {
	row := s.db.QueryRow(`
		SELECT id, name, class, due_date, trackable, completed, created_at
		FROM reminders WHERE id = $1`, id)

	var r models.Reminder
	err := row.Scan(&r.ID, &r.Name, &r.Class, &r.Date, &r.Trackable, &r.Completed, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Reminder{}, fmt.Errorf("reminder with id %s not found", id)
	}
	if err != nil {
		return models.Reminder{}, err
	}
	return r, nil
}

func (s *Store) GetAllReminders() ([]models.Reminder, error) {
	rows, err := s.db.Query(`
		SELECT id, name, class, due_date, trackable, completed, created_at
		FROM reminders ORDER BY due_date ASC, created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReminders(rows)
}

func (s *Store) GetRemindersByDate(date string) ([]models.Reminder, error) {
	rows, err := s.db.Query(`
		SELECT id, name, class, due_date, trackable, completed, created_at
		FROM reminders WHERE due_date = $1 ORDER BY created_at ASC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectReminders(rows)
}

func (s *Store) UpdateReminder(r models.Reminder) error {
	_, err := s.db.Exec(`
		INSERT INTO reminders (id, name, class, due_date, trackable, completed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			class = EXCLUDED.class,
			due_date = EXCLUDED.due_date,
			trackable = EXCLUDED.trackable,
			completed = EXCLUDED.completed,
			created_at = EXCLUDED.created_at`,
		r.ID, r.Name, r.Class, r.Date, r.Trackable, r.Completed, r.CreatedAt,
	)
	return err
}

func (s *Store) DeleteReminder(id string) error {
	_, err := s.db.Exec("DELETE FROM reminders WHERE id = $1", id)
	return err
}

func (s *Store) DeleteAllReminders() error {
	_, err := s.db.Exec("DELETE FROM reminders")
	return err
}

func collectReminders(rows *sql.Rows) ([]models.Reminder, error) {
	var reminders []models.Reminder
	for rows.Next() {
		var r models.Reminder
		if err := rows.Scan(&r.ID, &r.Name, &r.Class, &r.Date, &r.Trackable, &r.Completed, &r.CreatedAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}
