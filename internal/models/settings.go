package models

// Settings represents application-wide preferences
type Settings struct {
	DarkMode     bool   `json:"dark_mode"`     // whether the dark theme is active
	SelectedDate string `json:"selected_date"` // last viewed calendar date (YYYY-MM-DD), empty if never set
}
