package constants

const (
	AppName            = "remind"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/remind/remind.db"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DisplayDateFormat is the human-readable date format used in notification bodies
	DisplayDateFormat = "Monday, Jan 2"

	// Notify constants
	AgentLockfileName      = "remind-agent.lock"
	AgentProcessPrefix     = "remind-agent"
	AgentConfigIdentifier  = "com.jstrand.remind"
	NotificationDurationMs = 5000

	// DefaultClassColor is used when a reminder's class has no configured color
	DefaultClassColor = "#9E9E9E"
)
