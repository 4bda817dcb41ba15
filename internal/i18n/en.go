package i18n

var en = map[string]string{
	// Notifications
	"stream_started_title":   "Stream Started",
	"stream_started_message": "%s has started streaming: %s",
	"streamer_found_title":   "Streamer Found",
	"streamer_found_message": "%s found. You will be notified when the streaming starts.",
	"button_watch":           "Watch stream",
	"button_ok":              "OK",

	// Prompt
	"app_title":          "Stream Notify",
	"prompt_streamer":    "Enter the streamer's username:",
	"prompt_format":      "Choose the notification format:",
	"prompt_hint":        "enter: confirm  esc: quit",
	"format_hint":        "↑/↓: select  enter: confirm  esc: quit",
	"err_empty_login":    "Username cannot be empty.",
	"err_invalid_login":  "Username must be alphanumeric.",
	"err_not_found":      "Streamer %q was not found. Try another name.",
	"err_lookup_failed":  "Could not check the streamer: %v",
	"format_dialog":      "Dialog (Watch stream / OK buttons)",
	"format_notify":      "Notification (desktop banner)",
	"looking_up":         "Looking up %s...",

	// Watch view
	"watching":       "Watching %s",
	"quit_hint":      "Type [q] to quit the application.",
	"status_live":    "LIVE",
	"status_offline": "OFFLINE",
	"status_unknown": "checking...",
	"last_check":     "Last check: %s",
	"live_title":     "Title: %s",
	"live_game":      "Category: %s",
	"live_viewers":   "Viewers: %d",
	"warn_failures":  "%d consecutive %s errors, still retrying",
	"last_error":     "Last error: %s",
	"notified_at":    "Notified at %s",
}
