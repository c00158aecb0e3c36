package common

const (
	// Cache key per user for the hourly overdue digest gate.
	KEY_OVERDUE_DIGEST = "overdue_digest:%d"
)

const (
	KEY_LOG_HOOK_SEND_ALERT = "send_alert"
)
