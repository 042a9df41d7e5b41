package models

type PushRequest struct {
	UserIDs []string          `json:"user_ids"`
	Title   string            `json:"title"`
	Message string            `json:"message"`
	URL     string            `json:"url"`
	Data    map[string]string `json:"data"`
}

type PushResult struct {
	NotificationID string `json:"notification_id"`
	Recipients     int    `json:"recipients"`
}
