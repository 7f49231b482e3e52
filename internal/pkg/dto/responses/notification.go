package responses

import "time"

type Notification struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	EntityID  string    `json:"entity_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationList struct {
	Unread        int            `json:"unread"`
	Notifications []Notification `json:"notifications"`
}
