package domain

import "time"

// Notification is an in-app message row created as a side effect of a
// lifecycle event. Creation is fire-and-forget: a failed insert is
// logged and never fails the transition that triggered it.
type Notification struct {
	ID         int64             `json:"id"`
	UserID     string            `json:"user_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes"`
	CreatedOn  time.Time         `json:"created_on"`
}
