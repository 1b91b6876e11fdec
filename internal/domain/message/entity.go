package message

import "time"

// Message is an in-app notification addressed to one user.
type Message struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Image     string    `json:"image"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
