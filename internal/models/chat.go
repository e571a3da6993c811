package models

import "time"

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Events    []Event   `json:"events,omitempty"`
	Rule      string    `json:"rule,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
