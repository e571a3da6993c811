package models

import "time"

// BookmarkToggled is published after every persisted bookmark toggle.
type BookmarkToggled struct {
	ClientID   string    `json:"client_id"`
	EventID    string    `json:"event_id"`
	Bookmarked bool      `json:"bookmarked"`
	Total      int       `json:"total"`
	At         time.Time `json:"at"`
}

// ChatClassified is published once the assistant reply for a message is ready.
type ChatClassified struct {
	SessionID string    `json:"session_id"`
	Utterance string    `json:"utterance"`
	Rule      string    `json:"rule"`
	EventIDs  []string  `json:"event_ids"`
	At        time.Time `json:"at"`
}
