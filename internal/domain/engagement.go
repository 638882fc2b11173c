package domain

import "time"

// Comment belongs to exactly one confession. Append-only, no edit path.
type Comment struct {
	ConfessionID string    `json:"confessionId"`
	UserID       string    `json:"userId"`
	GhostName    string    `json:"ghostName"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is an anonymous identity issued by POST /api/session.
type Session struct {
	UserID    string `json:"userUUID"`
	GhostName string `json:"ghostName"`
}

// Event is a realtime notification fanned out to websocket listeners.
type Event struct {
	Type       string      `json:"type"`
	Confession *Confession `json:"confession,omitempty"`
}

const EventConfessionPosted = "confession.posted"
