package domain

import "time"

// AnonymousName is the display name given to users created from a session token.
const AnonymousName = "Anonymous"

// User is a chat participant identified by its session token.
type User struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatInteraction is one stored message of an exchange, either the user's input or the bot reply.
type ChatInteraction struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"user_id"`
	Context     string      `json:"context"`
	MessageType MessageType `json:"message_type"`
	MessageText string      `json:"message_text"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Campaign is an advertising campaign. Only the schema exists; no operation reads or writes it yet.
type Campaign struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Budget    *int64         `json:"budget,omitempty"`
	Status    CampaignStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}
