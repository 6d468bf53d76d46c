package domain

import "time"

// Settings is a per-user settings document. PK: user_id; writes are upserts.
type Settings struct {
	UserID    string    `json:"userId" dynamodbav:"user_id"`
	GoogleID  string    `json:"googleId" dynamodbav:"google_id"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}
