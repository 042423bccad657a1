package models

import "time"

// Store backend names
const (
	BackendFile      = "file"
	BackendSQLite    = "sqlite"
	BackendPostgres  = "postgres"
	BackendRedis     = "redis"
	BackendFirestore = "firestore"
)

// Form field carrying the voted label on POST /poll
const VoteField = "add"

// Response types

// OptionPercentage is one row of GET /poll
type OptionPercentage struct {
	Label      string `json:"label"`
	Percentage string `json:"percentage"`
}

// Event types

// VoteEvent is published after a vote has been persisted
type VoteEvent struct {
	ID     string    `json:"id"`
	Label  string    `json:"label"`
	CastAt time.Time `json:"cast_at"`
	IPHash string    `json:"ip_hash,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
