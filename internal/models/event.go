package models

import "time"

// AuditEvent represents a loggable action or alert in the system.
type AuditEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "user.register", "article.create"
	Level     string    `json:"level"` // e.g., "info", "warn", "error"
	Message   string    `json:"message"`
	ActorID   *string   `json:"actorId,omitempty"` // Nullable for anonymous events
	CreatedAt time.Time `json:"createdAt"`
}
