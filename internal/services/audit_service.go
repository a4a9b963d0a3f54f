package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmorell/newsroom-be/internal/models"
)

// AuditServiceProvider defines the interface for audit trail services.
type AuditServiceProvider interface {
	Record(eventType, level, message string, actorID *string) error
	GetRecentEvents(limit int) ([]models.AuditEvent, error)
	PruneOlderThan(cutoff time.Time) (int64, error)
}

// AuditService provides business logic for the audit trail.
type AuditService struct {
	db *sql.DB
}

// NewAuditService creates a new AuditService.
func NewAuditService(db *sql.DB) *AuditService {
	return &AuditService{db: db}
}

// Record logs a new audit event to the database.
func (s *AuditService) Record(eventType, level, message string, actorID *string) error {
	event := models.AuditEvent{
		ID:      uuid.New().String(),
		Type:    eventType,
		Level:   level,
		Message: message,
		ActorID: actorID,
	}

	stmt, err := s.db.Prepare("INSERT INTO audit_events (id, type, level, message, actor_id) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(event.ID, event.Type, event.Level, event.Message, event.ActorID)
	return err
}

// GetRecentEvents retrieves the most recent audit events from the database.
func (s *AuditService) GetRecentEvents(limit int) ([]models.AuditEvent, error) {
	rows, err := s.db.Query("SELECT id, type, level, message, actor_id, created_at FROM audit_events ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.AuditEvent
	for rows.Next() {
		var event models.AuditEvent
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.ActorID, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// PruneOlderThan deletes audit events created before the cutoff and
// returns the number of rows removed.
func (s *AuditService) PruneOlderThan(cutoff time.Time) (int64, error) {
	result, err := s.db.Exec("DELETE FROM audit_events WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
