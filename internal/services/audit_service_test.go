package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRecordAndGetRecent(t *testing.T) {
	svc := NewAuditService(newTestDB(t))

	actor := "user-1"
	require.NoError(t, svc.Record("user.register", "info", "User alice registered with role admin", &actor))
	require.NoError(t, svc.Record("user.login.fail", "warn", "Failed login for alice", nil))

	events, err := svc.GetRecentEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	types := []string{events[0].Type, events[1].Type}
	assert.Contains(t, types, "user.register")
	assert.Contains(t, types, "user.login.fail")

	for _, e := range events {
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.CreatedAt.IsZero())
	}
}

func TestAuditGetRecent_RespectsLimit(t *testing.T) {
	svc := NewAuditService(newTestDB(t))

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Record("article.create", "info", "created", nil))
	}

	events, err := svc.GetRecentEvents(3)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestAuditPruneOlderThan(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuditService(db)

	require.NoError(t, svc.Record("user.login", "info", "recent event", nil))

	// Backdate one row past any plausible retention window.
	old := time.Now().Add(-48 * time.Hour)
	_, err := db.Exec("INSERT INTO audit_events (id, type, level, message, created_at) VALUES (?, ?, ?, ?, ?)",
		"old-event", "user.login", "info", "old event", old)
	require.NoError(t, err)

	pruned, err := svc.PruneOlderThan(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)

	events, err := svc.GetRecentEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "recent event", events[0].Message)
}
