package monitoring

import (
	"testing"
	"time"

	"github.com/jmorell/newsroom-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAudit records calls without a database.
type fakeAudit struct {
	pruned   int64
	cutoffs  []time.Time
	recorded []string
}

func (f *fakeAudit) Record(eventType, level, message string, actorID *string) error {
	f.recorded = append(f.recorded, eventType)
	return nil
}

func (f *fakeAudit) GetRecentEvents(limit int) ([]models.AuditEvent, error) {
	return nil, nil
}

func (f *fakeAudit) PruneOlderThan(cutoff time.Time) (int64, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.pruned, nil
}

func TestNewRetentionJob_InvalidCron(t *testing.T) {
	_, err := NewRetentionJob(&fakeAudit{}, "not a cron expr", time.Hour)
	assert.Error(t, err)
}

func TestNewRetentionJob_ValidCron(t *testing.T) {
	job, err := NewRetentionJob(&fakeAudit{}, "0 4 * * *", time.Hour)
	require.NoError(t, err)
	assert.False(t, job.nextRun.IsZero())
	assert.True(t, job.nextRun.After(time.Now()))
}

func TestSweep(t *testing.T) {
	audit := &fakeAudit{pruned: 3}
	job, err := NewRetentionJob(audit, "0 4 * * *", 24*time.Hour)
	require.NoError(t, err)

	now := time.Now()
	job.sweep(now)

	require.Len(t, audit.cutoffs, 1)
	assert.WithinDuration(t, now.Add(-24*time.Hour), audit.cutoffs[0], time.Second)
	assert.Contains(t, audit.recorded, "audit.prune")
}

func TestSweep_RecordsEvenWhenNothingPruned(t *testing.T) {
	audit := &fakeAudit{pruned: 0}
	job, err := NewRetentionJob(audit, "0 4 * * *", 24*time.Hour)
	require.NoError(t, err)

	job.sweep(time.Now())

	// Every sweep leaves a trail, including no-op ones.
	assert.Equal(t, []string{"audit.prune"}, audit.recorded)
}
