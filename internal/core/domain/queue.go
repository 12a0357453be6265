package domain

import "time"

// Queue item statuses. Processing, done and failed are written by the
// publish job worker; the pipeline only creates pending rows and resets
// them on reschedule.
const (
	QueueStatusPending    = "pending"
	QueueStatusProcessing = "processing"
	QueueStatusFailed     = "failed"
	QueueStatusDone       = "done"
)

// PublishingQueueItem is one unit of work: attempt this post on this
// connection. Identity is effectively (PostID, ConnectionID); at most one
// pending row may exist per pair. Attempts, LastAttemptAt, LastError and
// NextAttemptAt belong to the publish job worker and are only touched
// here by an explicit user reschedule.
type PublishingQueueItem struct {
	ID            int64
	PostID        int64
	ConnectionID  int64
	ScheduledFor  time.Time
	Status        string
	Attempts      int
	LastAttemptAt *time.Time
	LastError     *string
	NextAttemptAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
