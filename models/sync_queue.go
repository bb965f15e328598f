package models

import "time"

// MaxRetryAttempts is the attempt budget of a queue entry. Once an entry has
// been attempted this many times without completing it is terminally Failed.
const MaxRetryAttempts = 5

// Operation is the kind of mutation a queue entry propagates.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

func (o Operation) Valid() bool {
	switch o {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// QueueStatus is the lifecycle state of a queue entry.
type QueueStatus string

const (
	QueueStatusPending    QueueStatus = "pending"
	QueueStatusProcessing QueueStatus = "processing"
	QueueStatusFailed     QueueStatus = "failed"
	QueueStatusCompleted  QueueStatus = "completed"
)

// OutstandingStatuses are the statuses in which at most one entry may exist
// per (table, local record).
func OutstandingStatuses() []QueueStatus {
	return []QueueStatus{QueueStatusPending, QueueStatusProcessing}
}

// SyncQueueEntry is one pending or historical mutation awaiting propagation
// to the remote document store.
//
// The column set of the sync_queue table mirrors this struct exactly and is a
// durable on-device contract.
type SyncQueueEntry struct {
	// ID is the local row identity of the entry.
	ID int64 `json:"id"`

	// TableName is the entity kind the mutation belongs to.
	TableName TableName `json:"table_name"`

	// LocalRecordID is the local store identity of the mutated record.
	LocalRecordID string `json:"local_record_id"`

	// RemoteID is nil until the remote copy of the record exists.
	RemoteID *string `json:"remote_id,omitempty"`

	// Operation is the mutation to apply remotely.
	Operation Operation `json:"operation"`

	// Payload is the encoded Snapshot of the record taken at enqueue time.
	Payload []byte `json:"payload"`

	CreatedAt     time.Time   `json:"created_at"`
	LastAttemptAt *time.Time  `json:"last_attempt_at,omitempty"`
	Attempts      int         `json:"attempts"`
	LastError     *string     `json:"last_error,omitempty"`
	Status        QueueStatus `json:"status"`
}

// IsOutstanding reports whether the entry is Pending or Processing.
func (e SyncQueueEntry) IsOutstanding() bool {
	return e.Status == QueueStatusPending || e.Status == QueueStatusProcessing
}

// IsExhausted reports whether the attempt budget is spent.
func (e SyncQueueEntry) IsExhausted() bool {
	return e.Attempts >= MaxRetryAttempts
}

// HasRemoteID reports whether the entry carries a confirmed remote id.
func (e SyncQueueEntry) HasRemoteID() bool {
	return e.RemoteID != nil && *e.RemoteID != ""
}

// QueueFilter narrows queue listings. Zero fields do not filter.
type QueueFilter struct {
	TableName     TableName
	LocalRecordID string
	Statuses      []QueueStatus
	Limit         int
}

// EnqueueRequest describes one local mutation to propagate.
type EnqueueRequest struct {
	Table    TableName
	LocalID  string
	Op       Operation
	Payload  []byte
	RemoteID *string
}
