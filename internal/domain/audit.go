package domain

import "time"

// AuditAction tags a persisted audit entry with the operation it records.
type AuditAction string

const (
	AuditActionCreateTask AuditAction = "CREATE_TASK"
	AuditActionUpdateTask AuditAction = "UPDATE_TASK"
	AuditActionDeleteTask AuditAction = "DELETE_TASK"
)

// AuditEntry represents one row of the persisted audit trail. Entries are
// append-only: never mutated or deleted. The ID and CreatedAt are assigned
// by the store on append.
type AuditEntry struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Action    AuditAction `json:"action"`
	Details   string      `json:"details"`
	OriginIP  string      `json:"origin_ip"`
	CreatedAt time.Time   `json:"created_at"`
}
