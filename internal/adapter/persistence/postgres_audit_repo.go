package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/ports"
)

// PostgresAuditRepository implements AuditRepository using PostgreSQL.
// The table is append-only; ordering and timestamp are server-assigned.
type PostgresAuditRepository struct {
	db *sql.DB
}

// NewPostgresAuditRepository creates a new PostgreSQL audit repository
func NewPostgresAuditRepository(db *sql.DB) ports.AuditRepository {
	return &PostgresAuditRepository{db: db}
}

// Append stores a new audit entry
func (r *PostgresAuditRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	query := `
		INSERT INTO audit_log (username, action, details, origin_ip)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		entry.Username,
		string(entry.Action),
		entry.Details,
		entry.OriginIP,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	return nil
}
