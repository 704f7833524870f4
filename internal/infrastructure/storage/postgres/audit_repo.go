package postgres

import (
	"context"
	"fmt"

	"zenbill/internal/core/id"
	"zenbill/internal/domain/audit"
)

// Compile-time check.
var _ audit.Repository = (*AuditRepository)(nil)

// AuditRepository stores document change history in sys_audit.
// Compression of large change payloads happens in the domain service;
// this repository stores whatever it is given.
type AuditRepository struct {
	txManager *TxManager
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(txManager *TxManager) *AuditRepository {
	return &AuditRepository{txManager: txManager}
}

// Insert stores an audit entry.
func (r *AuditRepository) Insert(ctx context.Context, entry *audit.Entry) error {
	sql := `
		INSERT INTO sys_audit (
			id, entity_type, entity_id, action, user_id, user_email,
			changes, changes_compressed, compression_algo, metadata,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql,
		entry.ID, entry.EntityType, entry.EntityID, entry.Action,
		entry.UserID, entry.UserEmail,
		entry.Changes, entry.ChangesCompressed, entry.CompressionAlgo,
		entry.Metadata, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListByEntity retrieves entries for an entity, newest first.
func (r *AuditRepository) ListByEntity(ctx context.Context, entityType string, entityID id.ID, limit int) ([]audit.Entry, error) {
	sql := `
		SELECT id, entity_type, entity_id, action, user_id, user_email,
			   changes, changes_compressed, compression_algo, metadata,
			   created_at
		FROM sys_audit
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.txManager.GetQuerier(ctx).Query(ctx, sql, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit history: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		err := rows.Scan(
			&e.ID, &e.EntityType, &e.EntityID, &e.Action, &e.UserID, &e.UserEmail,
			&e.Changes, &e.ChangesCompressed, &e.CompressionAlgo, &e.Metadata,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
