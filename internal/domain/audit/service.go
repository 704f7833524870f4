package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"zenbill/internal/core/appctx"
	"zenbill/internal/core/id"
)

// Repository defines audit log storage operations.
type Repository interface {
	// Insert stores an audit entry.
	Insert(ctx context.Context, entry *Entry) error

	// ListByEntity retrieves entries for an entity, newest first.
	ListByEntity(ctx context.Context, entityType string, entityID id.ID, limit int) ([]Entry, error)
}

// Service records and retrieves audit history.
type Service struct {
	repo  Repository
	codec *Codec
}

// NewService creates a new audit service.
func NewService(repo Repository) (*Service, error) {
	codec, err := NewCodec()
	if err != nil {
		return nil, err
	}
	return &Service{repo: repo, codec: codec}, nil
}

// Record stores an audit entry, filling in actor and timestamp from context.
func (s *Service) Record(ctx context.Context, entry Entry) error {
	if user := appctx.GetUser(ctx); user != nil {
		if entry.UserID == "" {
			entry.UserID = user.UserID
		}
		if entry.UserEmail == "" {
			entry.UserEmail = user.Email
		}
	}

	if id.IsNil(entry.ID) {
		entry.ID = id.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	s.codec.Compress(&entry)

	return s.repo.Insert(ctx, &entry)
}

// RecordChange is a convenience method for logging entity changes.
func (s *Service) RecordChange(
	ctx context.Context,
	entityType string,
	entityID id.ID,
	action Action,
	changes map[string]any,
) error {
	changesJSON, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("marshal changes: %w", err)
	}

	return s.Record(ctx, Entry{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Changes:    changesJSON,
	})
}

// History retrieves audit history for an entity with changes decompressed.
func (s *Service) History(
	ctx context.Context,
	entityType string,
	entityID id.ID,
	limit int,
) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	entries, err := s.repo.ListByEntity(ctx, entityType, entityID, limit)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		if err := s.codec.Decompress(&entries[i]); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

// Diff calculates the field-level difference between old and new entity states.
func Diff(oldState, newState map[string]any) map[string]any {
	changes := make(map[string]any)

	for key, newVal := range newState {
		oldVal, exists := oldState[key]
		if !exists {
			changes[key] = map[string]any{"old": nil, "new": newVal}
		} else if !equal(oldVal, newVal) {
			changes[key] = map[string]any{"old": oldVal, "new": newVal}
		}
	}

	for key, oldVal := range oldState {
		if _, exists := newState[key]; !exists {
			changes[key] = map[string]any{"old": oldVal, "new": nil}
		}
	}

	return changes
}

func equal(a, b any) bool {
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}
