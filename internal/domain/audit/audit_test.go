package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenbill/internal/core/appctx"
	"zenbill/internal/core/entity"
	"zenbill/internal/core/id"
)

type mockRepo struct {
	entries []Entry
}

func (m *mockRepo) Insert(ctx context.Context, entry *Entry) error {
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockRepo) ListByEntity(ctx context.Context, entityType string, entityID id.ID, limit int) ([]Entry, error) {
	var out []Entry
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		e := m.entries[i]
		if e.EntityType == entityType && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

func userCtx() context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: "user-7",
		Email:  "ops@example.com",
	})
}

func TestRecordFillsActorAndTimestamp(t *testing.T) {
	repo := &mockRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	docID := id.New()
	err = svc.RecordChange(userCtx(), "sales_order", docID, ActionCreate,
		map[string]any{"number": map[string]any{"old": nil, "new": "SO-2026-00001"}})
	require.NoError(t, err)

	require.Len(t, repo.entries, 1)
	e := repo.entries[0]
	assert.Equal(t, "user-7", e.UserID)
	assert.Equal(t, "ops@example.com", e.UserEmail)
	assert.False(t, e.CreatedAt.IsZero())
	assert.False(t, id.IsNil(e.ID))
	assert.Equal(t, CompressionNone, e.CompressionAlgo)
}

func TestLargePayloadCompressedAndRestored(t *testing.T) {
	repo := &mockRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	// Well over the threshold, and repetitive enough to compress.
	big := map[string]any{"notes": string(bytes.Repeat([]byte("line item adjustment "), 2000))}
	docID := id.New()
	require.NoError(t, svc.RecordChange(userCtx(), "quote", docID, ActionUpdate, big))

	stored := repo.entries[0]
	assert.Equal(t, CompressionZstd, stored.CompressionAlgo)
	assert.Nil(t, stored.Changes)
	assert.NotEmpty(t, stored.ChangesCompressed)
	assert.Less(t, len(stored.ChangesCompressed), DefaultCompressThreshold)

	history, err := svc.History(context.Background(), "quote", docID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)

	var restored map[string]any
	require.NoError(t, json.Unmarshal(history[0].Changes, &restored))
	assert.Contains(t, restored, "notes")
}

func TestHistoryNewestFirst(t *testing.T) {
	repo := &mockRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	docID := id.New()
	require.NoError(t, svc.RecordChange(userCtx(), "payment", docID, ActionCreate, map[string]any{"n": 1}))
	require.NoError(t, svc.RecordChange(userCtx(), "payment", docID, ActionIssue, map[string]any{"n": 2}))

	history, err := svc.History(context.Background(), "payment", docID, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, ActionIssue, history[0].Action)
	assert.Equal(t, ActionCreate, history[1].Action)
}

func TestDiff(t *testing.T) {
	oldState := map[string]any{"status": "draft", "notes": "x", "gone": 1}
	newState := map[string]any{"status": "issued", "notes": "x", "added": true}

	changes := Diff(oldState, newState)

	assert.Len(t, changes, 3)
	assert.Equal(t, map[string]any{"old": "draft", "new": "issued"}, changes["status"])
	assert.Equal(t, map[string]any{"old": 1, "new": nil}, changes["gone"])
	assert.Equal(t, map[string]any{"old": nil, "new": true}, changes["added"])
	assert.NotContains(t, changes, "notes")
}

func TestEnrichCreatedBy(t *testing.T) {
	doc := entity.NewBaseDocument()
	EnrichCreatedBy(userCtx(), &doc)
	assert.Equal(t, "user-7", doc.CreatedBy)
	assert.Equal(t, "user-7", doc.UpdatedBy)

	// Without a user in context nothing changes.
	other := entity.NewBaseDocument()
	EnrichCreatedBy(context.Background(), &other)
	assert.Empty(t, other.CreatedBy)
}
