package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ersonp/feedback-curator/internal/domain/entities"
	"github.com/ersonp/feedback-curator/internal/domain/mocks"
	"github.com/ersonp/feedback-curator/internal/domain/services"
)

type approveFixture struct {
	store *mocks.BlobStore
	audit *mocks.AuditLog
	repo  *services.EntryRepository
	h     *ApproveHandler
}

func newApproveFixture() *approveFixture {
	log := zap.NewNop()
	store := mocks.NewBlobStore()
	audit := &mocks.AuditLog{}
	repo := services.NewEntryRepository(store, log, 0)
	curation := services.NewCurationService(store, log)
	review := NewReviewHandler(repo, log, testBucket, rawPrefix)
	return &approveFixture{
		store: store,
		audit: audit,
		repo:  repo,
		h:     NewApproveHandler(review, curation, repo, audit, log, testBucket, curPrefix),
	}
}

func TestApproveHandler_EndToEnd(t *testing.T) {
	f := newApproveFixture()
	ctx := context.Background()
	rawKey := "raw/2025-01-01/abc123.json"
	seedRaw(f.store, rawKey, "p", "r")

	result, err := f.h.Handle(ctx, rawKey, ApproveOptions{
		ApprovedText: "r2",
		Notes:        "ok",
		Approver:     "admin",
		DeleteRaw:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, "curated/2025-01-01/abc123.json", result.CuratedKey)
	assert.True(t, result.RawRetired)
	assert.Empty(t, result.Warning)

	// The curated record carries the approval and the provenance pointer.
	data, err := f.store.Get(ctx, testBucket, result.CuratedKey)
	require.NoError(t, err)
	var curated entities.Entry
	require.NoError(t, json.Unmarshal(data, &curated))
	assert.Equal(t, "r2", curated.ApprovedResponse)
	assert.Equal(t, "ok", curated.ReviewNotes)
	assert.Equal(t, "admin", curated.ApprovedBy)
	assert.Equal(t, rawKey, curated.SourceRawKey)
	assert.Equal(t, testBucket, curated.SourceRawBucket)

	// The raw object is gone and the listing no longer includes it.
	_, err = f.store.Get(ctx, testBucket, rawKey)
	require.Error(t, err)
	keys, err := f.repo.ListKeys(ctx, testBucket, rawPrefix)
	require.NoError(t, err)
	assert.NotContains(t, keys, rawKey)

	// Both actions hit the audit trail.
	require.Len(t, f.audit.Entries, 2)
	assert.Equal(t, entities.AuditActionApproved, f.audit.Entries[0].Action)
	assert.Equal(t, entities.AuditActionRawRetired, f.audit.Entries[1].Action)
}

func TestApproveHandler_KeepsRawByDefault(t *testing.T) {
	f := newApproveFixture()
	rawKey := "raw/2025-01-01/abc123.json"
	seedRaw(f.store, rawKey, "p", "r")

	result, err := f.h.Handle(context.Background(), rawKey, ApproveOptions{
		ApprovedText: "final",
		Approver:     "admin",
	})
	require.NoError(t, err)
	assert.False(t, result.RawRetired)

	_, err = f.store.Get(context.Background(), testBucket, rawKey)
	require.NoError(t, err)
}

func TestApproveHandler_ValidationBeforeWrite(t *testing.T) {
	f := newApproveFixture()
	rawKey := "raw/2025-01-01/abc123.json"
	seedRaw(f.store, rawKey, "p", "r")

	_, err := f.h.Handle(context.Background(), rawKey, ApproveOptions{
		ApprovedText: "   ",
		Approver:     "admin",
	})
	require.Error(t, err)

	var verr *services.ValidationError
	assert.True(t, errors.As(err, &verr))

	// No partial state: nothing was written to the curated namespace.
	keys, err := f.store.List(context.Background(), testBucket, curPrefix+"/")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestApproveHandler_DeleteFailureIsWarning(t *testing.T) {
	f := newApproveFixture()
	rawKey := "raw/2025-01-01/abc123.json"
	seedRaw(f.store, rawKey, "p", "r")
	f.store.DeleteErr = errors.New("delete denied")

	result, err := f.h.Handle(context.Background(), rawKey, ApproveOptions{
		ApprovedText: "final",
		Approver:     "admin",
		DeleteRaw:    true,
	})

	// The curated write succeeded; the failed delete is only a warning.
	require.NoError(t, err)
	assert.Equal(t, "curated/2025-01-01/abc123.json", result.CuratedKey)
	assert.False(t, result.RawRetired)
	assert.NotEmpty(t, result.Warning)

	_, err = f.store.Get(context.Background(), testBucket, result.CuratedKey)
	require.NoError(t, err)
}

func TestApproveHandler_MissingRawEntry(t *testing.T) {
	f := newApproveFixture()

	_, err := f.h.Handle(context.Background(), "raw/2025-01-01/missing.json", ApproveOptions{
		ApprovedText: "final",
		Approver:     "admin",
	})
	require.Error(t, err)
}

func TestExtractPrefix(t *testing.T) {
	assert.Equal(t, "raw", ExtractPrefix("raw/2025-01-01/a.json"))
	assert.Equal(t, "raw", ExtractPrefix("raw"))
	assert.Equal(t, "", ExtractPrefix(""))
}
