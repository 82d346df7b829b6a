package services

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
)

const fixedNow = "2025-08-30T12:00:00Z"

func newTestCuration(store *mocks.BlobStore) *CurationService {
	svc := NewCurationService(store, zap.NewNop())
	svc.now = func() string { return fixedNow }
	return svc
}

func rawEntryFixture() entities.Entry {
	return entities.Entry{
		Timestamp:  "2025-01-01T09:30:00Z",
		Prompt:     "p",
		AIResponse: "r",
		Origin: entities.Origin{
			Bucket: testBucket,
			Key:    "raw/2025-01-01/abc123.json",
		},
	}
}

func TestCurationService_Approve(t *testing.T) {
	svc := newTestCuration(mocks.NewBlobStore())

	curated, err := svc.Approve(rawEntryFixture(), " final answer ", "note", "admin")
	require.NoError(t, err)

	assert.Equal(t, "final answer", curated.ApprovedResponse)
	assert.Equal(t, "admin", curated.ApprovedBy)
	assert.Equal(t, fixedNow, curated.ApprovedAt)
	assert.Equal(t, "note", curated.ReviewNotes)
	assert.Equal(t, testBucket, curated.SourceRawBucket)
	assert.Equal(t, "raw/2025-01-01/abc123.json", curated.SourceRawKey)

	// Raw fields carry over untouched.
	assert.Equal(t, "p", curated.Prompt)
	assert.Equal(t, "r", curated.AIResponse)
	assert.Equal(t, "2025-01-01T09:30:00Z", curated.Timestamp)
}

func TestCurationService_Approve_WhitespaceOnly(t *testing.T) {
	svc := newTestCuration(mocks.NewBlobStore())

	_, err := svc.Approve(rawEntryFixture(), "   ", "note", "admin")
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "approved text", verr.Field)
}

func TestCurationService_MintFresh(t *testing.T) {
	svc := newTestCuration(mocks.NewBlobStore())

	entry, err := svc.MintFresh("Q", "draft", "A", "admin", "endpoint-1")
	require.NoError(t, err)

	assert.Equal(t, "Q", entry.Prompt)
	assert.Equal(t, "draft", entry.AIResponse)
	assert.Equal(t, "A", entry.ApprovedResponse)
	assert.Equal(t, "admin", entry.ApprovedBy)
	assert.Equal(t, fixedNow, entry.Timestamp)
	assert.Equal(t, fixedNow, entry.ApprovedAt)
	assert.Equal(t, "endpoint-1", entry.UsedModel)
	assert.Empty(t, entry.SourceRawKey)
	assert.Empty(t, entry.SourceRawBucket)
}

func TestCurationService_MintFresh_Validation(t *testing.T) {
	svc := newTestCuration(mocks.NewBlobStore())

	var verr *ValidationError

	_, err := svc.MintFresh("", "draft", "A", "admin", "m")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "prompt", verr.Field)

	_, err = svc.MintFresh("Q", "draft", "  ", "admin", "m")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "approved text", verr.Field)
}

func TestCurationService_Persist_DerivedKey(t *testing.T) {
	store := mocks.NewBlobStore()
	svc := newTestCuration(store)

	curated, err := svc.Approve(rawEntryFixture(), "r2", "ok", "admin")
	require.NoError(t, err)

	key, err := svc.Persist(context.Background(), curated, testBucket, "curated")
	require.NoError(t, err)
	assert.Equal(t, "curated/2025-01-01/abc123.json", key)
}

func TestCurationService_Persist_RoundTrip(t *testing.T) {
	store := mocks.NewBlobStore()
	svc := newTestCuration(store)

	curated, err := svc.Approve(rawEntryFixture(), "r2", "ok", "admin")
	require.NoError(t, err)

	key, err := svc.Persist(context.Background(), curated, testBucket, "curated")
	require.NoError(t, err)

	data, err := store.Get(context.Background(), testBucket, key)
	require.NoError(t, err)

	var got entities.Entry
	require.NoError(t, json.Unmarshal(data, &got))

	// Field-for-field equality; bookkeeping is not persisted so absent
	// optionals stay absent.
	curated.Origin = entities.Origin{}
	assert.Equal(t, curated, got)
}

func TestCurationService_Persist_WriteFailure(t *testing.T) {
	store := mocks.NewBlobStore()
	store.PutErr = errors.New("write denied")
	svc := newTestCuration(store)

	_, err := svc.Persist(context.Background(), rawEntryFixture(), testBucket, "curated")
	require.Error(t, err)
}

func TestCurationService_RetireRaw(t *testing.T) {
	store := mocks.NewBlobStore()
	store.Seed(testBucket, "raw/2025-01-01/abc123.json", []byte("{}"))
	svc := newTestCuration(store)

	err := svc.RetireRaw(context.Background(), testBucket, "raw/2025-01-01/abc123.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"raw/2025-01-01/abc123.json"}, store.Deleted)

	_, err = store.Get(context.Background(), testBucket, "raw/2025-01-01/abc123.json")
	require.Error(t, err)
}

func TestCurationService_RetireRaw_FailureIsReported(t *testing.T) {
	store := mocks.NewBlobStore()
	store.DeleteErr = errors.New("delete denied")
	svc := newTestCuration(store)

	err := svc.RetireRaw(context.Background(), testBucket, "raw/2025-01-01/abc123.json")
	require.Error(t, err)
}
