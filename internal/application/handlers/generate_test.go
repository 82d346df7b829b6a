package handlers

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ersonp/feedback-curator/internal/domain/entities"
	"github.com/ersonp/feedback-curator/internal/domain/mocks"
	"github.com/ersonp/feedback-curator/internal/domain/ports"
	"github.com/ersonp/feedback-curator/internal/domain/services"
)

type generateFixture struct {
	store     *mocks.BlobStore
	generator *mocks.DraftGenerator
	audit     *mocks.AuditLog
	h         *GenerateHandler
}

func newGenerateFixture(generator *mocks.DraftGenerator) *generateFixture {
	log := zap.NewNop()
	store := mocks.NewBlobStore()
	audit := &mocks.AuditLog{}
	repo := services.NewEntryRepository(store, log, 0)
	curation := services.NewCurationService(store, log)
	return &generateFixture{
		store:     store,
		generator: generator,
		audit:     audit,
		h:         NewGenerateHandler(generator, curation, repo, audit, log, testBucket, curPrefix),
	}
}

func TestGenerateHandler_Handle(t *testing.T) {
	f := newGenerateFixture(&mocks.DraftGenerator{
		Draft: &ports.Draft{Text: "a draft", Route: ports.RouteStream},
	})
	session := NewSession()

	draft, err := f.h.Handle(context.Background(), session, "a prompt")
	require.NoError(t, err)
	assert.Equal(t, "a draft", draft.Text)

	// The session owns the last draft and the activity log.
	assert.Equal(t, "a prompt", session.LastPrompt)
	assert.Same(t, draft, session.LastDraft)
	require.Len(t, session.Events(), 1)
	assert.Contains(t, session.Events()[0].Message, "draft generated")

	require.Len(t, f.audit.Entries, 1)
	assert.Equal(t, entities.AuditActionDraftGenerated, f.audit.Entries[0].Action)
}

func TestGenerateHandler_EmptyDraft(t *testing.T) {
	f := newGenerateFixture(&mocks.DraftGenerator{Draft: &ports.Draft{}})
	session := NewSession()

	_, err := f.h.Handle(context.Background(), session, "p")
	require.ErrorIs(t, err, ErrEmptyDraft)
}

func TestGenerateHandler_BlockedDraft(t *testing.T) {
	f := newGenerateFixture(&mocks.DraftGenerator{
		Draft: &ports.Draft{Blocked: true, Reason: "SAFETY"},
	})
	session := NewSession()

	_, err := f.h.Handle(context.Background(), session, "p")
	require.ErrorIs(t, err, ErrEmptyDraft)
	assert.Contains(t, err.Error(), "SAFETY")
}

func TestGenerateHandler_GenerationFailure(t *testing.T) {
	f := newGenerateFixture(&mocks.DraftGenerator{
		Draft: &ports.Draft{Attempts: []ports.Attempt{
			{Route: ports.RouteStream, Err: "stream broke"},
			{Route: ports.RouteBlocking, Err: "endpoint down"},
		}},
		GenerateErr: errors.New("endpoint down"),
	})
	session := NewSession()

	draft, err := f.h.Handle(context.Background(), session, "p")
	require.Error(t, err)

	// The attempt detail survives for diagnostics.
	require.NotNil(t, draft)
	assert.Len(t, draft.Attempts, 2)
	assert.Same(t, draft, session.LastDraft)
}

func TestGenerateHandler_SaveFresh(t *testing.T) {
	f := newGenerateFixture(&mocks.DraftGenerator{
		Draft:   &ports.Draft{Text: "a draft", Route: ports.RouteStream},
		ModelID: "endpoint-1",
	})
	session := NewSession()
	ctx := context.Background()

	_, err := f.h.Handle(ctx, session, "Q")
	require.NoError(t, err)

	key, err := f.h.SaveFresh(ctx, session, "edited answer", "admin")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^curated/\d{4}-\d{2}-\d{2}/[0-9a-f]{10}\.json$`), key)

	data, err := f.store.Get(ctx, testBucket, key)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"edited answer"`)
	assert.Contains(t, string(data), `"endpoint-1"`)
}

func TestGenerateHandler_SaveFresh_DefaultsToDraft(t *testing.T) {
	f := newGenerateFixture(&mocks.DraftGenerator{
		Draft: &ports.Draft{Text: "the draft text"},
	})
	session := NewSession()
	ctx := context.Background()

	_, err := f.h.Handle(ctx, session, "Q")
	require.NoError(t, err)

	key, err := f.h.SaveFresh(ctx, session, "", "admin")
	require.NoError(t, err)

	data, err := f.store.Get(ctx, testBucket, key)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"approved_response": "the draft text"`)
}

func TestGenerateHandler_SaveFresh_RequiresDraft(t *testing.T) {
	f := newGenerateFixture(&mocks.DraftGenerator{})

	_, err := f.h.SaveFresh(context.Background(), NewSession(), "text", "admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no draft")
}
