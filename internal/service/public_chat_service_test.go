package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"alkulous-relay/internal/constant"
	"alkulous-relay/internal/dto"
	"alkulous-relay/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPublicChatService(f *fixture, withOllama bool) (IPublicChatService, IApiKeyService) {
	keys := NewApiKeyService(f.uowFactory, f.publisher, f.log)
	return NewPublicChatService(f.uowFactory, keys, f.selector(true, withOllama), f.publisher, f.log), keys
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc, keys := newPublicChatService(f, true)

	created, err := keys.Create(ctx, &dto.CreateApiKeyRequest{Name: "partner-x"})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrMissingApiKey)

	_, err = svc.Authenticate(ctx, "ak_doesnotexist")
	assert.ErrorIs(t, err, ErrInvalidApiKey)

	key, err := svc.Authenticate(ctx, created.Key)
	require.NoError(t, err)
	assert.Equal(t, "partner-x", key.Name)
}

func TestPublicSendChat(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc, _ := newPublicChatService(f, true)
	key := &entity.ApiKey{Id: 1, Name: "partner-x"}

	repo := f.uowFactory.NewUnitOfWork(ctx).MessageRepository()
	for i := 0; i < 8; i++ {
		require.NoError(t, repo.Create(ctx, &entity.Message{Role: entity.MessageRoleUser, Content: fmt.Sprintf("m%d", i)}))
	}

	res, err := svc.SendChat(ctx, key, &dto.PublicChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ollama says hi", res.Response)

	sent := f.ollama.lastCall()
	require.Len(t, sent, constant.PublicHistoryWindow+2, "window is read before the new turn is stored")
	assert.Equal(t, constant.PublicSystemPrompt, sent[0].Content)
	assert.Equal(t, "m3", sent[1].Content)
	assert.Equal(t, "m7", sent[5].Content)
	assert.Equal(t, "hi", sent[6].Content)
	assert.Empty(t, f.localBrain.calls, "public traffic never uses the local brain")

	stored, err := repo.FindRecent(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "ollama says hi", stored[0].Content)
	assert.Equal(t, "[API:partner-x] hi", stored[1].Content)
	assert.Equal(t, entity.MessageRoleUser, stored[1].Role)
}

func TestPublicSendChatFallbackReply(t *testing.T) {
	f := newFixture()
	f.ollama.reply = ""
	svc, _ := newPublicChatService(f, true)

	res, err := svc.SendChat(context.Background(), &entity.ApiKey{Name: "p"}, &dto.PublicChatRequest{Message: "hi"})

	require.NoError(t, err)
	assert.Equal(t, constant.PublicFallbackReply, res.Response)
}

func TestPublicSendChatFailuresWriteNothing(t *testing.T) {
	t.Run("ollama not configured", func(t *testing.T) {
		f := newFixture()
		svc, _ := newPublicChatService(f, false)

		_, err := svc.SendChat(context.Background(), &entity.ApiKey{Name: "p"}, &dto.PublicChatRequest{Message: "hi"})

		assert.ErrorIs(t, err, ErrBackendUnconfigured)
		assert.Zero(t, f.count())
	})

	t.Run("backend error", func(t *testing.T) {
		f := newFixture()
		f.ollama.err = errors.New("connection refused")
		svc, _ := newPublicChatService(f, true)

		_, err := svc.SendChat(context.Background(), &entity.ApiKey{Name: "p"}, &dto.PublicChatRequest{Message: "hi"})

		var backendErr *BackendError
		assert.ErrorAs(t, err, &backendErr)
		assert.Zero(t, f.count())
	})
}

func TestIdentity(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc, _ := newPublicChatService(f, true)

	res, err := svc.Identity(ctx, &dto.IdentityRequest{Prompt: "who are you"})
	require.NoError(t, err)
	assert.Equal(t, constant.SystemName, res.System)
	assert.Equal(t, "ollama says hi", res.Reply)

	sent := f.ollama.lastCall()
	require.Len(t, sent, 2, "identity calls carry no history")
	assert.Equal(t, constant.IdentitySystemPrompt, sent[0].Content)
	assert.Equal(t, "who are you", sent[1].Content)

	stored, err := f.uowFactory.NewUnitOfWork(ctx).MessageRepository().FindRecent(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "[PUBLIC_API] who are you", stored[1].Content)
}

func TestIdentityOutcomes(t *testing.T) {
	t.Run("empty reply", func(t *testing.T) {
		f := newFixture()
		f.ollama.reply = ""
		svc, _ := newPublicChatService(f, true)

		res, err := svc.Identity(context.Background(), &dto.IdentityRequest{Prompt: "x"})
		require.NoError(t, err)
		assert.Equal(t, constant.IdentityFallbackReply, res.Reply)
	})

	t.Run("not configured", func(t *testing.T) {
		f := newFixture()
		svc, _ := newPublicChatService(f, false)

		_, err := svc.Identity(context.Background(), &dto.IdentityRequest{Prompt: "x"})
		assert.ErrorIs(t, err, ErrBackendUnconfigured)
	})

	t.Run("backend error keeps cause", func(t *testing.T) {
		f := newFixture()
		f.ollama.err = errors.New("dial tcp: refused")
		svc, _ := newPublicChatService(f, true)

		_, err := svc.Identity(context.Background(), &dto.IdentityRequest{Prompt: "x"})

		var backendErr *BackendError
		require.ErrorAs(t, err, &backendErr)
		assert.Equal(t, "dial tcp: refused", backendErr.Err.Error())
		assert.Zero(t, f.count())
	})
}

func TestPublicRelayCompletesAfterCallerCancels(t *testing.T) {
	f := newFixture()
	svc, _ := newPublicChatService(f, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := svc.SendChat(ctx, &entity.ApiKey{Id: 1, Name: "partner"}, &dto.PublicChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ollama says hi", res.Response)
	assert.EqualValues(t, 2, f.count())

	_, err = svc.Identity(ctx, &dto.IdentityRequest{Prompt: "who are you"})
	require.NoError(t, err)
	assert.EqualValues(t, 4, f.count())
}
