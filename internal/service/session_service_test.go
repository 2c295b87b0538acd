package service

import (
	"context"
	"testing"
	"time"

	"alkulous-relay/internal/entity"
	"alkulous-relay/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(memory.NewSessionRepository(), "test-secret")

	cookie, err := svc.Create(ctx, entity.SessionPrincipal{
		Id:        "g-1",
		Email:     "op@example.com",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, cookie)

	principal, err := svc.Authenticate(ctx, cookie)
	require.NoError(t, err)
	assert.Equal(t, "g-1", principal.Id)

	require.NoError(t, svc.Destroy(ctx, cookie))
	_, err = svc.Authenticate(ctx, cookie)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSessionRejectsBadCookies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSessionRepository()
	svc := NewSessionService(repo, "test-secret")
	other := NewSessionService(repo, "another-secret")

	forged, err := other.Create(ctx, entity.SessionPrincipal{Id: "x"})
	require.NoError(t, err)

	for name, cookie := range map[string]string{
		"empty":        "",
		"garbage":      "not-a-jwt",
		"wrong secret": forged,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Authenticate(ctx, cookie)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestSessionPrincipalExpiry(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(memory.NewSessionRepository(), "test-secret").(*sessionService)

	cookie, err := svc.Create(ctx, entity.SessionPrincipal{Id: "g-1", ExpiresAt: time.Now().Add(time.Hour).Unix()})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = svc.Authenticate(ctx, cookie)
	assert.ErrorIs(t, err, ErrSessionExpired)
}
