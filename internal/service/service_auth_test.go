package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/gig-sync/internal/config"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/utils"
)

func newTestAuthService() AuthService {
	return NewAuthService(&config.ServerConfig{TokenSignKey: "secret", TokenIssuer: "gig-sync"}, logger.Nop())
}

func TestAuthService_RoundTrip(t *testing.T) {
	auth := newTestAuthService()
	ctx := context.Background()

	token, err := auth.CreateToken(ctx, "u1", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := auth.ParseToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestAuthService_CreateTokenWithoutUser(t *testing.T) {
	_, err := newTestAuthService().CreateToken(context.Background(), "", time.Hour)
	assert.ErrorIs(t, err, ErrNoUserID)
}

func TestAuthService_ParseTokenRejects(t *testing.T) {
	auth := newTestAuthService()
	ctx := context.Background()

	expired, err := utils.GenerateJWTToken("gig-sync", "u1", -time.Minute, "secret")
	require.NoError(t, err)
	foreignIssuer, err := utils.GenerateJWTToken("someone-else", "u1", time.Hour, "secret")
	require.NoError(t, err)
	wrongKey, err := utils.GenerateJWTToken("gig-sync", "u1", time.Hour, "other-secret")
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":        "not.a.jwt",
		"empty":          "",
		"expired":        expired,
		"foreign issuer": foreignIssuer,
		"wrong key":      wrongKey,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := auth.ParseToken(ctx, token)
			assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}
}
