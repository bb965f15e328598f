package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/gig-sync/internal/config"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/utils"
)

// authService verifies the bearer tokens of the document API. Accounts live
// outside this system; a token's subject is the user id.
type authService struct {
	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim of issued tokens. Tokens with another
	// issuer are rejected.
	tokenIssuer string

	logger *logger.Logger
}

func NewAuthService(cfg *config.ServerConfig, logger *logger.Logger) AuthService {
	return &authService{
		tokenSignKey: cfg.TokenSignKey,
		tokenIssuer:  cfg.TokenIssuer,
		logger:       logger,
	}
}

// CreateToken issues a signed JWT for userID that expires after ttl.
func (a *authService) CreateToken(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", ErrNoUserID
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, userID, ttl, a.tokenSignKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a raw JWT. Any validation failure is reported as
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, token string) (string, error) {
	userID, err := utils.ValidateAndParseJWTToken(token, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return "", ErrTokenIsExpiredOrInvalid
	}

	return userID, nil
}
