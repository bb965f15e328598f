package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// GenerateJWTToken creates a signed HMAC-SHA256 JWT whose subject is userID.
//
// All parameters are required. The document server issues no tokens itself;
// this is used by tests and by the token command.
func GenerateJWTToken(issuer, userID string, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || userID == "" || tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return tokenString, nil
}

// ValidateAndParseJWTToken verifies the signature, expiry and, when
// tokenIssuer is set, the issuer of tokenString and returns its subject.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (string, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if tokenIssuer != "" {
		opts = append(opts, jwt.WithIssuer(tokenIssuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return subject(token)
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <t>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

// ParseUserIDFromJWT reads the subject of tokenString without verifying the
// signature. The client uses it to learn its own user id; the server is the
// one that verifies.
func ParseUserIDFromJWT(tokenString string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &jwt.RegisteredClaims{})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return subject(token)
}

func subject(token *jwt.Token) (string, error) {
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if sub == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}
	return sub, nil
}
