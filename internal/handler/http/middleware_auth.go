package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/gig-sync/internal/app"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/utils"
)

// auth enforces bearer authentication on the document API.
//
// The token is verified by the AuthService and its subject is stored in the
// request context with [utils.WithUserID]. Missing, malformed, expired and
// foreign tokens are all answered with 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			utils.WriteError(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		userID, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			utils.WriteError(w, app.MsgUnauthorized, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUserID(ctx, userID)))
	})
}

// getTokenFromAuthHeader extracts the token from "Bearer <token>".
func getTokenFromAuthHeader(authHeader string) (string, error) {
	if strings.EqualFold(strings.TrimSpace(authHeader), "bearer") {
		return "", ErrEmptyToken
	}

	token, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", ErrInvalidAuthorizationHeader
	}
	return token, nil
}
