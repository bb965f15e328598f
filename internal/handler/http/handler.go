package http

import (
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/service"
	"github.com/MKhiriev/gig-sync/internal/utils"
)

type Handler struct {
	services *service.Services

	// hasher verifies request body signatures. Nil disables the check.
	hasher *utils.Hasher

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. A non-empty hashKey makes every request
// body carry a valid HMAC in [utils.HashHeader].
func NewHandler(services *service.Services, hashKey string, logger *logger.Logger) *Handler {
	h := &Handler{
		services: services,
		logger:   logger,
	}
	if hashKey != "" {
		h.hasher = utils.NewHasher(hashKey)
	}

	logger.Info().Bool("signed_bodies", h.hasher != nil).Msg("http handler created")
	return h
}
