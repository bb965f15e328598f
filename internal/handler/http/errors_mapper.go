package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/gig-sync/internal/app"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/service"
	"github.com/MKhiriev/gig-sync/internal/store"
	"github.com/MKhiriev/gig-sync/internal/utils"
)

// errorStatusList is checked in order; the first match wins.
var errorStatusList = []struct {
	err    error
	status int
}{
	{service.ErrUnknownCollection, http.StatusNotFound},
	{service.ErrInvalidDataProvided, http.StatusUnprocessableEntity},
	{service.ErrInvalidQuery, http.StatusBadRequest},
	{service.ErrNoUserID, http.StatusUnauthorized},
	{errNoUserInContext, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrDatabaseUnavailable, http.StatusServiceUnavailable},

	{store.ErrDocumentNotFound, http.StatusNotFound},
	{store.ErrInvalidFilter, http.StatusBadRequest},
	{store.ErrTemporarilyUnavailable, http.StatusServiceUnavailable},
}

func internalMessage(status int) string {
	if status == http.StatusServiceUnavailable {
		return app.MsgServiceUnavailable
	}
	return app.MsgInternalServerError
}

func statusFromError(err error) int {
	for _, entry := range errorStatusList {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError logs err and writes the mapped status with a JSON error
// body. Internal failures are reported without their details.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	log := logger.FromRequest(r)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
		utils.WriteError(w, internalMessage(status), status)
		return
	}

	log.Warn().Err(err).Int("status", status).Msg("request rejected")
	utils.WriteError(w, err.Error(), status)
}
