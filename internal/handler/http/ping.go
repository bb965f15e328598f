package http

import (
	"net/http"

	"github.com/MKhiriev/gig-sync/internal/utils"
)

type pingResponse struct {
	Status string `json:"status"`
}

// ping reports whether the server can reach its database. Clients use it as
// their connectivity probe.
func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	if err := h.services.HealthService.Ping(r.Context()); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, pingResponse{Status: "ok"}, http.StatusOK)
}
