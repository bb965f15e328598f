package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/gig-sync/internal/app"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/utils"
)

// withBodySignature rejects requests whose body does not match the HMAC in
// the [utils.HashHeader] header. It is a no-op when no key is configured or
// the request has no body.
func (h *Handler) withBodySignature(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.hasher == nil || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			log.Err(err).Msg(app.MsgUnreadableBody)
			utils.WriteError(w, app.MsgUnreadableBody, http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		if len(body) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		signature := r.Header.Get(utils.HashHeader)
		if !h.hasher.Verify(body, signature) {
			log.Warn().Str("signature", signature).Msg("body signature mismatch")
			utils.WriteError(w, ErrIntegrityCheckFailed.Error(), http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
