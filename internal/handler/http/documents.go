package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/gig-sync/internal/app"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/utils"
	"github.com/MKhiriev/gig-sync/models"
)

// maxBodyBytes bounds a document API request body.
const maxBodyBytes = 1 << 20

func collectionParam(r *http.Request) models.TableName {
	return models.TableName(chi.URLParam(r, "collection"))
}

// decodeBody reads a JSON request body into v. On failure it writes the 400
// response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		logger.FromRequest(r).Err(err).Msg(app.MsgInvalidJSON)
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return false
	}
	return true
}

// insertDocument handles POST /api/documents/{collection}. The owner of the
// document is the authenticated user.
func (h *Handler) insertDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	collection := collectionParam(r)

	ownerID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		h.writeServiceError(w, r, errNoUserInContext)
		return
	}

	var req models.InsertRequest
	if !decodeBody(w, r, &req) {
		return
	}

	doc, err := h.services.DocumentService.Insert(ctx, collection, ownerID, req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	resp := models.InsertResponse{ID: doc.ID}
	if doc.UpdatedAt != nil {
		resp.UpdatedAt = *doc.UpdatedAt
	}
	_, _ = utils.WriteJSON(w, resp, http.StatusCreated)
}

// updateDocument handles PATCH /api/documents/{collection}/{id}.
func (h *Handler) updateDocument(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	doc, err := h.services.DocumentService.Update(r.Context(), collectionParam(r), chi.URLParam(r, "id"), req.Fields)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, doc, http.StatusOK)
}

// deleteDocument handles DELETE /api/documents/{collection}/{id}.
func (h *Handler) deleteDocument(w http.ResponseWriter, r *http.Request) {
	err := h.services.DocumentService.Delete(r.Context(), collectionParam(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// queryDocuments handles POST /api/documents/{collection}/query. Tombstones
// are part of the result so that clients can apply remote deletes.
func (h *Handler) queryDocuments(w http.ResponseWriter, r *http.Request) {
	var q models.Query
	if !decodeBody(w, r, &q) {
		return
	}

	docs, err := h.services.DocumentService.Query(r.Context(), collectionParam(r), q)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}

	_, _ = utils.WriteJSON(w, docs, http.StatusOK)
}
