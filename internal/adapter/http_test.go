// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/gig-sync/internal/config"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/utils"
	"github.com/MKhiriev/gig-sync/models"
)

const testToken = "test-token"

func newTestRemoteStore(t *testing.T, serverURL string) RemoteStore {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 2 * time.Second}
	appCfg := config.ClientApp{UserToken: testToken}

	rs, err := NewHTTPRemoteStore(adapterCfg, appCfg, logger.Nop())
	require.NoError(t, err)
	return rs
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── construction ─────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "localhost:8080", want: "http://localhost:8080"},
		{raw: " https://sync.example.com/ ", want: "https://sync.example.com"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── Insert ───────────────────────────────────────────────────────────────────

func TestInsert_Success(t *testing.T) {
	updated := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/documents/events", r.URL.Path)
		assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))

		var req models.InsertRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "local-1", req.ClientID)
		assert.JSONEq(t, `{"title":"Gala"}`, string(req.Fields))

		writeJSON(t, w, http.StatusCreated, models.InsertResponse{ID: "R1", UpdatedAt: updated})
	}))
	defer srv.Close()

	rs := newTestRemoteStore(t, srv.URL)
	got, err := rs.Insert(context.Background(), models.TableEvents, models.InsertRequest{
		ClientID: "local-1",
		Fields:   json.RawMessage(`{"title":"Gala"}`),
	})

	require.NoError(t, err)
	assert.Equal(t, "R1", got.ID)
	assert.True(t, updated.Equal(got.UpdatedAt))
}

func TestInsert_MissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusCreated, map[string]string{})
	}))
	defer srv.Close()

	_, err := newTestRemoteStore(t, srv.URL).Insert(context.Background(), models.TableEvents, models.InsertRequest{})

	assert.ErrorIs(t, err, ErrDecodeResponse)
	assert.False(t, IsPermanent(err))
}

func TestInsert_Unprocessable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, map[string]string{"error": "fields must be an object"})
	}))
	defer srv.Close()

	_, err := newTestRemoteStore(t, srv.URL).Insert(context.Background(), models.TableEvents, models.InsertRequest{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnprocessable)
	assert.Contains(t, err.Error(), "fields must be an object")
	assert.True(t, IsPermanent(err))
}

// ── Update / Delete ──────────────────────────────────────────────────────────

func TestUpdate_SendsPatch(t *testing.T) {
	updated := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/documents/offers/R7", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"fields":{"price":12}}`, string(body))

		writeJSON(t, w, http.StatusOK, models.Document{ID: "R7", Fields: json.RawMessage(`{"price":12}`), UpdatedAt: &updated})
	}))
	defer srv.Close()

	doc, err := newTestRemoteStore(t, srv.URL).Update(context.Background(), models.TableOffers, "R7", json.RawMessage(`{"price":12}`))
	require.NoError(t, err)
	assert.Equal(t, "R7", doc.ID)
	require.NotNil(t, doc.UpdatedAt)
	assert.True(t, updated.Equal(*doc.UpdatedAt), "the server version is passed on")
}

func TestUpdate_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":`))
	}))
	defer srv.Close()

	_, err := newTestRemoteStore(t, srv.URL).Update(context.Background(), models.TableOffers, "R7", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrDecodeResponse)
}

func TestDelete_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/documents/messages/R9", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	err := newTestRemoteStore(t, srv.URL).Delete(context.Background(), models.TableMessages, "R9")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Not Found")
}

// ── Query ────────────────────────────────────────────────────────────────────

func TestQuery_Success(t *testing.T) {
	updated := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/documents/conversations/query", r.URL.Path)

		var q models.Query
		require.NoError(t, json.NewDecoder(r.Body).Decode(&q))
		require.Len(t, q.Filters, 1)
		assert.Equal(t, models.OpArrayContains, q.Filters[0].Op)
		assert.Equal(t, "u1", q.Filters[0].Value)
		assert.True(t, q.Descending)
		assert.Equal(t, 100, q.Limit)

		writeJSON(t, w, http.StatusOK, []models.Document{
			{ID: "R1", Fields: json.RawMessage(`{"participantIds":["u1"]}`), UpdatedAt: &updated},
			{ID: "R2", Fields: json.RawMessage(`{}`), UpdatedAt: &updated, Deleted: true},
		})
	}))
	defer srv.Close()

	docs, err := newTestRemoteStore(t, srv.URL).Query(context.Background(), models.TableConversations, models.Query{
		Filters:    []models.Filter{{Field: "participantIds", Op: models.OpArrayContains, Value: "u1"}},
		OrderBy:    models.FieldUpdatedAt,
		Descending: true,
		Limit:      100,
	})

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "R1", docs[0].ID)
	assert.True(t, docs[1].Deleted)
}

func TestQuery_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   error
		permanent bool
	}{
		{name: "bad request", status: http.StatusBadRequest, body: `{"error":"bad filter"}`, wantErr: ErrBadRequest, permanent: true},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, wantErr: ErrForbidden, permanent: true},
		{name: "conflict", status: http.StatusConflict, wantErr: ErrConflict, permanent: true},
		{name: "throttled", status: http.StatusTooManyRequests, wantErr: ErrTooManyRequests},
		{name: "internal", status: http.StatusInternalServerError, wantErr: ErrInternalServerError},
		{name: "bad gateway", status: http.StatusBadGateway, wantErr: ErrBadGateway},
		{name: "unavailable", status: http.StatusServiceUnavailable, wantErr: ErrServiceUnavailable},
		{name: "teapot", status: http.StatusTeapot, wantErr: ErrUnexpectedStatus},
		{name: "garbage body", status: http.StatusOK, body: `not json`, wantErr: ErrDecodeResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestRemoteStore(t, srv.URL).Query(context.Background(), models.TableEvents, models.Query{})

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.permanent, IsPermanent(err))
		})
	}
}

func TestQuery_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestRemoteStore(t, url).Query(context.Background(), models.TableEvents, models.Query{})

	assert.ErrorIs(t, err, ErrTransport)
	assert.False(t, IsPermanent(err))
}

func TestIsPermanent_Unrelated(t *testing.T) {
	assert.False(t, IsPermanent(nil))
	assert.False(t, IsPermanent(errors.New("boom")))
	assert.False(t, IsPermanent(context.DeadlineExceeded))
}

// ── body signing ─────────────────────────────────────────────────────────────

func TestUpdate_SignsBodyWithHashKey(t *testing.T) {
	hasher := utils.NewHasher("shared")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.True(t, hasher.Verify(body, r.Header.Get(utils.HashHeader)))
		assert.JSONEq(t, `{"fields":{"title":"B"}}`, string(body))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	rs, err := NewHTTPRemoteStore(
		config.ClientAdapter{HTTPAddress: srv.URL, RequestTimeout: 2 * time.Second},
		config.ClientApp{UserToken: testToken, HashKey: "shared"},
		logger.Nop(),
	)
	require.NoError(t, err)

	doc, err := rs.Update(context.Background(), models.TableEvents, "R1", json.RawMessage(`{"title":"B"}`))
	require.NoError(t, err)
	assert.Equal(t, "R1", doc.ID)
	assert.Nil(t, doc.UpdatedAt, "no body, no version")
}
