// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/service"
	"github.com/MKhiriev/gig-sync/internal/utils"
	"github.com/MKhiriev/gig-sync/models"
)

// ─────────────────────────────────────────────────────────────────────────────
// auth
// ─────────────────────────────────────────────────────────────────────────────

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "bearer token", header: "Bearer abc", want: "abc"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "scheme only", header: "Bearer", wantErr: ErrEmptyToken},
		{name: "scheme with trailing space", header: "Bearer ", wantErr: ErrEmptyToken},
		{name: "wrong scheme", header: "Basic abc", wantErr: ErrInvalidAuthorizationHeader},
		{name: "too many parts", header: "Bearer a b", wantErr: ErrInvalidAuthorizationHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuth_StoresUserID(t *testing.T) {
	f := newHandlerFixture(t, "")
	f.authorized()

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = utils.GetUserIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	f.handler.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testUserID, gotUserID)
}

func TestAuth_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
		setup  func(f *handlerFixture)
	}{
		{name: "no header", header: ""},
		{name: "malformed header", header: "Token abc"},
		{
			name:   "invalid token",
			header: "Bearer expired",
			setup: func(f *handlerFixture) {
				f.auth.EXPECT().ParseToken(gomock.Any(), "expired").Return("", service.ErrTokenIsExpiredOrInvalid)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t, "")
			if tt.setup != nil {
				tt.setup(f)
			}

			called := false
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			f.handler.auth(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// body signature
// ─────────────────────────────────────────────────────────────────────────────

func TestWithBodySignature(t *testing.T) {
	body := []byte(`{"fields":{"title":"A"}}`)
	valid := utils.NewHasher(testKey).SumHex(body)

	tests := []struct {
		name       string
		hashKey    string
		body       []byte
		signature  string
		wantStatus int
	}{
		{name: "no key configured", hashKey: "", body: body, signature: "", wantStatus: http.StatusOK},
		{name: "valid signature", hashKey: testKey, body: body, signature: valid, wantStatus: http.StatusOK},
		{name: "empty body", hashKey: testKey, body: nil, signature: "", wantStatus: http.StatusOK},
		{name: "missing signature", hashKey: testKey, body: body, signature: "", wantStatus: http.StatusBadRequest},
		{name: "wrong signature", hashKey: testKey, body: body, signature: utils.NewHasher("other").SumHex(body), wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t, tt.hashKey)

			var seen []byte
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = io.ReadAll(r.Body)
			})

			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(tt.body))
			if tt.signature != "" {
				req.Header.Set(utils.HashHeader, tt.signature)
			}
			rec := httptest.NewRecorder()
			f.handler.withBodySignature(next).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, string(tt.body), string(seen), "body must be readable downstream")
			} else {
				assert.Equal(t, ErrIntegrityCheckFailed.Error(), decodeErrorBody(t, rec))
			}
		})
	}
}

func TestRoutes_SignedInsertEndToEnd(t *testing.T) {
	f := newHandlerFixture(t, testKey)
	f.authorized()
	f.documents.EXPECT().Insert(gomock.Any(), models.TableEvents, testUserID, gomock.Any()).
		Return(models.Document{ID: "R1", UpdatedAt: &docTime}, nil)

	payload, err := json.Marshal(models.InsertRequest{Fields: json.RawMessage(`{"title":"A"}`)})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/documents/events", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set(utils.HashHeader, utils.NewHasher(testKey).SumHex(payload))

	rec := f.do(req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

// ─────────────────────────────────────────────────────────────────────────────
// gzip
// ─────────────────────────────────────────────────────────────────────────────

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestWithGZip(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	})

	payload := []byte(`{"title":"compressed"}`)

	tests := []struct {
		name            string
		body            []byte
		contentEncoding string
		acceptEncoding  string
		wantStatus      int
		wantGzipResp    bool
	}{
		{name: "plain in, plain out", body: payload, wantStatus: http.StatusOK},
		{name: "gzip in, plain out", body: gzipBytes(t, payload), contentEncoding: "gzip", wantStatus: http.StatusOK},
		{name: "plain in, gzip out", body: payload, acceptEncoding: "gzip, deflate", wantStatus: http.StatusOK, wantGzipResp: true},
		{name: "gzip both ways", body: gzipBytes(t, payload), contentEncoding: "gzip", acceptEncoding: "gzip", wantStatus: http.StatusOK, wantGzipResp: true},
		{name: "corrupt gzip", body: []byte("not gzip"), contentEncoding: "gzip", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(tt.body))
			if tt.contentEncoding != "" {
				req.Header.Set("Content-Encoding", tt.contentEncoding)
			}
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}

			rec := httptest.NewRecorder()
			withGZip(echo).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}

			got := rec.Body.Bytes()
			if tt.wantGzipResp {
				assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
				zr, err := gzip.NewReader(bytes.NewReader(got))
				require.NoError(t, err)
				got, err = io.ReadAll(zr)
				require.NoError(t, err)
			} else {
				assert.Empty(t, rec.Header().Get("Content-Encoding"))
			}
			assert.Equal(t, string(payload), string(got))
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// trace id and access log
// ─────────────────────────────────────────────────────────────────────────────

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name       string
		incoming   string
		wantReused bool
	}{
		{name: "reuses incoming trace id", incoming: "trace-123", wantReused: true},
		{name: "generates trace id", incoming: "", wantReused: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := logger.NewLogger("test")
			l.Logger = l.Output(&buf)
			h := &Handler{logger: l}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger.FromRequest(r).Info().Msg("inside")
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(traceIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rec, req)

			traceID := rec.Header().Get(traceIDHeader)
			require.NotEmpty(t, traceID)
			if tt.wantReused {
				assert.Equal(t, tt.incoming, traceID)
			}

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, traceID, entry["trace_id"])
		})
	}
}

func TestWithLogging_RecordsStatusAndSize(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf)
	h := &Handler{logger: logger.Nop()}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req = req.WithContext(zl.WithContext(req.Context()))
	rec := httptest.NewRecorder()
	h.withLogging(next).ServeHTTP(rec, req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "/api/ping", entry["uri"])
	assert.Equal(t, http.MethodGet, entry["method"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
	assert.EqualValues(t, len("short and stout"), entry["size"])
}

func TestResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec}
	assert.Equal(t, http.StatusOK, rw.Status())

	rw.WriteHeader(http.StatusAccepted)
	rw.WriteHeader(http.StatusConflict)
	_, _ = rw.Write([]byte("ab"))
	_, _ = rw.Write([]byte("cde"))

	assert.Equal(t, http.StatusAccepted, rw.Status())
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 5, rw.size)
	assert.Equal(t, "abcde", rec.Body.String())

	implicit := &responseWriter{ResponseWriter: httptest.NewRecorder()}
	_, _ = implicit.Write([]byte(strings.Repeat("x", 3)))
	assert.Equal(t, http.StatusOK, implicit.Status())
}
