// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/mock"
	"github.com/MKhiriev/gig-sync/internal/store"
	"github.com/MKhiriev/gig-sync/models"
)

func TestDocumentService_Delegates(t *testing.T) {
	repo := mock.NewMockDocumentRepository(gomock.NewController(t))
	svc := NewDocumentService(repo, logger.Nop())
	ctx := context.Background()

	fields := json.RawMessage(`{"title":"A"}`)
	repo.EXPECT().Insert(gomock.Any(), "events", "u1", models.Document{ClientID: "l1", Fields: fields}).
		Return(models.Document{ID: "R1", ClientID: "l1", Fields: fields}, nil)
	doc, err := svc.Insert(ctx, models.TableEvents, "u1", models.InsertRequest{ClientID: "l1", Fields: fields})
	require.NoError(t, err)
	assert.Equal(t, "R1", doc.ID)

	repo.EXPECT().Patch(gomock.Any(), "events", "R1", fields).Return(models.Document{ID: "R1"}, nil)
	_, err = svc.Update(ctx, models.TableEvents, "R1", fields)
	require.NoError(t, err)

	repo.EXPECT().Delete(gomock.Any(), "events", "R1").Return(store.ErrDocumentNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, models.TableEvents, "R1"), store.ErrDocumentNotFound)

	q := models.Query{Limit: 5}
	repo.EXPECT().Query(gomock.Any(), "events", q).Return(nil, errors.New("db down"))
	_, err = svc.Query(ctx, models.TableEvents, q)
	assert.EqualError(t, err, "db down")
}
