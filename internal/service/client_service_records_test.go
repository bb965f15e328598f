package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/mock"
	"github.com/MKhiriev/gig-sync/internal/store"
	"github.com/MKhiriev/gig-sync/internal/utils"
	"github.com/MKhiriev/gig-sync/models"
)

// ── helpers ───────────────────────────────────────────────────────────────────

type countingNotifier struct {
	calls atomic.Int32
}

func (n *countingNotifier) NotifyEnqueued() { n.calls.Add(1) }

type recordFixture struct {
	records  RecordService
	queue    SyncQueueService
	storages *store.ClientStorages
	clock    *clock.Mock
	notifier *countingNotifier
}

func newRecordFixture(t *testing.T) recordFixture {
	t.Helper()
	storages := newTestStorages(t)
	clk := newMockClock()
	queue := NewSyncQueueService(storages, testSchedule, clk, logger.Nop())
	notifier := &countingNotifier{}

	return recordFixture{
		records:  NewRecordService(storages, queue, DefaultCodecs(), utils.NewUUIDGenerator(), clk, notifier, logger.Nop()),
		queue:    queue,
		storages: storages,
		clock:    clk,
		notifier: notifier,
	}
}

// syncedRecord stores a clean record that already has a remote copy.
func syncedRecord(t *testing.T, s *store.ClientStorages, table models.TableName, id, remoteID, data string) {
	t.Helper()
	synced := baseTime
	require.NoError(t, s.RecordRepository.Insert(context.Background(), models.LocalRecord{
		SyncMeta: models.SyncMeta{ID: id, RemoteID: &remoteID, UpdatedAt: baseTime, SyncedAt: &synced},
		Table:    table,
		Data:     json.RawMessage(data),
	}))
}

func payloadFields(t *testing.T, entry models.SyncQueueEntry) string {
	t.Helper()
	snap, err := models.DecodeSnapshot(entry.Payload)
	require.NoError(t, err)
	return string(snap.Fields)
}

// ── Create ────────────────────────────────────────────────────────────────────

func TestRecordService_CreateAssignsIDAndEnqueues(t *testing.T) {
	f := newRecordFixture(t)
	ctx := context.Background()

	event := &models.Event{OrganizerID: "u1", Title: "Wedding", Status: models.EventStatusDraft}
	entry, err := f.records.MutateAndEnqueue(ctx, models.OperationCreate, event)
	require.NoError(t, err)

	require.NotEmpty(t, event.ID)
	assert.True(t, event.IsDirty)
	assert.Nil(t, event.RemoteID)
	assert.True(t, baseTime.Equal(event.UpdatedAt))

	assert.Equal(t, models.OperationCreate, entry.Operation)
	assert.Equal(t, event.ID, entry.LocalRecordID)
	assert.JSONEq(t, `{"organizerId":"u1","title":"Wedding","status":"draft"}`, payloadFields(t, entry))
	assert.Equal(t, int32(1), f.notifier.calls.Load())

	row, err := f.storages.RecordRepository.Get(ctx, models.TableEvents, event.ID)
	require.NoError(t, err)
	assert.True(t, row.IsDirty)
	assert.JSONEq(t, `{"organizerId":"u1","title":"Wedding","status":"draft"}`, string(row.Data))
}

func TestRecordService_CreateKeepsGivenID(t *testing.T) {
	f := newRecordFixture(t)

	artist := &models.Artist{SyncMeta: models.SyncMeta{ID: "a1"}, ProviderID: "u1", Name: "DJ"}
	require.NoError(t, f.records.Create(context.Background(), artist))
	assert.Equal(t, "a1", artist.ID)

	_, err := f.storages.RecordRepository.Get(context.Background(), models.TableArtists, "a1")
	assert.NoError(t, err)
}

func TestRecordService_CreateDuplicateID(t *testing.T) {
	f := newRecordFixture(t)

	require.NoError(t, f.records.Create(context.Background(), &models.Artist{SyncMeta: models.SyncMeta{ID: "a1"}, Name: "A"}))
	err := f.records.Create(context.Background(), &models.Artist{SyncMeta: models.SyncMeta{ID: "a1"}, Name: "B"})
	assert.ErrorIs(t, err, store.ErrRecordExists)
	assert.Len(t, entriesFor(t, f.storages, models.TableArtists, "a1"), 1)
}

func TestRecordService_EnqueueFailureRollsBackRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	storages := newTestStorages(t)
	queue := mock.NewMockSyncQueueService(ctrl)
	notifier := &countingNotifier{}
	records := NewRecordService(storages, queue, DefaultCodecs(), utils.NewUUIDGenerator(), newMockClock(), notifier, logger.Nop())

	queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(models.SyncQueueEntry{}, false, errors.New("disk full"))

	err := records.Create(context.Background(), &models.Artist{SyncMeta: models.SyncMeta{ID: "a1"}, Name: "A"})
	require.Error(t, err)

	_, err = storages.RecordRepository.Get(context.Background(), models.TableArtists, "a1")
	assert.ErrorIs(t, err, store.ErrRecordNotFound, "record write and enqueue are one transaction")
	assert.Zero(t, notifier.calls.Load())
}

// ── Update ────────────────────────────────────────────────────────────────────

func TestRecordService_UpdateCoalescesWithPendingCreate(t *testing.T) {
	f := newRecordFixture(t)
	ctx := context.Background()

	event := &models.Event{OrganizerID: "u1", Title: "A", Status: models.EventStatusDraft}
	require.NoError(t, f.records.Create(ctx, event))

	event.Title = "B"
	require.NoError(t, f.records.Update(ctx, event))
	event.Title = "C"
	require.NoError(t, f.records.Update(ctx, event))

	entries := entriesFor(t, f.storages, models.TableEvents, event.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, models.OperationCreate, entries[0].Operation)
	assert.JSONEq(t, `{"organizerId":"u1","title":"C","status":"draft"}`, payloadFields(t, entries[0]))
	assert.Equal(t, int32(3), f.notifier.calls.Load())
}

func TestRecordService_UpdatedAtIsMonotonic(t *testing.T) {
	f := newRecordFixture(t)
	ctx := context.Background()

	artist := &models.Artist{Name: "A"}
	require.NoError(t, f.records.Create(ctx, artist))
	first := artist.UpdatedAt

	// the clock does not move between edits
	artist.Name = "B"
	require.NoError(t, f.records.Update(ctx, artist))
	assert.True(t, artist.UpdatedAt.After(first))

	f.clock.Add(time.Minute)
	artist.Name = "C"
	require.NoError(t, f.records.Update(ctx, artist))
	assert.True(t, f.clock.Now().Equal(artist.UpdatedAt))
}

func TestRecordService_UpdateSyncedRecordEnqueuesUpdate(t *testing.T) {
	f := newRecordFixture(t)
	ctx := context.Background()

	syncedRecord(t, f.storages, models.TableArtists, "a1", "R1", `{"providerId":"u1","name":"A"}`)

	rec, err := f.records.Load(ctx, models.TableArtists, "a1")
	require.NoError(t, err)
	artist := rec.(*models.Artist)
	artist.Name = "B"

	f.clock.Add(time.Second)
	entry, err := f.records.MutateAndEnqueue(ctx, models.OperationUpdate, artist)
	require.NoError(t, err)
	assert.Equal(t, models.OperationUpdate, entry.Operation)
	require.NotNil(t, entry.RemoteID)
	assert.Equal(t, "R1", *entry.RemoteID)

	row, err := f.storages.RecordRepository.Get(ctx, models.TableArtists, "a1")
	require.NoError(t, err)
	assert.True(t, row.IsDirty)
	require.NotNil(t, row.RemoteID)
	assert.Equal(t, "R1", *row.RemoteID)
}

func TestRecordService_UpdateErrors(t *testing.T) {
	f := newRecordFixture(t)
	ctx := context.Background()

	err := f.records.Update(ctx, &models.Artist{Name: "no id"})
	assert.ErrorIs(t, err, ErrMissingRecordID)

	err = f.records.Update(ctx, &models.Artist{SyncMeta: models.SyncMeta{ID: "missing"}})
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	_, err = f.records.MutateAndEnqueue(ctx, "upsert", &models.Artist{SyncMeta: models.SyncMeta{ID: "x"}})
	assert.ErrorIs(t, err, ErrInvalidOperation)

	_, err = f.records.MutateAndEnqueue(ctx, models.OperationCreate, nil)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

// ── Delete ────────────────────────────────────────────────────────────────────

func TestRecordService_DeleteBeforePushDropsEverything(t *testing.T) {
	f := newRecordFixture(t)
	ctx := context.Background()

	offer := &models.Offer{EventID: "e1", OrganizerID: "u1", ProviderID: "u2", Price: 100}
	require.NoError(t, f.records.Create(ctx, offer))
	require.NoError(t, f.records.Delete(ctx, models.TableOffers, offer.ID))

	_, err := f.storages.RecordRepository.Get(ctx, models.TableOffers, offer.ID)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	n, err := f.queue.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, int32(1), f.notifier.calls.Load(), "the cancelling delete has nothing to push")
}

func TestRecordService_DeleteSyncedRecordLeavesTombstone(t *testing.T) {
	f := newRecordFixture(t)
	ctx := context.Background()

	syncedRecord(t, f.storages, models.TableOffers, "o1", "R1", `{"eventId":"e1","organizerId":"u1","providerId":"u2","price":5,"status":"pending"}`)

	require.NoError(t, f.records.Delete(ctx, models.TableOffers, "o1"))

	row, err := f.storages.RecordRepository.Get(ctx, models.TableOffers, "o1")
	require.NoError(t, err)
	assert.True(t, row.Deleted)
	assert.True(t, row.IsDirty)

	pending := outstandingFor(t, f.storages, models.TableOffers, "o1")
	require.Len(t, pending, 1)
	assert.Equal(t, models.OperationDelete, pending[0].Operation)

	err = f.records.Delete(ctx, models.TableOffers, "o1")
	assert.ErrorIs(t, err, ErrRecordDeleted)
}

func TestRecordService_DeleteEventIsSoft(t *testing.T) {
	f := newRecordFixture(t)
	ctx := context.Background()

	syncedRecord(t, f.storages, models.TableEvents, "e1", "R1", `{"organizerId":"u1","title":"Gala","status":"published"}`)

	require.NoError(t, f.records.Delete(ctx, models.TableEvents, "e1"))

	row, err := f.storages.RecordRepository.Get(ctx, models.TableEvents, "e1")
	require.NoError(t, err)
	assert.False(t, row.Deleted)
	assert.JSONEq(t, `{"organizerId":"u1","title":"Gala","status":"deleted"}`, string(row.Data))

	pending := outstandingFor(t, f.storages, models.TableEvents, "e1")
	require.Len(t, pending, 1)
	assert.Equal(t, models.OperationUpdate, pending[0].Operation)
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func TestRecordService_LoadListCount(t *testing.T) {
	f := newRecordFixture(t)
	ctx := context.Background()

	for _, text := range []string{"one", "two", "three"} {
		msg := &models.Message{ConversationID: "c1", SenderID: "u1", ParticipantIDs: []string{"u1", "u2"}, Text: text, SentAt: baseTime}
		require.NoError(t, f.records.Create(ctx, msg))
		f.clock.Add(time.Second)
	}

	q := models.RecordQuery{
		Filters: []models.Filter{{Field: "conversationId", Op: models.OpEqual, Value: "c1"}},
		OrderBy: "updatedAt",
	}
	list, err := f.records.List(ctx, models.TableMessages, q)
	require.NoError(t, err)
	require.Len(t, list, 3)

	first := list[0].(*models.Message)
	assert.Equal(t, "one", first.Text)
	assert.True(t, first.IsDirty)
	assert.NotEmpty(t, first.ID)

	loaded, err := f.records.Load(ctx, models.TableMessages, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "one", loaded.(*models.Message).Text)

	n, err := f.records.Count(ctx, models.TableMessages, q)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = f.records.Load(ctx, models.TableMessages, "missing")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

// ── Scenarios ─────────────────────────────────────────────────────────────────

func TestRecordService_OfflineCreateThenTwoUpdates(t *testing.T) {
	f := newRecordFixture(t)
	ctx := context.Background()

	conv := &models.Conversation{ParticipantIDs: []string{"u1", "u2"}, LastMessage: "hi"}
	require.NoError(t, f.records.Create(ctx, conv))
	conv.LastMessage = "hello"
	require.NoError(t, f.records.Update(ctx, conv))
	conv.LastMessage = "hello there"
	require.NoError(t, f.records.Update(ctx, conv))

	entries := entriesFor(t, f.storages, models.TableConversations, conv.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, models.OperationCreate, entries[0].Operation)
	assert.Equal(t, models.QueueStatusPending, entries[0].Status)
	assert.JSONEq(t, `{"participantIds":["u1","u2"],"lastMessage":"hello there"}`, payloadFields(t, entries[0]))
}
