package repository_test

import (
	"context"
	"errors"
	"kampus/infras/metrics"
	"kampus/infras/otel/mocks"
	"kampus/internal/storage"
	storageMocks "kampus/internal/storage/mocks"
	"kampus/shared/repository"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type booking struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Tags      []string  `json:"tags"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func newSnapshot(store storage.Storage) (*repository.Snapshot[booking], *metrics.Metrics) {
	m := metrics.New()

	return repository.NewSnapshot[booking]("booking", "bookings", store, mocks.NewOtel(), m), m
}

func TestSnapshot_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, m := newSnapshot(storage.NewMemory())

	want := []booking{
		{
			ID:        "b1",
			Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Tags:      []string{"AC", "WiFi"},
			CreatedAt: time.Date(2025, 3, 1, 8, 30, 15, 0, time.UTC),
		},
		{
			ID:        "b2",
			Date:      time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
			Note:      "Bentrok jadwal",
			CreatedAt: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
		},
	}

	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotWrites.WithLabelValues("bookings", metrics.ResultOK)))
}

func TestSnapshot_EmptyIsWritten(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	repo, _ := newSnapshot(store)

	require.NoError(t, repo.Save(ctx, nil))

	raw, err := store.Get(ctx, "bookings")
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSnapshot_Missing(t *testing.T) {
	repo, m := newSnapshot(storage.NewMemory())

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotFallbacks.WithLabelValues("bookings", metrics.FallbackMissing)))
}

func TestSnapshot_Corrupt(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	repo, m := newSnapshot(store)

	require.NoError(t, store.Set(ctx, "bookings", `[{"id":"b1","date":"not a date"}]`))

	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, repository.ErrCorrupt)

	preserved, err := store.Get(ctx, "bookings.corrupt")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"b1","date":"not a date"}]`, preserved)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotFallbacks.WithLabelValues("bookings", metrics.FallbackCorrupt)))
}

func TestSnapshot_StorageErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := storageMocks.NewMockStorage(ctrl)
	repo, m := newSnapshot(mockStorage)
	errOffline := errors.New("offline")

	mockStorage.EXPECT().Set(gomock.Any(), "bookings", "[]").Return(errOffline)

	err := repo.Save(context.Background(), []booking{})
	assert.ErrorIs(t, err, errOffline)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotWrites.WithLabelValues("bookings", metrics.ResultError)))

	mockStorage.EXPECT().Get(gomock.Any(), "bookings").Return("", errOffline)

	_, err = repo.Load(context.Background())
	assert.ErrorIs(t, err, errOffline)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}

func TestSnapshot_Key(t *testing.T) {
	repo, _ := newSnapshot(storage.NewMemory())

	assert.Equal(t, "bookings", repo.Key())
}
