package streak

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/versetab/verse-tab-api/internal/store"
)

func newTestService(t *testing.T, now time.Time) (*Service, store.KV) {
	t.Helper()
	kv := store.NewMemory()
	s := NewService(kv)
	s.now = func() time.Time { return now }
	return s, kv
}

func TestRecordVisit_FirstVisitStartsAtOne(t *testing.T) {
	s, _ := newTestService(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC))

	rec := s.RecordVisit(context.Background())
	assert.Equal(t, 1, rec.Count)
	assert.Equal(t, "2024-01-15", rec.LastVisitDate)
}

func TestRecordVisit_SameDayIsNoOp(t *testing.T) {
	s, kv := newTestService(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, store.KeyStreak, Record{Count: 4, LastVisitDate: "2024-01-15"}))

	rec := s.RecordVisit(ctx)
	assert.Equal(t, 4, rec.Count)
	assert.Equal(t, "2024-01-15", rec.LastVisitDate)
}

func TestRecordVisit_YesterdayExtendsStreak(t *testing.T) {
	s, kv := newTestService(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, store.KeyStreak, Record{Count: 4, LastVisitDate: "2024-01-14"}))

	rec := s.RecordVisit(ctx)
	assert.Equal(t, 5, rec.Count)
	assert.Equal(t, "2024-01-15", rec.LastVisitDate)

	var stored Record
	found, err := kv.Get(ctx, store.KeyStreak, &stored)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, rec, stored)
}

func TestRecordVisit_GapResetsToOne(t *testing.T) {
	s, kv := newTestService(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, store.KeyStreak, Record{Count: 12, LastVisitDate: "2024-01-10"}))

	rec := s.RecordVisit(ctx)
	assert.Equal(t, 1, rec.Count)
	assert.Equal(t, "2024-01-15", rec.LastVisitDate)
}

func TestRecordVisit_ExtendsAcrossMonthBoundary(t *testing.T) {
	s, kv := newTestService(t, time.Date(2024, 3, 1, 0, 30, 0, 0, time.UTC))
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, store.KeyStreak, Record{Count: 7, LastVisitDate: "2024-02-29"}))

	rec := s.RecordVisit(ctx)
	assert.Equal(t, 8, rec.Count)
	assert.Equal(t, "2024-03-01", rec.LastVisitDate)
}
