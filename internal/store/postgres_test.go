package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/versetab/verse-tab-api/internal/database"
)

type testDBService struct {
	db *sql.DB
}

func (t *testDBService) Health() map[string]string { return map[string]string{"status": "up"} }
func (t *testDBService) Close() error              { return t.db.Close() }
func (t *testDBService) DB() *sql.DB               { return t.db }

func setupTestDB(t *testing.T) database.Service {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("verse_tab_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(ctx, db))
	return &testDBService{db: db}
}

func TestPostgres_SetGetDelete(t *testing.T) {
	svc := setupTestDB(t)
	defer svc.Close()

	kv := NewPostgres(svc)
	ctx := context.Background()

	type streak struct {
		Count         int    `json:"count"`
		LastVisitDate string `json:"last_visit_date"`
	}

	var out streak
	found, err := kv.Get(ctx, KeyStreak, &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Set(ctx, KeyStreak, streak{Count: 3, LastVisitDate: "2024-01-15"}))

	found, err = kv.Get(ctx, KeyStreak, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, streak{Count: 3, LastVisitDate: "2024-01-15"}, out)

	// Set on an existing key overwrites.
	require.NoError(t, kv.Set(ctx, KeyStreak, streak{Count: 4, LastVisitDate: "2024-01-16"}))
	_, err = kv.Get(ctx, KeyStreak, &out)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Count)

	require.NoError(t, kv.Delete(ctx, KeyStreak))
	found, err = kv.Get(ctx, KeyStreak, &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPostgres_HistoryRoundTrip(t *testing.T) {
	svc := setupTestDB(t)
	defer svc.Close()

	kv := NewPostgres(svc)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		PushHistory(ctx, kv, KeyImageHistory, id, ImageHistoryLimit)
	}

	got := GetHistory(ctx, kv, KeyImageHistory)
	assert.Equal(t, []string{"f", "e", "d", "c", "b"}, got)
}

func TestPostgres_SetIsVisibleQuickly(t *testing.T) {
	svc := setupTestDB(t)
	defer svc.Close()

	kv := NewPostgres(svc)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, kv.Set(ctx, "k", "v"))
	var out string
	found, err := kv.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", out)
}
