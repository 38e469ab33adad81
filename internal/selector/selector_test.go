package selector

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyIndex_InRangeAndStable(t *testing.T) {
	seeds := []string{"verse", "nature", "custom", "source-blend", ""}
	lengths := []int{1, 2, 20, 365, 1000}

	for _, seed := range seeds {
		for _, length := range lengths {
			idx, err := DailyIndex(seed, "2024-01-15", length)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, length)

			// Same inputs, same answer, every time.
			for i := 0; i < 5; i++ {
				again, err := DailyIndex(seed, "2024-01-15", length)
				require.NoError(t, err)
				assert.Equal(t, idx, again)
			}
		}
	}
}

func TestDailyIndex_EmptyCollection(t *testing.T) {
	_, err := DailyIndex("verse", "2024-01-15", 0)
	assert.ErrorIs(t, err, ErrEmptyCollection)

	_, err = DailyIndex("verse", "2024-01-15", -1)
	assert.ErrorIs(t, err, ErrEmptyCollection)
}

func TestDailyIndex_SpreadsAcrossDates(t *testing.T) {
	// Over a hundred consecutive dates the selected indices must cover a
	// substantial fraction of the collection, not collapse to a few values.
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seen := make(map[int]bool)

	for day := 0; day < 100; day++ {
		date := start.AddDate(0, 0, day).Format("2006-01-02")
		idx, err := DailyIndex("verse", date, 365)
		require.NoError(t, err)
		seen[idx] = true
	}

	assert.GreaterOrEqual(t, len(seen), 50, "expected at least 50 distinct indices over 100 dates, got %d", len(seen))
}

func TestDailyIndex_DifferentSeedsDiffer(t *testing.T) {
	// Not guaranteed for every pair, but across many dates two seeds must
	// disagree somewhere.
	var differs bool
	for day := 1; day <= 31; day++ {
		date := fmt.Sprintf("2024-01-%02d", day)
		a, err := DailyIndex("verse", date, 365)
		require.NoError(t, err)
		b, err := DailyIndex("nature", date, 365)
		require.NoError(t, err)
		if a != b {
			differs = true
			break
		}
	}
	assert.True(t, differs)
}

func TestRandomIndexAvoidingHistory(t *testing.T) {
	t.Run("single candidate is always chosen", func(t *testing.T) {
		history := map[int]bool{0: true, 1: true, 3: true, 4: true}
		for i := 0; i < 20; i++ {
			idx := RandomIndexAvoidingHistory(5, func(i int) bool { return history[i] })
			assert.Equal(t, 2, idx)
		}
	})

	t.Run("full history still yields a valid index", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			idx := RandomIndexAvoidingHistory(3, func(i int) bool { return true })
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, 3)
		}
	})

	t.Run("empty collection", func(t *testing.T) {
		assert.Equal(t, -1, RandomIndexAvoidingHistory(0, func(i int) bool { return false }))
	})
}

func TestDayOfYear(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), 15},
		{time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 366}, // leap year
		{time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), 365},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DayOfYear(tt.date), "date %s", tt.date)
	}
}

func TestDayOfYear_DSTImmune(t *testing.T) {
	// The same instant must yield the same ordinal regardless of the zone
	// it is expressed in.
	loc := time.FixedZone("UTC+13", 13*3600)
	instant := time.Date(2024, 3, 10, 2, 30, 0, 0, time.UTC)
	assert.Equal(t, DayOfYear(instant), DayOfYear(instant.In(loc)))
}

func TestDailyCategory(t *testing.T) {
	enabled := []string{"galaxy", "mountains", "nature", "oceans", "underwater"}
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	got, err := DailyCategory(date, enabled)
	require.NoError(t, err)
	// 2024 + 1 + 15 = 2040, 2040 % 5 = 0
	assert.Equal(t, "galaxy", got)

	again, err := DailyCategory(date, enabled)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	_, err = DailyCategory(date, nil)
	assert.ErrorIs(t, err, ErrEmptyCollection)
}
