// Package selector holds the pure selection functions shared by the verse
// and background providers: a date-stable index for daily mode and a
// repeat-avoiding random index for random mode.
package selector

import (
	"errors"
	"math/rand"
	"time"
)

var ErrEmptyCollection = errors.New("cannot select from an empty collection")

// DailyIndex maps seed+date to a stable index in [0, length).
// Same seed and date always give the same index, across processes and
// restarts. The hash is a 31-multiplier polynomial rolling hash truncated
// to int32.
func DailyIndex(seed, date string, length int) (int, error) {
	if length <= 0 {
		return 0, ErrEmptyCollection
	}

	var h int32
	for _, ch := range seed + "-" + date {
		h = h*31 + int32(ch)
	}
	if h < 0 {
		h = -h
	}
	return int(h) % length, nil
}

// RandomIndexAvoidingHistory picks a uniform random index in [0, n) among
// positions for which inHistory reports false. When every position is in
// history the pick is uniform over all of them; history is a bias, not a
// hard exclusion. Returns -1 when n is zero.
func RandomIndexAvoidingHistory(n int, inHistory func(i int) bool) int {
	if n <= 0 {
		return -1
	}

	candidates := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !inHistory(i) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return rand.Intn(n)
	}
	return candidates[rand.Intn(len(candidates))]
}

// DayOfYear returns the 1-based ordinal day of the given date in UTC.
// UTC keeps the value immune to DST transitions in the server's locale.
func DayOfYear(t time.Time) int {
	return t.UTC().YearDay()
}

// DailyCategory deterministically picks one of the enabled categories for a
// date by summing the date's numeric components modulo the list length. The
// caller supplies the categories in a stable order.
func DailyCategory(t time.Time, enabled []string) (string, error) {
	if len(enabled) == 0 {
		return "", ErrEmptyCollection
	}
	u := t.UTC()
	sum := u.Year() + int(u.Month()) + u.Day()
	return enabled[sum%len(enabled)], nil
}
