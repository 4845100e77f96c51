package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2025, 6, 1, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, date(2025, 6, 1), DateOnly(in))
}

func TestAddMonthsClamped(t *testing.T) {
	cases := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{"plain add", date(2025, 6, 1), 24, date(2027, 6, 1)},
		{"clamps to short month", date(2025, 1, 31), 1, date(2025, 2, 28)},
		{"clamps to leap february", date(2023, 12, 31), 2, date(2024, 2, 29)},
		{"year rollover", date(2025, 11, 15), 3, date(2026, 2, 15)},
		{"multi year", date(2025, 3, 31), 36, date(2028, 3, 31)},
		{"thirty day month", date(2025, 5, 31), 1, date(2025, 6, 30)},
		{"zero months", date(2025, 4, 10), 0, date(2025, 4, 10)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AddMonthsClamped(tc.start, tc.months))
		})
	}
}
