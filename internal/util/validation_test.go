package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	t.Run("accepts normal addresses", func(t *testing.T) {
		assert.True(t, IsValidEmail("jo@example.com"))
		assert.True(t, IsValidEmail("first.last+tag@sub.example.co"))
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		assert.False(t, IsValidEmail(""))
		assert.False(t, IsValidEmail("no-at-sign"))
		assert.False(t, IsValidEmail("missing@tld"))
		assert.False(t, IsValidEmail("spaces in@example.com"))
		assert.False(t, IsValidEmail("@example.com"))
	})
}

func TestParseMeetingDate(t *testing.T) {
	t.Run("parses yyyy-mm-dd", func(t *testing.T) {
		d, ok := ParseMeetingDate("2026-03-15")
		require.True(t, ok)
		assert.Equal(t, 2026, d.Year())
		assert.Equal(t, time.March, d.Month())
		assert.Equal(t, 15, d.Day())
	})

	t.Run("trims whitespace", func(t *testing.T) {
		_, ok := ParseMeetingDate("  2026-03-15  ")
		assert.True(t, ok)
	})

	t.Run("rejects other formats", func(t *testing.T) {
		_, ok := ParseMeetingDate("15/03/2026")
		assert.False(t, ok)
		_, ok = ParseMeetingDate("2026-3-5")
		assert.False(t, ok)
		_, ok = ParseMeetingDate("not a date")
		assert.False(t, ok)
	})
}

func TestIsPastDay(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	t.Run("yesterday is past", func(t *testing.T) {
		d, _ := ParseMeetingDate("2026-03-14")
		assert.True(t, IsPastDay(d, now))
	})

	t.Run("today is not past regardless of time of day", func(t *testing.T) {
		d, _ := ParseMeetingDate("2026-03-15")
		assert.False(t, IsPastDay(d, now))
	})

	t.Run("tomorrow is not past", func(t *testing.T) {
		d, _ := ParseMeetingDate("2026-03-16")
		assert.False(t, IsPastDay(d, now))
	})
}
