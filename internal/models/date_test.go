package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		d, err := ParseDate("2024-03-15")
		require.NoError(t, err)
		assert.Equal(t, 2024, d.Year())
		assert.Equal(t, time.March, d.Month())
		assert.Equal(t, 15, d.DayOfMonth())
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, s := range []string{"", "15/03/2024", "2024-13-01", "2024-03-15T10:00:00Z"} {
			_, err := ParseDate(s)
			assert.Error(t, err, "input %q", s)
		}
	})
}

func TestDateISOWeekday(t *testing.T) {
	// 2024-03-11 was a Monday
	monday := NewDate(2024, time.March, 11)
	for i := 0; i < 7; i++ {
		d := monday.AddDays(i)
		assert.Equal(t, i+1, d.ISOWeekday(), "date %s", d)
	}

	t.Run("weekend is saturday and sunday", func(t *testing.T) {
		assert.False(t, NewDate(2024, time.March, 15).IsWeekend()) // Friday
		assert.True(t, NewDate(2024, time.March, 16).IsWeekend())  // Saturday
		assert.True(t, NewDate(2024, time.March, 17).IsWeekend())  // Sunday
		assert.False(t, NewDate(2024, time.March, 18).IsWeekend()) // Monday
	})
}

func TestDateArithmetic(t *testing.T) {
	start := NewDate(2024, time.March, 1)
	end := NewDate(2024, time.March, 31)

	assert.Equal(t, 30, end.DaysSince(start))
	assert.Equal(t, -30, start.DaysSince(end))
	assert.True(t, start.Before(end))
	assert.True(t, end.After(start))
	assert.True(t, start.AddDays(30).Equal(end))
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.March, 5)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, d.Equal(back))

	t.Run("rejects numbers", func(t *testing.T) {
		var bad Date
		assert.Error(t, json.Unmarshal([]byte(`20240305`), &bad))
	})
}
