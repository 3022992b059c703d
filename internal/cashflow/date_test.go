package cashflow

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDate_RejectsMissingDays(t *testing.T) {
	_, err := NewDate(2023, time.February, 29)
	assert.Error(t, err)
	_, err = NewDate(2024, time.Month(13), 1)
	assert.Error(t, err)

	d, err := NewDate(2024, time.February, 29)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())
}

func TestAddMonthsClamped(t *testing.T) {
	jan31 := Date{2024, time.January, 31}
	assert.Equal(t, Date{2024, time.February, 29}, jan31.AddMonthsClamped(1, 31))
	assert.Equal(t, Date{2024, time.March, 31}, jan31.AddMonthsClamped(2, 31))
	assert.Equal(t, Date{2025, time.January, 31}, jan31.AddMonthsClamped(12, 31))
	assert.Equal(t, Date{2023, time.November, 30}, jan31.AddMonthsClamped(-2, 31))
	assert.Equal(t, Date{2023, time.December, 31}, jan31.AddMonthsClamped(-1, 31))
}

func TestAddDaysAndCompare(t *testing.T) {
	d := Date{2024, time.December, 30}
	next := d.AddDays(3)
	assert.Equal(t, Date{2025, time.January, 2}, next)
	assert.True(t, d.Before(next))
	assert.True(t, next.After(d))
	assert.Equal(t, 3, d.DaysUntil(next))
	assert.Equal(t, 0, d.Compare(d))
}

func TestDateJSON(t *testing.T) {
	d := Date{2024, time.March, 5}
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, d, back)

	assert.Error(t, json.Unmarshal([]byte(`"2024-02-30"`), &back))
}

func TestDateOf_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	instant := time.Date(2024, time.March, 14, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, Date{2024, time.March, 15}, DateOf(instant.In(loc)))
}
