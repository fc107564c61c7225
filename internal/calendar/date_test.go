package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 366, DaysIn(2024))
	assert.Equal(t, 365, DaysIn(2025))
	assert.Equal(t, 365, DaysIn(1900))
	assert.Equal(t, 366, DaysIn(2000))
	assert.Len(t, DaysOfYear(2024), 366)
}

func TestDate_Arithmetic(t *testing.T) {
	jan1 := FirstDay(2024)

	assert.Equal(t, 0, jan1.Ordinal())
	assert.Equal(t, 365, d(2024, time.December, 31).Ordinal())
	assert.Equal(t, d(2024, time.March, 1), d(2024, time.February, 28).AddDays(2))
	assert.Equal(t, d(2025, time.January, 1), d(2024, time.December, 31).AddDays(1))
	assert.Equal(t, 366, jan1.DaysUntil(FirstDay(2025)))
	assert.Equal(t, -1, jan1.DaysUntil(d(2023, time.December, 31)))
	assert.Equal(t, d(2025, time.March, 1), NewDate(2025, time.February, 29))
}

func TestDate_Compare(t *testing.T) {
	a := d(2024, time.July, 4)
	b := d(2024, time.July, 5)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, d(2023, time.December, 31).Compare(FirstDay(2024)))
	assert.True(t, Date{}.IsZero())
}

func TestDate_Format(t *testing.T) {
	assert.Equal(t, "2024-07-04", d(2024, time.July, 4).String())
	assert.Equal(t, "2024-07-04 (Thu)", d(2024, time.July, 4).Display())
}

func TestDate_JSON(t *testing.T) {
	data, err := json.Marshal(Holiday{Name: "Independence Day", Date: d(2024, time.July, 4)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Independence Day","date":"2024-07-04"}`, string(data))

	var h Holiday
	require.NoError(t, json.Unmarshal(data, &h))
	assert.Equal(t, d(2024, time.July, 4), h.Date)

	assert.Error(t, json.Unmarshal([]byte(`{"date":"07/04/2024"}`), &h))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-11-27")
	require.NoError(t, err)
	assert.Equal(t, d(2025, time.November, 27), got)

	_, err = ParseDate("2025-13-01")
	assert.Error(t, err)
}
