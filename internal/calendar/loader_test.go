package calendar

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRules_USFederalMatchesDefault(t *testing.T) {
	c, err := LoadRules("../../config/rules/us_federal.yaml")
	require.NoError(t, err)

	assert.Equal(t, "us-federal", c.ID())
	assert.Equal(t, USFederalRules.Rules, c.Rules())
	for _, year := range []int{2023, 2024, 2025, 2100} {
		assert.Equal(t, HolidaysForYear(year), c.HolidaysForYear(year), "year %d", year)
	}
}

func TestLoadRules_NRW(t *testing.T) {
	c, err := LoadRules("../../config/rules/de_nrw.yaml")
	require.NoError(t, err)

	holidays := c.HolidaysForYear(2024)
	require.Len(t, holidays, 11)

	byName := make(map[string]Date)
	for _, h := range holidays {
		byName[h.Name] = h.Date
	}
	assert.Equal(t, d(2024, time.March, 29), byName["Karfreitag"])
	assert.Equal(t, d(2024, time.April, 1), byName["Ostermontag"])
	assert.Equal(t, d(2024, time.May, 9), byName["Christi Himmelfahrt"])
	assert.Equal(t, d(2024, time.May, 20), byName["Pfingstmontag"])
	assert.Equal(t, d(2024, time.May, 30), byName["Fronleichnam"])
}

func TestParseRules_UnknownField(t *testing.T) {
	_, err := ParseRules([]byte(`
id: typo
rules:
  - name: New Year
    kind: fixed
    month: 1
    dya: 1
`))
	assert.Error(t, err)
}

func TestParseRules_BadWeekday(t *testing.T) {
	_, err := ParseRules([]byte(`
id: bad
rules:
  - name: Someday
    kind: last_weekday
    month: 5
    weekday: funday
`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRule))
}

func TestParseRules_ShortWeekday(t *testing.T) {
	c, err := ParseRules([]byte(`
id: short
rules:
  - name: Memorial Day
    kind: last_weekday
    month: 5
    weekday: Mon
`))
	require.NoError(t, err)
	assert.Equal(t, []Holiday{{"Memorial Day", d(2025, time.May, 26)}}, c.HolidaysForYear(2025))
}

func TestLoadRules_MissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseRules_MissingIDUsesContentHash(t *testing.T) {
	src := []byte(`
rules:
  - name: New Year
    kind: fixed
    month: 1
    day: 1
`)
	a, err := ParseRules(src)
	require.NoError(t, err)
	b, err := ParseRules(src)
	require.NoError(t, err)
	assert.Equal(t, a.ID(), b.ID())
	assert.Regexp(t, `^custom-[0-9a-f]{12}$`, a.ID())

	c, err := ParseRules([]byte(`
rules:
  - name: New Year
    kind: fixed
    month: 1
    day: 2
`))
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), c.ID())
	assert.Equal(t, a.ID(), a.CacheID())
}

func TestCacheID_TracksContentUnderSameID(t *testing.T) {
	src := `
id: us-federal
rules:
  - name: New Year's Day
    kind: fixed
    month: 1
    day: 1
`
	a, err := ParseRules([]byte(src))
	require.NoError(t, err)
	b, err := ParseRules([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, a.CacheID(), b.CacheID())
	assert.Regexp(t, `^us-federal-[0-9a-f]{12}$`, a.CacheID())

	// same id as the built-in set, different rules
	assert.Equal(t, Default().ID(), a.ID())
	assert.NotEqual(t, Default().CacheID(), a.CacheID())
}
