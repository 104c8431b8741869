package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = LoadLocation("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())

	_, err = LoadLocation("Not/AZone")
	assert.Error(t, err)
}

func TestPreviousDate(t *testing.T) {
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-02-29", PreviousDate(now))
}

func TestValidateDate(t *testing.T) {
	assert.NoError(t, ValidateDate("2024-01-15"))
	assert.Error(t, ValidateDate("15/01/2024"))
	assert.Error(t, ValidateDate("2024-13-01"))
}
