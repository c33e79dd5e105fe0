package timezone_test

import (
	"kampus/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { _ = timezone.Init("UTC") })

	require.NoError(t, timezone.Init("Asia/Jakarta"))
	assert.Equal(t, "Asia/Jakarta", timezone.GetLocation().String())
	assert.Equal(t, "Asia/Jakarta", timezone.Now().Location().String())

	require.NoError(t, timezone.Init(""))
	assert.Equal(t, time.UTC, timezone.GetLocation())

	err := timezone.Init("Mars/Olympus_Mons")
	assert.Error(t, err)
	assert.Equal(t, time.UTC, timezone.GetLocation())
}

func TestFormatAndParse(t *testing.T) {
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-01 12:00", timezone.Format(testTime, "2006-01-02 15:04"))

	parsed, err := timezone.ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 15, parsed.Day())

	_, err = timezone.ParseDate("15/03/2024")
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	clock, err := timezone.ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, clock.Hour())
	assert.Equal(t, 30, clock.Minute())

	_, err = timezone.ParseClock("25:00")
	assert.Error(t, err)
}
