package timezone

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	assert.Equal(t, time.UTC, load(""))
	assert.Equal(t, time.UTC, load("Mars/Olympus_Mons"))
	assert.Equal(t, "Asia/Jakarta", load("Asia/Jakarta").String())
}

func TestFormatUsesAppLocation(t *testing.T) {
	previous := appLocation
	t.Cleanup(func() { appLocation = previous })

	appLocation = load("Asia/Jakarta")

	instant := time.Date(2025, 12, 1, 20, 30, 0, 0, time.UTC)

	assert.Equal(t, "2025-12-02 03:30", Format(instant, "2006-01-02 15:04"))
	assert.Equal(t, appLocation, Now().Location())
	assert.Equal(t, appLocation, Location())
}
