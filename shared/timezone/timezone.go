// Package timezone pins wall-clock time to APP_TIMEZONE and models calendar dates.
package timezone

import (
	"time"

	"hotel/config"

	"github.com/rs/zerolog/log"
)

var appLocation = time.UTC

func init() {
	appLocation = load(config.Get().App.Timezone)
}

// load resolves an IANA zone name, falling back to UTC when it is empty or unknown.
func load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Unknown timezone, falling back to UTC")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return loc
}

// Location is the configured application timezone.
func Location() *time.Location {
	return appLocation
}

// Now is the current instant in the application timezone.
func Now() time.Time {
	return time.Now().In(appLocation)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

// Format renders t in the application timezone.
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
