package dbtime

import (
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

const defaultTimezone = "Asia/Karachi"

var (
	locOnce sync.Once
	appLoc  *time.Location
)

// AppLocation is the business timezone (APP_TIMEZONE, default Asia/Karachi).
// Falls back to UTC when the zone database is missing.
func AppLocation() *time.Location {
	locOnce.Do(func() {
		name := strings.TrimSpace(os.Getenv("APP_TIMEZONE"))
		if name == "" {
			name = defaultTimezone
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			log.Printf("[WARN] load timezone %q: %v, using UTC", name, err)
			loc = time.UTC
		}
		appLoc = loc
	})
	return appLoc
}

func Now() time.Time {
	return time.Now().In(AppLocation())
}

// Year returns the calendar year of t in the business timezone.
func Year(t time.Time) int {
	return t.In(AppLocation()).Year()
}
