package utils

import (
	"log"
	"sync"
	"time"
	_ "time/tzdata"
)

var (
	easternOnce sync.Once
	eastern     *time.Location
)

// EasternLocation returns America/New_York, loaded once.
func EasternLocation() *time.Location {
	easternOnce.Do(func() {
		loc, err := time.LoadLocation("America/New_York")
		if err != nil {
			log.Printf("Failed to load America/New_York, using fixed EST offset: %v", err)
			loc = time.FixedZone("EST", -5*60*60)
		}
		eastern = loc
	})
	return eastern
}

// TimeNowET returns the current time in US Eastern time.
func TimeNowET() time.Time {
	return time.Now().In(EasternLocation())
}

// PrettyDate formats t as e.g. "Mon, 02 Jan 2006 15:04 EST" in Eastern time.
func PrettyDate(t time.Time) string {
	return t.In(EasternLocation()).Format("Mon, 02 Jan 2006 15:04 MST")
}
