package query

import "time"

type CrowdForecast struct {
	LineRef string
	At      time.Time
}
