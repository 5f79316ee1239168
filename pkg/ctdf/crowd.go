package ctdf

import "time"

type StationCrowd struct {
	StationRef string `groups:"basic"`
	Name       string `groups:"basic"`

	Percentage int        `groups:"basic"`
	Level      CrowdLevel `groups:"basic"`

	NextTrainMinutes int `groups:"basic"`
}

type HourlyCrowd struct {
	Hour  int `groups:"basic"`
	Level int `groups:"basic"`
}

type DailyCrowd struct {
	Day   string `groups:"basic"`
	Level int    `groups:"basic"`
}

// CrowdForecast is everything the crowd page shows for a single line
type CrowdForecast struct {
	LineRef string `groups:"basic"`

	Stations  []StationCrowd `groups:"basic"`
	Hourly    []HourlyCrowd  `groups:"basic"`
	BestTimes []HourlyCrowd  `groups:"basic"`
	Weekday   []DailyCrowd   `groups:"basic"`

	GeneratedAt time.Time `groups:"basic"`
}
