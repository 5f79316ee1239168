package ctdf

type TrainStatus string

const (
	TrainStatusOnTime    TrainStatus = "on-time"
	TrainStatusDelayed   TrainStatus = "delayed"
	TrainStatusArriving  TrainStatus = "arriving"
	TrainStatusCancelled TrainStatus = "cancelled"
	TrainStatusDeparted  TrainStatus = "departed"
)

func (s TrainStatus) IsValid() bool {
	switch s {
	case TrainStatusOnTime, TrainStatusDelayed, TrainStatusArriving, TrainStatusCancelled, TrainStatusDeparted:
		return true
	}

	return false
}

type CrowdLevel string

const (
	CrowdLevelLow      CrowdLevel = "low"
	CrowdLevelModerate CrowdLevel = "moderate"
	CrowdLevelHigh     CrowdLevel = "high"
)

func (c CrowdLevel) IsValid() bool {
	return c == CrowdLevelLow || c == CrowdLevelModerate || c == CrowdLevelHigh
}

// Rank orders crowd levels from least to most crowded
func (c CrowdLevel) Rank() int {
	switch c {
	case CrowdLevelLow:
		return 0
	case CrowdLevelModerate:
		return 1
	case CrowdLevelHigh:
		return 2
	}

	return 3
}

type Train struct {
	Identifier string `groups:"basic"`
	LineRef    string `groups:"basic"`

	NextStationRef     string `groups:"basic"`
	PreviousStationRef string `groups:"basic"`
	Destination        string `groups:"basic"`

	Platform         int `groups:"basic"`
	MinutesToArrival int `groups:"basic"`

	Status     TrainStatus `groups:"basic"`
	CrowdLevel CrowdLevel  `groups:"basic"`

	X float64 `groups:"detailed"`
	Y float64 `groups:"detailed"`
}
