// Package crowd generates the simulated crowd figures shown on the crowd
// management page.
package crowd

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/travigo/patnametro/pkg/ctdf"
	"golang.org/x/exp/slices"
)

var weekdayLevels = []ctdf.DailyCrowd{
	{Day: "Monday", Level: 65},
	{Day: "Tuesday", Level: 60},
	{Day: "Wednesday", Level: 62},
	{Day: "Thursday", Level: 63},
	{Day: "Friday", Level: 70},
	{Day: "Saturday", Level: 45},
	{Day: "Sunday", Level: 30},
}

func LevelForPercentage(percentage int) ctdf.CrowdLevel {
	switch {
	case percentage < 30:
		return ctdf.CrowdLevelLow
	case percentage < 60:
		return ctdf.CrowdLevelModerate
	default:
		return ctdf.CrowdLevelHigh
	}
}

// Generator produces random crowd figures. It is safe for concurrent use.
type Generator struct {
	mutex  sync.Mutex
	random *rand.Rand
}

func NewGenerator(source rand.Source) *Generator {
	if source == nil {
		source = rand.NewPCG(uint64(time.Now().UnixNano()), 0)
	}

	return &Generator{
		random: rand.New(source),
	}
}

func (g *Generator) intn(n int) int {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	return g.random.IntN(n)
}

// StationSnapshot gives every station a crowd percentage (0-99) and next train
// arrival (2-9 minutes), most crowded first
func (g *Generator) StationSnapshot(stations []ctdf.Station) []ctdf.StationCrowd {
	snapshot := make([]ctdf.StationCrowd, 0, len(stations))

	for _, station := range stations {
		percentage := g.intn(100)

		snapshot = append(snapshot, ctdf.StationCrowd{
			StationRef:       station.Identifier,
			Name:             station.Name,
			Percentage:       percentage,
			Level:            LevelForPercentage(percentage),
			NextTrainMinutes: 2 + g.intn(8),
		})
	}

	slices.SortStableFunc(snapshot, func(a, b ctdf.StationCrowd) int {
		return b.Percentage - a.Percentage
	})

	return snapshot
}

// HourlyProfile is a 24 hour crowd curve with morning and evening peaks
func (g *Generator) HourlyProfile() []ctdf.HourlyCrowd {
	profile := make([]ctdf.HourlyCrowd, 24)

	for hour := range profile {
		var level int

		switch {
		case hour >= 8 && hour <= 10:
			level = 70 + g.intn(30)
		case hour >= 17 && hour <= 19:
			level = 80 + g.intn(20)
		case hour >= 12 && hour <= 16:
			level = 40 + g.intn(20)
		default:
			level = 10 + g.intn(20)
		}

		profile[hour] = ctdf.HourlyCrowd{Hour: hour, Level: level}
	}

	return profile
}

// BestTravelTimes picks the three least crowded hours still to come today
func BestTravelTimes(profile []ctdf.HourlyCrowd, currentHour int) []ctdf.HourlyCrowd {
	upcoming := []ctdf.HourlyCrowd{}
	for _, hour := range profile {
		if hour.Hour > currentHour {
			upcoming = append(upcoming, hour)
		}
	}

	slices.SortStableFunc(upcoming, func(a, b ctdf.HourlyCrowd) int {
		return a.Level - b.Level
	})

	if len(upcoming) > 3 {
		upcoming = upcoming[:3]
	}

	return upcoming
}

func WeekdayProfile() []ctdf.DailyCrowd {
	return slices.Clone(weekdayLevels)
}

// Forecast builds the full crowd page payload for a line at the given time
func (g *Generator) Forecast(lineRef string, stations []ctdf.Station, now time.Time) *ctdf.CrowdForecast {
	hourly := g.HourlyProfile()

	return &ctdf.CrowdForecast{
		LineRef:     lineRef,
		Stations:    g.StationSnapshot(stations),
		Hourly:      hourly,
		BestTimes:   BestTravelTimes(hourly, now.Hour()),
		Weekday:     WeekdayProfile(),
		GeneratedAt: now,
	}
}
