package realtime

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/travigo/patnametro/pkg/ctdf"
	"golang.org/x/exp/slices"
)

var ErrInvalidFilter = errors.New("invalid train filter")

var jitterCrowdLevels = []ctdf.CrowdLevel{ctdf.CrowdLevelLow, ctdf.CrowdLevelModerate, ctdf.CrowdLevelHigh}

type TrainOptions struct {
	LineRef string
	Jitter  bool
}

// Feed serves the simulated live train positions. The underlying table is never
// modified; jitter is applied to copies.
type Feed struct {
	trains []ctdf.Train

	mutex  sync.Mutex
	random *rand.Rand
}

func NewFeed(trains []ctdf.Train, source rand.Source) *Feed {
	if source == nil {
		source = rand.NewPCG(uint64(time.Now().UnixNano()), 0)
	}

	return &Feed{
		trains: slices.Clone(trains),
		random: rand.New(source),
	}
}

func (f *Feed) Trains(options TrainOptions) []ctdf.Train {
	trains := []ctdf.Train{}

	for _, train := range f.trains {
		if options.LineRef != "" && train.LineRef != options.LineRef {
			continue
		}

		if options.Jitter {
			train = f.jitter(train)
		}

		trains = append(trains, train)
	}

	return trains
}

func (f *Feed) jitter(train ctdf.Train) ctdf.Train {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	train.CrowdLevel = jitterCrowdLevels[f.random.IntN(len(jitterCrowdLevels))]
	train.MinutesToArrival = 1 + f.random.IntN(10)

	return train
}

// The fields a filter expression can reference
type trainEnvironment struct {
	Identifier       string
	LineRef          string
	NextStationRef   string
	Destination      string
	Status           string
	CrowdLevel       string
	MinutesToArrival int
	Platform         int
}

func newTrainEnvironment(train ctdf.Train) trainEnvironment {
	return trainEnvironment{
		Identifier:       train.Identifier,
		LineRef:          train.LineRef,
		NextStationRef:   train.NextStationRef,
		Destination:      train.Destination,
		Status:           string(train.Status),
		CrowdLevel:       string(train.CrowdLevel),
		MinutesToArrival: train.MinutesToArrival,
		Platform:         train.Platform,
	}
}

func CompileFilter(expression string) (*vm.Program, error) {
	program, err := expr.Compile(expression, expr.Env(trainEnvironment{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFilter, err)
	}

	return program, nil
}

// Filter returns the trains matching a boolean expression such as
// `Status == "delayed" && MinutesToArrival < 6`
func (f *Feed) Filter(expression string, options TrainOptions) ([]ctdf.Train, error) {
	program, err := CompileFilter(expression)
	if err != nil {
		return nil, err
	}

	matching := []ctdf.Train{}

	for _, train := range f.Trains(options) {
		output, err := expr.Run(program, newTrainEnvironment(train))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFilter, err)
		}

		if output.(bool) {
			matching = append(matching, train)
		}
	}

	return matching, nil
}

// StationBoard lists the trains heading to a station, soonest first
func (f *Feed) StationBoard(stationRef string) []ctdf.Train {
	board := []ctdf.Train{}

	for _, train := range f.trains {
		if train.NextStationRef == stationRef {
			board = append(board, train)
		}
	}

	slices.SortStableFunc(board, func(a, b ctdf.Train) int {
		return a.MinutesToArrival - b.MinutesToArrival
	})

	return board
}

// CountByStatus is used by the admin dashboard
func (f *Feed) CountByStatus() map[ctdf.TrainStatus]int {
	counts := map[ctdf.TrainStatus]int{}

	for _, train := range f.trains {
		counts[train.Status]++
	}

	return counts
}
