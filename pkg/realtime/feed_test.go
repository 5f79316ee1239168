package realtime

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/patnametro/pkg/ctdf"
	"github.com/travigo/patnametro/pkg/dataimporter"
	"google.golang.org/protobuf/proto"
)

func newTestFeed(t *testing.T) (*Feed, *dataimporter.Dataset) {
	dataset, err := dataimporter.Load()
	require.NoError(t, err)

	return NewFeed(dataset.Trains, rand.NewPCG(3, 0)), dataset
}

func TestTrainsWithoutJitterMatchDataset(t *testing.T) {
	feed, dataset := newTestFeed(t)

	assert.Equal(t, dataset.Trains, feed.Trains(TrainOptions{}))
	assert.Equal(t, dataset.Trains, feed.Trains(TrainOptions{}))
}

func TestTrainsLineFilter(t *testing.T) {
	feed, _ := newTestFeed(t)

	trains := feed.Trains(TrainOptions{LineRef: "blue"})
	require.Len(t, trains, 3)
	for _, train := range trains {
		assert.Equal(t, "blue", train.LineRef)
	}

	assert.Empty(t, feed.Trains(TrainOptions{LineRef: "purple"}))
}

func TestTrainsJitterLeavesTableUntouched(t *testing.T) {
	feed, dataset := newTestFeed(t)

	for run := 0; run < 10; run++ {
		for _, train := range feed.Trains(TrainOptions{Jitter: true}) {
			assert.True(t, train.CrowdLevel.IsValid())
			assert.GreaterOrEqual(t, train.MinutesToArrival, 1)
			assert.LessOrEqual(t, train.MinutesToArrival, 10)
		}
	}

	assert.Equal(t, dataset.Trains, feed.Trains(TrainOptions{}))
}

func TestFilter(t *testing.T) {
	feed, _ := newTestFeed(t)

	delayed, err := feed.Filter(`Status == "delayed"`, TrainOptions{})
	require.NoError(t, err)
	require.Len(t, delayed, 2)
	assert.Equal(t, "1002", delayed[0].Identifier)
	assert.Equal(t, "1005", delayed[1].Identifier)

	soon, err := feed.Filter(`MinutesToArrival <= 3 && CrowdLevel != "high"`, TrainOptions{})
	require.NoError(t, err)
	require.Len(t, soon, 1)
	assert.Equal(t, "1003", soon[0].Identifier)

	onLine, err := feed.Filter(`Platform == 1`, TrainOptions{LineRef: "yellow"})
	require.NoError(t, err)
	assert.Len(t, onLine, 2)
}

func TestFilterRejectsInvalidExpressions(t *testing.T) {
	feed, _ := newTestFeed(t)

	for _, expression := range []string{`Status ==`, `Speed > 10`, `MinutesToArrival + 1`} {
		_, err := feed.Filter(expression, TrainOptions{})
		assert.ErrorIs(t, err, ErrInvalidFilter, expression)
	}
}

func TestStationBoard(t *testing.T) {
	feed, _ := newTestFeed(t)

	board := feed.StationBoard("pp")
	require.Len(t, board, 1)
	assert.Equal(t, "1003", board[0].Identifier)

	assert.Empty(t, feed.StationBoard("pj"))
}

func TestStationBoardSortedByMinutes(t *testing.T) {
	feed := NewFeed([]ctdf.Train{
		{Identifier: "a", NextStationRef: "gm", MinutesToArrival: 9},
		{Identifier: "b", NextStationRef: "gm", MinutesToArrival: 2},
		{Identifier: "c", NextStationRef: "dp", MinutesToArrival: 1},
		{Identifier: "d", NextStationRef: "gm", MinutesToArrival: 2},
	}, nil)

	board := feed.StationBoard("gm")
	require.Len(t, board, 3)
	assert.Equal(t, "b", board[0].Identifier)
	assert.Equal(t, "d", board[1].Identifier)
	assert.Equal(t, "a", board[2].Identifier)
}

func TestCountByStatus(t *testing.T) {
	feed, _ := newTestFeed(t)

	counts := feed.CountByStatus()
	assert.Equal(t, 4, counts[ctdf.TrainStatusOnTime])
	assert.Equal(t, 2, counts[ctdf.TrainStatusDelayed])
	assert.Equal(t, 1, counts[ctdf.TrainStatusArriving])
}

func TestGTFSRealtime(t *testing.T) {
	feed, dataset := newTestFeed(t)
	now := time.Date(2025, 5, 15, 9, 0, 0, 0, time.UTC)

	message := feed.GTFSRealtime(now)
	assert.Equal(t, GTFSRealtimeVersion, message.GetHeader().GetGtfsRealtimeVersion())
	assert.Equal(t, uint64(now.Unix()), message.GetHeader().GetTimestamp())
	require.Len(t, message.GetEntity(), len(dataset.Trains))

	first := message.GetEntity()[0].GetVehicle()
	assert.Equal(t, "blue", first.GetTrip().GetRouteId())
	assert.Equal(t, "gm", first.GetStopId())
	assert.Equal(t, gtfs.VehiclePosition_STANDING_ROOM_ONLY, first.GetOccupancyStatus())

	arriving := message.GetEntity()[2].GetVehicle()
	assert.Equal(t, gtfs.VehiclePosition_INCOMING_AT, arriving.GetCurrentStatus())
	assert.Equal(t, gtfs.VehiclePosition_MANY_SEATS_AVAILABLE, arriving.GetOccupancyStatus())

	encoded, err := proto.Marshal(message)
	require.NoError(t, err)

	decoded := &gtfs.FeedMessage{}
	require.NoError(t, proto.Unmarshal(encoded, decoded))
	assert.Len(t, decoded.GetEntity(), len(dataset.Trains))
}
