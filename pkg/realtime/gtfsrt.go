package realtime

import (
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/travigo/patnametro/pkg/ctdf"
	"google.golang.org/protobuf/proto"
)

const GTFSRealtimeVersion = "2.0"

// GTFSRealtime exports the current train positions as a GTFS-Realtime feed with
// one VehiclePosition entity per train
func (f *Feed) GTFSRealtime(now time.Time) *gtfs.FeedMessage {
	timestamp := uint64(now.Unix())

	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: proto.String(GTFSRealtimeVersion),
			Incrementality:      gtfs.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(timestamp),
		},
	}

	for _, train := range f.trains {
		tripDescriptor := &gtfs.TripDescriptor{
			RouteId:              proto.String(train.LineRef),
			ScheduleRelationship: gtfs.TripDescriptor_SCHEDULED.Enum(),
		}
		if train.Status == ctdf.TrainStatusCancelled {
			tripDescriptor.ScheduleRelationship = gtfs.TripDescriptor_CANCELED.Enum()
		}

		feed.Entity = append(feed.Entity, &gtfs.FeedEntity{
			Id: proto.String(train.Identifier),
			Vehicle: &gtfs.VehiclePosition{
				Trip: tripDescriptor,
				Vehicle: &gtfs.VehicleDescriptor{
					Id:    proto.String(train.Identifier),
					Label: proto.String(train.Destination),
				},
				StopId:          proto.String(train.NextStationRef),
				CurrentStatus:   vehicleStopStatus(train.Status).Enum(),
				OccupancyStatus: occupancyStatus(train.CrowdLevel).Enum(),
				Timestamp:       proto.Uint64(timestamp),
			},
		})
	}

	return feed
}

func vehicleStopStatus(status ctdf.TrainStatus) gtfs.VehiclePosition_VehicleStopStatus {
	switch status {
	case ctdf.TrainStatusArriving:
		return gtfs.VehiclePosition_INCOMING_AT
	default:
		return gtfs.VehiclePosition_IN_TRANSIT_TO
	}
}

func occupancyStatus(level ctdf.CrowdLevel) gtfs.VehiclePosition_OccupancyStatus {
	switch level {
	case ctdf.CrowdLevelLow:
		return gtfs.VehiclePosition_MANY_SEATS_AVAILABLE
	case ctdf.CrowdLevelModerate:
		return gtfs.VehiclePosition_FEW_SEATS_AVAILABLE
	case ctdf.CrowdLevelHigh:
		return gtfs.VehiclePosition_STANDING_ROOM_ONLY
	default:
		return gtfs.VehiclePosition_NO_DATA_AVAILABLE
	}
}
