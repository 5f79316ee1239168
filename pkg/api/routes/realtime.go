package routes

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/patnametro/pkg/realtime"
	"google.golang.org/protobuf/proto"
)

func RealtimeRouter(router fiber.Router, feed *realtime.Feed) {
	router.Get("/trains", listTrains(feed))
	router.Get("/gtfs-rt", getGTFSRealtime(feed))
}

func listTrains(feed *realtime.Feed) fiber.Handler {
	return func(c *fiber.Ctx) error {
		options := realtime.TrainOptions{
			LineRef: c.Query("line"),
			Jitter:  c.QueryBool("jitter"),
		}

		filter := c.Query("filter")
		if filter == "" {
			return c.JSON(feed.Trains(options))
		}

		trains, err := feed.Filter(filter, options)
		if errors.Is(err, realtime.ErrInvalidFilter) {
			return sendError(c, fiber.StatusBadRequest, err.Error())
		} else if err != nil {
			return sendError(c, fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(trains)
	}
}

func getGTFSRealtime(feed *realtime.Feed) fiber.Handler {
	return func(c *fiber.Ctx) error {
		feedBytes, err := proto.Marshal(feed.GTFSRealtime(time.Now()))
		if err != nil {
			return sendError(c, fiber.StatusInternalServerError, err.Error())
		}

		c.Set(fiber.HeaderContentType, "application/x-protobuf")
		return c.Send(feedBytes)
	}
}
