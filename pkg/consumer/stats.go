package consumer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
)

type StatsServerHandler struct {
	redisConnection rmq.Connection
}

func NewStatsHandler(connection rmq.Connection) *StatsServerHandler {
	return &StatsServerHandler{redisConnection: connection}
}

func (handler *StatsServerHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	layout := request.FormValue("layout")
	refresh := request.FormValue("refresh")

	queues, err := handler.redisConnection.GetOpenQueues()
	if err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	stats, err := handler.redisConnection.CollectStats(queues)
	if err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	fmt.Fprint(writer, stats.GetHtml(layout, refresh))
}

type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks []HealthCheck
}

func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (handler *HealthHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	for _, check := range handler.checks {
		if err := check(request.Context()); err != nil {
			log.Error().Err(err).Msg("Health check failed")

			writer.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(writer, err)

			return
		}
	}

	writer.WriteHeader(http.StatusOK)
	fmt.Fprint(writer, "OK")
}

func NewStatsServer(listen string, connection rmq.Connection, checks ...HealthCheck) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/stats", NewStatsHandler(connection))
	mux.Handle("/health", NewHealthHandler(checks...))

	return &http.Server{
		Addr:    listen,
		Handler: mux,
	}
}
