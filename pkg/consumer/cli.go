package consumer

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/database"
	"github.com/travigo/patnametro/pkg/elastic_client"
	"github.com/travigo/patnametro/pkg/helpline"
	"github.com/travigo/patnametro/pkg/lostfound"
	"github.com/travigo/patnametro/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

// StorageConsumers builds the queue consumers against the Mongo collections
func StorageConsumers() []*RedisConsumer {
	return QueueConsumers(
		&lostfound.MongoLostItemRepository{Collection: database.GetCollection(database.LostItemsCollection)},
		&helpline.MongoFeedbackRepository{Collection: database.GetCollection(database.FeedbackCollection)},
	)
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "consumer",
		Usage: "Stores queued lost item reports and feedback",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the queue consumers",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "stats-listen",
						Value: ":3333",
						Usage: "address for the queue stats and health endpoints",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}
					if err := elastic_client.Connect(false); err != nil {
						return err
					}

					ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
					defer stop()

					statsServer := NewStatsServer(c.String("stats-listen"), redis_client.QueueConnection,
						func(ctx context.Context) error { return redis_client.Client.Ping(ctx).Err() },
						func(ctx context.Context) error { return database.MongoGlobalInstance.Client.Ping(ctx, nil) },
					)
					go func() {
						log.Info().Msgf("Stats server listening on http://localhost%s/stats", statsServer.Addr)
						if err := statsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
							log.Error().Err(err).Msg("Stats server failed")
						}
					}()

					err := Run(ctx, redis_client.QueueConnection, StorageConsumers())

					shutdownContext, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					statsServer.Shutdown(shutdownContext)

					elastic_client.WaitUntilQueueEmpty()

					return err
				},
			},
		},
	}
}
