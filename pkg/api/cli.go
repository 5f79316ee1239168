package api

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/travigo/patnametro/pkg/accounts"
	"github.com/travigo/patnametro/pkg/admin"
	"github.com/travigo/patnametro/pkg/consumer"
	"github.com/travigo/patnametro/pkg/crowd"
	"github.com/travigo/patnametro/pkg/dataaggregator/global"
	"github.com/travigo/patnametro/pkg/database"
	"github.com/travigo/patnametro/pkg/dataimporter"
	"github.com/travigo/patnametro/pkg/elastic_client"
	"github.com/travigo/patnametro/pkg/helpline"
	"github.com/travigo/patnametro/pkg/lostfound"
	"github.com/travigo/patnametro/pkg/payments"
	"github.com/travigo/patnametro/pkg/realtime"
	"github.com/travigo/patnametro/pkg/redis_client"
	"github.com/travigo/patnametro/pkg/session"
	"github.com/travigo/patnametro/pkg/ticketing"
	"github.com/travigo/patnametro/pkg/util"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 10 * time.Second

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.BoolFlag{
						Name:  "with-consumers",
						Usage: "also run the lost item and feedback queue consumers",
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

					dataset, err := dataimporter.Load()
					if err != nil {
						return err
					}

					services, err := newServices(c.Context, dataset)
					if err != nil {
						return err
					}

					return run(c.Context, NewApp(services), c.String("listen"), c.Bool("with-consumers"))
				},
			},
		},
	}
}

func newServices(ctx context.Context, dataset *dataimporter.Dataset) (*Services, error) {
	env := util.GetEnvironmentVariables()

	global.Setup(dataset, crowd.NewGenerator(nil), redis_client.Client)

	tokens, err := NewTokenAuthorityFromEnvironment()
	if err != nil {
		return nil, err
	}

	accountStore, err := accounts.NewMockStore(util.GetDurationVariable(env, "PATNAMETRO_MOCK_LATENCY", accounts.DefaultLatency))
	if err != nil {
		return nil, err
	}

	gateway := &payments.MockGateway{
		Ledger:   &payments.Ledger{Client: redis_client.Client},
		Accounts: accountStore,
		Latency:  util.GetDurationVariable(env, "PATNAMETRO_MOCK_LATENCY", payments.DefaultLatency),
	}

	alerts := &admin.MongoAlertRepository{Collection: database.GetCollection(database.ServiceAlertsCollection)}
	if err := alerts.Seed(ctx, dataset.ServiceAlerts); err != nil {
		return nil, fmt.Errorf("seeding service alerts: %w", err)
	}

	lostFoundQueue, err := redis_client.QueueConnection.OpenQueue(lostfound.QueueName)
	if err != nil {
		return nil, err
	}
	feedbackQueue, err := redis_client.QueueConnection.OpenQueue(helpline.QueueName)
	if err != nil {
		return nil, err
	}

	feed := realtime.NewFeed(dataset.Trains, nil)
	lostFound := lostfound.NewService(dataset, &lostfound.MongoLostItemRepository{
		Collection: database.GetCollection(database.LostItemsCollection),
	}, lostFoundQueue)

	return &Services{
		Sessions:  session.NewStore(redis_client.Client),
		Tokens:    tokens.WithRevocations(redis_client.Client),
		Feed:      feed,
		Accounts:  accountStore,
		Payments:  gateway,
		Tickets: ticketing.NewService(dataset, gateway, &ticketing.MongoTicketRepository{
			Collection: database.GetCollection(database.TicketsCollection),
		}),
		LostFound: lostFound,
		Helpline: helpline.NewService(dataset, &helpline.MongoFeedbackRepository{
			Collection: database.GetCollection(database.FeedbackCollection),
		}, feedbackQueue),
		Admin: admin.NewService(dataset, accountStore, feed, alerts, lostFound),
	}, nil
}

// run serves until SIGINT/SIGTERM, then shuts the server and any consumers down
func run(parent context.Context, webApp *fiber.App, listen string, withConsumers bool) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg conc.WaitGroup

	wg.Go(func() {
		log.Info().Str("listen", listen).Msg("Starting web API")

		if err := webApp.Listen(listen); err != nil {
			log.Error().Err(err).Msg("Web API stopped")
		}
		stop()
	})

	if withConsumers {
		wg.Go(func() {
			if err := consumer.Run(ctx, redis_client.QueueConnection, consumer.StorageConsumers()); err != nil {
				log.Error().Err(err).Msg("Queue consumers stopped")
				stop()
			}
		})
	}

	<-ctx.Done()

	log.Info().Msg("Shutting down")
	if err := webApp.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("Web API shutdown")
	}

	wg.Wait()

	elastic_client.WaitUntilQueueEmpty()

	shutdownContext, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return database.Disconnect(shutdownContext)
}
