package indexer

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/patnametro/pkg/database"
	"github.com/travigo/patnametro/pkg/dataimporter"
	"github.com/travigo/patnametro/pkg/elastic_client"
	"github.com/travigo/patnametro/pkg/lostfound"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "indexer",
		Usage: "Indexes data into Elasticsearch",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "do a full index of the stations and lost items",
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := elastic_client.Connect(true); err != nil {
						return err
					}

					dataset, err := dataimporter.Load()
					if err != nil {
						return err
					}

					if err := IndexStations(dataset); err != nil {
						return err
					}

					lostItems := lostfound.NewService(dataset, &lostfound.MongoLostItemRepository{
						Collection: database.GetCollection(database.LostItemsCollection),
					}, nil)
					if err := IndexLostItems(c.Context, lostItems); err != nil {
						return err
					}

					elastic_client.WaitUntilQueueEmpty()

					log.Info().Msg("Index queue emptied")

					return nil
				},
			},
		},
	}
}
