package dataimporter

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data",
		Usage: "Inspect the bundled reference dataset",
		Subcommands: []*cli.Command{
			{
				Name:  "inspect",
				Usage: "Validate and print the reference dataset",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "table",
						Value: "stations",
						Usage: "table to print (lines, stations, trains, alerts, lostitems)",
					},
				},
				Action: func(c *cli.Context) error {
					dataset, err := Load()
					if err != nil {
						return err
					}

					switch c.String("table") {
					case "lines":
						pretty.Println(dataset.Lines)
					case "stations":
						pretty.Println(dataset.Stations)
					case "trains":
						pretty.Println(dataset.Trains)
					case "alerts":
						pretty.Println(dataset.ServiceAlerts)
					case "lostitems":
						pretty.Println(dataset.LostItems)
					default:
						return fmt.Errorf("unknown table %s", c.String("table"))
					}

					return nil
				},
			},
		},
	}
}
