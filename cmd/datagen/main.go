package main

import (
	"log"
	"os"

	"github.com/fr3shw3b/sortbench-datagen/internal/datagenapp"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.App{
		Name:  "datagen",
		Usage: "Generate benchmark datasets for sorting algorithms",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Run a parameter sweep and write every dataset as CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "sweep",
						Usage: "A JSON or YAML sweep file, the reference sweep is used when omitted",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "The directory to write datasets to, overrides OUTPUT_DIR",
					},
					&cli.Uint64Flag{
						Name:  "seed",
						Usage: "The seed of the run, overrides SEED",
					},
				},
				Action: func(cCtx *cli.Context) error {
					opts := datagenapp.GenerateOptions{
						SweepPath: cCtx.String("sweep"),
						OutputDir: cCtx.String("output-dir"),
					}
					if cCtx.IsSet("seed") {
						seed := cCtx.Uint64("seed")
						opts.Seed = &seed
					}
					return datagenapp.RunGenerate(cCtx.Context, opts)
				},
			},
			{
				Name:      "measure",
				Usage:     "Rank the built-in sorts on dataset files",
				ArgsUsage: "<file.csv>...",
				Action: func(cCtx *cli.Context) error {
					return datagenapp.RunMeasure(cCtx.Args().Slice())
				},
			},
			{
				Name:  "list",
				Usage: "List the available generators",
				Action: func(cCtx *cli.Context) error {
					return datagenapp.RunList()
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
