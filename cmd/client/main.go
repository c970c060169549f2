package main

import (
	"log"
	"os"

	"github.com/fr3shw3b/sortbench-datagen/internal/clientapp"
	"github.com/fr3shw3b/sortbench-datagen/pkg/generators"
	"github.com/urfave/cli/v2"
)

func main() {
	defaults := generators.DefaultSpec()
	app := cli.App{
		Name:  "client",
		Usage: "Fetches a generated benchmark dataset from the dataset server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "server-host",
				Value: "localhost",
				Usage: "The host on which the server is accessible",
			},
			&cli.IntFlag{
				Name:  "server-port",
				Value: 3000,
				Usage: "The port the server is running on",
			},
			&cli.StringFlag{
				Name:  "generator",
				Value: generators.NameAscendingWithNoise,
				Usage: "The generator the server should run",
			},
			&cli.IntFlag{
				Name:  "length",
				Value: defaults.Length,
				Usage: "The length of the dataset the server should send",
			},
			&cli.Float64Flag{Name: "min", Value: defaults.DomainMin, Usage: "The lower bound of the value domain"},
			&cli.Float64Flag{Name: "max", Value: defaults.DomainMax, Usage: "The upper bound of the value domain"},
			&cli.Float64Flag{Name: "step", Value: defaults.Step, Usage: "The step of the ascending and descending ramps"},
			&cli.Float64Flag{Name: "noise", Value: defaults.NoiseLevel, Usage: "The noise level of noisy generators"},
			&cli.Float64Flag{Name: "period", Value: defaults.Period, Usage: "The sawtooth period"},
			&cli.Float64Flag{Name: "frequency", Value: defaults.Frequency, Usage: "The square wave frequency"},
			&cli.Float64Flag{Name: "multiplier", Value: defaults.Multiplier, Usage: "The amplitude of periodic generators"},
			&cli.IntFlag{Name: "inversions", Value: defaults.Inversions, Usage: "The inversion count of dataWithInversions"},
			&cli.IntFlag{Name: "out-of-place", Value: defaults.OutOfPlace, Usage: "The displacement budget of dataOutOfPlace"},
			&cli.BoolFlag{Name: "strict", Usage: "Fail instead of clamping when a noise range is too small"},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "The seed to generate from, chosen by the server when omitted",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "A CSV file to write the received dataset to",
			},
		},
		Action: func(cCtx *cli.Context) error {
			opts := clientapp.Options{
				ServerHost: cCtx.String("server-host"),
				ServerPort: cCtx.Int("server-port"),
				Generator:  cCtx.String("generator"),
				Spec: generators.SequenceSpec{
					Length:      cCtx.Int("length"),
					DomainMin:   cCtx.Float64("min"),
					DomainMax:   cCtx.Float64("max"),
					Step:        cCtx.Float64("step"),
					NoiseLevel:  cCtx.Float64("noise"),
					Period:      cCtx.Float64("period"),
					Frequency:   cCtx.Float64("frequency"),
					Multiplier:  cCtx.Float64("multiplier"),
					Inversions:  cCtx.Int("inversions"),
					OutOfPlace:  cCtx.Int("out-of-place"),
					StrictRange: cCtx.Bool("strict"),
				},
				OutputPath: cCtx.String("output"),
			}
			if cCtx.IsSet("seed") {
				seed := cCtx.Uint64("seed")
				opts.Seed = &seed
			}
			return clientapp.Run(opts)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
