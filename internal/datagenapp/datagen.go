package datagenapp

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fr3shw3b/sortbench-datagen/pkg/batch"
	"github.com/fr3shw3b/sortbench-datagen/pkg/config"
	"github.com/fr3shw3b/sortbench-datagen/pkg/dataset"
	"github.com/fr3shw3b/sortbench-datagen/pkg/generators"
	"github.com/fr3shw3b/sortbench-datagen/pkg/measure"
	"github.com/fr3shw3b/sortbench-datagen/pkg/utils"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// GenerateOptions override the environment configuration for one run.
type GenerateOptions struct {
	// SweepPath is a JSON or YAML sweep file, the default sweep is used
	// when empty.
	SweepPath string
	OutputDir string
	Seed      *uint64
}

func RunGenerate(ctx context.Context, opts GenerateOptions) error {
	conf, logger := setup()

	sweep := batch.DefaultSweep()
	if opts.SweepPath != "" {
		loaded, err := batch.LoadSweep(opts.SweepPath)
		if err != nil {
			return err
		}
		sweep = loaded
	}

	outputDir := conf.OutputDir
	if opts.OutputDir != "" {
		outputDir = opts.OutputDir
	}

	seed := utils.RandomSeed()
	if opts.Seed != nil {
		seed = *opts.Seed
	} else if conf.Seed != nil {
		seed = *conf.Seed
	}
	logger.Info("using seed ", seed)

	batcher := batch.NewDefaultBatcher(
		&batch.BatcherParams{
			OutputDir:   outputDir,
			Seed:        seed,
			Workers:     conf.Workers,
			StrictRange: conf.StrictRange,
		},
		logger,
	)
	manifest, err := batcher.Run(ctx, sweep)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s wrote %d datasets to %s\n", manifest.RunID, len(manifest.Files), outputDir)
	return nil
}

// RunMeasure ranks the built-in sorts on every dataset file given.
func RunMeasure(paths []string) error {
	_, logger := setup()

	if len(paths) == 0 {
		return fmt.Errorf("no dataset files provided")
	}

	for _, path := range paths {
		data, err := dataset.ReadFile(path)
		if err != nil {
			return err
		}
		logger.Debug("measuring ", len(data), " values from ", path)

		timings, err := measure.Rank(data, measure.DefaultCandidates())
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		printTimings(filepath.Base(path), timings)
	}
	return nil
}

// RunList prints every registered generator name.
func RunList() error {
	fmt.Println(strings.Join(generators.Names(), "\n"))
	return nil
}

func setup() (*config.GeneratorConfig, *logrus.Logger) {
	// The env file is optional for the generator, the environment and
	// flags are enough to run it.
	err := godotenv.Load(".env.datagen")
	if err != nil && !os.IsNotExist(err) {
		log.Fatal("Failed to load environment variables: ", err)
	}

	conf, err := config.LoadForGenerator()
	if err != nil {
		log.Fatal("Failed to load configuration for generator: ", err)
	}

	customFormatter := new(logrus.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02T15:04:05.999999999Z07:00"
	customFormatter.FullTimestamp = true
	logger := logrus.New()
	logger.SetFormatter(customFormatter)
	logLevel, err := logrus.ParseLevel(conf.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	return conf, logger
}

func printTimings(name string, timings []measure.Timing) {
	fmt.Printf("%s\n____________\n", name)
	for rank, timing := range timings {
		fmt.Printf("%d. %-10s %d values in %s\n", rank+1, timing.Name, timing.Size, timing.Elapsed)
	}
	fmt.Println()
}
