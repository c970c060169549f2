package clientapp

import (
	"fmt"
	"log"

	"github.com/fr3shw3b/sortbench-datagen/pkg/client"
	"github.com/fr3shw3b/sortbench-datagen/pkg/config"
	"github.com/fr3shw3b/sortbench-datagen/pkg/dataset"
	"github.com/fr3shw3b/sortbench-datagen/pkg/generators"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Options are the command line inputs of a single dataset fetch.
type Options struct {
	ServerHost string
	ServerPort int
	Generator  string
	Spec       generators.SequenceSpec
	Seed       *uint64
	// OutputPath is where the received dataset is written as CSV,
	// nothing is written when empty.
	OutputPath string
}

func Run(opts Options) error {
	err := godotenv.Load(".env.client")
	if err != nil {
		log.Fatal("Failed to load environment variables: ", err)
	}

	conf, err := config.LoadForClient()
	if err != nil {
		log.Fatal("Failed to load configuration for client: ", err)
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

	// The client implementation is currently limited to run as a one-off client-side
	// connection/session, in the future this could be expanded to fetch multiple datasets
	// with a single client implementation.
	clientInstance := client.NewDefaultClient(
		&client.ClientParams{
			ServerHost:            opts.ServerHost,
			ServerPort:            opts.ServerPort,
			Generator:             opts.Generator,
			Spec:                  opts.Spec,
			Seed:                  opts.Seed,
			SendLastReceivedIndex: conf.SendLastReceivedIndex,
			MaxReconnectAttempts:  conf.MaxReconnectAttempts,
		},
		logger,
	)

	err = clientInstance.Connect()
	if err != nil {
		return err
	}
	defer clientInstance.Close()

	result := clientInstance.Result()
	printResult(result)

	if opts.OutputPath != "" && result.Success {
		if err := dataset.WriteSequence(opts.OutputPath, result.Sequence); err != nil {
			return err
		}
		logger.Info("wrote ", len(result.Sequence), " values to ", opts.OutputPath)
	}
	return result.Error
}

func printResult(result client.Result) {
	fmt.Print("Result\n____________\n\n\n")
	fmt.Printf("Values received: %d\n", len(result.Sequence))
	fmt.Printf("Seed: %d\n", result.Seed)
	fmt.Printf("Client-side Checksum: %s\n", result.Checksum)
	fmt.Printf("Server-provided Checksum: %s\n", result.ServerChecksum)
	fmt.Printf("Successful: %v\n", result.Success)
	if result.Error != nil {
		fmt.Printf("Error: %s\n", result.Error)
	}
}
