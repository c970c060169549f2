package main

import (
	"log"
	"os"

	"github.com/fr3shw3b/sortbench-datagen/internal/serverapp"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.App{
		Name:  "server",
		Usage: "Streams generated benchmark datasets over WebSockets",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Value: 3000,
				Usage: "The port to run the server on",
			},
			&cli.IntFlag{
				Name:  "max-length",
				Usage: "The longest dataset a client may request, overrides MAX_SEQUENCE_LENGTH",
			},
		},
		Action: func(cCtx *cli.Context) error {
			port := cCtx.Int("port")
			return serverapp.Run(port, cCtx.Int("max-length"))
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
