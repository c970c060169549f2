package serverapp

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/fr3shw3b/sortbench-datagen/pkg/config"
	"github.com/fr3shw3b/sortbench-datagen/pkg/server"
	"github.com/fr3shw3b/sortbench-datagen/pkg/sessions"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/joho/godotenv"
)

// Run starts the dataset server, maxSequenceLength overrides the
// configured limit when positive.
func Run(port int, maxSequenceLength int) error {
	err := godotenv.Load(".env.server")
	if err != nil {
		log.Fatal("Failed to load environment variables: ", err)
	}

	router := mux.NewRouter()
	httpSrv := &http.Server{
		Addr: fmt.Sprintf(":%d", port),
		// Datasets are streamed over long lived WebSocket connections,
		// the timeouts only guard the upgrade request.
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
		Handler:           router,
	}

	conf, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration for server: ", err)
	}
	if maxSequenceLength > 0 {
		conf.MaxSequenceLength = maxSequenceLength
	}

	logger := logrus.New()
	logLevel, err := logrus.ParseLevel(conf.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	store := sessions.NewInMemoryStore(
		&sessions.InMemoryStoreParams{
			ExpireAfterIdleTime: conf.SessionStateIdleTimeExpiry,
		},
		logger,
	)

	srv := server.NewDefaultServer(
		&server.ServerParams{
			SequenceMessageInterval: conf.SequenceMessageInterval,
			MaxSequenceLength:       conf.MaxSequenceLength,
		},
		store,
		logger,
	)
	router.Handle("/", srv)

	logger.Infof("Dataset server listening on port %d ...", port)
	return httpSrv.ListenAndServe()
}
