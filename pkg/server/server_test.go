package server

import (
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/fr3shw3b/sortbench-datagen/pkg/client"
	"github.com/fr3shw3b/sortbench-datagen/pkg/generators"
	"github.com/fr3shw3b/sortbench-datagen/pkg/sequence"
	"github.com/fr3shw3b/sortbench-datagen/pkg/sessions"
	"github.com/fr3shw3b/sortbench-datagen/pkg/utils"
	"github.com/sirupsen/logrus"
)

func Test_server_streams_generated_dataset_and_client_processes_it_successfully(t *testing.T) {
	logger := createLogger()

	server := createTestServer()
	defer server.Close()
	host, port := serverAddress(t, server)

	seed := uint64(2024)
	spec := testSpec(200)
	clientParams := &client.ClientParams{
		ServerHost:            host,
		ServerPort:            port,
		SendLastReceivedIndex: true,
		MaxReconnectAttempts:  100,
		Generator:             generators.NameAscendingWithNoise,
		Spec:                  spec,
		Seed:                  &seed,
	}
	client := client.NewDefaultClient(clientParams, logger)
	err := client.Connect()
	if err != nil {
		t.Error(err)
		t.FailNow()
	}
	defer client.Close()

	result := client.Result()
	if result.Error != nil {
		t.Error("result contained error: ", result.Error)
		t.FailNow()
	}

	if !result.Success {
		t.Error("did not succeed, result.Success was false")
		t.FailNow()
	}

	if result.Checksum != result.ServerChecksum {
		t.Error("expected checksums from client and server to match")
	}

	if result.Seed != seed {
		t.Error("expected the server to report seed ", seed, " got ", result.Seed)
	}

	if len(result.Sequence) != 200 || !sequence.IsStrictlyIncreasing(result.Sequence) {
		t.Error("expected 200 strictly increasing values, got ", len(result.Sequence))
	}

	// The reported seed reproduces the dataset locally.
	descriptor, _ := generators.Lookup(generators.NameAscendingWithNoise)
	local, err := descriptor.Run(utils.NewSeededRand(seed), spec)
	if err != nil {
		t.Error(err)
		t.FailNow()
	}
	if utils.CreateChecksum(local) != result.ServerChecksum {
		t.Error("expected the seed to reproduce the streamed dataset")
	}
}

func Test_server_streams_single_value_dataset(t *testing.T) {
	server := createTestServer()
	defer server.Close()
	host, port := serverAddress(t, server)

	client := client.NewDefaultClient(&client.ClientParams{
		ServerHost:           host,
		ServerPort:           port,
		MaxReconnectAttempts: 100,
		Generator:            generators.NameAscending,
		Spec:                 testSpec(1),
	}, createLogger())
	err := client.Connect()
	if err != nil {
		t.Error(err)
		t.FailNow()
	}
	defer client.Close()

	result := client.Result()
	if result.Error != nil || !result.Success {
		t.Error("expected success, got: ", result.Error)
		t.FailNow()
	}
	if len(result.Sequence) != 1 || result.Sequence[0] != 0 {
		t.Error("expected a single 0 value, got ", result.Sequence)
	}
}

func Test_failure_due_to_missing_client_id(t *testing.T) {
	overrideClientID := ""
	result := runFailingClient(t, &client.ClientParams{
		Generator:        generators.NameAscending,
		Spec:             testSpec(200),
		OverrideClientID: &overrideClientID,
	})

	if !strings.HasSuffix(result.Error.Error(), "code[CloseCodeMissingClientID(4002)] reason: missing client id") {
		t.Error("expected error to be a 4002 missing client id but received: ", result.Error)
	}
}

func Test_failure_due_to_invalid_length(t *testing.T) {
	result := runFailingClient(t, &client.ClientParams{
		Generator: generators.NameAscending,
		// Max length for the test server is 0xffff.
		Spec: testSpec(0xffff1),
	})

	if !strings.HasSuffix(
		result.Error.Error(),
		"code[CloseCodeInvalidSequenceCount(4003)] reason: length must be an integer between 1 and 65535",
	) {
		t.Error("expected error to be a 4003 invalid length but received: ", result.Error)
	}
}

func Test_failure_due_to_invalid_last_received_index(t *testing.T) {
	// Max size for last received index is 0xffff.
	overrideLastReceivedIndex := 0xffff2
	result := runFailingClient(t, &client.ClientParams{
		SendLastReceivedIndex:     true,
		Generator:                 generators.NameAscending,
		Spec:                      testSpec(200),
		OverrideLastReceivedIndex: &overrideLastReceivedIndex,
	})

	if !strings.HasSuffix(
		result.Error.Error(),
		"code[CloseCodeInvalidLastReceived(4004)] reason: if provided, "+
			"last received index must be an integer less than or equal to 65535",
	) {
		t.Error("expected error to be a 4004 invalid last received index but received: ", result.Error)
	}
}

func Test_failure_due_to_unknown_generator(t *testing.T) {
	result := runFailingClient(t, &client.ClientParams{
		Generator: "fibonacciData",
		Spec:      testSpec(200),
	})

	if !strings.HasSuffix(result.Error.Error(), "code[CloseCodeInvalidGenerator(4005)] reason: unknown generator") {
		t.Error("expected error to be a 4005 unknown generator but received: ", result.Error)
	}
}

func Test_failure_due_to_invalid_generator_parameters(t *testing.T) {
	spec := testSpec(10)
	// A permutation of 10 has at most 45 inversions.
	spec.Inversions = 46
	result := runFailingClient(t, &client.ClientParams{
		Generator: generators.NameWithInversions,
		Spec:      spec,
	})

	if !strings.HasSuffix(
		result.Error.Error(),
		"code[CloseCodeInvalidGenerator(4005)] reason: invalid generator parameters",
	) {
		t.Error("expected error to be a 4005 invalid generator parameters but received: ", result.Error)
	}
}

func Test_server_handles_concurrent_clients(t *testing.T) {
	logger := createLogger()

	server := createTestServer()
	defer server.Close()
	host, port := serverAddress(t, server)

	names := generators.Names()
	resultChan := make(chan client.Result, 60)
	for i := 0; i < 30; i += 1 {
		go func(outputChan chan client.Result, generator string) {
			clientParams := &client.ClientParams{
				ServerHost:            host,
				ServerPort:            port,
				SendLastReceivedIndex: true,
				MaxReconnectAttempts:  100,
				Generator:             generator,
				Spec:                  testSpec(100),
			}
			client := client.NewDefaultClient(clientParams, logger)
			err := client.Connect()
			if err != nil {
				outputChan <- result(err)
				return
			}
			defer client.Close()

			outputChan <- client.Result()
		}(resultChan, names[i%len(names)])
	}

	collectedResults := []client.Result{}
	for len(collectedResults) < 30 {
		select {
		case result := <-resultChan:
			collectedResults = append(collectedResults, result)
		case <-time.After(60 * time.Second):
			t.Error("timed out waiting for result from concurrent clients")
			t.FailNow()
		}
	}

	for i := 0; i < 30; i += 1 {
		result := collectedResults[i]
		if result.Error != nil {
			t.Error("result contained error: ", result.Error)
			t.FailNow()
		}

		if !result.Success {
			t.Error("did not succeed, result.Success was false")
			t.FailNow()
		}

		if result.Checksum != result.ServerChecksum {
			t.Error("expected checksums from client and server to match")
		}
	}
}

func result(err error) client.Result {
	return client.Result{Error: err}
}

// runFailingClient connects with params against a fresh test server and
// expects the session to end in an error.
func runFailingClient(t *testing.T, params *client.ClientParams) client.Result {
	t.Helper()

	server := createTestServer()
	defer server.Close()
	params.ServerHost, params.ServerPort = serverAddress(t, server)
	params.MaxReconnectAttempts = 100
	params.ResultTimeout = 30 * time.Second

	client := client.NewDefaultClient(params, createLogger())
	err := client.Connect()
	if err != nil {
		t.Error(err)
		t.FailNow()
	}
	defer client.Close()

	result := client.Result()
	if result.Error == nil {
		t.Error("result does not contain an error when one was expected")
		t.FailNow()
	}

	if result.Success {
		t.Error("expected result.Success to be false, received true")
		t.FailNow()
	}
	return result
}

// testSpec keeps the default generator parameters but lets noise stay
// within the range samplers' capacity.
func testSpec(length int) generators.SequenceSpec {
	spec := generators.DefaultSpec()
	spec.Length = length
	spec.NoiseLevel = 5
	spec.Inversions = 3
	spec.OutOfPlace = 4
	return spec
}

func serverAddress(t *testing.T, server *httptest.Server) (string, int) {
	serverURL, err := url.Parse(server.URL)
	if err != nil {
		t.Error(err)
		t.FailNow()
	}
	port, _ := strconv.Atoi(serverURL.Port())
	return serverURL.Hostname(), port
}

func createTestServer() *httptest.Server {
	logger := createLogger()

	storeParams := &sessions.InMemoryStoreParams{
		ExpireAfterIdleTime: 30,
	}
	store := sessions.NewInMemoryStore(storeParams, logger)
	serverParams := &ServerParams{
		// 1 millisecond interval to send each value
		// in the dataset to speed up tests.
		SequenceMessageInterval: 1,
		MaxSequenceLength:       DefaultMaxSequenceLength,
	}
	server := NewDefaultServer(serverParams, store, logger)

	return httptest.NewServer(server)
}

func createLogger() *logrus.Logger {
	customFormatter := new(logrus.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02T15:04:05.999999999Z07:00"
	customFormatter.FullTimestamp = true
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(customFormatter)
	return logger
}
