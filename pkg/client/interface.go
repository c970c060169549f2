package client

// Client fetches one generated dataset from the dataset server,
// reconnecting and resuming as needed until it is complete.
type Client interface {
	Connect() error
	Close() error
	// Result blocks until the dataset is complete, the session fails
	// or the result timeout passes.
	Result() Result
}
