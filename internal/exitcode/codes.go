package exitcode

// Exit codes for a local step run.
// The orchestrator can use these to decide retry strategy.
const (
	// Success - step completed successfully
	Success = 0

	// ConfigError - missing or invalid configuration
	// Don't retry: fix the config first
	ConfigError = 1

	// InputError - the event does not name the previous step's file
	// Don't retry: the upstream step or the state machine is wrong
	InputError = 2

	// InjectedFailure - the flaky gate failed on purpose
	// Retry
	InjectedFailure = 3

	// StorageError - failed to read from or write to S3/MinIO
	// Retry with backoff
	StorageError = 4

	// ApplicationError - anything else
	ApplicationError = 5
)
