package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/config"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/exitcode"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/logging"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/model"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/steps"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/storage"
)

type options struct {
	step      string
	eventPath string
	runID     string
}

func main() {
	// Parse CLI flags
	var opts options
	flag.StringVar(&opts.step, "step", "", "Step to run: fetch-data, quality-check, calculate-cdc, load-data (default $STEP)")
	flag.StringVar(&opts.eventPath, "event", "", "Path to the event JSON, - for stdin (local runs only)")
	flag.StringVar(&opts.runID, "run-id", "", "Run identifier (UUIDv7); generated when empty (local runs only)")
	flag.Parse()

	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		os.Exit(serveLambda(opts.step))
	}

	// Ensure environment variables are loaded
	if err := godotenv.Load(); err != nil {
		logging.New(os.Stderr, slog.LevelInfo).Warn("failed to load env vars", "error", err)
	}

	// Create a cancellable context (for graceful shutdown)
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)

	code := run(ctx, opts, os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func resolveStep(name string) (steps.Step, error) {
	if name == "" {
		name = os.Getenv("STEP")
	}
	step := steps.Step(name)
	return step, step.Validate()
}

// run executes one step locally, printing the result JSON to stdout and logs to stderr.
func run(ctx context.Context, opts options, stdin io.Reader, stdout, stderr io.Writer) int {
	step, err := resolveStep(opts.step)
	if err != nil {
		fmt.Fprintf(stderr, "Usage: %v\n", err)
		return exitcode.ConfigError
	}

	runID := model.RunID(opts.runID)
	if runID == "" {
		if runID, err = model.NewRunID(); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return exitcode.ApplicationError
		}
	} else if err := runID.Validate(); err != nil {
		fmt.Fprintf(stderr, "Usage: %v\n", err)
		return exitcode.ConfigError
	}

	cfg, err := config.Load(step.Requirements())
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return exitcode.ConfigError
	}
	logger := logging.ForInvocation(logging.New(stderr, cfg.LogLevel), string(step), runID.String(), "")

	event, err := readEvent(opts.eventPath, stdin)
	if err != nil {
		logger.ErrorContext(ctx, "invalid event", "error", err)
		return exitcode.InputError
	}

	store, err := storage.NewObjectStorage(ctx, cfg)
	if err != nil {
		logger.ErrorContext(ctx, "failed to initialize storage", "backend", cfg.Backend, "error", err)
		return exitcode.ConfigError
	}

	handler, err := steps.Build(step, steps.Deps{Config: cfg, Storage: store, Logger: logger})
	if err != nil {
		logger.ErrorContext(ctx, "failed to build step", "error", err)
		return exitcode.ConfigError
	}

	result, err := handler(ctx, event)
	if err != nil {
		logger.ErrorContext(ctx, "step failed", "error", err)
		return exitCodeFor(err)
	}

	if err := json.NewEncoder(stdout).Encode(result); err != nil {
		logger.ErrorContext(ctx, "failed to write result", "error", err)
		return exitcode.ApplicationError
	}

	logger.InfoContext(ctx, "step complete")
	return exitcode.Success
}

func readEvent(path string, stdin io.Reader) (model.Event, error) {
	var (
		data []byte
		err  error
	)
	switch path {
	case "":
		return model.Event{}, nil
	case "-":
		data, err = io.ReadAll(stdin)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return model.Event{}, fmt.Errorf("read event: %w", err)
	}

	var event model.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return model.Event{}, fmt.Errorf("decode event: %w", err)
	}
	return event, nil
}

func exitCodeFor(err error) int {
	var (
		missing  *model.MissingInputError
		injected *steps.InjectedFailureError
		storeErr *storage.Error
	)
	switch {
	case errors.As(err, &missing):
		return exitcode.InputError
	case errors.As(err, &injected):
		return exitcode.InjectedFailure
	case errors.As(err, &storeErr):
		return exitcode.StorageError
	default:
		return exitcode.ApplicationError
	}
}
