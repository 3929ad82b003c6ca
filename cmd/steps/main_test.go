package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/config"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/exitcode"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/logging"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/model"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/steps"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/storage"
)

func setMemoryEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("source_bucket", "raw")
	t.Setenv("destination_bucket", "raw")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("STEP", "")
}

func TestRun_FetchData(t *testing.T) {
	setMemoryEnv(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), options{step: "fetch-data"}, strings.NewReader(""), &stdout, &stderr)
	if code != exitcode.Success {
		t.Fatalf("expected exit %d, got %d (stderr: %s)", exitcode.Success, code, stderr.String())
	}

	var result model.StepResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid result %q: %v", stdout.String(), err)
	}
	if result.OutputFile == nil || !regexp.MustCompile(`^test_\d{4}\.txt$`).MatchString(*result.OutputFile) {
		t.Fatalf("unexpected output_file: %v", result.OutputFile)
	}
	if result.InputFile != nil {
		t.Fatalf("expected null input_file, got %q", *result.InputFile)
	}
}

func TestRun_StepFromEnv(t *testing.T) {
	setMemoryEnv(t)
	t.Setenv("STEP", "fetch-data")
	var stdout, stderr bytes.Buffer

	if code := run(context.Background(), options{}, strings.NewReader(""), &stdout, &stderr); code != exitcode.Success {
		t.Fatalf("expected exit %d, got %d (stderr: %s)", exitcode.Success, code, stderr.String())
	}
}

func TestRun_ConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		opts  options
		unset string
	}{
		{"unknown step", options{step: "transform-data"}, ""},
		{"no step", options{}, ""},
		{"invalid run-id", options{step: "fetch-data", runID: "not-a-uuid"}, ""},
		{"missing destination bucket", options{step: "fetch-data"}, "destination_bucket"},
		{"missing source bucket", options{step: "load-data"}, "source_bucket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setMemoryEnv(t)
			if tt.unset != "" {
				t.Setenv(tt.unset, "")
			}
			var stdout, stderr bytes.Buffer

			code := run(context.Background(), tt.opts, strings.NewReader(""), &stdout, &stderr)
			if code != exitcode.ConfigError {
				t.Fatalf("expected exit %d, got %d", exitcode.ConfigError, code)
			}
			if stdout.Len() != 0 {
				t.Fatalf("expected no result, got %q", stdout.String())
			}
		})
	}
}

func TestRun_MissingInput(t *testing.T) {
	setMemoryEnv(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), options{step: "calculate-cdc", eventPath: "-"}, strings.NewReader(`{"Payload":[200,{"output_file":null}]}`), &stdout, &stderr)
	if code != exitcode.InputError {
		t.Fatalf("expected exit %d, got %d (stderr: %s)", exitcode.InputError, code, stderr.String())
	}
}

func TestRun_MissingObject(t *testing.T) {
	setMemoryEnv(t)
	eventPath := filepath.Join(t.TempDir(), "event.json")
	if err := os.WriteFile(eventPath, []byte(`{"Payload":[200,{"output_file":"test_1234.txt"}]}`), 0o600); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), options{step: "load-data", eventPath: eventPath}, strings.NewReader(""), &stdout, &stderr)
	if code != exitcode.StorageError {
		t.Fatalf("expected exit %d, got %d (stderr: %s)", exitcode.StorageError, code, stderr.String())
	}
}

func TestReadEvent(t *testing.T) {
	event, err := readEvent("", strings.NewReader("ignored"))
	if err != nil || len(event.Payload) != 0 {
		t.Fatalf("expected empty event, got %+v, %v", event, err)
	}

	if _, err := readEvent("-", strings.NewReader("not json")); err == nil {
		t.Fatal("expected decode error")
	}

	if _, err := readEvent(filepath.Join(t.TempDir(), "missing.json"), nil); err == nil {
		t.Fatal("expected read error")
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&model.MissingInputError{Reason: "x"}, exitcode.InputError},
		{fmt.Errorf("gate: %w", &steps.InjectedFailureError{}), exitcode.InjectedFailure},
		{fmt.Errorf("store: %w", &storage.Error{Op: "put", Err: errors.New("denied")}), exitcode.StorageError},
		{errors.New("boom"), exitcode.ApplicationError},
	}

	for _, tt := range tests {
		if got := exitCodeFor(tt.err); got != tt.want {
			t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestLambdaHandler_Chain(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{SourceBucket: "raw", DestinationBucket: "raw"}
	store := storage.NewMemoryStore()
	var logs bytes.Buffer
	logger := logging.New(&logs, slog.LevelInfo)

	seed, err := lambdaHandler(steps.FetchData, cfg, store, logger)(ctx, model.Event{})
	if err != nil {
		t.Fatalf("fetch-data error = %v", err)
	}
	event, err := model.NewEvent(seed)
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := lambdaHandler(steps.LoadData, cfg, store, logger)(ctx, event)
	if err != nil {
		t.Fatalf("load-data error = %v", err)
	}
	if loaded.OutputFile != nil || loaded.InputFile == nil || *loaded.InputFile != *seed.OutputFile {
		t.Fatalf("unexpected load result: %+v", loaded)
	}
	if !strings.Contains(logs.String(), steps.SeedBody) {
		t.Fatalf("expected loaded payload in logs, got %s", logs.String())
	}
}
