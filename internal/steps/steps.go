// Package steps implements the pipeline step handlers. Each handler runs once
// per invocation; sequencing and retries belong to the orchestrator.
package steps

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"unicode/utf8"

	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/model"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/storage"
)

// Marker lines written by each step.
const (
	SeedBody           = "This is done in the 1st step!"
	QualityCheckMarker = "This is done in the 4th step!"
	CalculateCDCMarker = "This is done in the 5th step!"
)

// Handler runs one step for one event.
type Handler func(ctx context.Context, event model.Event) (model.StepResult, error)

// Rand is the source of randomness for key generation and failure injection.
type Rand interface {
	IntN(n int) int
}

type defaultRand struct{}

func (defaultRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand draws from the runtime-seeded global generator.
var DefaultRand Rand = defaultRand{}

// download reads bucket/key through a temporary file that is removed on return.
func download(ctx context.Context, store storage.ObjectStorage, tempDir, bucket, key string) (string, error) {
	body, err := store.Get(ctx, bucket, key)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer body.Close()

	tmp, err := os.CreateTemp(tempDir, "step-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, body); err != nil {
		return "", fmt.Errorf("download %s/%s: %w", bucket, key, err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind temp file: %w", err)
	}
	data, err := io.ReadAll(tmp)
	if err != nil {
		return "", fmt.Errorf("read temp file: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("object %s/%s is not valid UTF-8", bucket, key)
	}

	return string(data), nil
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
