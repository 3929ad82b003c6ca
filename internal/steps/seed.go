package steps

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/model"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/storage"
)

// SeedWriter writes SeedBody under a freshly generated key.
type SeedWriter struct {
	DestinationBucket string
	Storage           storage.ObjectStorage
	Rand              Rand
	Logger            *slog.Logger
}

func (s *SeedWriter) Handle(ctx context.Context, event model.Event) (model.StepResult, error) {
	logger := loggerOrDefault(s.Logger)
	key := storage.NewSeedKey(s.Rand.IntN).Key()

	logger.DebugContext(ctx, "writing seed object", "destination_bucket", s.DestinationBucket, "key", key)

	if err := s.Storage.Put(ctx, s.DestinationBucket, key, strings.NewReader(SeedBody), int64(len(SeedBody))); err != nil {
		return model.StepResult{}, fmt.Errorf("store: %w", err)
	}

	logger.InfoContext(ctx, "seed object written", "key", key)
	return model.Done(model.File(key), nil), nil
}
