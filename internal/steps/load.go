package steps

import (
	"context"
	"log/slog"

	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/model"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/storage"
)

// Loader stands in for a database load: it reads the object and logs it.
// Nothing is persisted.
type Loader struct {
	SourceBucket string
	Storage      storage.ObjectStorage
	Logger       *slog.Logger
	TempDir      string
}

func (l *Loader) Handle(ctx context.Context, event model.Event) (model.StepResult, error) {
	logger := loggerOrDefault(l.Logger)
	logger.InfoContext(ctx, "buckets", "source_bucket", l.SourceBucket)

	key, err := event.PriorOutputFile()
	if err != nil {
		return model.StepResult{}, err
	}

	payload, err := download(ctx, l.Storage, l.TempDir, l.SourceBucket, key)
	if err != nil {
		return model.StepResult{}, err
	}

	logger.InfoContext(ctx, "following should be inserted into the database", "key", key, "payload", payload)
	return model.Done(nil, model.File(key)), nil
}
