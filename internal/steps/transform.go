package steps

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/model"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/storage"
)

// Transformer copies the previous step's object from SourceBucket to
// DestinationBucket under the same key, with Marker prepended as a line.
// Re-running it prepends the marker again.
type Transformer struct {
	Marker            string
	SourceBucket      string
	DestinationBucket string
	Storage           storage.ObjectStorage
	Logger            *slog.Logger
	TempDir           string // empty means os.TempDir
}

func (t *Transformer) Handle(ctx context.Context, event model.Event) (model.StepResult, error) {
	logger := loggerOrDefault(t.Logger)
	logger.InfoContext(ctx, "buckets", "source_bucket", t.SourceBucket, "destination_bucket", t.DestinationBucket)

	key, err := event.PriorOutputFile()
	if err != nil {
		return model.StepResult{}, err
	}

	payload, err := download(ctx, t.Storage, t.TempDir, t.SourceBucket, key)
	if err != nil {
		return model.StepResult{}, err
	}

	body := t.Marker + "\n" + payload
	if err := t.Storage.Put(ctx, t.DestinationBucket, key, strings.NewReader(body), int64(len(body))); err != nil {
		return model.StepResult{}, fmt.Errorf("store: %w", err)
	}

	logger.InfoContext(ctx, "object transformed", "key", key, "bytes", len(body))
	return model.Done(model.File(key), model.File(key)), nil
}
