package steps

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/config"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/model"
)

// TestPipeline_EndToEnd chains the steps the way the state machine does,
// feeding each result into the next event.
func TestPipeline_EndToEnd(t *testing.T) {
	ctx := context.Background()
	store := newRecordingStorage()
	tempDir := t.TempDir()
	cfg := &config.Config{SourceBucket: "pipeline", DestinationBucket: "pipeline"}

	build := func(step Step, draws ...int) Handler {
		h, err := Build(step, Deps{
			Config:  cfg,
			Storage: store,
			Rand:    &fixedRand{draws: draws},
			TempDir: tempDir,
		})
		require.NoError(t, err)
		return h
	}

	seed, err := build(FetchData, 234)(ctx, model.Event{})
	require.NoError(t, err)
	require.Equal(t, "test_1234.txt", *seed.OutputFile)
	assert.Equal(t, "This is done in the 1st step!", store.read(t, "pipeline", "test_1234.txt"))

	checked, err := build(QualityCheck, 0)(ctx, eventFor(t, seed))
	require.NoError(t, err)
	assert.Equal(t, "This is done in the 4th step!\nThis is done in the 1st step!", store.read(t, "pipeline", "test_1234.txt"))

	cdc, err := build(CalculateCDC)(ctx, eventFor(t, checked))
	require.NoError(t, err)
	assert.Equal(t,
		"This is done in the 5th step!\nThis is done in the 4th step!\nThis is done in the 1st step!",
		store.read(t, "pipeline", "test_1234.txt"))

	loaded, err := build(LoadData)(ctx, eventFor(t, cdc))
	require.NoError(t, err)
	assert.Nil(t, loaded.OutputFile)
	assert.Equal(t, "test_1234.txt", *loaded.InputFile)
}
