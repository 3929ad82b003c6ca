package steps

import (
	"context"
	"log/slog"

	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/model"
)

// The gate fails when a draw from [0, flakyOutcomes) equals flakyFailDraw,
// i.e. one time in three.
const (
	flakyOutcomes = 3
	flakyFailDraw = 1
)

// FlakyGate fails at random before delegating to Next, to exercise the
// orchestrator's retry policy.
type FlakyGate struct {
	Next   Handler
	Rand   Rand
	Logger *slog.Logger
}

func (g *FlakyGate) Handle(ctx context.Context, event model.Event) (model.StepResult, error) {
	logger := loggerOrDefault(g.Logger)

	if g.Rand.IntN(flakyOutcomes) == flakyFailDraw {
		logger.WarnContext(ctx, "injecting failure")
		return model.StepResult{}, &InjectedFailureError{}
	}
	logger.InfoContext(ctx, "did not fail this time")

	return g.Next(ctx, event)
}
