package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/config"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/exitcode"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/logging"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/model"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/steps"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/storage"
)

// serveLambda blocks serving invocations. It only returns on a setup error.
func serveLambda(stepName string) int {
	step, err := resolveStep(stepName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid step: %v\n", err)
		return exitcode.ConfigError
	}

	cfg, err := config.Load(step.Requirements())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return exitcode.ConfigError
	}
	logger := logging.New(os.Stdout, cfg.LogLevel)

	store, err := storage.NewObjectStorage(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to initialize storage", "backend", cfg.Backend, "error", err)
		return exitcode.ConfigError
	}

	lambda.Start(lambdaHandler(step, cfg, store, logger))
	return exitcode.Success
}

// lambdaHandler adapts a step to the Lambda runtime. Returned errors surface
// to the state machine with their type name (e.g. InjectedFailureError) as
// the error code, which retry and catch rules can match on.
func lambdaHandler(step steps.Step, cfg *config.Config, store storage.ObjectStorage, logger *slog.Logger) func(context.Context, model.Event) (model.StepResult, error) {
	return func(ctx context.Context, event model.Event) (model.StepResult, error) {
		var requestID string
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			requestID = lc.AwsRequestID
		}

		handler, err := steps.Build(step, steps.Deps{
			Config:  cfg,
			Storage: store,
			Logger:  logging.ForInvocation(logger, string(step), "", requestID),
		})
		if err != nil {
			return model.StepResult{}, err
		}

		return handler(ctx, event)
	}
}
