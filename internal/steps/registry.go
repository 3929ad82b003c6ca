package steps

import (
	"fmt"
	"log/slog"

	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/config"
	"github.com/kacper-wojtaszczyk/jackfruit/steps-go/internal/storage"
)

// Step names a deployable handler.
type Step string

const (
	FetchData    Step = "fetch-data"
	QualityCheck Step = "quality-check"
	CalculateCDC Step = "calculate-cdc"
	LoadData     Step = "load-data"
)

// All lists the steps in pipeline order.
var All = []Step{FetchData, QualityCheck, CalculateCDC, LoadData}

// Validate checks that s is a known step.
func (s Step) Validate() error {
	for _, known := range All {
		if s == known {
			return nil
		}
	}
	return fmt.Errorf("unknown step %q (want one of %v)", string(s), All)
}

// Requirements returns the buckets the step reads or writes.
func (s Step) Requirements() config.Requirements {
	switch s {
	case FetchData:
		return config.Requirements{DestinationBucket: true}
	case QualityCheck, CalculateCDC:
		return config.Requirements{SourceBucket: true, DestinationBucket: true}
	case LoadData:
		return config.Requirements{SourceBucket: true}
	default:
		return config.Requirements{}
	}
}

// Deps carries what Build wires into a handler.
type Deps struct {
	Config  *config.Config
	Storage storage.ObjectStorage
	Logger  *slog.Logger
	Rand    Rand    // nil means DefaultRand
	TempDir string
}

// Build returns the handler for step.
func Build(step Step, deps Deps) (Handler, error) {
	if err := step.Validate(); err != nil {
		return nil, err
	}
	if deps.Config == nil || deps.Storage == nil {
		return nil, fmt.Errorf("step %s: config and storage are required", step)
	}
	if deps.Rand == nil {
		deps.Rand = DefaultRand
	}
	cfg := deps.Config

	switch step {
	case FetchData:
		s := &SeedWriter{
			DestinationBucket: cfg.DestinationBucket,
			Storage:           deps.Storage,
			Rand:              deps.Rand,
			Logger:            deps.Logger,
		}
		return s.Handle, nil
	case QualityCheck:
		t := &Transformer{
			Marker:            QualityCheckMarker,
			SourceBucket:      cfg.SourceBucket,
			DestinationBucket: cfg.DestinationBucket,
			Storage:           deps.Storage,
			Logger:            deps.Logger,
			TempDir:           deps.TempDir,
		}
		g := &FlakyGate{Next: t.Handle, Rand: deps.Rand, Logger: deps.Logger}
		return g.Handle, nil
	case CalculateCDC:
		t := &Transformer{
			Marker:            CalculateCDCMarker,
			SourceBucket:      cfg.SourceBucket,
			DestinationBucket: cfg.DestinationBucket,
			Storage:           deps.Storage,
			Logger:            deps.Logger,
			TempDir:           deps.TempDir,
		}
		return t.Handle, nil
	default:
		l := &Loader{
			SourceBucket: cfg.SourceBucket,
			Storage:      deps.Storage,
			Logger:       deps.Logger,
			TempDir:      deps.TempDir,
		}
		return l.Handle, nil
	}
}
