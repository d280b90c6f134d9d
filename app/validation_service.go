package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"crossval/domain/physics"
	"crossval/domain/report"
	"crossval/domain/verbal"
	"crossval/internal"
	"crossval/internal/engine"
	"crossval/ports"
)

// ValidationService orchestrates validation runs: contract checks and metric
// computation in the engine, persistence through the repository port.
type ValidationService struct {
	engine *engine.Engine
	repo   ports.ReportRepositoryPort
	logger *internal.Logger
}

// RunInput is one physics/verbalization pair to validate.
type RunInput struct {
	Physics       []physics.Profile
	Verbalization verbal.Profile
}

// NewValidationService creates a validation service.
func NewValidationService(eng *engine.Engine, repo ports.ReportRepositoryPort, logger *internal.Logger) *ValidationService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ValidationService{engine: eng, repo: repo, logger: logger}
}

// Run validates one input pair and persists the report.
func (s *ValidationService) Run(ctx context.Context, in RunInput) (*report.ValidationReport, error) {
	rep, err := s.engine.Validate(in.Physics, in.Verbalization)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, rep); err != nil {
		return nil, err
	}

	s.logger.Info("validation run %s: cells=%d rIndex=%.3f direction=%s coherence=%.3f",
		rep.ID, rep.CellCount, rep.RIndex.Value, rep.RIndex.Direction, rep.Coherence.Score)
	return rep, nil
}

// RunFromSources drives a full run through the external collaborator ports.
func (s *ValidationService) RunFromSources(ctx context.Context, profiler ports.ProfilerPort, narrator ports.NarratorPort, source, response string, grid physics.GridConfig) (*report.ValidationReport, error) {
	profiles, err := profiler.ExtractProfiles(ctx, source, grid)
	if err != nil {
		return nil, err
	}
	verb, err := narrator.ParseResponse(ctx, response)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, RunInput{Physics: profiles, Verbalization: verb})
}

// RunBatch validates independent input pairs in parallel. The engine is
// side-effect free, so disjoint runs need no coordination; the first error
// cancels the batch. Results come back in input order.
func (s *ValidationService) RunBatch(ctx context.Context, inputs []RunInput) ([]*report.ValidationReport, error) {
	reports := make([]*report.ValidationReport, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			rep, err := s.Run(gctx, in)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
