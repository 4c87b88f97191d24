package store

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mrjoel97/pikar-ai-sub002/internal/catalog"
	"github.com/Mrjoel97/pikar-ai-sub002/internal/types"
)

// SeedResult reports the outcome of a seeding run.
type SeedResult struct {
	AlreadySeeded bool `json:"already_seeded"`
	TotalSeeded   int  `json:"total_seeded"`
}

// Seeder populates the orchestration template catalog.
type Seeder struct {
	templates TemplateDAO
	logger    *slog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewSeeder creates a Seeder over the template DAO.
func NewSeeder(templates TemplateDAO, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		templates: templates,
		logger:    logger,
		tracer:    otel.Tracer("pikar.store.seed"),
		now:       time.Now,
	}
}

// SeedOrchestrations inserts the full seed catalog if the store holds no
// templates yet. The operation is idempotent by existence check: a non-empty
// catalog makes it a no-op reporting AlreadySeeded. The check and the insert
// are not atomic against a concurrent seeder in a separate process; callers
// that need stronger guarantees must serialize invocations themselves.
func (s *Seeder) SeedOrchestrations(ctx context.Context) (*SeedResult, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.seed")
	defer span.End()

	count, err := s.templates.Count(ctx)
	if err != nil {
		return nil, types.WrapError(types.CATALOG_SEED_FAILED, "failed to check existing templates", err)
	}
	if count > 0 {
		s.logger.Debug("orchestration catalog already seeded", "existing", count)
		span.SetAttributes(attribute.Bool("seed.skipped", true))
		return &SeedResult{AlreadySeeded: true, TotalSeeded: 0}, nil
	}

	templates := catalog.DefaultTemplates(s.now())
	if err := s.templates.InsertBatch(ctx, templates); err != nil {
		return nil, types.WrapError(types.CATALOG_SEED_FAILED, "failed to insert seed templates", err)
	}

	s.logger.Info("seeded orchestration catalog", "templates", len(templates))
	span.SetAttributes(attribute.Int("seed.inserted", len(templates)))
	return &SeedResult{AlreadySeeded: false, TotalSeeded: len(templates)}, nil
}
