package generator

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/labgenie/internal/domain"
	"github.com/emiliopalmerini/labgenie/internal/ports"
)

var errNoClient = errors.New("text-generation service not configured")

// Generator asks a text-generation service for a LabRecord and substitutes
// the local Fallback whenever the service fails or answers with something
// unusable.
type Generator struct {
	client   ports.TextGenerator
	sampling ports.GenerationConfig
	timeout  time.Duration
	logger   *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithTimeout bounds each call to the service. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) { g.timeout = d }
}

// WithSampling overrides DefaultSampling.
func WithSampling(cfg ports.GenerationConfig) Option {
	return func(g *Generator) { g.sampling = cfg }
}

// New creates a Generator. A nil client makes every call use the fallback.
func New(client ports.TextGenerator, logger *zap.Logger, opts ...Option) *Generator {
	g := &Generator{
		client:   client,
		sampling: DefaultSampling,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate always returns a complete LabRecord along with where it came from.
func (g *Generator) Generate(ctx context.Context, description string, readings []domain.Reading) (domain.LabRecord, domain.RecordSource) {
	record, err := g.fromService(ctx, description, readings)
	if err != nil {
		g.logger.Warn("lab record generation failed, using fallback",
			zap.String("experiment", description),
			zap.Error(err))
		return Fallback(description, readings), domain.SourceFallback
	}
	return record, domain.SourceModel
}

func (g *Generator) fromService(ctx context.Context, description string, readings []domain.Reading) (domain.LabRecord, error) {
	if g.client == nil {
		return domain.LabRecord{}, errNoClient
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	raw, err := g.client.Generate(ctx, BuildPrompt(description, readings), g.sampling)
	if err != nil {
		return domain.LabRecord{}, err
	}

	g.logger.Debug("text-generation response received", zap.Int("bytes", len(raw)))
	return ParseResponse(raw)
}
