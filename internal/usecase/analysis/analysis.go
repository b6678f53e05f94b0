package analysis

import (
	"context"

	"go.uber.org/zap"

	errs "github.com/VNDT1625/Caro-sub006/internal/errors"
	"github.com/VNDT1625/Caro-sub006/internal/repository"
)

// Meter is the usage bookkeeping the analysis proxy consults before
// spending engine time on a request.
type Meter interface {
	GetUsage(ctx context.Context, playerID string) (int64, error)
	IncrUsage(ctx context.Context, playerID string) (int64, error)
	GetPlayerTier(ctx context.Context, playerID string) (string, error)
	QuotaFor(tier string) int
}

type Engine interface {
	Analyze(ctx context.Context, req repository.AnalysisRequest) (*repository.AnalysisResponse, error)
}

type AnalysisUseCase struct {
	engine Engine
	meter  Meter
	log    *zap.SugaredLogger
}

func NewAnalysisUseCase(engine Engine, meter Meter, log *zap.SugaredLogger) *AnalysisUseCase {
	return &AnalysisUseCase{
		engine: engine,
		meter:  meter,
		log:    log,
	}
}

// AnalyzeForPlayer proxies a position to the engine after checking the
// player's daily quota for their subscription tier.
func (a *AnalysisUseCase) AnalyzeForPlayer(ctx context.Context, playerID string, req repository.AnalysisRequest) (*repository.AnalysisResponse, error) {
	tier, err := a.meter.GetPlayerTier(ctx, playerID)
	if err != nil {
		return nil, err
	}

	used, err := a.meter.GetUsage(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if used >= int64(a.meter.QuotaFor(tier)) {
		return nil, errs.ErrQuotaExceeded
	}

	resp, err := a.engine.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	if _, err = a.meter.IncrUsage(ctx, playerID); err != nil {
		a.log.Errorf("failed to meter analysis usage for %s: %v", playerID, err)
	}

	return resp, nil
}
