package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/VNDT1625/Caro-sub006/internal/bootstrap"
	"github.com/VNDT1625/Caro-sub006/internal/domain/swap2"
)

// AnalysisRequest is what we send to the external analysis engine.
type AnalysisRequest struct {
	GameID string        `json:"game_id"`
	Stones []swap2.Stone `json:"stones"`
	Moves  []string      `json:"moves,omitempty"`
}

// AnalysisResponse is the engine's verdict for a position.
type AnalysisResponse struct {
	BestMove string  `json:"best_move"`
	Score    float64 `json:"score"`
	WinProb  float64 `json:"winprob"`
	Comment  string  `json:"comment,omitempty"`
}

// AnalysisRepository proxies positions to the engine endpoint from config.
type AnalysisRepository struct {
	cfg    bootstrap.Config
	log    *zap.SugaredLogger
	client *http.Client
}

func NewAnalysisRepository(cfg bootstrap.Config, log *zap.SugaredLogger) *AnalysisRepository {
	return &AnalysisRepository{
		cfg:    cfg,
		log:    log,
		client: &http.Client{},
	}
}

func (a *AnalysisRepository) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.AnalysisUrl, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		a.log.Errorf("analysis engine request failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analysis engine returned status %d", resp.StatusCode)
	}

	var analysisResp AnalysisResponse
	if err = json.NewDecoder(resp.Body).Decode(&analysisResp); err != nil {
		return nil, fmt.Errorf("analysis engine response decode: %w", err)
	}

	return &analysisResp, nil
}
