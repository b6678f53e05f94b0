package analysis

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/VNDT1625/Caro-sub006/internal/bootstrap"
	errs "github.com/VNDT1625/Caro-sub006/internal/errors"
	"github.com/VNDT1625/Caro-sub006/internal/httpresponse"
	"github.com/VNDT1625/Caro-sub006/internal/repository"
	analysisuc "github.com/VNDT1625/Caro-sub006/internal/usecase/analysis"
	"github.com/VNDT1625/Caro-sub006/internal/utils"
)

type AnalysisHandler struct {
	cfg        bootstrap.Config
	log        *zap.SugaredLogger
	analysisUC *analysisuc.AnalysisUseCase
}

func NewAnalysisHandler(cfg bootstrap.Config, log *zap.SugaredLogger, analysisUC *analysisuc.AnalysisUseCase) *AnalysisHandler {
	return &AnalysisHandler{
		cfg:        cfg,
		log:        log,
		analysisUC: analysisUC,
	}
}

type AnalyzeRequest struct {
	PlayerID string                     `json:"player_id"`
	Position repository.AnalysisRequest `json:"position"`
}

func (h *AnalysisHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("HandleAnalyze: JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	if req.PlayerID == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "player_id is required"})
		return
	}

	resp, err := h.analysisUC.AnalyzeForPlayer(r.Context(), req.PlayerID, req.Position)
	if err != nil {
		if errors.Is(err, errs.ErrQuotaExceeded) {
			httpresponse.WriteResponseWithStatus(w, http.StatusTooManyRequests,
				httpresponse.ErrorResponse{ErrorDescription: err.Error()})
			return
		}
		h.log.Errorf("analysis failed: %v", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError,
			httpresponse.ErrorResponse{ErrorDescription: "failed to analyze position"})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}
