package match

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/VNDT1625/Caro-sub006/internal/bootstrap"
	matchDomain "github.com/VNDT1625/Caro-sub006/internal/domain/match"
	errs "github.com/VNDT1625/Caro-sub006/internal/errors"
	"github.com/VNDT1625/Caro-sub006/internal/httpresponse"
	matchuc "github.com/VNDT1625/Caro-sub006/internal/usecase/match"
	seriesuc "github.com/VNDT1625/Caro-sub006/internal/usecase/series"
	"github.com/VNDT1625/Caro-sub006/internal/utils"
)

type MatchHandler struct {
	cfg      bootstrap.Config
	log      *zap.SugaredLogger
	matchUC  *matchuc.MatchUseCase
	seriesUC *seriesuc.SeriesUseCase
}

func NewMatchHandler(cfg bootstrap.Config, log *zap.SugaredLogger, matchUC *matchuc.MatchUseCase, seriesUC *seriesuc.SeriesUseCase) *MatchHandler {
	return &MatchHandler{
		cfg:      cfg,
		log:      log,
		matchUC:  matchUC,
		seriesUC: seriesUC,
	}
}

type FinishMatchRequest struct {
	GameID   string `json:"game_id"`
	WinnerID string `json:"winner_id"`
}

type StartSeriesRequest struct {
	Player1ID string `json:"player1_id"`
	Player2ID string `json:"player2_id"`
}

type NextSeriesGameRequest struct {
	SeriesID string `json:"series_id"`
}

type SeriesResultRequest struct {
	SeriesID string `json:"series_id"`
	GameID   string `json:"game_id"`
	WinnerID string `json:"winner_id"`
}

type MatchFindRequest struct {
	GameID string `json:"game_id"`
}

func (h *MatchHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var req matchDomain.CreateMatchRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("HandleNewGame: JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	if req.Player1ID == "" || req.Player2ID == "" || req.Player1ID == req.Player2ID {
		h.log.Error("HandleNewGame: bad players in request")
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "two distinct player ids are required"})
		return
	}

	resp, err := h.matchUC.CreateMatch(r.Context(), req)
	if err != nil {
		h.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	h.log.Infof("new match created with game_id: %s", resp.GameID)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (h *MatchHandler) GetMatchById(w http.ResponseWriter, r *http.Request) {
	var req MatchFindRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("GetMatchById: JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	found, err := h.matchUC.GetMatch(r.Context(), req.GameID)
	if err != nil {
		if errors.Is(err, errs.ErrMatchNotFound) {
			httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
				httpresponse.ErrorResponse{ErrorDescription: "match not found"})
			return
		}
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, found)
}

func (h *MatchHandler) HandleFinishMatch(w http.ResponseWriter, r *http.Request) {
	var req FinishMatchRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("HandleFinishMatch: JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	if err := h.matchUC.FinishMatch(r.Context(), req.GameID, req.WinnerID); err != nil {
		h.log.Error(err)
		httpresponse.WriteRejection(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}

func (h *MatchHandler) HandleStartSeries(w http.ResponseWriter, r *http.Request) {
	var req StartSeriesRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("HandleStartSeries: JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	if req.Player1ID == "" || req.Player2ID == "" || req.Player1ID == req.Player2ID {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "two distinct player ids are required"})
		return
	}

	s, err := h.seriesUC.StartSeries(r.Context(), req.Player1ID, req.Player2ID)
	if err != nil {
		h.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, s)
}

func (h *MatchHandler) HandleNextSeriesGame(w http.ResponseWriter, r *http.Request) {
	var req NextSeriesGameRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("HandleNextSeriesGame: JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	resp, err := h.seriesUC.StartNextGame(r.Context(), req.SeriesID)
	if err != nil {
		if errors.Is(err, errs.ErrSeriesFinished) {
			httpresponse.WriteResponseWithStatus(w, http.StatusConflict,
				httpresponse.ErrorResponse{ErrorDescription: err.Error()})
			return
		}
		h.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (h *MatchHandler) HandleSeriesResult(w http.ResponseWriter, r *http.Request) {
	var req SeriesResultRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("HandleSeriesResult: JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	s, err := h.seriesUC.RecordGameResult(r.Context(), req.SeriesID, req.GameID, req.WinnerID)
	if err != nil {
		h.log.Error(err)
		httpresponse.WriteRejection(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, s)
}
