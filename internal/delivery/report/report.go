package report

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/VNDT1625/Caro-sub006/internal/bootstrap"
	reportDomain "github.com/VNDT1625/Caro-sub006/internal/domain/report"
	"github.com/VNDT1625/Caro-sub006/internal/httpresponse"
	reportuc "github.com/VNDT1625/Caro-sub006/internal/usecase/report"
	"github.com/VNDT1625/Caro-sub006/internal/utils"
)

type ReportHandler struct {
	cfg      bootstrap.Config
	log      *zap.SugaredLogger
	reportUC *reportuc.ReportUseCase
}

func NewReportHandler(cfg bootstrap.Config, log *zap.SugaredLogger, reportUC *reportuc.ReportUseCase) *ReportHandler {
	return &ReportHandler{
		cfg:      cfg,
		log:      log,
		reportUC: reportUC,
	}
}

type FileReportRequest struct {
	GameID     string `json:"game_id"`
	ReporterID string `json:"reporter_id"`
	AccusedID  string `json:"accused_id"`
	Reason     string `json:"reason"`
	Details    string `json:"details,omitempty"`
}

type ReviewReportRequest struct {
	ReportID string `json:"report_id"`
	Verdict  string `json:"verdict"`
}

type FileAppealRequest struct {
	BanID    string `json:"ban_id"`
	PlayerID string `json:"player_id"`
	Text     string `json:"text"`
}

func (h *ReportHandler) HandleFileReport(w http.ResponseWriter, r *http.Request) {
	var req FileReportRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("HandleFileReport: JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	rep, err := h.reportUC.FileReport(r.Context(), req.GameID, req.ReporterID, req.AccusedID, req.Reason, req.Details)
	if err != nil {
		h.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, rep)
}

func (h *ReportHandler) HandleListReports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pageNum, _ := strconv.Atoi(q.Get("page"))

	resp, err := h.reportUC.ListReports(r.Context(), reportDomain.ListRequest{
		GameID:    q.Get("game_id"),
		AccusedID: q.Get("accused_id"),
		Status:    q.Get("status"),
		PageNum:   pageNum,
	})
	if err != nil {
		h.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (h *ReportHandler) HandleReviewReport(w http.ResponseWriter, r *http.Request) {
	var req ReviewReportRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("HandleReviewReport: JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	ban, err := h.reportUC.ReviewReport(r.Context(), req.ReportID, req.Verdict)
	if err != nil {
		h.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, ban)
}

func (h *ReportHandler) HandleFileAppeal(w http.ResponseWriter, r *http.Request) {
	var req FileAppealRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("HandleFileAppeal: JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	appeal, err := h.reportUC.FileAppeal(r.Context(), req.BanID, req.PlayerID, req.Text)
	if err != nil {
		h.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, appeal)
}
