package swap2

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/VNDT1625/Caro-sub006/internal/adapters"
	"github.com/VNDT1625/Caro-sub006/internal/bootstrap"
	swap2dom "github.com/VNDT1625/Caro-sub006/internal/domain/swap2"
	"github.com/VNDT1625/Caro-sub006/internal/httpresponse"
	"github.com/VNDT1625/Caro-sub006/internal/repository"
	swap2uc "github.com/VNDT1625/Caro-sub006/internal/usecase/swap2"
	"github.com/VNDT1625/Caro-sub006/internal/utils"
)

// Swap2Handler is the HTTP front door over the opening manager, used by
// the match-session layer and by tooling. Live play goes through the
// websocket in delivery/game.
type Swap2Handler struct {
	cfg       bootstrap.Config
	log       *zap.SugaredLogger
	manager   *swap2uc.Manager
	snapshots *repository.Swap2SnapshotStorage
}

func NewSwap2Handler(cfg bootstrap.Config, log *zap.SugaredLogger, manager *swap2uc.Manager, redisAdapter *adapters.AdapterRedis) *Swap2Handler {
	return &Swap2Handler{
		cfg:       cfg,
		log:       log,
		manager:   manager,
		snapshots: repository.NewSwap2SnapshotStorage(log, redisAdapter.GetClient()),
	}
}

type PlaceRequest struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

type ChoiceRequest struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
	Choice   string `json:"choice"`
}

type RestoreRequest struct {
	GameID string `json:"game_id"`
}

func (h *Swap2Handler) HandlePlace(w http.ResponseWriter, r *http.Request) {
	var req PlaceRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("HandlePlace: JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	state, err := h.manager.PlaceStone(req.GameID, req.PlayerID, req.X, req.Y)
	if err != nil {
		h.log.Infow("placement rejected", "game_id", req.GameID, "player", req.PlayerID, "code", err.Error())
		httpresponse.WriteRejection(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (h *Swap2Handler) HandleChoice(w http.ResponseWriter, r *http.Request) {
	var req ChoiceRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("HandleChoice: JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	res := h.manager.ValidateAction(req.GameID, req.PlayerID, swap2uc.ActionRequest{
		Type:   "choice",
		Choice: req.Choice,
	})
	if !res.Valid {
		h.log.Infow("choice rejected", "game_id", req.GameID, "player", req.PlayerID, "code", res.Code)
		httpresponse.WriteRejection(w, res.Err())
		return
	}

	state, err := h.manager.MakeChoice(req.GameID, req.PlayerID, swap2dom.Choice(req.Choice))
	if err != nil {
		httpresponse.WriteRejection(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (h *Swap2Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	if gameID == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "game_id is required"})
		return
	}

	state := h.manager.GetState(gameID)
	if state == nil {
		httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
			httpresponse.ErrorResponse{ErrorDescription: "game not found", ErrorCode: "game_not_found"})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (h *Swap2Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	if gameID == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "game_id is required"})
		return
	}

	history, err := h.manager.GetHistory(gameID)
	if err != nil {
		httpresponse.WriteRejection(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, history)
}

// HandleRestore reloads a disconnected game's opening from its stored
// snapshot, making it continuable again.
func (h *Swap2Handler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	var req RestoreRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("HandleRestore: JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	blob, err := h.snapshots.LoadSnapshot(r.Context(), req.GameID)
	if err != nil {
		httpresponse.WriteRejection(w, err)
		return
	}

	state, err := h.manager.RestoreStateForReconnection(req.GameID, blob)
	if err != nil {
		h.log.Errorf("restore failed for %s: %v", req.GameID, err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}
