package game

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/VNDT1625/Caro-sub006/internal/adapters"
	"github.com/VNDT1625/Caro-sub006/internal/bootstrap"
	"github.com/VNDT1625/Caro-sub006/internal/domain/swap2"
	"github.com/VNDT1625/Caro-sub006/internal/httpresponse"
	"github.com/VNDT1625/Caro-sub006/internal/repository"
	matchuc "github.com/VNDT1625/Caro-sub006/internal/usecase/match"
	swap2uc "github.com/VNDT1625/Caro-sub006/internal/usecase/swap2"
)

// GameHandler runs the live websocket session for a game: relays swap2
// actions between the two competitors, snapshots the opening to redis on
// disconnect, and restores it when a player comes back.
type GameHandler struct {
	cfg       bootstrap.Config
	log       *zap.SugaredLogger
	manager   *swap2uc.Manager
	matchUC   *matchuc.MatchUseCase
	snapshots *repository.Swap2SnapshotStorage
	sessions  *repository.RedisSessionStorage
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type liveGame struct {
	mu    sync.Mutex
	conns map[string]*websocket.Conn // playerID -> connection
}

var activeGames = make(map[string]*liveGame)
var activeGamesMu sync.Mutex

func NewGameHandler(
	cfg bootstrap.Config,
	log *zap.SugaredLogger,
	manager *swap2uc.Manager,
	matchUC *matchuc.MatchUseCase,
	redisAdapter *adapters.AdapterRedis,
) *GameHandler {
	return &GameHandler{
		cfg:       cfg,
		log:       log,
		manager:   manager,
		matchUC:   matchUC,
		snapshots: repository.NewSwap2SnapshotStorage(log, redisAdapter.GetClient()),
		sessions:  repository.NewSessionRedisStorage(log, redisAdapter.GetClient()),
	}
}

// ClientMessage is what a competitor sends over the socket during the
// opening sequence.
type ClientMessage struct {
	Type   string `json:"type"`
	X      *int   `json:"x,omitempty"`
	Y      *int   `json:"y,omitempty"`
	Choice string `json:"choice,omitempty"`
}

type ServerMessage struct {
	Event     string         `json:"event"`
	State     *swap2.State   `json:"state,omitempty"`
	History   *swap2.History `json:"history,omitempty"`
	ErrorCode string         `json:"error_code,omitempty"`
	Error     string         `json:"error,omitempty"`
}

func (g *GameHandler) resolvePlayerID(r *http.Request) string {
	if sessionID := r.URL.Query().Get("session"); sessionID != "" {
		if playerID, ok := g.sessions.GetPlayerIdBySession(r.Context(), sessionID); ok {
			return playerID
		}
	}
	return r.URL.Query().Get("player_id")
}

func (g *GameHandler) HandleGameSocket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gameID := r.URL.Query().Get("game_id")
	playerID := g.resolvePlayerID(r)

	if gameID == "" || playerID == "" {
		g.log.Error("missing game_id or player identity")
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, "missing game_id or player identity")
		return
	}

	if !g.matchUC.IsPlayerInMatch(ctx, gameID, playerID) {
		g.log.Errorw("player not in match", "game_id", gameID, "player", playerID)
		httpresponse.WriteResponseWithStatus(w, http.StatusForbidden, "player is not part of this game")
		return
	}

	// A returning player may find the manager empty after a process view
	// of the game was dropped; the stored snapshot brings it back.
	if g.manager.GetState(gameID) == nil {
		if blob, err := g.snapshots.LoadSnapshot(ctx, gameID); err == nil {
			if _, err = g.manager.RestoreStateForReconnection(gameID, blob); err != nil {
				g.log.Errorf("snapshot restore failed for %s: %v", gameID, err)
			}
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("upgrade error: ", err)
		return
	}

	lg := g.joinLiveGame(gameID, playerID, conn)

	defer func() {
		g.leaveLiveGame(gameID, playerID, conn, lg)
	}()

	// Current state straight away, so a reconnecting client resyncs
	// without an extra round trip.
	if state := g.manager.GetState(gameID); state != nil {
		_ = conn.WriteJSON(ServerMessage{Event: "state", State: state})
	}

	for {
		var msg ClientMessage
		if err = conn.ReadJSON(&msg); err != nil {
			g.log.Infow("socket closed", "game_id", gameID, "player", playerID)
			return
		}

		state, applyErr := g.manager.ApplyAction(gameID, playerID, swap2uc.ActionRequest{
			Type:   msg.Type,
			X:      msg.X,
			Y:      msg.Y,
			Choice: msg.Choice,
		})
		if applyErr != nil {
			_ = conn.WriteJSON(ServerMessage{
				Event:     "rejected",
				ErrorCode: applyErr.Error(),
				Error:     applyErr.Error(),
			})
			continue
		}

		g.broadcast(lg, ServerMessage{Event: "state", State: state})

		if state.IsComplete() {
			history, opErr := g.matchUC.CompleteOpening(ctx, gameID)
			if opErr != nil {
				g.log.Errorf("failed to record opening for %s: %v", gameID, opErr)
				continue
			}
			g.broadcast(lg, ServerMessage{Event: "opening_complete", History: &history})
			_ = g.snapshots.DeleteSnapshot(ctx, gameID)
		}
	}
}

func (g *GameHandler) joinLiveGame(gameID, playerID string, conn *websocket.Conn) *liveGame {
	activeGamesMu.Lock()
	lg, ok := activeGames[gameID]
	if !ok {
		lg = &liveGame{conns: make(map[string]*websocket.Conn)}
		activeGames[gameID] = lg
	}
	activeGamesMu.Unlock()

	lg.mu.Lock()
	if old, exists := lg.conns[playerID]; exists && old != nil {
		_ = old.WriteJSON(ServerMessage{Event: "replaced", Error: "a newer connection took over"})
		old.Close()
	}
	lg.conns[playerID] = conn
	lg.mu.Unlock()
	return lg
}

func (g *GameHandler) leaveLiveGame(gameID, playerID string, conn *websocket.Conn, lg *liveGame) {
	conn.Close()

	lg.mu.Lock()
	stillOurs := lg.conns[playerID] == conn
	if stillOurs {
		delete(lg.conns, playerID)
	}
	empty := len(lg.conns) == 0
	lg.mu.Unlock()

	if !stillOurs {
		return
	}

	// Snapshot an unfinished opening so the reconnect window can pick it
	// up even if this process forgets the game.
	if state := g.manager.GetState(gameID); state != nil && !state.IsComplete() {
		if blob, err := g.manager.SerializeGame(gameID); err == nil {
			if err = g.snapshots.SaveSnapshot(context.Background(), gameID, blob); err != nil {
				g.log.Errorf("failed to store snapshot for %s: %v", gameID, err)
			}
		}
	}

	if empty {
		activeGamesMu.Lock()
		if activeGames[gameID] == lg {
			delete(activeGames, gameID)
		}
		activeGamesMu.Unlock()
	}
}

func (g *GameHandler) broadcast(lg *liveGame, msg ServerMessage) {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	for playerID, c := range lg.conns {
		if c == nil {
			continue
		}
		if err := c.WriteJSON(msg); err != nil {
			g.log.Errorw("write to player failed", "player", playerID, "err", err)
			c.Close()
			delete(lg.conns, playerID)
		}
	}
}
