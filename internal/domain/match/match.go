package match

import (
	"time"

	"github.com/VNDT1625/Caro-sub006/internal/domain/swap2"
)

// Match is one recorded game of caro, possibly part of a ranked series.
type Match struct {
	GameID        string        `json:"game_id" bson:"game_id"`
	GameKeyPublic string        `json:"game_key_public" bson:"game_key_public"`
	SeriesID      string        `json:"series_id,omitempty" bson:"series_id,omitempty"`
	Player1ID     string        `json:"player1_id" bson:"player1_id"`
	Player2ID     string        `json:"player2_id" bson:"player2_id"`
	BlackPlayerID string        `json:"black_player_id,omitempty" bson:"black_player_id,omitempty"`
	WhitePlayerID string        `json:"white_player_id,omitempty" bson:"white_player_id,omitempty"`
	WinnerID      string        `json:"winner_id,omitempty" bson:"winner_id,omitempty"`
	Status        string        `json:"status" bson:"status"`
	Ranked        bool          `json:"ranked" bson:"ranked"`
	Swap2Required bool          `json:"swap2_required" bson:"swap2_required"`
	OpeningStones []swap2.Stone `json:"opening_stones,omitempty" bson:"opening_stones,omitempty"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
	FinishedAt    *time.Time    `json:"finished_at,omitempty" bson:"finished_at,omitempty"`
}

type CreateMatchRequest struct {
	Player1ID     string `json:"player1_id"`
	Player2ID     string `json:"player2_id"`
	Ranked        bool   `json:"ranked"`
	Swap2Required bool   `json:"swap2_required"`
}

type MatchCreateResponse struct {
	GameID        string `json:"game_id"`
	GameKeyPublic string `json:"game_key_public"`
	Swap2Required bool   `json:"swap2_required"`
}

// Series is a ranked best-of-N sequence; every game inside it runs its
// own independent swap2 opening.
type Series struct {
	SeriesID  string     `json:"series_id" bson:"series_id"`
	Player1ID string     `json:"player1_id" bson:"player1_id"`
	Player2ID string     `json:"player2_id" bson:"player2_id"`
	BestOf    int        `json:"best_of" bson:"best_of"`
	Wins1     int        `json:"wins1" bson:"wins1"`
	Wins2     int        `json:"wins2" bson:"wins2"`
	GameIDs   []string   `json:"game_ids" bson:"game_ids"`
	WinnerID  string     `json:"winner_id,omitempty" bson:"winner_id,omitempty"`
	Status    string     `json:"status" bson:"status"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty" bson:"ended_at,omitempty"`
}
