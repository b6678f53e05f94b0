package report

import "time"

// Report is an anti-cheat report filed against a competitor for one game.
type Report struct {
	ReportID   string    `json:"report_id" bson:"report_id"`
	GameID     string    `json:"game_id" bson:"game_id"`
	ReporterID string    `json:"reporter_id" bson:"reporter_id"`
	AccusedID  string    `json:"accused_id" bson:"accused_id"`
	Reason     string    `json:"reason" bson:"reason"`
	Details    string    `json:"details,omitempty" bson:"details,omitempty"`
	Status     string    `json:"status" bson:"status"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// Appeal is filed by a banned competitor against a ban record.
type Appeal struct {
	AppealID  string    `json:"appeal_id" bson:"appeal_id"`
	BanID     string    `json:"ban_id" bson:"ban_id"`
	PlayerID  string    `json:"player_id" bson:"player_id"`
	Text      string    `json:"text" bson:"text"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type Ban struct {
	BanID     string     `json:"ban_id" bson:"ban_id"`
	PlayerID  string     `json:"player_id" bson:"player_id"`
	Reason    string     `json:"reason" bson:"reason"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
}

type ListRequest struct {
	GameID    string `json:"game_id,omitempty"`
	AccusedID string `json:"accused_id,omitempty"`
	Status    string `json:"status,omitempty"`
	PageNum   int    `json:"page_num"`
}

type ListResponse struct {
	PageNum    int      `json:"page_num"`
	TotalPages int      `json:"total_pages"`
	Reports    []Report `json:"reports"`
}
