package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/VNDT1625/Caro-sub006/internal/domain/report"
	"github.com/VNDT1625/Caro-sub006/internal/statuses"
)

type ReportStore interface {
	SaveReport(ctx context.Context, rep report.Report) error
	GetReportByID(ctx context.Context, reportID string) (report.Report, error)
	GetReportsPaginated(ctx context.Context, req report.ListRequest) (*report.ListResponse, error)
	SetReportStatus(ctx context.Context, reportID string, status string) error
	SaveBan(ctx context.Context, ban report.Ban) error
	GetBanByID(ctx context.Context, banID string) (report.Ban, error)
	SaveAppeal(ctx context.Context, appeal report.Appeal) error
}

type ReportUseCase struct {
	store ReportStore
	log   *zap.SugaredLogger
}

func NewReportUseCase(store ReportStore, log *zap.SugaredLogger) *ReportUseCase {
	return &ReportUseCase{
		store: store,
		log:   log,
	}
}

func (r *ReportUseCase) FileReport(ctx context.Context, gameID, reporterID, accusedID, reason, details string) (report.Report, error) {
	if gameID == "" || reporterID == "" || accusedID == "" || reason == "" {
		return report.Report{}, fmt.Errorf("report is missing required fields")
	}
	if reporterID == accusedID {
		return report.Report{}, fmt.Errorf("cannot report yourself")
	}

	rep := report.Report{
		ReportID:   uuid.New().String(),
		GameID:     gameID,
		ReporterID: reporterID,
		AccusedID:  accusedID,
		Reason:     reason,
		Details:    details,
		Status:     statuses.ReportStatusOpen,
		CreatedAt:  time.Now().UTC(),
	}

	if err := r.store.SaveReport(ctx, rep); err != nil {
		return report.Report{}, err
	}

	r.log.Infow("report filed", "report_id", rep.ReportID, "game_id", gameID, "accused", accusedID)
	return rep, nil
}

func (r *ReportUseCase) ListReports(ctx context.Context, req report.ListRequest) (*report.ListResponse, error) {
	return r.store.GetReportsPaginated(ctx, req)
}

// ReviewReport resolves an open report. An upheld report produces a ban
// record the accused may later appeal.
func (r *ReportUseCase) ReviewReport(ctx context.Context, reportID string, verdict string) (*report.Ban, error) {
	if verdict != statuses.ReportStatusDismissed && verdict != statuses.ReportStatusUpheld {
		return nil, fmt.Errorf("unknown verdict %q", verdict)
	}

	rep, err := r.store.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if rep.Status != statuses.ReportStatusOpen {
		return nil, fmt.Errorf("report %s already resolved", reportID)
	}

	if err = r.store.SetReportStatus(ctx, reportID, verdict); err != nil {
		return nil, err
	}

	if verdict != statuses.ReportStatusUpheld {
		return nil, nil
	}

	ban := report.Ban{
		BanID:     uuid.New().String(),
		PlayerID:  rep.AccusedID,
		Reason:    rep.Reason,
		CreatedAt: time.Now().UTC(),
	}
	if err = r.store.SaveBan(ctx, ban); err != nil {
		return nil, err
	}

	r.log.Infow("ban issued", "ban_id", ban.BanID, "player", ban.PlayerID)
	return &ban, nil
}

func (r *ReportUseCase) FileAppeal(ctx context.Context, banID, playerID, text string) (report.Appeal, error) {
	ban, err := r.store.GetBanByID(ctx, banID)
	if err != nil {
		return report.Appeal{}, err
	}
	if ban.PlayerID != playerID {
		return report.Appeal{}, fmt.Errorf("ban %s does not belong to player %s", banID, playerID)
	}

	appeal := report.Appeal{
		AppealID:  uuid.New().String(),
		BanID:     banID,
		PlayerID:  playerID,
		Text:      text,
		Status:    statuses.AppealStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err = r.store.SaveAppeal(ctx, appeal); err != nil {
		return report.Appeal{}, err
	}
	return appeal, nil
}
