package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/VNDT1625/Caro-sub006/internal/bootstrap"
	"github.com/VNDT1625/Caro-sub006/internal/domain/report"
	errs "github.com/VNDT1625/Caro-sub006/internal/errors"
)

type ReportStorage struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewReportStorage(cfg bootstrap.Config, log *zap.SugaredLogger, mongo *mongo.Database) *ReportStorage {
	return &ReportStorage{
		cfg:   cfg,
		log:   log,
		mongo: mongo,
	}
}

func (r *ReportStorage) SaveReport(ctx context.Context, rep report.Report) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.mongo.Collection("reports").InsertOne(ctx, rep)
	if err != nil {
		r.log.Errorf("failed to insert report: %v", err)
		return err
	}
	return nil
}

func (r *ReportStorage) GetReportByID(ctx context.Context, reportID string) (report.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var found report.Report
	err := r.mongo.Collection("reports").FindOne(ctx, bson.M{"report_id": reportID}).Decode(&found)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return report.Report{}, errs.ErrReportNotFound
	} else if err != nil {
		r.log.Error(err)
		return report.Report{}, err
	}
	return found, nil
}

// GetReportsPaginated lists reports matching the optional filters, newest
// first, one page at a time.
func (r *ReportStorage) GetReportsPaginated(ctx context.Context, req report.ListRequest) (*report.ListResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if req.GameID != "" {
		filter["game_id"] = req.GameID
	}
	if req.AccusedID != "" {
		filter["accused_id"] = req.AccusedID
	}
	if req.Status != "" {
		filter["status"] = req.Status
	}

	collection := r.mongo.Collection("reports")

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		r.log.Error(err)
		return nil, err
	}

	pageLimit := r.cfg.PageLimitReports
	if pageLimit <= 0 {
		pageLimit = 20
	}
	pageNum := req.PageNum
	if pageNum < 1 {
		pageNum = 1
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((pageNum - 1) * pageLimit)).
		SetLimit(int64(pageLimit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.log.Error(err)
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := make([]report.Report, 0)
	for cursor.Next(ctx) {
		var rep report.Report
		if err = cursor.Decode(&rep); err != nil {
			r.log.Error(err)
			return nil, err
		}
		reports = append(reports, rep)
	}

	totalPages := int((total + int64(pageLimit) - 1) / int64(pageLimit))

	return &report.ListResponse{
		PageNum:    pageNum,
		TotalPages: totalPages,
		Reports:    reports,
	}, nil
}

func (r *ReportStorage) SetReportStatus(ctx context.Context, reportID string, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.mongo.Collection("reports").UpdateOne(ctx,
		bson.M{"report_id": reportID},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		r.log.Errorf("failed to update report %s: %v", reportID, err)
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrReportNotFound
	}
	return nil
}

func (r *ReportStorage) SaveBan(ctx context.Context, ban report.Ban) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.mongo.Collection("bans").InsertOne(ctx, ban)
	if err != nil {
		r.log.Errorf("failed to insert ban: %v", err)
		return err
	}
	return nil
}

func (r *ReportStorage) GetBanByID(ctx context.Context, banID string) (report.Ban, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var found report.Ban
	err := r.mongo.Collection("bans").FindOne(ctx, bson.M{"ban_id": banID}).Decode(&found)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return report.Ban{}, errs.ErrReportNotFound
	} else if err != nil {
		r.log.Error(err)
		return report.Ban{}, err
	}
	return found, nil
}

func (r *ReportStorage) SaveAppeal(ctx context.Context, appeal report.Appeal) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.mongo.Collection("appeals").InsertOne(ctx, appeal)
	if err != nil {
		r.log.Errorf("failed to insert appeal: %v", err)
		return err
	}
	return nil
}
