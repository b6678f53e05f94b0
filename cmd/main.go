package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/VNDT1625/Caro-sub006/internal/adapters"
	"github.com/VNDT1625/Caro-sub006/internal/bootstrap"
	analysisDelivery "github.com/VNDT1625/Caro-sub006/internal/delivery/analysis"
	gameDelivery "github.com/VNDT1625/Caro-sub006/internal/delivery/game"
	matchDelivery "github.com/VNDT1625/Caro-sub006/internal/delivery/match"
	reportDelivery "github.com/VNDT1625/Caro-sub006/internal/delivery/report"
	swap2Delivery "github.com/VNDT1625/Caro-sub006/internal/delivery/swap2"
	ownMiddleware "github.com/VNDT1625/Caro-sub006/internal/middleware"
	"github.com/VNDT1625/Caro-sub006/internal/repository"
	analysisUC "github.com/VNDT1625/Caro-sub006/internal/usecase/analysis"
	matchUC "github.com/VNDT1625/Caro-sub006/internal/usecase/match"
	reportUC "github.com/VNDT1625/Caro-sub006/internal/usecase/report"
	seriesUC "github.com/VNDT1625/Caro-sub006/internal/usecase/series"
	swap2UC "github.com/VNDT1625/Caro-sub006/internal/usecase/swap2"
)

type mainDeliveryHandler struct {
	swap2    *swap2Delivery.Swap2Handler
	game     *gameDelivery.GameHandler
	match    *matchDelivery.MatchHandler
	report   *reportDelivery.ReportHandler
	analysis *analysisDelivery.AnalysisHandler
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	databaseAdapters := initDatabaseAdapters(ctx, logger, *cfg)
	defer databaseAdapters.mongoAdapter.Close(ctx)
	defer databaseAdapters.redisAdapter.Close(ctx)

	r := chi.NewRouter()
	handlers := initializeDeliveryHandlers(*cfg, logger, databaseAdapters)
	handlers.Router(r, cfg.IsLocalCors)

	port := cfg.ServerPort
	if port == "" {
		port = ":8080"
	}
	logger.Infof("Server is running on port %s", port)
	if err := http.ListenAndServe(port, r); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)

	r.Post("/newGame", h.match.HandleNewGame)
	r.Post("/getGameById", h.match.GetMatchById)
	r.Post("/finishGame", h.match.HandleFinishMatch)

	r.Post("/series/start", h.match.HandleStartSeries)
	r.Post("/series/nextGame", h.match.HandleNextSeriesGame)
	r.Post("/series/result", h.match.HandleSeriesResult)

	r.Post("/swap2/place", h.swap2.HandlePlace)
	r.Post("/swap2/choice", h.swap2.HandleChoice)
	r.Get("/swap2/state", h.swap2.HandleState)
	r.Get("/swap2/history", h.swap2.HandleHistory)
	r.Post("/swap2/restore", h.swap2.HandleRestore)

	r.Get("/startGame", h.game.HandleGameSocket)

	r.Post("/report", h.report.HandleFileReport)
	r.Get("/reports", h.report.HandleListReports)
	r.Post("/report/review", h.report.HandleReviewReport)
	r.Post("/appeal", h.report.HandleFileAppeal)

	r.Post("/analyze", h.analysis.HandleAnalyze)
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg bootstrap.Config) *dataBaseAdapters {
	mongoAdapter := adapters.NewAdapterMongo(&cfg)
	if err := mongoAdapter.Init(ctx); err != nil {
		log.Fatal("Failed to initialize MongoDB", zap.Error(err))
	}

	redisAdapter := adapters.NewAdapterRedis(&cfg)
	if err := redisAdapter.Init(ctx); err != nil {
		log.Fatal("Failed to initialize Redis", zap.Error(err))
	}

	log.Info("Database adapters initialized")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}
}

func initializeDeliveryHandlers(
	cfg bootstrap.Config,
	log *zap.SugaredLogger,
	databaseAdapters *dataBaseAdapters,
) *mainDeliveryHandler {
	swap2Manager := swap2UC.NewManager(log)

	matchRepo := repository.NewMatchRepository(cfg, log, databaseAdapters.mongoAdapter.Database)
	matchUsecase := matchUC.NewMatchUseCase(matchRepo, swap2Manager, log)
	seriesUsecase := seriesUC.NewSeriesUseCase(matchRepo, matchUsecase, cfg.SeriesBestOf, log)

	reportRepo := repository.NewReportStorage(cfg, log, databaseAdapters.mongoAdapter.Database)
	reportUsecase := reportUC.NewReportUseCase(reportRepo, log)

	usageRepo := repository.NewUsageStorage(cfg, databaseAdapters.redisAdapter.GetClient())
	analysisRepo := repository.NewAnalysisRepository(cfg, log)
	analysisUsecase := analysisUC.NewAnalysisUseCase(analysisRepo, usageRepo, log)

	return &mainDeliveryHandler{
		swap2:    swap2Delivery.NewSwap2Handler(cfg, log, swap2Manager, databaseAdapters.redisAdapter),
		game:     gameDelivery.NewGameHandler(cfg, log, swap2Manager, matchUsecase, databaseAdapters.redisAdapter),
		match:    matchDelivery.NewMatchHandler(cfg, log, matchUsecase, seriesUsecase),
		report:   reportDelivery.NewReportHandler(cfg, log, reportUsecase),
		analysis: analysisDelivery.NewAnalysisHandler(cfg, log, analysisUsecase),
	}
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
	time.Sleep(1 * time.Second) // give connections time to close
}
