package cmd

import (
	"fmt"
	"log"

	"carteira/api"
	"carteira/internal/app"
	"carteira/internal/database"
	"carteira/internal/logger"
	"carteira/internal/repository"
	"carteira/internal/service"
	"carteira/internal/util"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type Dependencies struct {
	ApiHandler  *api.ApiHandler
	Maintenance *cron.Cron
	Port        int
	close       func()
}

func (d *Dependencies) Close() {
	if d.Maintenance != nil {
		d.Maintenance.Stop()
	}
	if d.close != nil {
		d.close()
	}
}

func InitializeDependencies() (*Dependencies, error) {
	// .env is optional; secrets.json is the source of truth
	_ = godotenv.Load()

	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.New(secrets.DbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	engine := repository.NewAnalysisEngineClient(secrets.Engine.BaseUrl, secrets.Engine.ApiKey)
	draftRepository := repository.NewDraftRepository(db)
	snapshotRepository := repository.NewSnapshotRepository(db)
	apiRequestRepository := repository.NewApiRequestRepository(db)

	analysisHandler := app.NewAnalysisHandler(engine, draftRepository, snapshotRepository)

	maintenance, err := app.StartMaintenance(logger.New(), draftRepository, snapshotRepository)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to start maintenance jobs: %w", err)
	}

	return &Dependencies{
		ApiHandler: &api.ApiHandler{
			AnalysisHandler:      analysisHandler,
			ExpressionService:    app.NewExpressionService(),
			QuoteService:         service.NewQuoteService(),
			DraftRepository:      draftRepository,
			ApiRequestRepository: apiRequestRepository,
			JwtSecret:            secrets.JwtSecret,
			AllowedOrigins:       secrets.AllowedOrigins,
		},
		Maintenance: maintenance,
		Port:        secrets.Port,
		close: func() {
			if err := db.Close(); err != nil {
				log.Printf("failed to close db: %v", err)
			}
		},
	}, nil
}
