package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"clinicapi/internal/config"
	"clinicapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; business rules live in the service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, cfg config.ReportConfig, searchSvc service.SearchService, compareSvc service.CompareService, reportSvc service.ReportService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/cases/search", SearchCases(searchSvc))
	app.Get("/photo-comparisons", ComparePhotos(compareSvc))
	app.Post("/visits/:id/report", CreateVisitReport(reportSvc))
	app.Post("/portfolios/:id/report", CreatePortfolioReport(reportSvc))
	app.Post("/costs/preview", PreviewCosts(cfg))
}
