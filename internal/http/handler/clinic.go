package handler

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clinicapi/internal/config"
	"clinicapi/internal/costing"
	"clinicapi/internal/model"
	"clinicapi/internal/service"
)

// HealthCheck reports readiness by pinging the database.
//
// @Summary      Health check
// @Description  Verifies database connectivity.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  errorPayload
// @Router       /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness probe with no dependency checks.
//
// @Summary      Liveness probe
// @Tags         health
// @Success      200
// @Router       /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// SearchCases runs the dynamic case search.
//
// @Summary      Search patient cases
// @Description  Filters patients by demographics, consents, visit dates and treatments. All filter fields are optional.
// @Tags         cases
// @Accept       json
// @Produce      json
// @Param        filter  body      model.SearchFilter  true  "Search filter"
// @Success      200     {object}  service.CaseSearchResult
// @Failure      400     {object}  errorPayload
// @Failure      500     {object}  errorPayload
// @Router       /cases/search [post]
func SearchCases(svc service.SearchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var filter model.SearchFilter
		if err := c.BodyParser(&filter); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := svc.Search(c.UserContext(), filter)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// ComparePhotos pairs the photos of two visits for before/after review.
//
// @Summary      Compare visit photos
// @Tags         photos
// @Produce      json
// @Param        before  query     string  true  "Before visit ID"
// @Param        after   query     string  true  "After visit ID"
// @Success      200     {object}  service.ComparisonResult
// @Failure      400     {object}  errorPayload
// @Failure      404     {object}  errorPayload
// @Failure      500     {object}  errorPayload
// @Router       /photo-comparisons [get]
func ComparePhotos(svc service.CompareService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		beforeID := c.Query("before")
		afterID := c.Query("after")
		if !validID(beforeID) || !validID(afterID) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		res, err := svc.Pair(c.UserContext(), beforeID, afterID)
		if err != nil {
			return serviceError(c, err, "visit not found")
		}
		return c.JSON(res)
	}
}

// CreateVisitReport generates the visit report PDF and stores it.
//
// @Summary      Generate visit report
// @Tags         reports
// @Produce      json
// @Param        id   path      string  true  "Visit ID"
// @Success      201  {object}  model.ReportFile
// @Failure      400  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Failure      500  {object}  errorPayload
// @Router       /visits/{id}/report [post]
func CreateVisitReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !validID(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		file, err := svc.GenerateVisitReport(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err, "visit not found")
		}
		return c.Status(fiber.StatusCreated).JSON(file)
	}
}

// CreatePortfolioReport generates the landscape before/after portfolio PDF.
//
// @Summary      Generate portfolio report
// @Tags         reports
// @Produce      json
// @Param        id   path      string  true  "Portfolio ID"
// @Success      201  {object}  model.ReportFile
// @Failure      400  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Failure      500  {object}  errorPayload
// @Router       /portfolios/{id}/report [post]
func CreatePortfolioReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !validID(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		file, err := svc.GeneratePortfolioReport(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err, "portfolio not found")
		}
		return c.Status(fiber.StatusCreated).JSON(file)
	}
}

// costPreviewRequest is the live cost preview input.
type costPreviewRequest struct {
	Costs []float64 `json:"costs"`
}

// costPreviewResponse carries display-rounded money strings. Rounding
// happens once here so the preview always matches the printed ledger.
type costPreviewResponse struct {
	Subtotal      string `json:"subtotal"`
	ProvincialTax string `json:"provincial_tax"`
	FederalTax    string `json:"federal_tax"`
	Total         string `json:"total"`
}

// PreviewCosts folds a list of line costs under the configured tax rates.
//
// @Summary      Preview treatment costs
// @Tags         costs
// @Accept       json
// @Produce      json
// @Param        costs  body      costPreviewRequest  true  "Line costs"
// @Success      200    {object}  costPreviewResponse
// @Failure      400    {object}  errorPayload
// @Router       /costs/preview [post]
func PreviewCosts(cfg config.ReportConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req costPreviewRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		rollup := costing.Compute(costing.Sum(req.Costs), cfg.ProvincialTaxRate, cfg.FederalTaxRate)
		return c.JSON(costPreviewResponse{
			Subtotal:      costing.Display(rollup.Subtotal),
			ProvincialTax: costing.Display(rollup.ProvincialTax),
			FederalTax:    costing.Display(rollup.FederalTax),
			Total:         costing.Display(rollup.Total),
		})
	}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// serviceError maps service sentinels to standard error responses. Handlers
// validate IDs before calling the service, so only the not-found sentinel can
// reach this point.
func serviceError(c *fiber.Ctx, err error, notFoundMsg string) error {
	if errors.Is(err, service.ErrNotFound) {
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", notFoundMsg)
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}
