package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clinicapi/internal/config"
	"clinicapi/internal/model"
	"clinicapi/internal/service"
	serviceMocks "clinicapi/internal/service/mocks"
)

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSearchCases(t *testing.T) {
	mockSvc := new(serviceMocks.MockSearchService)
	app := fiber.New()
	app.Post("/cases/search", SearchCases(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &service.CaseSearchResult{
			Items: []model.CaseResult{{ID: uuid.New().String(), FirstName: "Jane", LastName: "Doe", VisitCount: 2}},
			Total: 1,
		}
		mockSvc.On("Search", mock.Anything, mock.MatchedBy(func(f model.SearchFilter) bool {
			return f.Sex != nil && *f.Sex == "f" && f.AgeMin != nil && *f.AgeMin == 30
		})).Return(expected, nil).Once()

		body := bytes.NewBufferString(`{"sex":"f","age_min":30}`)
		req := httptest.NewRequest(http.MethodPost, "/cases/search", body)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.CaseSearchResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty filter allowed", func(t *testing.T) {
		mockSvc.On("Search", mock.Anything, model.SearchFilter{}).
			Return(&service.CaseSearchResult{Items: []model.CaseResult{}, Total: 0}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/cases/search", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/cases/search", bytes.NewBufferString(`{not json`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_BODY", body.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Search", mock.Anything, model.SearchFilter{}).
			Return(nil, errors.New("boom")).Once()

		req := httptest.NewRequest(http.MethodPost, "/cases/search", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestComparePhotos(t *testing.T) {
	mockSvc := new(serviceMocks.MockCompareService)
	app := fiber.New()
	app.Get("/photo-comparisons", ComparePhotos(mockSvc))

	beforeID := uuid.New().String()
	afterID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		state := "relaxed"
		expected := &service.ComparisonResult{
			BeforeVisit: &model.Visit{ID: beforeID},
			AfterVisit:  &model.Visit{ID: afterID},
			Pairs: []model.ComparisonPair{
				{Position: "front", State: &state, Before: &model.PhotoRef{ID: "b1"}, After: &model.PhotoRef{ID: "a1"}},
			},
		}
		mockSvc.On("Pair", mock.Anything, beforeID, afterID).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/photo-comparisons?before="+beforeID+"&after="+afterID, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.ComparisonResult
		json.NewDecoder(resp.Body).Decode(&result)
		require.Len(t, result.Pairs, 1)
		assert.Equal(t, "front", result.Pairs[0].Position)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid ids", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/photo-comparisons?before=abc&after="+afterID, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_ID", body.Error.Code)
	})

	t.Run("missing ids rejected before the service runs", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/photo-comparisons?before="+beforeID, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_ID", body.Error.Code)
		mockSvc.AssertNotCalled(t, "Pair", mock.Anything, beforeID, "")
	})

	t.Run("visit not found", func(t *testing.T) {
		mockSvc.On("Pair", mock.Anything, beforeID, afterID).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/photo-comparisons?before="+beforeID+"&after="+afterID, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "NOT_FOUND", body.Error.Code)
	})
}

func TestCreateVisitReport(t *testing.T) {
	mockSvc := new(serviceMocks.MockReportService)
	app := fiber.New()
	app.Post("/visits/:id/report", CreateVisitReport(mockSvc))

	visitID := uuid.New().String()

	t.Run("created", func(t *testing.T) {
		file := &model.ReportFile{Path: "reports/Jane-Doe-2026-03-14.pdf", Filename: "Jane-Doe-2026-03-14.pdf", Size: 1234}
		mockSvc.On("GenerateVisitReport", mock.Anything, visitID).Return(file, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/visits/"+visitID+"/report", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.ReportFile
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, file.Filename, result.Filename)
		assert.Equal(t, file.Size, result.Size)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/visits/not-a-uuid/report", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("GenerateVisitReport", mock.Anything, visitID).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/visits/"+visitID+"/report", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("generation failure", func(t *testing.T) {
		mockSvc.On("GenerateVisitReport", mock.Anything, visitID).Return(nil, errors.New("bucket down")).Once()

		req := httptest.NewRequest(http.MethodPost, "/visits/"+visitID+"/report", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	})
}

func TestCreatePortfolioReport(t *testing.T) {
	mockSvc := new(serviceMocks.MockReportService)
	app := fiber.New()
	app.Post("/portfolios/:id/report", CreatePortfolioReport(mockSvc))

	portfolioID := uuid.New().String()

	t.Run("created", func(t *testing.T) {
		file := &model.ReportFile{Path: "reports/Frown-lines-2026-06-01.pdf", Filename: "Frown-lines-2026-06-01.pdf", Size: 99}
		mockSvc.On("GeneratePortfolioReport", mock.Anything, portfolioID).Return(file, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/portfolios/"+portfolioID+"/report", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("GeneratePortfolioReport", mock.Anything, portfolioID).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/portfolios/"+portfolioID+"/report", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestPreviewCosts(t *testing.T) {
	cfg := config.ReportConfig{ProvincialTaxRate: 9.975, FederalTaxRate: 5}
	app := fiber.New()
	app.Post("/costs/preview", PreviewCosts(cfg))

	t.Run("quebec rates", func(t *testing.T) {
		body := bytes.NewBufferString(`{"costs":[60,40]}`)
		req := httptest.NewRequest(http.MethodPost, "/costs/preview", body)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result costPreviewResponse
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "100.00", result.Subtotal)
		assert.Equal(t, "9.98", result.ProvincialTax)
		assert.Equal(t, "5.00", result.FederalTax)
		assert.Equal(t, "114.98", result.Total)
	})

	t.Run("no costs", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/costs/preview", bytes.NewBufferString(`{"costs":[]}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result costPreviewResponse
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "0.00", result.Subtotal)
		assert.Equal(t, "0.00", result.Total)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/costs/preview", bytes.NewBufferString(`[[[`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
