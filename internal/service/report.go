package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"

	"clinicapi/internal/config"
	"clinicapi/internal/model"
	"clinicapi/internal/report"
	"clinicapi/internal/repository"
	"clinicapi/internal/storage"
)

// ReportService defines the report generation use cases. Both operations
// render the PDF in memory and upload it in a single Put, so a storage
// failure never leaves a partial file behind.
type ReportService interface {
	// GenerateVisitReport renders and stores the visit report PDF.
	GenerateVisitReport(ctx context.Context, visitID string) (*model.ReportFile, error)

	// GeneratePortfolioReport renders and stores the landscape before/after
	// portfolio report PDF.
	GeneratePortfolioReport(ctx context.Context, portfolioID string) (*model.ReportFile, error)
}

type reportService struct {
	repo   repository.ReportRepository
	store  storage.Storage
	comp   *report.Compositor
	prefix string
}

// NewReportService constructs a ReportService. The compositor reads photo
// and signature assets back out of the same object storage the reports are
// written to.
func NewReportService(repo repository.ReportRepository, store storage.Storage, cfg config.ReportConfig) ReportService {
	return &reportService{
		repo:   repo,
		store:  store,
		comp:   report.NewCompositor(cfg.ClinicName, cfg.ProvincialTaxRate, cfg.FederalTaxRate, storageAssets{store: store}),
		prefix: cfg.Prefix,
	}
}

// storageAssets adapts the object storage client to the compositor's
// read-only asset interface.
type storageAssets struct {
	store storage.Storage
}

func (s storageAssets) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	rd, _, err := s.store.Get(ctx, key)
	return rd, err
}

func (s *reportService) GenerateVisitReport(ctx context.Context, visitID string) (*model.ReportFile, error) {
	if visitID == "" {
		return nil, ErrIDRequired
	}

	visit, err := s.repo.FindVisit(ctx, visitID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	patient, err := s.repo.FindPatient(ctx, visit.PatientID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	photos, err := s.repo.ListVisitPhotos(ctx, visitID)
	if err != nil {
		return nil, err
	}
	treatments, err := s.repo.ListVisitTreatments(ctx, visitID)
	if err != nil {
		return nil, err
	}
	annotations := make(map[string][]model.Annotation, len(treatments))
	for _, t := range treatments {
		anns, err := s.repo.ListTreatmentAnnotations(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		if len(anns) > 0 {
			annotations[t.ID] = anns
		}
	}
	consents, err := s.repo.ListVisitConsents(ctx, visitID)
	if err != nil {
		return nil, err
	}

	pdf, err := s.comp.VisitReport(ctx, report.VisitReportData{
		Patient:     patient,
		Visit:       visit,
		Photos:      photos,
		Treatments:  treatments,
		Annotations: annotations,
		Consents:    consents,
	})
	if err != nil {
		return nil, err
	}

	name := patient.FirstName + " " + patient.LastName
	return s.storePDF(ctx, name, visit.VisitDate.Format("2006-01-02"), pdf)
}

func (s *reportService) GeneratePortfolioReport(ctx context.Context, portfolioID string) (*model.ReportFile, error) {
	if portfolioID == "" {
		return nil, ErrIDRequired
	}

	portfolio, err := s.repo.FindPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	patient, err := s.repo.FindPatient(ctx, portfolio.PatientID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	beforeVisit, err := s.repo.FindVisit(ctx, portfolio.BeforeVisitID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	afterVisit, err := s.repo.FindVisit(ctx, portfolio.AfterVisitID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	beforePhotos, err := s.repo.ListVisitPhotos(ctx, portfolio.BeforeVisitID)
	if err != nil {
		return nil, err
	}
	afterPhotos, err := s.repo.ListVisitPhotos(ctx, portfolio.AfterVisitID)
	if err != nil {
		return nil, err
	}

	pdf, err := s.comp.PortfolioReport(ctx, report.PortfolioReportData{
		Portfolio:   portfolio,
		Patient:     patient,
		BeforeVisit: beforeVisit,
		AfterVisit:  afterVisit,
		Pairs:       MatchPairs(beforePhotos, afterPhotos),
	})
	if err != nil {
		return nil, err
	}

	return s.storePDF(ctx, portfolio.Name, afterVisit.VisitDate.Format("2006-01-02"), pdf)
}

// storePDF uploads the rendered bytes under a deterministic key and returns
// the stored file description.
func (s *reportService) storePDF(ctx context.Context, name, date string, pdf []byte) (*model.ReportFile, error) {
	filename := report.SanitizeFilename(name) + "-" + date + ".pdf"
	key := path.Join(s.prefix, filename)

	info, err := s.store.Put(ctx, key, bytes.NewReader(pdf), storage.PutObjectOptions{
		Size:        int64(len(pdf)),
		ContentType: "application/pdf",
	})
	if err != nil {
		return nil, fmt.Errorf("store report: %w", err)
	}
	return &model.ReportFile{Path: info.Key, Filename: filename, Size: info.Size}, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
