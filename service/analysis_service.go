package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"ade-insurance-backend/models"
	"ade-insurance-backend/repository"
	"ade-insurance-backend/storage"

	"github.com/google/uuid"
)

// AnalysisService runs the document extraction pipeline: page images go
// through preprocessing, the oracle, sanitization and validation, and the
// per-page records are merged into one document record.
type AnalysisService struct {
	documentRepo *repository.DocumentRepository
	pageRepo     *repository.PageRepository
	jobRepo      *repository.JobRepository
	store        storage.Storage
	oracle       Oracle
}

// AnalysisServiceOption is a functional option for AnalysisService
type AnalysisServiceOption func(*AnalysisService)

// AnalysisWithDocumentRepository sets the document repository
func AnalysisWithDocumentRepository(repo *repository.DocumentRepository) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.documentRepo = repo
	}
}

// AnalysisWithPageRepository sets the page repository
func AnalysisWithPageRepository(repo *repository.PageRepository) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.pageRepo = repo
	}
}

// AnalysisWithJobRepository sets the job repository
func AnalysisWithJobRepository(repo *repository.JobRepository) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.jobRepo = repo
	}
}

// AnalysisWithStorage sets the page image storage backend
func AnalysisWithStorage(store storage.Storage) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.store = store
	}
}

// AnalysisWithOracle sets the extraction oracle
func AnalysisWithOracle(oracle Oracle) AnalysisServiceOption {
	return func(s *AnalysisService) {
		s.oracle = oracle
	}
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(opts ...AnalysisServiceOption) *AnalysisService {
	s := &AnalysisService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrNoPages          = errors.New("document has no pages")
	ErrJobNotFound      = errors.New("analysis job not found")
	ErrJobCreation      = errors.New("failed to create analysis job")
)

// quotaMessage is shown to the client when a structured extraction burns
// through the daily quota. The user is expected to fall back to manual
// entry.
const quotaMessage = "⚠️ API quota đã hết (50 requests/ngày). Vui lòng nhập thông tin thủ công hoặc thử lại sau 24h."

// StartAnalysisRequest represents a request to analyze a document
type StartAnalysisRequest struct {
	DocumentID uuid.UUID
}

// StartAnalysisResult carries the job ID for status polling
type StartAnalysisResult struct {
	JobID uuid.UUID
}

// StartAnalysis validates the document and enqueues an analysis job. The
// caller launches ProcessAnalysis in a goroutine; this method itself must
// return fast.
func (s *AnalysisService) StartAnalysis(ctx context.Context, req StartAnalysisRequest) (*StartAnalysisResult, error) {
	if s.documentRepo == nil {
		return nil, errors.New("document repository not set")
	}
	if s.jobRepo == nil {
		return nil, errors.New("job repository not set")
	}

	doc, err := s.documentRepo.GetByID(ctx, req.DocumentID)
	if err != nil {
		return nil, ErrDocumentNotFound
	}

	pages, err := s.pageRepo.ListByDocument(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	if len(pages) == 0 {
		return nil, ErrNoPages
	}

	job := &models.Job{
		ID:         uuid.New(),
		DocumentID: doc.ID,
		Status:     models.JobStatusPending,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, ErrJobCreation
	}

	if err := s.documentRepo.UpdateStatus(ctx, doc.ID, models.DocumentStatusProcessing); err != nil {
		log.Printf("failed to mark document %s processing: %v", doc.ID, err)
	}

	return &StartAnalysisResult{JobID: job.ID}, nil
}

// GetJobStatus retrieves an analysis job for polling
func (s *AnalysisService) GetJobStatus(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	if s.jobRepo == nil {
		return nil, errors.New("job repository not set")
	}
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// ProcessAnalysis runs the full pipeline for a job in the background. Each
// page is analyzed independently; a page that fails still yields a
// placeholder record so the merge sees every page. Only infrastructure
// failures (storage, database) fail the job.
func (s *AnalysisService) ProcessAnalysis(ctx context.Context, jobID uuid.UUID) error {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to load analysis job: %w", err)
	}

	if err := s.jobRepo.UpdateStatus(ctx, jobID, models.JobStatusInProgress); err != nil {
		return fmt.Errorf("failed to start job: %w", err)
	}

	pages, err := s.pageRepo.ListByDocument(ctx, job.DocumentID)
	if err != nil {
		return s.failJob(ctx, jobID, job.DocumentID, fmt.Errorf("failed to list pages: %w", err))
	}

	results := make([]models.PageAnalysis, 0, len(pages))
	var markdownPages []string
	for i, page := range pages {
		data, err := s.loadPageImage(ctx, page.StoragePath)
		if err != nil {
			return s.failJob(ctx, jobID, job.DocumentID, fmt.Errorf("failed to load page %d: %w", i+1, err))
		}

		analysis := s.AnalyzePage(ctx, data, i+1)
		results = append(results, analysis)

		md, err := s.ExtractMarkdown(ctx, data)
		if err != nil {
			log.Printf("markdown extraction failed for page %d of document %s: %v", i+1, job.DocumentID, err)
		} else if md != "" {
			markdownPages = append(markdownPages, md)
		}

		progress := (i + 1) * 100 / len(pages)
		if err := s.jobRepo.UpdateProgress(ctx, jobID, progress); err != nil {
			log.Printf("failed to update job %s progress: %v", jobID, err)
		}
	}

	merged := MergeAnalyses(results)

	var markdown *string
	if len(markdownPages) > 0 {
		joined := joinMarkdownPages(markdownPages)
		markdown = &joined
	}

	if err := s.documentRepo.SaveAnalysis(ctx, job.DocumentID, &merged, markdown); err != nil {
		return s.failJob(ctx, jobID, job.DocumentID, fmt.Errorf("failed to save analysis: %w", err))
	}
	if err := s.documentRepo.UpdateStatus(ctx, job.DocumentID, models.DocumentStatusDone); err != nil {
		return s.failJob(ctx, jobID, job.DocumentID, fmt.Errorf("failed to update document status: %w", err))
	}
	if err := s.jobRepo.Complete(ctx, jobID); err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}

	log.Printf("analysis complete for document %s: %d pages, type %q, confidence %.2f",
		job.DocumentID, merged.TotalPages, merged.DocumentType, merged.Confidence)
	return nil
}

func (s *AnalysisService) failJob(ctx context.Context, jobID, documentID uuid.UUID, cause error) error {
	log.Printf("analysis job %s failed: %v", jobID, cause)
	if err := s.jobRepo.Fail(ctx, jobID, cause.Error()); err != nil {
		log.Printf("failed to mark job %s failed: %v", jobID, err)
	}
	if err := s.documentRepo.UpdateStatus(ctx, documentID, models.DocumentStatusError); err != nil {
		log.Printf("failed to mark document %s errored: %v", documentID, err)
	}
	return cause
}

func (s *AnalysisService) loadPageImage(ctx context.Context, storagePath string) ([]byte, error) {
	rc, err := s.store.Download(ctx, storagePath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// AnalyzePage runs the structured auto-analysis for a single page image.
// It never returns an error: failures become placeholder records with the
// Error field set so they still participate in merging.
func (s *AnalysisService) AnalyzePage(ctx context.Context, image []byte, pageNumber int) models.PageAnalysis {
	processed, err := PreprocessImage(image)
	if err != nil {
		return errorPage(pageNumber, err, "")
	}

	raw, err := s.oracle.GenerateVision(ctx, promptAutoAnalysis, processed, longFormSettings)
	if err != nil {
		return errorPage(pageNumber, err, "")
	}

	doc, err := ParseOracleJSON(raw)
	if err != nil {
		return errorPage(pageNumber, fmt.Errorf("invalid JSON from oracle: %w", err), raw)
	}

	analysis := ValidateAnalysis(doc)
	analysis.PageNumber = pageNumber
	return analysis
}

func errorPage(pageNumber int, cause error, raw string) models.PageAnalysis {
	return models.PageAnalysis{
		DocumentType:  "Error",
		Confidence:    0,
		Summary:       "Analysis failed",
		People:        []any{},
		Organizations: []any{},
		Locations:     []any{},
		Dates:         []any{},
		Numbers:       []any{},
		PageNumber:    pageNumber,
		Error:         cause.Error(),
		RawResponse:   raw,
	}
}

// ExtractMarkdown extracts a page's text content as Markdown.
func (s *AnalysisService) ExtractMarkdown(ctx context.Context, image []byte) (string, error) {
	processed, err := PreprocessImage(image)
	if err != nil {
		return "", err
	}
	return s.oracle.GenerateVision(ctx, promptDocumentMarkdown, processed, longFormSettings)
}

// ExtractPersonInfo extracts identity fields from an ID document image.
// Quota exhaustion degrades to a placeholder record telling the user to
// enter the information manually; other failures produce an error record.
func (s *AnalysisService) ExtractPersonInfo(ctx context.Context, image []byte) models.PersonInfo {
	processed, err := PreprocessImage(image)
	if err != nil {
		return models.PersonInfo{ExtractionStatus: "error", Error: err.Error()}
	}

	raw, err := s.oracle.GenerateVision(ctx, promptPersonInfo, processed, structuredSettings)
	if err != nil {
		if errors.Is(err, ErrQuotaExceeded) {
			return quotaPersonInfo()
		}
		return models.PersonInfo{ExtractionStatus: "error", Error: err.Error()}
	}

	doc, err := ParseOracleJSON(raw)
	if err != nil {
		return models.PersonInfo{ExtractionStatus: "error", Error: err.Error(), RawResponse: raw}
	}

	person := ValidatePersonInfo(doc)
	person.ExtractionStatus = "success"
	return person
}

// quotaPersonInfo is the degraded record returned when the daily quota is
// exhausted. Nationality and document type get their overwhelmingly likely
// defaults so the manual-entry form is prefilled.
func quotaPersonInfo() models.PersonInfo {
	nationality := "Việt Nam"
	docType := "CCCD"
	return models.PersonInfo{
		Nationality:      &nationality,
		DocumentType:     &docType,
		ExtractionStatus: "quota_exceeded",
		Message:          quotaMessage,
	}
}

// ExtractVehicleInfo extracts registration fields from a vehicle document
// image, with the same quota degradation as person extraction.
func (s *AnalysisService) ExtractVehicleInfo(ctx context.Context, image []byte) models.VehicleInfo {
	processed, err := PreprocessImage(image)
	if err != nil {
		return models.VehicleInfo{ExtractionStatus: "error", Error: err.Error()}
	}

	raw, err := s.oracle.GenerateVision(ctx, promptVehicleInfo, processed, structuredSettings)
	if err != nil {
		if errors.Is(err, ErrQuotaExceeded) {
			docType := "Vehicle Registration"
			return models.VehicleInfo{
				DocumentType:     &docType,
				ExtractionStatus: "quota_exceeded",
				Message:          quotaMessage,
			}
		}
		return models.VehicleInfo{ExtractionStatus: "error", Error: err.Error()}
	}

	doc, err := ParseOracleJSON(raw)
	if err != nil {
		return models.VehicleInfo{ExtractionStatus: "error", Error: err.Error(), RawResponse: raw}
	}

	vehicle := ValidateVehicleInfo(doc)
	vehicle.ExtractionStatus = "success"
	return vehicle
}

// RecommendInsurance asks the oracle to read address and place of origin
// off a document image and returns region-based package recommendations.
// The oracle's own region call is cross-checked deterministically: the rule
// table output is recomputed from the extracted texts and wins on
// disagreement.
func (s *AnalysisService) RecommendInsurance(ctx context.Context, image []byte) models.RecommendationResult {
	processed, err := PreprocessImage(image)
	if err != nil {
		return unknownRecommendation(err.Error())
	}

	raw, err := s.oracle.GenerateVision(ctx, promptRegionRecommendation, processed, structuredSettings)
	if err != nil {
		return unknownRecommendation(err.Error())
	}

	var result models.RecommendationResult
	if err := json.Unmarshal([]byte(SanitizeJSON(raw)), &result); err != nil {
		r := unknownRecommendation("invalid JSON from oracle: " + err.Error())
		r.RawResponse = raw
		return r
	}

	// The rule table is the authority; the oracle only supplies the texts.
	deterministic := RecommendFromTexts(result.PlaceOfOrigin.Text, result.Address.Text)
	deterministic.Address.Type = normalizeAddressType(result.Address.Type)
	return deterministic
}

func normalizeAddressType(t string) string {
	switch t {
	case "thuong_tru", "tam_tru":
		return t
	default:
		return "unknown"
	}
}

func unknownRecommendation(errMsg string) models.RecommendationResult {
	return models.RecommendationResult{
		Address:             models.AddressInfo{Type: "unknown", Region: models.RegionUnknown},
		PlaceOfOrigin:       models.OriginInfo{Region: models.RegionUnknown},
		RecommendedPackages: []models.RecommendationPackage{},
		Error:               errMsg,
	}
}

// RecommendFromPersonInfo derives recommendations from an already-extracted
// identity record without another oracle call.
func (s *AnalysisService) RecommendFromPersonInfo(person models.PersonInfo) models.RecommendationResult {
	origin := ""
	if person.PlaceOfOrigin != nil {
		origin = *person.PlaceOfOrigin
	}
	address := ""
	if person.Address != nil {
		address = *person.Address
	}
	return RecommendFromTexts(origin, address)
}

func joinMarkdownPages(pages []string) string {
	if len(pages) == 1 {
		return pages[0]
	}
	out := ""
	for i, p := range pages {
		if i > 0 {
			out += "\n\n---\n\n"
		}
		out += p
	}
	return out
}
