package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go-resume-backend/internal/domain"
	"go-resume-backend/internal/metrics"
	"go-resume-backend/pkg/apperror"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	stageSize      = "size"
	stageScan      = "scan"
	stageExtract   = "extract"
	stageLLM       = "llm"
	stageNormalize = "normalize"
	stagePersist   = "persist"
	stageCancelled = "cancelled"
)

var errCancelled = errors.New("processing cancelled")

// IngestConfig bounds the work of one batch
type IngestConfig struct {
	// Workers is the number of files processed at once
	Workers int
	// LLMConcurrency caps LLM calls in flight across all batches
	LLMConcurrency int64
	// MaxFileBytes rejects larger files; zero disables the check
	MaxFileBytes int64
}

type ingestUsecase struct {
	extractor  domain.DocumentExtractor
	profiles   domain.ProfileExtractor
	normalizer domain.ProfileNormalizer
	repo       domain.CandidateRepository
	scanner    domain.UploadScanner
	llmGate    *semaphore.Weighted
	cfg        IngestConfig
	logger     *slog.Logger
}

// IngestOption customizes an ingest usecase
type IngestOption func(*ingestUsecase)

// WithScanner adds a malware scan before text extraction
func WithScanner(scanner domain.UploadScanner) IngestOption {
	return func(u *ingestUsecase) {
		u.scanner = scanner
	}
}

func NewIngestUsecase(
	extractor domain.DocumentExtractor,
	profiles domain.ProfileExtractor,
	normalizer domain.ProfileNormalizer,
	repo domain.CandidateRepository,
	cfg IngestConfig,
	logger *slog.Logger,
	opts ...IngestOption,
) domain.IngestUsecase {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.LLMConcurrency < 1 {
		cfg.LLMConcurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	u := &ingestUsecase{
		extractor:  extractor,
		profiles:   profiles,
		normalizer: normalizer,
		repo:       repo,
		llmGate:    semaphore.NewWeighted(cfg.LLMConcurrency),
		cfg:        cfg,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

type fileOutcome struct {
	id  int64
	err error
}

// IngestBatch processes every file independently. A failing file never aborts
// its siblings; ids and error messages both keep submission order. Files not
// started when ctx is cancelled are reported as cancelled.
func (u *ingestUsecase) IngestBatch(ctx context.Context, files []domain.UploadedFile) (*domain.IngestResult, error) {
	if len(files) == 0 {
		return nil, apperror.BadRequest("No files uploaded")
	}

	outcomes := make([]fileOutcome, len(files))

	var g errgroup.Group
	g.SetLimit(u.cfg.Workers)
	for i := range files {
		if ctx.Err() != nil {
			outcomes[i] = fileOutcome{err: errCancelled}
			metrics.ObserveFile(metrics.OutcomeCancelled, stageCancelled, 0)
			continue
		}
		g.Go(func() error {
			outcomes[i] = u.processFile(ctx, files[i])
			return nil
		})
	}
	_ = g.Wait()

	result := &domain.IngestResult{CandidateIDs: []int64{}, Errors: []string{}}
	for i, out := range outcomes {
		if out.err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", files[i].Filename, out.err.Error()))
			continue
		}
		result.CandidateIDs = append(result.CandidateIDs, out.id)
	}

	u.logger.Info("upload batch processed",
		"files", len(files),
		"created", len(result.CandidateIDs),
		"failed", len(result.Errors),
	)
	return result, nil
}

func (u *ingestUsecase) processFile(ctx context.Context, file domain.UploadedFile) fileOutcome {
	start := time.Now()
	if ctx.Err() != nil {
		metrics.ObserveFile(metrics.OutcomeCancelled, stageCancelled, 0)
		return fileOutcome{err: errCancelled}
	}

	id, stage, err := u.ingest(ctx, file)
	elapsed := time.Since(start)
	if err != nil {
		outcome := metrics.OutcomeFailure
		if errors.Is(err, context.Canceled) {
			outcome = metrics.OutcomeCancelled
		}
		metrics.ObserveFile(outcome, stage, elapsed)
		u.logger.Warn("resume ingestion failed",
			"filename", file.Filename,
			"stage", stage,
			"duration", elapsed,
			"error", err,
		)
		return fileOutcome{err: err}
	}

	metrics.ObserveFile(metrics.OutcomeSuccess, "", elapsed)
	u.logger.Info("resume ingested", "filename", file.Filename, "candidate_id", id, "duration", elapsed)
	return fileOutcome{id: id}
}

// ingest runs the pipeline for one file and reports the stage that failed
func (u *ingestUsecase) ingest(ctx context.Context, file domain.UploadedFile) (int64, string, error) {
	if u.cfg.MaxFileBytes > 0 && int64(len(file.Data)) > u.cfg.MaxFileBytes {
		return 0, stageSize, fmt.Errorf("file exceeds the %d byte limit", u.cfg.MaxFileBytes)
	}

	if u.scanner != nil {
		if err := u.scanner.Scan(ctx, file.Filename, file.Data); err != nil {
			return 0, stageScan, err
		}
	}

	text, err := u.extractor.Extract(ctx, file.Data, file.MIMEType)
	if err != nil {
		return 0, stageExtract, err
	}
	if strings.TrimSpace(text) == "" {
		return 0, stageExtract, &domain.ExtractionError{MIMEType: file.MIMEType, Message: "no text found in document"}
	}

	raw, err := u.extractProfile(ctx, text)
	if err != nil {
		return 0, stageLLM, err
	}

	candidate, err := u.normalizer.Normalize(raw)
	if err != nil {
		return 0, stageNormalize, err
	}
	candidate.RawText = text
	candidate.RawFile = &domain.ResumeFile{
		Filename: file.Filename,
		MIMEType: file.MIMEType,
		Content:  file.Data,
	}

	id, err := u.repo.Create(ctx, candidate)
	if err != nil {
		return 0, stagePersist, err
	}
	return id, "", nil
}

// extractProfile holds an LLM slot for the duration of the call
func (u *ingestUsecase) extractProfile(ctx context.Context, text string) (map[string]any, error) {
	if err := u.llmGate.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: %w", errCancelled, err)
	}
	defer u.llmGate.Release(1)
	defer metrics.LLMAdmitted()()

	return u.profiles.ExtractProfile(ctx, text)
}
