package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go-resume-backend/config"
	"go-resume-backend/internal/document"
	"go-resume-backend/internal/domain"
	"go-resume-backend/internal/llm"
	"go-resume-backend/internal/normalize"
	"go-resume-backend/internal/repository/postgres"
	"go-resume-backend/internal/usecase"
	"go-resume-backend/pkg/database"
	"go-resume-backend/pkg/logger"
	"go-resume-backend/pkg/security/antivirus"
	"go-resume-backend/pkg/validation"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Ingest local resume files",
	Long:  "Run PDF and DOCX files through extraction, the LLM and normalization, store the candidates and print the ingestion result as JSON.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIngest,
}

var ingestAPIKey string

func init() {
	ingestCmd.Flags().StringVar(&ingestAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if ingestAPIKey != "" {
		cfg.GeminiAPIKey = ingestAPIKey
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	files, err := readFiles(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	pool, err := database.NewPostgresConnection(ctx, cfg.DatabaseURL, database.PoolOptions{
		MaxConns:       int32(cfg.IngestWorkers + 1),
		SimpleProtocol: cfg.DBSimpleProtocol,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.NewSchemaManager(pool).EnsureSchema(ctx); err != nil {
		return err
	}

	completer, err := llm.NewGeminiCompleter(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return err
	}
	client := llm.NewExtractionClient(completer, llm.RetryPolicy{
		MaxAttempts:    cfg.LLMMaxAttempts,
		InitialBackoff: cfg.LLMInitialBackoff,
		MaxBackoff:     cfg.LLMMaxBackoff,
		Multiplier:     2,
	}, cfg.LLMCallTimeout, logger.Log.With("component", "llm"))

	var opts []usecase.IngestOption
	if cfg.ClamdAddress != "" {
		opts = append(opts, usecase.WithScanner(antivirus.NewClamdScanner(cfg.ClamdAddress, cfg.ClamdTimeout)))
	}

	ingestUC := usecase.NewIngestUsecase(
		document.NewExtractor(),
		client,
		normalize.NewNormalizer(validation.New()),
		postgres.NewCandidateRepository(pool),
		usecase.IngestConfig{
			Workers:        cfg.IngestWorkers,
			LLMConcurrency: int64(cfg.LLMMaxConcurrency),
			MaxFileBytes:   cfg.MaxUploadFileBytes,
		},
		logger.Log.With("component", "ingest"),
		opts...,
	)

	result, err := ingestUC.IngestBatch(ctx, files)
	if err != nil {
		return err
	}
	if err := writeResult(cmd.OutOrStdout(), result); err != nil {
		return err
	}
	if len(result.CandidateIDs) == 0 {
		return fmt.Errorf("no file was ingested")
	}
	return nil
}

// readFiles loads every path, declaring its type from the extension
func readFiles(paths []string) ([]domain.UploadedFile, error) {
	files := make([]domain.UploadedFile, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		name := filepath.Base(path)
		files = append(files, domain.UploadedFile{
			Filename: name,
			MIMEType: document.DeclaredType(name, ""),
			Data:     data,
		})
	}
	return files, nil
}

func writeResult(w io.Writer, result *domain.IngestResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
