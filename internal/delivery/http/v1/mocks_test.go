package v1_test

import (
	"context"
	"time"

	"go-resume-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockIngestUsecase struct {
	mock.Mock
}

func (m *MockIngestUsecase) IngestBatch(ctx context.Context, files []domain.UploadedFile) (*domain.IngestResult, error) {
	args := m.Called(ctx, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IngestResult), args.Error(1)
}

type MockCandidateUsecase struct {
	mock.Mock
}

func (m *MockCandidateUsecase) ListCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.CandidateRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateRow), args.Error(1)
}

func (m *MockCandidateUsecase) GetCandidate(ctx context.Context, id int64) (*domain.CandidateDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateDetail), args.Error(1)
}

func (m *MockCandidateUsecase) GetResume(ctx context.Context, id int64) (*domain.ResumeFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResumeFile), args.Error(1)
}

func (m *MockCandidateUsecase) GetFilters(ctx context.Context) (*domain.FilterValues, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FilterValues), args.Error(1)
}

func (m *MockCandidateUsecase) GetAnalytics(ctx context.Context) (*domain.Analytics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analytics), args.Error(1)
}

type MockSchemaManager struct {
	mock.Mock
}

func (m *MockSchemaManager) EnsureSchema(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSchemaManager) RecreateSchema(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type staticHealth struct {
	status  map[string]string
	healthy bool
}

func (s staticHealth) Check(context.Context) (map[string]string, bool) {
	return s.status, s.healthy
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) (bool, time.Duration, error) {
	return false, 30 * time.Second, nil
}
