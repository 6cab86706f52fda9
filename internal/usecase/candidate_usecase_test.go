package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"go-resume-backend/internal/domain"
	"go-resume-backend/internal/usecase"
	"go-resume-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func float(v float64) *float64 { return &v }

func TestListCandidatesCanonicalizesFilter(t *testing.T) {
	repo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(repo)
	ctx := context.Background()

	expected := domain.CandidateFilter{
		MinExp:    float(2),
		City:      "New York",
		SkillKeys: []string{"machine learning", "go"},
	}
	rows := []domain.CandidateRow{{ID: 1, Name: "Jane"}}
	repo.On("List", ctx, expected).Return(rows, nil)

	got, err := uc.ListCandidates(ctx, domain.CandidateFilter{
		MinExp:    float(2),
		City:      "  New   York ",
		SkillKeys: []string{"Machine  Learning", "GO", "go", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, rows, got)
	repo.AssertExpectations(t)
}

func TestListCandidatesRejectsInvertedRange(t *testing.T) {
	uc := usecase.NewCandidateUsecase(new(MockCandidateRepo))

	_, err := uc.ListCandidates(context.Background(), domain.CandidateFilter{MinExp: float(5), MaxExp: float(2)})
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestGetCandidateNotFound(t *testing.T) {
	repo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(repo)
	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrCandidateNotFound)

	_, err := uc.GetCandidate(context.Background(), 99)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestGetResumeDistinguishesMissingFile(t *testing.T) {
	repo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(repo)
	repo.On("GetResumeFile", mock.Anything, int64(1)).Return(nil, domain.ErrResumeFileNotFound)
	repo.On("GetResumeFile", mock.Anything, int64(2)).Return(nil, domain.ErrCandidateNotFound)
	repo.On("GetResumeFile", mock.Anything, int64(3)).Return(nil, assert.AnError)

	_, errNoFile := uc.GetResume(context.Background(), 1)
	_, errNoCandidate := uc.GetResume(context.Background(), 2)
	_, errDB := uc.GetResume(context.Background(), 3)

	noFile, ok := apperror.As(errNoFile)
	require.True(t, ok)
	noCandidate, ok := apperror.As(errNoCandidate)
	require.True(t, ok)

	assert.Equal(t, http.StatusNotFound, noFile.Code)
	assert.Equal(t, http.StatusNotFound, noCandidate.Code)
	assert.NotEqual(t, noFile.Message, noCandidate.Message)

	dbErr, ok := apperror.As(errDB)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, dbErr.Code)
}

func TestGetFiltersSortsAndDedupes(t *testing.T) {
	repo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(repo)
	repo.On("ListSkillNames", mock.Anything).Return([]string{"python", "Go", "Python", "aws"}, nil)
	repo.On("ListCities", mock.Anything).Return([]string{"pune", "Delhi", "Pune"}, nil)

	got, err := uc.GetFilters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"aws", "Go", "python"}, got.Skills)
	assert.Equal(t, []string{"Delhi", "pune"}, got.Cities)
}

func TestCityFacetIsUsableAsFilter(t *testing.T) {
	repo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(repo)
	ctx := context.Background()
	repo.On("ListSkillNames", mock.Anything).Return([]string{}, nil)
	repo.On("ListCities", mock.Anything).Return([]string{"New York"}, nil)

	filters, err := uc.GetFilters(ctx)
	require.NoError(t, err)
	require.Len(t, filters.Cities, 1)

	repo.On("List", ctx, domain.CandidateFilter{City: filters.Cities[0]}).Return([]domain.CandidateRow{{ID: 7}}, nil)
	rows, err := uc.ListCandidates(ctx, domain.CandidateFilter{City: filters.Cities[0]})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	repo.AssertExpectations(t)
}

func TestGetAnalytics(t *testing.T) {
	repo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(repo)
	repo.On("SkillCounts", mock.Anything).Return(map[string]int{"Python": 2, "Go": 1}, nil)
	repo.On("ExperienceCounts", mock.Anything).Return(map[float64]int{0: 1, 1.9: 2, 2: 1, 7.5: 3, 10: 1, 25: 1}, nil)

	got, err := uc.GetAnalytics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"Python": 2, "Go": 1}, got.SkillDistribution)
	assert.Equal(t, map[string]int{
		"0-2 years":  3,
		"2-5 years":  1,
		"5-10 years": 3,
		"10+ years":  2,
	}, got.ExperienceDistribution)
}

func TestGetAnalyticsEmptyStore(t *testing.T) {
	repo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(repo)
	repo.On("SkillCounts", mock.Anything).Return(map[string]int{}, nil)
	repo.On("ExperienceCounts", mock.Anything).Return(map[float64]int{}, nil)

	got, err := uc.GetAnalytics(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.SkillDistribution)
	assert.Len(t, got.ExperienceDistribution, 4)
	for _, n := range got.ExperienceDistribution {
		assert.Zero(t, n)
	}
}

func TestHealthUsecase(t *testing.T) {
	uc := usecase.NewHealthUsecase(map[string]domain.HealthCheck{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return assert.AnError },
	})

	status, healthy := uc.Check(context.Background())
	assert.False(t, healthy)
	assert.Equal(t, "degraded", status["status"])
	assert.Equal(t, "ok", status["database"])
	assert.Equal(t, "unavailable", status["redis"])
}
