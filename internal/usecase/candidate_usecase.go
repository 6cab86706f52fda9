package usecase

import (
	"context"
	"errors"
	"sort"

	"go-resume-backend/internal/domain"
	"go-resume-backend/internal/normalize"
	"go-resume-backend/pkg/apperror"
)

type candidateUsecase struct {
	repo domain.CandidateRepository
}

func NewCandidateUsecase(repo domain.CandidateRepository) domain.CandidateUsecase {
	return &candidateUsecase{repo: repo}
}

func (u *candidateUsecase) ListCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.CandidateRow, error) {
	if filter.MinExp != nil && filter.MaxExp != nil && *filter.MinExp > *filter.MaxExp {
		return nil, apperror.BadRequest("min_exp must not be greater than max_exp")
	}

	filter.City = normalize.CollapseSpace(filter.City)

	// Callers may pass display names; match on canonical keys
	if len(filter.SkillKeys) > 0 {
		keys := make([]string, 0, len(filter.SkillKeys))
		for _, s := range normalize.CanonicalList(filter.SkillKeys) {
			keys = append(keys, normalize.CanonicalKey(s))
		}
		filter.SkillKeys = keys
	}

	rows, err := u.repo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return rows, nil
}

func (u *candidateUsecase) GetCandidate(ctx context.Context, id int64) (*domain.CandidateDetail, error) {
	detail, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCandidateNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, apperror.Internal(err)
	}
	return detail, nil
}

func (u *candidateUsecase) GetResume(ctx context.Context, id int64) (*domain.ResumeFile, error) {
	file, err := u.repo.GetResumeFile(ctx, id)
	switch {
	case errors.Is(err, domain.ErrCandidateNotFound):
		return nil, apperror.NotFound("Candidate not found")
	case errors.Is(err, domain.ErrResumeFileNotFound):
		return nil, apperror.NotFound("No resume file on record for this candidate")
	case err != nil:
		return nil, apperror.Internal(err)
	}
	return file, nil
}

// GetFilters returns distinct skills and cities, deduplicated case-insensitively
// and sorted for display.
func (u *candidateUsecase) GetFilters(ctx context.Context) (*domain.FilterValues, error) {
	skills, err := u.repo.ListSkillNames(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	cities, err := u.repo.ListCities(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.FilterValues{
		Skills: sortedDistinct(skills),
		Cities: sortedDistinct(cities),
	}, nil
}

func sortedDistinct(values []string) []string {
	out := normalize.CanonicalList(values)
	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := normalize.CanonicalKey(out[i]), normalize.CanonicalKey(out[j])
		if ki != kj {
			return ki < kj
		}
		return out[i] < out[j]
	})
	return out
}

func (u *candidateUsecase) GetAnalytics(ctx context.Context) (*domain.Analytics, error) {
	skills, err := u.repo.SkillCounts(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	experience, err := u.repo.ExperienceCounts(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	dist := domain.NewExperienceDistribution()
	for years, n := range experience {
		dist[domain.BucketFor(years)] += n
	}

	if skills == nil {
		skills = map[string]int{}
	}
	return &domain.Analytics{
		SkillDistribution:      skills,
		ExperienceDistribution: dist,
	}, nil
}
