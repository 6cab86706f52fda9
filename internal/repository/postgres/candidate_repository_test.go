package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"go-resume-backend/internal/domain"
	"go-resume-backend/internal/repository/postgres"
	"go-resume-backend/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL and resets the schema. The tests
// drop every table, so never point it at a real database.
func openTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := database.NewPostgresConnection(ctx, url, database.PoolOptions{MaxConns: 8})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.NewSchemaManager(pool).RecreateSchema(ctx))
	return pool
}

func ptr[T any](v T) *T { return &v }

func TestCandidateRepositoryRoundTrip(t *testing.T) {
	pool := openTestDB(t)
	repo := postgres.NewCandidateRepository(pool)
	ctx := context.Background()

	candidate := &domain.Candidate{
		Name:           "Jane Doe",
		Email:          ptr("jane@example.com"),
		City:           ptr("Berlin"),
		TotalExp:       6.5,
		Skills:         []string{"Rust", "Go"},
		Certifications: []string{"CKA"},
		Degrees:        []domain.Degree{{CollegeName: "TU Berlin", DegreeName: ptr("MSc"), PassedOutYear: ptr(2016)}},
		Experiences:    []domain.Experience{{CompanyName: "Acme", Role: ptr("Engineer"), TotalYears: ptr(3.5)}},
		RawFile:        &domain.ResumeFile{Filename: "jane.pdf", MIMEType: domain.MIMETypePDF, Content: []byte("%PDF-1.4")},
		RawText:        "Jane Doe resume",
	}

	id, err := repo.Create(ctx, candidate)
	require.NoError(t, err)
	assert.Equal(t, id, candidate.ID)

	detail, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", detail.Name)
	assert.Equal(t, []string{"Rust", "Go"}, detail.Skills)
	assert.Equal(t, []string{"CKA"}, detail.Certifications)
	assert.True(t, detail.HasResume)
	require.Len(t, detail.Degrees, 1)
	assert.Equal(t, "TU Berlin", detail.Degrees[0].CollegeName)
	require.Len(t, detail.Experiences, 1)
	assert.Equal(t, "Acme", detail.Experiences[0].CompanyName)

	file, err := repo.GetResumeFile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.MIMETypePDF, file.MIMEType)
	assert.Equal(t, []byte("%PDF-1.4"), file.Content)

	_, err = repo.GetByID(ctx, id+1000)
	assert.ErrorIs(t, err, domain.ErrCandidateNotFound)
}

func TestCandidateRepositoryResumeLookups(t *testing.T) {
	pool := openTestDB(t)
	repo := postgres.NewCandidateRepository(pool)
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.Candidate{Name: "No File"})
	require.NoError(t, err)

	_, err = repo.GetResumeFile(ctx, id)
	assert.ErrorIs(t, err, domain.ErrResumeFileNotFound)

	_, err = repo.GetResumeFile(ctx, id+1000)
	assert.ErrorIs(t, err, domain.ErrCandidateNotFound)
}

func TestCandidateRepositoryFiltersAndAggregates(t *testing.T) {
	pool := openTestDB(t)
	repo := postgres.NewCandidateRepository(pool)
	ctx := context.Background()

	for _, c := range []*domain.Candidate{
		{Name: "A", City: ptr("Pune"), TotalExp: 1, Skills: []string{"Python"}},
		{Name: "B", City: ptr("pune"), TotalExp: 5, Skills: []string{"python", "Go"}},
		{Name: "C", City: ptr("Delhi"), TotalExp: 12, Skills: []string{"Rust"}},
	} {
		_, err := repo.Create(ctx, c)
		require.NoError(t, err)
	}

	rows, err := repo.List(ctx, domain.CandidateFilter{City: "PUNE"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = repo.List(ctx, domain.CandidateFilter{MinExp: ptr(5.0), MaxExp: ptr(12.0)})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = repo.List(ctx, domain.CandidateFilter{SkillKeys: []string{"go", "rust"}})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[0].Name)
	assert.Equal(t, []string{"Python", "Go"}, rows[0].Skills)

	counts, err := repo.SkillCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts["Python"])
	assert.Equal(t, 1, counts["Go"])

	exp, err := repo.ExperienceCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, exp[12])

	cities, err := repo.ListCities(ctx)
	require.NoError(t, err)
	assert.Len(t, cities, 2)
}

func TestCandidateRepositoryCityFacetMatchesFilter(t *testing.T) {
	pool := openTestDB(t)
	repo := postgres.NewCandidateRepository(pool)
	ctx := context.Background()

	for _, c := range []*domain.Candidate{
		{Name: "A", City: ptr("New  York")},
		{Name: "B", City: ptr(" new york\t")},
		{Name: "C", City: ptr("   ")},
	} {
		_, err := repo.Create(ctx, c)
		require.NoError(t, err)
	}

	cities, err := repo.ListCities(ctx)
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Contains(t, []string{"New York", "new york"}, cities[0])

	rows, err := repo.List(ctx, domain.CandidateFilter{City: cities[0]})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestCandidateRepositoryConcurrentDictionaryInserts(t *testing.T) {
	pool := openTestDB(t)
	repo := postgres.NewCandidateRepository(pool)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, &domain.Candidate{Name: "Dup", Skills: []string{"Kubernetes"}})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var n int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM skills WHERE name_key = 'kubernetes'`).Scan(&n))
	assert.Equal(t, 1, n)

	counts, err := repo.SkillCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, counts["Kubernetes"])
}

func TestCandidateRepositoryRollsBackOnFailure(t *testing.T) {
	pool := openTestDB(t)
	repo := postgres.NewCandidateRepository(pool)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.Candidate{
		Name:        "Bad",
		Skills:      []string{"Orphan"},
		Experiences: []domain.Experience{{CompanyName: "Ghost", TotalYears: ptr(-1.0)}},
	})
	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)

	var n int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&n))
	assert.Equal(t, 0, n)
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM skills`).Scan(&n))
	assert.Equal(t, 0, n)
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&n))
	assert.Equal(t, 0, n)
}
