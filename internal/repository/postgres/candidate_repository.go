package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go-resume-backend/internal/domain"
	"go-resume-backend/internal/normalize"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

const candidateColumns = `
	c.id, c.name, c.email, c.phone, c.linkedin, c.city, c.total_exp,
	COALESCE((SELECT array_agg(s.name ORDER BY cs.position)
		FROM candidate_skills cs JOIN skills s ON s.id = cs.skill_id
		WHERE cs.candidate_id = c.id), '{}') AS skills,
	COALESCE((SELECT array_agg(ct.name ORDER BY cc.position)
		FROM candidate_certifications cc JOIN certifications ct ON ct.id = cc.certification_id
		WHERE cc.candidate_id = c.id), '{}') AS certifications`

// cityDisplay collapses whitespace runs the same way normalize.CollapseSpace does,
// so a city listed as a facet value matches the filter built from it.
const cityDisplay = `regexp_replace(btrim(c.city), '\s+', ' ', 'g')`

// =================================================================================================
// Transactional Write
// =================================================================================================

// Create stores the candidate with its raw file, dictionary links, degrees and
// experiences in one transaction. Nothing is kept when any step fails.
func (r *candidateRepository) Create(ctx context.Context, candidate *domain.Candidate) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, &domain.PersistenceError{Op: "begin transaction", Cause: err}
	}
	defer tx.Rollback(ctx)

	var id int64
	insertCandidate := `
		INSERT INTO candidates (name, email, phone, linkedin, city, total_exp, raw_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err = tx.QueryRow(ctx, insertCandidate,
		candidate.Name, candidate.Email, candidate.Phone, candidate.LinkedIn,
		candidate.City, candidate.TotalExp, candidate.RawText,
	).Scan(&id, &candidate.CreatedAt)
	if err != nil {
		return 0, &domain.PersistenceError{Op: "insert candidate", Cause: err}
	}

	if f := candidate.RawFile; f != nil {
		_, err = tx.Exec(ctx,
			`INSERT INTO resume_files (candidate_id, filename, mime_type, content) VALUES ($1, $2, $3, $4)`,
			id, f.Filename, f.MIMEType, f.Content)
		if err != nil {
			return 0, &domain.PersistenceError{Op: "insert resume file", Cause: err}
		}
	}

	if err := r.linkDictionary(ctx, tx, id, "skills", "candidate_skills", "skill_id", candidate.Skills); err != nil {
		return 0, err
	}
	if err := r.linkDictionary(ctx, tx, id, "certifications", "candidate_certifications", "certification_id", candidate.Certifications); err != nil {
		return 0, err
	}

	for i, d := range candidate.Degrees {
		collegeID, err := upsertDictionary(ctx, tx, "colleges", d.CollegeName)
		if err != nil {
			return 0, err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO degrees (candidate_id, college_id, degree_name, passed_out_year, position) VALUES ($1, $2, $3, $4, $5)`,
			id, collegeID, d.DegreeName, d.PassedOutYear, i)
		if err != nil {
			return 0, &domain.PersistenceError{Op: "insert degree", Cause: err}
		}
	}

	for i, e := range candidate.Experiences {
		companyID, err := upsertDictionary(ctx, tx, "companies", e.CompanyName)
		if err != nil {
			return 0, err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO experiences (candidate_id, company_id, role, total_years, description, position) VALUES ($1, $2, $3, $4, $5, $6)`,
			id, companyID, e.Role, e.TotalYears, e.Description, i)
		if err != nil {
			return 0, &domain.PersistenceError{Op: "insert experience", Cause: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, &domain.PersistenceError{Op: "commit", Cause: err}
	}

	candidate.ID = id
	return id, nil
}

func (r *candidateRepository) linkDictionary(ctx context.Context, tx pgx.Tx, candidateID int64, table, pivot, fk string, names []string) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (candidate_id, %s, position) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		pq.QuoteIdentifier(pivot), pq.QuoteIdentifier(fk))
	for i, name := range names {
		entryID, err := upsertDictionary(ctx, tx, table, name)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, candidateID, entryID, i); err != nil {
			return &domain.PersistenceError{Op: "link " + table, Cause: err}
		}
	}
	return nil
}

// upsertDictionary returns the id of the row whose name_key matches name,
// creating it if needed. A concurrent insert of the same key blocks on the
// unique index and then falls through to the re-read.
func upsertDictionary(ctx context.Context, tx pgx.Tx, table, name string) (int64, error) {
	if !slices.Contains(dictionaryTables, table) {
		return 0, &domain.PersistenceError{Op: "upsert", Cause: fmt.Errorf("unknown dictionary %q", table)}
	}
	key := normalize.CanonicalKey(name)
	ident := pq.QuoteIdentifier(table)

	var id int64
	err := tx.QueryRow(ctx,
		fmt.Sprintf(`INSERT INTO %s (name, name_key) VALUES ($1, $2) ON CONFLICT (name_key) DO NOTHING RETURNING id`, ident),
		name, key,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		err = tx.QueryRow(ctx, fmt.Sprintf(`SELECT id FROM %s WHERE name_key = $1`, ident), key).Scan(&id)
	}
	if err != nil {
		return 0, &domain.PersistenceError{Op: "upsert " + table, Cause: err}
	}
	return id, nil
}

// =================================================================================================
// Reads
// =================================================================================================

func (r *candidateRepository) GetByID(ctx context.Context, id int64) (*domain.CandidateDetail, error) {
	query := `SELECT ` + candidateColumns + `, c.raw_text, c.created_at, rf.mime_type
		FROM candidates c
		LEFT JOIN resume_files rf ON rf.candidate_id = c.id
		WHERE c.id = $1`

	var d domain.CandidateDetail
	var skills, certs []string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.Email, &d.Phone, &d.LinkedIn, &d.City, &d.TotalExp,
		&skills, &certs,
		&d.RawText, &d.CreatedAt, &d.ResumeMIMEType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to fetch candidate: %w", err)
	}
	d.Skills = nonNil(skills)
	d.Certifications = nonNil(certs)
	d.HasResume = d.ResumeMIMEType != nil

	if d.Degrees, err = r.degrees(ctx, id); err != nil {
		return nil, err
	}
	if d.Experiences, err = r.experiences(ctx, id); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *candidateRepository) degrees(ctx context.Context, candidateID int64) ([]domain.Degree, error) {
	rows, err := r.db.Query(ctx, `
		SELECT co.name, d.degree_name, d.passed_out_year
		FROM degrees d JOIN colleges co ON co.id = d.college_id
		WHERE d.candidate_id = $1 ORDER BY d.position`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch degrees: %w", err)
	}
	defer rows.Close()

	out := []domain.Degree{}
	for rows.Next() {
		var d domain.Degree
		if err := rows.Scan(&d.CollegeName, &d.DegreeName, &d.PassedOutYear); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *candidateRepository) experiences(ctx context.Context, candidateID int64) ([]domain.Experience, error) {
	rows, err := r.db.Query(ctx, `
		SELECT co.name, e.role, e.total_years, e.description
		FROM experiences e JOIN companies co ON co.id = e.company_id
		WHERE e.candidate_id = $1 ORDER BY e.position`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch experiences: %w", err)
	}
	defer rows.Close()

	out := []domain.Experience{}
	for rows.Next() {
		var e domain.Experience
		if err := rows.Scan(&e.CompanyName, &e.Role, &e.TotalYears, &e.Description); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *candidateRepository) GetResumeFile(ctx context.Context, candidateID int64) (*domain.ResumeFile, error) {
	query := `
		SELECT rf.filename, rf.mime_type, rf.content
		FROM candidates c
		LEFT JOIN resume_files rf ON rf.candidate_id = c.id
		WHERE c.id = $1`

	var filename, mimeType *string
	var content []byte
	err := r.db.QueryRow(ctx, query, candidateID).Scan(&filename, &mimeType, &content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to fetch resume file: %w", err)
	}
	if mimeType == nil {
		return nil, domain.ErrResumeFileNotFound
	}

	file := &domain.ResumeFile{MIMEType: *mimeType, Content: content}
	if filename != nil {
		file.Filename = *filename
	}
	return file, nil
}

// List returns candidates matching every set constraint of filter, ordered by id.
// Experience bounds are inclusive; skills match when any key is held.
func (r *candidateRepository) List(ctx context.Context, filter domain.CandidateFilter) ([]domain.CandidateRow, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.MinExp != nil {
		conditions = append(conditions, fmt.Sprintf("c.total_exp >= $%d", argIndex))
		args = append(args, *filter.MinExp)
		argIndex++
	}
	if filter.MaxExp != nil {
		conditions = append(conditions, fmt.Sprintf("c.total_exp <= $%d", argIndex))
		args = append(args, *filter.MaxExp)
		argIndex++
	}
	if filter.City != "" {
		conditions = append(conditions, fmt.Sprintf("lower(%s) = lower($%d)", cityDisplay, argIndex))
		args = append(args, filter.City)
		argIndex++
	}
	if len(filter.SkillKeys) > 0 {
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM candidate_skills fs JOIN skills sk ON sk.id = fs.skill_id
			WHERE fs.candidate_id = c.id AND sk.name_key = ANY($%d::text[]))`, argIndex))
		args = append(args, filter.SkillKeys)
		argIndex++
	}

	query := `SELECT ` + candidateColumns + ` FROM candidates c`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY c.id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	out := []domain.CandidateRow{}
	for rows.Next() {
		var row domain.CandidateRow
		var skills, certs []string
		if err := rows.Scan(
			&row.ID, &row.Name, &row.Email, &row.Phone, &row.LinkedIn, &row.City, &row.TotalExp,
			&skills, &certs,
		); err != nil {
			return nil, err
		}
		row.Skills = nonNil(skills)
		row.Certifications = nonNil(certs)
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListSkillNames returns the display names of skills held by at least one candidate
func (r *candidateRepository) ListSkillNames(ctx context.Context) ([]string, error) {
	return r.queryStrings(ctx, `
		SELECT s.name FROM skills s
		WHERE EXISTS (SELECT 1 FROM candidate_skills cs WHERE cs.skill_id = s.id)
		ORDER BY s.name`)
}

func (r *candidateRepository) ListCities(ctx context.Context) ([]string, error) {
	return r.queryStrings(ctx, `
		SELECT MIN(`+cityDisplay+`) FROM candidates c
		WHERE c.city IS NOT NULL AND btrim(c.city) <> ''
		GROUP BY lower(`+cityDisplay+`)`)
}

func (r *candidateRepository) queryStrings(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query values: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *candidateRepository) SkillCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.name, COUNT(DISTINCT cs.candidate_id)
		FROM skills s JOIN candidate_skills cs ON cs.skill_id = s.id
		GROUP BY s.id, s.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to count skills: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, rows.Err()
}

func (r *candidateRepository) ExperienceCounts(ctx context.Context) (map[float64]int, error) {
	rows, err := r.db.Query(ctx, `SELECT total_exp, COUNT(*) FROM candidates GROUP BY total_exp`)
	if err != nil {
		return nil, fmt.Errorf("failed to count experience: %w", err)
	}
	defer rows.Close()

	counts := make(map[float64]int)
	for rows.Next() {
		var years float64
		var n int
		if err := rows.Scan(&years, &n); err != nil {
			return nil, err
		}
		counts[years] = n
	}
	return counts, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
