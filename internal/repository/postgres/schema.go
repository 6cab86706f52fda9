package postgres

import (
	"context"
	"fmt"

	"go-resume-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// dictionaryTables share the (id, name, name_key) layout
var dictionaryTables = []string{"skills", "certifications", "companies", "colleges"}

var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS candidates (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL CHECK (btrim(name) <> ''),
		email      TEXT,
		phone      TEXT,
		linkedin   TEXT,
		city       TEXT,
		total_exp  DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (total_exp >= 0),
		raw_text   TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_candidates_city_key ON candidates (lower(regexp_replace(btrim(city), '\s+', ' ', 'g')))`,
	`CREATE INDEX IF NOT EXISTS idx_candidates_total_exp ON candidates (total_exp)`,
	`CREATE TABLE IF NOT EXISTS resume_files (
		candidate_id BIGINT PRIMARY KEY REFERENCES candidates(id) ON DELETE CASCADE,
		filename     TEXT NOT NULL,
		mime_type    TEXT NOT NULL,
		content      BYTEA NOT NULL
	)`,
	dictionaryDDL("skills"),
	dictionaryDDL("certifications"),
	dictionaryDDL("companies"),
	dictionaryDDL("colleges"),
	`CREATE TABLE IF NOT EXISTS candidate_skills (
		candidate_id BIGINT NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
		skill_id     BIGINT NOT NULL REFERENCES skills(id),
		position     INT    NOT NULL,
		PRIMARY KEY (candidate_id, skill_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_candidate_skills_skill ON candidate_skills (skill_id)`,
	`CREATE TABLE IF NOT EXISTS candidate_certifications (
		candidate_id     BIGINT NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
		certification_id BIGINT NOT NULL REFERENCES certifications(id),
		position         INT    NOT NULL,
		PRIMARY KEY (candidate_id, certification_id)
	)`,
	`CREATE TABLE IF NOT EXISTS degrees (
		id              BIGSERIAL PRIMARY KEY,
		candidate_id    BIGINT NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
		college_id      BIGINT NOT NULL REFERENCES colleges(id),
		degree_name     TEXT,
		passed_out_year INT,
		position        INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS experiences (
		id           BIGSERIAL PRIMARY KEY,
		candidate_id BIGINT NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
		company_id   BIGINT NOT NULL REFERENCES companies(id),
		role         TEXT,
		total_years  DOUBLE PRECISION CHECK (total_years IS NULL OR total_years >= 0),
		description  TEXT,
		position     INT NOT NULL
	)`,
}

// dropOrder lists tables children first
var dropOrder = []string{
	"experiences", "degrees", "candidate_certifications", "candidate_skills",
	"resume_files", "candidates", "colleges", "companies", "certifications", "skills",
}

func dictionaryDDL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id       BIGSERIAL PRIMARY KEY,
		name     TEXT NOT NULL,
		name_key TEXT NOT NULL UNIQUE
	)`, table)
}

type schemaManager struct {
	db *pgxpool.Pool
}

func NewSchemaManager(db *pgxpool.Pool) domain.SchemaManager {
	return &schemaManager{db: db}
}

// EnsureSchema creates missing tables and indexes inside one transaction
func (m *schemaManager) EnsureSchema(ctx context.Context) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range createStatements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// RecreateSchema drops every table and recreates the schema. All data is lost.
func (m *schemaManager) RecreateSchema(ctx context.Context) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range dropOrder {
		if _, err := tx.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", pq.QuoteIdentifier(table))); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	for _, stmt := range createStatements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return tx.Commit(ctx)
}
