package domain

import (
	"context"
	"time"
)

// Declared mime types accepted for resume uploads
const (
	MIMETypePDF  = "application/pdf"
	MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Candidate is the canonical structured record of one parsed resume.
type Candidate struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name" validate:"required,max=512,collapsed"`
	Email          *string      `json:"email"`
	Phone          *string      `json:"phone"`
	LinkedIn       *string      `json:"linkedin"`
	City           *string      `json:"city"`
	TotalExp       float64      `json:"total_exp" validate:"gte=0"`
	Skills         []string     `json:"skills" validate:"unique,dive,required,collapsed"`
	Certifications []string     `json:"certifications" validate:"unique,dive,required,collapsed"`
	Degrees        []Degree     `json:"degrees" validate:"dive"`
	Experiences    []Experience `json:"experiences" validate:"dive"`
	RawFile        *ResumeFile  `json:"-"`
	RawText        string       `json:"raw_text,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// Degree is an education entry of a candidate
type Degree struct {
	CollegeName   string  `json:"college_name" validate:"required,collapsed"`
	DegreeName    *string `json:"degree_name"`
	PassedOutYear *int    `json:"passed_out_year" validate:"omitempty,max_current_year"`
}

// Experience is a work history entry of a candidate
type Experience struct {
	CompanyName string   `json:"company_name" validate:"required,collapsed"`
	Role        *string  `json:"role"`
	TotalYears  *float64 `json:"total_years" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
}

// ResumeFile is the original uploaded document stored alongside the candidate
type ResumeFile struct {
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type"`
	Content  []byte `json:"-"`
}

// CandidateRow is the flattened shape served to the candidates table view
type CandidateRow struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Email          *string  `json:"email"`
	Phone          *string  `json:"phone"`
	LinkedIn       *string  `json:"linkedin"`
	TotalExp       float64  `json:"total_exp"`
	City           *string  `json:"city"`
	Skills         []string `json:"skills"`
	Certifications []string `json:"certifications"`
}

// CandidateDetail is the full record served by the detail view
type CandidateDetail struct {
	Candidate
	HasResume      bool    `json:"has_resume"`
	ResumeMIMEType *string `json:"resume_mime_type"`
}

// CandidateFilter holds the facet selection of the table view.
// Nil bounds and empty values mean "no constraint".
type CandidateFilter struct {
	MinExp *float64
	MaxExp *float64
	City   string
	// SkillKeys are canonical skill keys; a candidate matches when it has any of them
	SkillKeys []string
}

// FilterValues lists the distinct facet values for UI population
type FilterValues struct {
	Skills []string `json:"skills"`
	Cities []string `json:"cities"`
}

type CandidateRepository interface {
	Create(ctx context.Context, candidate *Candidate) (int64, error)
	GetByID(ctx context.Context, id int64) (*CandidateDetail, error)
	GetResumeFile(ctx context.Context, candidateID int64) (*ResumeFile, error)
	List(ctx context.Context, filter CandidateFilter) ([]CandidateRow, error)
	ListSkillNames(ctx context.Context) ([]string, error)
	ListCities(ctx context.Context) ([]string, error)
	SkillCounts(ctx context.Context) (map[string]int, error)
	// ExperienceCounts returns the number of candidates per distinct total_exp value
	ExperienceCounts(ctx context.Context) (map[float64]int, error)
}

// SchemaManager creates and resets the storage schema
type SchemaManager interface {
	EnsureSchema(ctx context.Context) error
	RecreateSchema(ctx context.Context) error
}

type CandidateUsecase interface {
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]CandidateRow, error)
	GetCandidate(ctx context.Context, id int64) (*CandidateDetail, error)
	GetResume(ctx context.Context, id int64) (*ResumeFile, error)
	GetFilters(ctx context.Context) (*FilterValues, error)
	GetAnalytics(ctx context.Context) (*Analytics, error)
}
