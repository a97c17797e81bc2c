package jobs

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hirelens/jobsearch/internal/domain"
)

// jobDoc is the stored JSON shape of a job. Status flags are strings because
// the FT index declares them as TAG fields, and timestamps are unix millis so
// created_at can be a SORTABLE NUMERIC. search_text is the precomposed
// embedding input, doubling as the BM25 corpus.
type jobDoc struct {
	ID                 string   `json:"id"`
	Title              string   `json:"job_title"`
	Company            string   `json:"company,omitempty"`
	Location           string   `json:"location,omitempty"`
	SalaryMin          *float64 `json:"salary_min,omitempty"`
	SalaryMax          *float64 `json:"salary_max,omitempty"`
	SalaryCurrency     string   `json:"salary_currency,omitempty"`
	JobType            string   `json:"job_type"`
	ExperienceRequired string   `json:"experience_required,omitempty"`
	KeySkills          []string `json:"key_skills,omitempty"`
	Description        string   `json:"description,omitempty"`
	Requirements       string   `json:"requirements,omitempty"`
	IsActive           string   `json:"is_active"`
	IsDeleted          string   `json:"is_deleted"`
	CreatedAt          int64    `json:"created_at"`
	UpdatedAt          int64    `json:"updated_at"`

	SearchText string    `json:"search_text"`
	Vector     []float32 `json:"vector,omitempty"`
}

func docFromJob(j *domain.Job) *jobDoc {
	return &jobDoc{
		ID:                 j.ID,
		Title:              j.Title,
		Company:            j.Company,
		Location:           j.Location,
		SalaryMin:          j.SalaryMin,
		SalaryMax:          j.SalaryMax,
		SalaryCurrency:     j.SalaryCurrency,
		JobType:            string(j.JobType),
		ExperienceRequired: j.ExperienceRequired,
		KeySkills:          j.KeySkills,
		Description:        j.Description,
		Requirements:       j.Requirements,
		IsActive:           boolTag(j.IsActive),
		IsDeleted:          boolTag(j.IsDeleted),
		CreatedAt:          j.CreatedAt.UnixMilli(),
		UpdatedAt:          j.UpdatedAt.UnixMilli(),
		SearchText:         j.EmbeddingText(),
		Vector:             j.Vector,
	}
}

func (d *jobDoc) toJob() domain.Job {
	return domain.Job{
		ID:                 d.ID,
		Title:              d.Title,
		Company:            d.Company,
		Location:           d.Location,
		SalaryMin:          d.SalaryMin,
		SalaryMax:          d.SalaryMax,
		SalaryCurrency:     d.SalaryCurrency,
		JobType:            domain.JobType(d.JobType),
		ExperienceRequired: d.ExperienceRequired,
		KeySkills:          d.KeySkills,
		Description:        d.Description,
		Requirements:       d.Requirements,
		IsActive:           d.IsActive == "true",
		IsDeleted:          d.IsDeleted == "true",
		CreatedAt:          time.UnixMilli(d.CreatedAt).UTC(),
		UpdatedAt:          time.UnixMilli(d.UpdatedAt).UTC(),
		Vector:             d.Vector,
	}
}

// parseJob decodes a JSON.GET payload. JSONPath "$" replies wrap the document
// in a one-element array.
func parseJob(raw []byte) (domain.Job, error) {
	var docs []jobDoc
	if err := json.Unmarshal(raw, &docs); err != nil || len(docs) == 0 {
		var d jobDoc
		if err2 := json.Unmarshal(raw, &d); err2 != nil {
			return domain.Job{}, fmt.Errorf("unmarshal job: %w", err2)
		}
		return d.toJob(), nil
	}
	return docs[0].toJob(), nil
}

func boolTag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
