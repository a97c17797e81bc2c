package httpapi

import (
	"time"

	"github.com/hirelens/jobsearch/internal/domain"
	"github.com/hirelens/jobsearch/internal/usecase/search"
)

// jobPayload is the request body for create, update, and batch items.
// IsActive defaults to true when omitted.
type jobPayload struct {
	Title              string   `json:"job_title"`
	Company            string   `json:"company"`
	Location           string   `json:"location"`
	SalaryMin          *float64 `json:"salary_min"`
	SalaryMax          *float64 `json:"salary_max"`
	SalaryCurrency     string   `json:"salary_currency"`
	JobType            string   `json:"job_type"`
	ExperienceRequired string   `json:"experience_required"`
	KeySkills          []string `json:"key_skills"`
	Description        string   `json:"description"`
	Requirements       string   `json:"requirements"`
	IsActive           *bool    `json:"is_active"`
}

func (p *jobPayload) toJob() domain.Job {
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	return domain.Job{
		Title:              p.Title,
		Company:            p.Company,
		Location:           p.Location,
		SalaryMin:          p.SalaryMin,
		SalaryMax:          p.SalaryMax,
		SalaryCurrency:     p.SalaryCurrency,
		JobType:            domain.JobType(p.JobType),
		ExperienceRequired: p.ExperienceRequired,
		KeySkills:          p.KeySkills,
		Description:        p.Description,
		Requirements:       p.Requirements,
		IsActive:           active,
	}
}

// jobResponse is the API representation of a job record.
type jobResponse struct {
	ID                 string    `json:"id"`
	Title              string    `json:"job_title"`
	Company            string    `json:"company"`
	Location           string    `json:"location"`
	SalaryMin          *float64  `json:"salary_min,omitempty"`
	SalaryMax          *float64  `json:"salary_max,omitempty"`
	SalaryCurrency     string    `json:"salary_currency"`
	JobType            string    `json:"job_type"`
	ExperienceRequired string    `json:"experience_required,omitempty"`
	KeySkills          []string  `json:"key_skills"`
	Description        string    `json:"description"`
	Requirements       string    `json:"requirements,omitempty"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func toJobResponse(j *domain.Job) jobResponse {
	skills := j.KeySkills
	if skills == nil {
		skills = []string{}
	}
	return jobResponse{
		ID:                 j.ID,
		Title:              j.Title,
		Company:            j.Company,
		Location:           j.Location,
		SalaryMin:          j.SalaryMin,
		SalaryMax:          j.SalaryMax,
		SalaryCurrency:     j.SalaryCurrency,
		JobType:            string(j.JobType),
		ExperienceRequired: j.ExperienceRequired,
		KeySkills:          skills,
		Description:        j.Description,
		Requirements:       j.Requirements,
		IsActive:           j.IsActive,
		CreatedAt:          j.CreatedAt.UTC(),
		UpdatedAt:          j.UpdatedAt.UTC(),
	}
}

// searchHit is one ranked result. Score is the mode-native ranking value;
// similarity and distance appear only for vector-sourced hits.
type searchHit struct {
	jobResponse
	Score      float64  `json:"score"`
	Similarity *float64 `json:"similarity,omitempty"`
	Distance   *float64 `json:"distance,omitempty"`
}

// pagedResponse is the shared pagination envelope.
type pagedResponse struct {
	Query           string `json:"query,omitempty"`
	Mode            string `json:"mode,omitempty"`
	Page            int    `json:"page"`
	PageSize        int    `json:"page_size"`
	TotalResults    int    `json:"total_results"`
	TotalPages      int    `json:"total_pages"`
	HasNext         bool   `json:"has_next"`
	HasPrevious     bool   `json:"has_previous"`
	SemanticResults *int   `json:"semantic_results,omitempty"`
	KeywordResults  *int   `json:"keyword_results,omitempty"`
	Results         any    `json:"results"`
}

func searchEnvelope(query string, resp *search.Response, includeMode bool) pagedResponse {
	hits := make([]searchHit, len(resp.Items))
	for i := range resp.Items {
		hits[i] = searchHit{
			jobResponse: toJobResponse(&resp.Items[i].Job),
			Score:       resp.Items[i].Score,
			Similarity:  resp.Items[i].Similarity,
			Distance:    resp.Items[i].Distance,
		}
	}

	env := pagedResponse{
		Query:        query,
		Page:         resp.Meta.Page,
		PageSize:     resp.Meta.PageSize,
		TotalResults: resp.Meta.TotalResults,
		TotalPages:   resp.Meta.TotalPages,
		HasNext:      resp.Meta.HasNext,
		HasPrevious:  resp.Meta.HasPrevious,
		Results:      hits,
	}
	if includeMode {
		env.Mode = string(resp.Mode)
		semantic, keyword := resp.SemanticCount, resp.KeywordCount
		env.SemanticResults = &semantic
		env.KeywordResults = &keyword
	}
	return env
}
