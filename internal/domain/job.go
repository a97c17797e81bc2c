package domain

import (
	"fmt"
	"strings"
	"time"
)

// JobType is the employment category of a listing.
type JobType string

// Supported employment categories.
const (
	FullTime   JobType = "full_time"
	PartTime   JobType = "part_time"
	Contract   JobType = "contract"
	Internship JobType = "internship"
	Freelance  JobType = "freelance"
)

// IsValid checks if the job type is one of the supported values.
func (t JobType) IsValid() bool {
	switch t {
	case FullTime, PartTime, Contract, Internship, Freelance:
		return true
	}
	return false
}

// Job is a single job listing. The embedding vector is regenerated whenever
// the text fields it derives from change; everything else is caller-supplied.
type Job struct {
	ID                 string
	Title              string
	Company            string
	Location           string
	SalaryMin          *float64
	SalaryMax          *float64
	SalaryCurrency     string
	JobType            JobType
	ExperienceRequired string
	KeySkills          []string
	Description        string
	Requirements       string
	IsActive           bool
	IsDeleted          bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Vector             []float32
}

// Validate checks the payload before persistence.
func (j *Job) Validate() error {
	if strings.TrimSpace(j.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !j.JobType.IsValid() {
		return fmt.Errorf("%w: unknown job type %q", ErrValidation, j.JobType)
	}
	if j.SalaryMin != nil && j.SalaryMax != nil && *j.SalaryMin > *j.SalaryMax {
		return fmt.Errorf("%w: salary_min exceeds salary_max", ErrValidation)
	}
	return nil
}

// EmbeddingText composes the text fed to the embedding model. The labelled
// structure gives the title and skills more weight than the long free-text
// fields, and HTML markup is stripped so tags don't pollute the vector.
func (j *Job) EmbeddingText() string {
	return fmt.Sprintf(
		"Job Title: %s. Company: %s. Location: %s. Required Skills: %s. Description: %s. Requirements: %s",
		j.Title,
		j.Company,
		j.Location,
		strings.Join(j.KeySkills, ", "),
		StripHTML(j.Description),
		StripHTML(j.Requirements),
	)
}

// TextFieldsEqual reports whether all fields contributing to EmbeddingText
// match, i.e. whether an update can keep the existing vector.
func (j *Job) TextFieldsEqual(other *Job) bool {
	if j.Title != other.Title || j.Company != other.Company || j.Location != other.Location {
		return false
	}
	if j.Description != other.Description || j.Requirements != other.Requirements {
		return false
	}
	if len(j.KeySkills) != len(other.KeySkills) {
		return false
	}
	for i := range j.KeySkills {
		if j.KeySkills[i] != other.KeySkills[i] {
			return false
		}
	}
	return true
}

// StripHTML removes markup from user-supplied rich text, collapsing the
// remainder to single-space-separated plain text.
func StripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.Join(strings.Fields(s), " ")
	}

	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			b.WriteByte(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
