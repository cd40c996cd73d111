package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxJobTitleLen   = 255
	maxJobCompanyLen = 255
	maxJobDescLen    = 20000
)

// JobStatus is the lifecycle state of a posting.
type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

// Valid reports whether the job status is supported.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusOpen, JobStatusClosed:
		return true
	default:
		return false
	}
}

// EmploymentType categorizes a posting.
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full_time"
	EmploymentPartTime EmploymentType = "part_time"
	EmploymentContract EmploymentType = "contract"
	EmploymentIntern   EmploymentType = "internship"
)

// Valid reports whether the employment type is supported.
func (t EmploymentType) Valid() bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentIntern:
		return true
	default:
		return false
	}
}

// Job represents an employer's job posting.
type Job struct {
	ID             string         `json:"id"                   db:"id"`
	EmployerID     string         `json:"employer_id"          db:"employer_id"`
	Title          string         `json:"title"                db:"title"`
	Company        string         `json:"company"              db:"company"`
	Description    string         `json:"description"          db:"description"`
	Location       string         `json:"location"             db:"location"`
	SalaryMin      *int           `json:"salary_min,omitempty" db:"salary_min"`
	SalaryMax      *int           `json:"salary_max,omitempty" db:"salary_max"`
	EmploymentType EmploymentType `json:"employment_type"      db:"employment_type"`
	Status         JobStatus      `json:"status"               db:"status"`
	CreatedAt      time.Time      `json:"created_at"           db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"           db:"updated_at"`
}

// JobsListOptions controls paging and filtering for listing jobs.
// Sort supports "created_at" and "title"; Dir supports "asc"/"desc".
type JobsListOptions struct {
	Limit          int
	Offset         int
	Q              *string         // substring match on title (ILIKE)
	Location       *string         // substring match on location (ILIKE)
	EmploymentType *EmploymentType // exact match
	Status         *JobStatus      // exact match
	EmployerID     *string         // exact match
	Sort           string
	Dir            string
}

// CreateJobRequest represents parameters to create a Job.
type CreateJobRequest struct {
	Title          string         `json:"title"`
	Company        string         `json:"company"`
	Description    string         `json:"description"`
	Location       string         `json:"location"`
	SalaryMin      *int           `json:"salary_min,omitempty"`
	SalaryMax      *int           `json:"salary_max,omitempty"`
	EmploymentType EmploymentType `json:"employment_type"`
}

// UpdateJobRequest represents parameters to update a Job.
type UpdateJobRequest struct {
	Title          *string         `json:"title,omitempty"`
	Company        *string         `json:"company,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Location       *string         `json:"location,omitempty"`
	SalaryMin      *int            `json:"salary_min,omitempty"`
	SalaryMax      *int            `json:"salary_max,omitempty"`
	EmploymentType *EmploymentType `json:"employment_type,omitempty"`
	Status         *JobStatus      `json:"status,omitempty"`
}

// Validate validates CreateJobRequest.
func (r *CreateJobRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxJobTitleLen {
		return errors.New("title cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.Company) == "" {
		return errors.New("company is required")
	}
	if utf8.RuneCountInString(r.Company) > maxJobCompanyLen {
		return errors.New("company cannot exceed 255 characters")
	}
	if utf8.RuneCountInString(r.Description) > maxJobDescLen {
		return errors.New("description cannot exceed 20000 characters")
	}
	if r.EmploymentType == "" {
		r.EmploymentType = EmploymentFullTime
	}
	if !r.EmploymentType.Valid() {
		return errors.New("employment_type must be one of full_time, part_time, contract, internship")
	}
	return validateSalaryRange(r.SalaryMin, r.SalaryMax)
}

// Validate validates UpdateJobRequest.
func (r *UpdateJobRequest) Validate() error {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			return errors.New("title cannot be empty")
		}
		if utf8.RuneCountInString(title) > maxJobTitleLen {
			return errors.New("title cannot exceed 255 characters")
		}
	}
	if r.Company != nil && strings.TrimSpace(*r.Company) == "" {
		return errors.New("company cannot be empty")
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) > maxJobDescLen {
		return errors.New("description cannot exceed 20000 characters")
	}
	if r.EmploymentType != nil && !r.EmploymentType.Valid() {
		return errors.New("employment_type must be one of full_time, part_time, contract, internship")
	}
	if r.Status != nil && !r.Status.Valid() {
		return errors.New("status must be one of open, closed")
	}
	return validateSalaryRange(r.SalaryMin, r.SalaryMax)
}

func validateSalaryRange(minSalary, maxSalary *int) error {
	if minSalary != nil && *minSalary < 0 {
		return errors.New("salary_min cannot be negative")
	}
	if maxSalary != nil && *maxSalary < 0 {
		return errors.New("salary_max cannot be negative")
	}
	if minSalary != nil && maxSalary != nil && *maxSalary < *minSalary {
		return errors.New("salary_max cannot be below salary_min")
	}
	return nil
}
