package models

import "time"

// JobStatus represents the status of a conversion job.
type JobStatus string

const (
	JobStatusPending  JobStatus = "pending"
	JobStatusRunning  JobStatus = "running"
	JobStatusComplete JobStatus = "complete"
	JobStatusError    JobStatus = "error"
)

// ConversionJob tracks an asynchronous batch conversion.
type ConversionJob struct {
	ID          string             `json:"id" msgpack:"id"`
	Status      JobStatus          `json:"status" msgpack:"status"`
	Progress    float64            `json:"progress" msgpack:"progress"` // 0-100
	Total       int                `json:"total" msgpack:"total"`
	Done        int                `json:"done" msgpack:"done"`
	Layout      bool               `json:"layout" msgpack:"layout"`
	Reports     []ConversionReport `json:"reports" msgpack:"reports"`
	Error       string             `json:"error,omitempty" msgpack:"error,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" msgpack:"createdAt"`
	CompletedAt *time.Time         `json:"completedAt,omitempty" msgpack:"completedAt,omitempty"`
}

// NewConversionJob creates a job in pending status.
func NewConversionJob(id string, total int) *ConversionJob {
	return &ConversionJob{
		ID:        id,
		Status:    JobStatusPending,
		Total:     total,
		Reports:   make([]ConversionReport, 0, total),
		CreatedAt: time.Now(),
	}
}

// Finished reports whether the job reached a terminal status.
func (j *ConversionJob) Finished() bool {
	return j.Status == JobStatusComplete || j.Status == JobStatusError
}
