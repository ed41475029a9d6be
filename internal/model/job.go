package model

import "github.com/google/uuid"

type JobStatus string

const (
	JobStatusPending  JobStatus = "pending"
	JobStatusApproved JobStatus = "approved"
	JobStatusRejected JobStatus = "rejected"
	JobStatusClosed   JobStatus = "closed"
)

type Job struct {
	Base
	BusinessID  uuid.UUID `db:"business_id" json:"business_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Location    string    `db:"location" json:"location"`
	SalaryRange string    `db:"salary_range" json:"salary_range"`
	Status      JobStatus `db:"status" json:"status"`
}

type CreateJobRequest struct {
	BusinessID  string `json:"business_id" binding:"required,uuid"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location"`
	SalaryRange string `json:"salary_range"`
}

type ModerateJobRequest struct {
	Reason string `json:"reason"`
}
