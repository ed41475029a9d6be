package model

import "github.com/google/uuid"

type ApplicationStatus string

const (
	ApplicationStatusSubmitted ApplicationStatus = "submitted"
	ApplicationStatusReviewed  ApplicationStatus = "reviewed"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
)

type Application struct {
	Base
	JobID       uuid.UUID         `db:"job_id" json:"job_id"`
	ApplicantID uuid.UUID         `db:"applicant_id" json:"applicant_id"`
	CoverLetter string            `db:"cover_letter" json:"cover_letter"`
	ResumeURL   string            `db:"resume_url" json:"resume_url"`
	Status      ApplicationStatus `db:"status" json:"status"`
}

type CreateApplicationRequest struct {
	JobID       string `json:"job_id" binding:"required,uuid"`
	ApplicantID string `json:"applicant_id" binding:"required,uuid"`
	CoverLetter string `json:"cover_letter"`
	ResumeURL   string `json:"resume_url" binding:"omitempty,url"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=reviewed accepted rejected"`
}
