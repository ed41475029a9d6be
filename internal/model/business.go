package model

import "github.com/google/uuid"

type BusinessStatus string

const (
	BusinessStatusPending  BusinessStatus = "pending"
	BusinessStatusApproved BusinessStatus = "approved"
	BusinessStatusRejected BusinessStatus = "rejected"
)

type Business struct {
	Base
	OwnerID     uuid.UUID      `db:"owner_id" json:"owner_id"`
	Name        string         `db:"name" json:"name"`
	Description string         `db:"description" json:"description"`
	Website     string         `db:"website" json:"website"`
	Location    string         `db:"location" json:"location"`
	Status      BusinessStatus `db:"status" json:"status"`
}

type CreateBusinessRequest struct {
	OwnerID     string `json:"owner_id" binding:"required,uuid"`
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
	Website     string `json:"website" binding:"omitempty,url"`
	Location    string `json:"location"`
}

type ModerateBusinessRequest struct {
	Reason string `json:"reason"`
}
