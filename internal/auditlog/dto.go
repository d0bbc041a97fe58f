package auditlog

import (
	"time"

	"github.com/asavirtual/flightboard-backend/pkg/db/models"
	"github.com/asavirtual/flightboard-backend/pkg/enums"
	"github.com/google/uuid"
)

// EntryDTO is the transport shape for an action log entry.
type EntryDTO struct {
	ID            uuid.UUID       `json:"id"`
	Timestamp     time.Time       `json:"timestamp"`
	StaffUsername string          `json:"staff_username"`
	Action        enums.LogAction `json:"action"`
	TargetUser    string          `json:"target_user"`
	Reason        string          `json:"reason,omitempty"`
}

// CreateEntryDTO holds the data required by the repo to persist an entry.
type CreateEntryDTO struct {
	StaffUsername string
	Action        enums.LogAction
	TargetUser    string
	Reason        string
}

func FromModel(e *models.ActionLog) *EntryDTO {
	if e == nil {
		return nil
	}
	return &EntryDTO{
		ID:            e.ID,
		Timestamp:     e.Timestamp,
		StaffUsername: e.StaffUsername,
		Action:        e.Action,
		TargetUser:    e.TargetUser,
		Reason:        e.Reason,
	}
}

func (c CreateEntryDTO) ToModel() *models.ActionLog {
	return &models.ActionLog{
		StaffUsername: c.StaffUsername,
		Action:        c.Action,
		TargetUser:    c.TargetUser,
		Reason:        c.Reason,
	}
}
