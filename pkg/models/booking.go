package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID         uuid.UUID              `json:"id"`
	CarID      *uuid.UUID             `json:"carId,omitempty"`
	UserEmail  string                 `json:"userEmail"`
	StartDate  *time.Time             `json:"startDate,omitempty"`
	EndDate    *time.Time             `json:"endDate,omitempty"`
	TotalPrice float64                `json:"totalPrice"`
	Details    map[string]interface{} `json:"details,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
}

// BookingPatch carries a partial update; nil fields are left untouched.
// The owning email is not patchable, it is fixed at creation.
type BookingPatch struct {
	StartDate  *time.Time             `json:"startDate"`
	EndDate    *time.Time             `json:"endDate"`
	TotalPrice *float64               `json:"totalPrice"`
	Details    map[string]interface{} `json:"details"`
}

func (p *BookingPatch) Empty() bool {
	return p.StartDate == nil && p.EndDate == nil && p.TotalPrice == nil && len(p.Details) == 0
}
