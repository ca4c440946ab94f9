package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusAvailable   = "available"
	StatusUnavailable = "unavailable"
)

// ValidStatus reports whether s is one of the two availability states.
func ValidStatus(s string) bool {
	return s == StatusAvailable || s == StatusUnavailable
}

type Car struct {
	ID            uuid.UUID              `json:"id"`
	CarName       string                 `json:"carName"`
	ProviderEmail string                 `json:"providerEmail"`
	PricePerDay   float64                `json:"pricePerDay"`
	Status        string                 `json:"status"`
	Description   *string                `json:"description,omitempty"`
	ImageURL      *string                `json:"imageUrl,omitempty"`
	Details       map[string]interface{} `json:"details,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// CarPatch carries a partial update; nil fields are left untouched.
// Provider email and id are deliberately absent: neither is patchable.
type CarPatch struct {
	CarName     *string                `json:"carName"`
	PricePerDay *float64               `json:"pricePerDay"`
	Status      *string                `json:"status"`
	Description *string                `json:"description"`
	ImageURL    *string                `json:"imageUrl"`
	Details     map[string]interface{} `json:"details"`
}

func (p *CarPatch) Empty() bool {
	return p.CarName == nil && p.PricePerDay == nil && p.Status == nil &&
		p.Description == nil && p.ImageURL == nil && len(p.Details) == 0
}
