package models

import (
	"time"

	"github.com/google/uuid"
)

// Статусы заявки
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusClosed    = "closed"
)

// Источники заявки
const (
	LeadSourceOrganic = "organic"
	LeadSourceTipper  = "tipper"
)

// Lead представляет заявку покупателя по конкретному объявлению
type Lead struct {
	ID         uuid.UUID  `json:"id"`
	ListingID  uuid.UUID  `json:"listing_id"`
	FromUserID *uuid.UUID `json:"from_user_id"`
	Name       *string    `json:"name"`
	Email      *string    `json:"email"`
	Phone      *string    `json:"phone"`
	City       *string    `json:"city"`
	Message    *string    `json:"message"`
	Status     string     `json:"status"`
	SourceType string     `json:"source_type"`
	SourceID   *uuid.UUID `json:"source_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Владелец объявления, нужен для проверки доступа
	ListingDealerID uuid.UUID `json:"-"`
}

// LeadUpdate содержит частичное обновление заявки.
// nil означает «поле не меняется».
type LeadUpdate struct {
	Name       *string    `json:"name,omitempty"`
	Email      *string    `json:"email,omitempty"`
	Phone      *string    `json:"phone,omitempty"`
	City       *string    `json:"city,omitempty"`
	Message    *string    `json:"message,omitempty"`
	Status     *string    `json:"status,omitempty"`
	SourceType *string    `json:"source_type,omitempty"`
	SourceID   *uuid.UUID `json:"source_id,omitempty"`
}
