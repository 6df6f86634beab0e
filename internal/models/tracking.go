package models

import (
	"time"

	"github.com/google/uuid"
)

// SearchEvent запись о выполненном поиске, по ним считаются популярные машины
type SearchEvent struct {
	ID               uuid.UUID         `json:"id"`
	SessionID        uuid.UUID         `json:"session_id"`
	MakeID           *uuid.UUID        `json:"make_id"`
	ModelID          *uuid.UUID        `json:"model_id"`
	Filters          map[string]string `json:"filters"`
	ClickedListingID *uuid.UUID        `json:"clicked_listing_id"`
	CreatedAt        time.Time         `json:"created_at"`
}
