package models

import (
	"time"

	"github.com/google/uuid"
)

// Listing представляет автомобиль, выставленный дилером на продажу или в аренду.
// Поля-указатели соответствуют колонкам, допускающим NULL.
type Listing struct {
	ID               uuid.UUID `json:"id" db:"id"`
	DealerID         uuid.UUID `json:"dealer_id" db:"dealer_id"`
	Make             string    `json:"make" db:"make"`
	Model            string    `json:"model" db:"model"`
	Year             *int      `json:"year" db:"year"`
	Price            *float64  `json:"price" db:"price"`
	Mileage          *int      `json:"mileage" db:"mileage"`
	FuelType         *string   `json:"fuel_type" db:"fuel_type"`
	Transmission     *string   `json:"transmission" db:"transmission"`
	Condition        string    `json:"condition" db:"condition"`
	BodyType         *string   `json:"body_type" db:"body_type"`
	Status           string    `json:"status" db:"status"`
	ListingType      string    `json:"listing_type" db:"listing_type"`
	RentalStatus     *string   `json:"rental_status" db:"rental_status"`
	RentalDailyPrice *float64  `json:"rental_daily_price" db:"rental_daily_price"`
	ExteriorColor    *string   `json:"exterior_color" db:"exterior_color"`
	InteriorColor    *string   `json:"interior_color" db:"interior_color"`
	Engine           *string   `json:"engine" db:"engine"`
	VIN              *string   `json:"vin" db:"vin"`
	LocationCity     *string   `json:"location_city" db:"location_city"`
	LocationCountry  *string   `json:"location_country" db:"location_country"`
	Images           []string  `json:"images" db:"images"`
	Features         []string  `json:"features" db:"features"`
	Description      *string   `json:"description" db:"description"`
	SellerName       *string   `json:"seller_name" db:"seller_name"`
	IsPublic         bool      `json:"is_public" db:"is_public"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// ResultPage конверт ответа поиска по складу
type ResultPage struct {
	Data    []Listing           `json:"data"`
	Count   int                 `json:"count"`
	Page    int                 `json:"page"`
	Limit   int                 `json:"limit"`
	Error   string              `json:"error,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}
