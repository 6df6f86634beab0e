package models

import "github.com/google/uuid"

// CarMake представляет марку автомобиля из справочника
type CarMake struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

// CarModel представляет модель, принадлежащую марке
type CarModel struct {
	ID     uuid.UUID `json:"id" db:"id"`
	MakeID uuid.UUID `json:"make_id" db:"make_id"`
	Name   string    `json:"name" db:"name"`
}
