package models

// IntentFilters частичный набор фильтров, извлеченный языковой моделью
// из свободного текста. Отсутствующее поле равно nil.
type IntentFilters struct {
	Make         *string `json:"make,omitempty"`
	Model        *string `json:"model,omitempty"`
	BodyType     *string `json:"body_type,omitempty"`
	FuelType     *string `json:"fuel_type,omitempty"`
	Transmission *string `json:"transmission,omitempty"`
	Condition    *string `json:"condition,omitempty"`
	YearMin      *int    `json:"year_min,omitempty"`
	YearMax      *int    `json:"year_max,omitempty"`
	PriceMin     *int    `json:"price_min,omitempty"`
	PriceMax     *int    `json:"price_max,omitempty"`
	MileageMin   *int    `json:"mileage_min,omitempty"`
	MileageMax   *int    `json:"mileage_max,omitempty"`
}

// IntentResult ответ эндпоинта разбора запроса
type IntentResult struct {
	Success       bool           `json:"success"`
	ParsedFilters *IntentFilters `json:"parsed_filters"`
	Confidence    float64        `json:"confidence"`
}
