package inventory

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// AnyValue значение фильтра «без ограничения»
const AnyValue = "Any"

// Значения по умолчанию для пагинации и сортировки
const (
	DefaultPage      = 1
	DefaultLimit     = 24
	MaxLimit         = 100
	DefaultSortBy    = "created_at"
	DefaultSortOrder = "desc"
)

var (
	conditionValues    = []string{"new", "used", AnyValue}
	statusValues       = []string{"available", "reserved", "sold", AnyValue}
	listingTypeValues  = []string{"sale", "rent", "both", AnyValue}
	rentalStatusValues = []string{"available", "rented", "maintenance", AnyValue}
	sortByValues       = []string{"price", "year", "mileage", "created_at", "make", "model", "condition", "status"}
	sortOrderValues    = []string{"asc", "desc"}
)

// QueryParams проверенные и приведенные к типам параметры поиска.
// nil в числовом поле означает, что граница не задана.
type QueryParams struct {
	Make            string
	Model           string
	FuelType        string
	Transmission    string
	BodyType        string
	ExteriorColor   string
	InteriorColor   string
	Engine          string
	VIN             string
	LocationCity    string
	LocationCountry string

	Condition    string
	Status       string
	ListingType  string
	RentalStatus string

	YearFrom   *int
	YearTo     *int
	PriceMin   *float64
	PriceMax   *float64
	MileageMin *float64
	MileageMax *float64

	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// ValidationError перечисляет все некорректные поля запроса
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return "invalid query parameters: " + strings.Join(parts, ", ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// field описывает один параметр схемы: ключ в строке запроса и
// функцию, которая приводит сырое значение и записывает его в QueryParams.
type field struct {
	key   string
	apply func(p *QueryParams, raw string) string
}

// check проверяет число и возвращает текст ошибки или пустую строку
type check func(v float64) string

func nonNegative(v float64) string {
	if v < 0 {
		return "Number must be greater than or equal to 0"
	}
	return ""
}

func positive(v float64) string {
	if v <= 0 {
		return "Number must be greater than 0"
	}
	return ""
}

func between(min, max float64) check {
	return func(v float64) string {
		if v < min {
			return "Number must be greater than or equal to " + strconv.FormatFloat(min, 'f', -1, 64)
		}
		if v > max {
			return "Number must be less than or equal to " + strconv.FormatFloat(max, 'f', -1, 64)
		}
		return ""
	}
}

func stringField(key string, target func(p *QueryParams) *string) field {
	return field{key: key, apply: func(p *QueryParams, raw string) string {
		*target(p) = raw
		return ""
	}}
}

func enumField(key string, allowed []string, target func(p *QueryParams) *string) field {
	return field{key: key, apply: func(p *QueryParams, raw string) string {
		for _, v := range allowed {
			if raw == v {
				*target(p) = raw
				return ""
			}
		}
		quoted := make([]string, len(allowed))
		for i, v := range allowed {
			quoted[i] = "'" + v + "'"
		}
		return fmt.Sprintf("Invalid enum value. Expected %s, received '%s'", strings.Join(quoted, " | "), raw)
	}}
}

func parseNumber(raw string) (float64, string) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Sprintf("Expected number, received '%s'", raw)
	}
	return v, ""
}

func parseInt(raw string, checks []check) (int, string) {
	v, msg := parseNumber(raw)
	if msg != "" {
		return 0, msg
	}
	if v != math.Trunc(v) {
		return 0, "Expected integer, received float"
	}
	for _, c := range checks {
		if msg := c(v); msg != "" {
			return 0, msg
		}
	}
	return int(v), ""
}

func intField(key string, target func(p *QueryParams) **int, checks ...check) field {
	return field{key: key, apply: func(p *QueryParams, raw string) string {
		v, msg := parseInt(raw, checks)
		if msg != "" {
			return msg
		}
		*target(p) = &v
		return ""
	}}
}

func intValueField(key string, target func(p *QueryParams) *int, checks ...check) field {
	return field{key: key, apply: func(p *QueryParams, raw string) string {
		v, msg := parseInt(raw, checks)
		if msg != "" {
			return msg
		}
		*target(p) = v
		return ""
	}}
}

func numberField(key string, target func(p *QueryParams) **float64, checks ...check) field {
	return field{key: key, apply: func(p *QueryParams, raw string) string {
		v, msg := parseNumber(raw)
		if msg != "" {
			return msg
		}
		for _, c := range checks {
			if msg := c(v); msg != "" {
				return msg
			}
		}
		*target(p) = &v
		return ""
	}}
}

// schema единое декларативное описание параметров эндпоинта поиска
var schema = []field{
	stringField("make", func(p *QueryParams) *string { return &p.Make }),
	stringField("model", func(p *QueryParams) *string { return &p.Model }),
	stringField("fuel_type", func(p *QueryParams) *string { return &p.FuelType }),
	stringField("transmission", func(p *QueryParams) *string { return &p.Transmission }),
	stringField("body_type", func(p *QueryParams) *string { return &p.BodyType }),
	stringField("exterior_color", func(p *QueryParams) *string { return &p.ExteriorColor }),
	stringField("interior_color", func(p *QueryParams) *string { return &p.InteriorColor }),
	stringField("engine", func(p *QueryParams) *string { return &p.Engine }),
	stringField("vin", func(p *QueryParams) *string { return &p.VIN }),
	stringField("location_city", func(p *QueryParams) *string { return &p.LocationCity }),
	stringField("location_country", func(p *QueryParams) *string { return &p.LocationCountry }),

	enumField("condition", conditionValues, func(p *QueryParams) *string { return &p.Condition }),
	enumField("status", statusValues, func(p *QueryParams) *string { return &p.Status }),
	enumField("listing_type", listingTypeValues, func(p *QueryParams) *string { return &p.ListingType }),
	enumField("rental_status", rentalStatusValues, func(p *QueryParams) *string { return &p.RentalStatus }),

	intField("year_from", func(p *QueryParams) **int { return &p.YearFrom }, nonNegative),
	intField("year_to", func(p *QueryParams) **int { return &p.YearTo }, nonNegative),
	numberField("price_min", func(p *QueryParams) **float64 { return &p.PriceMin }, nonNegative),
	numberField("price_max", func(p *QueryParams) **float64 { return &p.PriceMax }, positive),
	numberField("mileage_min", func(p *QueryParams) **float64 { return &p.MileageMin }, nonNegative),
	numberField("mileage_max", func(p *QueryParams) **float64 { return &p.MileageMax }, nonNegative),

	intValueField("page", func(p *QueryParams) *int { return &p.Page }, between(1, math.MaxInt32)),
	intValueField("limit", func(p *QueryParams) *int { return &p.Limit }, between(1, MaxLimit)),
	enumField("sortBy", sortByValues, func(p *QueryParams) *string { return &p.SortBy }),
	enumField("sortOrder", sortOrderValues, func(p *QueryParams) *string { return &p.SortOrder }),
}

// ParseQuery проверяет сырые параметры строки запроса за один проход.
// Возвращает либо полностью заполненные QueryParams, либо ValidationError
// со всеми найденными ошибками. Неизвестные ключи игнорируются,
// пустые значения считаются отсутствующими.
func ParseQuery(raw map[string]string) (QueryParams, *ValidationError) {
	params := QueryParams{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    DefaultSortBy,
		SortOrder: DefaultSortOrder,
	}

	var verr ValidationError
	for _, f := range schema {
		value, ok := raw[f.key]
		if !ok || value == "" {
			continue
		}
		if msg := f.apply(&params, value); msg != "" {
			verr.add(f.key, msg)
		}
	}

	if len(verr.Fields) > 0 {
		return QueryParams{}, &verr
	}
	return params, nil
}
