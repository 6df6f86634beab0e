// Package filterstate хранит состояние фильтров клиента поиска и синхронизирует
// его с адресной строкой.
package filterstate

import (
	"fmt"
	"strconv"
	"strings"
)

// AnyValue значение, снимающее ограничение с поля
const AnyValue = "Any"

// Границы по умолчанию. Граница, равная значению по умолчанию, не ограничивает поиск.
const (
	DefaultYearMin    = 2010
	DefaultYearMax    = 2024
	DefaultPriceMin   = 0
	DefaultPriceMax   = 150000
	DefaultMileageMin = 0
	DefaultMileageMax = 100000
)

// Field имя редактируемого поля фильтра. Совпадает с параметром запроса, если он есть.
type Field string

const (
	FieldMake         Field = "make"
	FieldModel        Field = "model"
	FieldYearMin      Field = "year_from"
	FieldYearMax      Field = "year_to"
	FieldPriceMin     Field = "price_min"
	FieldPriceMax     Field = "price_max"
	FieldMileageMin   Field = "mileage_min"
	FieldMileageMax   Field = "mileage_max"
	FieldFuelType     Field = "fuel_type"
	FieldTransmission Field = "transmission"
	FieldCondition    Field = "condition"
	FieldBodyType     Field = "body_type"
)

// FilterSet активные ограничения поиска
type FilterSet struct {
	Make         string
	Model        string
	YearMin      int
	YearMax      int
	PriceMin     int
	PriceMax     int
	MileageMin   int
	MileageMax   int
	FuelType     string
	Transmission string
	Condition    string
	BodyType     string
}

// DefaultFilters возвращает набор без ограничений
func DefaultFilters() FilterSet {
	return FilterSet{
		Make:         AnyValue,
		Model:        "",
		YearMin:      DefaultYearMin,
		YearMax:      DefaultYearMax,
		PriceMin:     DefaultPriceMin,
		PriceMax:     DefaultPriceMax,
		MileageMin:   DefaultMileageMin,
		MileageMax:   DefaultMileageMax,
		FuelType:     AnyValue,
		Transmission: AnyValue,
		Condition:    AnyValue,
		BodyType:     AnyValue,
	}
}

// With возвращает копию набора с измененным полем.
// Смена марки сбрасывает модель. Изменение одной границы диапазона
// сдвигает другую так, чтобы min ≤ max.
func (f FilterSet) With(field Field, value string) (FilterSet, error) {
	value = strings.TrimSpace(value)

	switch field {
	case FieldMake:
		v := textValue(value, AnyValue)
		if v != f.Make {
			f.Model = ""
		}
		f.Make = v
		return f, nil
	case FieldModel:
		f.Model = textValue(value, "")
		return f, nil
	case FieldFuelType:
		f.FuelType = textValue(value, AnyValue)
		return f, nil
	case FieldTransmission:
		f.Transmission = textValue(value, AnyValue)
		return f, nil
	case FieldCondition:
		f.Condition = textValue(value, AnyValue)
		return f, nil
	case FieldBodyType:
		f.BodyType = textValue(value, AnyValue)
		return f, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return f, fmt.Errorf("%s: expected integer, got %q", field, value)
	}
	if n < 0 {
		return f, fmt.Errorf("%s: must be non-negative", field)
	}

	switch field {
	case FieldYearMin:
		f.YearMin = n
		f.YearMax = max(f.YearMax, n)
	case FieldYearMax:
		f.YearMax = n
		f.YearMin = min(f.YearMin, n)
	case FieldPriceMin:
		f.PriceMin = n
		f.PriceMax = max(f.PriceMax, n)
	case FieldPriceMax:
		if n == 0 {
			return f, fmt.Errorf("%s: must be greater than 0", field)
		}
		f.PriceMax = n
		f.PriceMin = min(f.PriceMin, n)
	case FieldMileageMin:
		f.MileageMin = n
		f.MileageMax = max(f.MileageMax, n)
	case FieldMileageMax:
		f.MileageMax = n
		f.MileageMin = min(f.MileageMin, n)
	default:
		return f, fmt.Errorf("unknown filter field %q", field)
	}
	return f, nil
}

// Normalize приводит набор к допустимому виду: отрицательные границы
// обнуляются, перевернутые диапазоны меняются местами, "any" в любом регистре
// превращается в AnyValue.
func (f FilterSet) Normalize() FilterSet {
	f.Make = textValue(f.Make, AnyValue)
	f.Model = textValue(f.Model, "")
	f.FuelType = textValue(f.FuelType, AnyValue)
	f.Transmission = textValue(f.Transmission, AnyValue)
	f.Condition = textValue(f.Condition, AnyValue)
	f.BodyType = textValue(f.BodyType, AnyValue)

	f.YearMin, f.YearMax = orderedRange(f.YearMin, f.YearMax)
	f.PriceMin, f.PriceMax = orderedRange(f.PriceMin, f.PriceMax)
	f.MileageMin, f.MileageMax = orderedRange(f.MileageMin, f.MileageMax)
	if f.PriceMax == 0 {
		f.PriceMax = DefaultPriceMax
	}
	return f
}

// textValue обрезает пробелы; пустая строка и "any" заменяются на unset
func textValue(v, unset string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, AnyValue) {
		return unset
	}
	return v
}

func orderedRange(lo, hi int) (int, int) {
	lo, hi = max(lo, 0), max(hi, 0)
	if lo > hi {
		return hi, lo
	}
	return lo, hi
}
