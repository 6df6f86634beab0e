package filterstate

import (
	"net/url"
	"strconv"
)

// Encode переводит состояние в параметры запроса поиска.
// Поля со значением AnyValue и границы, равные значениям по умолчанию, пропускаются.
// Страница 1 не записывается.
func Encode(f FilterSet, sort SortOption, page int) url.Values {
	f = f.Normalize()
	q := url.Values{}

	setText := func(key, v string) {
		if v != "" && v != AnyValue {
			q.Set(key, v)
		}
	}
	setBound := func(key string, v, def int) {
		if v != def {
			q.Set(key, strconv.Itoa(v))
		}
	}

	setText(string(FieldMake), f.Make)
	setText(string(FieldModel), f.Model)
	setBound(string(FieldYearMin), f.YearMin, DefaultYearMin)
	setBound(string(FieldYearMax), f.YearMax, DefaultYearMax)
	setBound(string(FieldPriceMin), f.PriceMin, DefaultPriceMin)
	setBound(string(FieldPriceMax), f.PriceMax, DefaultPriceMax)
	setBound(string(FieldMileageMin), f.MileageMin, DefaultMileageMin)
	setBound(string(FieldMileageMax), f.MileageMax, DefaultMileageMax)
	setText(string(FieldFuelType), f.FuelType)
	setText(string(FieldTransmission), f.Transmission)
	setText(string(FieldCondition), f.Condition)
	setText(string(FieldBodyType), f.BodyType)

	if !sort.Valid() {
		sort = fallbackSort
	}
	q.Set("sortBy", sort.Field)
	q.Set("sortOrder", sort.Order)

	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	return q
}

// Decode восстанавливает состояние из параметров адреса.
// Отсутствующие и нечисловые значения заменяются значениями по умолчанию.
func Decode(q url.Values) (FilterSet, SortOption, int) {
	f := DefaultFilters()

	text := func(key string, dst *string) {
		if v := q.Get(key); v != "" {
			*dst = v
		}
	}
	bound := func(key string, dst *int) {
		if n, err := strconv.Atoi(q.Get(key)); err == nil {
			*dst = n
		}
	}

	text(string(FieldMake), &f.Make)
	text(string(FieldModel), &f.Model)
	bound(string(FieldYearMin), &f.YearMin)
	bound(string(FieldYearMax), &f.YearMax)
	bound(string(FieldPriceMin), &f.PriceMin)
	bound(string(FieldPriceMax), &f.PriceMax)
	bound(string(FieldMileageMin), &f.MileageMin)
	bound(string(FieldMileageMax), &f.MileageMax)
	text(string(FieldFuelType), &f.FuelType)
	text(string(FieldTransmission), &f.Transmission)
	text(string(FieldCondition), &f.Condition)
	text(string(FieldBodyType), &f.BodyType)

	sort := DefaultSort
	if by, order := q.Get("sortBy"), q.Get("sortOrder"); by != "" || order != "" {
		sort = ParseSortOption(by + "-" + order)
	}

	page := 1
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 1 {
		page = n
	}

	return f.Normalize(), sort, page
}
