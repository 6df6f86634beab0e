package filterstate

import "strings"

var sortFields = map[string]bool{
	"price":      true,
	"year":       true,
	"mileage":    true,
	"created_at": true,
	"make":       true,
	"model":      true,
	"condition":  true,
	"status":     true,
}

// SortOption поле и направление сортировки, в адресе записывается как "price-asc"
type SortOption struct {
	Field string
	Order string
}

// DefaultSort сортировка, с которой открывается поиск
var DefaultSort = SortOption{Field: "price", Order: "asc"}

// fallbackSort используется для нераспознанной строки сортировки
var fallbackSort = SortOption{Field: "created_at", Order: "desc"}

// ParseSortOption разбирает строку вида "field-direction".
// Нераспознанная строка дает сортировку по дате создания по убыванию.
func ParseSortOption(s string) SortOption {
	field, order, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return fallbackSort
	}
	opt := SortOption{Field: field, Order: order}
	if !opt.Valid() {
		return fallbackSort
	}
	return opt
}

// Valid проверяет поле и направление по списку допустимых
func (o SortOption) Valid() bool {
	return sortFields[o.Field] && (o.Order == "asc" || o.Order == "desc")
}

func (o SortOption) String() string {
	return o.Field + "-" + o.Order
}
