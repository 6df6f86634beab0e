package inventory

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Op вид условия фильтрации
type Op string

const (
	OpContains Op = "contains" // подстрока без учета регистра
	OpEq       Op = "eq"
	OpGte      Op = "gte"
	OpLte      Op = "lte"
)

// Predicate одно условие над колонкой таблицы car_listings
type Predicate struct {
	Column string
	Op     Op
	Value  any
}

// SearchQuery построенный запрос: условия, сортировка и окно пагинации
type SearchQuery struct {
	Predicates []Predicate
	SortBy     string
	Ascending  bool
	Offset     int
	Limit      int
}

const listingsTable = "car_listings"

// listingColumns перечисляет колонки в порядке полей models.Listing
const listingColumns = `id, dealer_id, make, model, year, price, mileage, fuel_type, transmission,
	condition::text AS condition, body_type, status::text AS status,
	listing_type::text AS listing_type, rental_status::text AS rental_status,
	rental_daily_price, exterior_color, interior_color, engine, vin,
	location_city, location_country, images, features, description, seller_name,
	is_public, created_at, updated_at`

// Колонки с типом enum сравниваются как текст
var enumColumns = map[string]bool{
	"condition":     true,
	"status":        true,
	"listing_type":  true,
	"rental_status": true,
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BuildSearch переводит проверенные параметры в набор условий.
// Значения "Any" и пустые строки не порождают условий.
func BuildSearch(p QueryParams) SearchQuery {
	q := SearchQuery{
		SortBy:    p.SortBy,
		Ascending: p.SortOrder == "asc",
		Offset:    (p.Page - 1) * p.Limit,
		Limit:     p.Limit,
	}

	// Поиск видит только опубликованные объявления
	q.Predicates = append(q.Predicates, Predicate{Column: "is_public", Op: OpEq, Value: true})

	// Марка и модель ищутся по подстроке, чтобы "merc" находил "Mercedes-Benz"
	q.addContains("make", p.Make)
	q.addContains("model", p.Model)

	q.addEq("fuel_type", p.FuelType)
	q.addEq("transmission", p.Transmission)
	q.addEq("body_type", p.BodyType)
	q.addEq("exterior_color", p.ExteriorColor)
	q.addEq("interior_color", p.InteriorColor)
	q.addEq("engine", p.Engine)
	q.addEq("vin", p.VIN)
	q.addEq("location_city", p.LocationCity)
	q.addEq("location_country", p.LocationCountry)
	q.addEq("condition", p.Condition)
	q.addEq("status", p.Status)
	q.addEq("listing_type", p.ListingType)
	q.addEq("rental_status", p.RentalStatus)

	if p.YearFrom != nil {
		q.Predicates = append(q.Predicates, Predicate{Column: "year", Op: OpGte, Value: *p.YearFrom})
	}
	if p.YearTo != nil {
		q.Predicates = append(q.Predicates, Predicate{Column: "year", Op: OpLte, Value: *p.YearTo})
	}
	if p.PriceMin != nil {
		q.Predicates = append(q.Predicates, Predicate{Column: "price", Op: OpGte, Value: *p.PriceMin})
	}
	if p.PriceMax != nil {
		q.Predicates = append(q.Predicates, Predicate{Column: "price", Op: OpLte, Value: *p.PriceMax})
	}
	if p.MileageMin != nil {
		q.Predicates = append(q.Predicates, Predicate{Column: "mileage", Op: OpGte, Value: *p.MileageMin})
	}
	if p.MileageMax != nil {
		q.Predicates = append(q.Predicates, Predicate{Column: "mileage", Op: OpLte, Value: *p.MileageMax})
	}

	return q
}

func (q *SearchQuery) addContains(column, value string) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, AnyValue) {
		return
	}
	q.Predicates = append(q.Predicates, Predicate{Column: column, Op: OpContains, Value: value})
}

func (q *SearchQuery) addEq(column, value string) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, AnyValue) {
		return
	}
	q.Predicates = append(q.Predicates, Predicate{Column: column, Op: OpEq, Value: value})
}

// Range возвращает включительные границы окна строк: (page-1)*limit .. page*limit-1
func (q SearchQuery) Range() (from, to int) {
	return q.Offset, q.Offset + q.Limit - 1
}

// where собирает WHERE с позиционными параметрами начиная с $1
func (q SearchQuery) where() (string, []any) {
	if len(q.Predicates) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(q.Predicates))
	args := make([]any, 0, len(q.Predicates))
	for _, pr := range q.Predicates {
		column := pgx.Identifier{pr.Column}.Sanitize()
		if enumColumns[pr.Column] {
			column += "::text"
		}
		args = append(args, pr.renderValue())
		n := len(args)

		switch pr.Op {
		case OpContains:
			clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", column, n))
		case OpGte:
			clauses = append(clauses, fmt.Sprintf("%s >= $%d", column, n))
		case OpLte:
			clauses = append(clauses, fmt.Sprintf("%s <= $%d", column, n))
		default:
			clauses = append(clauses, fmt.Sprintf("%s = $%d", column, n))
		}
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (pr Predicate) renderValue() any {
	if pr.Op == OpContains {
		return "%" + likeEscaper.Replace(fmt.Sprint(pr.Value)) + "%"
	}
	return pr.Value
}

// SQL возвращает запрос страницы. Порядок дополняется id,
// чтобы соседние страницы не пересекались при равных ключах сортировки.
func (q SearchQuery) SQL() (string, []any) {
	where, args := q.where()

	direction := "DESC"
	if q.Ascending {
		direction = "ASC"
	}

	args = append(args, q.Limit, q.Offset)
	sql := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d",
		listingColumns, listingsTable, where,
		pgx.Identifier{q.SortBy}.Sanitize(), direction,
		len(args)-1, len(args))
	return sql, args
}

// CountSQL возвращает точный подсчет совпадений без учета окна страницы
func (q SearchQuery) CountSQL() (string, []any) {
	where, args := q.where()
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", listingsTable, where), args
}
