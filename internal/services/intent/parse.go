package intent

import (
	"errors"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kaptinlin/jsonrepair"

	"github.com/rajivgeraev/dealer-api/internal/models"
)

// ErrUnparseable возвращается, если ответ модели не удалось прочитать как JSON-объект
var ErrUnparseable = errors.New("model output is not a JSON object")

// parseObject читает JSON-объект из ответа модели.
// Допускаются markdown-ограждения, текст вокруг объекта и синтаксические ошибки,
// которые исправляет jsonrepair.
func parseObject(content string) (map[string]any, error) {
	text := strings.TrimSpace(content)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	if start := strings.Index(text, "{"); start >= 0 {
		text = text[start:]
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrUnparseable
	}

	// Текст после последней закрывающей скобки отбрасываем
	closed := text
	if end := strings.LastIndex(text, "}"); end >= 0 {
		closed = text[:end+1]
	}
	if obj, ok := decodeObject(closed); ok {
		return obj, nil
	}

	// Оборванный или испорченный ответ пробуем починить целиком
	for _, candidate := range []string{text, closed} {
		repaired, err := jsonrepair.JSONRepair(candidate)
		if err != nil {
			continue
		}
		if obj, ok := decodeObject(repaired); ok {
			return obj, nil
		}
	}
	return nil, ErrUnparseable
}

func decodeObject(text string) (map[string]any, bool) {
	var obj map[string]any
	if err := jsoniter.UnmarshalFromString(text, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// extract разбирает объект ответа на фильтры и уверенность.
// Фильтры берутся из "filters" или "parsed_filters", иначе из корня объекта.
func extract(obj map[string]any) (*models.IntentFilters, float64) {
	src := obj
	for _, key := range []string{"filters", "parsed_filters"} {
		if nested, ok := obj[key].(map[string]any); ok {
			src = nested
			break
		}
	}

	f := &models.IntentFilters{
		Make:         textValue(src["make"]),
		Model:        textValue(src["model"]),
		BodyType:     textValue(src["body_type"]),
		FuelType:     textValue(src["fuel_type"]),
		Transmission: textValue(src["transmission"]),
		Condition:    conditionValue(src["condition"]),
		YearMin:      intValue(src["year_min"]),
		YearMax:      intValue(src["year_max"]),
		PriceMin:     intValue(src["price_min"]),
		PriceMax:     intValue(src["price_max"]),
		MileageMin:   intValue(src["mileage_min"]),
		MileageMax:   intValue(src["mileage_max"]),
	}
	orderRange(f.YearMin, f.YearMax)
	orderRange(f.PriceMin, f.PriceMax)
	orderRange(f.MileageMin, f.MileageMax)

	confidence, ok := number(obj["confidence"])
	if !ok {
		confidence, _ = number(src["confidence"])
	}
	return f, clamp(confidence)
}

// empty сообщает, что модель не извлекла ни одного фильтра
func empty(f *models.IntentFilters) bool {
	return *f == models.IntentFilters{}
}

func textValue(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "any") || strings.EqualFold(s, "null") {
		return nil
	}
	return &s
}

func conditionValue(v any) *string {
	s := textValue(v)
	if s == nil {
		return nil
	}
	lower := strings.ToLower(*s)
	if lower != "new" && lower != "used" {
		return nil
	}
	return &lower
}

// maxFilterValue верхняя граница числовых фильтров
const maxFilterValue = math.MaxInt32

func intValue(v any) *int {
	n, ok := number(v)
	if !ok || n < 0 || math.Round(n) > maxFilterValue {
		return nil
	}
	i := int(math.Round(n))
	return &i
}

// number принимает числа и строки вида "$25,000" или "30k"
func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		mult := 1.0
		if strings.HasSuffix(s, "k") {
			mult = 1000
			s = strings.TrimSuffix(s, "k")
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n * mult, true
	}
	return 0, false
}

func orderRange(lo, hi *int) {
	if lo != nil && hi != nil && *lo > *hi {
		*lo, *hi = *hi, *lo
	}
}

func clamp(c float64) float64 {
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	}
	return c
}
