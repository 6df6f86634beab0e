package filterstate

import "github.com/rajivgeraev/dealer-api/internal/models"

// Тексты обратной связи после разбора запроса
const (
	HighConfidenceMessage = "Found exactly what you're looking for!"
	LowConfidenceMessage  = "Found potential matches. You can adjust filters if needed."
	NotUnderstoodMessage  = "Could not understand your search. Please try again with different wording."
	IntentFailedMessage   = "Failed to process your search"
)

// highConfidence порог, выше которого результат считается точным
const highConfidence = 0.8

// MergeIntent накладывает распознанные поля на текущий набор.
// Отсутствующие в ответе поля не меняются. Если марка изменилась, а модели
// в ответе нет, модель сбрасывается.
func MergeIntent(f FilterSet, p *models.IntentFilters) FilterSet {
	if p == nil {
		return f
	}

	prevMake := f.Make
	setText := func(dst *string, v *string) {
		if v != nil && *v != "" {
			*dst = *v
		}
	}
	setInt := func(dst *int, v *int) {
		if v != nil && *v > 0 {
			*dst = *v
		}
	}

	setText(&f.Make, p.Make)
	setText(&f.Model, p.Model)
	setText(&f.BodyType, p.BodyType)
	setText(&f.FuelType, p.FuelType)
	setText(&f.Transmission, p.Transmission)
	setText(&f.Condition, p.Condition)
	setInt(&f.YearMin, p.YearMin)
	setInt(&f.YearMax, p.YearMax)
	setInt(&f.PriceMin, p.PriceMin)
	setInt(&f.PriceMax, p.PriceMax)
	setInt(&f.MileageMin, p.MileageMin)
	setInt(&f.MileageMax, p.MileageMax)

	if f.Make != prevMake && (p.Model == nil || *p.Model == "") {
		f.Model = ""
	}
	return f.Normalize()
}

// FeedbackMessage выбирает текст по уверенности разбора
func FeedbackMessage(confidence float64) string {
	if confidence > highConfidence {
		return HighConfidenceMessage
	}
	return LowConfidenceMessage
}
