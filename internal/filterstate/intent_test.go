package filterstate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rajivgeraev/dealer-api/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestMergeIntentKeepsAbsentFields(t *testing.T) {
	f := DefaultFilters()
	f.FuelType = "Diesel"
	f.MileageMax = 50000

	merged := MergeIntent(f, &models.IntentFilters{
		BodyType: ptr("SUV"),
		PriceMax: ptr(30000),
	})

	assert.Equal(t, "SUV", merged.BodyType)
	assert.Equal(t, 30000, merged.PriceMax)
	assert.Equal(t, "Diesel", merged.FuelType)
	assert.Equal(t, 50000, merged.MileageMax)
	assert.Equal(t, AnyValue, merged.Make)
}

func TestMergeIntentMakeChangeClearsModel(t *testing.T) {
	f := DefaultFilters()
	f.Make, f.Model = "Toyota", "Camry"

	merged := MergeIntent(f, &models.IntentFilters{Make: ptr("Honda")})
	assert.Equal(t, "Honda", merged.Make)
	assert.Empty(t, merged.Model)

	merged = MergeIntent(f, &models.IntentFilters{Make: ptr("Honda"), Model: ptr("Civic")})
	assert.Equal(t, "Civic", merged.Model)

	merged = MergeIntent(f, &models.IntentFilters{Make: ptr("Toyota")})
	assert.Equal(t, "Camry", merged.Model)
}

func TestMergeIntentIgnoresZeroValues(t *testing.T) {
	f := DefaultFilters()
	f.YearMin = 2015

	merged := MergeIntent(f, &models.IntentFilters{YearMin: ptr(0), Make: ptr("")})
	assert.Equal(t, f, merged)
	assert.Equal(t, f, MergeIntent(f, nil))
}

func TestMergeIntentKeepsRangeOrdered(t *testing.T) {
	merged := MergeIntent(DefaultFilters(), &models.IntentFilters{PriceMin: ptr(200000)})
	assert.LessOrEqual(t, merged.PriceMin, merged.PriceMax)
}

func TestFeedbackMessage(t *testing.T) {
	assert.Equal(t, HighConfidenceMessage, FeedbackMessage(0.81))
	assert.Equal(t, LowConfidenceMessage, FeedbackMessage(0.8))
	assert.Equal(t, LowConfidenceMessage, FeedbackMessage(0))
}
