package filterstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithMakeClearsModel(t *testing.T) {
	f := DefaultFilters()
	f.Make, f.Model = "Toyota", "Camry"

	same, err := f.With(FieldMake, "Toyota")
	require.NoError(t, err)
	assert.Equal(t, "Camry", same.Model)

	changed, err := f.With(FieldMake, "Honda")
	require.NoError(t, err)
	assert.Equal(t, "Honda", changed.Make)
	assert.Empty(t, changed.Model)

	anyMake, err := f.With(FieldMake, "any")
	require.NoError(t, err)
	assert.Equal(t, AnyValue, anyMake.Make)
	assert.Empty(t, anyMake.Model)
}

func TestWithDragsOppositeBound(t *testing.T) {
	f := DefaultFilters()

	f, err := f.With(FieldYearMin, "2030")
	require.NoError(t, err)
	assert.Equal(t, 2030, f.YearMin)
	assert.Equal(t, 2030, f.YearMax)

	f, err = f.With(FieldPriceMax, "100")
	require.NoError(t, err)
	f, err = f.With(FieldPriceMin, "500")
	require.NoError(t, err)
	assert.Equal(t, 500, f.PriceMin)
	assert.Equal(t, 500, f.PriceMax)

	f, err = f.With(FieldMileageMin, "20000")
	require.NoError(t, err)
	f, err = f.With(FieldMileageMax, "5000")
	require.NoError(t, err)
	assert.Equal(t, 5000, f.MileageMin)
	assert.Equal(t, 5000, f.MileageMax)
}

func TestWithRejectsInvalidValues(t *testing.T) {
	f := DefaultFilters()

	for _, tc := range []struct {
		field Field
		value string
	}{
		{FieldYearMin, "twenty"},
		{FieldPriceMin, "-1"},
		{FieldPriceMax, "0"},
		{Field("color"), "1"},
	} {
		got, err := f.With(tc.field, tc.value)
		assert.Error(t, err, "%s=%s", tc.field, tc.value)
		assert.Equal(t, f, got)
	}
}

func TestNormalize(t *testing.T) {
	f := FilterSet{
		Make:      " any ",
		Model:     "  ",
		YearMin:   2022,
		YearMax:   2015,
		PriceMin:  -10,
		PriceMax:  0,
		FuelType:  "Electric",
		Condition: "ANY",
	}

	n := f.Normalize()
	assert.Equal(t, AnyValue, n.Make)
	assert.Empty(t, n.Model)
	assert.Equal(t, 2015, n.YearMin)
	assert.Equal(t, 2022, n.YearMax)
	assert.Equal(t, 0, n.PriceMin)
	assert.Equal(t, DefaultPriceMax, n.PriceMax)
	assert.Equal(t, "Electric", n.FuelType)
	assert.Equal(t, AnyValue, n.Condition)
	assert.Equal(t, AnyValue, n.BodyType)
	assert.Equal(t, n, n.Normalize())
}

func TestParseSortOption(t *testing.T) {
	assert.Equal(t, SortOption{"price", "asc"}, ParseSortOption("price-asc"))
	assert.Equal(t, SortOption{"created_at", "asc"}, ParseSortOption("created_at-asc"))
	assert.Equal(t, SortOption{"year", "desc"}, ParseSortOption(" year-desc "))

	for _, s := range []string{"", "price", "price-up", "color-asc", "-"} {
		assert.Equal(t, fallbackSort, ParseSortOption(s), s)
	}
	assert.Equal(t, "price-asc", DefaultSort.String())
}
