package filterstate

import (
	"math/rand"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDefaultsOnlySort(t *testing.T) {
	q := Encode(DefaultFilters(), DefaultSort, 1)
	assert.Equal(t, url.Values{"sortBy": {"price"}, "sortOrder": {"asc"}}, q)
}

func TestEncodeOmitsSentinels(t *testing.T) {
	f := DefaultFilters()
	f.Make = "Toyota"
	f.Model = "Any"
	f.Condition = "any"
	f.YearMin = 2015
	f.PriceMax = 40000
	f.BodyType = "SUV"

	q := Encode(f, ParseSortOption("year-desc"), 3)

	assert.Equal(t, url.Values{
		"make":      {"Toyota"},
		"year_from": {"2015"},
		"price_max": {"40000"},
		"body_type": {"SUV"},
		"sortBy":    {"year"},
		"sortOrder": {"desc"},
		"page":      {"3"},
	}, q)
	for _, key := range []string{"model", "condition", "fuel_type", "transmission", "year_to", "price_min"} {
		assert.NotContains(t, q, key)
	}
}

func TestDecode(t *testing.T) {
	q, err := url.ParseQuery("make=BMW&model=X5&year_from=2024&year_to=2019&price_min=abc&mileage_max=60000&sortBy=mileage&sortOrder=asc&page=4&utm_source=mail")
	require.NoError(t, err)

	f, sort, page := Decode(q)

	assert.Equal(t, "BMW", f.Make)
	assert.Equal(t, "X5", f.Model)
	assert.Equal(t, 2019, f.YearMin)
	assert.Equal(t, 2024, f.YearMax)
	assert.Equal(t, DefaultPriceMin, f.PriceMin)
	assert.Equal(t, 60000, f.MileageMax)
	assert.Equal(t, AnyValue, f.FuelType)
	assert.Equal(t, SortOption{"mileage", "asc"}, sort)
	assert.Equal(t, 4, page)
}

func TestDecodeEmpty(t *testing.T) {
	f, sort, page := Decode(url.Values{})
	assert.Equal(t, DefaultFilters(), f)
	assert.Equal(t, DefaultSort, sort)
	assert.Equal(t, 1, page)

	_, sort, page = Decode(url.Values{"sortBy": {"color"}, "page": {"-2"}})
	assert.Equal(t, fallbackSort, sort)
	assert.Equal(t, 1, page)
}

func randomFilters(r *rand.Rand) FilterSet {
	pick := func(values ...string) string { return values[r.Intn(len(values))] }
	return FilterSet{
		Make:         pick("Any", "any", "", "Toyota", "Mercedes-Benz"),
		Model:        pick("", "Any", "Camry", "C-Class"),
		YearMin:      1990 + r.Intn(40),
		YearMax:      1990 + r.Intn(40),
		PriceMin:     r.Intn(200000) - 1000,
		PriceMax:     r.Intn(200000),
		MileageMin:   r.Intn(150000),
		MileageMax:   r.Intn(150000),
		FuelType:     pick("Any", "Petrol", "Electric"),
		Transmission: pick("Any", "Automatic", "Manual"),
		Condition:    pick("Any", "new", "used"),
		BodyType:     pick("Any", "SUV", "Sedan"),
	}
}

func TestEncodeNeverEmitsInvertedRange(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	pairs := [][2]string{
		{"year_from", "year_to"},
		{"price_min", "price_max"},
		{"mileage_min", "mileage_max"},
	}

	for i := 0; i < 1000; i++ {
		f := randomFilters(r)
		q := Encode(f, DefaultSort, 1)

		for _, pair := range pairs {
			lo, hi := q.Get(pair[0]), q.Get(pair[1])
			if lo == "" || hi == "" {
				continue
			}
			loN, err := strconv.Atoi(lo)
			require.NoError(t, err)
			hiN, err := strconv.Atoi(hi)
			require.NoError(t, err)
			require.LessOrEqual(t, loN, hiN, "filters %+v", f)
		}
		for key, values := range q {
			require.NotEqual(t, AnyValue, values[0], "key %s", key)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	sorts := []SortOption{DefaultSort, {"year", "desc"}, {"created_at", "desc"}, {"make", "asc"}}

	for i := 0; i < 500; i++ {
		f := randomFilters(r)
		sort := sorts[r.Intn(len(sorts))]
		page := 1 + r.Intn(5)

		gotF, gotSort, gotPage := Decode(Encode(f, sort, page))
		require.Equal(t, f.Normalize(), gotF)
		require.Equal(t, sort, gotSort)
		require.Equal(t, page, gotPage)
	}
}
