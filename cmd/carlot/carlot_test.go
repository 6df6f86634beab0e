package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajivgeraev/dealer-api/internal/filterstate"
	"github.com/rajivgeraev/dealer-api/internal/models"
)

func TestFormatPrice(t *testing.T) {
	for in, want := range map[float64]string{
		0:        "$0",
		999:      "$999",
		1000:     "$1,000",
		25999.6:  "$26,000",
		1234567:  "$1,234,567",
		150000.0: "$150,000",
	} {
		assert.Equal(t, want, formatPrice(&in))
	}
	assert.Equal(t, "-", formatPrice(nil))
}

func TestPrintSnapshot(t *testing.T) {
	color.NoColor = true
	year, price := 2021, 31500.0

	var buf bytes.Buffer
	err := printSnapshot(&buf, filterstate.Snapshot{
		Sort: filterstate.DefaultSort,
		Page: 1,
		Result: models.ResultPage{
			Data:  []models.Listing{{Make: "Toyota", Model: "RAV4", Year: &year, Price: &price, Condition: "used"}},
			Count: 30,
			Limit: 24,
		},
	}, "http://localhost:3000/inventory?make=Toyota")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Toyota")
	assert.Contains(t, out, "$31,500")
	assert.Contains(t, out, "30 vehicles, page 1 of 2, sorted by price-asc")
	assert.Contains(t, out, "http://localhost:3000/inventory?make=Toyota")

	err = printSnapshot(&buf, filterstate.Snapshot{SearchErr: filterstate.SearchErrorMessage}, "")
	assert.EqualError(t, err, filterstate.SearchErrorMessage)
}

func TestSearchCommand(t *testing.T) {
	color.NoColor = true
	session := uuid.New()
	var got url.Values
	var tracked models.SearchEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/inventory":
			got = r.URL.Query()
			_, _ = w.Write([]byte(`{"data":[{"id":"6f1c2d8e-1111-4a53-9a1e-6f0b5c1c0a01","make":"BMW","model":"X5","condition":"used"}],"count":1,"page":2,"limit":24}`))
		case "/api/track/search":
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&tracked))
			w.WriteHeader(http.StatusCreated)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"search",
		"--api-url", srv.URL,
		"--web-url", "https://cars.example",
		"--link", "https://cars.example/inventory?make=Audi&body_type=SUV&page=2",
		"--make", "BMW",
		"--year-from", "2018",
		"--session-id", session.String(),
	})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "BMW", got.Get("make"))
	assert.Equal(t, "SUV", got.Get("body_type"))
	assert.Equal(t, "2018", got.Get("year_from"))
	assert.Empty(t, got.Get("page"))
	assert.Equal(t, "price", got.Get("sortBy"))

	assert.Contains(t, out.String(), "X5")
	assert.Contains(t, out.String(), "https://cars.example/inventory?")
	assert.Contains(t, out.String(), "make=BMW")

	assert.Equal(t, session, tracked.SessionID)
	assert.Equal(t, "BMW", tracked.Filters["make"])
	assert.Equal(t, "2018", tracked.Filters["year_from"])
}

func TestParseSessionID(t *testing.T) {
	id, err := parseSessionID("")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	want := uuid.New()
	id, err = parseSessionID(want.String())
	require.NoError(t, err)
	assert.Equal(t, want, id)

	_, err = parseSessionID("not-a-uuid")
	assert.ErrorContains(t, err, "invalid session id")
}
