package filterstate

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLocationHistory(t *testing.T) {
	loc, err := ParseLocation("/inventory?make=BMW")
	require.NoError(t, err)

	loc.Push(url.Values{"make": {"Audi"}})
	loc.Push(url.Values{"make": {"Kia"}})
	assert.Equal(t, 3, loc.Len())
	assert.Equal(t, "/inventory?make=Kia", loc.String())

	require.True(t, loc.Back())
	require.True(t, loc.Back())
	assert.False(t, loc.Back())
	assert.Equal(t, "BMW", loc.Query().Get("make"))

	require.True(t, loc.Forward())
	assert.Equal(t, "Audi", loc.Query().Get("make"))

	loc.Replace(url.Values{"make": {"Opel"}})
	assert.Equal(t, 3, loc.Len())
	require.True(t, loc.Forward())
	assert.False(t, loc.Forward())
	assert.Equal(t, "Kia", loc.Query().Get("make"))
	require.True(t, loc.Back())
	assert.Equal(t, "Opel", loc.Query().Get("make"))

	loc.Push(url.Values{"make": {"Fiat"}})
	assert.Equal(t, 3, loc.Len())
	assert.False(t, loc.Forward())
}

func TestMemoryLocationCopiesValues(t *testing.T) {
	q := url.Values{"make": {"BMW"}}
	loc := NewMemoryLocation("/inventory", q)
	q.Set("make", "Audi")

	got := loc.Query()
	got.Set("make", "Kia")
	assert.Equal(t, "BMW", loc.Query().Get("make"))
	assert.Equal(t, "/inventory", NewMemoryLocation("/inventory", nil).String())
}
