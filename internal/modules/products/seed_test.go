package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestSeedListAppliesDefaults(t *testing.T) {
	items, err := SeedList()
	require.NoError(t, err)
	require.NotEmpty(t, items)

	seen := map[string]bool{}
	for _, p := range items {
		assert.False(t, seen[p.ID], "duplicate seed id %s", p.ID)
		seen[p.ID] = true

		assert.True(t, p.Category.Valid(), p.ID)
		assert.True(t, p.Gender.Valid(), p.ID)
		assert.Equal(t, datatypes.JSONSlice[string]{"P", "M", "G", "GG"}, p.Sizes, p.ID)
		assert.NotEmpty(t, p.Images, p.ID)
		require.NotNil(t, p.Stock, p.ID)
		assert.Positive(t, *p.Stock, p.ID)
	}
}

func TestParseSeedDefaults(t *testing.T) {
	items, err := ParseSeed([]byte(`
- id: s1
  name: Polo
  brand: UT
  ref: R1
  price: "10.50"
  category: Camisas Polo
  image: /p.jpg
`))
	require.NoError(t, err)
	require.Len(t, items, 1)

	p := items[0]
	assert.Equal(t, GenderMale, p.Gender)
	assert.Equal(t, 10, *p.Stock)
	assert.Equal(t, datatypes.JSONSlice[string]{"/p.jpg"}, p.Images)
	assert.Equal(t, "10.5", p.Price.String())
}

func TestParseSeedRejectsBadRows(t *testing.T) {
	_, err := ParseSeed([]byte(`- {id: s1, name: X, price: "abc", category: Camisas Polo}`))
	assert.ErrorContains(t, err, "price")

	_, err = ParseSeed([]byte(`- {id: s1, name: X, price: "1", category: Sapatos}`))
	assert.ErrorContains(t, err, "category")

	_, err = ParseSeed([]byte(`- {name: X}`))
	assert.ErrorContains(t, err, "id and name")
}
