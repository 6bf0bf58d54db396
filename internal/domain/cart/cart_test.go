package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeKey(t *testing.T) {
	assert.Equal(t, NoSize, SizeKey(""))
	assert.Equal(t, NoSize, SizeKey("   "))
	assert.Equal(t, "M", SizeKey("M"))
}

func TestIsJewelleryCategory(t *testing.T) {
	for _, category := range []string{"Jewellery", "jewelry", " JEWELERY "} {
		assert.True(t, IsJewelleryCategory(category), category)
	}
	assert.False(t, IsJewelleryCategory("Men"))
}

func TestCart_Add(t *testing.T) {
	c := New()
	c.Add("p1", "M")
	c.Add("p1", "M")
	c.Add("p1", "")

	assert.Equal(t, 2, c.Quantity("p1", "M"))
	assert.Equal(t, 1, c.Quantity("p1", NoSize))
	assert.Equal(t, 3, c.TotalQuantity())
}

func TestCart_SetQuantity(t *testing.T) {
	t.Run("sets quantity", func(t *testing.T) {
		c := New()
		c.SetQuantity("p1", "S", 4)
		assert.Equal(t, 4, c.Quantity("p1", "S"))
	})

	t.Run("zero removes size and empty product", func(t *testing.T) {
		c := Cart{"p1": {"S": 2}}
		c.SetQuantity("p1", "S", 0)
		_, ok := c["p1"]
		assert.False(t, ok)
	})

	t.Run("negative keeps sibling sizes", func(t *testing.T) {
		c := Cart{"p1": {"S": 2, "M": 1}}
		c.SetQuantity("p1", "S", -1)
		assert.Equal(t, Cart{"p1": {"M": 1}}, c)
	})

	t.Run("removing unknown product is a no-op", func(t *testing.T) {
		c := New()
		c.SetQuantity("missing", "S", 0)
		assert.Empty(t, c)
	})
}

func TestCart_Normalize(t *testing.T) {
	c := Cart{
		"p1": {"S": 1, "": 3, "M": 0},
		"":   {"S": 1},
		"p2": {"L": -2},
	}
	assert.Equal(t, Cart{"p1": {"S": 1}}, c.Normalize())
}

func TestMerge(t *testing.T) {
	base := Cart{"p1": {"S": 1}}
	incoming := Cart{
		"p1": {"S": 5, "M": 2},
		"p2": {NoSize: 1},
		"p3": {"L": 0},
	}

	merged := Merge(base, incoming)

	assert.Equal(t, Cart{
		"p1": {"S": 1, "M": 2},
		"p2": {NoSize: 1},
	}, merged)
	assert.Equal(t, 1, base["p1"]["S"], "base must not be mutated")
	_, ok := base["p2"]
	assert.False(t, ok)
}

func TestMerge_NilSides(t *testing.T) {
	assert.Equal(t, Cart{}, Merge(nil, nil))
	assert.Equal(t, Cart{"p": {"S": 1}}, Merge(nil, Cart{"p": {"S": 1}}))
}

func TestCart_Clone(t *testing.T) {
	c := Cart{"p1": {"S": 1}}
	clone := c.Clone()
	clone["p1"]["S"] = 9
	assert.Equal(t, 1, c["p1"]["S"])
}
