// Package cart models the per-user shopping cart snapshot stored on the
// user record: product id → size → quantity.
package cart

import "strings"

// NoSize is the size key used for products sold without sizes
const NoSize = "nosize"

// jewelleryCategories are the category spellings sold without sizes
var jewelleryCategories = map[string]struct{}{
	"jewellery": {},
	"jewelry":   {},
	"jewelery":  {},
}

// Cart maps product IDs to size keys to quantities
type Cart map[string]map[string]int

// New returns an empty cart
func New() Cart {
	return Cart{}
}

// SizeKey returns the key a size is stored under
func SizeKey(size string) string {
	size = strings.TrimSpace(size)
	if size == "" {
		return NoSize
	}
	return size
}

// IsJewelleryCategory reports whether items in the category are sold without sizes
func IsJewelleryCategory(category string) bool {
	_, ok := jewelleryCategories[strings.ToLower(strings.TrimSpace(category))]
	return ok
}

// Add increments the quantity of productID/size by one
func (c Cart) Add(productID, size string) {
	key := SizeKey(size)
	sizes, ok := c[productID]
	if !ok {
		sizes = make(map[string]int)
		c[productID] = sizes
	}
	sizes[key]++
}

// SetQuantity sets the quantity of productID/size. A non-positive quantity
// removes the entry, and a product left without sizes is dropped.
func (c Cart) SetQuantity(productID, size string, quantity int) {
	key := SizeKey(size)
	if quantity <= 0 {
		if sizes, ok := c[productID]; ok {
			delete(sizes, key)
			if len(sizes) == 0 {
				delete(c, productID)
			}
		}
		return
	}
	sizes, ok := c[productID]
	if !ok {
		sizes = make(map[string]int)
		c[productID] = sizes
	}
	sizes[key] = quantity
}

// Quantity returns the quantity stored for productID/size
func (c Cart) Quantity(productID, size string) int {
	return c[productID][SizeKey(size)]
}

// TotalQuantity sums every quantity in the cart
func (c Cart) TotalQuantity() int {
	total := 0
	for _, sizes := range c {
		for _, qty := range sizes {
			total += qty
		}
	}
	return total
}

// Normalize returns a copy without blank product ids, blank sizes or
// non-positive quantities.
func (c Cart) Normalize() Cart {
	out := make(Cart, len(c))
	for productID, sizes := range c {
		if strings.TrimSpace(productID) == "" {
			continue
		}
		for size, qty := range sizes {
			if strings.TrimSpace(size) == "" || qty <= 0 {
				continue
			}
			if _, ok := out[productID]; !ok {
				out[productID] = make(map[string]int)
			}
			out[productID][size] = qty
		}
	}
	return out
}

// Clone returns a deep copy
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for productID, sizes := range c {
		copied := make(map[string]int, len(sizes))
		for size, qty := range sizes {
			copied[size] = qty
		}
		out[productID] = copied
	}
	return out
}

// Merge combines two carts. Entries in base win; incoming only fills
// product/size pairs that base does not have. Both sides are normalized.
func Merge(base, incoming Cart) Cart {
	merged := base.Normalize()
	for productID, sizes := range incoming.Normalize() {
		target, ok := merged[productID]
		if !ok {
			target = make(map[string]int, len(sizes))
			merged[productID] = target
		}
		for size, qty := range sizes {
			if _, exists := target[size]; !exists {
				target[size] = qty
			}
		}
	}
	return merged
}
