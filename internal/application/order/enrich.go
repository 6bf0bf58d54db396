package order

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tinymillion/backend/internal/domain/cart"
	"github.com/tinymillion/backend/internal/domain/catalog"
	"github.com/tinymillion/backend/internal/domain/order"
	"github.com/tinymillion/backend/internal/domain/shared"
)

var productIDKeys = []string{"product", "productId", "_id", "id"}

// enrichItems turns raw cart lines into order items, filling names, prices
// and images from the catalog. Lines without a usable product id or a
// positive quantity are dropped; a fractional quantity fails the order.
func (s *OrderService) enrichItems(ctx context.Context, raw []RawItem) ([]order.Item, error) {
	if len(raw) == 0 {
		return []order.Item{}, nil
	}

	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]struct{}, len(raw))
	for _, item := range raw {
		if id, ok := pickProductID(item); ok {
			if _, dup := seen[id]; !dup {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	lookup := make(map[uuid.UUID]*catalog.Product, len(ids))
	if len(ids) > 0 {
		products, err := s.products.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("load order products: %w", err)
		}
		for _, p := range products {
			lookup[p.ID] = p
		}
	}

	items := make([]order.Item, 0, len(raw))
	for _, item := range raw {
		id, ok := pickProductID(item)
		if !ok {
			continue
		}
		qty, ok := toNumber(firstPresent(item, "quantity", "qty"))
		if !ok || qty <= 0 {
			continue
		}
		if qty != math.Trunc(qty) || qty > math.MaxInt32 {
			return nil, shared.InvalidInput("Item quantity must be a whole number")
		}
		quantity := int(qty)
		product := lookup[id]

		price, ok := toDecimal(item["price"])
		if !ok && product != nil {
			price, ok = product.Price, true
		}
		if !ok || price.IsNegative() {
			price = decimal.Zero
		}

		size := toText(item["size"])
		if size == "" {
			size = toText(item["variant"])
		}
		if size == "" {
			size = cart.NoSize
		}

		name := toText(item["name"])
		if name == "" && product != nil {
			name = product.Name
		}
		if name == "" {
			name = "Product"
		}

		image := itemImage(item["image"])
		if image == "" && product != nil {
			image = product.PrimaryImage()
		}

		items = append(items, order.Item{
			ProductID: id,
			Name:      name,
			Price:     price,
			Size:      size,
			Quantity:  quantity,
			Image:     image,
		})
	}
	return items, nil
}

func pickProductID(item RawItem) (uuid.UUID, bool) {
	for _, key := range productIDKeys {
		raw := toText(item[key])
		if raw == "" {
			continue
		}
		if id, err := uuid.Parse(raw); err == nil {
			return id, true
		}
	}
	return uuid.Nil, false
}

func firstPresent(item RawItem, keys ...string) any {
	for _, k := range keys {
		if v, ok := item[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func itemImage(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		for _, img := range t {
			if s, ok := img.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	case []string:
		for _, s := range t {
			if strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return strings.TrimSpace(t.String())
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func toNumber(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case nil:
		return decimal.Zero, false
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		return d, err == nil
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	}
	f, ok := toNumber(v)
	if !ok {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}
