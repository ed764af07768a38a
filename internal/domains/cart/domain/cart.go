package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	// StorageKey identifies the persisted cart record in the backing store.
	StorageKey = "vegefoods-cart-v1"
	// DefaultProductURL is substituted when an item carries no product page link.
	DefaultProductURL = "product-single.html"
)

// CartItem is a selected product line. Identity is the product id; a
// sanitized cart never carries an item with an empty id, an empty name,
// a non-positive price, or a non-positive quantity.
type CartItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
	Image    string `json:"image"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// LineTotal is the item subtotal (unit price times quantity).
func (i CartItem) LineTotal() int64 {
	return i.Price * i.Quantity
}

// PromoRef references a catalog promotion by its uppercase code. The
// reference may point at a code the catalog no longer knows; it then has
// no effect on totals but stays persisted.
type PromoRef struct {
	Code string `json:"code"`
}

// Cart is the durable aggregate: selected items in insertion order plus
// at most one promo reference.
type Cart struct {
	Items []CartItem `json:"items"`
	Promo *PromoRef  `json:"promo"`
}

// EmptyCart returns the zero-state cart used when no record exists.
func EmptyCart() Cart {
	return Cart{Items: []CartItem{}}
}

// IsEmpty reports whether the cart holds no items.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount sums the quantities of all items.
func (c Cart) ItemCount() int64 {
	var count int64
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// FindItem returns the index of the item with the given id, or -1.
func (c Cart) FindItem(id string) int {
	for i, item := range c.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (c Cart) Clone() Cart {
	clone := Cart{Items: make([]CartItem, len(c.Items))}
	copy(clone.Items, c.Items)
	if c.Promo != nil {
		promo := *c.Promo
		clone.Promo = &promo
	}
	return clone
}

// Sanitize normalizes a typed cart into its canonical form: item ids and
// names trimmed, invalid items dropped, the promo code trimmed and
// upper-cased or removed when empty. It never fails and is idempotent.
func Sanitize(cart Cart) Cart {
	out := Cart{Items: make([]CartItem, 0, len(cart.Items))}
	for _, item := range cart.Items {
		item.ID = strings.TrimSpace(item.ID)
		item.Name = strings.TrimSpace(item.Name)
		if item.URL == "" {
			item.URL = DefaultProductURL
		}
		if item.ID == "" || item.Name == "" || item.Price <= 0 || item.Quantity <= 0 {
			continue
		}
		out.Items = append(out.Items, item)
	}
	if cart.Promo != nil {
		code := strings.ToUpper(strings.TrimSpace(cart.Promo.Code))
		if code != "" {
			out.Promo = &PromoRef{Code: code}
		}
	}
	return out
}

// SanitizeRaw is the gate between untrusted persisted data and the rest
// of the system. It accepts any decoded JSON value and coerces it into a
// well-formed Cart, dropping whatever cannot be salvaged. It never fails.
func SanitizeRaw(raw any) Cart {
	cart := EmptyCart()
	record, ok := raw.(map[string]any)
	if !ok {
		return cart
	}
	if items, ok := record["items"].([]any); ok {
		for _, entry := range items {
			fields, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			cart.Items = append(cart.Items, CartItem{
				ID:       coerceString(fields["id"]),
				Name:     coerceString(fields["name"]),
				Price:    coerceAmount(fields["price"]),
				Quantity: coerceAmount(fields["quantity"]),
				Image:    coerceString(fields["image"]),
				URL:      coerceString(fields["url"]),
				Category: coerceString(fields["category"]),
			})
		}
	}
	if promo, ok := record["promo"].(map[string]any); ok {
		if code, ok := promo["code"].(string); ok {
			cart.Promo = &PromoRef{Code: code}
		}
	}
	return Sanitize(cart)
}

func coerceString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

// coerceAmount turns a loosely typed JSON value into an integer amount.
// Fractions truncate toward zero; anything non-numeric becomes 0.
func coerceAmount(v any) int64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return int64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return int64(f)
		}
		return 0
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return int64(f)
		}
		return 0
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}
