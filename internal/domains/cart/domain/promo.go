package domain

import "strings"

// PromoType enumerates supported discount mechanics.
type PromoType string

// PromoPercent takes a percentage off the subtotal.
const PromoPercent PromoType = "percent"

// Promo is a catalog discount rule. Value is a percentage between 0 and
// 100 for percent-type promos.
type Promo struct {
	Type  PromoType
	Value int64
	Label string
}

// ActivePromo is a promo resolved from a cart reference.
type ActivePromo struct {
	Code string
	Promo
}

// Catalog maps uppercase promo codes to their rules. It is read-only,
// process-wide configuration injected into the totals engine and the
// cart store; tests supply fixture catalogs.
type Catalog map[string]Promo

// DefaultCatalog returns the promotions currently offered by the shop.
func DefaultCatalog() Catalog {
	return Catalog{
		"BIENVENUE": {Type: PromoPercent, Value: 10, Label: "Bienvenue -10%"},
	}
}

// Resolve looks up a cart's promo reference. A nil reference or a code
// unknown to the catalog resolves to nothing; a stale stored code is
// never an error.
func (c Catalog) Resolve(ref *PromoRef) (ActivePromo, bool) {
	if ref == nil {
		return ActivePromo{}, false
	}
	code := strings.ToUpper(strings.TrimSpace(ref.Code))
	promo, ok := c[code]
	if !ok {
		return ActivePromo{}, false
	}
	return ActivePromo{Code: code, Promo: promo}, true
}

// Lookup resolves a user-entered code after normalization.
func (c Catalog) Lookup(code string) (string, Promo, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	promo, ok := c[normalized]
	return normalized, promo, ok
}
