package domain

const (
	// FreeDeliveryThreshold is the subtotal at or above which delivery is free.
	FreeDeliveryThreshold int64 = 40000
	// DeliveryFee is the flat fee charged below the free threshold.
	DeliveryFee int64 = 2000
)

// Totals is the derived numeric summary of a cart. It is computed on
// demand and never persisted.
type Totals struct {
	Subtotal int64
	Discount int64
	Delivery int64
	Total    int64
	Promo    *ActivePromo
}

// ComputeTotals derives order totals from a sanitized cart. Pure and
// deterministic: subtotal is the sum of line totals, discount applies
// the resolved percent promo rounded to the nearest unit, delivery is
// waived for an empty cart or at the free threshold, and the grand
// total never goes negative.
func ComputeTotals(cart Cart, catalog Catalog) Totals {
	totals := Totals{}
	for _, item := range cart.Items {
		totals.Subtotal += item.LineTotal()
	}
	if promo, ok := catalog.Resolve(cart.Promo); ok {
		totals.Promo = &promo
		if promo.Type == PromoPercent {
			totals.Discount = roundedPercent(totals.Subtotal, promo.Value)
		}
	}
	if totals.Subtotal != 0 && totals.Subtotal < FreeDeliveryThreshold {
		totals.Delivery = DeliveryFee
	}
	totals.Total = totals.Subtotal - totals.Discount + totals.Delivery
	if totals.Total < 0 {
		totals.Total = 0
	}
	return totals
}

// roundedPercent computes round(amount*percent/100) for non-negative amounts.
func roundedPercent(amount, percent int64) int64 {
	return (amount*percent + 50) / 100
}
