package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fixtureCatalog() Catalog {
	return Catalog{
		"BIENVENUE": {Type: PromoPercent, Value: 10, Label: "Bienvenue -10%"},
	}
}

func cartWithSubtotal(subtotal int64) Cart {
	return Cart{Items: []CartItem{{ID: "a", Name: "Tomate", Price: subtotal, Quantity: 1}}}
}

func TestComputeTotals_EmptyCart(t *testing.T) {
	totals := ComputeTotals(EmptyCart(), fixtureCatalog())
	require.Equal(t, Totals{}, totals)
}

func TestComputeTotals_FreeDeliveryBoundary(t *testing.T) {
	catalog := fixtureCatalog()

	atThreshold := ComputeTotals(cartWithSubtotal(FreeDeliveryThreshold), catalog)
	require.Equal(t, int64(0), atThreshold.Delivery)
	require.Equal(t, FreeDeliveryThreshold, atThreshold.Total)

	justBelow := ComputeTotals(cartWithSubtotal(FreeDeliveryThreshold-1), catalog)
	require.Equal(t, DeliveryFee, justBelow.Delivery)
	require.Equal(t, FreeDeliveryThreshold-1+DeliveryFee, justBelow.Total)
}

func TestComputeTotals_PercentPromo(t *testing.T) {
	cart := cartWithSubtotal(10000)
	cart.Promo = &PromoRef{Code: "BIENVENUE"}

	totals := ComputeTotals(cart, fixtureCatalog())
	require.NotNil(t, totals.Promo)
	require.Equal(t, "BIENVENUE", totals.Promo.Code)
	require.Equal(t, int64(1000), totals.Discount)
	require.Equal(t, int64(9000)+DeliveryFee, totals.Total)
}

func TestComputeTotals_DiscountRounding(t *testing.T) {
	cart := cartWithSubtotal(105)
	cart.Promo = &PromoRef{Code: "BIENVENUE"}

	totals := ComputeTotals(cart, fixtureCatalog())
	// 105 * 10% = 10.5, rounded to 11.
	require.Equal(t, int64(11), totals.Discount)
}

func TestComputeTotals_UnknownPromoIgnored(t *testing.T) {
	cart := cartWithSubtotal(10000)
	cart.Promo = &PromoRef{Code: "DISPARU"}

	totals := ComputeTotals(cart, fixtureCatalog())
	require.Nil(t, totals.Promo)
	require.Equal(t, int64(0), totals.Discount)
	require.Equal(t, int64(10000)+DeliveryFee, totals.Total)
}

func TestComputeTotals_AddingItemsNeverDecreasesTotals(t *testing.T) {
	catalog := fixtureCatalog()
	cart := EmptyCart()
	cart.Promo = &PromoRef{Code: "BIENVENUE"}

	prev := ComputeTotals(cart, catalog)
	prices := []int64{250, 999, 4000, 18000, 25000}
	for i, price := range prices {
		cart.Items = append(cart.Items, CartItem{
			ID:       string(rune('a' + i)),
			Name:     "Produit",
			Price:    price,
			Quantity: int64(i + 1),
		})
		next := ComputeTotals(cart, catalog)
		require.GreaterOrEqual(t, next.Subtotal, prev.Subtotal)
		require.GreaterOrEqual(t, next.Total, prev.Total)
		prev = next
	}
}

func TestCatalogLookup(t *testing.T) {
	catalog := fixtureCatalog()

	code, promo, ok := catalog.Lookup("  bienvenue ")
	require.True(t, ok)
	require.Equal(t, "BIENVENUE", code)
	require.Equal(t, "Bienvenue -10%", promo.Label)

	_, _, ok = catalog.Lookup("INVALIDCODE")
	require.False(t, ok)
}
