package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeRaw_DropsInvalidItems(t *testing.T) {
	raw := map[string]any{
		"items": []any{
			map[string]any{"id": " a ", "name": " Tomate ", "price": float64(500), "quantity": float64(2)},
			map[string]any{"id": "", "name": "Sans id", "price": float64(100), "quantity": float64(1)},
			map[string]any{"id": "b", "name": "", "price": float64(100), "quantity": float64(1)},
			map[string]any{"id": "c", "name": "Gratuit", "price": float64(0), "quantity": float64(1)},
			map[string]any{"id": "d", "name": "Vide", "price": float64(100), "quantity": float64(0)},
			map[string]any{"id": "e", "name": "Prix texte", "price": "abc", "quantity": float64(1)},
			"not-an-object",
		},
	}

	cart := SanitizeRaw(raw)
	require.Len(t, cart.Items, 1)
	require.Equal(t, "a", cart.Items[0].ID)
	require.Equal(t, "Tomate", cart.Items[0].Name)
	require.Equal(t, int64(500), cart.Items[0].Price)
	require.Equal(t, int64(2), cart.Items[0].Quantity)
	require.Equal(t, DefaultProductURL, cart.Items[0].URL)
}

func TestSanitizeRaw_NonObjectInputs(t *testing.T) {
	for _, raw := range []any{nil, "garbage", float64(42), []any{"x"}, true} {
		cart := SanitizeRaw(raw)
		require.True(t, cart.IsEmpty())
		require.Nil(t, cart.Promo)
	}
}

func TestSanitizeRaw_PromoNormalization(t *testing.T) {
	cart := SanitizeRaw(map[string]any{"promo": map[string]any{"code": "  bienvenue "}})
	require.NotNil(t, cart.Promo)
	require.Equal(t, "BIENVENUE", cart.Promo.Code)

	cart = SanitizeRaw(map[string]any{"promo": map[string]any{"code": "   "}})
	require.Nil(t, cart.Promo)

	cart = SanitizeRaw(map[string]any{"promo": map[string]any{"code": float64(7)}})
	require.Nil(t, cart.Promo)
}

func TestSanitizeRaw_CoercesNumericStrings(t *testing.T) {
	cart := SanitizeRaw(map[string]any{
		"items": []any{
			map[string]any{"id": "a", "name": "Tomate", "price": "1500", "quantity": "3"},
		},
	})
	require.Len(t, cart.Items, 1)
	require.Equal(t, int64(1500), cart.Items[0].Price)
	require.Equal(t, int64(3), cart.Items[0].Quantity)
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []any{
		nil,
		map[string]any{},
		map[string]any{"items": "nope", "promo": "nope"},
		map[string]any{
			"items": []any{
				map[string]any{"id": "a", "name": "Tomate", "price": float64(500), "quantity": float64(2), "image": "t.jpg", "category": "Légumes"},
				map[string]any{"id": "b", "name": "Mangue", "price": float64(1200.9), "quantity": float64(1)},
			},
			"promo": map[string]any{"code": "bienvenue"},
		},
	}

	for _, raw := range inputs {
		once := SanitizeRaw(raw)

		// Round-trip through the persisted representation.
		payload, err := json.Marshal(once)
		require.NoError(t, err)
		var decoded any
		require.NoError(t, json.Unmarshal(payload, &decoded))
		twice := SanitizeRaw(decoded)

		require.Equal(t, once, twice)
		require.Equal(t, once, Sanitize(once))
	}
}

func TestCartItemCountAndClone(t *testing.T) {
	cart := Cart{
		Items: []CartItem{
			{ID: "a", Name: "Tomate", Price: 500, Quantity: 2},
			{ID: "b", Name: "Mangue", Price: 1200, Quantity: 3},
		},
		Promo: &PromoRef{Code: "BIENVENUE"},
	}
	require.Equal(t, int64(5), cart.ItemCount())
	require.Equal(t, 1, cart.FindItem("b"))
	require.Equal(t, -1, cart.FindItem("zz"))

	clone := cart.Clone()
	clone.Items[0].Quantity = 99
	clone.Promo.Code = "AUTRE"
	require.Equal(t, int64(2), cart.Items[0].Quantity)
	require.Equal(t, "BIENVENUE", cart.Promo.Code)
}
