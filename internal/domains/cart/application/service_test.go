package application

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vegefoods/cart-service/internal/domains/cart/domain"
	"github.com/vegefoods/cart-service/internal/domains/cart/ports"
)

type fakeRepo struct {
	payload []byte
	loads   int
	saves   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{payload: []byte(`{"items":[],"promo":null}`)}
}

func (f *fakeRepo) Load(_ context.Context) (domain.Cart, error) {
	f.loads++
	var raw any
	if err := json.Unmarshal(f.payload, &raw); err != nil {
		return domain.EmptyCart(), nil
	}
	return domain.SanitizeRaw(raw), nil
}

func (f *fakeRepo) Save(_ context.Context, cart domain.Cart) (domain.Cart, error) {
	f.saves++
	sanitized := domain.Sanitize(cart)
	payload, err := json.Marshal(sanitized)
	if err != nil {
		return domain.EmptyCart(), err
	}
	f.payload = payload
	return sanitized, nil
}

func newTestStore(t *testing.T) (*Store, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	return NewStore(repo, domain.DefaultCatalog()), repo
}

func tomate() ports.ProductInput {
	return ports.ProductInput{ID: "a", Name: "Tomate", Price: 500}
}

func TestAddItem_MergesQuantitiesByID(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddItem(ctx, tomate(), 2)
	require.NoError(t, err)
	result, err := store.AddItem(ctx, tomate(), 3)
	require.NoError(t, err)

	require.True(t, result.Changed)
	require.Len(t, result.Cart.Items, 1)
	require.Equal(t, "a", result.Cart.Items[0].ID)
	require.Equal(t, int64(5), result.Cart.Items[0].Quantity)
	require.Equal(t, "« Tomate » a été ajouté au panier.", result.Announcement)
}

func TestAddItem_ClampsQuantityAndPrice(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	result, err := store.AddItem(ctx, ports.ProductInput{ID: "x", Name: "Gratuit", Price: -50}, -4)
	require.NoError(t, err)
	require.True(t, result.Changed)
	// Price clamps to 0, so the sanitizer drops the item from the stored record.
	require.Empty(t, result.Cart.Items)

	result, err = store.AddItem(ctx, ports.ProductInput{ID: "y", Name: "Mangue", Price: 1200}, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), result.Cart.Items[0].Quantity)
}

func TestAddItem_MissingIdentityIsSilentNoop(t *testing.T) {
	store, repo := newTestStore(t)
	ctx := context.Background()

	for _, product := range []ports.ProductInput{
		{Name: "Sans id", Price: 100},
		{ID: "z", Price: 100},
	} {
		result, err := store.AddItem(ctx, product, 1)
		require.NoError(t, err)
		require.False(t, result.Changed)
	}
	require.Zero(t, repo.saves)
}

func TestSetQuantity(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddItem(ctx, tomate(), 2)
	require.NoError(t, err)

	result, err := store.SetQuantity(ctx, "a", 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), result.Cart.Items[0].Quantity)

	result, err = store.SetQuantity(ctx, "a", -3)
	require.NoError(t, err)
	require.Equal(t, int64(1), result.Cart.Items[0].Quantity)

	result, err = store.SetQuantity(ctx, "missing", 4)
	require.NoError(t, err)
	require.False(t, result.Changed)
}

func TestRemoveItem_UnknownIDLeavesRecordUntouched(t *testing.T) {
	store, repo := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddItem(ctx, tomate(), 2)
	require.NoError(t, err)
	before := string(repo.payload)

	result, err := store.RemoveItem(ctx, "missing")
	require.NoError(t, err)
	require.False(t, result.Changed)
	require.Equal(t, before, string(repo.payload))

	result, err = store.RemoveItem(ctx, "a")
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.Empty(t, result.Cart.Items)
	require.Equal(t, "« Tomate » a été retiré du panier.", result.Announcement)
}

func TestClear(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddItem(ctx, tomate(), 2)
	require.NoError(t, err)
	_, err = store.ApplyPromo(ctx, "bienvenue")
	require.NoError(t, err)

	result, err := store.Clear(ctx)
	require.NoError(t, err)
	require.Empty(t, result.Cart.Items)
	require.Nil(t, result.Cart.Promo)

	// Clearing an empty cart stays a valid no-op state.
	result, err = store.Clear(ctx)
	require.NoError(t, err)
	require.Empty(t, result.Cart.Items)
	require.Nil(t, result.Cart.Promo)
}

func TestApplyPromo(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddItem(ctx, ports.ProductInput{ID: "a", Name: "Tomate", Price: 10000}, 1)
	require.NoError(t, err)

	result, err := store.ApplyPromo(ctx, "bienvenue")
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, "Code BIENVENUE appliqué : Bienvenue -10%.", result.Message)
	require.Equal(t, int64(1000), result.Totals.Discount)

	// Unknown codes fail and leave the stored promo in place.
	result, err = store.ApplyPromo(ctx, "INVALIDCODE")
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Equal(t, "Ce code n'est pas valide.", result.Message)
	require.NotNil(t, result.Cart.Promo)
	require.Equal(t, "BIENVENUE", result.Cart.Promo.Code)

	// A blank code clears the promo and reports success.
	result, err = store.ApplyPromo(ctx, "   ")
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, "Aucune promotion appliquée.", result.Message)
	require.Nil(t, result.Cart.Promo)
}

func TestCart_RoundTripReturnsCanonicalForm(t *testing.T) {
	store, repo := newTestStore(t)
	ctx := context.Background()

	// Seed the record with data needing normalization.
	repo.payload = []byte(`{"items":[{"id":" a ","name":" Tomate ","price":500,"quantity":2},{"id":"","name":"x","price":5,"quantity":1}],"promo":{"code":"bienvenue"}}`)

	cart, totals, err := store.Cart(ctx)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, "a", cart.Items[0].ID)
	require.Equal(t, "BIENVENUE", cart.Promo.Code)
	require.Equal(t, int64(1000), totals.Subtotal)

	saved, err := repo.Save(ctx, cart)
	require.NoError(t, err)
	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, saved, loaded)
}

func TestObserversNotifiedOnMutation(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	var seen []int64
	store.Subscribe(func(cart domain.Cart) {
		seen = append(seen, cart.ItemCount())
	})

	_, err := store.AddItem(ctx, tomate(), 2)
	require.NoError(t, err)
	_, err = store.SetQuantity(ctx, "missing", 9)
	require.NoError(t, err)
	_, err = store.RemoveItem(ctx, "a")
	require.NoError(t, err)

	// The silent no-op must not notify.
	require.Equal(t, []int64{2, 0}, seen)
}

func TestRefresh_NotifiesWithReloadedState(t *testing.T) {
	store, repo := newTestStore(t)
	ctx := context.Background()

	// Another writer replaced the record underneath us.
	repo.payload = []byte(`{"items":[{"id":"b","name":"Mangue","price":1200,"quantity":3}],"promo":null}`)

	var notified domain.Cart
	store.Subscribe(func(cart domain.Cart) { notified = cart })

	require.NoError(t, store.Refresh(ctx))
	require.Equal(t, int64(3), notified.ItemCount())
}
