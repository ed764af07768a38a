//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/vegefoods/cart-service/test/pact"

	cartserver "github.com/vegefoods/cart-service/go"
	cartmemory "github.com/vegefoods/cart-service/internal/domains/cart/adapters/memory"
	cartobs "github.com/vegefoods/cart-service/internal/domains/cart/adapters/observability"
	cartapp "github.com/vegefoods/cart-service/internal/domains/cart/application"
	cartdomain "github.com/vegefoods/cart-service/internal/domains/cart/domain"
	checkoutobs "github.com/vegefoods/cart-service/internal/domains/checkout/adapters/observability"
	checkoutworkflows "github.com/vegefoods/cart-service/internal/domains/checkout/adapters/workflows"
	checkoutapp "github.com/vegefoods/cart-service/internal/domains/checkout/application"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestCartProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCartEmpty: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetCart(t)
			return nil, nil
		},
		pacttest.StateCartWithItems: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetCart(t)
			if setup {
				app.seedCart(t)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.resetCart(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	repo   *cartmemory.Store
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	repo := cartmemory.NewStore()
	cartService := cartobs.New(cartapp.NewStore(repo, cartdomain.DefaultCatalog()))
	checkoutService := checkoutobs.New(checkoutapp.NewService(cartService))
	workflows := checkoutworkflows.NewInlineOrderWorkflows(checkoutService)

	handlers := cartserver.ApiHandleFunctions{
		CartAPI:     cartserver.NewCartAPI(cartService),
		ViewsAPI:    cartserver.NewViewsAPI(cartService),
		CheckoutAPI: cartserver.NewCheckoutAPI(checkoutService, workflows),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = cartserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		repo:   repo,
		server: server,
	}
}

func (a *contractProviderApp) resetCart(t testing.TB) {
	t.Helper()
	_, err := a.repo.Save(context.Background(), cartdomain.EmptyCart())
	require.NoError(t, err)
}

func (a *contractProviderApp) seedCart(t testing.TB) {
	t.Helper()
	_, err := a.repo.Save(context.Background(), cartdomain.Cart{
		Items: []cartdomain.CartItem{{
			ID:       pacttest.ExistingItemID,
			Name:     "Tomates bio",
			Price:    1500,
			Quantity: 2,
			Image:    "images/product-1.jpg",
			URL:      cartdomain.DefaultProductURL,
		}},
	})
	require.NoError(t, err)
}
