//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/vegefoods/cart-service/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type cartPayload struct {
	Items     []cartItemPayload `json:"items"`
	ItemCount int64             `json:"itemCount"`
	Totals    totalsPayload     `json:"totals"`
}

type cartItemPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

type totalsPayload struct {
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Delivery int64 `json:"delivery"`
	Total    int64 `json:"total"`
}

type mutationPayload struct {
	Cart         cartPayload `json:"cart"`
	Changed      bool        `json:"changed"`
	Announcement string      `json:"announcement"`
}

type promoPayload struct {
	Cart    cartPayload `json:"cart"`
	Success bool        `json:"success"`
	Message string      `json:"message"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestStorefrontContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	itemMatcher := matchers.Map{
		"id":       matchers.S(pacttest.ExistingItemID),
		"name":     matchers.Like("Tomates bio"),
		"price":    matchers.Like(1500),
		"quantity": matchers.Like(2),
	}
	cartMatcher := matchers.Map{
		"items":     matchers.ArrayMinLike(itemMatcher, 1),
		"itemCount": matchers.Like(2),
		"totals": matchers.Map{
			"subtotal": matchers.Like(3000),
			"discount": matchers.Like(0),
			"delivery": matchers.Like(2000),
			"total":    matchers.Like(5000),
		},
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateCartEmpty).
		UponReceiving("a request to add a product to the cart").
		WithRequest("POST", "/v2/cart/items", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.MapMatcher{
				"id":       matchers.S(pacttest.ExistingItemID),
				"name":     matchers.Like("Tomates bio"),
				"price":    matchers.Like(1500),
				"quantity": matchers.Like(2),
			})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"cart":         cartMatcher,
				"changed":      matchers.Like(true),
				"announcement": matchers.Like("« Tomates bio » a été ajouté au panier."),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCartWithItems).
		UponReceiving("a request for the current cart").
		WithRequest("GET", "/v2/cart").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(cartMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateCartWithItems).
		UponReceiving("a request to apply an unknown promo code").
		WithRequest("POST", "/v2/cart/promo", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.MapMatcher{"code": matchers.S(pacttest.UnknownPromo)})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"cart":    cartMatcher,
				"success": matchers.Like(false),
				"message": matchers.S("Ce code n'est pas valide."),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCartEmpty).
		UponReceiving("a checkout submission against an empty cart").
		WithRequest("POST", "/v2/checkout/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.MapMatcher{"firstName": matchers.Like("Awa")})
		}).
		WillRespondWith(http.StatusUnprocessableEntity, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/unprocessable-entity"),
				"title":  matchers.S("Unprocessable Entity"),
				"status": matchers.Like(http.StatusUnprocessableEntity),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newCartClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		added, err := client.AddItem(ctx, pacttest.ExampleAddItemPayload())
		if err != nil {
			return fmt.Errorf("add item: %w", err)
		}
		if !added.Changed || len(added.Cart.Items) == 0 {
			return fmt.Errorf("expected the add mutation to change the cart")
		}

		cart, err := client.GetCart(ctx)
		if err != nil {
			return fmt.Errorf("get cart: %w", err)
		}
		if cart.ItemCount == 0 {
			return fmt.Errorf("expected a non-empty cart")
		}

		promo, err := client.ApplyPromo(ctx, pacttest.UnknownPromo)
		if err != nil {
			return fmt.Errorf("apply promo: %w", err)
		}
		if promo.Success {
			return fmt.Errorf("expected unknown promo to be rejected")
		}

		if _, err := client.SubmitOrder(ctx, map[string]any{"firstName": "Awa"}); err == nil {
			return fmt.Errorf("expected 422 for an empty-cart submission")
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusUnprocessableEntity {
			return fmt.Errorf("expected 422, got %d", apiErr.Status())
		}

		return nil
	})
	require.NoError(t, err)
}

type cartClient struct {
	baseURL    string
	httpClient *http.Client
}

func newCartClient(config pactconsumer.MockServerConfig) *cartClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &cartClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *cartClient) AddItem(ctx context.Context, payload map[string]any) (*mutationPayload, error) {
	var result mutationPayload
	if err := c.post(ctx, "/v2/cart/items", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *cartClient) GetCart(ctx context.Context) (*cartPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/cart", nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload cartPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *cartClient) ApplyPromo(ctx context.Context, code string) (*promoPayload, error) {
	var result promoPayload
	if err := c.post(ctx, "/v2/cart/promo", map[string]any{"code": code}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *cartClient) SubmitOrder(ctx context.Context, payload map[string]any) (map[string]any, error) {
	var result map[string]any
	if err := c.post(ctx, "/v2/checkout/orders", payload, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *cartClient) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
