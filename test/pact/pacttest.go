//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "vegefoods-cart-api"
	ConsumerName = "vegefoods-storefront"

	StateCartEmpty     = "cart is empty"
	StateCartWithItems = "cart holds the produce baseline"
)

const (
	ExistingItemID = "tomates-bio"
	UnknownPromo   = "RABAIS50"
)

const (
	exampleItemName  = "Tomates bio"
	exampleItemPrice = int64(1500)
	exampleItemImage = "images/product-1.jpg"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleAddItemPayload provides stable test data for pact interactions.
func ExampleAddItemPayload() map[string]any {
	return map[string]any{
		"id":       ExistingItemID,
		"name":     exampleItemName,
		"price":    exampleItemPrice,
		"image":    exampleItemImage,
		"quantity": 2,
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
