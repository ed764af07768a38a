package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	cartpostgres "github.com/vegefoods/cart-service/internal/domains/cart/adapters/persistence/postgres"
	platformpostgres "github.com/vegefoods/cart-service/internal/platform/postgres"
)

// Default matches the retention the storefront tolerates for abandoned
// carts: thirty days.
const defaultPurgeTTL = 720 * time.Hour

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge carts")
	}

	store := cartpostgres.NewStore(db, cartpostgres.WithLogger(logger))
	purged, err := store.PurgeStale(ctx, purgeTTLFromEnv())
	if err != nil {
		log.Fatalf("failed to purge stale carts: %v", err)
	}
	log.Printf("cart purge completed, %d record(s) removed", purged)
}

func purgeTTLFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("CART_PURGE_TTL_HOURS"))
	if raw == "" {
		return defaultPurgeTTL
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return defaultPurgeTTL
	}
	return time.Duration(hours) * time.Hour
}
