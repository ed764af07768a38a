package main

import (
	"context"
	"log"

	"github.com/vegefoods/cart-service/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("cart API failed: %v", err)
	}
}
