package main

import (
	"log"

	"github.com/MrSnakeDoc/bookingdash/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ bookingdash failed to start: %v", err)
	}
}
