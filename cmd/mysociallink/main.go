package main

import (
	"log"

	"github.com/charlespura/MySocialLink/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ mysociallink failed to start: %v", err)
	}
}
