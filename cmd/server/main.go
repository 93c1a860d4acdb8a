package main

import (
	"log"

	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/app"
	"github.com/projeto-integrador-comp/doc-express-BackEnd/internal/config"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}
