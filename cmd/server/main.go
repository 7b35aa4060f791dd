package main

import (
	"context"
	"log"
	"os"

	httpadapter "resume-studio/internal/adapter/http"
	repo "resume-studio/internal/adapter/repository"
	"resume-studio/internal/infrastructure/migration"
	"resume-studio/internal/usecase"
	infra "resume-studio/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
)

func main() {
	ctx := context.Background()

	// infra setup
	pool, err := infra.NewPool(ctx)
	if err != nil {
		log.Printf("warning: DB not available: %v", err)
	}
	if pool != nil {
		if err := migration.RunMigrations(ctx, pool); err != nil {
			log.Printf("warning: migrations failed: %v", err)
		}
	}

	renderer := infra.NewChromedpRenderer()

	templatesRepo := repo.NewTemplatesRepo(pool)
	resumesRepo := repo.NewResumesRepo(pool)
	exporter := usecase.NewExporter(renderer)

	if err := templatesRepo.SeedSystemTemplate(ctx, "Classic", "Built-in starter template", usecase.DefaultTemplateAST()); err != nil {
		log.Printf("warning: failed to seed system template: %v", err)
	}

	app := fiber.New()

	h := httpadapter.NewHandler(templatesRepo, resumesRepo, exporter)
	h.Register(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
