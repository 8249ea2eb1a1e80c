package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"careercrafter/career-crafter-api/internal/config"
	"careercrafter/career-crafter-api/internal/services"
)

// Rebuilds the Qdrant career index from the configured catalog.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := config.NewLogger(cfg.Log, cfg.Server.Env)

	if cfg.Gemini.APIKey == "" || cfg.Qdrant.URL == "" {
		log.Fatal("GEMINI_API_KEY and QDRANT_URL are required to build the career index")
	}

	ctx := context.Background()

	catalog, err := services.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		log.WithError(err).Fatal("failed to load catalog")
	}

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize gemini")
	}

	careerIndex, err := services.NewCareerIndex(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize qdrant")
	}
	if err := careerIndex.InitCollection(ctx); err != nil {
		log.WithError(err).Fatal("failed to initialize collection")
	}

	promptBuilder := services.NewPromptBuilder()
	listings := catalog.ListAll()

	failed := 0
	for i, listing := range listings {
		entry := log.WithField("career", listing.Title)

		embedding, err := geminiService.GenerateEmbedding(ctx, promptBuilder.BuildCareerDocument(listing))
		if err != nil {
			entry.WithError(err).Error("failed to embed career")
			failed++
			continue
		}

		if err := careerIndex.IndexCareer(ctx, i, listing, embedding); err != nil {
			entry.WithError(err).Error("failed to index career")
			failed++
			continue
		}
		entry.Info("career indexed")
	}

	log.WithFields(logrus.Fields{
		"indexed": len(listings) - failed,
		"failed":  failed,
	}).Info("career index rebuilt")

	if failed > 0 {
		os.Exit(1)
	}
}
