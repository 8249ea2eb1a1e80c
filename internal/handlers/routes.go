package handlers

import "github.com/gofiber/fiber/v2"

type Routes struct {
	Health          *HealthHandler
	Recommendations *RecommendationHandler
	Resume          *ResumeHandler
	Analyses        *AnalysisHandler
	Register        *RegisterHandler
}

func (r Routes) Mount(app *fiber.App) {
	app.Get("/", r.Health.HandleRoot)
	app.Get("/health", r.Health.HandleHealth)

	api := app.Group("/api")
	api.Post("/career-recommendations", r.Recommendations.HandleRecommend)
	api.Post("/career-assessment", r.Recommendations.HandleAssessment)
	api.Post("/analyze-resume", r.Resume.HandleAnalyze)
	api.Post("/register", r.Register.HandleRegister)
	api.Get("/analyses/:id", r.Analyses.HandleGetAnalysis)
	api.Get("/analyses/:id/report.xlsx", r.Analyses.HandleGetReport)
}
