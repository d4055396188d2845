package main

import (
	"log"
	"sway-pr/internal/api"
	"sway-pr/internal/config"
	"sway-pr/internal/database"
	"sway-pr/internal/outreach"
	"sway-pr/internal/webhook"
	"sway-pr/internal/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	database.InitDB(cfg)

	r := gin.Default()

	// CORS Middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	hub := ws.NewHub()
	go hub.Run()

	sender := webhook.NewSender(cfg)
	manager := outreach.NewManager(cfg.SessionTTL)

	contactHandler := api.NewContactHandler()
	staffHandler := api.NewStaffHandler()
	uploadHandler := api.NewUploadHandler()
	templateHandler := api.NewTemplateHandler()
	pressReleaseHandler := api.NewPressReleaseHandler()
	reportHandler := api.NewReportHandler()
	companyHandler := api.NewCompanyHandler(sender)
	importHandler := api.NewImportHandler(hub)
	outreachHandler := api.NewOutreachHandler(manager, sender, hub)

	r.GET("/ws", func(c *gin.Context) {
		hub.ServeWs(c.Writer, c.Request)
	})

	apiGroup := r.Group("/api")
	{
		// Contact Picker Routes
		apiGroup.GET("/media-contacts", contactHandler.GetMediaContacts)
		apiGroup.GET("/outlets", contactHandler.GetOutlets)
		apiGroup.GET("/cities", contactHandler.GetCities)
		apiGroup.GET("/search/:field", contactHandler.SearchField)

		// Staff Routes
		apiGroup.GET("/staff", staffHandler.GetStaff)
		apiGroup.POST("/staff", staffHandler.CreateStaff)
		apiGroup.DELETE("/staff/:id", staffHandler.DeleteStaff)

		// Upload / Media List Routes
		apiGroup.GET("/uploads", uploadHandler.GetUploads)
		apiGroup.GET("/table/uploads", uploadHandler.GetUploads)
		apiGroup.GET("/search", uploadHandler.GetUploads)
		apiGroup.GET("/uploads/:id", uploadHandler.GetUpload)
		apiGroup.PUT("/uploads/:id", uploadHandler.UpdateUpload)
		apiGroup.DELETE("/uploads/:id", uploadHandler.DeleteUpload)

		// CSV Import Routes
		apiGroup.GET("/table/:table/schema", importHandler.GetSchema)
		apiGroup.POST("/import/preview", importHandler.Preview)
		apiGroup.POST("/import/run", importHandler.Run)

		// Email Template Routes
		apiGroup.GET("/email-templates", templateHandler.GetTemplates)
		apiGroup.GET("/email-templates/:id", templateHandler.GetTemplate)
		apiGroup.POST("/email-templates", templateHandler.UploadTemplate)
		apiGroup.PUT("/email-templates/:id", templateHandler.UpdateTemplate)
		apiGroup.DELETE("/email-templates/:id", templateHandler.DeleteTemplate)

		// Press Release Routes
		apiGroup.GET("/press-releases", pressReleaseHandler.GetPressReleases)
		apiGroup.GET("/press-releases/:id", pressReleaseHandler.GetPressRelease)
		apiGroup.POST("/press-releases", pressReleaseHandler.UploadPressRelease)
		apiGroup.PUT("/press-releases/:id", pressReleaseHandler.UpdatePressRelease)
		apiGroup.DELETE("/press-releases/:id", pressReleaseHandler.DeletePressRelease)

		// Coverage Report Routes
		apiGroup.GET("/coverage-reports", reportHandler.GetReports)
		apiGroup.POST("/coverage-reports", reportHandler.CreateReport)

		// Company Routes
		apiGroup.GET("/companies", companyHandler.GetCompanies)
		apiGroup.GET("/companies/:id", companyHandler.GetCompany)
		apiGroup.POST("/companies", companyHandler.CreateCompany)
		apiGroup.PUT("/companies/:id", companyHandler.UpdateCompany)
		apiGroup.DELETE("/companies/:id", companyHandler.DeleteCompany)
		apiGroup.POST("/companies/:id/push", companyHandler.PushCompany)

		// Outreach Wizard Routes
		outreachGroup := apiGroup.Group("/outreach")
		{
			outreachGroup.POST("/session", outreachHandler.StartSession)
			outreachGroup.GET("/session/:token", outreachHandler.GetSession)
			outreachGroup.POST("/session/:token/staff", outreachHandler.SetStaff)
			outreachGroup.POST("/session/:token/toggle", outreachHandler.ToggleContact)
			outreachGroup.POST("/session/:token/toggle-visible", outreachHandler.ToggleVisible)
			outreachGroup.POST("/session/:token/media-lists", outreachHandler.SetMediaLists)
			outreachGroup.POST("/session/:token/next", outreachHandler.Next)
			outreachGroup.POST("/session/:token/send", outreachHandler.Send)
			outreachGroup.POST("/prepare-follow-up", outreachHandler.PrepareFollowUp)
		}
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
