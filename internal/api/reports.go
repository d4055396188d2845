package api

import (
	"log"
	"net/http"

	"sway-pr/internal/database"
	"sway-pr/internal/models"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct{}

func NewReportHandler() *ReportHandler {
	return &ReportHandler{}
}

func (h *ReportHandler) GetReports(c *gin.Context) {
	var reports []models.CoverageReport
	if err := database.DB.Order("id DESC").Find(&reports).Error; err != nil {
		log.Printf("Error fetching coverage reports: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}
	if reports == nil {
		reports = []models.CoverageReport{}
	}
	c.JSON(http.StatusOK, reports)
}

type CreateReportRequest struct {
	Link          string `json:"link" binding:"required"`
	Article       string `json:"article" binding:"required"`
	DateOfPublish string `json:"date_of_publish" binding:"required"`
}

func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Link, article and publish date are required"})
		return
	}

	report := models.CoverageReport{
		Link:          req.Link,
		Article:       req.Article,
		DateOfPublish: req.DateOfPublish,
	}
	if err := database.DB.Create(&report).Error; err != nil {
		log.Printf("Error saving coverage report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save report"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Report saved successfully", "id": report.ID})
}
