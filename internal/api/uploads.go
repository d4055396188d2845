package api

import (
	"log"
	"net/http"
	"strings"

	"sway-pr/internal/database"
	"sway-pr/internal/models"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct{}

func NewUploadHandler() *UploadHandler {
	return &UploadHandler{}
}

// GetUploads lists upload batches, optionally filtered by a name query.
// Serves both /api/uploads and the dashboard search endpoint.
func (h *UploadHandler) GetUploads(c *gin.Context) {
	tx := database.DB.Model(&models.Upload{}).Order("created_at DESC")
	if query := c.Query("q"); query != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}

	var uploads []models.Upload
	if err := tx.Find(&uploads).Error; err != nil {
		log.Printf("Error fetching uploads: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch uploads"})
		return
	}
	if uploads == nil {
		uploads = []models.Upload{}
	}
	c.JSON(http.StatusOK, uploads)
}

// GetUpload returns one upload batch with its imported records.
func (h *UploadHandler) GetUpload(c *gin.Context) {
	var upload models.Upload
	if err := database.DB.First(&upload, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Upload not found"})
		return
	}

	var records []models.MediaContact
	if err := database.DB.Where("upload_id = ?", upload.ID).Order("id").Find(&records).Error; err != nil {
		log.Printf("Error fetching upload records: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch upload records"})
		return
	}
	if records == nil {
		records = []models.MediaContact{}
	}

	c.JSON(http.StatusOK, gin.H{
		"upload_name": upload.Name,
		"records":     records,
	})
}

type RenameUploadRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *UploadHandler) UpdateUpload(c *gin.Context) {
	var req RenameUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A name is required"})
		return
	}

	result := database.DB.Model(&models.Upload{}).Where("id = ?", c.Param("id")).Update("name", req.Name)
	if result.Error != nil {
		log.Printf("Error renaming upload: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rename upload"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Upload not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Upload renamed successfully"})
}

// DeleteUpload removes the batch and every contact imported with it.
func (h *UploadHandler) DeleteUpload(c *gin.Context) {
	id := c.Param("id")

	result := database.DB.Delete(&models.Upload{}, "id = ?", id)
	if result.Error != nil {
		log.Printf("Error deleting upload: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete upload"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Upload not found"})
		return
	}

	if err := database.DB.Where("upload_id = ?", id).Delete(&models.MediaContact{}).Error; err != nil {
		log.Printf("Error deleting upload records: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Upload and its data deleted"})
}
