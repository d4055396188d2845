package api

import (
	"encoding/base64"
	"log"
	"net/http"

	"sway-pr/internal/database"
	"sway-pr/internal/models"

	"github.com/gin-gonic/gin"
)

type PressReleaseHandler struct{}

func NewPressReleaseHandler() *PressReleaseHandler {
	return &PressReleaseHandler{}
}

type pressReleaseSummary struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
	Subject string `json:"subject"`
}

func (h *PressReleaseHandler) GetPressReleases(c *gin.Context) {
	var releases []models.PressRelease
	err := database.DB.Select("id", "name", "content", "subject").
		Order("created_at DESC").
		Find(&releases).Error
	if err != nil {
		log.Printf("Error fetching press releases: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch press releases"})
		return
	}

	summaries := make([]pressReleaseSummary, 0, len(releases))
	for _, r := range releases {
		summaries = append(summaries, pressReleaseSummary{
			ID: r.ID, Name: r.Name, Content: r.Content, Subject: r.Subject,
		})
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *PressReleaseHandler) GetPressRelease(c *gin.Context) {
	var release models.PressRelease
	if err := database.DB.First(&release, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Press release not found"})
		return
	}

	response := gin.H{
		"id":           release.ID,
		"name":         release.Name,
		"content":      release.Content,
		"html_content": release.HTMLContent,
		"subject":      release.Subject,
	}
	if len(release.Image) > 0 {
		response["image"] = base64.StdEncoding.EncodeToString(release.Image)
	}
	c.JSON(http.StatusOK, response)
}

func (h *PressReleaseHandler) UploadPressRelease(c *gin.Context) {
	name, content, ok := readUploadedFile(c)
	if !ok {
		return
	}

	release := models.PressRelease{
		Name:        name,
		Content:     content,
		HTMLContent: content,
	}
	if err := database.DB.Create(&release).Error; err != nil {
		log.Printf("Error saving press release: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save press release"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Press release uploaded successfully", "id": release.ID})
}

func (h *PressReleaseHandler) UpdatePressRelease(c *gin.Context) {
	var release models.PressRelease
	if err := database.DB.First(&release, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Press release not found"})
		return
	}

	if name := c.PostForm("name"); name != "" {
		release.Name = name
	}
	if content := c.PostForm("content"); content != "" {
		release.Content = content
	}
	if htmlContent := c.PostForm("html_content"); htmlContent != "" {
		release.HTMLContent = htmlContent
	}
	if subject, ok := c.GetPostForm("subject"); ok {
		release.Subject = subject
	}
	if image, ok := readFormImage(c); ok {
		release.Image = image
	}

	if err := database.DB.Save(&release).Error; err != nil {
		log.Printf("Error updating press release: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update press release"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Press release updated successfully"})
}

func (h *PressReleaseHandler) DeletePressRelease(c *gin.Context) {
	result := database.DB.Delete(&models.PressRelease{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		log.Printf("Error deleting press release: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete press release"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Press release not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Press release deleted"})
}
