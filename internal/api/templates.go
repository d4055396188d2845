package api

import (
	"encoding/base64"
	"io"
	"log"
	"net/http"

	"sway-pr/internal/database"
	"sway-pr/internal/models"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct{}

func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

// templateSummary omits the blob fields from list responses.
type templateSummary struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

func (h *TemplateHandler) GetTemplates(c *gin.Context) {
	var templates []models.EmailTemplate
	if err := database.DB.Select("id", "name", "content").Find(&templates).Error; err != nil {
		log.Printf("Error fetching email templates: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch templates"})
		return
	}

	summaries := make([]templateSummary, 0, len(templates))
	for _, t := range templates {
		summaries = append(summaries, templateSummary{ID: t.ID, Name: t.Name, Content: t.Content})
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	var template models.EmailTemplate
	if err := database.DB.First(&template, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	response := gin.H{
		"id":           template.ID,
		"name":         template.Name,
		"content":      template.Content,
		"html_content": template.HTMLContent,
	}
	if len(template.Image) > 0 {
		response["image"] = base64.StdEncoding.EncodeToString(template.Image)
	}
	c.JSON(http.StatusOK, response)
}

// UploadTemplate accepts a multipart form with the template file and
// stores its content.
func (h *TemplateHandler) UploadTemplate(c *gin.Context) {
	name, content, ok := readUploadedFile(c)
	if !ok {
		return
	}

	template := models.EmailTemplate{
		Name:        name,
		Content:     content,
		HTMLContent: content,
	}
	if err := database.DB.Create(&template).Error; err != nil {
		log.Printf("Error saving email template: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save template"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Template uploaded successfully", "id": template.ID})
}

// UpdateTemplate edits name/content and optionally replaces the image.
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	var template models.EmailTemplate
	if err := database.DB.First(&template, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	if name := c.PostForm("name"); name != "" {
		template.Name = name
	}
	if content := c.PostForm("content"); content != "" {
		template.Content = content
	}
	if htmlContent := c.PostForm("html_content"); htmlContent != "" {
		template.HTMLContent = htmlContent
	}
	if image, ok := readFormImage(c); ok {
		template.Image = image
	}

	if err := database.DB.Save(&template).Error; err != nil {
		log.Printf("Error updating email template: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template updated successfully"})
}

func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	result := database.DB.Delete(&models.EmailTemplate{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		log.Printf("Error deleting email template: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete template"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}

// readUploadedFile pulls the "file" part out of a multipart form and
// returns its name and content. Writes the error response itself.
func readUploadedFile(c *gin.Context) (name, content string, ok bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file is required"})
		return "", "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read uploaded file"})
		return "", "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Error reading uploaded file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read uploaded file"})
		return "", "", false
	}
	return fileHeader.Filename, string(data), true
}

func readFormImage(c *gin.Context) ([]byte, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, false
	}
	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening image upload: %v", err)
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Error reading image upload: %v", err)
		return nil, false
	}
	return data, true
}
