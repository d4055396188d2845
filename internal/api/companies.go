package api

import (
	"log"
	"net/http"

	"sway-pr/internal/database"
	"sway-pr/internal/models"
	"sway-pr/internal/webhook"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	Sender *webhook.Sender
}

func NewCompanyHandler(sender *webhook.Sender) *CompanyHandler {
	return &CompanyHandler{Sender: sender}
}

func (h *CompanyHandler) GetCompanies(c *gin.Context) {
	var companies []models.Company
	if err := database.DB.Order("name").Find(&companies).Error; err != nil {
		log.Printf("Error fetching companies: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch companies"})
		return
	}
	if companies == nil {
		companies = []models.Company{}
	}
	c.JSON(http.StatusOK, companies)
}

func (h *CompanyHandler) GetCompany(c *gin.Context) {
	var company models.Company
	if err := database.DB.First(&company, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		return
	}
	c.JSON(http.StatusOK, company)
}

type CompanyRequest struct {
	Name     string `json:"name" binding:"required"`
	URL      string `json:"url"`
	Industry string `json:"industry"`
}

func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company name is required"})
		return
	}

	company := models.Company{Name: req.Name, URL: req.URL, Industry: req.Industry}
	if err := database.DB.Create(&company).Error; err != nil {
		log.Printf("Error creating company: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create company (name may already exist)"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Company added successfully", "id": company.ID})
}

func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	var company models.Company
	if err := database.DB.First(&company, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		return
	}

	// Partial update: blank fields keep their current value.
	var req CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company name is required"})
		return
	}
	company.Name = req.Name
	if req.URL != "" {
		company.URL = req.URL
	}
	if req.Industry != "" {
		company.Industry = req.Industry
	}

	if err := database.DB.Save(&company).Error; err != nil {
		log.Printf("Error updating company: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update company"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Company updated successfully"})
}

func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	result := database.DB.Delete(&models.Company{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		log.Printf("Error deleting company: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete company"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Company deleted"})
}

// PushCompany forwards one company record to the configured webhooks.
func (h *CompanyHandler) PushCompany(c *gin.Context) {
	var company models.Company
	if err := database.DB.First(&company, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		return
	}

	delivered, err := h.Sender.Send(company)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Company pushed to webhook", "delivered": delivered})
}
