package api

import (
	"errors"
	"log"
	"net/http"

	"sway-pr/internal/database"
	"sway-pr/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StaffHandler struct{}

func NewStaffHandler() *StaffHandler {
	return &StaffHandler{}
}

func (h *StaffHandler) GetStaff(c *gin.Context) {
	var staff []models.Staff
	if err := database.DB.Order("staff_name").Find(&staff).Error; err != nil {
		log.Printf("Error fetching staff: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch staff"})
		return
	}
	if staff == nil {
		staff = []models.Staff{}
	}
	c.JSON(http.StatusOK, staff)
}

type CreateStaffRequest struct {
	StaffName  string `json:"staff_name" binding:"required"`
	StaffEmail string `json:"staff_email" binding:"required,email"`
}

func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Staff name and a valid email are required"})
		return
	}

	staff := models.Staff{StaffName: req.StaffName, StaffEmail: req.StaffEmail}
	if err := database.DB.Create(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "A staff member with that email already exists"})
			return
		}
		log.Printf("Error creating staff member: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add staff member"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Staff member added successfully", "id": staff.ID})
}

func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	result := database.DB.Delete(&models.Staff{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		log.Printf("Error deleting staff member: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete staff member"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted"})
}
