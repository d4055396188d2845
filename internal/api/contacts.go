package api

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"sway-pr/internal/database"
	"sway-pr/internal/models"
	"sway-pr/internal/outreach"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ContactHandler struct{}

func NewContactHandler() *ContactHandler {
	return &ContactHandler{}
}

// contactQuery applies the shared validity and search filters. Rows
// without a plausible email never reach the picker or the total count.
func contactQuery(ctx context.Context, query string) *gorm.DB {
	tx := database.DB.WithContext(ctx).Model(&models.MediaContact{}).
		Where("email <> '' AND email LIKE ?", "%@%")
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		tx = tx.Where(
			"LOWER(name) LIKE ? OR LOWER(outlet_name) LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}
	return tx
}

// ToContact converts a stored row into the picker's contact shape. Focus
// tags become the categories list; empty tags are omitted entirely.
func ToContact(m models.MediaContact) outreach.Contact {
	contact := outreach.Contact{
		ID:          strconv.FormatUint(uint64(m.ID), 10),
		ContactName: m.Name,
		Email:       m.Email,
		OutletName:  m.OutletName,
	}
	for _, tag := range strings.Split(m.Focus, ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			contact.Categories = append(contact.Categories, trimmed)
		}
	}
	return contact
}

// FetchContactPage loads one page of valid contacts for a search query.
// Shared between the listing endpoint and the wizard's visible-page toggle
// so both always see the same page contents. Satisfies outreach.FetchFunc.
func FetchContactPage(ctx context.Context, query string, page, pageSize int) (outreach.Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = outreach.DefaultPageSize
	}

	var total int64
	if err := contactQuery(ctx, query).Count(&total).Error; err != nil {
		return outreach.Page{}, err
	}

	var rows []models.MediaContact
	err := contactQuery(ctx, query).
		Order("id").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&rows).Error
	if err != nil {
		return outreach.Page{}, err
	}

	items := make([]outreach.Contact, 0, len(rows))
	for _, row := range rows {
		items = append(items, ToContact(row))
	}
	return outreach.Page{Items: items, Total: int(total)}, nil
}

// GetMediaContacts serves the paginated, searchable contact picker.
func (h *ContactHandler) GetMediaContacts(c *gin.Context) {
	query := c.Query("q")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(outreach.DefaultPageSize)))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = outreach.DefaultPageSize
	}

	result, err := FetchContactPage(c.Request.Context(), query, page, pageSize)
	if err != nil {
		log.Printf("Error fetching media contacts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch media contacts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      result.Items,
		"page":       page,
		"pageSize":   pageSize,
		"total":      result.Total,
		"totalPages": outreach.TotalPages(result.Total, pageSize),
	})
}

// GetOutlets returns the distinct outlet names, optionally scoped to one
// upload.
func (h *ContactHandler) GetOutlets(c *gin.Context) {
	h.distinctValues(c, "outlet_name")
}

// GetCities returns the distinct cities, optionally scoped to one upload.
func (h *ContactHandler) GetCities(c *gin.Context) {
	h.distinctValues(c, "city")
}

// SearchField searches distinct values of a filter field. Exposed for the
// follow-up screen's debounced filter search.
func (h *ContactHandler) SearchField(c *gin.Context) {
	var column string
	switch c.Param("field") {
	case "outletName":
		column = "outlet_name"
	case "City":
		column = "city"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown search field"})
		return
	}

	tx := database.DB.Model(&models.MediaContact{}).
		Where(column + " <> ''").
		Distinct(column).
		Order(column)
	if query := c.Query("q"); query != "" {
		tx = tx.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if uploadID := c.Query("upload_id"); uploadID != "" {
		tx = tx.Where("upload_id = ?", uploadID)
	}

	var values []string
	if err := tx.Pluck(column, &values).Error; err != nil {
		log.Printf("Error searching %s: %v", column, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	if values == nil {
		values = []string{}
	}
	c.JSON(http.StatusOK, values)
}

func (h *ContactHandler) distinctValues(c *gin.Context, column string) {
	tx := database.DB.Model(&models.MediaContact{}).
		Where(column + " <> ''").
		Distinct(column).
		Order(column)
	if uploadID := c.Query("upload_id"); uploadID != "" {
		tx = tx.Where("upload_id = ?", uploadID)
	}

	var values []string
	if err := tx.Pluck(column, &values).Error; err != nil {
		log.Printf("Error fetching distinct %s: %v", column, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch values"})
		return
	}
	if values == nil {
		values = []string{}
	}
	c.JSON(http.StatusOK, values)
}
