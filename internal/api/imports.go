package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"sway-pr/internal/database"
	"sway-pr/internal/importer"
	"sway-pr/internal/ws"

	"github.com/gin-gonic/gin"
)

type ImportHandler struct {
	Hub *ws.Hub
}

func NewImportHandler(hub *ws.Hub) *ImportHandler {
	return &ImportHandler{Hub: hub}
}

// GetSchema lists the mappable columns of an import target table.
func (h *ImportHandler) GetSchema(c *gin.Context) {
	columns, err := importer.TargetColumns(c.Param("table"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": columns})
}

// Preview reads the CSV headers and proposes a column mapping so the
// mapping screen starts pre-filled.
func (h *ImportHandler) Preview(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A CSV file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening CSV upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer file.Close()

	headers, err := importer.Preview(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	table := c.DefaultPostForm("target_table", "journalists")
	columns, err := importer.TargetColumns(table)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"headers":           headers,
		"suggested_mapping": importer.AutoMap(headers, columns),
	})
}

// Run performs the mapped import and creates the upload batch.
func (h *ImportHandler) Run(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A CSV file is required"})
		return
	}

	uploadName := c.PostForm("upload_name")
	if uploadName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An upload name is required"})
		return
	}

	var mapping map[string]string
	if err := json.Unmarshal([]byte(c.PostForm("column_mapping")), &mapping); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column_mapping must be a JSON object"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening CSV upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer file.Close()

	table := c.DefaultPostForm("target_table", "journalists")
	result, err := importer.Run(database.DB, file, table, mapping, uploadName)
	if err != nil {
		if errors.Is(err, importer.ErrUnknownTable) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error running import: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.Hub != nil {
		h.Hub.NotifyImport(result)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Import completed successfully",
		"result":  result,
	})
}
