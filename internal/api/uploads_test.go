package api

import (
	"net/http"
	"testing"

	"sway-pr/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadRouter() *gin.Engine {
	r := gin.New()
	h := NewUploadHandler()
	r.GET("/api/uploads", h.GetUploads)
	r.GET("/api/uploads/:id", h.GetUpload)
	r.PUT("/api/uploads/:id", h.UpdateUpload)
	r.DELETE("/api/uploads/:id", h.DeleteUpload)
	return r
}

func TestGetUploadsFilter(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Upload{Name: "Spring List"}).Error)
	require.NoError(t, db.Create(&models.Upload{Name: "Autumn List"}).Error)

	router := uploadRouter()

	var uploads []models.Upload
	w := doJSON(t, router, http.MethodGet, "/api/uploads", nil)
	requireStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &uploads)
	assert.Len(t, uploads, 2)

	w = doJSON(t, router, http.MethodGet, "/api/uploads?q=spring", nil)
	requireStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &uploads)
	require.Len(t, uploads, 1)
	assert.Equal(t, "Spring List", uploads[0].Name)
}

func TestGetUploadWithRecords(t *testing.T) {
	db := setupTestDB(t)
	upload := models.Upload{Name: "Spring List"}
	require.NoError(t, db.Create(&upload).Error)
	seedContacts(t, db,
		models.MediaContact{UploadID: upload.ID, Name: "Alice", Email: "a@x.com"},
		models.MediaContact{UploadID: 999, Name: "Elsewhere", Email: "e@z.com"},
	)

	router := uploadRouter()

	w := doJSON(t, router, http.MethodGet, "/api/uploads/1", nil)
	requireStatus(t, w, http.StatusOK)
	var response struct {
		UploadName string                `json:"upload_name"`
		Records    []models.MediaContact `json:"records"`
	}
	decodeJSON(t, w, &response)
	assert.Equal(t, "Spring List", response.UploadName)
	require.Len(t, response.Records, 1)
	assert.Equal(t, "Alice", response.Records[0].Name)

	w = doJSON(t, router, http.MethodGet, "/api/uploads/999", nil)
	requireStatus(t, w, http.StatusNotFound)
}

func TestRenameUpload(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Upload{Name: "Old"}).Error)

	router := uploadRouter()

	w := doJSON(t, router, http.MethodPut, "/api/uploads/1", gin.H{"name": "New"})
	requireStatus(t, w, http.StatusOK)

	var upload models.Upload
	require.NoError(t, db.First(&upload, 1).Error)
	assert.Equal(t, "New", upload.Name)

	w = doJSON(t, router, http.MethodPut, "/api/uploads/1", gin.H{})
	requireStatus(t, w, http.StatusBadRequest)

	w = doJSON(t, router, http.MethodPut, "/api/uploads/999", gin.H{"name": "x"})
	requireStatus(t, w, http.StatusNotFound)
}

func TestDeleteUploadCascades(t *testing.T) {
	db := setupTestDB(t)
	upload := models.Upload{Name: "Doomed"}
	require.NoError(t, db.Create(&upload).Error)
	seedContacts(t, db,
		models.MediaContact{UploadID: upload.ID, Email: "a@x.com"},
		models.MediaContact{UploadID: upload.ID, Email: "b@y.com"},
		models.MediaContact{UploadID: 999, Email: "keep@z.com"},
	)

	router := uploadRouter()

	w := doJSON(t, router, http.MethodDelete, "/api/uploads/1", nil)
	requireStatus(t, w, http.StatusOK)

	var count int64
	require.NoError(t, db.Model(&models.MediaContact{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "only the batch's own records are removed")

	w = doJSON(t, router, http.MethodDelete, "/api/uploads/1", nil)
	requireStatus(t, w, http.StatusNotFound)
}
