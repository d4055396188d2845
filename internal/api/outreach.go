package api

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"sway-pr/internal/database"
	"sway-pr/internal/models"
	"sway-pr/internal/outreach"
	"sway-pr/internal/webhook"
	"sway-pr/internal/ws"

	"github.com/gin-gonic/gin"
)

type OutreachHandler struct {
	Manager *outreach.Manager
	Sender  *webhook.Sender
	Hub     *ws.Hub
}

func NewOutreachHandler(manager *outreach.Manager, sender *webhook.Sender, hub *ws.Hub) *OutreachHandler {
	return &OutreachHandler{Manager: manager, Sender: sender, Hub: hub}
}

func (h *OutreachHandler) sessionState(w *outreach.Wizard) gin.H {
	return gin.H{
		"token":            w.Token,
		"press_release_id": w.PressReleaseID,
		"step":             w.Step().String(),
		"staff":            w.Staff(),
		"media_list_ids":   w.MediaListIDs(),
		"subject":          w.Subject(),
		"selected_count":   w.SelectionSize(),
	}
}

func (h *OutreachHandler) wizard(c *gin.Context) (*outreach.Wizard, bool) {
	wizard, ok := h.Manager.Get(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Outreach session not found or expired"})
		return nil, false
	}
	return wizard, true
}

type StartSessionRequest struct {
	PressReleaseID string `json:"press_release_id" binding:"required"`
}

// StartSession opens a wizard for a press release. A selection snapshot
// left by an earlier session on the same press release is restored.
func (h *OutreachHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "press_release_id is required"})
		return
	}

	var release models.PressRelease
	if err := database.DB.First(&release, "id = ?", req.PressReleaseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Press release not found"})
		return
	}

	wizard := h.Manager.Start(req.PressReleaseID)
	c.JSON(http.StatusCreated, h.sessionState(wizard))
}

func (h *OutreachHandler) GetSession(c *gin.Context) {
	wizard, ok := h.wizard(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.sessionState(wizard))
}

type SetStaffRequest struct {
	StaffIDs []string `json:"staff_ids"`
}

func (h *OutreachHandler) SetStaff(c *gin.Context) {
	wizard, ok := h.wizard(c)
	if !ok {
		return
	}

	var req SetStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "staff_ids must be a list"})
		return
	}

	var rows []models.Staff
	if len(req.StaffIDs) > 0 {
		if err := database.DB.Where("id IN ?", req.StaffIDs).Find(&rows).Error; err != nil {
			log.Printf("Error loading staff for outreach: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load staff"})
			return
		}
	}
	if len(rows) != len(req.StaffIDs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "One or more staff members were not found"})
		return
	}

	members := make([]outreach.StaffMember, 0, len(rows))
	for _, row := range rows {
		members = append(members, outreach.StaffMember{
			ID:    strconv.FormatUint(uint64(row.ID), 10),
			Name:  row.StaffName,
			Email: row.StaffEmail,
		})
	}
	wizard.SetStaff(members)
	c.JSON(http.StatusOK, h.sessionState(wizard))
}

type ToggleRequest struct {
	ContactID string `json:"contact_id" binding:"required"`
}

// ToggleContact flips one contact in the session's cross-page selection.
func (h *OutreachHandler) ToggleContact(c *gin.Context) {
	wizard, ok := h.wizard(c)
	if !ok {
		return
	}

	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contact_id is required"})
		return
	}

	var row models.MediaContact
	if err := database.DB.First(&row, "id = ?", req.ContactID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}

	selected := wizard.ToggleContact(ToContact(row))
	c.JSON(http.StatusOK, gin.H{
		"selected":       selected,
		"selected_count": wizard.SelectionSize(),
	})
}

type ToggleVisibleRequest struct {
	Query    string `json:"q"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// ToggleVisible applies the select-all toggle to the page the user is
// looking at. The page is re-resolved server side with the same query the
// listing endpoint uses, so both always agree on what "visible" means.
func (h *OutreachHandler) ToggleVisible(c *gin.Context) {
	wizard, ok := h.wizard(c)
	if !ok {
		return
	}

	var req ToggleVisibleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	page, err := FetchContactPage(c.Request.Context(), req.Query, req.Page, req.PageSize)
	if err != nil {
		log.Printf("Error fetching visible page for toggle: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contacts"})
		return
	}

	added := wizard.ToggleVisible(page.Items)
	c.JSON(http.StatusOK, gin.H{
		"added":          added,
		"selected_count": wizard.SelectionSize(),
	})
}

type SetMediaListsRequest struct {
	UploadIDs []string `json:"upload_ids"`
}

func (h *OutreachHandler) SetMediaLists(c *gin.Context) {
	wizard, ok := h.wizard(c)
	if !ok {
		return
	}

	var req SetMediaListsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "upload_ids must be a list"})
		return
	}

	if len(req.UploadIDs) > 0 {
		var count int64
		if err := database.DB.Model(&models.Upload{}).Where("id IN ?", req.UploadIDs).Count(&count).Error; err != nil {
			log.Printf("Error validating media lists: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate media lists"})
			return
		}
		if count != int64(len(req.UploadIDs)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "One or more media lists were not found"})
			return
		}
	}

	wizard.SetMediaLists(req.UploadIDs)
	c.JSON(http.StatusOK, h.sessionState(wizard))
}

type NextRequest struct {
	Subject string `json:"subject"`
}

// Next advances the wizard one step. A guard failure returns 400 with the
// validation message and the wizard stays on its current step.
func (h *OutreachHandler) Next(c *gin.Context) {
	wizard, ok := h.wizard(c)
	if !ok {
		return
	}

	var req NextRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.Subject != "" {
		wizard.SetSubject(req.Subject)
	}

	if err := wizard.Next(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.sessionState(wizard))
}

// followUpPayload is the wire body for a follow-up send: the deduplicated
// contact payload plus the sending staff and subject line.
type followUpPayload struct {
	outreach.Payload
	StaffID    string `json:"staffId"`
	StaffName  string `json:"staffName"`
	StaffEmail string `json:"staffEmail"`
	Subject    string `json:"subject"`
}

// Send completes a session-based wizard: payload to the webhooks, then
// Confirm -> Sent. Webhook failure keeps the wizard on Confirm with all
// state preserved so the user can retry.
func (h *OutreachHandler) Send(c *gin.Context) {
	wizard, ok := h.wizard(c)
	if !ok {
		return
	}

	var req NextRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.Subject != "" {
		wizard.SetSubject(req.Subject)
	}

	if wizard.Step() != outreach.StepConfirm {
		c.JSON(http.StatusBadRequest, gin.H{"error": outreach.ErrNotReadyToSend.Error()})
		return
	}
	if strings.TrimSpace(wizard.Subject()) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": outreach.ErrSubjectRequired.Error()})
		return
	}

	staff := wizard.Staff()
	body := followUpPayload{
		Payload: wizard.BuildPayload(),
		Subject: wizard.Subject(),
	}
	if len(staff) > 0 {
		body.StaffID = staff[0].ID
		body.StaffName = staff[0].Name
		body.StaffEmail = staff[0].Email
	}

	delivered, err := h.Sender.Send(body)
	if err != nil || delivered == 0 {
		if err != nil {
			log.Printf("Error dispatching outreach payload: %v", err)
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to deliver outreach to the webhook"})
		return
	}

	if err := wizard.MarkSent(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.recordLog(wizard.PressReleaseID, body.StaffID, body.Subject, body.Total, delivered)
	if h.Hub != nil {
		h.Hub.NotifyOutreach(gin.H{
			"press_release_id": wizard.PressReleaseID,
			"contacts":         body.Total,
			"delivered":        delivered,
		})
	}
	h.Manager.End(wizard.Token)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Outreach sent successfully",
		"contacts":  body.Total,
		"delivered": delivered,
	})
}

type PrepareFollowUpRequest struct {
	PressReleaseID string   `json:"press_release_id" binding:"required"`
	StaffID        string   `json:"staff_id" binding:"required"`
	UploadIDs      []string `json:"upload_ids" binding:"required"`
	Subject        string   `json:"subject" binding:"required"`
}

// PrepareFollowUp is the media-list variant: all valid contacts from the
// chosen uploads are deduplicated and pushed in one shot.
func (h *OutreachHandler) PrepareFollowUp(c *gin.Context) {
	var req PrepareFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a staff member, at least one media list and a subject"})
		return
	}
	if len(req.UploadIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select at least one media list"})
		return
	}

	var release models.PressRelease
	if err := database.DB.First(&release, "id = ?", req.PressReleaseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Press release not found"})
		return
	}
	var staff models.Staff
	if err := database.DB.First(&staff, "id = ?", req.StaffID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		return
	}

	var rows []models.MediaContact
	err := database.DB.
		Where("upload_id IN ?", req.UploadIDs).
		Where("email <> '' AND email LIKE ?", "%@%").
		Order("id").
		Find(&rows).Error
	if err != nil {
		log.Printf("Error loading contacts for follow-up: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contacts"})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The selected media lists contain no contacts with valid emails"})
		return
	}

	selection := outreach.NewSelectionStore()
	for _, row := range rows {
		selection.Toggle(ToContact(row))
	}

	body := followUpPayload{
		Payload:    outreach.BuildPayload(req.PressReleaseID, selection),
		StaffID:    strconv.FormatUint(uint64(staff.ID), 10),
		StaffName:  staff.StaffName,
		StaffEmail: staff.StaffEmail,
		Subject:    req.Subject,
	}

	delivered, err := h.Sender.Send(body)
	if err != nil || delivered == 0 {
		if err != nil {
			log.Printf("Error dispatching follow-up payload: %v", err)
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to prepare follow-up"})
		return
	}

	release.Subject = req.Subject
	if err := database.DB.Save(&release).Error; err != nil {
		log.Printf("Error storing subject on press release: %v", err)
	}

	h.recordLog(req.PressReleaseID, body.StaffID, req.Subject, body.Total, delivered)
	if h.Hub != nil {
		h.Hub.NotifyOutreach(gin.H{
			"press_release_id": req.PressReleaseID,
			"contacts":         body.Total,
			"delivered":        delivered,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"redirect_url": fmt.Sprintf("/outreach/%s/follow-up", req.PressReleaseID),
		"contacts":     body.Total,
	})
}

func (h *OutreachHandler) recordLog(pressReleaseID, staffID, subject string, contacts, delivered int) {
	prID, _ := strconv.ParseUint(pressReleaseID, 10, 32)
	sID, _ := strconv.ParseUint(staffID, 10, 32)
	entry := models.OutreachLog{
		PressReleaseID: uint(prID),
		StaffID:        uint(sID),
		Subject:        subject,
		ContactCount:   contacts,
		Delivered:      delivered,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("Error recording outreach log: %v", err)
	}
}
