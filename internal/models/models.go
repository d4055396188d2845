package models

import (
	"time"
)

// Upload represents one imported media list (a CSV batch).
type Upload struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	BatchID        string    `gorm:"type:varchar(64);index" json:"batch_id"`
	EmailStage     string    `gorm:"type:varchar(10);default:'1'" json:"email_stage"`
	ResponseStatus string    `gorm:"type:varchar(10);default:'No'" json:"response_status"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Upload) TableName() string {
	return "uploads"
}

// MediaContact is one journalist or media-title row from an uploaded list.
// Kind distinguishes the two record types the importer accepts.
type MediaContact struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UploadID   uint      `gorm:"index" json:"upload_id"`
	Kind       string    `gorm:"type:varchar(20);index;default:'journalist'" json:"kind"`
	Name       string    `gorm:"type:varchar(255)" json:"name"`
	OutletName string    `gorm:"type:varchar(255);index" json:"outletName"`
	Email      string    `gorm:"type:varchar(255);index" json:"Email"`
	Phone      string    `gorm:"type:varchar(50)" json:"phone"`
	JobTitle   string    `gorm:"type:varchar(255)" json:"JobTitle"`
	MediaType  string    `gorm:"type:varchar(100)" json:"MediaType"`
	City       string    `gorm:"type:varchar(100);index" json:"City"`
	State      string    `gorm:"type:varchar(100)" json:"State"`
	Country    string    `gorm:"type:varchar(100)" json:"Country"`
	Twitter    string    `gorm:"type:varchar(255)" json:"Twitter"`
	Languages  string    `gorm:"type:varchar(255)" json:"Languages"`
	Focus      string    `gorm:"type:text" json:"Focus"` // comma separated tags
	Response   string    `gorm:"type:varchar(10);default:'No'" json:"response"`
	EmailStage string    `gorm:"type:varchar(10);default:'1'" json:"email_stage"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MediaContact) TableName() string {
	return "media_contacts"
}

// Staff represents an internal team member outreach can be sent on behalf of.
type Staff struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StaffName  string    `gorm:"type:varchar(255);not null" json:"staff_name"`
	StaffEmail string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"staff_email"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Staff) TableName() string {
	return "staff"
}

// EmailTemplate represents an uploaded outreach email template.
type EmailTemplate struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Content     string `gorm:"type:text;not null" json:"content"`
	HTMLContent string `gorm:"type:text" json:"html_content"`
	Image       []byte `gorm:"type:blob" json:"image,omitempty"`
}

func (EmailTemplate) TableName() string {
	return "email_templates"
}

// PressRelease represents an uploaded press release document.
type PressRelease struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	HTMLContent string    `gorm:"type:text" json:"html_content"`
	Subject     string    `gorm:"type:varchar(255)" json:"subject"`
	Image       []byte    `gorm:"type:blob" json:"image,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PressRelease) TableName() string {
	return "press_releases"
}

// CoverageReport represents a published article tracked for a campaign.
type CoverageReport struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Link          string `gorm:"type:text;not null" json:"link"`
	Article       string `gorm:"type:text;not null" json:"article"`
	DateOfPublish string `gorm:"type:varchar(50);not null" json:"date_of_publish"`
}

func (CoverageReport) TableName() string {
	return "coverage_reports"
}

// Company represents a client company record.
type Company struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	URL      string `gorm:"type:text" json:"url"`
	Industry string `gorm:"type:varchar(255)" json:"industry"`
}

func (Company) TableName() string {
	return "companies"
}

// OutreachLog records one webhook dispatch for a press release.
type OutreachLog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	PressReleaseID uint      `gorm:"index" json:"press_release_id"`
	StaffID        uint      `json:"staff_id"`
	Subject        string    `gorm:"type:varchar(255)" json:"subject"`
	ContactCount   int       `json:"contact_count"`
	Delivered      int       `json:"delivered"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (OutreachLog) TableName() string {
	return "outreach_logs"
}
