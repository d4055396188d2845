package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"sway-pr/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUnknownTable = errors.New("unknown import target table")

// Importable columns per target table. Both targets share the contact
// layout; the table picks the record kind.
var contactColumns = []string{
	"name", "outletName", "Email", "phone", "JobTitle", "MediaType",
	"City", "State", "Country", "Twitter", "Languages", "Focus",
}

func kindForTable(table string) (string, error) {
	switch table {
	case "journalists":
		return "journalist", nil
	case "media_titles":
		return "media_title", nil
	default:
		return "", ErrUnknownTable
	}
}

// TargetColumns lists the mappable database fields for a target table.
func TargetColumns(table string) ([]string, error) {
	if _, err := kindForTable(table); err != nil {
		return nil, err
	}
	return append([]string(nil), contactColumns...), nil
}

// Preview reads just the header row of a CSV upload.
func Preview(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("CSV file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("could not read CSV headers: %w", err)
	}
	for i, header := range headers {
		headers[i] = strings.TrimSpace(header)
	}
	return headers, nil
}

// AutoMap proposes a header-to-column mapping by case-insensitive match
// against the target table's columns. Headers with no match are left out
// (the screen shows them as "ignore").
func AutoMap(headers, columns []string) map[string]string {
	byLower := make(map[string]string, len(columns))
	for _, column := range columns {
		byLower[strings.ToLower(column)] = column
	}

	mapping := make(map[string]string)
	for _, header := range headers {
		if column, ok := byLower[strings.ToLower(strings.TrimSpace(header))]; ok {
			mapping[header] = column
		}
	}
	return mapping
}

// Result summarizes one import run.
type Result struct {
	UploadID uint   `json:"upload_id"`
	BatchID  string `json:"batch_id"`
	Total    int    `json:"total"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// Run imports mapped CSV rows into a new upload batch. Rows whose mapped
// cells are all empty are skipped; a malformed row is skipped and logged
// rather than aborting the batch.
func Run(db *gorm.DB, r io.Reader, table string, mapping map[string]string, uploadName string) (*Result, error) {
	kind, err := kindForTable(table)
	if err != nil {
		return nil, err
	}
	if len(mapping) == 0 {
		return nil, errors.New("at least one column must be mapped")
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read CSV headers: %w", err)
	}

	// Column index -> database field, resolved once from the mapping.
	fieldByIndex := make(map[int]string)
	for i, header := range headers {
		if field, ok := mapping[strings.TrimSpace(header)]; ok {
			fieldByIndex[i] = field
		}
	}
	if len(fieldByIndex) == 0 {
		return nil, errors.New("mapped columns do not match the CSV headers")
	}

	upload := models.Upload{
		Name:    uploadName,
		BatchID: uuid.NewString(),
	}
	if err := db.Create(&upload).Error; err != nil {
		return nil, fmt.Errorf("could not create upload batch: %w", err)
	}

	result := &Result{UploadID: upload.ID, BatchID: upload.BatchID}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("Skipping malformed CSV row: %v", err)
			result.Total++
			result.Skipped++
			continue
		}
		result.Total++

		contact := models.MediaContact{UploadID: upload.ID, Kind: kind}
		empty := true
		for i, cell := range row {
			field, ok := fieldByIndex[i]
			if !ok {
				continue
			}
			value := strings.TrimSpace(cell)
			if value != "" {
				empty = false
			}
			setContactField(&contact, field, value)
		}
		if empty {
			result.Skipped++
			continue
		}

		if err := db.Create(&contact).Error; err != nil {
			log.Printf("Error inserting imported contact: %v", err)
			result.Skipped++
			continue
		}
		result.Imported++
	}

	return result, nil
}

func setContactField(contact *models.MediaContact, field, value string) {
	switch field {
	case "name":
		contact.Name = value
	case "outletName":
		contact.OutletName = value
	case "Email":
		contact.Email = value
	case "phone":
		contact.Phone = value
	case "JobTitle":
		contact.JobTitle = value
	case "MediaType":
		contact.MediaType = value
	case "City":
		contact.City = value
	case "State":
		contact.State = value
	case "Country":
		contact.Country = value
	case "Twitter":
		contact.Twitter = value
	case "Languages":
		contact.Languages = value
	case "Focus":
		contact.Focus = value
	}
}
