package controllers

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vet-portal-api/services"
)

const maxDocumentSize = 5 << 20 // 5MB per uploaded PDF

// SubmissionController handles the public-facing endpoints: filing a new
// submission and looking up its status by tracking code.
type SubmissionController struct {
	submissions *services.SubmissionService
	notifier    *services.NotificationService
	uploadPath  string
}

func NewSubmissionController(submissions *services.SubmissionService, notifier *services.NotificationService, uploadPath string) *SubmissionController {
	return &SubmissionController{
		submissions: submissions,
		notifier:    notifier,
		uploadPath:  uploadPath,
	}
}

type submissionRequest struct {
	Name           string `json:"name" form:"name"`
	NationalID     string `json:"national_id" form:"national_id"`
	Email          string `json:"email" form:"email"`
	WhatsappNumber string `json:"whatsapp_number" form:"whatsapp_number"`
	ServiceType    string `json:"service_type" form:"service_type"`
	Consent        bool   `json:"consent" form:"-"`

	AnimalName    string `json:"animal_name" form:"animal_name"`
	AnimalSpecies string `json:"animal_species" form:"animal_species"`
	AnimalSex     string `json:"animal_sex" form:"animal_sex"`
	AnimalAge     string `json:"animal_age" form:"animal_age"`
	Complaint     string `json:"complaint" form:"complaint"`

	// JSON clients acknowledge documents by name; multipart clients upload
	// the files instead and this map is filled from the saved files.
	Documents map[string]string `json:"documents" form:"-"`
}

// Create validates and persists a new submission. Accepts either JSON or,
// for the document-based service types, multipart/form-data with the PDF
// attachments. Either the full record is persisted or nothing is.
func (ctl *SubmissionController) Create(c *gin.Context) {
	var req submissionRequest
	isMultipart := strings.HasPrefix(c.ContentType(), "multipart/form-data")

	if isMultipart {
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		// HTML checkboxes send "on"; parsing it here keeps a malformed
		// consent out of gin's bool binding so the validator still
		// returns the full field error map.
		req.Consent = parseCheckbox(c.PostForm("consent"))
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
	}

	in := services.SubmissionInput{
		Name:           req.Name,
		NationalID:     req.NationalID,
		Email:          req.Email,
		WhatsappNumber: req.WhatsappNumber,
		ServiceType:    req.ServiceType,
		Consent:        req.Consent,
		AnimalName:     req.AnimalName,
		AnimalSpecies:  req.AnimalSpecies,
		AnimalSex:      req.AnimalSex,
		AnimalAge:      req.AnimalAge,
		Complaint:      req.Complaint,
		Documents:      req.Documents,
	}

	var uploads []*savedUpload
	if isMultipart {
		docs, saved, fieldErrs := ctl.collectDocuments(c, req.ServiceType)
		if len(fieldErrs) > 0 {
			removeUploads(saved)
			c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
			return
		}
		in.Documents = docs
		uploads = saved
	}

	sub, fieldErrs := services.ValidateSubmission(in)
	if len(fieldErrs) > 0 {
		removeUploads(uploads)
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}

	if err := ctl.submissions.Create(sub); err != nil {
		removeUploads(uploads)
		log.Printf("failed to create submission: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan saat mengirim pengajuan"})
		return
	}

	go ctl.notifier.NotifySubmissionReceived(sub)

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Pengajuan berhasil dikirim",
		"tracking_code": sub.TrackingCode,
	})
}

// Track is the public status lookup by tracking code.
func (ctl *SubmissionController) Track(c *gin.Context) {
	sub, err := ctl.submissions.GetByTrackingCode(c.Param("tracking_code"))
	if err != nil {
		if err == services.ErrSubmissionNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pengajuan tidak ditemukan"})
			return
		}
		log.Printf("failed to look up submission: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan internal server"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tracking_code": sub.TrackingCode,
		"service_type":  sub.ServiceType,
		"status":        sub.Status,
		"created_at":    sub.CreatedAt,
		"updated_at":    sub.UpdatedAt,
	})
}

// parseCheckbox accepts the values HTML checkboxes and form clients send
// for an affirmative choice.
func parseCheckbox(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

type savedUpload struct {
	path string
}

// collectDocuments pulls the service type's expected document files out of
// the multipart form and stores each under the upload path with a random
// file name. Validation of which ones are required happens in the
// validator; this only rejects unreadable or oversized files.
func (ctl *SubmissionController) collectDocuments(c *gin.Context, serviceType string) (map[string]string, []*savedUpload, map[string]string) {
	docs := make(map[string]string)
	fieldErrs := make(map[string]string)
	var saved []*savedUpload

	for _, doc := range services.RequiredDocuments(serviceType) {
		file, err := c.FormFile(doc.Field)
		if err != nil {
			continue // absent; the validator reports the missing ones
		}
		if file.Size > maxDocumentSize {
			fieldErrs[doc.Field] = doc.Label + " melebihi ukuran maksimal 5MB"
			continue
		}

		storedName := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(file.Filename))
		dst := filepath.Join(ctl.uploadPath, storedName)
		if err := ctl.saveUploadedFile(c, file, dst); err != nil {
			log.Printf("failed to store uploaded document %s: %v", doc.Field, err)
			fieldErrs[doc.Field] = doc.Label + " gagal diupload"
			continue
		}

		docs[doc.Field] = storedName
		saved = append(saved, &savedUpload{path: dst})
	}

	return docs, saved, fieldErrs
}

func (ctl *SubmissionController) saveUploadedFile(c *gin.Context, file *multipart.FileHeader, dst string) error {
	if err := os.MkdirAll(ctl.uploadPath, os.ModePerm); err != nil {
		return err
	}
	return c.SaveUploadedFile(file, dst)
}

// removeUploads deletes stored files when the submission they belong to is
// not persisted, so a rejected payload leaves nothing behind.
func removeUploads(uploads []*savedUpload) {
	for _, u := range uploads {
		if err := os.Remove(u.path); err != nil && !os.IsNotExist(err) {
			log.Printf("failed to remove orphaned upload %s: %v", u.path, err)
		}
	}
}
