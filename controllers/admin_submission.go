package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"vet-portal-api/services"
)

// AdminSubmissionController serves the back-office review table and the
// status lifecycle actions.
type AdminSubmissionController struct {
	submissions *services.SubmissionService
	notifier    *services.NotificationService
}

func NewAdminSubmissionController(submissions *services.SubmissionService, notifier *services.NotificationService) *AdminSubmissionController {
	return &AdminSubmissionController{submissions: submissions, notifier: notifier}
}

// List returns submissions newest-first with optional status, service-type
// and free-text filters.
func (ctl *AdminSubmissionController) List(c *gin.Context) {
	filter := services.SubmissionFilter{
		Status:      c.Query("status"),
		ServiceType: c.Query("service_type"),
		Search:      c.Query("search"),
	}

	subs, err := ctl.submissions.List(filter)
	if err != nil {
		log.Printf("failed to list submissions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan internal server"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": subs,
		"total":       len(subs),
	})
}

// Get returns one submission with its notification logs.
func (ctl *AdminSubmissionController) Get(c *gin.Context) {
	sub, err := ctl.submissions.GetByID(c.Param("id"))
	if err != nil {
		if err == services.ErrSubmissionNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pengajuan tidak ditemukan"})
			return
		}
		log.Printf("failed to load submission: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan internal server"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submission": sub})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves a submission to the requested status and returns the
// updated row, so the admin table can refresh from this response alone.
// Notification delivery runs in the background and is recorded per channel
// in the notification log.
func (ctl *AdminSubmissionController) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status wajib diisi"})
		return
	}

	sub, err := ctl.submissions.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		switch err {
		case services.ErrInvalidStatus:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status tidak dikenal"})
		case services.ErrSubmissionNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Pengajuan tidak ditemukan"})
		default:
			log.Printf("failed to update submission status: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan internal server"})
		}
		return
	}

	go ctl.notifier.NotifyStatusChanged(sub)

	c.JSON(http.StatusOK, gin.H{
		"message":    "Status berhasil diupdate",
		"submission": sub,
	})
}
