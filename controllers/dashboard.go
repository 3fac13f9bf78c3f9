package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vet-portal-api/services"
)

// DashboardController returns aggregate statistics for the admin dashboard.
type DashboardController struct {
	submissions *services.SubmissionService
}

func NewDashboardController(submissions *services.SubmissionService) *DashboardController {
	return &DashboardController{submissions: submissions}
}

// GetStats returns submission counts per status and per service type.
func (ctl *DashboardController) GetStats(c *gin.Context) {
	byStatus, err := ctl.submissions.CountByStatus()
	if err != nil {
		log.Printf("failed to compute status stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan internal server"})
		return
	}

	byServiceType, err := ctl.submissions.CountByServiceType()
	if err != nil {
		log.Printf("failed to compute service type stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan internal server"})
		return
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"total":           total,
			"by_status":       byStatus,
			"by_service_type": byServiceType,
			"current_date":    time.Now().Format("2006-01-02"),
		},
	})
}
