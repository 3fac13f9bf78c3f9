package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service types offered by the portal.
const (
	ServiceTypeClinic                    = "CLINIC"
	ServiceTypeVetPracticeRecommendation = "VET_PRACTICE_RECOMMENDATION"
	ServiceTypeVetControlNumber          = "VET_CONTROL_NUMBER"
)

// Submission lifecycle statuses. There is no enforced transition order;
// any status may follow any other.
const (
	StatusNew        = "NEW"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
	StatusRejected   = "REJECTED"
)

// ServiceTypes lists the closed set of accepted service types.
var ServiceTypes = []string{
	ServiceTypeClinic,
	ServiceTypeVetPracticeRecommendation,
	ServiceTypeVetControlNumber,
}

// Statuses lists the closed set of accepted statuses.
var Statuses = []string{
	StatusNew,
	StatusInProgress,
	StatusDone,
	StatusRejected,
}

func IsValidServiceType(v string) bool {
	for _, t := range ServiceTypes {
		if v == t {
			return true
		}
	}
	return false
}

func IsValidStatus(v string) bool {
	for _, s := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Submission represents one citizen service request. The tracking code is
// unique and immutable once assigned; additional_data holds the
// service-type-dependent payload (animal details or document records) and
// is never re-validated after creation.
type Submission struct {
	ID             string         `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	TrackingCode   string         `gorm:"column:tracking_code;uniqueIndex;size:32;not null" json:"tracking_code"`
	Name           string         `gorm:"column:name;not null" json:"name"`
	NationalID     string         `gorm:"column:national_id;type:varchar(16);not null" json:"national_id"`
	Email          string         `gorm:"column:email;not null" json:"email"`
	WhatsappNumber string         `gorm:"column:whatsapp_number;not null" json:"whatsapp_number"`
	ServiceType    string         `gorm:"column:service_type;not null" json:"service_type"`
	Status         string         `gorm:"column:status;not null;default:NEW" json:"status"`
	AdditionalData datatypes.JSON `gorm:"column:additional_data" json:"additional_data,omitempty"`
	CreatedAt      time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	NotificationLogs []NotificationLog `gorm:"foreignKey:SubmissionID" json:"notification_logs,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = StatusNew
	}
	return nil
}
