package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"vet-portal-api/models"
)

// Sentinel errors mapped to client-visible outcomes by the controllers.
// Underlying storage error text never crosses the API boundary.
var (
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrTrackingCodeConflict = errors.New("could not allocate a unique tracking code")
)

// How many sequence values to try before giving up on a create. The unique
// index on tracking_code is the source of truth; the counter seed is
// best-effort.
const trackingCodeMaxAttempts = 5

type SubmissionService struct {
	db *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{db: db}
}

// Create persists a validated submission, assigning it a tracking code.
// The daily sequence is seeded from a prefix count; every unique-constraint
// violation bumps the sequence and retries so two concurrent submits never
// share a code.
func (s *SubmissionService) Create(sub *models.Submission) error {
	now := time.Now()
	prefix := TrackingCodeDatePrefix(now)

	var count int64
	if err := s.db.Model(&models.Submission{}).
		Where("tracking_code LIKE ?", prefix+"%").
		Count(&count).Error; err != nil {
		return fmt.Errorf("count tracking codes: %w", err)
	}

	seq := int(count) + 1
	for attempt := 0; attempt < trackingCodeMaxAttempts; attempt++ {
		sub.TrackingCode = FormatTrackingCode(now, seq)
		err := s.db.Create(sub).Error
		if err == nil {
			return nil
		}
		if !isDuplicateKeyError(err) {
			return fmt.Errorf("create submission: %w", err)
		}
		seq++
	}
	return ErrTrackingCodeConflict
}

// UpdateStatus sets a submission's status. The only guard is membership in
// the enumerated status set; transitions are otherwise unrestricted, so an
// admin may move a submission backward or skip states. The updated row is
// returned so the caller gets read-after-write state in one round trip.
func (s *SubmissionService) UpdateStatus(id, newStatus string) (*models.Submission, error) {
	if !models.IsValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	var sub models.Submission
	if err := s.db.First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("load submission: %w", err)
	}

	// Update bumps updated_at even when the status value is unchanged.
	if err := s.db.Model(&sub).Update("status", newStatus).Error; err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	sub.Status = newStatus
	return &sub, nil
}

// GetByTrackingCode is the public status lookup.
func (s *SubmissionService) GetByTrackingCode(code string) (*models.Submission, error) {
	var sub models.Submission
	if err := s.db.First(&sub, "tracking_code = ?", strings.TrimSpace(code)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("load submission: %w", err)
	}
	return &sub, nil
}

// GetByID loads one submission with its notification logs for the admin
// detail view.
func (s *SubmissionService) GetByID(id string) (*models.Submission, error) {
	var sub models.Submission
	if err := s.db.Preload("NotificationLogs").First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("load submission: %w", err)
	}
	return &sub, nil
}

// SubmissionFilter narrows the admin listing. Empty fields match everything.
type SubmissionFilter struct {
	Status      string
	ServiceType string
	Search      string // matches name, NIK or tracking code
}

// List returns submissions newest-first. The admin table re-fetches this
// after every mutation instead of relying on push updates.
func (s *SubmissionService) List(f SubmissionFilter) ([]models.Submission, error) {
	q := s.db.Model(&models.Submission{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ServiceType != "" {
		q = q.Where("service_type = ?", f.ServiceType)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR national_id LIKE ? OR tracking_code LIKE ?", like, like, like)
	}

	var subs []models.Submission
	if err := q.Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}

// CountByStatus returns submission counts keyed by status for the dashboard.
// Statuses with no rows are present with a zero count.
func (s *SubmissionService) CountByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	if err := s.db.Model(&models.Submission{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}

	counts := make(map[string]int64, len(models.Statuses))
	for _, status := range models.Statuses {
		counts[status] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// CountByServiceType returns submission counts keyed by service type.
func (s *SubmissionService) CountByServiceType() (map[string]int64, error) {
	var rows []struct {
		ServiceType string
		Total       int64
	}
	if err := s.db.Model(&models.Submission{}).
		Select("service_type, COUNT(*) AS total").
		Group("service_type").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count by service type: %w", err)
	}

	counts := make(map[string]int64, len(models.ServiceTypes))
	for _, t := range models.ServiceTypes {
		counts[t] = 0
	}
	for _, row := range rows {
		counts[row.ServiceType] = row.Total
	}
	return counts, nil
}

// isDuplicateKeyError matches unique-constraint violations from both
// supported drivers, plus GORM's translated sentinel.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || // MySQL 1062
		strings.Contains(msg, "duplicate key value") // Postgres 23505
}
