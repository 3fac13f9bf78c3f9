package services

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"vet-portal-api/config"
	"vet-portal-api/models"
)

var serviceTypeLabels = map[string]string{
	models.ServiceTypeClinic:                    "Klinik Hewan",
	models.ServiceTypeVetPracticeRecommendation: "Rekomendasi Praktek Dokter Hewan",
	models.ServiceTypeVetControlNumber:          "Nomor Kontrol Veteriner",
}

var statusLabels = map[string]string{
	models.StatusNew:        "Pengajuan Baru",
	models.StatusInProgress: "Sedang Diproses",
	models.StatusDone:       "Selesai",
	models.StatusRejected:   "Ditolak",
}

// NotificationService delivers status notices over WhatsApp and email and
// records one NotificationLog row per attempted channel. Delivery failures
// are logged, never propagated: a failed notice must not fail or roll back
// the submission mutation that triggered it.
type NotificationService struct {
	db           *gorm.DB
	sendWhatsApp func(to, message string) error
	sendMail     func(to []string, subject, html string) error
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		db:           db,
		sendWhatsApp: config.SendWhatsApp,
		sendMail:     config.SendMail,
	}
}

// NotifySubmissionReceived confirms a new submission to the applicant.
func (n *NotificationService) NotifySubmissionReceived(sub *models.Submission) {
	subject := "Pengajuan Diterima"
	message := fmt.Sprintf(
		"Pengajuan %s Anda telah kami terima dengan kode tracking %s. Gunakan kode tersebut untuk memantau status pengajuan.",
		serviceTypeLabels[sub.ServiceType], sub.TrackingCode,
	)
	n.deliver(sub, subject, message)
}

// NotifyStatusChanged informs the applicant that an admin moved the
// submission to a new status.
func (n *NotificationService) NotifyStatusChanged(sub *models.Submission) {
	subject := "Update Status Pengajuan"
	message := fmt.Sprintf(
		"Status pengajuan %s (kode tracking %s) kini: %s.",
		serviceTypeLabels[sub.ServiceType], sub.TrackingCode, statusLabels[sub.Status],
	)
	n.deliver(sub, subject, message)
}

func (n *NotificationService) deliver(sub *models.Submission, subject, message string) {
	waErr := n.sendWhatsApp(sub.WhatsappNumber, message)
	n.logAttempt(sub, models.ChannelWhatsapp, map[string]string{
		"to":      sub.WhatsappNumber,
		"message": message,
	}, waErr)

	emailErr := n.sendMail([]string{sub.Email}, subject, buildEmailHTML(sub.Name, message))
	n.logAttempt(sub, models.ChannelEmail, map[string]string{
		"to":      sub.Email,
		"subject": subject,
		"message": message,
	}, emailErr)
}

// logAttempt inserts the immutable delivery record. A logging failure here
// is itself only logged; there is nothing left to unwind.
func (n *NotificationService) logAttempt(sub *models.Submission, channel string, payload map[string]string, sendErr error) {
	sendStatus := models.SendStatusSuccess
	if sendErr != nil {
		sendStatus = models.SendStatusFailed
		log.Printf("notification delivery failed (channel=%s submission=%s): %v", channel, sub.TrackingCode, sendErr)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte("{}")
	}

	entry := models.NotificationLog{
		SubmissionID: sub.ID,
		Channel:      channel,
		SendStatus:   sendStatus,
		Payload:      datatypes.JSON(raw),
	}
	if err := n.db.Create(&entry).Error; err != nil {
		log.Printf("failed to write notification log (channel=%s submission=%s): %v", channel, sub.TrackingCode, err)
	}
}

func buildEmailHTML(recipientName, message string) string {
	recipientName = template.HTMLEscapeString(recipientName)
	message = template.HTMLEscapeString(message)
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="id">
<body style="margin:0;padding:0;background-color:#f9fafb;font-family:'Segoe UI',Tahoma,Arial,sans-serif;">
<div style="max-width:640px;margin:0 auto;padding:24px 20px;">
  <div style="background-color:#ffffff;border:1px solid #e5e7eb;border-radius:12px;padding:24px;">
    <p style="margin:0 0 16px 0;font-size:16px;line-height:1.7;color:#111827;">Yth. %s,</p>
    <p style="margin:0;font-size:16px;line-height:1.7;color:#111827;word-break:break-word;">%s</p>
  </div>
</div>
</body>
</html>`, recipientName, message)
}
