package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"vet-portal-api/models"
	"vet-portal-api/utils"
)

// Animal enumerations for clinic submissions.
var (
	animalSpecies = []string{"DOG", "CAT", "BIRD", "RABBIT", "HAMSTER", "OTHER"}
	animalSexes   = []string{"MALE", "FEMALE"}
)

// Required document fields per service type, with the labels shown to the
// applicant. Order matters for stable error reporting.
type DocumentField struct {
	Field string
	Label string
}

var vetPracticeDocuments = []DocumentField{
	{"application_letter", "Surat Permohonan"},
	{"id_card_copy", "Fotokopi KTP"},
	{"photo", "Pas Foto"},
	{"veterinary_diploma", "Ijazah Dokter Hewan"},
	{"competency_certificate", "Sertifikat Kompetensi"},
	{"professional_recommendation_letter", "Surat Rekomendasi Organisasi Profesi"},
}

var vetControlDocuments = []DocumentField{
	{"application_letter", "Surat Permohonan"},
	{"general_specific_data", "Data Umum dan Data Khusus"},
	{"sanitation_sop", "SOP Pembersihan dan Sanitasi"},
	{"document_truthfulness_statement", "Surat Pernyataan Kebenaran Dokumen"},
}

// RequiredDocuments returns the document fields a service type demands, or
// nil when it demands none.
func RequiredDocuments(serviceType string) []DocumentField {
	switch serviceType {
	case models.ServiceTypeVetPracticeRecommendation:
		return vetPracticeDocuments
	case models.ServiceTypeVetControlNumber:
		return vetControlDocuments
	}
	return nil
}

// SubmissionInput is the candidate payload for a new submission. Documents
// maps document field name to the stored file name (or any non-empty
// acknowledgement) for the two document-based service types.
type SubmissionInput struct {
	Name           string
	NationalID     string
	Email          string
	WhatsappNumber string
	ServiceType    string
	Consent        bool

	// Clinic fields
	AnimalName    string
	AnimalSpecies string
	AnimalSex     string
	AnimalAge     string
	Complaint     string

	Documents map[string]string
}

// ValidateSubmission checks the payload against the universal rules plus the
// service-type-specific rules and returns either a normalized submission
// record or the complete map of field errors. It runs exhaustively so the
// caller can show every problem at once; it never touches storage.
func ValidateSubmission(in SubmissionInput) (*models.Submission, map[string]string) {
	errs := make(map[string]string)

	name := utils.SanitizeInput(in.Name)
	if name == "" {
		errs["name"] = "Nama wajib diisi"
	}

	nik := strings.TrimSpace(in.NationalID)
	switch {
	case nik == "":
		errs["national_id"] = "NIK wajib diisi"
	case len(nik) != 16:
		errs["national_id"] = "NIK harus 16 digit"
	case !utils.ValidateNationalID(nik):
		errs["national_id"] = "NIK hanya boleh berisi angka"
	}

	email := strings.TrimSpace(in.Email)
	switch {
	case email == "":
		errs["email"] = "Email wajib diisi"
	case !utils.ValidateEmail(email):
		errs["email"] = "Format email tidak valid"
	}

	wa := strings.TrimSpace(in.WhatsappNumber)
	switch {
	case wa == "":
		errs["whatsapp_number"] = "Nomor WhatsApp wajib diisi"
	case !utils.ValidateWhatsappNumber(wa):
		errs["whatsapp_number"] = "Format nomor WhatsApp tidak valid. Gunakan 08xxxxxxxxxx atau +628xxxxxxxxxx"
	}

	switch {
	case in.ServiceType == "":
		errs["service_type"] = "Jenis layanan wajib dipilih"
	case !models.IsValidServiceType(in.ServiceType):
		errs["service_type"] = "Jenis layanan tidak dikenal"
	}

	if !in.Consent {
		errs["consent"] = "Anda harus menyetujui pemberian notifikasi"
	}

	switch in.ServiceType {
	case models.ServiceTypeClinic:
		validateClinicFields(in, errs)
	case models.ServiceTypeVetPracticeRecommendation, models.ServiceTypeVetControlNumber:
		for _, doc := range RequiredDocuments(in.ServiceType) {
			if strings.TrimSpace(in.Documents[doc.Field]) == "" {
				errs[doc.Field] = doc.Label + " wajib diupload"
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	sub := &models.Submission{
		Name:           name,
		NationalID:     nik,
		Email:          email,
		WhatsappNumber: utils.NormalizeWhatsappNumber(wa),
		ServiceType:    in.ServiceType,
		Status:         models.StatusNew,
	}
	sub.AdditionalData = datatypes.JSON(buildAdditionalData(in))
	return sub, nil
}

func validateClinicFields(in SubmissionInput, errs map[string]string) {
	if strings.TrimSpace(in.AnimalName) == "" {
		errs["animal_name"] = "Nama hewan wajib diisi"
	}
	if in.AnimalSpecies == "" {
		errs["animal_species"] = "Jenis hewan wajib dipilih"
	} else if !containsString(animalSpecies, in.AnimalSpecies) {
		errs["animal_species"] = "Jenis hewan tidak dikenal"
	}
	if in.AnimalSex == "" {
		errs["animal_sex"] = "Jenis kelamin hewan wajib dipilih"
	} else if !containsString(animalSexes, in.AnimalSex) {
		errs["animal_sex"] = "Jenis kelamin hewan tidak dikenal"
	}
	if strings.TrimSpace(in.AnimalAge) == "" {
		errs["animal_age"] = "Umur hewan wajib diisi"
	}
	if strings.TrimSpace(in.Complaint) == "" {
		errs["complaint"] = "Keluhan wajib diisi"
	}
}

// buildAdditionalData serializes the service-type-dependent payload. The
// blob is opaque from here on; nothing re-validates it against the service
// type after creation.
func buildAdditionalData(in SubmissionInput) []byte {
	var payload map[string]string

	switch in.ServiceType {
	case models.ServiceTypeClinic:
		payload = map[string]string{
			"animal_name":    strings.TrimSpace(in.AnimalName),
			"animal_species": in.AnimalSpecies,
			"animal_sex":     in.AnimalSex,
			"animal_age":     strings.TrimSpace(in.AnimalAge),
			"complaint":      strings.TrimSpace(in.Complaint),
		}
	case models.ServiceTypeVetPracticeRecommendation, models.ServiceTypeVetControlNumber:
		payload = make(map[string]string)
		for _, doc := range RequiredDocuments(in.ServiceType) {
			payload[doc.Field] = strings.TrimSpace(in.Documents[doc.Field])
		}
	default:
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

// Tracking codes look like WS-20250926-001: fixed prefix, date stamp,
// zero-padded daily sequence. Uniqueness is ultimately enforced by the
// storage layer's unique index.
const trackingCodePrefix = "WS"

// TrackingCodeDatePrefix returns the shared prefix for all codes issued on
// the given day, e.g. "WS-20250926-".
func TrackingCodeDatePrefix(t time.Time) string {
	return fmt.Sprintf("%s-%s-", trackingCodePrefix, t.Format("20060102"))
}

// FormatTrackingCode renders a full tracking code for the given day and
// sequence number.
func FormatTrackingCode(t time.Time, seq int) string {
	return fmt.Sprintf("%s%03d", TrackingCodeDatePrefix(t), seq)
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
