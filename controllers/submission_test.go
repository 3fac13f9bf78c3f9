package controllers

import (
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"vet-portal-api/services"
)

// Canned drivers for handler tests. forbiddenGormDB fails the test on any
// statement, proving a request path never reached storage; emptyGormDB
// answers every query with zero rows.

type cannedConn struct {
	onStatement func(query string) error
}

func (c *cannedConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("prepare not supported") }
func (c *cannedConn) Close() error                        { return nil }
func (c *cannedConn) Begin() (driver.Tx, error)           { return nil, errors.New("transactions not supported") }

func (c *cannedConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	if err := c.onStatement(query); err != nil {
		return nil, err
	}
	return emptyRows{}, nil
}

func (c *cannedConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if err := c.onStatement(query); err != nil {
		return nil, err
	}
	return cannedResult{}, nil
}

type emptyRows struct{}

func (emptyRows) Columns() []string              { return nil }
func (emptyRows) Close() error                   { return nil }
func (emptyRows) Next(dest []driver.Value) error { return io.EOF }

type cannedResult struct{}

func (cannedResult) LastInsertId() (int64, error) { return 0, nil }
func (cannedResult) RowsAffected() (int64, error) { return 0, nil }

type cannedDriver struct {
	onStatement func(query string) error
}

func (d *cannedDriver) Open(string) (driver.Conn, error) {
	return &cannedConn{onStatement: d.onStatement}, nil
}

func newCannedGormDB(t *testing.T, onStatement func(query string) error) *gorm.DB {
	t.Helper()
	driverName := fmt.Sprintf("canned_%s_%d", t.Name(), time.Now().UnixNano())
	sql.Register(driverName, &cannedDriver{onStatement: onStatement})

	sqlDB, err := sql.Open(driverName, "")
	if err != nil {
		t.Fatalf("failed to open sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("failed to create gorm db: %v", err)
	}
	return gormDB
}

func forbiddenGormDB(t *testing.T) *gorm.DB {
	return newCannedGormDB(t, func(query string) error {
		t.Errorf("unexpected storage access: %s", query)
		return errors.New("storage must not be touched")
	})
}

func emptyGormDB(t *testing.T) *gorm.DB {
	return newCannedGormDB(t, func(string) error { return nil })
}

func newSubmissionRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	submissions := services.NewSubmissionService(db)
	notifier := services.NewNotificationService(db)
	ctl := NewSubmissionController(submissions, notifier, "./uploads-test")

	router := gin.New()
	router.POST("/api/v1/submissions", ctl.Create)
	router.GET("/api/v1/submissions/:tracking_code", ctl.Track)
	return router
}

func TestCreateSubmissionRejectsIncompletePayloadWithoutPersisting(t *testing.T) {
	router := newSubmissionRouter(forbiddenGormDB(t))

	body := `{"service_type":"CLINIC"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error response: %v", err)
	}

	for _, field := range []string{"name", "national_id", "email", "whatsapp_number", "consent", "animal_name", "complaint"} {
		if resp.Errors[field] == "" {
			t.Errorf("expected an error for field %q, got %v", field, resp.Errors)
		}
	}
}

func TestCreateSubmissionRejectsMissingDocuments(t *testing.T) {
	router := newSubmissionRouter(forbiddenGormDB(t))

	body := `{
		"name": "Dr. Siti",
		"national_id": "1234567890123456",
		"email": "siti@example.com",
		"whatsapp_number": "081234567890",
		"service_type": "VET_PRACTICE_RECOMMENDATION",
		"consent": true
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error response: %v", err)
	}
	if len(resp.Errors) != 6 {
		t.Fatalf("expected 6 document errors, got %d: %v", len(resp.Errors), resp.Errors)
	}
}

func TestCreateSubmissionMultipartAcceptsCheckboxConsent(t *testing.T) {
	router := newSubmissionRouter(forbiddenGormDB(t))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("service_type", "CLINIC")
	_ = mw.WriteField("consent", "on")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error response: %v", err)
	}

	// The checkbox value must not derail binding: the response is the
	// field error map, and consent counts as given.
	if resp.Errors == nil {
		t.Fatalf("expected the field error map, got %s", w.Body.String())
	}
	if _, ok := resp.Errors["consent"]; ok {
		t.Errorf("consent=on must count as given, got %v", resp.Errors)
	}
	if resp.Errors["name"] == "" {
		t.Errorf("expected the remaining field errors, got %v", resp.Errors)
	}
}

func TestTrackReturnsNotFoundForUnknownCode(t *testing.T) {
	router := newSubmissionRouter(emptyGormDB(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/submissions/WS-20250101-999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "sql") || strings.Contains(w.Body.String(), "record not found") {
		t.Fatalf("storage error text must not leak to clients: %s", w.Body.String())
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := forbiddenGormDB(t)
	ctl := NewAdminSubmissionController(services.NewSubmissionService(db), services.NewNotificationService(db))

	router := gin.New()
	router.PATCH("/api/v1/admin/submissions/:id/status", ctl.UpdateStatus)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/submissions/some-id/status",
		strings.NewReader(`{"status":"ARCHIVED"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}
