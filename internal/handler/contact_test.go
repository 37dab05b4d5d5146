package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ritirai06/SWASTHMATE/internal/repository"
	"github.com/ritirai06/SWASTHMATE/internal/service"
	"github.com/ritirai06/SWASTHMATE/internal/session"
	"github.com/ritirai06/SWASTHMATE/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeContactRepo struct {
	messages []model.ContactMessage
}

func (f *fakeContactRepo) Create(ctx context.Context, msg *model.ContactMessage) error {
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeContactRepo) List(ctx context.Context, limit int) ([]model.ContactMessage, error) {
	return f.messages, nil
}

type fakeProfileRepo struct {
	profiles map[string]*model.Profile
}

func (f *fakeProfileRepo) Create(ctx context.Context, profile *model.Profile) error {
	f.profiles[profile.PatientID] = profile
	return nil
}

func (f *fakeProfileRepo) FindByPatientID(ctx context.Context, patientID string) (*model.Profile, error) {
	profile, ok := f.profiles[patientID]
	if !ok {
		return nil, fmt.Errorf("profile not found: %s: %w", patientID, repository.ErrNotFound)
	}
	return profile, nil
}

func (f *fakeProfileRepo) Update(ctx context.Context, profile *model.Profile) error {
	f.profiles[profile.PatientID] = profile
	return nil
}

func TestContactSubmitEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	repo := &fakeContactRepo{}
	handler := NewContactHandler(service.NewContactService(repo, logger), logger)

	router := gin.New()
	router.POST("/api/contact", handler.Submit)

	payload, _ := json.Marshal(map[string]string{
		"name":  "John Smith",
		"email": "john@example.com",
		"query": "How do I download my report?",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, repo.messages, 1)
	assert.Equal(t, "John Smith", repo.messages[0].Name)

	// Invalid email surfaces the error field
	payload, _ = json.Marshal(map[string]string{
		"name":  "John Smith",
		"email": "nope",
		"query": "hello",
	})
	req = httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["error"])
	require.Len(t, repo.messages, 1)
}

func TestProfileEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	repo := &fakeProfileRepo{profiles: map[string]*model.Profile{
		"patient-1": {PatientID: "patient-1", Name: "John Smith", Email: "john@example.com", Age: 45, Gender: "male"},
	}}
	sessions := session.NewStore(time.Minute, logger)
	handler := NewProfileHandler(service.NewProfileService(repo, sessions, logger), logger)

	router := gin.New()
	router.GET("/get-profile", handler.GetProfile)
	router.POST("/logout", handler.Logout)

	req := httptest.NewRequest(http.MethodGet, "/get-profile?patient_id=patient-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var profile map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "John Smith", profile["name"])
	assert.Equal(t, float64(45), profile["age"])

	req = httptest.NewRequest(http.MethodGet, "/get-profile?patient_id=missing", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Logout clears the session buffer
	sessions.Put("session-1", &model.AnalysisResult{ReportID: "R1"})
	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "session-1"})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, sessions.Get("session-1"))
}

func TestHistoryEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	repo := &fakeHistoryRepo{}
	now := time.Now()
	reportID := "report-1"
	require.NoError(t, repo.Create(context.Background(), &model.TestRecord{
		ID: "t1", PatientID: "patient-1", TestType: "lab", TestName: "Hemoglobin",
		Status: "Low", ReportID: &reportID, RecordedAt: now,
	}))

	handler := NewHistoryHandler(service.NewHistoryService(repo, logger), logger)

	router := gin.New()
	router.GET("/api/v1/history/:patientId", handler.GetHistory)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history/patient-1?period=month", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		PatientID string             `json:"patient_id"`
		Count     int                `json:"count"`
		Records   []model.TestRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "Hemoglobin", resp.Records[0].TestName)
}

func TestHealthEndpointWithoutDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHealthHandler(nil, zap.NewNop())
	router := gin.New()
	router.GET("/health", handler.Check)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
