package permanentabsence_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eliezerb2/presence/internal/permanentabsence"
	permanentabsenceerrors "github.com/eliezerb2/presence/internal/permanentabsence/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakePermanentAbsenceService struct {
	ResolveForDateFn func(ctx context.Context, date, now time.Time) (permanentabsence.ResolveResult, error)
	CreateFn         func(ctx context.Context, req permanentabsence.CreatePermanentAbsenceRequest) (permanentabsence.PermanentAbsenceResponse, error)
	ListFn           func(ctx context.Context, studentID string) ([]permanentabsence.PermanentAbsenceResponse, error)
	DeleteFn         func(ctx context.Context, id string) error
}

func (f *fakePermanentAbsenceService) ResolveForDate(ctx context.Context, date, now time.Time) (permanentabsence.ResolveResult, error) {
	return f.ResolveForDateFn(ctx, date, now)
}
func (f *fakePermanentAbsenceService) Create(ctx context.Context, req permanentabsence.CreatePermanentAbsenceRequest) (permanentabsence.PermanentAbsenceResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakePermanentAbsenceService) List(ctx context.Context, studentID string) ([]permanentabsence.PermanentAbsenceResponse, error) {
	return f.ListFn(ctx, studentID)
}
func (f *fakePermanentAbsenceService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func setupRouter(svc permanentabsence.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	permanentabsence.RegisterRoutes(r.Group("/api"), permanentabsence.NewHandler(svc, time.UTC))
	return r
}

func TestPermanentAbsenceHandler_Create(t *testing.T) {
	t.Run("validation error", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/permanent-absences", strings.NewReader(`{"weekday":"monday"}`))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(&fakePermanentAbsenceService{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("conflict", func(t *testing.T) {
		svc := &fakePermanentAbsenceService{
			CreateFn: func(ctx context.Context, req permanentabsence.CreatePermanentAbsenceRequest) (permanentabsence.PermanentAbsenceResponse, error) {
				return permanentabsence.PermanentAbsenceResponse{}, permanentabsenceerrors.ErrPermanentAbsenceExists
			},
		}
		body := `{"student_id":"` + uuid.NewString() + `","weekday":"monday"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/permanent-absences", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		setupRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestPermanentAbsenceHandler_Resolve(t *testing.T) {
	t.Run("explicit date", func(t *testing.T) {
		svc := &fakePermanentAbsenceService{
			ResolveForDateFn: func(ctx context.Context, date, now time.Time) (permanentabsence.ResolveResult, error) {
				assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), date)
				return permanentabsence.ResolveResult{Date: "2026-10-19", SchoolDay: true, Created: 2}, nil
			},
		}
		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/permanent-absences/resolve?date=2026-10-19", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"created":2`)
	})

	t.Run("malformed date", func(t *testing.T) {
		w := httptest.NewRecorder()
		setupRouter(&fakePermanentAbsenceService{}).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/permanent-absences/resolve?date=19-10-2026", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
