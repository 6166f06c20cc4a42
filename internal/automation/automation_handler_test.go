package automation_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eliezerb2/presence/internal/attendance"
	"github.com/eliezerb2/presence/internal/automation"
	automationerrors "github.com/eliezerb2/presence/internal/automation/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type sweeperFunc func(ctx context.Context, date, now time.Time) (automation.SweepResult, error)

func (f sweeperFunc) RunDailySweep(ctx context.Context, date, now time.Time) (automation.SweepResult, error) {
	return f(ctx, date, now)
}

func setupRouter(s automation.Sweeper) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	automation.RegisterRoutes(r.Group("/api"), automation.NewHandler(s, attendance.DefaultSchedule(time.UTC)))
	return r
}

func TestAutomationHandler_Sweep(t *testing.T) {
	t.Run("explicit date and time", func(t *testing.T) {
		s := sweeperFunc(func(ctx context.Context, date, now time.Time) (automation.SweepResult, error) {
			assert.Equal(t, monday, date)
			assert.Equal(t, at(10, 45), now)
			return automation.SweepResult{Date: "2026-10-19", SchoolDay: true, Transitions: map[string]int{"yom_lo_ba_li": 4}}, nil
		})
		w := httptest.NewRecorder()
		setupRouter(s).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/automation/sweep?date=2026-10-19&at=10:45", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"yom_lo_ba_li":4`)
	})

	t.Run("malformed time", func(t *testing.T) {
		w := httptest.NewRecorder()
		setupRouter(sweeperFunc(nil)).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/automation/sweep?at=25:99", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("sweep in progress", func(t *testing.T) {
		s := sweeperFunc(func(ctx context.Context, date, now time.Time) (automation.SweepResult, error) {
			return automation.SweepResult{}, automationerrors.ErrSweepInProgress
		})
		w := httptest.NewRecorder()
		setupRouter(s).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/automation/sweep", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
