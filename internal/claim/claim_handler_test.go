package claim_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eliezerb2/presence/internal/calendar"
	"github.com/eliezerb2/presence/internal/claim"
	claimerrors "github.com/eliezerb2/presence/internal/claim/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeClaimService struct {
	EvaluateMonthFn func(ctx context.Context, ym calendar.YearMonth, evaluatedOn time.Time) (claim.EvaluationResult, error)
	CloseClaimFn    func(ctx context.Context, id string, now time.Time) (claim.ClaimResponse, error)
	GetByIDFn       func(ctx context.Context, id string) (claim.ClaimResponse, error)
	ListFn          func(ctx context.Context, req claim.ListRequest) ([]claim.ClaimResponse, error)
}

func (f *fakeClaimService) EvaluateMonth(ctx context.Context, ym calendar.YearMonth, evaluatedOn time.Time) (claim.EvaluationResult, error) {
	return f.EvaluateMonthFn(ctx, ym, evaluatedOn)
}
func (f *fakeClaimService) CloseClaim(ctx context.Context, id string, now time.Time) (claim.ClaimResponse, error) {
	return f.CloseClaimFn(ctx, id, now)
}
func (f *fakeClaimService) GetByID(ctx context.Context, id string) (claim.ClaimResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeClaimService) List(ctx context.Context, req claim.ListRequest) ([]claim.ClaimResponse, error) {
	return f.ListFn(ctx, req)
}

func setupRouter(svc claim.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	claim.RegisterRoutes(r.Group("/api"), claim.NewHandler(svc, time.UTC))
	return r
}

func TestClaimHandler_List(t *testing.T) {
	svc := &fakeClaimService{
		ListFn: func(ctx context.Context, req claim.ListRequest) ([]claim.ClaimResponse, error) {
			assert.Equal(t, "OPEN", req.Status)
			assert.Equal(t, "2026-10", req.Month)
			return []claim.ClaimResponse{{ID: "c-1", Status: "OPEN"}}, nil
		},
	}
	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/claims?status=OPEN&month=2026-10", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"c-1"`)
}

func TestClaimHandler_Close(t *testing.T) {
	t.Run("already closed", func(t *testing.T) {
		svc := &fakeClaimService{
			CloseClaimFn: func(ctx context.Context, id string, now time.Time) (claim.ClaimResponse, error) {
				return claim.ClaimResponse{}, claimerrors.ErrClaimAlreadyClosed
			},
		}
		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/claims/"+uuid.NewString()+"/close", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), `"INVALID_STATE"`)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeClaimService{
			GetByIDFn: func(ctx context.Context, id string) (claim.ClaimResponse, error) {
				return claim.ClaimResponse{}, claimerrors.ErrClaimNotFound
			},
		}
		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/claims/"+uuid.NewString(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestClaimHandler_Evaluate(t *testing.T) {
	t.Run("explicit month", func(t *testing.T) {
		svc := &fakeClaimService{
			EvaluateMonthFn: func(ctx context.Context, ym calendar.YearMonth, evaluatedOn time.Time) (claim.EvaluationResult, error) {
				assert.Equal(t, calendar.YearMonth{Year: 2026, Month: time.September}, ym)
				return claim.EvaluationResult{Period: ym.String(), Evaluated: 12, Created: []claim.ClaimResponse{}}, nil
			},
		}
		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/claims/evaluate?month=2026-09", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"evaluated":12`)
	})

	t.Run("malformed month", func(t *testing.T) {
		w := httptest.NewRecorder()
		setupRouter(&fakeClaimService{}).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/claims/evaluate?month=2026-13", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
