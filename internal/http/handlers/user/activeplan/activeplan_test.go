package activeplan

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gymbo-api/internal/http/response"
	"github.com/magabrotheeeer/gymbo-api/internal/lib/apierr"
	"github.com/magabrotheeeer/gymbo-api/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) FindPlan(ctx context.Context, userID int64) (*models.Plan, error) {
	args := m.Called(ctx, userID)
	if res := args.Get(0); res != nil {
		return res.(*models.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestActivePlanHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	noSub := apierr.New(apierr.NoSubscription, "No Plan subscription found for the user alice.")

	tests := []struct {
		name           string
		id             string
		legacy         bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "план найден",
			id:   "1",
			setupMock: func(m *MockService) {
				m.On("FindPlan", mock.Anything, int64(1)).
					Return(&models.Plan{ID: 1, Title: "Gold", Description: "Gold tier", MonthlyPrice: 49.9}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":1,"title":"Gold","description":"Gold tier","monthlyPrice":49.9}`,
		},
		{
			name: "нет подписки",
			id:   "1",
			setupMock: func(m *MockService) {
				m.On("FindPlan", mock.Anything, int64(1)).Return(nil, noSub)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"No Plan subscription found for the user alice."}`,
		},
		{
			name:   "нет подписки в режиме совместимости",
			id:     "1",
			legacy: true,
			setupMock: func(m *MockService) {
				m.On("FindPlan", mock.Anything, int64(1)).Return(nil, noSub)
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "некорректный id",
			id:             "x",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid id"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodGet, "/user/plan/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.legacy {
				ctx = response.WithLegacyStatus(ctx)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			New(logger, mockService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody == "" {
				assert.Empty(t, w.Body.String())
			} else {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
			mockService.AssertExpectations(t)
		})
	}
}
