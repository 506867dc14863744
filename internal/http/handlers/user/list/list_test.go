package list

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gymbo-api/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) FindByPlanID(ctx context.Context, planID int64) ([]*models.User, error) {
	args := m.Called(ctx, planID)
	if res := args.Get(0); res != nil {
		return res.([]*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		planID         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "подписчики найдены",
			planID: "1",
			setupMock: func(m *MockService) {
				m.On("FindByPlanID", mock.Anything, int64(1)).
					Return([]*models.User{{ID: 3, Username: "bob", Email: "bob@example.com"}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"id":3,"username":"bob","email":"bob@example.com","activePlan":null,"paidUntil":null}]`,
		},
		{
			name:   "пустой список",
			planID: "2",
			setupMock: func(m *MockService) {
				m.On("FindByPlanID", mock.Anything, int64(2)).Return([]*models.User{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name:           "некорректный id",
			planID:         "gold",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid plan id"}`,
		},
		{
			name:   "ошибка сервиса",
			planID: "1",
			setupMock: func(m *MockService) {
				m.On("FindByPlanID", mock.Anything, int64(1)).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not list users"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodGet, "/user/list/"+tt.planID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("planId", tt.planID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			New(logger, mockService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
