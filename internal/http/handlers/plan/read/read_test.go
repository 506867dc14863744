package read

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

	"github.com/magabrotheeeer/gymbo-api/internal/lib/apierr"
	"github.com/magabrotheeeer/gymbo-api/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) FindByID(ctx context.Context, id int64) (*models.Plan, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockService) FindByTitle(ctx context.Context, title string) (*models.Plan, error) {
	args := m.Called(ctx, title)
	if res := args.Get(0); res != nil {
		return res.(*models.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gold := &models.Plan{ID: 1, Title: "Gold", Description: "Gold tier", MonthlyPrice: 49.9}
	goldJSON := `{"id":1,"title":"Gold","description":"Gold tier","monthlyPrice":49.9}`

	tests := []struct {
		name           string
		param          string
		value          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "по ID",
			param: "id",
			value: "1",
			setupMock: func(m *MockService) {
				m.On("FindByID", mock.Anything, int64(1)).Return(gold, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   goldJSON,
		},
		{
			name:  "по названию",
			param: "title",
			value: "Gold",
			setupMock: func(m *MockService) {
				m.On("FindByTitle", mock.Anything, "Gold").Return(gold, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   goldJSON,
		},
		{
			name:  "не найден",
			param: "id",
			value: "5",
			setupMock: func(m *MockService) {
				m.On("FindByID", mock.Anything, int64(5)).
					Return(nil, apierr.New(apierr.NotFound, "Could not find a Plan with id = 5"))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"Could not find a Plan with id = 5"}`,
		},
		{
			name:           "некорректный id",
			param:          "id",
			value:          "gold",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid id"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodGet, "/plan/"+tt.value, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add(tt.param, tt.value)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()

			New(logger, mockService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
