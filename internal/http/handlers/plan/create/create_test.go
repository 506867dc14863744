package create

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gymbo-api/internal/lib/apierr"
	"github.com/magabrotheeeer/gymbo-api/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, in models.CreatePlanInput) (*models.Plan, error) {
	args := m.Called(ctx, in)
	if res := args.Get(0); res != nil {
		return res.(*models.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	valid := models.CreatePlanInput{Title: "Gold", Description: "Gold tier", MonthlyPrice: 49.9}
	body := `{"title":"Gold","description":"Gold tier","monthlyPrice":49.9}`

	tests := []struct {
		name             string
		body             string
		setupMock        func(*MockService)
		expectedStatus   int
		expectedLocation string
		expectedBody     string
	}{
		{
			name: "план создан",
			body: body,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, valid).Return(&models.Plan{ID: 1, Title: "Gold"}, nil)
			},
			expectedStatus:   http.StatusCreated,
			expectedLocation: "/plan/1",
		},
		{
			name:           "нулевая цена",
			body:           `{"title":"Gold","description":"Gold tier","monthlyPrice":0}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field MonthlyPrice is a required field",
		},
		{
			name:           "некорректный JSON",
			body:           `{"title":1}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name: "дубликат",
			body: body,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, valid).
					Return(nil, apierr.New(apierr.Conflict, "A Plan with title = Gold or the same description already exists"))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   "already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodPost, "/plan", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			New(logger, mockService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedLocation, w.Header().Get("Location"))
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
