package create

import (
	"bytes"
	"context"
	"errors"
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

func (m *MockService) Create(ctx context.Context, in models.CreateUserInput) (*models.User, error) {
	args := m.Called(ctx, in)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	valid := models.CreateUserInput{Username: "alice", Password: "secret1", Email: "alice@example.com"}

	tests := []struct {
		name             string
		body             string
		setupMock        func(*MockService)
		expectedStatus   int
		expectedLocation string
		expectedBody     string
	}{
		{
			name: "пользователь создан",
			body: `{"username":"alice","password":"secret1","email":"alice@example.com"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, valid).Return(&models.User{ID: 5, Username: "alice"}, nil)
			},
			expectedStatus:   http.StatusCreated,
			expectedLocation: "/user/5",
		},
		{
			name:           "некорректный JSON",
			body:           `{"username":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:           "ошибка валидации",
			body:           `{"username":"a","password":"123","email":"not-an-email"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Username must be at least 2 characters long",
		},
		{
			name: "имя занято",
			body: `{"username":"alice","password":"secret1","email":"alice@example.com"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, valid).
					Return(nil, apierr.New(apierr.Conflict, "A User with username = alice already exists"))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   "A User with username = alice already exists",
		},
		{
			name: "ошибка сервиса",
			body: `{"username":"alice","password":"secret1","email":"alice@example.com"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, valid).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "could not create user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodPost, "/user", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			New(logger, mockService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedLocation, w.Header().Get("Location"))
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
