package gymbo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gymbo-api/internal/cache"
	"github.com/magabrotheeeer/gymbo-api/internal/config"
	"github.com/magabrotheeeer/gymbo-api/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/gymbo-api/internal/models"
	planservice "github.com/magabrotheeeer/gymbo-api/internal/services/plan"
	userservice "github.com/magabrotheeeer/gymbo-api/internal/services/user"
	"github.com/magabrotheeeer/gymbo-api/internal/storage"
)

// memStore реализует репозитории планов и пользователей в памяти.
type memStore struct {
	mu     sync.Mutex
	plans  map[int64]models.Plan
	users  map[int64]models.User
	nextID int64
}

func newMemStore() *memStore {
	return &memStore{plans: map[int64]models.Plan{}, users: map[int64]models.User{}}
}

func (s *memStore) Ping(context.Context) error { return nil }

func (s *memStore) PlanByID(_ context.Context, id int64) (*models.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plans[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &p, nil
}

func (s *memStore) PlanByTitle(_ context.Context, title string) (*models.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.plans {
		if p.Title == title {
			return &p, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *memStore) CreatePlan(_ context.Context, plan models.Plan) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.plans {
		if p.Title == plan.Title || p.Description == plan.Description {
			return 0, storage.ErrDuplicate
		}
	}
	s.nextID++
	plan.ID = s.nextID
	s.plans[plan.ID] = plan
	return plan.ID, nil
}

func (s *memStore) UpdatePlan(_ context.Context, plan models.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[plan.ID]; !ok {
		return storage.ErrNotFound
	}
	s.plans[plan.ID] = plan
	return nil
}

func (s *memStore) PlanExists(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.plans[id]
	return ok, nil
}

func (s *memStore) RemovePlan(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ActivePlan != nil && u.ActivePlan.ID == id {
			return storage.ErrReferenced
		}
	}
	delete(s.plans, id)
	return nil
}

func (s *memStore) withPlan(u models.User) *models.User {
	if u.ActivePlan != nil {
		p := s.plans[u.ActivePlan.ID]
		u.ActivePlan = &p
	}
	return &u
}

func (s *memStore) UserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s.withPlan(u), nil
}

func (s *memStore) UserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return s.withPlan(u), nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *memStore) UsersByPlanID(_ context.Context, planID int64) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []*models.User
	for _, u := range s.users {
		if u.ActivePlan != nil && u.ActivePlan.ID == planID {
			res = append(res, s.withPlan(u))
		}
	}
	return res, nil
}

func (s *memStore) CreateUser(_ context.Context, user models.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return 0, storage.ErrDuplicate
		}
	}
	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = user
	return user.ID, nil
}

func (s *memStore) UpdateUserCredentials(_ context.Context, id int64, passwordHash, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.PasswordHash, u.Email = passwordHash, email
	s.users[id] = u
	return nil
}

func (s *memStore) UpdateUserSubscription(_ context.Context, id int64, planID *int64, paidUntil *models.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.ActivePlan, u.PaidUntil = nil, nil
	if planID != nil {
		if _, ok := s.plans[*planID]; !ok {
			return storage.ErrReferenced
		}
		u.ActivePlan, u.PaidUntil = &models.Plan{ID: *planID}, paidUntil
	}
	s.users[id] = u
	return nil
}

func (s *memStore) UserExists(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[id]
	return ok, nil
}

func (s *memStore) RemoveUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

func newTestRouter(t *testing.T, legacy bool) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := newMemStore()
	plans := planservice.NewService(store, cache.Nop{}, time.Minute, logger)
	users := userservice.NewService(store, plans, rabbitmq.NopPublisher{}, logger)

	return NewRouter(logger, config.HTTPServer{LegacyErrorStatus: legacy}, Deps{
		Users:    users,
		Plans:    plans,
		Health:   store,
		Registry: prometheus.NewRegistry(),
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_SubscriptionScenario(t *testing.T) {
	h := newTestRouter(t, false)

	w := do(t, h, http.MethodPost, "/plan", `{"title":"Gold","description":"Gold tier","monthlyPrice":49.9}`)
	require.Equal(t, http.StatusCreated, w.Code)
	planLoc := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(planLoc, "/plan/"))
	planID := strings.TrimPrefix(planLoc, "/plan/")

	w = do(t, h, http.MethodPost, "/user", `{"username":"alice","password":"secret1","email":"alice@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	userLoc := w.Header().Get("Location")
	userID := strings.TrimPrefix(userLoc, "/user/")

	w = do(t, h, http.MethodGet, "/user/plan/"+userID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No Plan subscription found for the user alice.")

	w = do(t, h, http.MethodPut, "/user/plan/subscribe/"+userID, fmt.Sprintf(`{"planId":%s,"paidUntil":"2030-01-01"}`, planID))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/user/plan/"+userID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Gold"`)

	w = do(t, h, http.MethodGet, "/user/payment/"+userID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", strings.TrimSpace(w.Body.String()))

	w = do(t, h, http.MethodGet, "/user/list/"+planID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)

	w = do(t, h, http.MethodGet, "/user/alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"paidUntil":"2030-01-01"`)
	assert.NotContains(t, w.Body.String(), "secret1")

	w = do(t, h, http.MethodDelete, "/plan/"+planID, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "could not be deleted.")

	w = do(t, h, http.MethodPut, "/user/plan/unsubscribe/"+userID, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodDelete, "/plan/"+planID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/plan/"+planID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_LegacyErrorStatus(t *testing.T) {
	h := newTestRouter(t, true)

	w := do(t, h, http.MethodGet, "/user/42", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(t, h, http.MethodGet, "/plan/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_Infrastructure(t *testing.T) {
	h := newTestRouter(t, false)

	w := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	do(t, h, http.MethodGet, "/plan/1", "")
	w = do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `gymbo_http_requests_total{method="GET",route="/plan/{id}",status="404"} 1`)
}
