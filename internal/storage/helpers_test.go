package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/gymbo-api/internal/migrations"
)

const pgPort = nat.Port("5432/tcp")

// TestDataFactory создаёт тестовые записи напрямую в БД, минуя проверяемые методы.
type TestDataFactory struct {
	storage *Storage
}

func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreatePlan создаёт план и возвращает его ID.
func (f *TestDataFactory) CreatePlan(t *testing.T, title, description string, price float64) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO plans (title, description, monthly_price)
		VALUES ($1, $2, $3) RETURNING id`, title, description, price).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateUser создаёт пользователя без подписки и возвращает его ID.
func (f *TestDataFactory) CreateUser(t *testing.T, username, email string) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO users (username, password_hash, email)
		VALUES ($1, 'hashedpassword', $2) RETURNING id`, username, email).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateSubscriber создаёт пользователя, подписанного на план planID.
func (f *TestDataFactory) CreateSubscriber(t *testing.T, username string, planID int64, paidUntil time.Time) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO users (username, password_hash, email, plan_id, paid_until)
		VALUES ($1, 'hashedpassword', $2, $3, $4) RETURNING id`,
		username, username+"@example.com", planID, paidUntil).Scan(&id)
	require.NoError(t, err)
	return id
}

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{string(pgPort)},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(pgPort),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(3 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start container")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, pgPort)
	require.NoError(t, err, "failed to get port")

	connStr := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())

	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	migrationsPath, err := filepath.Abs("../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	t.Cleanup(func() {
		_ = storage.Close()
		_ = container.Terminate(ctx)
	})

	return storage
}
