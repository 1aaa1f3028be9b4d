package pgtest

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/senyabanana/talentlink-service/internal/db"
	"github.com/senyabanana/talentlink-service/internal/models"
	"github.com/senyabanana/talentlink-service/internal/router/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// ConnEnv - переменная окружения со строкой подключения к тестовой базе.
const ConnEnv = "TEST_POSTGRES_CONN"

// Pool возвращает пул к тестовой базе с примененными миграциями.
// Без TEST_POSTGRES_CONN тест пропускается.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	conn := os.Getenv(ConnEnv)
	if conn == "" {
		t.Skipf("%s is not set", ConnEnv)
	}

	require.NoError(t, db.RunMigrations(migrationURL(t), conn))

	pool, err := db.InitDb(context.Background(), config.Config{PostgresConn: conn, DBMaxConns: 16})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func migrationURL(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return "file://" + filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}

// CreateUser добавляет пользователя с уникальным именем.
func CreateUser(t *testing.T, pool *pgxpool.Pool, isClient, isFreelancer bool) models.User {
	t.Helper()

	user := models.User{
		ID:           uuid.NewString(),
		Username:     "user-" + uuid.NewString()[:8],
		PasswordHash: "hash",
		IsClient:     isClient,
		IsFreelancer: isFreelancer,
	}
	user.Email = user.Username + "@example.com"

	err := pool.QueryRow(context.Background(), `
		INSERT INTO users (id, username, email, password_hash, is_client, is_freelancer)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.IsClient, user.IsFreelancer,
	).Scan(&user.CreatedAt)
	require.NoError(t, err)
	return user
}
