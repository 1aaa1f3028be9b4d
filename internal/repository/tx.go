package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/senyabanana/talentlink-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type txKey struct{}

// Transactor - выполняет функцию в рамках одной транзакции.
// Репозитории, получившие ctx из fn, работают внутри этой транзакции.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// PostgresTransactor - реализация Transactor поверх пула pgx.
type PostgresTransactor struct {
	DB *pgxpool.Pool
}

// NewPostgresTransactor создает новый экземпляр PostgresTransactor.
func NewPostgresTransactor(db *pgxpool.Pool) *PostgresTransactor {
	return &PostgresTransactor{DB: db}
}

// WithinTx открывает транзакцию, вложенные вызовы переиспользуют внешнюю.
func (t *PostgresTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := t.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// querier - общее подмножество методов pgxpool.Pool и pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// conn возвращает текущую транзакцию из ctx или пул.
func conn(ctx context.Context, db *pgxpool.Pool) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db
}

const (
	codeUniqueViolation           = "23505"
	codeInvalidTextRepresentation = "22P02"
)

// notFound переводит pgx.ErrNoRows и некорректный UUID в models.ErrNotFound.
func notFound(err error, entity string) error {
	if errors.Is(err, pgx.ErrNoRows) || pgErrorCode(err) == codeInvalidTextRepresentation {
		return models.NotFound(entity + " not found")
	}
	return err
}

// pgErrorCode возвращает SQLSTATE ошибки Postgres или пустую строку.
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// exists выполняет запрос вида SELECT EXISTS(...).
func exists(ctx context.Context, q querier, query string, args ...any) (bool, error) {
	var found bool
	if err := q.QueryRow(ctx, query, args...).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}
