package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/senyabanana/talentlink-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		notFound bool
	}{
		{name: "no rows", err: pgx.ErrNoRows, notFound: true},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), notFound: true},
		{name: "invalid uuid text", err: &pgconn.PgError{Code: codeInvalidTextRepresentation}, notFound: true},
		{name: "unique violation", err: &pgconn.PgError{Code: codeUniqueViolation}, notFound: false},
		{name: "other", err: errors.New("connection reset"), notFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := notFound(tt.err, "proposal")
			assert.Equal(t, tt.notFound, errors.Is(err, models.ErrNotFound))
			if tt.notFound {
				assert.EqualError(t, err, "proposal not found")
			} else {
				assert.Same(t, tt.err, err)
			}
		})
	}
}

func TestPgErrorCode(t *testing.T) {
	wrapped := fmt.Errorf("failed to insert user: %w", &pgconn.PgError{Code: codeUniqueViolation})
	assert.Equal(t, codeUniqueViolation, pgErrorCode(wrapped))
	assert.Empty(t, pgErrorCode(errors.New("plain")))
	assert.Empty(t, pgErrorCode(nil))
}
