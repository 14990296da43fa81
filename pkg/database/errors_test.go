package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm 翻译后的错误", gorm.ErrDuplicatedKey, true},
		{"包装后的 gorm 错误", fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), true},
		{"postgres 23505", &pgconn.PgError{Code: "23505"}, true},
		{"postgres 其它错误码", &pgconn.PgError{Code: "23503"}, false},
		{"sqlite 原始错误", errors.New("UNIQUE constraint failed: colors.name"), true},
		{"普通错误", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("get: %w", gorm.ErrRecordNotFound)))
	assert.False(t, IsNotFound(gorm.ErrDuplicatedKey))
}
