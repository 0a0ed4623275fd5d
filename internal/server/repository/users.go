// Package repository реализует доступ к PostgreSQL поверх database/sql.
//
// Репозитории переводят ошибки драйвера в доменные ошибки
// (уникальные индексы, отсутствие строк) и не содержат бизнес-логики.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgconn"

	serr "github.com/jotvibfeng/development-platforms-ca/internal/shared/errors"
)

type UsersRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
}

func NewUsersRepository(db *sql.DB, queryTimeout time.Duration) *UsersRepository {
	return &UsersRepository{db: db, queryTimeout: queryTimeout}
}

// withTimeout ограничивает время запроса, если таймаут задан в конфиге.
func (r *UsersRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

func (r *UsersRepository) Create(ctx context.Context, email, passwordHash string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var id int64

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash)
		 VALUES ($1,$2)
		 RETURNING id`,
		email, passwordHash,
	).Scan(&id)

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" { // unique_violation
				return 0, serr.ErrAlreadyExists
			}
		}
		return 0, serr.ErrInternal
	}

	return id, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (int64, string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var (
		id   int64
		hash string
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT id, password_hash FROM users WHERE email=$1`,
		email,
	).Scan(&id, &hash)

	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", serr.ErrNotFound
		}
		return 0, "", serr.ErrInternal
	}

	return id, hash, nil
}

// Update меняет email и/или password_hash пользователя.
// nil-поле остаётся без изменений (COALESCE).
//
// Возвращает итоговый email пользователя.
func (r *UsersRepository) Update(ctx context.Context, id int64, email, passwordHash *string) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var newEmail string

	err := r.db.QueryRowContext(ctx,
		`UPDATE users
		 SET email = COALESCE($2, email),
		     password_hash = COALESCE($3, password_hash)
		 WHERE id = $1
		 RETURNING email`,
		id, email, passwordHash,
	).Scan(&newEmail)

	if err != nil {
		if err == sql.ErrNoRows {
			return "", serr.ErrNotFound
		}
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" { // unique_violation
				return "", serr.ErrAlreadyExists
			}
		}
		return "", serr.ErrInternal
	}

	return newEmail, nil
}
