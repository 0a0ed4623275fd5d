package tests

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"

	"github.com/jotvibfeng/development-platforms-ca/internal/server/repository"
	"github.com/jotvibfeng/development-platforms-ca/internal/shared/errors"
	"github.com/jotvibfeng/development-platforms-ca/internal/shared/utils"
)

// Успех
func TestUsersRepository_Create_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db, 0)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("test@mail.com", "hash").
		WillReturnRows(
			sqlmock.NewRows([]string{"id"}).AddRow(int64(7)),
		)

	got, err := repo.Create(context.Background(), "test@mail.com", "hash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected 7, got %v", got)
	}
}

// Такой пользователь уже есть
func TestUsersRepository_Create_AlreadyExists(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db, 0)

	pgErr := &pgconn.PgError{
		Code: "23505", // unique_violation
	}

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(pgErr)

	_, err := repo.Create(context.Background(), "test@mail.com", "hash")

	if err != errors.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

// Ошибка сервера
func TestUsersRepository_Create_InternalError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db, 0)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(sql.ErrConnDone)

	_, err := repo.Create(context.Background(), "test@mail.com", "hash")

	if err != errors.ErrInternal {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

// поиск по email
func TestUsersRepository_GetByEmail_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db, 0)

	hash := "hash"

	mock.ExpectQuery(`SELECT id, password_hash FROM users`).
		WithArgs("test@mail.com").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "password_hash"}).
				AddRow(int64(3), hash),
		)

	gotID, gotHash, err := repo.GetByEmail(context.Background(), "test@mail.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotID != 3 || gotHash != hash {
		t.Fatalf("unexpected result")
	}
}

// не найден по email
func TestUsersRepository_GetByEmail_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db, 0)

	mock.ExpectQuery(`SELECT id, password_hash FROM users`).
		WithArgs("test@mail.com").
		WillReturnError(sql.ErrNoRows)

	_, _, err := repo.GetByEmail(context.Background(), "test@mail.com")

	if err != errors.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// обновление email
func TestUsersRepository_Update_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db, 0)

	mock.ExpectQuery(`UPDATE users`).
		WithArgs(int64(3), "new@mail.com", nil).
		WillReturnRows(
			sqlmock.NewRows([]string{"email"}).AddRow("new@mail.com"),
		)

	email, err := repo.Update(context.Background(), 3, utils.StrPtr("new@mail.com"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email != "new@mail.com" {
		t.Fatalf("expected new@mail.com, got %v", email)
	}
}

// обновление несуществующего пользователя
func TestUsersRepository_Update_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db, 0)

	mock.ExpectQuery(`UPDATE users`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), 404, utils.StrPtr("new@mail.com"), nil)

	if err != errors.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// новый email уже занят
func TestUsersRepository_Update_EmailTaken(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db, 0)

	pgErr := &pgconn.PgError{Code: "23505"}

	mock.ExpectQuery(`UPDATE users`).
		WillReturnError(pgErr)

	_, err := repo.Update(context.Background(), 3, utils.StrPtr("taken@mail.com"), nil)

	if err != errors.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}
