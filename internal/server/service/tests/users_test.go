package tests

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/jotvibfeng/development-platforms-ca/internal/server/crypto"
	"github.com/jotvibfeng/development-platforms-ca/internal/server/service"
	svcmocks "github.com/jotvibfeng/development-platforms-ca/internal/server/service/mocks"
	serr "github.com/jotvibfeng/development-platforms-ca/internal/shared/errors"
	"github.com/jotvibfeng/development-platforms-ca/internal/shared/utils"
)

func newUsersService(t *testing.T) (*service.UsersService, *svcmocks.MockUsersRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := svcmocks.NewMockUsersRepo(ctrl)
	return service.NewUsersService(users, testConfig()), users
}

// Чужой профиль менять нельзя
func TestUsersService_Update_Forbidden(t *testing.T) {
	t.Parallel()

	svc, _ := newUsersService(t)

	_, err := svc.Update(context.Background(), 1, 2, utils.StrPtr("a@b.com"), nil)
	if !errors.Is(err, serr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// Нужно передать хотя бы одно поле
func TestUsersService_Update_NothingToUpdate(t *testing.T) {
	t.Parallel()

	svc, _ := newUsersService(t)

	_, err := svc.Update(context.Background(), 1, 1, nil, nil)
	if !errors.Is(err, serr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// Email нормализуется перед записью
func TestUsersService_Update_EmailNormalized(t *testing.T) {
	t.Parallel()

	svc, users := newUsersService(t)

	users.EXPECT().
		Update(gomock.Any(), int64(1), gomock.Any(), gomock.Nil()).
		DoAndReturn(func(ctx context.Context, id int64, email, hash *string) (string, error) {
			if email == nil || *email != "new@b.com" {
				t.Fatalf("expected normalized email, got %v", email)
			}
			return *email, nil
		})

	got, err := svc.Update(context.Background(), 1, 1, utils.StrPtr(" NEW@B.com "), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "new@b.com" {
		t.Fatalf("expected new@b.com, got %q", got)
	}
}

// Пароль хэшируется перед записью
func TestUsersService_Update_PasswordHashed(t *testing.T) {
	t.Parallel()

	svc, users := newUsersService(t)

	users.EXPECT().
		Update(gomock.Any(), int64(1), gomock.Nil(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id int64, email, hash *string) (string, error) {
			if hash == nil || *hash == "NewSecret1!" {
				t.Fatal("plaintext password passed to repository")
			}
			ok, err := crypto.VerifyPassword("NewSecret1!", *hash)
			if err != nil || !ok {
				t.Fatalf("stored hash does not verify: %v", err)
			}
			return "a@b.com", nil
		})

	_, err := svc.Update(context.Background(), 1, 1, nil, utils.StrPtr("NewSecret1!"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUsersService_Update_InvalidEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newUsersService(t)

	_, err := svc.Update(context.Background(), 1, 1, utils.StrPtr("broken"), nil)
	if !errors.Is(err, serr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUsersService_Update_EmailTaken(t *testing.T) {
	t.Parallel()

	svc, users := newUsersService(t)

	users.EXPECT().
		Update(gomock.Any(), int64(1), gomock.Any(), gomock.Nil()).
		Return("", serr.ErrAlreadyExists)

	_, err := svc.Update(context.Background(), 1, 1, utils.StrPtr("taken@b.com"), nil)
	if !errors.Is(err, serr.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}
