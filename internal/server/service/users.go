package service

import (
	"context"
	"strings"

	"github.com/jotvibfeng/development-platforms-ca/internal/server/config"
	"github.com/jotvibfeng/development-platforms-ca/internal/server/crypto"
	serr "github.com/jotvibfeng/development-platforms-ca/internal/shared/errors"
)

// UsersService реализует бизнес-логику управления профилем пользователя.
type UsersService struct {
	users UsersRepo

	bcryptCost int
}

// NewUsersService создаёт UsersService.
func NewUsersService(users UsersRepo, cfg *config.Config) *UsersService {
	return &UsersService{
		users:      users,
		bcryptCost: cfg.Password.Bcrypt.Cost,
	}
}

// Update меняет email и/или пароль пользователя.
//
// Пользователь может менять только собственный профиль:
// несовпадение authUserID и targetID — ErrForbidden.
// Хотя бы одно из полей должно быть передано.
//
// Возвращает итоговый email пользователя.
//
// Ошибки:
//   - ErrInvalidInput — оба поля отсутствуют или email невалиден
//   - ErrForbidden — попытка изменить чужой профиль
//   - ErrNotFound — пользователь не существует
//   - ErrAlreadyExists — новый email уже занят
func (s *UsersService) Update(ctx context.Context, authUserID, targetID int64, email, password *string) (string, error) {
	if authUserID != targetID {
		return "", serr.ErrForbidden
	}

	var newEmail *string
	if email != nil {
		e := strings.TrimSpace(strings.ToLower(*email))
		if e == "" || !emailRe.MatchString(e) {
			return "", serr.ErrInvalidInput
		}
		newEmail = &e
	}

	var newHash *string
	if password != nil {
		p := strings.TrimSpace(*password)
		if len(p) < 8 {
			return "", serr.ErrInvalidInput
		}
		hash, err := crypto.HashPassword(p, s.bcryptCost)
		if err != nil {
			return "", serr.ErrInternal
		}
		newHash = &hash
	}

	if newEmail == nil && newHash == nil {
		return "", serr.ErrInvalidInput
	}

	return s.users.Update(ctx, targetID, newEmail, newHash)
}
