package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jotvibfeng/development-platforms-ca/internal/server/config"
	"github.com/jotvibfeng/development-platforms-ca/internal/server/crypto"
	serr "github.com/jotvibfeng/development-platforms-ca/internal/shared/errors"
)

// AuthService реализует бизнес-логику аутентификации.
//
// Ответственность:
//   - регистрация пользователей
//   - аутентификация (логин)
//   - выпуск access токенов
type AuthService struct {
	users UsersRepo

	bcryptCost int
	jwt        crypto.JWTConfig
}

// AuthResult — результат успешного логина.
type AuthResult struct {
	UserID int64
	Email  string
	Token  string
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, cfg *config.Config) *AuthService {
	return &AuthService{
		users: users,

		bcryptCost: cfg.Password.Bcrypt.Cost,
		jwt: crypto.JWTConfig{
			Issuer:     cfg.Auth.Issuer,
			Audience:   cfg.Auth.Audience,
			SigningKey: cfg.Auth.JWT.SigningKey,
			AccessTTL:  cfg.Auth.AccessTTL,
		},
	}
}

// Register регистрирует нового пользователя.
//
// Валидация:
//   - email обязателен и должен быть валидным
//   - пароль обязателен и длиной >= 8 символов
//
// Возвращает:
//   - id пользователя и нормализованный email
//   - ErrInvalidInput при некорректных данных или ErrAlreadyExists если email уже зарегистрирован
func (s *AuthService) Register(ctx context.Context, email, password string) (int64, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)

	if email == "" || password == "" || !emailRe.MatchString(email) || len(password) < 8 {
		return 0, "", serr.ErrInvalidInput
	}

	hash, err := crypto.HashPassword(password, s.bcryptCost)
	if err != nil {
		return 0, "", serr.ErrInternal
	}

	// уникальность email гарантирует индекс в базе; дубликат
	// возвращается репозиторием как ErrAlreadyExists
	id, err := s.users.Create(ctx, email, hash)
	if err != nil {
		return 0, "", err
	}
	return id, email, nil
}

// Login аутентифицирует пользователя и выдаёт access токен.
//
// Поведение:
//   - не раскрывает факт существования email: несуществующий email
//     и неверный пароль дают одинаковую ошибку
//
// Ошибки:
//   - ErrInvalidInput
//   - ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return AuthResult{}, serr.ErrInvalidInput
	}
	// получаем юзера по email
	userID, hash, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// не палим существование email
		if errors.Is(err, serr.ErrNotFound) {
			return AuthResult{}, serr.ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	// проверяем пароль
	ok, err := crypto.VerifyPassword(password, hash)
	if err != nil {
		return AuthResult{}, serr.ErrInternal
	}
	if !ok {
		return AuthResult{}, serr.ErrInvalidCredentials
	}
	// создаём новый access токен
	token, err := crypto.NewAccessToken(userID, s.jwt)
	if err != nil {
		return AuthResult{}, serr.ErrInternal
	}

	return AuthResult{UserID: userID, Email: email, Token: token}, nil
}
