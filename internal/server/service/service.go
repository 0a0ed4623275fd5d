// Package service содержит бизнес-логику приложения.
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

import (
	"context"

	"github.com/jotvibfeng/development-platforms-ca/internal/server/config"
	"github.com/jotvibfeng/development-platforms-ca/internal/server/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users    UsersRepo
	Articles ArticlesRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth     *AuthService
	Users    *UsersService
	Articles *ArticlesService
}

// NewServices собирает все сервисы приложения.
// cfg нужен AuthService (параметры bcrypt и JWT).
func NewServices(repos Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:     NewAuthService(repos.Users, cfg),
		Users:    NewUsersService(repos.Users, cfg),
		Articles: NewArticlesService(repos.Articles),
	}
}

// UsersRepo — репозиторий пользователей (нужен для auth/register/login и обновления профиля).
type UsersRepo interface {
	Create(ctx context.Context, email, passwordHash string) (int64, error)
	GetByEmail(ctx context.Context, email string) (int64, string, error)
	Update(ctx context.Context, id int64, email, passwordHash *string) (string, error)
}

// ArticlesRepo — репозиторий статей.
type ArticlesRepo interface {
	Create(ctx context.Context, title, body, category string, submittedBy int64) (int64, error)
	ListWithAuthors(ctx context.Context) ([]models.ArticleWithAuthor, error)
}
