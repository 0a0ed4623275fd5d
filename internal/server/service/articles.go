package service

import (
	"context"
	"strings"

	"github.com/jotvibfeng/development-platforms-ca/internal/server/models"
	serr "github.com/jotvibfeng/development-platforms-ca/internal/shared/errors"
)

// ArticlesService реализует бизнес-логику работы со статьями.
type ArticlesService struct {
	articles ArticlesRepo
}

// NewArticlesService создаёт ArticlesService.
func NewArticlesService(articles ArticlesRepo) *ArticlesService {
	return &ArticlesService{articles: articles}
}

// List возвращает все статьи вместе с email автора.
func (s *ArticlesService) List(ctx context.Context) ([]models.ArticleWithAuthor, error) {
	return s.articles.ListWithAuthors(ctx)
}

// Create создаёт статью от имени аутентифицированного пользователя.
//
// Автор всегда берётся из токена (authUserID). Клиент может прислать
// submitted_by для совместимости со старым API, но значение, отличное
// от собственного id, отклоняется — публиковать от чужого имени нельзя.
//
// Ошибки:
//   - ErrInvalidInput — пустые title/body/category
//   - ErrForbidden — submitted_by указывает на другого пользователя
func (s *ArticlesService) Create(ctx context.Context, authUserID int64, title, body, category string, submittedBy int64) (int64, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	category = strings.TrimSpace(category)

	if title == "" || body == "" || category == "" {
		return 0, serr.ErrInvalidInput
	}

	if submittedBy != 0 && submittedBy != authUserID {
		return 0, serr.ErrForbidden
	}

	return s.articles.Create(ctx, title, body, category, authUserID)
}
