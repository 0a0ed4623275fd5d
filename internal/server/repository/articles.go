package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgconn"

	"github.com/jotvibfeng/development-platforms-ca/internal/server/models"
	serr "github.com/jotvibfeng/development-platforms-ca/internal/shared/errors"
)

type ArticlesRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
}

func NewArticlesRepository(db *sql.DB, queryTimeout time.Duration) *ArticlesRepository {
	return &ArticlesRepository{db: db, queryTimeout: queryTimeout}
}

func (r *ArticlesRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

func (r *ArticlesRepository) Create(ctx context.Context, title, body, category string, submittedBy int64) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var id int64

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO articles (title, body, category, submitted_by)
		 VALUES ($1,$2,$3,$4)
		 RETURNING id`,
		title, body, category, submittedBy,
	).Scan(&id)

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23503" { // foreign_key_violation: submitted_by не существует
				return 0, serr.ErrInvalidInput
			}
		}
		return 0, serr.ErrInternal
	}

	return id, nil
}

// ListWithAuthors возвращает все статьи вместе с email автора.
// Без пагинации и фильтров: таблица отдаётся целиком, по возрастанию id.
func (r *ArticlesRepository) ListWithAuthors(ctx context.Context) ([]models.ArticleWithAuthor, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT articles.id, articles.title, articles.body, articles.category,
		        articles.submitted_by, articles.created_at, users.email
		 FROM articles
		 JOIN users ON articles.submitted_by = users.id
		 ORDER BY articles.id`,
	)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	articles := make([]models.ArticleWithAuthor, 0)
	for rows.Next() {
		var a models.ArticleWithAuthor
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Body, &a.Category,
			&a.SubmittedBy, &a.CreatedAt, &a.Email,
		); err != nil {
			return nil, serr.ErrInternal
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}

	return articles, nil
}
