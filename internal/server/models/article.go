// Серверная модель статьи
package models

import "time"

type Article struct {
	ID          int64
	Title       string
	Body        string
	Category    string
	SubmittedBy int64
	CreatedAt   time.Time
}

// ArticleWithAuthor — статья вместе с email автора (JOIN с users).
type ArticleWithAuthor struct {
	Article
	Email string
}
