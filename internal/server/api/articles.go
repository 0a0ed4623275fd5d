// HTTP-хендлеры статей
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jotvibfeng/development-platforms-ca/internal/server/middleware"
	serr "github.com/jotvibfeng/development-platforms-ca/internal/shared/errors"
)

// CreateArticleRequest тело запроса создания статьи.
//
// SubmittedBy принимается для совместимости со старыми клиентами,
// но автором всегда становится владелец токена; чужой id отклоняется.
type CreateArticleRequest struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	Category    string `json:"category"`
	SubmittedBy int64  `json:"submitted_by,omitempty"`
}

// CreateArticleResponse успешный ответ создания статьи.
type CreateArticleResponse struct {
	Message   string `json:"message"`
	ArticleID int64  `json:"articleId"`
}

// ArticleWithAuthorResponse — статья вместе с email автора.
type ArticleWithAuthorResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Category    string    `json:"category"`
	SubmittedBy int64     `json:"submitted_by"`
	CreatedAt   time.Time `json:"created_at"`
	Email       string    `json:"email"`
}

// ListArticles возвращает все статьи вместе с email автора.
//
// Эндпоинт публичный: пагинации и фильтров нет, таблица отдаётся целиком.
//
// @Summary      List articles
// @Description  Returns all articles joined with the author's email.
// @Tags         articles
// @Produce      json
// @Success      200 {array} ArticleWithAuthorResponse
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /articles [get]
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.Articles.List(r.Context())
	if err != nil {
		h.Log.Logger.Sugar().Errorw("list articles failed", "error", err)
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		return
	}

	resp := make([]ArticleWithAuthorResponse, 0, len(articles))
	for _, a := range articles {
		resp = append(resp, ArticleWithAuthorResponse{
			ID:          a.ID,
			Title:       a.Title,
			Body:        a.Body,
			Category:    a.Category,
			SubmittedBy: a.SubmittedBy,
			CreatedAt:   a.CreatedAt,
			Email:       a.Email,
		})
	}

	WriteJSON(w, http.StatusOK, resp)
}

// CreateArticle создаёт новую статью от имени аутентифицированного пользователя.
//
// Требует JWT-аутентификацию.
//
// Возможные ошибки:
//   - 400 Bad Request: неверный JSON или пустые title/body/category;
//   - 401 Unauthorized: отсутствует или некорректный JWT;
//   - 403 Forbidden: submitted_by указывает на другого пользователя;
//   - 500 Internal Server Error: ошибка хранилища.
//
// @Summary      Create article
// @Description  Creates a new article. The author is taken from the JWT token.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateArticleRequest true "Create article request"
// @Success      201 {object} CreateArticleResponse
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      403 {object} ErrorResponse "Submitting under another user"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /articles [post]
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	id, err := h.Svc.Articles.Create(
		r.Context(),
		userID,
		req.Title,
		req.Body,
		req.Category,
		req.SubmittedBy,
	)

	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, err)
		case errors.Is(err, serr.ErrForbidden):
			WriteError(w, http.StatusForbidden, err)
		default:
			h.Log.Logger.Sugar().Errorw(
				"create article failed",
				"error", err,
				"user_id", userID,
			)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, CreateArticleResponse{
		Message:   "Article created successfully",
		ArticleID: id,
	})
}
