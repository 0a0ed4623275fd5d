// HTTP-хендлеры профиля пользователя
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jotvibfeng/development-platforms-ca/internal/server/middleware"
	serr "github.com/jotvibfeng/development-platforms-ca/internal/shared/errors"
)

// UpdateUserRequest тело запроса частичного обновления профиля.
// Поля-указатели позволяют отличить отсутствующее поле от пустого.
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UpdateUserResponse успешный ответ обновления профиля.
type UpdateUserResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// UpdateUser меняет email и/или пароль пользователя.
//
// Пользователь может менять только собственный профиль;
// id в пути сверяется с id из токена.
//
// Возможные ошибки:
//   - 400 Bad Request: неверный JSON, невалидный id или оба поля отсутствуют;
//   - 401 Unauthorized: отсутствует или некорректный JWT;
//   - 403 Forbidden: попытка изменить чужой профиль;
//   - 404 Not Found: пользователь не существует;
//   - 409 Conflict: новый email уже занят;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Update user
// @Description  Updates the authenticated user's email and/or password.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId path int true "User ID"
// @Param        request body UpdateUserRequest true "Update user request"
// @Success      200 {object} UpdateUserResponse
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      403 {object} ErrorResponse "Updating another user"
// @Failure      404 {object} ErrorResponse "User not found"
// @Failure      409 {object} ErrorResponse "Email already taken"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /users/{userId} [put]
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	targetID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil || targetID <= 0 {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	email, err := h.Svc.Users.Update(r.Context(), userID, targetID, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, err)
		case errors.Is(err, serr.ErrForbidden):
			WriteError(w, http.StatusForbidden, err)
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, err)
		case errors.Is(err, serr.ErrAlreadyExists):
			WriteError(w, http.StatusConflict, err)
		default:
			h.Log.Logger.Sugar().Errorw(
				"update user failed",
				"error", err,
				"user_id", userID,
			)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, UpdateUserResponse{
		Message: "User updated successfully",
		User:    UserResponse{ID: targetID, Email: email},
	})
}
