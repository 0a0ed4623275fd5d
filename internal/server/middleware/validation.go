// Валидация формы запроса до вызова хендлеров
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-chi/chi/v5"
)

// maxValidatedBody — предел тела запроса, которое читает валидация.
const maxValidatedBody = 1 << 20 // 1 MiB

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// userDataBody — поля тела запроса, которые проверяет валидация.
// Указатели отличают "поле отсутствует" от "поле пустое".
type userDataBody struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// validationError — JSON-ответ об ошибке валидации.
type validationError struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeValidationError(w http.ResponseWriter, message string, details []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(validationError{Error: message, Details: details})
}

// readBody читает тело запроса и возвращает его обратно в r.Body,
// чтобы хендлер мог декодировать его повторно.
func readBody(r *http.Request) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxValidatedBody))
	if err != nil {
		return nil, err
	}
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(raw))
	return raw, nil
}

// ValidateUserID проверяет, что URL-параметр {userId} — положительное целое.
//
// При ошибке отвечает 400 и прерывает цепочку.
func ValidateUserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "userId")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			writeValidationError(w, "user id is invalid", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ValidateRequiredUserData проверяет тело регистрации/логина:
// оба поля email и password обязательны, email должен быть валидным,
// пароль — не короче 8 символов и содержать верхний/нижний регистр,
// цифру и спецсимвол.
//
// При ошибке отвечает 400 с перечнем проблем в details.
func ValidateRequiredUserData(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := readBody(r)
		if err != nil {
			writeValidationError(w, "failed to read request body", nil)
			return
		}

		var body userDataBody
		if err := json.Unmarshal(raw, &body); err != nil {
			writeValidationError(w, "bad json", nil)
			return
		}

		if body.Email == nil || body.Password == nil ||
			strings.TrimSpace(*body.Email) == "" || *body.Password == "" {
			writeValidationError(w, "email and password are required", nil)
			return
		}

		var details []string
		if !emailRe.MatchString(strings.TrimSpace(*body.Email)) {
			details = append(details, "Email must be a valid email")
		}
		if !passwordStrongEnough(*body.Password) {
			details = append(details, "Password must be at least 8 characters long and include uppercase, lowercase, number, and a special character")
		}
		if len(details) > 0 {
			writeValidationError(w, "validation failed", details)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ValidatePartialUserData проверяет тело частичного обновления профиля:
// хотя бы одно из полей email/password должно присутствовать.
// Присутствующие поля проверяются теми же правилами, что и при регистрации.
func ValidatePartialUserData(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := readBody(r)
		if err != nil {
			writeValidationError(w, "failed to read request body", nil)
			return
		}

		var body userDataBody
		if err := json.Unmarshal(raw, &body); err != nil {
			writeValidationError(w, "bad json", nil)
			return
		}

		hasEmail := body.Email != nil && strings.TrimSpace(*body.Email) != ""
		hasPassword := body.Password != nil && *body.Password != ""
		if !hasEmail && !hasPassword {
			writeValidationError(w, "at least one field (email or password) must be provided to update", nil)
			return
		}

		var details []string
		if hasEmail && !emailRe.MatchString(strings.TrimSpace(*body.Email)) {
			details = append(details, "Email must be a valid email")
		}
		if hasPassword && !passwordStrongEnough(*body.Password) {
			details = append(details, "Password must be at least 8 characters long and include uppercase, lowercase, number, and a special character")
		}
		if len(details) > 0 {
			writeValidationError(w, "validation failed", details)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// passwordStrongEnough — правила сложности пароля.
func passwordStrongEnough(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		case unicode.IsPunct(c) || unicode.IsSymbol(c):
			hasSpecial = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSpecial
}
